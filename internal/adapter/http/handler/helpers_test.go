package handler_test

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"

	"taskapp/internal/adapter/database/sqlite/repository"
	apihttp "taskapp/internal/adapter/http"
	"taskapp/internal/adapter/http/routes"
	"taskapp/internal/core/port"
	"taskapp/pkg/auth"
	"taskapp/pkg/logger"
	"taskapp/pkg/metrics"
	"taskapp/pkg/test"
)

type testEnv struct {
	Router *gin.Engine
	Users  port.UserRepository
	Tasks  port.TaskRepository
}

func newTestEnv() *testEnv {
	gin.SetMode(gin.TestMode)

	db := test.InitTestDB()
	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	appLogger, err := logger.New("taskapp-test")

	if err != nil {
		panic(err)
	}

	appMetrics := metrics.NewAppMetrics(prometheus.NewRegistry())

	container := apihttp.NewContainer(userRepo, taskRepo, auth.NewJWT("test-secret"), appMetrics, appLogger)

	router := routes.SetupRouterForTests(routes.HandlersConfig{
		AuthHandler: container.AuthHandler,
		UserHandler: container.UserHandler,
		TaskHandler: container.TaskHandler,
		Guard:       container.Guard,
	})

	return &testEnv{
		Router: router,
		Users:  userRepo,
		Tasks:  taskRepo,
	}
}

func (e *testEnv) do(method, path, token string, body string) *httptest.ResponseRecorder {
	var reader io.Reader

	if body != "" {
		reader = strings.NewReader(body)
	}

	req, _ := http.NewRequest(method, path, reader)

	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	rr := httptest.NewRecorder()
	e.Router.ServeHTTP(rr, req)

	return rr
}

// register signs an account up and returns its uuid and session token.
func (e *testEnv) register(name, email, password string) (string, string) {
	body := fmt.Sprintf(`{"name": %q, "email": %q, "password": %q}`, name, email, password)

	rr := e.do("POST", "/accounts", "", body)

	if rr.Code != http.StatusCreated {
		panic(fmt.Sprintf("register failed with status %d: %s", rr.Code, rr.Body.String()))
	}

	data := decodeData(rr)
	user := data["user"].(map[string]any)

	return user["uuid"].(string), data["token"].(string)
}

func jsonUnmarshal(rr *httptest.ResponseRecorder, v any) error {
	return json.Unmarshal(rr.Body.Bytes(), v)
}

func decodeData(rr *httptest.ResponseRecorder) map[string]any {
	payload := gin.H{}

	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		panic(err)
	}

	data, ok := payload["data"].(map[string]any)

	if !ok {
		panic("response has no data object")
	}

	return data
}

func decodeDataList(rr *httptest.ResponseRecorder) []any {
	payload := gin.H{}

	if err := json.Unmarshal(rr.Body.Bytes(), &payload); err != nil {
		panic(err)
	}

	list, ok := payload["data"].([]any)

	if !ok {
		panic("response has no data array")
	}

	return list
}
