package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	. "taskapp/internal/adapter/http/helper"
	"taskapp/internal/adapter/http/middleware"
	. "taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/model/request"
	"taskapp/internal/core/model/response"
	"taskapp/internal/core/port"
	"taskapp/internal/core/util"
	"taskapp/pkg/logger"
	"taskapp/pkg/metrics"
	. "taskapp/pkg/tracing"
)

// sortColumns maps the public sort field names onto store columns.
var sortColumns = map[string]string{
	"description": "description",
	"isCompleted": "completed",
	"createdAt":   "created_at",
	"updatedAt":   "updated_at",
}

type TaskHandler struct {
	svc     port.TaskService
	metrics *metrics.AppMetrics
	Logger  *logger.AppLogger
}

func NewTaskHandler(svc port.TaskService, metrics *metrics.AppMetrics, logger *logger.AppLogger) *TaskHandler {
	return &TaskHandler{
		svc:     svc,
		metrics: metrics,
		Logger:  logger,
	}
}

func (t *TaskHandler) CreateTask(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	params, err := util.ParamsToMap[request.TaskRequest](c)

	if err != nil {
		SendBadRequestError(c, "request", "Invalid request parameters")
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	task, err := t.svc.Create(ctx, user.ID, &params)

	if err != nil {
		t.Logger.Error(ctx, "Failed to create task",
			zap.Error(err),
			zap.Int("user_id", user.ID),
		)

		SendInternalError(c, "Error creating task")
		return
	}

	t.metrics.RecordTaskOperation(ctx, "create")

	SendSuccess(c, http.StatusCreated, response.NewTaskResponse(&task, user.UUID.String()))
}

func (t *TaskHandler) GetAllTasks(c *gin.Context) {
	user := middleware.CurrentUser(c)

	ctx, span := CreateChildSpan(c.Request.Context(), "handler.task.GetAllTasks", []attribute.KeyValue{
		attribute.String("handler.operation", "GetAllTasks"),
		attribute.Int("user.id", user.ID),
	})

	defer span.End()

	query, err := parseTaskQuery(c)

	if err != nil {
		SendBadRequestError(c, "query", err.Error())
		return
	}

	tasks, err := t.svc.List(ctx, user.ID, query)

	if err != nil {
		AddSpanError(span, err)

		t.Logger.Error(ctx, "Failed to list tasks",
			zap.Error(err),
			zap.Int("user_id", user.ID),
		)

		SendInternalError(c, "Error getting tasks")
		return
	}

	out := make([]response.TaskResponse, 0, len(tasks))

	for i := range tasks {
		out = append(out, response.NewTaskResponse(&tasks[i], user.UUID.String()))
	}

	span.SetAttributes(attribute.Int("task.count", len(out)))

	SendSuccess(c, http.StatusOK, out)
}

func (t *TaskHandler) GetTask(c *gin.Context) {
	user := middleware.CurrentUser(c)

	task, err := t.svc.GetByUUID(c.Request.Context(), user.ID, c.Param("uuid"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	SendSuccess(c, http.StatusOK, response.NewTaskResponse(&task, user.UUID.String()))
}

func (t *TaskHandler) UpdateTask(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	params, err := util.PartialParams[request.UpdateTaskRequest](c, "description", "isCompleted")

	if err != nil {
		SendDomainError(c, err)
		return
	}

	if err := Validator.Struct(params); err != nil {
		SendValidationError(c, err)
		return
	}

	task, err := t.svc.Update(ctx, user.ID, c.Param("uuid"), &params)

	if err != nil {
		SendDomainError(c, err)
		return
	}

	t.metrics.RecordTaskOperation(ctx, "update")

	SendSuccess(c, http.StatusOK, response.NewTaskResponse(&task, user.UUID.String()))
}

func (t *TaskHandler) DeleteTask(c *gin.Context) {
	ctx := c.Request.Context()
	user := middleware.CurrentUser(c)

	task, err := t.svc.DeleteByUUID(ctx, user.ID, c.Param("uuid"))

	if err != nil {
		SendDomainError(c, err)
		return
	}

	t.metrics.RecordTaskOperation(ctx, "delete")

	SendSuccess(c, http.StatusOK, response.NewTaskResponse(&task, user.UUID.String()))
}

// parseTaskQuery reads isCompleted, sort ("field:asc|desc"), limit and
// skip. Anything malformed or outside the known sort fields is a 400,
// never silently ignored.
func parseTaskQuery(c *gin.Context) (port.TaskQuery, error) {
	var query port.TaskQuery

	if raw := c.Query("isCompleted"); raw != "" {
		completed, err := strconv.ParseBool(raw)

		if err != nil {
			return query, errInvalidQuery("isCompleted must be true or false")
		}

		query.Completed = &completed
	}

	if raw := c.Query("sort"); raw != "" {
		field, direction, found := strings.Cut(raw, ":")

		column, known := sortColumns[field]

		if !known {
			return query, errInvalidQuery("unknown sort field")
		}

		query.SortField = column

		if found {
			switch direction {
			case "asc":
			case "desc":
				query.SortDesc = true
			default:
				return query, errInvalidQuery("sort direction must be asc or desc")
			}
		}
	}

	if raw := c.Query("limit"); raw != "" {
		limit, err := strconv.Atoi(raw)

		if err != nil || limit < 0 {
			return query, errInvalidQuery("limit must be a non-negative integer")
		}

		query.Limit = limit
	}

	if raw := c.Query("skip"); raw != "" {
		skip, err := strconv.Atoi(raw)

		if err != nil || skip < 0 {
			return query, errInvalidQuery("skip must be a non-negative integer")
		}

		query.Skip = skip
	}

	return query, nil
}

type errInvalidQuery string

func (e errInvalidQuery) Error() string {
	return string(e)
}
