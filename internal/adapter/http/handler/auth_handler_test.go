package handler_test

import (
	"net/http"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"

	"taskapp/internal/core/model/response"
)

type AuthHandlerSuite struct {
	suite.Suite
	env *testEnv
}

func (s *AuthHandlerSuite) SetupTest() {
	s.env = newTestEnv()
}

func TestAuthHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(AuthHandlerSuite))
}

func (s *AuthHandlerSuite) TestRegisterSuccess() {
	rr := s.env.do("POST", "/accounts", "", `{"name": "A", "email": "a@x.com", "password": "secret1"}`)

	Expect(rr.Code).To(Equal(http.StatusCreated))

	data := decodeData(rr)
	user := data["user"].(map[string]any)

	Expect(user["email"]).To(Equal("a@x.com"))
	Expect(data["token"]).NotTo(BeEmpty())
}

func (s *AuthHandlerSuite) TestRegisterNeverLeaksSecrets() {
	rr := s.env.do("POST", "/accounts", "", `{"name": "A", "email": "a@x.com", "password": "secret1"}`)

	body := rr.Body.String()

	Expect(body).NotTo(ContainSubstring("encrypted_password"))
	Expect(body).NotTo(ContainSubstring("passwordHash"))
	Expect(body).NotTo(ContainSubstring("secret1"))
}

func (s *AuthHandlerSuite) TestRegisterValidationError() {
	rr := s.env.do("POST", "/accounts", "", `{"name": "A", "email": "invalid-email", "password": "123"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))

	var data response.ErrorResponse
	s.Require().NoError(jsonUnmarshal(rr, &data))

	Expect(data.Error.Code).To(Equal("VALIDATION_ERROR"))
	Expect(len(data.Error.Errors)).To(BeNumerically(">", 0))
}

func (s *AuthHandlerSuite) TestRegisterForbiddenPasswordSubstring() {
	rr := s.env.do("POST", "/accounts", "", `{"name": "A", "email": "a@x.com", "password": "Password123"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *AuthHandlerSuite) TestRegisterDuplicateEmail() {
	s.env.register("A", "dup@x.com", "secret1")

	rr := s.env.do("POST", "/accounts", "", `{"name": "B", "email": "dup@x.com", "password": "secret2"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *AuthHandlerSuite) TestLoginSuccess() {
	s.env.register("A", "login@x.com", "secret1")

	rr := s.env.do("POST", "/accounts/login", "", `{"email": "login@x.com", "password": "secret1"}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	data := decodeData(rr)
	Expect(data["token"]).NotTo(BeEmpty())
}

func (s *AuthHandlerSuite) TestLoginWrongPassword() {
	s.env.register("A", "login@x.com", "secret1")

	rr := s.env.do("POST", "/accounts/login", "", `{"email": "login@x.com", "password": "secret2"}`)

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *AuthHandlerSuite) TestLogoutRevokesPresentingToken() {
	_, token := s.env.register("A", "a@x.com", "secret1")

	rr := s.env.do("POST", "/accounts/logout", token, "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("GET", "/accounts/me", token, "")
	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *AuthHandlerSuite) TestLogoutAllRevokesEverySession() {
	_, first := s.env.register("A", "a@x.com", "secret1")

	loginRR := s.env.do("POST", "/accounts/login", "", `{"email": "a@x.com", "password": "secret1"}`)
	second := decodeData(loginRR)["token"].(string)

	rr := s.env.do("POST", "/accounts/logoutAll", second, "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	for _, token := range []string{first, second} {
		rr := s.env.do("GET", "/accounts/me", token, "")
		Expect(rr.Code).To(Equal(http.StatusUnauthorized))
	}
}

func (s *AuthHandlerSuite) TestProtectedRouteWithoutToken() {
	rr := s.env.do("GET", "/accounts/me", "", "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *AuthHandlerSuite) TestProtectedRouteWithForgedToken() {
	rr := s.env.do("GET", "/accounts/me", "forged.token.value", "")

	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}
