package handler_test

import (
	"bytes"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	. "github.com/onsi/gomega"
	"github.com/stretchr/testify/suite"
)

type UserHandlerSuite struct {
	suite.Suite
	env *testEnv

	uuid  string
	token string
}

func (s *UserHandlerSuite) SetupTest() {
	s.env = newTestEnv()
	s.uuid, s.token = s.env.register("A", "a@x.com", "secret1")
}

func TestUserHandlerSuite(t *testing.T) {
	RegisterTestingT(t)
	suite.Run(t, new(UserHandlerSuite))
}

func (s *UserHandlerSuite) TestGetMe() {
	rr := s.env.do("GET", "/accounts/me", s.token, "")

	Expect(rr.Code).To(Equal(http.StatusOK))

	me := decodeData(rr)
	Expect(me["uuid"]).To(Equal(s.uuid))
	Expect(me["email"]).To(Equal("a@x.com"))
}

func (s *UserHandlerSuite) TestGetAllAccounts() {
	s.env.register("B", "b@x.com", "secret2")

	rr := s.env.do("GET", "/accounts", s.token, "")

	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(decodeDataList(rr)).To(HaveLen(2))
}

func (s *UserHandlerSuite) TestUpdateMeAllowedFields() {
	rr := s.env.do("PATCH", "/accounts/me", s.token, `{"name": "Renamed", "age": 33}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	me := decodeData(rr)
	Expect(me["name"]).To(Equal("Renamed"))
	Expect(me["age"]).To(BeNumerically("==", 33))
}

func (s *UserHandlerSuite) TestUpdateMeRejectsUnknownFields() {
	rr := s.env.do("PATCH", "/accounts/me", s.token, `{"uuid": "new-uuid"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *UserHandlerSuite) TestUpdateMeRejectsMalformedBody() {
	for _, body := range []string{"not-json", `"x"`, `[1]`} {
		rr := s.env.do("PATCH", "/accounts/me", s.token, body)

		Expect(rr.Code).To(Equal(http.StatusBadRequest), body)
	}
}

func (s *UserHandlerSuite) TestUpdateMeEmptyObjectLeavesAccountUnchanged() {
	rr := s.env.do("PATCH", "/accounts/me", s.token, `{}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	me := decodeData(rr)
	Expect(me["name"]).To(Equal("A"))
	Expect(me["email"]).To(Equal("a@x.com"))
}

func (s *UserHandlerSuite) TestUpdateMePasswordChangesLogin() {
	rr := s.env.do("PATCH", "/accounts/me", s.token, `{"password": "fresh-secret"}`)

	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("POST", "/accounts/login", "", `{"email": "a@x.com", "password": "fresh-secret"}`)
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("POST", "/accounts/login", "", `{"email": "a@x.com", "password": "secret1"}`)
	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *UserHandlerSuite) TestUpdateMeRejectsWeakPassword() {
	rr := s.env.do("PATCH", "/accounts/me", s.token, `{"password": "password9"}`)

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *UserHandlerSuite) TestDeleteMeCascades() {
	rr := s.env.do("POST", "/tasks", s.token, `{"description": "orphan-to-be"}`)
	Expect(rr.Code).To(Equal(http.StatusCreated))

	rr = s.env.do("DELETE", "/accounts/me", s.token, "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("GET", "/accounts/me", s.token, "")
	Expect(rr.Code).To(Equal(http.StatusUnauthorized))

	rr = s.env.do("POST", "/accounts/login", "", `{"email": "a@x.com", "password": "secret1"}`)
	Expect(rr.Code).To(Equal(http.StatusUnauthorized))
}

func (s *UserHandlerSuite) uploadAvatar(filename string, content []byte) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, _ := writer.CreateFormFile("avatar", filename)
	part.Write(content)
	writer.Close()

	req, _ := http.NewRequest("POST", "/accounts/me/avatar", &buf)
	req.Header.Set("Content-Type", writer.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+s.token)

	rr := httptest.NewRecorder()
	s.env.Router.ServeHTTP(rr, req)

	return rr
}

func pngBytes(width, height int) []byte {
	var buf bytes.Buffer
	png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height)))

	return buf.Bytes()
}

func (s *UserHandlerSuite) TestAvatarUploadAndFetch() {
	rr := s.uploadAvatar("me.png", pngBytes(16, 16))
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("GET", "/accounts/"+s.uuid+"/avatar", "", "")
	Expect(rr.Code).To(Equal(http.StatusOK))
	Expect(rr.Header().Get("Content-Type")).To(Equal("image/png"))

	decoded, format, err := image.Decode(bytes.NewReader(rr.Body.Bytes()))
	Expect(err).NotTo(HaveOccurred())
	Expect(format).To(Equal("png"))
	Expect(decoded.Bounds().Dx()).To(Equal(250))
	Expect(decoded.Bounds().Dy()).To(Equal(250))
}

func (s *UserHandlerSuite) TestAvatarRejectsWrongExtension() {
	rr := s.uploadAvatar("me.gif", pngBytes(16, 16))

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *UserHandlerSuite) TestAvatarRejectsNonImageContent() {
	rr := s.uploadAvatar("me.png", []byte("not an image at all"))

	Expect(rr.Code).To(Equal(http.StatusBadRequest))
}

func (s *UserHandlerSuite) TestAvatarDelete() {
	rr := s.uploadAvatar("me.png", pngBytes(16, 16))
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("DELETE", "/accounts/me/avatar", s.token, "")
	Expect(rr.Code).To(Equal(http.StatusOK))

	rr = s.env.do("GET", "/accounts/"+s.uuid+"/avatar", "", "")
	Expect(rr.Code).To(Equal(http.StatusNotFound))
}

func (s *UserHandlerSuite) TestAvatarMissingIs404() {
	rr := s.env.do("GET", "/accounts/"+s.uuid+"/avatar", "", "")

	Expect(rr.Code).To(Equal(http.StatusNotFound))
}
