package helper

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	. "taskapp/internal/adapter/http/validation"
	"taskapp/internal/core/domain"
	"taskapp/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, err error) {
	validationErrors := FormatValidationErrors(err)
	SendError(c, http.StatusBadRequest, "VALIDATION_ERROR", validationErrors)
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	errors := []response.ValidationError{
		{
			Field:   "server",
			Message: message,
		},
	}

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", errors, details...)
}

func SendUnauthorizedError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "auth",
			Message: message,
		},
	}

	SendError(c, http.StatusUnauthorized, "UNAUTHORIZED", errors)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", errors)
}

// SendNotFound replies with an empty body. A resource that exists but
// belongs to someone else is reported exactly like one that never did.
func SendNotFound(c *gin.Context) {
	c.Status(http.StatusNotFound)
}

// SendDomainError maps the domain sentinels onto status codes. Anything
// unrecognized is a store fault and leaks no detail.
func SendDomainError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		SendNotFound(c)
	case errors.Is(err, domain.ErrDuplicateEmail):
		SendBadRequestError(c, "email", "Email is already taken")
	case errors.Is(err, domain.ErrWeakPassword):
		SendBadRequestError(c, "password", err.Error())
	case errors.Is(err, domain.ErrInvalidUpdateField):
		SendBadRequestError(c, "request", "Invalid update fields")
	case errors.Is(err, domain.ErrMalformedBody):
		SendBadRequestError(c, "request", "Invalid request body")
	case errors.Is(err, domain.ErrInvalidCredentials):
		SendUnauthorizedError(c, "Invalid email or password")
	default:
		SendInternalError(c, "Unexpected error")
	}
}
