package api

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	// Generic
	ErrCodeInvalidRequest     = "ERR_INVALID_REQUEST"
	ErrCodeUnauthorized       = "ERR_UNAUTHORIZED"
	ErrCodeForbidden          = "ERR_FORBIDDEN"
	ErrCodeNotFound           = "ERR_NOT_FOUND"
	ErrCodeConflict           = "ERR_CONFLICT"
	ErrCodeInternalError      = "ERR_INTERNAL_ERROR"
	ErrCodeServiceUnavailable = "ERR_SERVICE_UNAVAILABLE"

	// Authentication
	ErrCodeInvalidCredentials = "ERR_INVALID_CREDENTIALS"
	ErrCodeSessionExpired     = "ERR_SESSION_EXPIRED"
	ErrCodeEmailExists        = "ERR_EMAIL_EXISTS"
	ErrCodeUserNotFound       = "ERR_USER_NOT_FOUND"

	// Resources
	ErrCodeRoleExists           = "ERR_ROLE_EXISTS"
	ErrCodeRoleNotFound         = "ERR_ROLE_NOT_FOUND"
	ErrCodeProtectedRole        = "ERR_PROTECTED_ROLE"
	ErrCodeQuestionTypeExists   = "ERR_QUESTION_TYPE_EXISTS"
	ErrCodeQuestionTypeNotFound = "ERR_QUESTION_TYPE_NOT_FOUND"
	ErrCodeFormExists           = "ERR_FORM_EXISTS"
	ErrCodeFormNotFound         = "ERR_FORM_NOT_FOUND"
	ErrCodeQuestionNotFound     = "ERR_QUESTION_NOT_FOUND"
	ErrCodeOptionNotFound       = "ERR_OPTION_NOT_FOUND"

	// Business rules
	ErrCodeMissingField = "ERR_MISSING_FIELD"
	ErrCodeInvalidRole  = "ERR_INVALID_ROLE"
)

// APIError is the unified error response body.
type APIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// ErrorResponse writes a unified error response.
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
	})
}

// ErrorResponseWithDetails writes an error response carrying details.
func ErrorResponseWithDetails(c *gin.Context, status int, code string, message string, details any) {
	c.JSON(status, APIError{
		Code:    code,
		Message: message,
		Details: details,
	})
}

// BadRequest writes a 400 response.
func BadRequest(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusBadRequest, code, message)
}

// Unauthorized writes a 401 response with the bearer challenge header.
func Unauthorized(c *gin.Context, code string, message string) {
	c.Header("WWW-Authenticate", "Bearer")
	ErrorResponse(c, http.StatusUnauthorized, code, message)
}

// Forbidden writes a 403 response.
func Forbidden(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusForbidden, ErrCodeForbidden, message)
}

// NotFound writes a 404 response.
func NotFound(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusNotFound, code, message)
}

// Conflict writes a 409 response for duplicate unique keys.
func Conflict(c *gin.Context, code string, message string) {
	ErrorResponse(c, http.StatusConflict, code, message)
}

// InternalError writes a 500 response.
func InternalError(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusInternalServerError, ErrCodeInternalError, message)
}

// ServiceUnavailable writes a 503 response.
func ServiceUnavailable(c *gin.Context, message string) {
	ErrorResponse(c, http.StatusServiceUnavailable, ErrCodeServiceUnavailable, message)
}

// MissingField reports a missing required field.
func MissingField(c *gin.Context, field string) {
	ErrorResponseWithDetails(c, http.StatusBadRequest, ErrCodeMissingField, field+" is required", gin.H{"field": field})
}

// InvalidPayload reports an unparseable request body.
func InvalidPayload(c *gin.Context) {
	ErrorResponse(c, http.StatusBadRequest, ErrCodeInvalidRequest, "invalid request payload")
}
