// Package response writes the JSON error envelope shared by all handlers.
package response

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/festy23/team_tasks/pkg/validation"
)

// Error codes returned in the envelope.
const (
	CodeInvalidRequest  = "INVALID_REQUEST"
	CodeNotFound        = "NOT_FOUND"
	CodeConflict        = "CONFLICT"
	CodeNotMember       = "NOT_MEMBER"
	CodeNotAdmin        = "NOT_ADMIN"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeInternal        = "INTERNAL_ERROR"
)

// ErrorBody is the content of the "error" key.
type ErrorBody struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Field   string `json:"field,omitempty"`
}

// ErrorResponse represents the error envelope.
type ErrorResponse struct {
	Error ErrorBody `json:"error"`
}

// Error writes an error envelope and aborts the request.
func Error(c *gin.Context, code string, message string, statusCode int) {
	c.AbortWithStatusJSON(statusCode, ErrorResponse{Error: ErrorBody{Code: code, Message: message}})
}

// NotFound writes a 404 envelope.
func NotFound(c *gin.Context, message string) {
	Error(c, CodeNotFound, message, http.StatusNotFound)
}

// Conflict writes a 409 envelope.
func Conflict(c *gin.Context, code string, message string) {
	Error(c, code, message, http.StatusConflict)
}

// Forbidden writes a 403 envelope for an authenticated actor who lacks
// membership, or the admin role when adminRequired is set.
func Forbidden(c *gin.Context, adminRequired bool, message string) {
	code := CodeNotMember
	if adminRequired {
		code = CodeNotAdmin
	}
	Error(c, code, message, http.StatusForbidden)
}

// Internal writes a 500 envelope without leaking err.
func Internal(c *gin.Context, err error) {
	_ = c.Error(err)
	Error(c, CodeInternal, "internal server error", http.StatusInternalServerError)
}

// InvalidBody writes a 400 envelope for undecodable request bodies.
func InvalidBody(c *gin.Context) {
	Error(c, CodeInvalidRequest, "invalid request body", http.StatusBadRequest)
}

// Validation writes a 400 envelope naming the offending field when err is a
// validation error. It reports whether it handled err.
func Validation(c *gin.Context, err error) bool {
	var vErr *validation.Error
	if !errors.As(err, &vErr) {
		return false
	}
	c.AbortWithStatusJSON(http.StatusBadRequest, ErrorResponse{Error: ErrorBody{
		Code:    CodeInvalidRequest,
		Message: vErr.Error(),
		Field:   vErr.Field,
	}})
	return true
}
