package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// HTTPError pairs an HTTP status with the machine-readable code and
// user-facing message rendered by errorHandlingMiddleware.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Err     error
}

// Error reports the wrapped cause when present, the public message otherwise.
func (e *HTTPError) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

// NewHTTPError builds the error value handlers hand to abortWithError.
func NewHTTPError(status int, code, message string, err error) *HTTPError {
	return &HTTPError{Status: status, Code: code, Message: message, Err: err}
}

// asHTTPError normalizes unknown errors to an opaque 500 so internal
// details never reach API clients.
func asHTTPError(err error) *HTTPError {
	if err == nil {
		return nil
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr
	}
	return &HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    "internal_error",
		Message: "an unexpected error occurred",
		Err:     err,
	}
}

// abortWithError records err on the gin context; the error middleware
// renders it after the handler chain unwinds.
func abortWithError(c *gin.Context, err *HTTPError) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}
