package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error is an application error that carries its HTTP status.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	// Details is rendered next to the message, e.g. the list of missing fields.
	Details any   `json:"details,omitempty"`
	Err     error `json:"-"`
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// WithDetails returns a copy of e carrying details.
func (e *Error) WithDetails(details any) *Error {
	cp := *e
	cp.Details = details
	return &cp
}

func New(code int, message string, err error) *Error {
	return &Error{Code: code, Message: message, Err: err}
}

func BadRequest(message string, err error) *Error {
	return New(http.StatusBadRequest, message, err)
}

func Unauthorized(message string) *Error {
	return New(http.StatusUnauthorized, message, nil)
}

func NotFound(message string, err error) *Error {
	return New(http.StatusNotFound, message, err)
}

func Conflict(message string, err error) *Error {
	return New(http.StatusConflict, message, err)
}

func Unprocessable(message string, err error) *Error {
	return New(http.StatusUnprocessableEntity, message, err)
}

func Internal(message string, err error) *Error {
	return New(http.StatusInternalServerError, message, err)
}

func BadGateway(message string, err error) *Error {
	return New(http.StatusBadGateway, message, err)
}

// As extracts an *Error from err's chain.
func As(err error) (*Error, bool) {
	var appErr *Error
	if stderrors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// StatusOf returns the HTTP status for err, 500 when err is not an *Error.
func StatusOf(err error) int {
	if appErr, ok := As(err); ok {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// Respond writes err as {"error": message, "details": ...}. Internal details
// of non-application errors are never leaked to the client.
func Respond(c *gin.Context, err error) {
	appErr, ok := As(err)
	if !ok {
		appErr = Internal("Internal server error", err)
	}
	body := gin.H{"error": appErr.Message}
	if appErr.Details != nil {
		body["details"] = appErr.Details
	}
	c.AbortWithStatusJSON(appErr.Code, body)
}

// ErrorMiddleware renders the last error attached with c.Error when the
// handler did not write a response itself.
func ErrorMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		Respond(c, c.Errors.Last().Err)
	}
}

var (
	ErrUnauthorized       = Unauthorized("Unauthorized")
	ErrInvalidCredentials = Unauthorized("Invalid credentials")
	ErrInvalidToken       = Unauthorized("Invalid or expired token")
	ErrInternalServer     = Internal("Internal server error", nil)
)
