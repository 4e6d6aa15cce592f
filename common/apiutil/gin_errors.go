package apiutil

import (
	"net/http"

	"github.com/Aidin1998/apiexercises/pkg/errors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// ErrorResponse is the error payload returned by every service
//
// Example:
//
//	{
//	  "detail": "User already exists!"
//	}
type ErrorResponse struct {
	Detail string              `json:"detail"`
	Fields []errors.FieldError `json:"fields,omitempty"`
}

const internalErrorDetail = "Internal server error"

// Abort records err on the context and stops the handler chain. The
// response is written by ErrorMiddleware.
func Abort(c *gin.Context, err error) {
	_ = c.Error(err)
	c.Abort()
}

// WriteError writes err as an ErrorResponse. Errors without a kind are
// reported as 500 with a fixed message so internals never leak.
func WriteError(c *gin.Context, err error) {
	status := errors.HTTPStatus(err)
	resp := ErrorResponse{Detail: internalErrorDetail}

	if status != http.StatusInternalServerError {
		resp.Detail = http.StatusText(status)
		if e := errors.KindOf(err); e != nil {
			if e.Message != "" {
				resp.Detail = e.Message
			}
			resp.Fields = e.Fields
		}
	}

	if status == http.StatusUnauthorized {
		c.Header("WWW-Authenticate", "Bearer")
	}
	c.AbortWithStatusJSON(status, resp)
}

// ErrorMiddleware writes the last error recorded by a handler. Server side
// failures are logged with the request route.
func ErrorMiddleware(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}

		err := c.Errors.Last().Err
		if errors.HTTPStatus(err) >= http.StatusInternalServerError {
			logger.Error("request failed",
				zap.String("method", c.Request.Method),
				zap.String("path", c.FullPath()),
				zap.Error(err),
			)
		}
		WriteError(c, err)
	}
}
