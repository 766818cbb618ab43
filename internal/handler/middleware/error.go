package middleware

import (
	"log/slog"
	"net/http"

	"table-booking/internal/handler/httperr"
	"table-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const internalErrorMessage = "Internal server error."

// ErrorHandler renders errors handlers recorded without writing a body. The
// newest public error wins; private errors are logged and become a generic 500
// so causes never reach the client.
func ErrorHandler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() || len(c.Errors) == 0 {
			return
		}
		for i := len(c.Errors) - 1; i >= 0; i-- {
			if resp, ok := c.Errors[i].Meta.(httperr.Response); ok && c.Errors[i].IsType(gin.ErrorTypePublic) {
				c.JSON(resp.StatusCode, resp)
				return
			}
		}

		slog.Error("unhandled request error",
			slog.String("request_id", GetRequestID(c)),
			slog.String("path", c.Request.URL.Path),
			slog.String("errors", c.Errors.String()))
		c.JSON(http.StatusInternalServerError, httperr.NewResponse(c, http.StatusInternalServerError,
			errs.CodeGeneralInternalServerError, internalErrorMessage, nil))
	}
}

func CustomRecovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.Error("recovered from panic",
					slog.Any("panic", rec),
					slog.String("request_id", GetRequestID(c)),
					slog.String("method", c.Request.Method),
					slog.String("path", c.Request.URL.Path))

				c.AbortWithStatusJSON(http.StatusInternalServerError, httperr.NewResponse(c, http.StatusInternalServerError,
					errs.CodeGeneralInternalServerError, internalErrorMessage, nil))
			}
		}()
		c.Next()
	}
}

// NotFound answers requests that matched no route.
func NotFound() gin.HandlerFunc {
	return func(c *gin.Context) {
		resp := httperr.NewResponse(c, http.StatusNotFound, errs.CodeGeneralResourceNotFound,
			"The requested resource was not found.", nil)
		c.AbortWithStatusJSON(http.StatusNotFound, resp)
	}
}
