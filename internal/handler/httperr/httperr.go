package httperr

import (
	"net/http"

	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
)

const timestampLayout = "2006-01-02T15:04:05.000Z07:00"

type Body struct {
	Code        string `json:"code"`
	Message     string `json:"message"`
	Details     any    `json:"details"`
	Timestamp   string `json:"timestamp"`
	Path        string `json:"path"`
	Alternative any    `json:"alternative,omitempty"`
}

type Response struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Error      Body   `json:"error"`
}

var clk clock.Clock = clock.NewRealClock()

// SetClock replaces the clock used for error timestamps.
func SetClock(c clock.Clock) {
	clk = c
}

func NewResponse(c *gin.Context, status int, code errs.Code, msg string, details any) Response {
	return Response{
		Status:     "error",
		StatusCode: status,
		Error: Body{
			Code:      string(code),
			Message:   msg,
			Details:   details,
			Timestamp: clk.Now().UTC().Format(timestampLayout),
			Path:      c.Request.URL.RequestURI(),
		},
	}
}

// AbortWithAppError renders err using its code and kind. Errors that are not
// AppErrors become a generic 500 without leaking their text.
func AbortWithAppError(c *gin.Context, err error) {
	appErr, ok := errs.AsAppError(err)
	if !ok {
		appErr = errs.FromCause(errs.CodeGeneralInternalServerError, err)
	}

	var details any
	if appErr.Details != "" {
		details = appErr.Details
	}
	resp := NewResponse(c, StatusFor(appErr.Kind), appErr.Code, appErr.Message, details)
	resp.Error.Alternative = appErr.Data
	abort(c, err, resp)
}

func StatusFor(kind errs.Kind) int {
	switch kind {
	case errs.KindValidation:
		return http.StatusBadRequest
	case errs.KindNotFound:
		return http.StatusNotFound
	case errs.KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func abort(c *gin.Context, err error, resp Response) {
	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.StatusCode, resp)
}
