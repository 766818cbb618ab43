//go:build unit

package httperr

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"table-booking/internal/pkg/clock"
	"table-booking/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func perform(t *testing.T, path string, h gin.HandlerFunc) (*httptest.ResponseRecorder, Response) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	SetClock(clock.NewMockClock(time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(clock.NewRealClock()) })

	engine := gin.New()
	engine.GET("/api/v1/reservations", h)

	w := httptest.NewRecorder()
	engine.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))

	var resp Response
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	return w, resp
}

func TestAbortWithAppError(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{name: "validation", err: errs.NewAppError(errs.CodeGeneralValidationFailed), wantStatus: 400, wantCode: "GENERAL_VALIDATION_FAILED"},
		{name: "not found", err: errs.NewAppError(errs.CodeReservationNotFound), wantStatus: 404, wantCode: "RESERVATION_NOT_FOUND"},
		{name: "conflict", err: errs.NewAppError(errs.CodeOverbookingNotAllowed), wantStatus: 409, wantCode: "OVERBOOKING_NOT_ALLOWED"},
		{name: "dependency", err: errs.FromCause(errs.CodeReservationCreationFailed, assert.AnError), wantStatus: 500, wantCode: "RESERVATION_CREATION_FAILED"},
		{name: "plain error", err: assert.AnError, wantStatus: 500, wantCode: "GENERAL_INTERNAL_SERVER_ERROR"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, resp := perform(t, "/api/v1/reservations?page=2", func(c *gin.Context) {
				AbortWithAppError(c, tt.err)
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "error", resp.Status)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
			assert.Equal(t, tt.wantCode, resp.Error.Code)
			assert.Equal(t, "2024-01-01T12:00:00.000Z", resp.Error.Timestamp)
			assert.Equal(t, "/api/v1/reservations?page=2", resp.Error.Path)
			assert.NotContains(t, resp.Error.Message, assert.AnError.Error())
		})
	}
}

func TestAbortWithAppError_CarriesAlternative(t *testing.T) {
	err := errs.NewAppError(errs.CodeOverbookingNotAllowed).
		WithMessage("This table is fully booked.").
		WithData(map[string]any{"availableTables": []int{1, 3}})

	_, resp := perform(t, "/api/v1/reservations", func(c *gin.Context) {
		AbortWithAppError(c, err)
	})

	alt, ok := resp.Error.Alternative.(map[string]any)
	require.True(t, ok)
	assert.Equal(t, []any{1.0, 3.0}, alt["availableTables"])
}
