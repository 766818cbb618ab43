//go:build unit || e2e

package httptest

import (
	"encoding/json"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

// ErrorBody mirrors the error envelope written by httperr.
type ErrorBody struct {
	Status     string `json:"status"`
	StatusCode int    `json:"statusCode"`
	Error      struct {
		Code        string          `json:"code"`
		Message     string          `json:"message"`
		Details     any             `json:"details"`
		Timestamp   string          `json:"timestamp"`
		Path        string          `json:"path"`
		Alternative json.RawMessage `json:"alternative"`
	} `json:"error"`
}

func AssertSuccessResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, targetStruct any) {
	t.Helper()

	if !assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String())) {
		return
	}

	if expectedStatus >= 200 && expectedStatus < 300 && targetStruct != nil {
		err := json.Unmarshal(w.Body.Bytes(), targetStruct)
		assert.NoError(t, err, fmt.Sprintf("Failed to decode response JSON: %s", w.Body.String()))
	}
}

// checks status and error code, returning the decoded envelope for further assertions
func AssertErrorResponse(t *testing.T, w *httptest.ResponseRecorder, expectedStatus int, expectedCode string) ErrorBody {
	t.Helper()

	assert.Equal(t, expectedStatus, w.Code,
		fmt.Sprintf("Expected status %d, got %d. Response: %s", expectedStatus, w.Code, w.Body.String()))

	var body ErrorBody
	err := json.Unmarshal(w.Body.Bytes(), &body)
	assert.NoError(t, err, fmt.Sprintf("Failed to decode error response JSON: %s", w.Body.String()))

	assert.Equal(t, "error", body.Status)
	assert.Equal(t, expectedStatus, body.StatusCode)
	if expectedCode != "" {
		assert.Equal(t, expectedCode, body.Error.Code,
			"Response error code doesn't match")
	}
	return body
}
