//go:build unit || e2e

package httptest

import (
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

const requestIDHeader = "X-Request-ID"

// AssertJSONTraced checks that a response is JSON and carries the request ID
// the logging middleware assigns.
func AssertJSONTraced(t *testing.T, w *httptest.ResponseRecorder) {
	t.Helper()
	assert.True(t, strings.HasPrefix(w.Header().Get("Content-Type"), "application/json"),
		"content type %q", w.Header().Get("Content-Type"))
	assert.NotEmpty(t, w.Header().Get(requestIDHeader), "missing %s", requestIDHeader)
}
