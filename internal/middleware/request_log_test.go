package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"pet-adoption/internal/platform/logger"

	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entry struct {
	level  string
	msg    string
	fields logger.Fields
}

type recordingLogger struct {
	entries *[]entry
}

func (r recordingLogger) With(logger.Fields) logger.Logger { return r }
func (r recordingLogger) Debug(msg string, f logger.Fields) {
	*r.entries = append(*r.entries, entry{"debug", msg, f})
}
func (r recordingLogger) Info(msg string, f logger.Fields) {
	*r.entries = append(*r.entries, entry{"info", msg, f})
}
func (r recordingLogger) Warn(msg string, f logger.Fields) {
	*r.entries = append(*r.entries, entry{"warn", msg, f})
}
func (r recordingLogger) Error(msg string, f logger.Fields) {
	*r.entries = append(*r.entries, entry{"error", msg, f})
}

func TestRequestLog_LevelByStatus(t *testing.T) {
	cases := []struct {
		status int
		level  string
	}{
		{http.StatusOK, "debug"},
		{http.StatusNotFound, "warn"},
		{http.StatusInternalServerError, "error"},
	}

	for _, tc := range cases {
		var entries []entry
		h := chimw.RequestID(RequestLog(recordingLogger{&entries})(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(tc.status)
		})))

		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/pets", nil))

		require.Len(t, entries, 1)
		assert.Equal(t, tc.level, entries[0].level)
		assert.Equal(t, tc.status, entries[0].fields["status"])
		assert.Equal(t, "/pets", entries[0].fields["path"])
		assert.NotEmpty(t, entries[0].fields["request_id"])
	}
}
