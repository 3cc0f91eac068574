package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jsamuelsen/quotewall/internal/adapters/http/dto"
	"github.com/jsamuelsen/quotewall/internal/platform/logging"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// captureLogs makes the logging fallback write JSON into the returned buffer.
func captureLogs(t *testing.T) *bytes.Buffer {
	t.Helper()

	var buf bytes.Buffer
	original := logging.FromContext(context.Background())
	logging.SetDefault(slog.New(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	t.Cleanup(func() { logging.SetDefault(original) })

	return &buf
}

func serve(r *gin.Engine, req *http.Request) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	return w
}

func TestIDMiddleware(t *testing.T) {
	tests := []struct {
		name    string
		mw      gin.HandlerFunc
		header  string
		get     func(*gin.Context) string
		fromCtx func(context.Context) string
	}{
		{name: "request id", mw: RequestID(), header: HeaderRequestID, get: GetRequestID, fromCtx: RequestIDFromContext},
		{name: "correlation id", mw: CorrelationID(), header: HeaderCorrelationID, get: GetCorrelationID, fromCtx: CorrelationIDFromContext},
	}

	for _, tt := range tests {
		t.Run(tt.name+" generated", func(t *testing.T) {
			var fromGin, fromCtx string

			r := gin.New()
			r.Use(tt.mw)
			r.GET("/", func(c *gin.Context) {
				fromGin = tt.get(c)
				fromCtx = tt.fromCtx(c.Request.Context())
			})

			w := serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

			_, err := uuid.Parse(fromGin)
			require.NoError(t, err)
			assert.Equal(t, fromGin, fromCtx)
			assert.Equal(t, fromGin, w.Header().Get(tt.header))
		})

		t.Run(tt.name+" propagated", func(t *testing.T) {
			var fromCtx string

			r := gin.New()
			r.Use(tt.mw)
			r.GET("/", func(c *gin.Context) { fromCtx = tt.fromCtx(c.Request.Context()) })

			req := httptest.NewRequest(http.MethodGet, "/", nil)
			req.Header.Set(tt.header, "upstream-42")
			w := serve(r, req)

			assert.Equal(t, "upstream-42", fromCtx)
			assert.Equal(t, "upstream-42", w.Header().Get(tt.header))
		})
	}
}

func TestIDMiddleware_EnrichesContextLogger(t *testing.T) {
	buf := captureLogs(t)

	r := gin.New()
	r.Use(RequestID(), CorrelationID())
	r.GET("/", func(c *gin.Context) {
		logging.FromContext(c.Request.Context()).Info("inside handler")
	})

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set(HeaderRequestID, "req-1")
	req.Header.Set(HeaderCorrelationID, "corr-1")
	serve(r, req)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "req-1", entry["request_id"])
	assert.Equal(t, "corr-1", entry["correlation_id"])
}

func TestContextIDs_Empty(t *testing.T) {
	assert.Empty(t, RequestIDFromContext(context.Background()))
	assert.Empty(t, CorrelationIDFromContext(nil)) //nolint:staticcheck // nil guard

	c, _ := gin.CreateTestContext(httptest.NewRecorder())
	assert.Empty(t, GetRequestID(c))
	assert.Empty(t, GetCorrelationID(c))
}

func TestLogging(t *testing.T) {
	tests := []struct {
		name      string
		path      string
		status    int
		wantLevel string
		wantLog   bool
	}{
		{name: "fragment ok", path: "/fragments/quote", status: http.StatusOK, wantLevel: "INFO", wantLog: true},
		{name: "empty meme", path: "/fragments/meme", status: http.StatusNoContent, wantLevel: "INFO", wantLog: true},
		{name: "not found", path: "/api/v1/memes/latest", status: http.StatusNotFound, wantLevel: "WARN", wantLog: true},
		{name: "upstream down", path: "/fragments/quote", status: http.StatusServiceUnavailable, wantLevel: "ERROR", wantLog: true},
		{name: "probe skipped", path: "/-/live", status: http.StatusOK, wantLog: false},
		{name: "explicit skip", path: "/favicon.ico", status: http.StatusNotFound, wantLog: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := captureLogs(t)

			r := gin.New()
			r.Use(Logging("/favicon.ico"))
			r.GET(tt.path, func(c *gin.Context) { c.Status(tt.status) })

			req := httptest.NewRequest(http.MethodGet, tt.path+"?x=1", nil)
			req.Header.Set("HX-Request", "true")
			serve(r, req)

			if !tt.wantLog {
				assert.Empty(t, buf.String())
				return
			}

			var entry map[string]any
			require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
			assert.Equal(t, "request completed", entry["msg"])
			assert.Equal(t, tt.wantLevel, entry["level"])
			assert.Equal(t, tt.path+"?x=1", entry["path"])
			assert.InDelta(t, tt.status, entry["status"], 0)
			assert.Equal(t, true, entry["htmx"])
		})
	}
}

func TestRecovery(t *testing.T) {
	buf := captureLogs(t)

	r := gin.New()
	r.Use(Recovery())
	r.GET("/boom", func(*gin.Context) { panic("template exploded") })

	w := serve(r, httptest.NewRequest(http.MethodGet, "/boom", nil))

	assert.Equal(t, http.StatusInternalServerError, w.Code)

	var resp dto.ErrorResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, dto.ErrorCodeInternal, resp.Error.Code)
	assert.NotContains(t, w.Body.String(), "template exploded")
	assert.Contains(t, buf.String(), "template exploded")
	assert.Contains(t, buf.String(), "panic recovered")
}

func TestRecovery_AfterWrite(t *testing.T) {
	captureLogs(t)

	r := gin.New()
	r.Use(Recovery())
	r.GET("/partial", func(c *gin.Context) {
		c.String(http.StatusOK, "<p>")
		panic("late")
	})

	w := serve(r, httptest.NewRequest(http.MethodGet, "/partial", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "<p>", w.Body.String())
}

func TestTimeout(t *testing.T) {
	t.Run("sets deadline", func(t *testing.T) {
		var deadline time.Time
		var ok bool

		r := gin.New()
		r.Use(Timeout(time.Second))
		r.GET("/", func(c *gin.Context) { deadline, ok = c.Request.Context().Deadline() })

		start := time.Now()
		serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

		require.True(t, ok)
		assert.WithinDuration(t, start.Add(time.Second), deadline, 100*time.Millisecond)
	})

	t.Run("zero disables", func(t *testing.T) {
		var ok bool

		r := gin.New()
		r.Use(Timeout(0))
		r.GET("/", func(c *gin.Context) { _, ok = c.Request.Context().Deadline() })

		serve(r, httptest.NewRequest(http.MethodGet, "/", nil))

		assert.False(t, ok)
	})
}
