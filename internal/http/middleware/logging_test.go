package middleware

import (
	"bytes"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/tbourn/go-music-backend/internal/http/outcome"
)

func captureLogger(t *testing.T) *bytes.Buffer {
	t.Helper()
	var buf bytes.Buffer
	prev := log.Logger
	t.Cleanup(func() { log.Logger = prev })
	log.Logger = zerolog.New(&buf) // plain JSON lines
	return &buf
}

// newEngine builds a test engine with the normalizer ahead of mw.
func newEngine(mw ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(outcome.Normalizer())
	r.Use(mw...)
	return r
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var body map[string]any
	if err := json.Unmarshal(w.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid json body %q: %v", w.Body.String(), err)
	}
	return body
}

func TestRequestID_GenerateAndPropagate(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID())
	r.GET("/rid", func(c *gin.Context) {
		if GetRequestID(c) == "" {
			t.Fatalf("requestID not set in context")
		}
		c.String(http.StatusOK, "ok")
	})

	// No header -> generated
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/rid", nil))
	if w.Header().Get(requestIDHeader) == "" {
		t.Fatalf("expected generated %s header", requestIDHeader)
	}

	// Lowercase header -> propagated
	w2 := httptest.NewRecorder()
	req2 := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req2.Header.Set(strings.ToLower(requestIDHeader), "abc-123")
	r.ServeHTTP(w2, req2)
	if got := w2.Header().Get(requestIDHeader); got != "abc-123" {
		t.Fatalf("expected propagated request id, got %q", got)
	}

	// Oversized header -> replaced
	w3 := httptest.NewRecorder()
	req3 := httptest.NewRequest(http.MethodGet, "/rid", nil)
	req3.Header.Set(requestIDHeader, strings.Repeat("x", maxRequestIDLength+1))
	r.ServeHTTP(w3, req3)
	if got := w3.Header().Get(requestIDHeader); len(got) != 36 {
		t.Fatalf("expected generated uuid for oversized id, got %q", got)
	}
}

func TestLogger_InfoWarnErrorAndPathFallback(t *testing.T) {
	buf := captureLogger(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(), outcome.Normalizer())

	r.GET("/albums/:id", func(c *gin.Context) {
		outcome.Respond(c, http.StatusOK, outcome.Message("ok"))
	})
	r.GET("/err", func(c *gin.Context) {
		outcome.Fail(c, errors.New("db down"))
	})

	for _, p := range []string{"/albums/album-1", "/missing", "/err"} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, p, nil))
	}

	logs := buf.String()
	if !strings.Contains(logs, `"level":"info"`) || !strings.Contains(logs, `"path":"/albums/:id"`) {
		t.Fatalf("expected info log with route path, got:\n%s", logs)
	}
	if !strings.Contains(logs, `"outcome":"success"`) {
		t.Fatalf("expected outcome kind in log, got:\n%s", logs)
	}
	if !strings.Contains(logs, `"level":"warn"`) || !strings.Contains(logs, `"path":"/missing"`) {
		t.Fatalf("expected warn log with raw path fallback, got:\n%s", logs)
	}
	if !strings.Contains(logs, `"level":"error"`) || !strings.Contains(logs, "db down") {
		t.Fatalf("expected error log carrying the unexpected cause, got:\n%s", logs)
	}
}

func TestRecovery_PanicBecomesGenericEnvelope(t *testing.T) {
	buf := captureLogger(t)

	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(RequestID(), Logger(), outcome.Normalizer(), Recovery())
	r.GET("/panic", func(c *gin.Context) { panic("kaboom secret") })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if w.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", w.Code)
	}
	body := decodeBody(t, w)
	if body["status"] != "error" || body["message"] != outcome.GenericErrorMessage {
		t.Fatalf("unexpected body: %v", body)
	}
	if strings.Contains(w.Body.String(), "kaboom") {
		t.Fatalf("panic value leaked to client: %s", w.Body.String())
	}
	out := buf.String()
	if !strings.Contains(out, "panic recovered") || !strings.Contains(out, "kaboom secret") {
		t.Fatalf("expected panic log, got:\n%s", out)
	}
	if !strings.Contains(out, `"outcome":"unexpected_failure"`) {
		t.Fatalf("expected access log to record unexpected outcome, got:\n%s", out)
	}
}

func TestRecovery_PanicAfterWrite_KeepsWrittenResponse(t *testing.T) {
	buf := captureLogger(t)

	r := newEngine(Recovery())
	r.GET("/panic-after-write", func(c *gin.Context) {
		c.String(http.StatusOK, "partial-body")
		panic("late kaboom")
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/panic-after-write", nil))

	if w.Body.String() != "partial-body" {
		t.Fatalf("expected the already written body only, got %q", w.Body.String())
	}
	if !strings.Contains(buf.String(), "panic recovered") {
		t.Fatalf("expected panic log, got:\n%s", buf.String())
	}
}

func TestLoggerFrom_FallbackAndRequestScoped(t *testing.T) {
	gin.SetMode(gin.TestMode)

	// Fallback: no Logger() installed, still tagged with the request id.
	buf1 := captureLogger(t)
	r1 := gin.New()
	r1.Use(RequestID())
	r1.GET("/use", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("custom")
		c.Status(http.StatusOK)
	})
	req := httptest.NewRequest(http.MethodGet, "/use", nil)
	req.Header.Set(requestIDHeader, "rid-1")
	r1.ServeHTTP(httptest.NewRecorder(), req)
	if !strings.Contains(buf1.String(), `"message":"custom"`) || !strings.Contains(buf1.String(), `"request_id":"rid-1"`) {
		t.Fatalf("unexpected fallback log: %s", buf1.String())
	}

	// With Logger() installed the request-scoped logger carries route fields.
	buf2 := captureLogger(t)
	r2 := gin.New()
	r2.Use(RequestID(), Logger())
	r2.GET("/use", func(c *gin.Context) {
		LoggerFrom(c).Info().Msg("custom2")
		c.Status(http.StatusOK)
	})
	r2.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/use", nil))
	out := buf2.String()
	if !strings.Contains(out, `"message":"custom2"`) || !strings.Contains(out, `"path":"/use"`) {
		t.Fatalf("expected request-scoped fields, got:\n%s", out)
	}
}

func TestHelpers_asString_truncate_outcomeKind(t *testing.T) {
	if asString("x") != "x" || asString(123) != "" {
		t.Fatalf("asString failed")
	}
	if truncate("hello", 10) != "hello" {
		t.Fatalf("truncate no-op failed")
	}
	if got := truncate("abcdefgh", 5); got != "abcde…" {
		t.Fatalf("truncate result = %q; want %q", got, "abcde…")
	}
	if truncate("abc", 0) != "abc" {
		t.Fatalf("truncate disable failed")
	}

	gin.SetMode(gin.TestMode)
	cases := []struct {
		o    outcome.Outcome
		want string
	}{
		{nil, "none"},
		{outcome.Success{Status: 200}, "success"},
		{outcome.Client(400, "x"), "client_failure"},
		{outcome.Protocol(404, ""), "protocol_failure"},
		{outcome.UnexpectedFailure{}, "unexpected_failure"},
	}
	for _, tc := range cases {
		c, _ := gin.CreateTestContext(httptest.NewRecorder())
		if tc.o != nil {
			outcome.Set(c, tc.o)
		}
		if got := outcomeKind(c); got != tc.want {
			t.Fatalf("outcomeKind(%T) = %q, want %q", tc.o, got, tc.want)
		}
	}
}
