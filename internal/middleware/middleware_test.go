package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/deppfellow/web420-api/internal/config"
	"github.com/deppfellow/web420-api/internal/docstore"
	"github.com/deppfellow/web420-api/internal/errs"
	"github.com/deppfellow/web420-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
)

func testServer(t *testing.T) *server.Server {
	t.Helper()

	logger := zerolog.Nop()
	cfg := &config.Config{
		Primary: config.Primary{Env: "test"},
		Store:   config.StoreConfig{Driver: config.StoreDriverMemory},
		Auth: config.AuthConfig{
			BcryptCost:        4,
			RateLimitRequests: 2,
			RateLimitWindow:   time.Minute,
		},
	}

	return &server.Server{Config: cfg, Logger: &logger, Store: docstore.NewMemory()}
}

func newEcho(s *server.Server) *echo.Echo {
	e := echo.New()
	global := NewGlobalMiddlewares(s)
	e.HTTPErrorHandler = global.GlobalErrorHandler
	e.Use(RequestID(), NewContextEnhancer(s).EnhanceContext(), global.Recover())
	return e
}

func decodeMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Message string `json:"message"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode body %q: %v", rec.Body.String(), err)
	}
	return body.Message
}

func TestGlobalErrorHandler(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantPrefix string
	}{
		{"domain rejection", errs.NewUnauthorizedError("Invalid teamId: 1"), http.StatusUnauthorized, "Invalid teamId: 1"},
		{"store failure", &docstore.Error{Op: "find", Collection: "teams", Err: docstore.ErrClosed}, http.StatusNotImplemented, errs.StoreExceptionPrefix},
		{"unexpected failure", errors.New("boom"), http.StatusInternalServerError, errs.ServerExceptionPrefix},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			e := newEcho(testServer(t))
			e.GET("/fail", func(c echo.Context) error { return tt.err })

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/fail", nil))

			if rec.Code != tt.wantStatus {
				t.Fatalf("status = %d, want %d", rec.Code, tt.wantStatus)
			}
			if msg := decodeMessage(t, rec); !strings.HasPrefix(msg, tt.wantPrefix) {
				t.Fatalf("message = %q, want prefix %q", msg, tt.wantPrefix)
			}
		})
	}
}

func TestRecoverAnswersServerException(t *testing.T) {
	e := newEcho(testServer(t))
	e.GET("/panic", func(c echo.Context) error { panic("kaboom") })

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/panic", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("status = %d", rec.Code)
	}
	if msg := decodeMessage(t, rec); !strings.HasPrefix(msg, errs.ServerExceptionPrefix) {
		t.Fatalf("message = %q", msg)
	}
}

func TestRequestIDIsEchoed(t *testing.T) {
	e := newEcho(testServer(t))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, "abc-123")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	if got := rec.Header().Get(RequestIDHeader); got != "abc-123" {
		t.Fatalf("request id = %q", got)
	}
}

func TestOversizedRequestIDIsReplaced(t *testing.T) {
	e := newEcho(testServer(t))
	e.GET("/ok", func(c echo.Context) error { return c.NoContent(http.StatusOK) })

	long := strings.Repeat("x", maxRequestIDLength+1)
	req := httptest.NewRequest(http.MethodGet, "/ok", nil)
	req.Header.Set(RequestIDHeader, long)
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	got := rec.Header().Get(RequestIDHeader)
	if got == "" || got == long {
		t.Fatalf("request id = %q, want a generated id", got)
	}
}

func TestRequestLoggerReachesContext(t *testing.T) {
	e := newEcho(testServer(t))
	e.GET("/ok", func(c echo.Context) error {
		if LoggerFromContext(c.Request().Context(), nil) != GetLogger(c) {
			t.Error("context logger differs from the echo logger")
		}
		return c.NoContent(http.StatusOK)
	})

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/ok", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	fallback := zerolog.Nop()
	if got := LoggerFromContext(context.Background(), &fallback); got != &fallback {
		t.Fatal("expected the fallback logger outside a request")
	}
	if LoggerFromContext(context.Background(), nil) == nil {
		t.Fatal("expected a no-op logger without a fallback")
	}
}

func TestRateLimitRejectsAfterBurst(t *testing.T) {
	s := testServer(t)
	e := newEcho(s)
	e.POST("/login", func(c echo.Context) error { return c.NoContent(http.StatusOK) }, NewRateLimitMiddleware(s).Limit("login"))

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		req := httptest.NewRequest(http.MethodPost, "/login", nil)
		req.RemoteAddr = "10.0.0.1:1234"
		rec := httptest.NewRecorder()
		e.ServeHTTP(rec, req)
		codes = append(codes, rec.Code)
	}

	want := []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}
	for i := range want {
		if codes[i] != want[i] {
			t.Fatalf("codes = %v, want %v", codes, want)
		}
	}
}
