package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"loan-advisory-assistant/internal/model"
)

type mockLogger struct{}

func (m *mockLogger) Debug(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Debugf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Info(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Infof(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Warn(ctx context.Context, args ...any)                   {}
func (m *mockLogger) Warnf(ctx context.Context, format string, args ...any)   {}
func (m *mockLogger) Error(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Errorf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) DPanic(ctx context.Context, args ...any)                 {}
func (m *mockLogger) DPanicf(ctx context.Context, format string, args ...any) {}
func (m *mockLogger) Panic(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Panicf(ctx context.Context, format string, args ...any)  {}
func (m *mockLogger) Fatal(ctx context.Context, args ...any)                  {}
func (m *mockLogger) Fatalf(ctx context.Context, format string, args ...any)  {}

// runAuth sends one request through Auth and returns the status code and the
// scope the middleware attached, if the request got through.
func runAuth(t *testing.T, apiKey string, headers map[string]string) (int, model.Scope, bool) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mw := New(&mockLogger{}, apiKey, nil)

	var (
		sc      model.Scope
		reached bool
	)
	r := gin.New()
	r.GET("/scoped", mw.Auth(), func(c *gin.Context) {
		sc = ScopeFromContext(c)
		reached = true
		c.Status(http.StatusOK)
	})

	req := httptest.NewRequest(http.MethodGet, "/scoped", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code, sc, reached
}

func TestAuth(t *testing.T) {
	t.Run("wrong key is rejected", func(t *testing.T) {
		code, _, reached := runAuth(t, "secret", map[string]string{
			"X-API-Key": "wrong",
			"X-User-ID": "u1",
		})
		if code != http.StatusUnauthorized {
			t.Errorf("expected 401, got %d", code)
		}
		if reached {
			t.Error("handler must not run on a rejected request")
		}
	})

	t.Run("matching key with user id authenticates", func(t *testing.T) {
		code, sc, _ := runAuth(t, "secret", map[string]string{
			"X-API-Key":  "secret",
			"X-User-ID":  "u1",
			"X-Username": "alice",
		})
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if !sc.Authenticated {
			t.Error("expected authenticated scope")
		}
		if sc.UserID != "u1" || sc.Username != "alice" {
			t.Errorf("unexpected scope: %+v", sc)
		}
	})

	t.Run("matching key without user id stays anonymous", func(t *testing.T) {
		code, sc, _ := runAuth(t, "secret", map[string]string{"X-API-Key": "secret"})
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if sc.Authenticated {
			t.Error("no user id, scope must stay unauthenticated")
		}
	})

	t.Run("no configured key never authenticates", func(t *testing.T) {
		code, sc, _ := runAuth(t, "", map[string]string{"X-User-ID": "u1"})
		if code != http.StatusOK {
			t.Fatalf("expected 200, got %d", code)
		}
		if sc.Authenticated {
			t.Error("a user id header alone must not grant authentication")
		}
		if sc.UserID != "u1" {
			t.Errorf("user id should still flow into the scope, got %q", sc.UserID)
		}
	})

	t.Run("scope defaults to zero without the middleware", func(t *testing.T) {
		gin.SetMode(gin.TestMode)
		w := httptest.NewRecorder()
		c, _ := gin.CreateTestContext(w)
		if sc := ScopeFromContext(c); sc.Authenticated || sc.UserID != "" {
			t.Errorf("expected zero scope, got %+v", sc)
		}
	})
}
