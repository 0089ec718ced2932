package middleware

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
)

const testSecret = "test-secret"

func newProtectedRouter(t *testing.T, expertOnly bool) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	auth := NewAuthMiddleware(testSecret)
	router := gin.New()

	handlers := []gin.HandlerFunc{auth.RequireAuth()}
	if expertOnly {
		handlers = append(handlers, auth.RequireExpert())
	}
	handlers = append(handlers, func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"user_id":    c.GetString("user_id"),
			"user_email": c.GetString("user_email"),
		})
	})
	router.GET("/protected", handlers...)
	return router
}

func TestRequireAuthRejectsMissingToken(t *testing.T) {
	router := newProtectedRouter(t, false)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("expected 401, got %d", w.Code)
	}
}

func TestRequireAuthAcceptsBearerToken(t *testing.T) {
	router := newProtectedRouter(t, false)

	token, _, err := NewToken(testSecret, 7, "user@example.com", false, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	body := w.Body.String()
	if !strings.Contains(body, `"user_id":"7"`) || !strings.Contains(body, "user@example.com") {
		t.Errorf("claims not propagated to the context: %s", body)
	}
}

func TestRequireAuthAcceptsQueryToken(t *testing.T) {
	router := newProtectedRouter(t, false)

	token, _, err := NewToken(testSecret, 7, "user@example.com", false, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected?token="+token, nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Errorf("query token should authenticate, got %d", w.Code)
	}
}

func TestRequireAuthRejectsExpiredAndForgedTokens(t *testing.T) {
	router := newProtectedRouter(t, false)

	expired, _, err := NewToken(testSecret, 7, "user@example.com", false, -time.Minute)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	forged, _, err := NewToken("other-secret", 7, "user@example.com", false, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	for name, token := range map[string]string{"expired": expired, "forged": forged} {
		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		router.ServeHTTP(w, req)

		if w.Code != http.StatusUnauthorized {
			t.Errorf("%s token should be 401, got %d", name, w.Code)
		}
	}
}

func TestRequireExpert(t *testing.T) {
	router := newProtectedRouter(t, true)

	userToken, _, err := NewToken(testSecret, 7, "user@example.com", false, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}
	expertToken, _, err := NewToken(testSecret, 8, "expert@example.com", true, time.Hour)
	if err != nil {
		t.Fatalf("failed to issue token: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+userToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-expert should be 403, got %d", w.Code)
	}

	w = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+expertToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("expert should pass, got %d", w.Code)
	}
}
