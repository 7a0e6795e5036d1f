package middlewares

import (
	"ShifaCare/utils"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
)

const testSessionKey = "0123456789abcdef0123456789abcdef"

func apiRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	gated := router.Group("/api/admin", RequireSessionAPI())
	gated.GET("/appointments", func(c *gin.Context) {
		username, err := ExtractAdminUsername(c.Request.Context())
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusOK, gin.H{"admin": username})
	})
	gated.POST("/appointments/1/status", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func pageRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	router := gin.New()
	dashboard := router.Group("/admin", RequireSessionPage("/admin/login"))
	dashboard.GET("/dashboard", func(c *gin.Context) {
		c.String(http.StatusOK, "dashboard")
	})
	return router
}

func sessionCookie(t *testing.T) *http.Cookie {
	t.Helper()
	token, err := utils.GenerateSessionToken(1, "reception")
	if err != nil {
		t.Fatalf("failed to mint session token: %v", err)
	}
	return &http.Cookie{Name: utils.SessionCookieName, Value: token}
}

func TestRequireSessionAPI_MissingCookie(t *testing.T) {
	t.Setenv("SESSION_KEY", testSessionKey)
	router := apiRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/appointments", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected Cache-Control no-store, got %q", got)
	}
}

func TestRequireSessionAPI_GarbageToken(t *testing.T) {
	t.Setenv("SESSION_KEY", testSessionKey)
	router := apiRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/appointments", nil)
	req.AddCookie(&http.Cookie{Name: utils.SessionCookieName, Value: "v2.local.garbage"})
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rec.Code)
	}
}

func TestRequireSessionAPI_ValidGetPasses(t *testing.T) {
	t.Setenv("SESSION_KEY", testSessionKey)
	router := apiRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/admin/appointments", nil)
	req.AddCookie(sessionCookie(t))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if !strings.Contains(rec.Body.String(), "reception") {
		t.Errorf("expected claims to reach the handler, got %s", rec.Body.String())
	}
	if got := rec.Header().Get("Cache-Control"); got != "no-store" {
		t.Errorf("expected Cache-Control no-store on success too, got %q", got)
	}
}

func TestRequireSessionAPI_PostWithoutOriginForbidden(t *testing.T) {
	t.Setenv("SESSION_KEY", testSessionKey)
	router := apiRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/1/status", nil)
	req.AddCookie(sessionCookie(t))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for state change without origin, got %d", rec.Code)
	}
}

func TestRequireSessionAPI_PostWithMatchingOrigin(t *testing.T) {
	t.Setenv("SESSION_KEY", testSessionKey)
	router := apiRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/1/status", nil)
	req.Host = "clinic.example.com"
	req.Header.Set("Origin", "https://clinic.example.com")
	req.AddCookie(sessionCookie(t))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 for same-origin state change, got %d", rec.Code)
	}
}

func TestRequireSessionAPI_PostWithForeignOrigin(t *testing.T) {
	t.Setenv("SESSION_KEY", testSessionKey)
	router := apiRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/1/status", nil)
	req.Host = "clinic.example.com"
	req.Header.Set("Origin", "https://evil.example.net")
	req.AddCookie(sessionCookie(t))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusForbidden {
		t.Fatalf("expected 403 for cross-origin state change, got %d", rec.Code)
	}
}

func TestRequireSessionAPI_RefererFallback(t *testing.T) {
	t.Setenv("SESSION_KEY", testSessionKey)
	router := apiRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/admin/appointments/1/status", nil)
	req.Host = "clinic.example.com"
	req.Header.Set("Referer", "https://clinic.example.com/admin/dashboard")
	req.AddCookie(sessionCookie(t))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200 with matching Referer, got %d", rec.Code)
	}
}

func TestRequireSessionPage_RedirectsToLogin(t *testing.T) {
	t.Setenv("SESSION_KEY", testSessionKey)
	router := pageRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusFound {
		t.Fatalf("expected 302, got %d", rec.Code)
	}
	location := rec.Header().Get("Location")
	if location != "/admin/login?next=%2Fadmin%2Fdashboard" {
		t.Errorf("unexpected redirect target: %q", location)
	}
}

func TestRequireSessionPage_ValidSessionPasses(t *testing.T) {
	t.Setenv("SESSION_KEY", testSessionKey)
	router := pageRouter(t)

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(sessionCookie(t))
	router.ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}
