package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/salon-queue/internal/clock"
	"github.com/BruksfildServices01/salon-queue/internal/config"
	"github.com/BruksfildServices01/salon-queue/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", AuthCookieName: "sq_auth"}
}

func newRouter(cfg *config.Config, mw ...gin.HandlerFunc) *gin.Engine {
	r := gin.New()
	handlers := append(mw, func(c *gin.Context) {
		id, _ := UserID(c)
		c.JSON(http.StatusOK, gin.H{"userId": id, "isAdmin": c.GetBool(ContextIsAdmin)})
	})
	r.GET("/x", handlers...)
	return r
}

func token(t *testing.T, cfg *config.Config, u *models.User, now time.Time) string {
	t.Helper()
	tok, err := GenerateToken(cfg, u, now)
	require.NoError(t, err)
	return tok
}

func TestAuthMiddlewareAcceptsCookieAndBearer(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg, AuthMiddleware(cfg, clock.NewSystem("")))
	tok := token(t, cfg, &models.User{ID: "u1", IsAdmin: true}, time.Now())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.AddCookie(&http.Cookie{Name: "sq_auth", Value: tok})
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"u1","isAdmin":true}`, w.Body.String())

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+tok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejects(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg, AuthMiddleware(cfg, clock.NewSystem("")))

	expired := token(t, cfg, &models.User{ID: "u1"}, time.Now().Add(-8*24*time.Hour))
	other := token(t, &config.Config{JWTSecret: "other"}, &models.User{ID: "u1"}, time.Now())

	for name, header := range map[string]string{
		"missing":      "",
		"expired":      "Bearer " + expired,
		"wrong secret": "Bearer " + other,
		"garbage":      "Bearer abc",
	} {
		t.Run(name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/x", nil)
			if header != "" {
				req.Header.Set("Authorization", header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, http.StatusUnauthorized, w.Code)
		})
	}
}

func TestAuthMiddlewareUsesIssuingClock(t *testing.T) {
	cfg := testConfig()
	issued := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	clk := clock.NewFixed(issued)
	r := newRouter(cfg, AuthMiddleware(cfg, clk))
	tok := token(t, cfg, &models.User{ID: "u1"}, issued)

	call := func() int {
		req := httptest.NewRequest(http.MethodGet, "/x", nil)
		req.Header.Set("Authorization", "Bearer "+tok)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		return w.Code
	}

	assert.Equal(t, http.StatusOK, call())

	clk.Advance(TokenTTL + time.Minute)
	assert.Equal(t, http.StatusUnauthorized, call())
}

func TestOptionalAuthLetsAnonymousThrough(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg, OptionalAuth(cfg, clock.NewSystem("")))

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer broken")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"userId":"","isAdmin":false}`, w.Body.String())
}

func TestRequireAdmin(t *testing.T) {
	cfg := testConfig()
	r := newRouter(cfg, AuthMiddleware(cfg, clock.NewSystem("")), RequireAdmin())

	req := httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Authorization", "Bearer "+token(t, cfg, &models.User{ID: "u1"}, time.Now()))
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
}

func TestCORSMiddleware(t *testing.T) {
	r := gin.New()
	r.Use(CORSMiddleware([]string{"http://app.test"}))
	r.GET("/x", func(c *gin.Context) { c.Status(http.StatusOK) })

	req := httptest.NewRequest(http.MethodOptions, "/x", nil)
	req.Header.Set("Origin", "http://app.test")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.test", w.Header().Get("Access-Control-Allow-Origin"))

	req = httptest.NewRequest(http.MethodGet, "/x", nil)
	req.Header.Set("Origin", "http://evil.test")
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Empty(t, w.Header().Get("Access-Control-Allow-Origin"))
}
