package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/P-CIV/ecocycle-sub001/pkg/jwt"
	"github.com/gin-gonic/gin"
)

func setupRouter(tokens *jwt.TokenService) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	authed := router.Group("/", JWTAuthMiddleware(tokens))
	authed.GET("/me", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"uid": c.GetString("uid")})
	})
	authed.GET("/admin", RequireRole("admin"), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"ok": true})
	})
	return router
}

func TestJWTAuthMissingHeader(t *testing.T) {
	router := setupRouter(jwt.NewTokenService("s", 3600))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthBadFormat(t *testing.T) {
	router := setupRouter(jwt.NewTokenService("s", 3600))

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Token abc")
	router.ServeHTTP(w, req)

	if w.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", w.Code)
	}
}

func TestJWTAuthValidToken(t *testing.T) {
	tokens := jwt.NewTokenService("s", 3600)
	router := setupRouter(tokens)

	token, err := tokens.Generate("U1", "u1@x.com", "agent")
	if err != nil {
		t.Fatalf("generate failed: %v", err)
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/me", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	router.ServeHTTP(w, req)

	if w.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200 (%s)", w.Code, w.Body.String())
	}
}

func TestRequireRoleForbidsNonAdmins(t *testing.T) {
	tokens := jwt.NewTokenService("s", 3600)
	router := setupRouter(tokens)

	agentToken, _ := tokens.Generate("U1", "u1@x.com", "agent")
	w := httptest.NewRecorder()
	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+agentToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusForbidden {
		t.Errorf("agent: status = %d, want 403", w.Code)
	}

	adminToken, _ := tokens.Generate("U2", "admin@x.com", "admin")
	w = httptest.NewRecorder()
	req = httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken)
	router.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("admin: status = %d, want 200", w.Code)
	}
}
