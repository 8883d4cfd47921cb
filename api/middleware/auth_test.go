package middleware

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"example.com/fleetops/config"
	"example.com/fleetops/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func testRouter(cfg config.AuthConfig) *gin.Engine {
	gin.SetMode(gin.TestMode)

	logger := logrus.New()
	logger.SetOutput(io.Discard)

	r := gin.New()
	api := r.Group("/api/v1")
	api.Use(JWTAuth(cfg, logger))
	api.GET("/whoami", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"fleet_id": FleetID(c)})
	})
	api.GET("/admin-only", RequireAdmin(logger), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return r
}

func authConfig() config.AuthConfig {
	return config.AuthConfig{JWTSecret: "test-secret", Issuer: "fleet-service"}
}

func TestJWTAuthMissingHeader(t *testing.T) {
	r := testRouter(authConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthInvalidToken(t *testing.T) {
	r := testRouter(authConfig())

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer not-a-token")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestJWTAuthValidToken(t *testing.T) {
	cfg := authConfig()
	r := testRouter(cfg)

	token, _, err := auth.GenerateToken(cfg, "driver-1", "driver", "f1", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/whoami", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	require.Contains(t, w.Body.String(), `"fleet_id":"f1"`)
}

func TestRequireAdminRejectsDriver(t *testing.T) {
	cfg := authConfig()
	r := testRouter(cfg)

	token, _, err := auth.GenerateToken(cfg, "driver-1", "driver", "f1", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRequireAdminAllowsAdmin(t *testing.T) {
	cfg := authConfig()
	r := testRouter(cfg)

	token, _, err := auth.GenerateToken(cfg, "ops-1", "admin", "f1", time.Hour)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/v1/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)
}
