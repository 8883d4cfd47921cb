package middleware

import (
	"net/http"
	"strings"

	"example.com/fleetops/config"
	"example.com/fleetops/internal/auth"
	"example.com/fleetops/internal/models"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

// claimsContextKey is where validated token claims live in the gin context
const claimsContextKey = "auth_claims"

// JWTAuth middleware validates bearer tokens and stores the claims in the
// request context. Every request under /api/v1 carries a fleet-scoped token.
func JWTAuth(cfg config.AuthConfig, log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")

		// Check if Authorization header is present
		if authHeader == "" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Authorization header required",
			})
			c.Abort()
			return
		}

		// Extract token from header
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid Authorization header format. Expected: 'Bearer {token}'",
			})
			c.Abort()
			return
		}

		claims, err := auth.ParseToken(cfg, parts[1])
		if err != nil {
			log.WithError(err).Warn("Invalid bearer token")
			c.JSON(http.StatusUnauthorized, gin.H{
				"error": "Invalid token",
			})
			c.Abort()
			return
		}

		if claims.FleetID == "" {
			log.Warn("Token without fleet scope")
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Token is not fleet-scoped",
			})
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

// RequireAdmin middleware restricts a route to admin tokens
func RequireAdmin(log *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.Role != string(models.RoleAdmin) {
			log.Warn("Non-admin token on admin route")
			c.JSON(http.StatusForbidden, gin.H{
				"error": "Admin role required",
			})
			c.Abort()
			return
		}
		c.Next()
	}
}

// GetClaims retrieves the validated claims from the context
func GetClaims(c *gin.Context) *auth.Claims {
	val, exists := c.Get(claimsContextKey)
	if !exists {
		return nil
	}
	claims, ok := val.(*auth.Claims)
	if !ok {
		return nil
	}
	return claims
}

// FleetID returns the fleet scope of the request token
func FleetID(c *gin.Context) string {
	if claims := GetClaims(c); claims != nil {
		return claims.FleetID
	}
	return ""
}
