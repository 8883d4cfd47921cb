package auth

import (
	"testing"
	"time"

	"example.com/fleetops/config"

	"github.com/stretchr/testify/require"
)

func testAuthConfig() config.AuthConfig {
	return config.AuthConfig{
		JWTSecret: "test-secret",
		Issuer:    "fleet-service",
	}
}

func TestGenerateAndParseToken(t *testing.T) {
	cfg := testAuthConfig()

	token, expiresAt, err := GenerateToken(cfg, "ops@example.com", "admin", "f1", time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)
	require.WithinDuration(t, time.Now().Add(time.Hour), expiresAt, time.Minute)

	claims, err := ParseToken(cfg, token)
	require.NoError(t, err)
	require.Equal(t, "ops@example.com", claims.Subject)
	require.Equal(t, "admin", claims.Role)
	require.Equal(t, "f1", claims.FleetID)
}

func TestParseTokenWrongSecret(t *testing.T) {
	cfg := testAuthConfig()

	token, _, err := GenerateToken(cfg, "ops@example.com", "driver", "f1", time.Hour)
	require.NoError(t, err)

	other := cfg
	other.JWTSecret = "another-secret"
	_, err = ParseToken(other, token)
	require.Error(t, err)
}

func TestParseTokenWrongIssuer(t *testing.T) {
	cfg := testAuthConfig()

	token, _, err := GenerateToken(cfg, "ops@example.com", "driver", "f1", time.Hour)
	require.NoError(t, err)

	other := cfg
	other.Issuer = "someone-else"
	_, err = ParseToken(other, token)
	require.Error(t, err)
}

func TestGenerateTokenRequiresSecret(t *testing.T) {
	cfg := testAuthConfig()
	cfg.JWTSecret = ""

	_, _, err := GenerateToken(cfg, "ops@example.com", "driver", "f1", time.Hour)
	require.Error(t, err)
}
