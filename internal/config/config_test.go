package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, ":8080", cfg.HTTPAddress())
	assert.Equal(t, "memory", cfg.StoreBackend)
	assert.Equal(t, "nadialend:db", cfg.StoreKey)
	assert.Equal(t, "admin@nadia.local", cfg.AdminEmail)
	assert.Equal(t, "admin123", cfg.AdminPassword)
	assert.Equal(t, 60*time.Minute, cfg.SessionTTL)
	assert.Equal(t, []string{"*"}, cfg.CORSOrigins)
}

func TestLoad_RequiresJWTSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_BackendValidation(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")

	t.Setenv("STORE_BACKEND", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err := Load()
	assert.Error(t, err)

	t.Setenv("DATABASE_URL", "postgres://localhost/nadialend")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "postgres", cfg.StoreBackend)

	t.Setenv("STORE_BACKEND", "carrier-pigeon")
	_, err = Load()
	assert.Error(t, err)
}

func TestLoad_SessionTTL(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("SESSION_TTL_MINUTES", "15")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 15*time.Minute, cfg.SessionTTL)

	t.Setenv("SESSION_TTL_MINUTES", "not-a-number")
	cfg, err = Load()
	require.NoError(t, err)
	assert.Equal(t, 60*time.Minute, cfg.SessionTTL)
}
