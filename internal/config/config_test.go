package config

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/telbook/telbook-backend/pkg/utils"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "dev-password")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "mongodb://localhost:27017/telbook", cfg.MongoURI)
	assert.Equal(t, "telbook", cfg.DatabaseName)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Environment)
	assert.False(t, cfg.IsProduction())
	assert.Equal(t, 1440, cfg.TokenExpireMinutes)
	assert.Equal(t, "admin", cfg.AdminUsername)
	assert.Equal(t, []string{"http://localhost:5173", "http://localhost:3000"}, cfg.AllowedOrigins)
}

func TestLoad_HashesPlainAdminPassword(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "dev-password")

	cfg, err := Load()
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(cfg.AdminPasswordHash, "$argon2id$"))
	ok, err := utils.VerifyPassword("dev-password", cfg.AdminPasswordHash)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestLoad_PrefersExplicitHash(t *testing.T) {
	hash, err := utils.HashPassword("real-password")
	require.NoError(t, err)

	t.Setenv("ADMIN_PASSWORD", "ignored")
	t.Setenv("ADMIN_PASSWORD_HASH", hash)

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, hash, cfg.AdminPasswordHash)
}

func TestLoad_RequiresAdminCredential(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("ADMIN_PASSWORD_HASH", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_ParsesOrigins(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("ALLOWED_ORIGINS", "https://telbook.example.com, https://www.telbook.example.com ,")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t,
		[]string{"https://telbook.example.com", "https://www.telbook.example.com"},
		cfg.AllowedOrigins)
}

func TestLoad_EnvironmentNormalized(t *testing.T) {
	t.Setenv("ADMIN_PASSWORD", "pw")
	t.Setenv("ENV", "  PRODUCTION ")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsProduction())
}
