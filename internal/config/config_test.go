package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("SECRET", "test-secret")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":8800", cfg.Addr)
	assert.Equal(t, "storefront", cfg.MongoDB)
	assert.Equal(t, 30*24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, TransportBearer, cfg.AuthTransport)
	assert.Equal(t, "https://fakestoreapi.com", cfg.FakeStoreURL)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SECRET", "test-secret")
	t.Setenv("ADDRESS", ":9000")
	t.Setenv("TOKEN_TTL", "24h")
	t.Setenv("AUTH_TRANSPORT", "cookie")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9000", cfg.Addr)
	assert.Equal(t, 24*time.Hour, cfg.TokenTTL)
	assert.Equal(t, TransportCookie, cfg.AuthTransport)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowOrigins)
}

func TestLoadRejectsMissingSecret(t *testing.T) {
	t.Setenv("SECRET", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadValues(t *testing.T) {
	t.Setenv("SECRET", "test-secret")
	t.Setenv("TOKEN_TTL", "soon")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("TOKEN_TTL", "")
	t.Setenv("AUTH_TRANSPORT", "carrier-pigeon")
	_, err = Load()
	require.Error(t, err)
}
