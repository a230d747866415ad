package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.AppPort)
	assert.Equal(t, "memory", cfg.StoreDriver)
	assert.Equal(t, 24*time.Hour, cfg.SelectionTTL)
	assert.Equal(t, "94767806639", cfg.WhatsAppPhone)
	assert.False(t, cfg.IsProduction())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_PORT", "9090")
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("SELECTION_TTL", "30m")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example")

	cfg, err := Load(t.TempDir())
	require.NoError(t, err)

	assert.Equal(t, "9090", cfg.AppPort)
	assert.Equal(t, "redis", cfg.StoreDriver)
	assert.Equal(t, 30*time.Minute, cfg.SelectionTTL)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.AllowedOrigins())
}

func TestLoadConfigFile(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte("APP_PORT: \"7070\"\nENV: production\n"), 0o644))

	cfg, err := Load(dir)
	require.NoError(t, err)
	assert.Equal(t, "7070", cfg.AppPort)
	assert.True(t, cfg.IsProduction())
}

func TestValidate(t *testing.T) {
	t.Setenv("STORE_DRIVER", "postgres")
	t.Setenv("DATABASE_URL", "")
	_, err := Load(t.TempDir())
	assert.ErrorContains(t, err, "DATABASE_URL")

	t.Setenv("STORE_DRIVER", "sqlite")
	_, err = Load(t.TempDir())
	assert.ErrorContains(t, err, "STORE_DRIVER")

	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("TIMEZONE", "Nowhere/Land")
	_, err = Load(t.TempDir())
	assert.ErrorContains(t, err, "TIMEZONE")
}
