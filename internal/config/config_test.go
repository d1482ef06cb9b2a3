package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadConfig(t *testing.T) {
	t.Setenv("STORE_DRIVER", "redis")
	t.Setenv("REDIS_HOST", "localhost")
	t.Setenv("REDIS_PORT", "6380")
	t.Setenv("SEARCH_DEBOUNCE_MS", "150")

	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "redis", cfg.Store.Driver)
	require.Equal(t, "localhost:6380", cfg.Redis.Addr())
	require.Equal(t, 150*time.Millisecond, cfg.Search.Debounce)
	require.Equal(t, "font-arial", cfg.UI.DefaultFont)
	require.Equal(t, "schemes", cfg.Store.Key)
}

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("STORE_DRIVER", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "file", cfg.Store.Driver)
	require.Equal(t, 300*time.Millisecond, cfg.Search.Debounce)
}

func TestLoadConfigRejectsUnknownDriver(t *testing.T) {
	t.Setenv("STORE_DRIVER", "localstorage")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigRequiresMongoURI(t *testing.T) {
	t.Setenv("STORE_DRIVER", "mongo")
	t.Setenv("MONGODB_URI", "")
	_, err := LoadConfig()
	require.Error(t, err)
}

func TestLoadConfigPassesFontThrough(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("UI_DEFAULT_FONT", "font-georgia")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, "font-georgia", cfg.UI.DefaultFont)
}

func TestLoadConfigCORSOrigins(t *testing.T) {
	t.Setenv("STORE_DRIVER", "memory")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173, http://127.0.0.1:5173,")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	require.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, cfg.Server.CORSOrigins)
}
