package truegate_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	truegate "github.com/truegate/go-client"
)

func TestDefaultConfig(t *testing.T) {
	cfg := truegate.DefaultConfig()

	assert.Equal(t, "https://truegate.live/api", cfg.GetBaseURL())
	assert.Equal(t, 15*time.Second, cfg.GetTimeout())
	assert.Equal(t, ".truegate/token", cfg.GetTokenStoragePath())
	assert.Equal(t, "X-CSRF-Token", cfg.GetCSRFHeaderName())
	assert.False(t, cfg.GetDegradedFallback())
	assert.False(t, cfg.GetDebug())
}

func TestLoadConfig(t *testing.T) {
	t.Run("no file yields defaults", func(t *testing.T) {
		cfg, err := truegate.LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, truegate.DefaultConfig(), cfg)
	})

	t.Run("environment overrides defaults", func(t *testing.T) {
		t.Setenv("TRUEGATE_BASE_URL", "http://localhost:8080/api")
		t.Setenv("TRUEGATE_TIMEOUT", "30s")
		t.Setenv("TRUEGATE_DEGRADED_FALLBACK", "true")

		cfg, err := truegate.LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:8080/api", cfg.GetBaseURL())
		assert.Equal(t, 30*time.Second, cfg.GetTimeout())
		assert.True(t, cfg.GetDegradedFallback())
	})

	t.Run("config file overrides defaults", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "truegate.yaml")
		content := "base_url: http://staging.truegate.live/api\ncsrf_header_name: X-Forgery-Token\ndebug: true\n"
		require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

		cfg, err := truegate.LoadConfig(path)
		require.NoError(t, err)
		assert.Equal(t, "http://staging.truegate.live/api", cfg.GetBaseURL())
		assert.Equal(t, "X-Forgery-Token", cfg.GetCSRFHeaderName())
		assert.True(t, cfg.GetDebug())
		assert.Equal(t, 15*time.Second, cfg.GetTimeout(), "unset keys keep defaults")
	})

	t.Run("missing file is an error", func(t *testing.T) {
		_, err := truegate.LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
		assert.Error(t, err)
	})

	t.Run("zero timeout falls back to the default", func(t *testing.T) {
		t.Setenv("TRUEGATE_TIMEOUT", "0s")

		cfg, err := truegate.LoadConfig("")
		require.NoError(t, err)
		assert.Equal(t, 15*time.Second, cfg.GetTimeout())
	})
}
