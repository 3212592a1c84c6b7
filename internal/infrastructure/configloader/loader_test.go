package configloader_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"sequencer_gateway/internal/infrastructure/configloader"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadAppliesDefaults(t *testing.T) {
	cfg, err := configloader.Load("")
	require.NoError(t, err)

	assert.Equal(t, "goerli-alpha", cfg.Network.Name)
	assert.Equal(t, 30*time.Second, cfg.RequestTimeout())
	assert.Equal(t, 8*time.Second, cfg.PollInterval())
	assert.Equal(t, 5*time.Minute, cfg.MaxWait())
	assert.Equal(t, 16, cfg.Waiter.MaxConcurrentWaits)
	assert.Equal(t, "8080", cfg.Server.Port)
	assert.Equal(t, 315, cfg.Server.WriteTimeout)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/metrics", cfg.Metrics.Path)
}

func TestLoadExpandsEnvironment(t *testing.T) {
	t.Setenv("GATEWAY_BASE_URL", "http://localhost:5050")
	path := writeConfig(t, `
network:
  baseURL: ${GATEWAY_BASE_URL}
httpClient:
  requestTimeoutMillis: 1500
  rateLimitPerSecond: 5
waiter:
  pollIntervalMillis: 250
server:
  port: "9090"
logging:
  level: debug
  format: console
metrics:
  enabled: true
`)

	cfg, err := configloader.Load(path)
	require.NoError(t, err)
	assert.Equal(t, "http://localhost:5050", cfg.Network.BaseURL)
	assert.Empty(t, cfg.Network.Name)
	assert.Equal(t, 1500*time.Millisecond, cfg.RequestTimeout())
	assert.Equal(t, 1, cfg.HTTPClient.RateBurst)
	assert.Equal(t, 250*time.Millisecond, cfg.PollInterval())
	assert.Equal(t, "9090", cfg.Server.Port)
	assert.True(t, cfg.Metrics.Enabled)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"bad log level", "logging:\n  level: verbose\n"},
		{"bad base url", "network:\n  baseURL: not a url\n"},
		{"bad chain id", "network:\n  chainID: SN_MAIN\n"},
		{"non numeric port", "server:\n  port: http\n"},
		{"negative timeout", "httpClient:\n  requestTimeoutMillis: -1\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := configloader.Load(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.Contains(t, err.Error(), "invalid configuration")
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := configloader.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
}
