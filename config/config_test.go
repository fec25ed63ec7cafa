package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/alkaid-labs/fetch/config"
)

func TestDefault(t *testing.T) {
	cfg := config.Default()
	assert.Equal(t, 30000, cfg.TimeoutMillis)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestFromEnv(t *testing.T) {
	t.Setenv("FETCH_BASE_URL", "https://api.example.com")
	t.Setenv("FETCH_TIMEOUT_MS", "5000")
	t.Setenv("FETCH_ERROR_CODES", "4001,4002")
	t.Setenv("FETCH_HEADERS", "X-App:demo")

	cfg, err := config.FromEnv()
	require.NoError(t, err)

	assert.Equal(t, "https://api.example.com", cfg.BaseURL)
	assert.Equal(t, 5000, cfg.TimeoutMillis)
	assert.Equal(t, []int64{4001, 4002}, cfg.ErrorCodes)
	assert.Equal(t, map[string]string{"X-App": "demo"}, cfg.Headers)
}

func TestFromFileFormatsAgree(t *testing.T) {
	dir := t.TempDir()

	files := map[string]string{
		"cfg.json": `{
			"base_url": "https://api.example.com",
			"timeout_ms": 5000,
			"error_codes": [4001],
			"headers": {"X-App": "demo"}
		}`,
		"cfg.yaml": `
base_url: https://api.example.com
timeout_ms: 5000
error_codes: [4001]
headers:
  X-App: demo
`,
		"cfg.toml": `
base_url = "https://api.example.com"
timeout_ms = 5000
error_codes = [4001]

[headers]
X-App = "demo"
`,
	}

	for name, content := range files {
		t.Run(name, func(t *testing.T) {
			path := filepath.Join(dir, name)
			require.NoError(t, os.WriteFile(path, []byte(content), 0644))

			cfg, err := config.FromFile(path)
			require.NoError(t, err)

			assert.Equal(t, "https://api.example.com", cfg.BaseURL)
			assert.Equal(t, 5000, cfg.TimeoutMillis)
			assert.Equal(t, []int64{4001}, cfg.ErrorCodes)
			assert.Equal(t, map[string]string{"X-App": "demo"}, cfg.Headers)
		})
	}
}

func TestFromFileUnsupported(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.ini")
	require.NoError(t, os.WriteFile(path, []byte("x=1"), 0644))

	_, err := config.FromFile(path)
	assert.ErrorContains(t, err, "unsupported config format")
}

func TestOptions(t *testing.T) {
	cfg := config.Default()
	cfg.BaseURL = "https://api.example.com"
	cfg.ErrorCodes = []int64{4001}
	cfg.RequestIDs = true

	// Timeout always, plus base URL, error codes, and request IDs
	assert.Len(t, cfg.Options(), 4)
}
