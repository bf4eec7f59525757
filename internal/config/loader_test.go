package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yukin371/lspenc/internal/lsp"
	"github.com/yukin371/lspenc/pkg/logger"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, []string{"utf-8", "utf-16", "utf-32"}, cfg.Encoding.Supported)
	assert.False(t, cfg.Encoding.Strict)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.NoError(t, NewSchemaLoader().Validate(cfg))
}

func TestLoadMissingFileUsesDefaults(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "absent.yaml"))

	cfg, err := loader.Load()
	require.NoError(t, err)
	assert.Equal(t, DefaultConfig(), cfg)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfig(t, `
encoding:
  supported: [utf-16, utf-32]
  strict: true
log:
  level: debug
`)

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.Equal(t, []string{"utf-16", "utf-32"}, cfg.Encoding.Supported)
	assert.True(t, cfg.Encoding.Strict)
	assert.Equal(t, "debug", cfg.Log.Level)

	kinds, err := cfg.Encoding.SupportedKinds()
	require.NoError(t, err)
	assert.Equal(t, []lsp.PositionEncodingKind{lsp.UTF16, lsp.UTF32}, kinds)
}

func TestLoadFromEnv(t *testing.T) {
	path := writeConfig(t, `
encoding:
  supported: [utf-16]
`)
	t.Setenv("LSPENC_ENCODING_STRICT", "true")
	t.Setenv("LSPENC_ENCODING_SUPPORTED", "utf-8,utf-16")
	t.Setenv("LSPENC_LOG_LEVEL", "warn")

	cfg, err := NewLoader(path).Load()
	require.NoError(t, err)

	assert.True(t, cfg.Encoding.Strict)
	assert.Equal(t, []string{"utf-8", "utf-16"}, cfg.Encoding.Supported)
	assert.Equal(t, "warn", cfg.Log.Level)
}

func TestLoadRejectsUnknownEncoding(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{
			name: "unknown tag",
			content: `
encoding:
  supported: [utf-7]
`,
		},
		{
			name: "wrong case",
			content: `
encoding:
  supported: [UTF-8]
`,
		},
		{
			name: "empty list",
			content: `
encoding:
  supported: []
`,
		},
		{
			name: "duplicate tag",
			content: `
encoding:
  supported: [utf-8, utf-8]
`,
		},
		{
			name: "bad log level",
			content: `
log:
  level: verbose
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := NewLoader(writeConfig(t, tt.content)).Load()
			assert.ErrorContains(t, err, "configuration validation failed")
		})
	}
}

func TestLoadMalformedFile(t *testing.T) {
	_, err := NewLoader(writeConfig(t, "encoding: [unterminated")).Load()
	assert.ErrorContains(t, err, "failed to read config")
}

func TestSaveAndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")
	loader := NewLoader(path)

	cfg := DefaultConfig()
	cfg.Encoding.Supported = []string{"utf-32", "utf-8"}
	cfg.Log.Level = "error"
	require.NoError(t, loader.Save(cfg))

	reloaded, err := NewLoader(path).Load()
	require.NoError(t, err)
	assert.Equal(t, cfg, reloaded)
}

func TestSaveRejectsInvalid(t *testing.T) {
	loader := NewLoader(filepath.Join(t.TempDir(), "config.yaml"))
	cfg := DefaultConfig()
	cfg.Encoding.Supported = []string{"utf-16 "}

	err := loader.Save(cfg)
	assert.ErrorContains(t, err, "cannot save invalid configuration")
	_, statErr := os.Stat(loader.Path())
	assert.True(t, os.IsNotExist(statErr))
}

func TestDefaultPathFromEnv(t *testing.T) {
	t.Setenv("LSPENC_CONFIG", "/tmp/custom.yaml")
	assert.Equal(t, "/tmp/custom.yaml", DefaultPath())
	assert.Equal(t, "/tmp/custom.yaml", NewLoader("").Path())
}

func TestEncodingConfigNegotiator(t *testing.T) {
	enc := EncodingConfig{Supported: []string{"utf-8"}, Strict: true}

	n, err := enc.Negotiator(logger.Discard())
	require.NoError(t, err)
	assert.Equal(t, []lsp.PositionEncodingKind{lsp.UTF8}, n.Supported())

	_, err = n.Negotiate([]string{"utf-9"})
	assert.ErrorIs(t, err, lsp.ErrUnrecognizedEncodingKind)

	bad := EncodingConfig{Supported: []string{"utf-7"}}
	_, err = bad.Negotiator(nil)
	assert.ErrorIs(t, err, lsp.ErrUnrecognizedEncodingKind)
}

func TestLogLevel(t *testing.T) {
	level, err := LogConfig{Level: "warn"}.LogLevel()
	require.NoError(t, err)
	assert.Equal(t, logger.WARN, level)
}
