package config

import (
	"encoding/json"
	"fmt"

	"github.com/yukin371/lspenc/internal/lsp"
	"github.com/yukin371/lspenc/pkg/logger"
)

// Config holds all configuration for posenc
type Config struct {
	Encoding EncodingConfig `mapstructure:"encoding" json:"encoding"`
	Log      LogConfig      `mapstructure:"log" json:"log"`
}

// EncodingConfig holds position encoding negotiation settings
type EncodingConfig struct {
	Supported []string `mapstructure:"supported" json:"supported"` // Wire tags the server accepts
	Strict    bool     `mapstructure:"strict" json:"strict"`       // Reject unknown offered tags
}

// LogConfig holds logging preferences
type LogConfig struct {
	Level string `mapstructure:"level" json:"level"` // "debug", "info", "warn" or "error"
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	var supported []string
	for _, k := range lsp.PositionEncodingKinds() {
		supported = append(supported, k.Tag())
	}
	return &Config{
		Encoding: EncodingConfig{
			Supported: supported,
			Strict:    false,
		},
		Log: LogConfig{
			Level: "info",
		},
	}
}

// SupportedKinds decodes the configured wire tags.
func (c EncodingConfig) SupportedKinds() ([]lsp.PositionEncodingKind, error) {
	kinds := make([]lsp.PositionEncodingKind, 0, len(c.Supported))
	for _, tag := range c.Supported {
		k, err := lsp.ParsePositionEncodingKind(tag)
		if err != nil {
			return nil, fmt.Errorf("encoding.supported: %w", err)
		}
		kinds = append(kinds, k)
	}
	return kinds, nil
}

// Negotiator builds a negotiator from the encoding settings.
func (c EncodingConfig) Negotiator(log *logger.Logger) (*lsp.Negotiator, error) {
	kinds, err := c.SupportedKinds()
	if err != nil {
		return nil, err
	}
	return lsp.NewNegotiator(log, lsp.WithSupported(kinds...), lsp.WithStrict(c.Strict))
}

// LogLevel parses the configured level.
func (c LogConfig) LogLevel() (logger.LogLevel, error) {
	return logger.ParseLevel(c.Level)
}

// String returns a JSON string representation of the config
func (c *Config) String() string {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return fmt.Sprintf("error marshaling config: %v", err)
	}
	return string(data)
}
