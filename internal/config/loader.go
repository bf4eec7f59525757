package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/yukin371/lspenc/pkg/utils"
)

// EnvPrefix prefixes every environment override, e.g. LSPENC_ENCODING_STRICT.
const EnvPrefix = "LSPENC"

// Loader reads configuration from a YAML file and the environment
type Loader struct {
	v      *viper.Viper
	path   string
	schema *SchemaLoader
}

// NewLoader creates a loader for path. An empty path resolves to
// $LSPENC_CONFIG, then config.yaml in the platform config directory.
func NewLoader(path string) *Loader {
	if path == "" {
		path = DefaultPath()
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	return &Loader{v: v, path: path, schema: NewSchemaLoader()}
}

// DefaultPath returns the configuration file used when none is given
func DefaultPath() string {
	if envPath := os.Getenv(EnvPrefix + "_CONFIG"); envPath != "" {
		return envPath
	}
	configDir, err := utils.GetConfigDir("lspenc")
	if err != nil {
		return "config.yaml"
	}
	return filepath.Join(configDir, "config.yaml")
}

// setDefaults sets default values in Viper
func setDefaults(v *viper.Viper) {
	def := DefaultConfig()
	v.SetDefault("encoding.supported", def.Encoding.Supported)
	v.SetDefault("encoding.strict", def.Encoding.Strict)
	v.SetDefault("log.level", def.Log.Level)
}

// Path returns the configuration file path
func (l *Loader) Path() string {
	return l.path
}

// Load reads the file (if present), applies environment overrides and
// validates the result. A missing file is not an error.
func (l *Loader) Load() (*Config, error) {
	if err := l.v.ReadInConfig(); err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("failed to read config %s: %w", l.path, err)
		}
	}

	var cfg Config
	if err := l.v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	if err := l.schema.Validate(&cfg); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return &cfg, nil
}

// Save validates cfg and writes it to the loader's path
func (l *Loader) Save(cfg *Config) error {
	if err := l.schema.Validate(cfg); err != nil {
		return fmt.Errorf("cannot save invalid configuration: %w", err)
	}

	if err := utils.EnsureDir(filepath.Dir(l.path)); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	out := viper.New()
	out.SetConfigType("yaml")
	out.Set("encoding.supported", cfg.Encoding.Supported)
	out.Set("encoding.strict", cfg.Encoding.Strict)
	out.Set("log.level", cfg.Log.Level)

	if err := out.WriteConfigAs(l.path); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}
