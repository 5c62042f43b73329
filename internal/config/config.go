// Package config loads and validates the veil.yaml configuration.
package config

import (
	"fmt"
	"strings"

	kyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// EnvPrefix namespaces the environment variables that override config keys:
// VEIL_SUFFIX overrides 'suffix', VEIL_METRICS_PORT 'metrics_port', etc.
const EnvPrefix = "VEIL_"

// Config represents the veil.yaml configuration file.
type Config struct {
	Version     int      `koanf:"version" yaml:"version"`
	Suffix      string   `koanf:"suffix" yaml:"suffix"`
	Metafile    string   `koanf:"metafile" yaml:"metafile"`
	Transformer string   `koanf:"transformer" yaml:"transformer"`
	Command     []string `koanf:"command" yaml:"command,omitempty"`

	// Options is forwarded verbatim to the transformer. The recognized
	// keys belong to the transformer and are never validated here.
	Options map[string]any `koanf:"options" yaml:"options,omitempty"`

	Limit       int `koanf:"limit" yaml:"limit,omitempty"`
	MetricsPort int `koanf:"metrics_port" yaml:"metrics_port,omitempty"`
}

// Default returns the configuration 'veil init' scaffolds.
func Default() Config {
	return Config{
		Version:     1,
		Suffix:      ".js",
		Metafile:    "meta.json",
		Transformer: "scramble",
	}
}

// Load reads veil.yaml, applies VEIL_-prefixed environment overrides, fills
// defaults, and validates the result.
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(file.Provider(path), kyaml.Parser()); err != nil {
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	envProvider := env.Provider(EnvPrefix, ".", func(s string) string {
		return strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, fmt.Errorf("reading environment overrides: %w", err)
	}

	var cfg Config
	if err := k.Unmarshal("", &cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	applyDefaults(&cfg)

	if errs := Validate(&cfg); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	if cfg.Suffix == "" {
		cfg.Suffix = ".js"
	}
	if cfg.Transformer == "" {
		cfg.Transformer = "scramble"
	}
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("config validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Config for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(cfg *Config) []string {
	var errs []string

	if cfg.Version != 1 {
		errs = append(errs, fmt.Sprintf("unsupported version %d — only version 1 is supported", cfg.Version))
	}

	if !strings.HasPrefix(cfg.Suffix, ".") {
		errs = append(errs, fmt.Sprintf("suffix '%s' must start with '.'", cfg.Suffix))
	}

	switch cfg.Transformer {
	case "scramble":
		if len(cfg.Command) > 0 {
			errs = append(errs, "'command' is only valid for the exec transformer")
		}
	case "exec":
		if len(cfg.Command) == 0 {
			errs = append(errs, "exec transformer requires 'command'")
		}
	default:
		errs = append(errs, fmt.Sprintf("unknown transformer '%s' — must be one of: scramble, exec", cfg.Transformer))
	}

	if cfg.Limit < 0 {
		errs = append(errs, fmt.Sprintf("limit %d must not be negative", cfg.Limit))
	}

	if cfg.MetricsPort < 0 || cfg.MetricsPort > 65535 {
		errs = append(errs, fmt.Sprintf("metrics_port %d is outside 0-65535", cfg.MetricsPort))
	}

	return errs
}
