package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/veildev/veil/internal/config"
	"github.com/veildev/veil/internal/hook"
	"github.com/veildev/veil/internal/logging"
	"github.com/veildev/veil/internal/telemetry"
	"github.com/veildev/veil/internal/transform"
)

// loadConfig reads and validates the config file.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, fmt.Errorf("loading config %s: %w", configPath, err)
	}
	return cfg, nil
}

// projectRoot returns the directory containing the config file.
func projectRoot() (string, error) {
	abs, err := filepath.Abs(configPath)
	if err != nil {
		return "", fmt.Errorf("resolving config path: %w", err)
	}
	return filepath.Dir(abs), nil
}

// newLogger builds the process logger from the global verbosity flags.
func newLogger() (*zap.Logger, error) {
	logger, err := logging.New(verbose, quiet)
	if err != nil {
		return nil, fmt.Errorf("building logger: %w", err)
	}
	return logger, nil
}

// newTransformer selects the transformer named in the config.
func newTransformer(cfg *config.Config) (transform.Transformer, error) {
	return transform.New(cfg.Transformer, cfg.Command)
}

// newHook assembles the post-build hook from the loaded config.
func newHook(cfg *config.Config, root string, logger *zap.Logger, metrics *telemetry.Metrics) (*hook.Hook, error) {
	tr, err := newTransformer(cfg)
	if err != nil {
		return nil, err
	}
	return &hook.Hook{
		Transformer: tr,
		Options:     transform.Options(cfg.Options),
		Suffix:      cfg.Suffix,
		Root:        root,
		Limit:       cfg.Limit,
		Logger:      logger,
		Metrics:     metrics,
	}, nil
}

// maybeExposeMetrics starts the metrics endpoint when one is configured.
func maybeExposeMetrics(cfg *config.Config) *telemetry.Metrics {
	if cfg.MetricsPort == 0 {
		return nil
	}
	m := telemetry.New(prometheus.DefaultRegisterer)
	telemetry.Expose(cfg.MetricsPort)
	return m
}

// metafilePath resolves the configured metafile path against the project root.
func metafilePath(cfg *config.Config, root string) string {
	if cfg.Metafile == "" || filepath.IsAbs(cfg.Metafile) {
		return cfg.Metafile
	}
	return filepath.Join(root, cfg.Metafile)
}

// info prints a line unless quiet mode is active.
func info(format string, args ...any) {
	if !quiet {
		fmt.Printf(format+"\n", args...)
	}
}

// detail prints a line only in verbose mode.
func detail(format string, args ...any) {
	if verbose {
		fmt.Printf("  "+format+"\n", args...)
	}
}

// errorf prints an error message to stderr.
func errorf(format string, args ...any) {
	fmt.Fprintf(os.Stderr, "error: "+format+"\n", args...)
}
