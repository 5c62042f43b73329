// Package veil provides the public Go library API for the post-build
// obfuscation hook.
//
// The hook reads a build's output manifest, rewrites every matching output
// file through the configured transformer, and overwrites the files in
// place. Embed it either by processing a finished build's outputs directly
// or by attaching it to a host build lifecycle.
//
// # Basic Usage
//
//	client, err := veil.New(veil.Options{
//	    ProjectRoot: "/path/to/project",
//	    ConfigPath:  "veil.yaml",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	// Process the outputs of an already-completed build:
//	err = client.Apply(ctx)
//
//	// Or attach the hook to a build lifecycle:
//	client.Register(pipeline)
package veil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/veildev/veil/internal/build"
	"github.com/veildev/veil/internal/config"
	"github.com/veildev/veil/internal/hook"
	"github.com/veildev/veil/internal/metafile"
	"github.com/veildev/veil/internal/transform"
)

// Options configures a Client.
type Options struct {
	// ProjectRoot is the directory manifest paths resolve against.
	// Defaults to the directory containing the config file.
	ProjectRoot string

	// ConfigPath locates veil.yaml. Defaults to "veil.yaml" under
	// ProjectRoot.
	ConfigPath string

	// Logger receives hook diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Client is a configured instance of the post-build hook.
type Client struct {
	cfg  *config.Config
	root string
	hook *hook.Hook
}

// New loads the configuration and assembles the hook.
func New(opts Options) (*Client, error) {
	cfgPath := opts.ConfigPath
	if cfgPath == "" {
		cfgPath = filepath.Join(opts.ProjectRoot, "veil.yaml")
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}

	root := opts.ProjectRoot
	if root == "" {
		abs, err := filepath.Abs(cfgPath)
		if err != nil {
			return nil, fmt.Errorf("resolving config path: %w", err)
		}
		root = filepath.Dir(abs)
	}

	tr, err := transform.New(cfg.Transformer, cfg.Command)
	if err != nil {
		return nil, err
	}

	return &Client{
		cfg:  cfg,
		root: root,
		hook: &hook.Hook{
			Transformer: tr,
			Options:     transform.Options(cfg.Options),
			Suffix:      cfg.Suffix,
			Root:        root,
			Limit:       cfg.Limit,
			Logger:      opts.Logger,
		},
	}, nil
}

// Register attaches the hook to a build lifecycle. The hook runs once per
// completed build attempt.
func (c *Client) Register(lc build.Lifecycle) {
	c.hook.Register(lc)
}

// Apply processes the outputs of an already-completed build using the
// configured metafile. A missing metafile logs the standard diagnostic and
// changes nothing; a malformed one is an error.
func (c *Client) Apply(ctx context.Context) error {
	metaPath := c.cfg.Metafile
	if metaPath != "" && !filepath.IsAbs(metaPath) {
		metaPath = filepath.Join(c.root, metaPath)
	}

	res := &build.Result{}
	if metaPath != "" {
		if _, err := os.Stat(metaPath); err == nil {
			mf, err := metafile.Load(metaPath)
			if err != nil {
				return err
			}
			res.Metafile = mf
		}
	}

	return c.hook.AfterBuild(ctx, res)
}
