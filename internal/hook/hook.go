// Package hook implements the post-build transform step: after each build
// attempt it rewrites qualifying output files in place through a
// transformation routine.
package hook

import (
	"context"
	"fmt"
	"os"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/veildev/veil/internal/build"
	"github.com/veildev/veil/internal/sandbox"
	"github.com/veildev/veil/internal/telemetry"
	"github.com/veildev/veil/internal/transform"
)

// MetafileDiagnostic is emitted verbatim, exactly once, when a successful
// build reports no output manifest.
const MetafileDiagnostic = "Metafile is required for the obfuscator plugin to work."

// DefaultSuffix selects the outputs rewritten when no suffix is configured.
const DefaultSuffix = ".js"

// Hook gates and dispatches file transformations after each build.
//
// Every output path in the manifest whose filename ends with Suffix is
// read, transformed, and overwritten in place. All qualifying files are
// processed concurrently and independently; the first failure cancels the
// joint wait and propagates. Files already rewritten when a sibling task
// fails stay rewritten.
type Hook struct {
	Transformer transform.Transformer
	Options     transform.Options // forwarded verbatim, never inspected
	Suffix      string            // default ".js"
	Root        string            // project root that manifest paths resolve against
	Limit       int               // max concurrent tasks; 0 means unbounded
	Logger      *zap.Logger
	Metrics     *telemetry.Metrics
}

// Register attaches the hook to a build lifecycle.
func (h *Hook) Register(lc build.Lifecycle) {
	lc.OnEnd(h.AfterBuild)
}

// AfterBuild is the end-of-build callback. A failed build is a silent
// no-op: the build tool reports its own errors. A successful build without
// an output manifest logs one diagnostic and is otherwise a no-op.
func (h *Hook) AfterBuild(ctx context.Context, res *build.Result) error {
	h.Metrics.ObserveBuild()

	if res.Failed() {
		return nil
	}
	if res.Metafile == nil {
		h.logger().Error(MetafileDiagnostic)
		return nil
	}

	g, ctx := errgroup.WithContext(ctx)
	if h.Limit > 0 {
		g.SetLimit(h.Limit)
	}

	for path := range res.Metafile.Outputs {
		if !strings.HasSuffix(path, h.suffix()) {
			continue
		}
		path := path
		g.Go(func() error {
			return h.processFile(ctx, path)
		})
	}

	return g.Wait()
}

// processFile is one transformation task: resolve, read, transform,
// overwrite. The overwrite is destructive and not atomic; a crash mid-write
// can leave a partially written file.
func (h *Hook) processFile(ctx context.Context, path string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if h.Transformer == nil {
		return fmt.Errorf("no transformer configured")
	}

	abs, err := sandbox.Resolve(h.Root, path)
	if err != nil {
		h.Metrics.ObserveFailure()
		return err
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		h.Metrics.ObserveFailure()
		return fmt.Errorf("reading output %s: %w", path, err)
	}

	out, err := h.Transformer.Transform(string(data), h.Options)
	if err != nil {
		h.Metrics.ObserveFailure()
		return fmt.Errorf("transforming %s: %w", path, err)
	}

	if err := os.WriteFile(abs, []byte(out), 0644); err != nil {
		h.Metrics.ObserveFailure()
		return fmt.Errorf("writing output %s: %w", path, err)
	}

	h.Metrics.ObserveTransformed(len(out))
	h.logger().Debug("output transformed", zap.String("path", path), zap.Int("bytes", len(out)))
	return nil
}

func (h *Hook) suffix() string {
	if h.Suffix != "" {
		return h.Suffix
	}
	return DefaultSuffix
}

func (h *Hook) logger() *zap.Logger {
	if h.Logger != nil {
		return h.Logger
	}
	return zap.NewNop()
}
