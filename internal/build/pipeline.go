package build

import (
	"context"
	"fmt"
	"os"
	"os/exec"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/veildev/veil/internal/metafile"
)

// Pipeline runs an external build command and hosts the end-of-build
// lifecycle. It is the in-process stand-in for a build tool: the command is
// expected to write an output manifest at MetafilePath; the pipeline loads
// it and invokes the registered end callbacks in registration order.
type Pipeline struct {
	Command      []string
	Dir          string
	MetafilePath string
	Logger       *zap.Logger

	endFns []EndFunc
}

// OnEnd registers a callback invoked after every build attempt.
func (p *Pipeline) OnEnd(fn EndFunc) {
	p.endFns = append(p.endFns, fn)
}

// Run executes one build attempt and fires the end callbacks exactly once,
// whether or not the build command succeeded. Build command failures are
// recorded on the Result (callbacks decide what to skip); a callback error
// aborts the remaining callbacks and is returned as the pipeline failure.
func (p *Pipeline) Run(ctx context.Context) (*Result, error) {
	if len(p.Command) == 0 {
		return nil, fmt.Errorf("no build command configured")
	}

	start := time.Now()
	res := &Result{BuildID: uuid.New()}

	cmd := exec.CommandContext(ctx, p.Command[0], p.Command[1:]...)
	cmd.Dir = p.Dir
	cmd.Stdout = os.Stdout
	cmd.Stderr = os.Stderr

	if err := cmd.Run(); err != nil {
		res.Errors = append(res.Errors, Message{Text: err.Error()})
	} else if p.MetafilePath != "" {
		mf, err := metafile.Load(p.MetafilePath)
		if err != nil {
			// The manifest stays absent; the hook reports that itself.
			p.logger().Warn("metafile not loaded", zap.String("path", p.MetafilePath), zap.Error(err))
		} else {
			res.Metafile = mf
		}
	}

	res.Duration = time.Since(start)
	p.logger().Debug("build finished",
		zap.String("build_id", res.BuildID.String()),
		zap.Int("errors", len(res.Errors)),
		zap.Duration("duration", res.Duration))

	for _, fn := range p.endFns {
		if err := fn(ctx, res); err != nil {
			return res, fmt.Errorf("post-build hook: %w", err)
		}
	}

	if res.Failed() {
		return res, fmt.Errorf("build command failed: %s", res.Errors[0].Text)
	}
	return res, nil
}

func (p *Pipeline) logger() *zap.Logger {
	if p.Logger != nil {
		return p.Logger
	}
	return zap.NewNop()
}
