// Package build models the outcome of one build attempt and the lifecycle
// point that post-build callbacks register against.
package build

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/veildev/veil/internal/metafile"
)

// Message describes one build error reported by the build tool.
type Message struct {
	Text     string
	Location string
}

// Result summarizes one build attempt. It is created once per attempt,
// handed to each end callback, and discarded; nothing is shared between
// attempts. A nil Metafile means the build tool did not produce an output
// manifest.
type Result struct {
	BuildID  uuid.UUID
	Errors   []Message
	Metafile *metafile.Metafile
	Duration time.Duration
}

// Failed reports whether the build attempt itself failed.
func (r *Result) Failed() bool {
	return len(r.Errors) > 0
}

// EndFunc is a callback invoked once per completed build attempt.
type EndFunc func(ctx context.Context, res *Result) error

// Lifecycle is the narrow registration surface a build host exposes to
// post-build hooks. Hooks only ever need this one method.
type Lifecycle interface {
	OnEnd(fn EndFunc)
}
