package veil

import (
	"github.com/veildev/veil/internal/build"
	"github.com/veildev/veil/internal/transform"
)

// Type aliases re-export the narrow integration surface as the public API.
// Users import "github.com/veildev/veil/pkg/veil" and use veil.Lifecycle,
// veil.Transformer, etc.

type Lifecycle = build.Lifecycle
type Result = build.Result
type Message = build.Message
type Transformer = transform.Transformer
type TransformOptions = transform.Options
