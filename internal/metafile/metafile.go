package metafile

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Metafile represents a build tool's output manifest: a mapping from each
// produced file path to metadata about that output. Paths are relative to
// the project root unless the build tool was configured otherwise.
type Metafile struct {
	Outputs map[string]Output `json:"outputs"`
}

// Output records metadata for a single produced file.
type Output struct {
	Bytes      int64  `json:"bytes"`
	EntryPoint string `json:"entryPoint,omitempty"`
	CSSBundle  string `json:"cssBundle,omitempty"`
}

// Load reads and validates a metafile JSON document.
func Load(path string) (*Metafile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metafile %s: %w", path, err)
	}

	var mf Metafile
	if err := json.Unmarshal(data, &mf); err != nil {
		return nil, fmt.Errorf("parsing metafile %s: %w", path, err)
	}

	if errs := Validate(&mf); len(errs) > 0 {
		return nil, &ValidationError{Errors: errs}
	}

	return &mf, nil
}

// ValidationError holds multiple validation failures.
type ValidationError struct {
	Errors []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("metafile validation failed:\n  - %s", strings.Join(e.Errors, "\n  - "))
}

// Validate checks a Metafile for semantic correctness.
// Returns a list of validation error messages (empty if valid).
func Validate(mf *Metafile) []string {
	var errs []string

	if mf.Outputs == nil {
		errs = append(errs, "'outputs' is required")
		return errs
	}

	for path, out := range mf.Outputs {
		if strings.TrimSpace(path) == "" {
			errs = append(errs, "output with empty path")
			continue
		}
		if out.Bytes < 0 {
			errs = append(errs, fmt.Sprintf("output '%s': negative byte count %d", path, out.Bytes))
		}
	}

	return errs
}

// Paths returns every output path in the manifest, in map order.
func (mf *Metafile) Paths() []string {
	paths := make([]string, 0, len(mf.Outputs))
	for p := range mf.Outputs {
		paths = append(paths, p)
	}
	return paths
}
