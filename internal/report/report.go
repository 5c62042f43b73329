// Package report records what a processing pass did, as YAML.
package report

import (
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"

	"github.com/veildev/veil/internal/build"
)

// Report summarizes one processing pass over a build's outputs.
type Report struct {
	BuildID     string   `yaml:"build_id,omitempty"`
	Duration    string   `yaml:"duration,omitempty"`
	Suffix      string   `yaml:"suffix"`
	Transformed []string `yaml:"transformed"`
	Skipped     []string `yaml:"skipped"`
}

// FromResult splits the manifest's outputs into transformed and skipped
// paths by the suffix predicate. Both lists are sorted for stable output.
func FromResult(res *build.Result, suffix string) *Report {
	r := &Report{Suffix: suffix}
	if res.BuildID != uuid.Nil {
		r.BuildID = res.BuildID.String()
	}
	if res.Duration > 0 {
		r.Duration = res.Duration.String()
	}

	if res.Metafile != nil {
		for path := range res.Metafile.Outputs {
			if strings.HasSuffix(path, suffix) {
				r.Transformed = append(r.Transformed, path)
			} else {
				r.Skipped = append(r.Skipped, path)
			}
		}
	}
	sort.Strings(r.Transformed)
	sort.Strings(r.Skipped)
	return r
}

// Save writes a report atomically using a temp file and rename.
func Save(path string, r *Report) error {
	data, err := yaml.Marshal(r)
	if err != nil {
		return fmt.Errorf("marshaling report: %w", err)
	}

	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("writing temp report %s: %w", tmp, err)
	}

	if err := os.Rename(tmp, path); err != nil {
		_ = os.Remove(tmp)
		return fmt.Errorf("renaming temp report to %s: %w", path, err)
	}

	return nil
}
