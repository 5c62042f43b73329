package transform

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"os/exec"
	"strings"
)

// Exec pipes source text through an external command. The command receives
// the source on stdin and must write the transformed text to stdout. The
// option map is serialized to JSON and handed to the command in the
// VEIL_TRANSFORM_OPTIONS environment variable.
type Exec struct {
	Command string
	Args    []string
}

// Transform runs the command once per call. A non-zero exit status is an
// error; whatever the command wrote to stderr is folded into the message.
func (e *Exec) Transform(src string, opts Options) (string, error) {
	if e.Command == "" {
		return "", fmt.Errorf("exec transformer: no command configured")
	}

	if opts == nil {
		opts = Options{}
	}
	optJSON, err := json.Marshal(opts)
	if err != nil {
		return "", fmt.Errorf("encoding transform options: %w", err)
	}

	cmd := exec.Command(e.Command, e.Args...)
	cmd.Stdin = strings.NewReader(src)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	cmd.Env = append(os.Environ(), "VEIL_TRANSFORM_OPTIONS="+string(optJSON))

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return "", fmt.Errorf("transform command '%s': %w: %s", e.Command, err, msg)
		}
		return "", fmt.Errorf("transform command '%s': %w", e.Command, err)
	}

	return stdout.String(), nil
}
