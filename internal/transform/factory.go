package transform

import "fmt"

// New selects a transformer by name. Command is only meaningful for the
// exec transformer: its first element is the binary, the rest arguments.
func New(name string, command []string) (Transformer, error) {
	switch name {
	case "scramble":
		return Scramble{}, nil
	case "exec":
		if len(command) == 0 {
			return nil, fmt.Errorf("exec transformer requires a command")
		}
		return &Exec{Command: command[0], Args: command[1:]}, nil
	default:
		return nil, fmt.Errorf("unknown transformer '%s'", name)
	}
}
