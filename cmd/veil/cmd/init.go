package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

var initForce bool

// initTemplate is the default veil.yaml scaffold.
const initTemplate = `# veil configuration
version: 1

# Outputs whose filename ends with this suffix are rewritten in place.
suffix: .js

# Output manifest written by the build tool (e.g. esbuild --metafile=meta.json).
metafile: meta.json

# Transformer: 'scramble' (built-in) or 'exec' (external command).
transformer: scramble

# External command for the exec transformer. Receives source on stdin,
# writes transformed text to stdout.
# command: [javascript-obfuscator, --stdin]

# Free-form options forwarded verbatim to the transformer.
# options:
#   stringArray: true
#   prefix: _0x

# Max concurrent file transformations. 0 means unbounded.
# limit: 0

# Serve Prometheus counters on this port while running. 0 disables.
# metrics_port: 0
`

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create a starter veil.yaml configuration",
	Long: `Creates a veil.yaml file in the current directory with a commented template.

Use --force to overwrite an existing configuration file.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		outPath := configPath
		if !filepath.IsAbs(outPath) {
			abs, err := filepath.Abs(outPath)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}
			outPath = abs
		}

		if !initForce {
			if _, err := os.Stat(outPath); err == nil {
				return fmt.Errorf("%s already exists (use --force to overwrite)", outPath)
			}
		}

		if err := os.WriteFile(outPath, []byte(initTemplate), 0644); err != nil {
			return fmt.Errorf("writing config: %w", err)
		}

		info("Created %s", outPath)
		info("")
		info("Next steps:")
		info("  1. Point 'metafile' at the manifest your build writes")
		info("  2. Run 'veil run -- <your build command>'")
		return nil
	},
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
