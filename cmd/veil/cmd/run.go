package cmd

import (
	"github.com/spf13/cobra"

	"github.com/veildev/veil/internal/build"
	"github.com/veildev/veil/internal/report"
)

var runReportPath string

var runCmd = &cobra.Command{
	Use:   "run -- <build command> [args...]",
	Short: "Run a build command, then transform its outputs",
	Long: `Runs the given build command and, once it completes, applies the configured
transformer to every output listed in the metafile whose name matches the
configured suffix. The build command is expected to write the metafile
itself (e.g. esbuild --metafile=meta.json).

A failing build skips processing; a build without a metafile logs a
diagnostic and leaves every output untouched.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		root, err := projectRoot()
		if err != nil {
			return err
		}

		logger, err := newLogger()
		if err != nil {
			return err
		}
		defer func() { _ = logger.Sync() }()

		metrics := maybeExposeMetrics(cfg)

		h, err := newHook(cfg, root, logger, metrics)
		if err != nil {
			return err
		}

		pipeline := &build.Pipeline{
			Command:      args,
			Dir:          root,
			MetafilePath: metafilePath(cfg, root),
			Logger:       logger,
		}
		h.Register(pipeline)

		res, err := pipeline.Run(cmd.Context())

		if runReportPath != "" && res != nil {
			r := report.FromResult(res, h.Suffix)
			if saveErr := report.Save(runReportPath, r); saveErr != nil {
				errorf("writing report: %s", saveErr)
			}
		}

		if err != nil {
			return err
		}

		if res.Metafile != nil {
			r := report.FromResult(res, h.Suffix)
			info("Build complete: %d transformed, %d skipped.", len(r.Transformed), len(r.Skipped))
			for _, p := range r.Transformed {
				detail("transformed  %s", p)
			}
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runReportPath, "report", "", "write a YAML report of the pass to this path")
	rootCmd.AddCommand(runCmd)
}
