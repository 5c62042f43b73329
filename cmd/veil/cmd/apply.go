package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/veildev/veil/internal/build"
	"github.com/veildev/veil/internal/metafile"
	"github.com/veildev/veil/internal/report"
)

var (
	applyMetafile   string
	applyDryRun     bool
	applyReportPath string
)

var applyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Transform the outputs of an already-completed build",
	Long: `Reads an existing metafile and applies the configured transformer to every
listed output whose name matches the configured suffix, overwriting the
files in place. Use this when the build step runs elsewhere.

A missing metafile logs a diagnostic and changes nothing.`,
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

		metaPath := metafilePath(cfg, root)
		if applyMetafile != "" {
			metaPath = applyMetafile
		}

		res := &build.Result{}
		if _, statErr := os.Stat(metaPath); statErr == nil {
			mf, loadErr := metafile.Load(metaPath)
			if loadErr != nil {
				return loadErr
			}
			res.Metafile = mf
		}

		r := report.FromResult(res, h.Suffix)

		if applyDryRun {
			info("Dry run — no files written.")
			for _, p := range r.Transformed {
				info("  would transform  %s", p)
			}
			for _, p := range r.Skipped {
				detail("would skip  %s", p)
			}
			return nil
		}

		if err := h.AfterBuild(cmd.Context(), res); err != nil {
			return err
		}

		if applyReportPath != "" {
			if saveErr := report.Save(applyReportPath, r); saveErr != nil {
				errorf("writing report: %s", saveErr)
			}
		}

		if res.Metafile != nil {
			info("Apply complete: %d transformed, %d skipped.", len(r.Transformed), len(r.Skipped))
		}
		return nil
	},
}

func init() {
	applyCmd.Flags().StringVar(&applyMetafile, "metafile", "", "metafile path (overrides the config)")
	applyCmd.Flags().BoolVar(&applyDryRun, "dry-run", false, "show what would change without writing files")
	applyCmd.Flags().StringVar(&applyReportPath, "report", "", "write a YAML report of the pass to this path")
	rootCmd.AddCommand(applyCmd)
}
