package cli

import (
	"context"
	"log/slog"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"drfspec/internal/config"
	"drfspec/internal/shared/util"
	"drfspec/internal/spec"
	"drfspec/internal/watcher"
)

var (
	watchOut      string
	watchSettings string
	watchHistory  bool
)

var watchCmd = &cobra.Command{
	Use:   "watch [project-root]",
	Short: "Rebuild the spec document whenever Python sources change",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgPath)
		if err != nil {
			return err
		}
		projectRoot := projectRootArg(args)

		rebuild := func() {
			scan, eps, err := runPipeline(cfg, projectRoot, watchSettings)
			if err != nil {
				slog.Error("rebuild failed", "error", err)
				return
			}
			doc := spec.Build(scan, eps)
			if err := spec.WriteFile(doc, watchOut); err != nil {
				slog.Error("spec write failed", "error", err)
				return
			}
			slog.Info("spec rebuilt", "endpoints", len(doc.Endpoints))

			if watchHistory {
				if err := recordSnapshot(cfg, scan.ProjectRoot, len(scan.Apps), len(eps), countResolved(eps)); err != nil {
					slog.Warn("snapshot failed", "error", err)
				}
			}
		}

		rebuild()

		// Bound rebuild churn when editors touch many files in bursts.
		limiter := util.NewLimiter(cfg.Watch.Rate, cfg.Watch.Burst)

		w, err := watcher.New(cfg.Watch.Debounce, excludeDirGlobs(cfg), func(paths []string) {
			if !limiter.Allow(1) {
				slog.Debug("rescan rate-limited", "changed", len(paths))
				return
			}
			slog.Debug("sources changed", "files", len(paths))
			rebuild()
		})
		if err != nil {
			return err
		}
		defer w.Close()

		if err := w.Watch(projectRoot); err != nil {
			return err
		}

		slog.Info("watching for changes", "root", projectRoot, "out", watchOut)
		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		<-ctx.Done()
		return nil
	},
}

// excludeDirGlobs converts the scanner's prefix exclusions into watcher
// glob patterns.
func excludeDirGlobs(cfg *config.Config) []string {
	globs := make([]string, 0, len(cfg.Exclude.DirPrefixes))
	for _, prefix := range cfg.Exclude.DirPrefixes {
		globs = append(globs, prefix+"*")
	}
	return globs
}

func init() {
	watchCmd.Flags().StringVar(&watchOut, "out", "drfspec.json", "Output path for the spec document")
	watchCmd.Flags().StringVar(&watchSettings, "settings", "", "Settings module override (skips detection)")
	watchCmd.Flags().BoolVar(&watchHistory, "history", false, "Record an inspection snapshot on every rebuild")
	rootCmd.AddCommand(watchCmd)
}
