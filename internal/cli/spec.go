package cli

import (
	"log/slog"
	"path/filepath"

	"github.com/spf13/cobra"

	"drfspec/internal/config"
	"drfspec/internal/history"
	"drfspec/internal/spec"
)

var (
	specOut      string
	specSettings string
	specHistory  bool
)

var specCmd = &cobra.Command{
	Use:   "spec [project-root]",
	Short: "Build the test spec document and write it to disk",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgPath)
		if err != nil {
			return err
		}

		scan, eps, err := runPipeline(cfg, projectRootArg(args), specSettings)
		if err != nil {
			return err
		}

		doc := spec.Build(scan, eps)
		if err := spec.WriteFile(doc, specOut); err != nil {
			return err
		}

		slog.Info("spec written",
			"path", specOut,
			"apps", len(doc.Apps),
			"endpoints", len(doc.Endpoints),
			"unresolved", len(eps)-len(doc.Endpoints))

		if specHistory {
			if err := recordSnapshot(cfg, scan.ProjectRoot, len(scan.Apps), len(eps), countResolved(eps)); err != nil {
				return err
			}
		}
		return nil
	},
}

func recordSnapshot(cfg *config.Config, projectRoot string, apps, endpoints, resolved int) error {
	store, err := history.Open(cfg.History.Path)
	if err != nil {
		return err
	}
	defer store.Close()

	snap, err := store.Record(history.Snapshot{
		Project:       filepath.Base(projectRoot),
		AppCount:      apps,
		EndpointCount: endpoints,
		ResolvedCount: resolved,
	})
	if err != nil {
		return err
	}
	slog.Debug("snapshot recorded", "id", snap.ID)
	return nil
}

func init() {
	specCmd.Flags().StringVar(&specOut, "out", "drfspec.json", "Output path for the spec document")
	specCmd.Flags().StringVar(&specSettings, "settings", "", "Settings module override (skips detection)")
	specCmd.Flags().BoolVar(&specHistory, "history", false, "Record an inspection snapshot in the history database")
	rootCmd.AddCommand(specCmd)
}
