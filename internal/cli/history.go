package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"drfspec/internal/config"
	"drfspec/internal/history"
)

var (
	historyDB    string
	historyLimit int
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recent inspection snapshots",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgPath)
		if err != nil {
			return err
		}

		dbPath := historyDB
		if dbPath == "" {
			dbPath = cfg.History.Path
		}

		store, err := history.Open(dbPath)
		if err != nil {
			return err
		}
		defer store.Close()

		snapshots, err := store.Recent(historyLimit)
		if err != nil {
			return err
		}
		if len(snapshots) == 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "no snapshots recorded")
			return nil
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%-36s  %-20s  %-16s  %5s  %9s  %8s\n",
			"ID", "TIMESTAMP", "PROJECT", "APPS", "ENDPOINTS", "RESOLVED")
		for _, snap := range snapshots {
			fmt.Fprintf(out, "%-36s  %-20s  %-16s  %5d  %9d  %8d\n",
				snap.ID,
				snap.Timestamp.UTC().Format(time.RFC3339),
				snap.Project,
				snap.AppCount,
				snap.EndpointCount,
				snap.ResolvedCount)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().StringVar(&historyDB, "db", "", "History database path (defaults to config)")
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "Maximum number of snapshots to list")
	rootCmd.AddCommand(historyCmd)
}
