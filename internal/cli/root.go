package cli

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var (
	cfgPath string
	verbose bool
)

var rootCmd = &cobra.Command{
	Use:   "drfspec",
	Short: "Inspect Django REST Framework projects and emit test specs",
	Long: `drfspec statically inspects a Django REST Framework source tree,
discovers endpoints (views, serializers, URL routes) and emits a versioned
JSON specification used to drive automated test generation.`,
	SilenceUsage: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		setupLogging()
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgPath, "config", "./drfspec.toml", "Path to config file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose logging")
}

// setupLogging keeps log lines on stderr so JSON output on stdout stays
// machine-readable.
func setupLogging() {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)
}

func projectRootArg(args []string) string {
	if len(args) > 0 {
		return args[0]
	}
	return "."
}
