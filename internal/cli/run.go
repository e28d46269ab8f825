package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"drfspec/internal/config"
	"drfspec/internal/runner"
)

var (
	runSettings string
	runPython   string
	runTimeout  time.Duration
)

var runCmd = &cobra.Command{
	Use:   "run [project-root]",
	Short: "Run the project's Django test suite",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgPath)
		if err != nil {
			return err
		}

		python := runPython
		if python == "" {
			python = cfg.Python
		}
		timeout := runTimeout
		if timeout == 0 {
			timeout = cfg.Runner.Timeout
		}

		result := runner.Run(cmd.Context(), runner.Options{
			ProjectRoot: projectRootArg(args),
			Settings:    runSettings,
			Python:      python,
			Timeout:     timeout,
		})

		fmt.Fprint(cmd.OutOrStdout(), result.Stdout)
		if result.Stderr != "" {
			fmt.Fprint(os.Stderr, result.Stderr)
		}
		if result.ExitCode != 0 {
			os.Exit(result.ExitCode)
		}
		return nil
	},
}

func init() {
	runCmd.Flags().StringVar(&runSettings, "settings", "", "DJANGO_SETTINGS_MODULE override for the test run")
	runCmd.Flags().StringVar(&runPython, "python", "", "Python interpreter (defaults to config)")
	runCmd.Flags().DurationVar(&runTimeout, "timeout", 0, "Wall-clock budget for the test run (defaults to config)")
	rootCmd.AddCommand(runCmd)
}
