package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

const versionString = "0.1.0"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the drfspec version",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "drfspec v%s\n", versionString)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
