package cli

import (
	"encoding/json"
	"log/slog"

	"github.com/spf13/cobra"

	"drfspec/internal/config"
	"drfspec/internal/shared/util"
	"drfspec/internal/spec"
)

var (
	openapiOut      string
	openapiSettings string
)

var openapiCmd = &cobra.Command{
	Use:   "openapi [project-root]",
	Short: "Export the discovered endpoints as an OpenAPI 3 document",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgPath)
		if err != nil {
			return err
		}

		scan, eps, err := runPipeline(cfg, projectRootArg(args), openapiSettings)
		if err != nil {
			return err
		}

		doc := spec.ToOpenAPI(spec.Build(scan, eps))
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return err
		}
		if err := util.WriteFileWithDirs(openapiOut, append(data, '\n'), 0o644); err != nil {
			return err
		}

		slog.Info("openapi document written", "path", openapiOut, "paths", len(doc.Paths.Map()))
		return nil
	},
}

func init() {
	openapiCmd.Flags().StringVar(&openapiOut, "out", "openapi.json", "Output path for the OpenAPI document")
	openapiCmd.Flags().StringVar(&openapiSettings, "settings", "", "Settings module override (skips detection)")
	rootCmd.AddCommand(openapiCmd)
}
