package cli

import (
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"drfspec/internal/config"
	"drfspec/internal/endpoints"
	"drfspec/internal/pyast"
	"drfspec/internal/scanner"
	"drfspec/internal/urls"
)

var (
	inspectWithURLs bool
	inspectSettings string
)

// inspectOutput mirrors the raw pipeline state, including endpoints that
// never resolved to a URL. Null fields stay null rather than vanishing so
// consumers can tell "unresolved" from "absent".
type inspectOutput struct {
	ProjectRoot    string            `json:"project_root"`
	SettingsModule string            `json:"settings_module"`
	Apps           []scanner.AppMeta `json:"apps"`
	Endpoints      []inspectEndpoint `json:"endpoints"`
}

type inspectEndpoint struct {
	App         string             `json:"app"`
	ViewName    string             `json:"view_name"`
	ViewType    endpoints.ViewKind `json:"view_type"`
	HTTPMethods []string           `json:"http_methods"`
	Serializer  *string            `json:"serializer"`
	URL         *string            `json:"url"`
	File        string             `json:"file"`
}

var inspectCmd = &cobra.Command{
	Use:   "inspect [project-root]",
	Short: "Print the raw inspection result as JSON",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.LoadOrDefault(cfgPath)
		if err != nil {
			return err
		}

		scan, err := scanner.Scan(projectRootArg(args), inspectSettings, cfg)
		if err != nil {
			return err
		}

		parser := pyast.New()
		eps, err := endpoints.ParseProject(parser, scan)
		if err != nil {
			return err
		}

		if inspectWithURLs {
			slog.Debug("resolving URLs", "root", scan.ProjectRoot)
			eps, err = urls.Resolve(parser, scan.ProjectRoot, eps)
			if err != nil {
				return err
			}
		}

		output := inspectOutput{
			ProjectRoot:    scan.ProjectRoot,
			SettingsModule: scan.SettingsModule,
			Apps:           scan.Apps,
			Endpoints:      make([]inspectEndpoint, 0, len(eps)),
		}
		for _, ep := range eps {
			output.Endpoints = append(output.Endpoints, inspectEndpoint{
				App:         ep.App,
				ViewName:    ep.View,
				ViewType:    ep.Kind,
				HTTPMethods: ep.Methods,
				Serializer:  nullable(ep.Serializer),
				URL:         nullable(ep.URL),
				File:        ep.File,
			})
		}

		data, err := json.MarshalIndent(output, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), string(data))
		return nil
	},
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func init() {
	inspectCmd.Flags().BoolVar(&inspectWithURLs, "with-urls", false, "Resolve URL patterns from urls.py and attach to endpoints")
	inspectCmd.Flags().StringVar(&inspectSettings, "settings", "", "Settings module override (skips detection)")
	rootCmd.AddCommand(inspectCmd)
}
