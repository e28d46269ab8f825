package cli

import (
	"log/slog"

	"drfspec/internal/config"
	"drfspec/internal/endpoints"
	"drfspec/internal/pyast"
	"drfspec/internal/scanner"
	"drfspec/internal/urls"
)

// runPipeline executes scan → endpoint parse → URL resolution and returns
// the scan result together with the URL-enriched endpoint list.
func runPipeline(cfg *config.Config, projectRoot, settings string) (*scanner.Result, []endpoints.Endpoint, error) {
	scan, err := scanner.Scan(projectRoot, settings, cfg)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("scan complete", "root", scan.ProjectRoot, "apps", len(scan.Apps))

	parser := pyast.New()
	eps, err := endpoints.ParseProject(parser, scan)
	if err != nil {
		return nil, nil, err
	}
	slog.Debug("endpoints parsed", "count", len(eps))

	resolved, err := urls.Resolve(parser, scan.ProjectRoot, eps)
	if err != nil {
		return nil, nil, err
	}

	return scan, resolved, nil
}

func countResolved(eps []endpoints.Endpoint) int {
	n := 0
	for _, ep := range eps {
		if ep.URL != "" {
			n++
		}
	}
	return n
}
