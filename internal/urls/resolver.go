package urls

import (
	"os"
	"path/filepath"
	"strings"

	"drfspec/internal/endpoints"
	"drfspec/internal/pyast"
)

// entryFile is the single URL-configuration entry point read by the
// resolver, relative to the project root.
const entryFile = "config/urls.py"

// Resolve builds the view-name → URL map and returns enriched copies of the
// endpoint records. Endpoints without a matching pattern keep an empty URL.
func Resolve(p *pyast.Parser, projectRoot string, eps []endpoints.Endpoint) ([]endpoints.Endpoint, error) {
	urlMap, err := CollectAll(p, projectRoot)
	if err != nil {
		return nil, err
	}

	out := make([]endpoints.Endpoint, len(eps))
	for i, ep := range eps {
		ep.URL = urlMap[ep.View]
		out[i] = ep
	}
	return out, nil
}

// CollectAll parses the URL configuration starting at config/urls.py. A
// missing entry file yields an empty map, not an error. A syntax error in
// the entry file propagates; syntax errors inside included files only skip
// that branch.
//
// The map is keyed by view name alone, so two apps exposing same-named
// views collide and the last pattern wins.
func CollectAll(p *pyast.Parser, projectRoot string) (map[string]string, error) {
	urlMap := make(map[string]string)

	entry := filepath.Join(projectRoot, filepath.FromSlash(entryFile))
	if _, err := os.Stat(entry); err != nil {
		return urlMap, nil
	}

	mod, err := p.ParseFile(entry)
	if err != nil {
		return nil, err
	}

	walkURLModule(p, mod, projectRoot, "", urlMap)
	return urlMap, nil
}

func walkURLModule(p *pyast.Parser, mod *pyast.Module, projectRoot, prefix string, urlMap map[string]string) {
	for _, assign := range mod.Assigns {
		if assign.Target != "urlpatterns" {
			continue
		}
		walkPatterns(p, assign.Value, projectRoot, prefix, urlMap)
	}
}

func walkPatterns(p *pyast.Parser, value *pyast.Expr, projectRoot, prefix string, urlMap map[string]string) {
	if value == nil || value.Kind != pyast.KindList {
		return
	}

	for _, item := range value.Elems {
		if item.Kind != pyast.KindCall || item.Fn == nil || item.Fn.Kind != pyast.KindName {
			continue
		}
		if item.Fn.Name != "path" && item.Fn.Name != "re_path" {
			continue
		}

		fragment, view, includeModule := splitPathCall(item)

		if includeModule != "" {
			includePath := resolveURLModule(projectRoot, includeModule)
			if includePath == "" {
				continue
			}
			sub, err := p.ParseFile(includePath)
			if err != nil {
				// Broken included branches are skipped, unlike the entry
				// file where a parse failure aborts resolution.
				continue
			}
			// Prefixes concatenate raw; normalization happens only when a
			// mapping is finalized.
			walkURLModule(p, sub, projectRoot, prefix+fragment, urlMap)
		} else if view != "" {
			urlMap[view] = normalizeURL(prefix + fragment)
		}
	}
}

// splitPathCall dissects one path()/re_path() entry into its URL fragment
// and either a view identifier or an included module. Entries with fewer
// than two positional arguments or a non-constant first argument contribute
// nothing.
func splitPathCall(call *pyast.Expr) (fragment, view, includeModule string) {
	if len(call.Args) < 2 {
		return "", "", ""
	}
	if call.Args[0].Kind != pyast.KindString {
		return "", "", ""
	}

	fragment = call.Args[0].Name
	target := call.Args[1]

	if target.Kind == pyast.KindCall && target.Fn != nil {
		// include("app.urls")
		if target.Fn.Kind == pyast.KindName && target.Fn.Name == "include" {
			if len(target.Args) > 0 && target.Args[0].Kind == pyast.KindString {
				return fragment, "", target.Args[0].Name
			}
		}
		// ViewClass.as_view()
		if target.Fn.Kind == pyast.KindAttribute && target.Fn.Recv != nil && target.Fn.Recv.Kind == pyast.KindName {
			return fragment, target.Fn.Recv.Name, ""
		}
	}

	// Bare function-view reference.
	if target.Kind == pyast.KindName {
		return fragment, target.Name, ""
	}

	return fragment, "", ""
}

// resolveURLModule maps a dotted module path to a file under the project
// root, returning "" when the file does not exist.
func resolveURLModule(projectRoot, module string) string {
	parts := strings.Split(module, ".")
	path := filepath.Join(append([]string{projectRoot}, parts...)...) + ".py"
	if _, err := os.Stat(path); err != nil {
		return ""
	}
	return path
}

func normalizeURL(url string) string {
	if !strings.HasPrefix(url, "/") {
		url = "/" + url
	}
	if !strings.HasSuffix(url, "/") {
		url += "/"
	}
	return url
}
