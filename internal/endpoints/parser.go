package endpoints

import (
	"sort"
	"strings"

	"drfspec/internal/pyast"
	"drfspec/internal/scanner"
	"drfspec/internal/shared/util"
)

// httpMethodNames are the handler method names recognized on APIView
// subclasses.
var httpMethodNames = map[string]bool{
	"get":    true,
	"post":   true,
	"put":    true,
	"patch":  true,
	"delete": true,
}

// viewSetActions maps ViewSet action methods to HTTP verbs.
var viewSetActions = map[string]string{
	"list":           "GET",
	"retrieve":       "GET",
	"create":         "POST",
	"update":         "PUT",
	"partial_update": "PATCH",
	"destroy":        "DELETE",
}

// ParseProject extracts endpoints from every view file in app order, then
// per-file declaration order. Parse failures propagate: a view file that no
// longer parses should abort inspection rather than vanish silently.
func ParseProject(p *pyast.Parser, scan *scanner.Result) ([]Endpoint, error) {
	var endpoints []Endpoint

	for _, app := range scan.Apps {
		for _, viewFile := range app.Views {
			fileEndpoints, err := parseViewFile(p, app.Name, viewFile)
			if err != nil {
				return nil, err
			}
			endpoints = append(endpoints, fileEndpoints...)
		}
	}

	return endpoints, nil
}

func parseViewFile(p *pyast.Parser, appName, file string) ([]Endpoint, error) {
	mod, err := p.ParseFile(file)
	if err != nil {
		return nil, err
	}

	// Merge classes and functions back into declaration order.
	type candidate struct {
		line int
		ep   Endpoint
	}
	var found []candidate
	for _, cls := range mod.Classes {
		if ep, ok := classifyClass(appName, file, cls); ok {
			found = append(found, candidate{line: cls.Line, ep: ep})
		}
	}
	for _, fn := range mod.Functions {
		if ep, ok := classifyFunction(appName, file, fn); ok {
			found = append(found, candidate{line: fn.Line, ep: ep})
		}
	}
	sort.SliceStable(found, func(i, j int) bool { return found[i].line < found[j].line })

	results := make([]Endpoint, 0, len(found))
	for _, c := range found {
		results = append(results, c.ep)
	}
	return results, nil
}

func classifyClass(app, file string, cls pyast.Class) (Endpoint, bool) {
	if hasBaseSuffix(cls, "APIView") {
		return Endpoint{
			App:        app,
			View:       cls.Name,
			File:       file,
			Kind:       KindClassView,
			Methods:    classViewMethods(cls),
			Serializer: extractSerializer(cls),
		}, true
	}

	if hasBaseSuffix(cls, "ViewSet") {
		return Endpoint{
			App:        app,
			View:       cls.Name,
			File:       file,
			Kind:       KindViewSet,
			Methods:    viewSetMethods(cls),
			Serializer: extractSerializer(cls),
		}, true
	}

	return Endpoint{}, false
}

// classifyFunction emits a function view for any function carrying an
// api_view decorator. The decorator's declared method list is not
// inspected; function views always report GET and POST.
func classifyFunction(app, file string, fn pyast.Function) (Endpoint, bool) {
	for _, dec := range fn.Decorators {
		if dec == "api_view" {
			return Endpoint{
				App:     app,
				View:    fn.Name,
				File:    file,
				Kind:    KindFunctionView,
				Methods: []string{"GET", "POST"},
			}, true
		}
	}
	return Endpoint{}, false
}

func hasBaseSuffix(cls pyast.Class, suffix string) bool {
	for _, base := range cls.Bases {
		if strings.HasSuffix(base, suffix) {
			return true
		}
	}
	return false
}

func classViewMethods(cls pyast.Class) []string {
	var methods []string
	for _, name := range cls.Methods {
		lower := strings.ToLower(name)
		if httpMethodNames[lower] {
			methods = append(methods, strings.ToUpper(lower))
		}
	}
	return util.SortedUnique(methods)
}

func viewSetMethods(cls pyast.Class) []string {
	var methods []string
	for _, name := range cls.Methods {
		if verb, ok := viewSetActions[name]; ok {
			methods = append(methods, verb)
		}
	}
	return util.SortedUnique(methods)
}

func extractSerializer(cls pyast.Class) string {
	for _, assign := range cls.Assigns {
		if assign.Target == "serializer_class" && assign.Value != nil && assign.Value.Kind == pyast.KindName {
			return assign.Value.Name
		}
	}
	return ""
}
