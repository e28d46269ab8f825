package spec

import (
	"path/filepath"
	"strings"

	"drfspec/internal/endpoints"
	"drfspec/internal/scanner"
)

const frameworkLabel = "Django REST Framework"

var bodyMethods = map[string]bool{
	"POST":  true,
	"PUT":   true,
	"PATCH": true,
}

// Build assembles the spec document from scan and endpoint data. Pure: no
// filesystem access, no mutation of its inputs. Endpoints without a
// resolved URL are dropped.
func Build(scan *scanner.Result, eps []endpoints.Endpoint) *Document {
	doc := &Document{
		SpecVersion: SpecVersion,
		Project: Project{
			Name:           filepath.Base(scan.ProjectRoot),
			Framework:      frameworkLabel,
			SettingsModule: scan.SettingsModule,
			Root:           scan.ProjectRoot,
		},
		Apps:      make([]App, 0, len(scan.Apps)),
		Endpoints: []Endpoint{},
		Conventions: Conventions{
			SuccessStatus:        200,
			InvalidPayloadStatus: 400,
			AuthHeaderExample:    "Authorization: Bearer <token>",
		},
	}

	for _, app := range scan.Apps {
		doc.Apps = append(doc.Apps, App{
			Name: app.Name,
			Path: app.Path,
			Layers: Layers{
				Entities:  app.Entities,
				OrmModels: app.OrmModels,
				Usecases:  app.Usecases,
				Services:  app.Services,
			},
		})
	}

	for _, ep := range eps {
		if ep.URL == "" {
			continue
		}
		doc.Endpoints = append(doc.Endpoints, buildEndpoint(ep))
	}

	return doc
}

func buildEndpoint(ep endpoints.Endpoint) Endpoint {
	method := "GET"
	if len(ep.Methods) > 0 {
		method = ep.Methods[0]
	}

	return Endpoint{
		App:        ep.App,
		View:       ep.View,
		Method:     method,
		URL:        ep.URL,
		PathParams: ExtractPathParams(ep.URL),
		Serializer: optionalString(ep.Serializer),
		// Static placeholder: no auth introspection is performed.
		RequiresAuth: true,
		Metadata: Metadata{
			HasBody:          bodyMethods[method],
			IsListEndpoint:   strings.Contains(strings.ToLower(ep.View), "list"),
			IsDetailEndpoint: strings.Contains(ep.URL, "<"),
		},
		TestCases: defaultTestCases(method),
	}
}

// defaultTestCases emits static templates, not anything derived from the
// serializer schema. Body-carrying methods get the two fixed failure cases.
func defaultTestCases(method string) TestCases {
	cases := TestCases{
		Success: SuccessCase{
			ExpectedStatus: 200,
			Asserts: []string{
				"response.status_code == expected_status",
				"response content-type is application/json",
			},
		},
	}

	if bodyMethods[method] {
		cases.Failure = []FailureCase{
			{
				Case:           "empty_payload",
				Payload:        map[string]any{},
				ExpectedStatus: 400,
			},
			{
				Case:           "wrong_type",
				Payload:        map[string]any{"__example_field__": "invalid_type"},
				ExpectedStatus: 400,
			},
		}
	}

	return cases
}

// optionalString keeps absent values as explicit nulls in the document.
func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
