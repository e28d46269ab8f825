package spec

import (
	"fmt"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// ToOpenAPI converts the spec document into an OpenAPI 3 description.
// Django converter segments become OpenAPI path parameters
// ("<uuid:event_id>" → "{event_id}").
func ToOpenAPI(doc *Document) *openapi3.T {
	out := &openapi3.T{
		OpenAPI: "3.0.3",
		Info: &openapi3.Info{
			Title:       doc.Project.Name,
			Description: fmt.Sprintf("Endpoints discovered in %s (%s)", doc.Project.Name, doc.Project.Framework),
			Version:     doc.SpecVersion,
		},
		Paths: openapi3.NewPaths(),
	}

	for _, ep := range doc.Endpoints {
		path := openAPIPath(ep.URL, ep.PathParams)

		item := out.Paths.Value(path)
		if item == nil {
			item = &openapi3.PathItem{}
			out.Paths.Set(path, item)
		}

		op := openapi3.NewOperation()
		op.OperationID = ep.View
		op.Summary = fmt.Sprintf("%s %s", ep.Method, ep.URL)
		op.Tags = []string{ep.App}

		for _, param := range ep.PathParams {
			p := openapi3.NewPathParameter(param.Name)
			p.Schema = openapi3.NewSchemaRef("", paramSchema(param.Type))
			op.AddParameter(p)
		}

		if ep.Metadata.HasBody {
			body := openapi3.NewRequestBody().WithJSONSchema(openapi3.NewObjectSchema())
			op.RequestBody = &openapi3.RequestBodyRef{Value: body}
			op.AddResponse(doc.Conventions.InvalidPayloadStatus,
				openapi3.NewResponse().WithDescription("Invalid payload"))
		}

		op.AddResponse(doc.Conventions.SuccessStatus,
			openapi3.NewResponse().WithDescription("Success"))

		item.SetOperation(ep.Method, op)
	}

	return out
}

func openAPIPath(url string, params []PathParam) string {
	out := url
	for _, param := range params {
		for _, raw := range []string{
			"<" + param.Type + ":" + param.Name + ">",
			"<" + param.Name + ">",
		} {
			out = strings.ReplaceAll(out, raw, "{"+param.Name+"}")
		}
	}
	return out
}

func paramSchema(converterType string) *openapi3.Schema {
	switch converterType {
	case "int":
		return openapi3.NewIntegerSchema()
	case "uuid":
		return openapi3.NewUUIDSchema()
	default:
		// str, slug, path and custom converters all surface as strings.
		return openapi3.NewStringSchema()
	}
}
