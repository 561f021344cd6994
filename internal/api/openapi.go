package api

import (
	"strings"

	"github.com/lendcore/veriflow/internal/config"
	"github.com/lendcore/veriflow/pkg/openapi"
	"github.com/lendcore/veriflow/pkg/routes"
)

// buildSpecJSON generates the OpenAPI document from the registered route
// groups and returns it pre-serialized for serving.
func buildSpecJSON(cfg *config.Config, groups []routes.Group) ([]byte, error) {
	spec := openapi.NewSpec(cfg.API.OpenAPI.Title, cfg.Version)
	spec.SetDescription(cfg.API.OpenAPI.Description)
	spec.AddServer(cfg.API.BasePath)

	for _, group := range groups {
		addGroup(spec, "", group)
	}

	return openapi.MarshalJSON(spec)
}

func addGroup(spec *openapi.Spec, parentPrefix string, group routes.Group) {
	fullPrefix := parentPrefix + group.Prefix

	for _, route := range group.Routes {
		path := fullPrefix + route.Pattern
		item, ok := spec.Paths[path]
		if !ok {
			item = &openapi.PathItem{}
			spec.Paths[path] = item
		}

		op := &openapi.Operation{
			Summary:    route.Method + " " + path,
			Tags:       group.Tags,
			Parameters: pathParameters(path),
			Responses:  defaultResponses(route.Method),
		}

		switch route.Method {
		case "GET":
			item.Get = op
		case "POST":
			item.Post = op
		case "PUT":
			item.Put = op
		case "DELETE":
			item.Delete = op
		}
	}

	for _, child := range group.Children {
		addGroup(spec, fullPrefix, child)
	}
}

func pathParameters(path string) []*openapi.Parameter {
	var params []*openapi.Parameter
	for _, segment := range strings.Split(path, "/") {
		if strings.HasPrefix(segment, "{") && strings.HasSuffix(segment, "}") {
			params = append(params, &openapi.Parameter{
				Name:     strings.Trim(segment, "{}"),
				In:       "path",
				Required: true,
				Schema:   &openapi.Schema{Type: "string", Format: "uuid"},
			})
		}
	}
	return params
}

func defaultResponses(method string) map[int]*openapi.Response {
	responses := map[int]*openapi.Response{
		400: openapi.ResponseRef("BadRequest"),
		403: openapi.ResponseRef("Forbidden"),
		404: openapi.ResponseRef("NotFound"),
	}

	switch method {
	case "POST":
		responses[201] = &openapi.Response{Description: "Created"}
		responses[422] = openapi.ResponseRef("ValidationFailed")
	case "PUT":
		responses[200] = &openapi.Response{Description: "Updated"}
		responses[422] = openapi.ResponseRef("ValidationFailed")
	case "DELETE":
		responses[204] = &openapi.Response{Description: "Deleted"}
	default:
		responses[200] = &openapi.Response{Description: "Success"}
	}

	return responses
}
