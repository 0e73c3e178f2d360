package handler

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/dafibh/fortuna/caja-backend/docs"
	"github.com/labstack/echo/v4"
	"github.com/swaggo/swag"
)

const (
	swagger2RefPrefix = "#/definitions/"
	openAPI3RefPrefix = "#/components/schemas/"
	jsonMediaType     = "application/json"
)

// OpenAPI3Spec represents an OpenAPI 3.0 spec structure
type OpenAPI3Spec struct {
	OpenAPI    string                 `json:"openapi"`
	Info       map[string]interface{} `json:"info"`
	Servers    []Server               `json:"servers"`
	Paths      map[string]interface{} `json:"paths"`
	Components map[string]interface{} `json:"components,omitempty"`
}

// Server represents an OpenAPI 3.0 server
type Server struct {
	URL         string `json:"url"`
	Description string `json:"description"`
}

// ServeOpenAPI3Spec serves the registered swagger doc converted to OpenAPI 3.0.
// The request's own host is listed first so "try it out" hits the serving instance.
func ServeOpenAPI3Spec(c echo.Context) error {
	doc, err := swag.ReadDoc(docs.SwaggerInfo.InstanceName())
	if err != nil {
		return NewInternalError(c, "Failed to read API documentation")
	}

	var swagger2 map[string]interface{}
	if err := json.Unmarshal([]byte(doc), &swagger2); err != nil {
		return NewInternalError(c, "Failed to parse API documentation")
	}

	spec := convertSwagger2(swagger2)
	spec.Servers = []Server{
		{URL: c.Scheme() + "://" + c.Request().Host + docs.SwaggerInfo.BasePath, Description: "Current"},
		{URL: "http://localhost:8080" + docs.SwaggerInfo.BasePath, Description: "Local Development"},
	}

	return c.JSON(http.StatusOK, spec)
}

// convertSwagger2 rewrites a Swagger 2.0 document into OpenAPI 3.0 form
func convertSwagger2(swagger2 map[string]interface{}) OpenAPI3Spec {
	info, _ := swagger2["info"].(map[string]interface{})

	paths := make(map[string]interface{})
	if in, ok := swagger2["paths"].(map[string]interface{}); ok {
		for path, item := range in {
			operations, ok := item.(map[string]interface{})
			if !ok {
				continue
			}
			converted := make(map[string]interface{}, len(operations))
			for method, op := range operations {
				if opMap, ok := op.(map[string]interface{}); ok {
					converted[method] = convertOperation(opMap)
				}
			}
			paths[path] = converted
		}
	}

	components := make(map[string]interface{})
	if secDefs, ok := swagger2["securityDefinitions"].(map[string]interface{}); ok {
		components["securitySchemes"] = secDefs
	}
	if definitions, ok := swagger2["definitions"].(map[string]interface{}); ok {
		components["schemas"] = rewriteRefs(definitions)
	}

	return OpenAPI3Spec{
		OpenAPI:    "3.0.3",
		Info:       info,
		Paths:      paths,
		Components: components,
	}
}

// convertOperation moves form fields into a request body, wraps parameter
// types in schemas and nests response schemas under their media type
func convertOperation(op map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{}, len(op))
	for key, value := range op {
		switch key {
		case "consumes", "produces", "parameters", "responses":
		default:
			result[key] = value
		}
	}

	consumes := firstString(op["consumes"], "multipart/form-data")
	produces := firstString(op["produces"], jsonMediaType)

	var (
		params     []interface{}
		formFields = make(map[string]interface{})
		required   []interface{}
	)
	rawParams, _ := op["parameters"].([]interface{})
	for _, raw := range rawParams {
		param, ok := raw.(map[string]interface{})
		if !ok {
			continue
		}
		switch param["in"] {
		case "formData":
			name, _ := param["name"].(string)
			formFields[name] = formFieldSchema(param)
			if param["required"] == true {
				required = append(required, name)
			}
		case "body":
			result["requestBody"] = map[string]interface{}{
				"required": param["required"] == true,
				"content": map[string]interface{}{
					jsonMediaType: map[string]interface{}{"schema": rewriteRefs(param["schema"])},
				},
			}
		default:
			params = append(params, convertParameter(param))
		}
	}
	if len(params) > 0 {
		result["parameters"] = params
	}
	if len(formFields) > 0 {
		schema := map[string]interface{}{"type": "object", "properties": formFields}
		if len(required) > 0 {
			schema["required"] = required
		}
		result["requestBody"] = map[string]interface{}{
			"required": len(required) > 0,
			"content": map[string]interface{}{
				consumes: map[string]interface{}{"schema": schema},
			},
		}
	}

	if responses, ok := op["responses"].(map[string]interface{}); ok {
		converted := make(map[string]interface{}, len(responses))
		for status, raw := range responses {
			resp, ok := raw.(map[string]interface{})
			if !ok {
				continue
			}
			out := map[string]interface{}{"description": resp["description"]}
			if schema, ok := resp["schema"]; ok {
				out["content"] = map[string]interface{}{
					produces: map[string]interface{}{"schema": rewriteRefs(schema)},
				}
			}
			converted[status] = out
		}
		result["responses"] = converted
	}

	return result
}

// convertParameter wraps a path, query or header parameter's type fields in a schema
func convertParameter(param map[string]interface{}) map[string]interface{} {
	result := make(map[string]interface{})
	schema := make(map[string]interface{})
	for key, value := range param {
		switch key {
		case "name", "in", "description", "required":
			result[key] = value
		case "type", "format", "enum", "default", "minimum", "maximum", "items":
			schema[key] = rewriteRefs(value)
		}
	}
	if len(schema) > 0 {
		result["schema"] = schema
	}
	return result
}

// formFieldSchema describes a multipart field; files become binary strings
func formFieldSchema(param map[string]interface{}) map[string]interface{} {
	schema := make(map[string]interface{})
	if param["type"] == "file" {
		schema["type"] = "string"
		schema["format"] = "binary"
	} else if t, ok := param["type"]; ok {
		schema["type"] = t
	}
	if desc, ok := param["description"]; ok {
		schema["description"] = desc
	}
	return schema
}

// rewriteRefs points every $ref at components/schemas
func rewriteRefs(data interface{}) interface{} {
	switch v := data.(type) {
	case map[string]interface{}:
		result := make(map[string]interface{}, len(v))
		for key, value := range v {
			if ref, ok := value.(string); ok && key == "$ref" {
				result[key] = strings.Replace(ref, swagger2RefPrefix, openAPI3RefPrefix, 1)
				continue
			}
			result[key] = rewriteRefs(value)
		}
		return result
	case []interface{}:
		result := make([]interface{}, len(v))
		for i, item := range v {
			result[i] = rewriteRefs(item)
		}
		return result
	default:
		return data
	}
}

func firstString(list interface{}, fallback string) string {
	if items, ok := list.([]interface{}); ok && len(items) > 0 {
		if s, ok := items[0].(string); ok {
			return s
		}
	}
	return fallback
}
