package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestServeOpenAPI3Spec(t *testing.T) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/swagger/openapi3.json", nil)
	req.Host = "caja.test"
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, ServeOpenAPI3Spec(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var spec OpenAPI3Spec
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &spec))

	assert.Equal(t, "3.0.3", spec.OpenAPI)
	assert.Equal(t, "Caja API", spec.Info["title"])
	require.NotEmpty(t, spec.Servers)
	assert.Equal(t, "http://caja.test/api/v1", spec.Servers[0].URL)
	assert.Contains(t, spec.Paths, "/dashboard/activate")
	assert.Contains(t, spec.Components, "schemas")
	assert.Contains(t, spec.Components, "securitySchemes")

	// the avatar form field is served as a multipart request body
	avatar := spec.Paths["/auth/avatar"].(map[string]interface{})["post"].(map[string]interface{})
	assert.NotContains(t, avatar, "parameters")
	assert.NotContains(t, avatar, "consumes")
	body := avatar["requestBody"].(map[string]interface{})
	form := body["content"].(map[string]interface{})["multipart/form-data"].(map[string]interface{})
	file := form["schema"].(map[string]interface{})["properties"].(map[string]interface{})["file"].(map[string]interface{})
	assert.Equal(t, "binary", file["format"])
}

func TestConvertOperation(t *testing.T) {
	op := map[string]interface{}{
		"summary":  "Classify an invoice status or payment method",
		"produces": []interface{}{"application/json"},
		"parameters": []interface{}{
			map[string]interface{}{"name": "status", "in": "query", "type": "string", "description": "Invoice status"},
		},
		"responses": map[string]interface{}{
			"200": map[string]interface{}{
				"description": "OK",
				"schema":      map[string]interface{}{"$ref": "#/definitions/handler.SeverityResponse"},
			},
			"204": map[string]interface{}{"description": "No Content"},
		},
	}

	out := convertOperation(op)

	assert.Equal(t, "Classify an invoice status or payment method", out["summary"])
	assert.NotContains(t, out, "produces")
	assert.NotContains(t, out, "requestBody")

	param := out["parameters"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, map[string]interface{}{"type": "string"}, param["schema"])
	assert.Equal(t, "Invoice status", param["description"])
	assert.NotContains(t, param, "type")

	responses := out["responses"].(map[string]interface{})
	ok := responses["200"].(map[string]interface{})
	schema := ok["content"].(map[string]interface{})["application/json"].(map[string]interface{})["schema"].(map[string]interface{})
	assert.Equal(t, "#/components/schemas/handler.SeverityResponse", schema["$ref"])
	assert.NotContains(t, ok, "schema")
	assert.NotContains(t, responses["204"], "content")
}

func TestConvertOperation_FormData(t *testing.T) {
	op := map[string]interface{}{
		"consumes": []interface{}{"multipart/form-data"},
		"parameters": []interface{}{
			map[string]interface{}{"name": "file", "in": "formData", "type": "file", "required": true},
		},
	}

	out := convertOperation(op)

	assert.NotContains(t, out, "parameters")
	body := out["requestBody"].(map[string]interface{})
	assert.Equal(t, true, body["required"])
	schema := body["content"].(map[string]interface{})["multipart/form-data"].(map[string]interface{})["schema"].(map[string]interface{})
	assert.Equal(t, []interface{}{"file"}, schema["required"])
	file := schema["properties"].(map[string]interface{})["file"].(map[string]interface{})
	assert.Equal(t, "string", file["type"])
	assert.Equal(t, "binary", file["format"])
}

func TestRewriteRefs(t *testing.T) {
	in := map[string]interface{}{
		"properties": map[string]interface{}{
			"account": map[string]interface{}{"$ref": "#/definitions/domain.Account"},
			"items":   []interface{}{map[string]interface{}{"$ref": "#/definitions/handler.InvoiceResponse"}},
		},
	}

	out := rewriteRefs(in).(map[string]interface{})
	props := out["properties"].(map[string]interface{})
	assert.Equal(t, "#/components/schemas/domain.Account", props["account"].(map[string]interface{})["$ref"])
	item := props["items"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "#/components/schemas/handler.InvoiceResponse", item["$ref"])
}
