package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/dafibh/fortuna/caja-backend/internal/display"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetPrimitives(t *testing.T) {
	e := echo.New()
	h := NewDisplayHandler(display.NewRegistry(nil))

	req := httptest.NewRequest(http.MethodGet, "/api/v1/display/primitives", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	require.NoError(t, h.GetPrimitives(c))
	assert.Equal(t, http.StatusOK, rec.Code)

	var response PrimitivesResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.NotEmpty(t, response.Imports)
	assert.Equal(t, response.Imports, response.Exports)
}
