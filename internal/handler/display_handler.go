package handler

import (
	"net/http"

	"github.com/dafibh/fortuna/caja-backend/internal/display"
	"github.com/labstack/echo/v4"
)

// DisplayHandler serves the shared display registry
type DisplayHandler struct {
	registry *display.Registry
}

// NewDisplayHandler creates a new DisplayHandler
func NewDisplayHandler(registry *display.Registry) *DisplayHandler {
	return &DisplayHandler{registry: registry}
}

// PrimitivesResponse lists the primitives views import and re-export
type PrimitivesResponse struct {
	Imports []display.Primitive `json:"imports"`
	Exports []display.Primitive `json:"exports"`
}

// GetPrimitives godoc
// @Summary List display primitives
// @Description Widget primitives shared by every view
// @Tags display
// @Produce json
// @Success 200 {object} PrimitivesResponse
// @Router /display/primitives [get]
func (h *DisplayHandler) GetPrimitives(c echo.Context) error {
	return c.JSON(http.StatusOK, PrimitivesResponse{
		Imports: h.registry.Imports(),
		Exports: h.registry.Exports(),
	})
}
