package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/harborgrid/gridiq/internal/domain"
)

// CreateRoute stores a new route.
// POST /v1/routes
func (h *Handler) CreateRoute(c echo.Context) error {
	var req domain.RouteUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Name == "" || req.VesselID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "name and vessel_id are required"})
	}

	route, err := h.service.CreateRoute(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, route)
}

// ListRoutes lists routes, optionally filtered by vessel.
// GET /v1/routes
func (h *Handler) ListRoutes(c echo.Context) error {
	routes, err := h.service.ListRoutes(c.Request().Context(), c.QueryParam("vessel_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"routes": routes,
	})
}

// GetRoute retrieves one route.
// GET /v1/routes/:route_id
func (h *Handler) GetRoute(c echo.Context) error {
	route, err := h.service.GetRoute(c.Request().Context(), c.Param("route_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, route)
}

// UpdateRoute applies changes to a route.
// PUT /v1/routes/:route_id
func (h *Handler) UpdateRoute(c echo.Context) error {
	var req domain.RouteUpsertRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	route, err := h.service.UpdateRoute(c.Request().Context(), c.Param("route_id"), req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, route)
}

// DeleteRoute removes a route.
// DELETE /v1/routes/:route_id
func (h *Handler) DeleteRoute(c echo.Context) error {
	if err := h.service.DeleteRoute(c.Request().Context(), c.Param("route_id")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}
