// Package v1 provides the HTTP handlers for the gridiq service.
package v1

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/harborgrid/gridiq/internal/service"
	"github.com/harborgrid/gridiq/internal/transport/ws"
	"github.com/harborgrid/gridiq/internal/workflow"
)

// Handler handles HTTP requests.
type Handler struct {
	service *service.Service
	hub     *ws.Hub
}

// NewHandler creates a new handler.
func NewHandler(svc *service.Service, hub *ws.Hub) *Handler {
	return &Handler{
		service: svc,
		hub:     hub,
	}
}

// RegisterRoutes registers routes with the echo server.
func (h *Handler) RegisterRoutes(e *echo.Echo) {
	// Workflow API
	e.POST("/v1/workflows", h.CreateWorkflow)
	e.GET("/v1/workflows", h.ListWorkflows)
	e.GET("/v1/workflows/:run_id", h.GetWorkflow)
	e.POST("/v1/workflows/:run_id/transition", h.TransitionWorkflow)
	e.DELETE("/v1/workflows/:run_id", h.CloseWorkflow)
	e.GET("/v1/workflows/:run_id/events", h.GetWorkflowEvents)
	e.GET("/v1/workflows/:run_id/stream", h.StreamWorkflow)

	// Catalog
	e.GET("/v1/scenarios", h.ListScenarios)

	// Assist proxy
	e.POST("/v1/assist", h.Assist)

	// Route management
	e.POST("/v1/routes", h.CreateRoute)
	e.GET("/v1/routes", h.ListRoutes)
	e.GET("/v1/routes/:route_id", h.GetRoute)
	e.PUT("/v1/routes/:route_id", h.UpdateRoute)
	e.DELETE("/v1/routes/:route_id", h.DeleteRoute)

	// Fleet telemetry
	e.GET("/v1/fleet/positions", h.FleetPositions)

	e.GET("/health", h.Health)
}

// Health returns health status.
func (h *Handler) Health(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{
		"status":  "healthy",
		"version": "0.1.0",
	})
}

// errorResponse maps service errors to HTTP status codes.
func errorResponse(c echo.Context, err error) error {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, service.ErrRunNotFound), errors.Is(err, service.ErrRouteNotFound):
		status = http.StatusNotFound
	case errors.Is(err, service.ErrAckRequired):
		status = http.StatusConflict
	case errors.Is(err, service.ErrDispatchBlocked):
		status = http.StatusForbidden
	case errors.Is(err, workflow.ErrInvalidTransition),
		errors.Is(err, workflow.ErrUnknownScenario),
		errors.Is(err, workflow.ErrUnknownOption),
		errors.Is(err, workflow.ErrSessionClosed),
		errors.Is(err, service.ErrUnknownAction):
		status = http.StatusBadRequest
	}
	return c.JSON(status, map[string]string{"error": err.Error()})
}
