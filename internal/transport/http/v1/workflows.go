package v1

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/harborgrid/gridiq/internal/domain"
)

// CreateWorkflow starts a new workflow run.
// POST /v1/workflows
func (h *Handler) CreateWorkflow(c echo.Context) error {
	var req domain.CreateRunRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	snap, err := h.service.CreateRun(c.Request().Context(), req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusCreated, snap)
}

// ListWorkflows lists recent runs.
// GET /v1/workflows
func (h *Handler) ListWorkflows(c echo.Context) error {
	limit := 50
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}

	runs, err := h.service.ListRuns(c.Request().Context(), c.QueryParam("vessel_id"), limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"runs": runs,
	})
}

// GetWorkflow returns the live snapshot of a run.
// GET /v1/workflows/:run_id
func (h *Handler) GetWorkflow(c echo.Context) error {
	snap, err := h.service.GetSnapshot(c.Request().Context(), c.Param("run_id"))
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// TransitionWorkflow applies a phase transition.
// POST /v1/workflows/:run_id/transition
func (h *Handler) TransitionWorkflow(c echo.Context) error {
	var req domain.TransitionRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if req.Action == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "action is required"})
	}

	snap, err := h.service.Transition(c.Request().Context(), c.Param("run_id"), req)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, snap)
}

// CloseWorkflow tears down a run.
// DELETE /v1/workflows/:run_id
func (h *Handler) CloseWorkflow(c echo.Context) error {
	if err := h.service.CloseRun(c.Request().Context(), c.Param("run_id")); err != nil {
		return errorResponse(c, err)
	}
	return c.NoContent(http.StatusNoContent)
}

// GetWorkflowEvents returns recorded events for a run.
// GET /v1/workflows/:run_id/events?after_ts=&types=&limit=
func (h *Handler) GetWorkflowEvents(c echo.Context) error {
	limit := 0
	if l := c.QueryParam("limit"); l != "" {
		if val, err := strconv.Atoi(l); err == nil {
			limit = val
		}
	}
	afterTs := int64(0)
	if t := c.QueryParam("after_ts"); t != "" {
		if val, err := strconv.ParseInt(t, 10, 64); err == nil {
			afterTs = val
		}
	}
	var types []string
	if raw := c.QueryParam("types"); raw != "" {
		for _, t := range strings.Split(raw, ",") {
			if t = strings.TrimSpace(t); t != "" {
				types = append(types, t)
			}
		}
	}

	events, err := h.service.GetEvents(c.Request().Context(), c.Param("run_id"), afterTs, types, limit)
	if err != nil {
		return errorResponse(c, err)
	}
	return c.JSON(http.StatusOK, map[string]interface{}{
		"events": events,
	})
}

// StreamWorkflow upgrades to a websocket streaming the run's events.
// GET /v1/workflows/:run_id/stream
func (h *Handler) StreamWorkflow(c echo.Context) error {
	runID := c.Param("run_id")
	if _, err := h.service.GetSnapshot(c.Request().Context(), runID); err != nil {
		return errorResponse(c, err)
	}
	return h.hub.Serve(c.Response(), c.Request(), runID)
}

// ListScenarios returns the scenario catalog.
// GET /v1/scenarios
func (h *Handler) ListScenarios(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"scenarios": h.service.Scenarios(),
	})
}
