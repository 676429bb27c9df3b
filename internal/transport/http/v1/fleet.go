package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
)

// FleetPositions returns the current fleet telemetry snapshot.
// GET /v1/fleet/positions
func (h *Handler) FleetPositions(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]interface{}{
		"vessels": h.service.FleetPositions(),
	})
}
