package v1

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/harborgrid/gridiq/internal/domain"
)

// Assist forwards a chat request to the assist backend and returns the
// rendered HTML. Backend outages still yield 200 with an error bubble so
// the chat panel can display something.
// POST /v1/assist
func (h *Handler) Assist(c echo.Context) error {
	var req domain.AssistRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.service.Assist(c.Request().Context(), req)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	return c.JSON(http.StatusOK, result)
}
