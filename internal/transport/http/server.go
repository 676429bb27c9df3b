// Package http provides the HTTP server for the gridiq service.
package http

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"

	"github.com/harborgrid/gridiq/internal/service"
	"github.com/harborgrid/gridiq/internal/transport/ws"
	v1 "github.com/harborgrid/gridiq/internal/transport/http/v1"
)

// NewServer creates and configures the HTTP server. It serves the workflow
// API, the assist proxy, route management, fleet telemetry, and the run
// event stream.
func NewServer(svc *service.Service, hub *ws.Hub) *echo.Echo {
	e := echo.New()
	e.HideBanner = true

	// Middleware
	e.Use(middleware.Logger())
	e.Use(middleware.Recover())
	e.Use(middleware.CORS())

	// Handlers
	v1Handler := v1.NewHandler(svc, hub)
	v1Handler.RegisterRoutes(e)

	return e
}
