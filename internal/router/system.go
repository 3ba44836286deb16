package router

import (
	"github.com/labstack/echo/v4"

	"github.com/shieldsupport/backend/internal/handler"
)

// registerSystemRoutes registers endpoints that are not part of business
// logic: health status, docs UI, and the static assets the docs UI reads.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers) {
	r.GET("/status", h.Health.CheckHealth)

	r.Static("/static", "static")

	r.GET("/docs", h.OpenAPI.ServeOpenAPIUI)
}
