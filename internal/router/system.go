package router

import (
	"github.com/deppfellow/contacts-api/internal/handler"
	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/labstack/echo/v4"
)

// registerSystemRoutes registers the endpoints outside the contacts API:
// greeting, health, docs and metrics.
func registerSystemRoutes(r *echo.Echo, h *handler.Handlers, mw *middleware.Middlewares) {
	r.GET("/", h.Root.Greet)

	// Used by load balancers and monitors.
	r.GET("/status", h.Health.CheckHealth)

	r.GET("/api-docs", h.OpenAPI.ServeOpenAPIUI)
	r.GET("/api-docs/openapi.json", h.OpenAPI.ServeOpenAPIDocument)

	r.GET("/metrics", mw.Metrics.Handler())
}
