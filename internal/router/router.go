// Package router initializes the HTTP router (using Echo).
//
// It registers the middlewares and defines the API route groups,
// mapping specific paths to their corresponding handlers.
package router

import (
	"github.com/deppfellow/contacts-api/internal/handler"
	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus"
)

// NewRouter builds the echo instance serving every route. Metrics are
// registered on registry and exposed on /metrics.
func NewRouter(s *server.Server, h *handler.Handlers, registry *prometheus.Registry) *echo.Echo {
	mw := middleware.NewMiddlewares(s, registry)

	router := echo.New()
	router.HideBanner = true
	router.HidePort = true

	router.HTTPErrorHandler = mw.Global.GlobalErrorHandler

	// Order matters: the request id and the New Relic transaction must
	// exist before the request logger is built, and the logger before
	// anything that logs.
	router.Use(
		middleware.RequestID(),
		mw.Tracing.NewRelicMiddleware(),
		mw.Tracing.EnhanceTracing(),
		mw.ContextEnhancer.EnhanceContext(),
		mw.Metrics.Middleware(),
		mw.Global.RequestLogger(),
		mw.Global.Recover(),
		mw.Global.Secure(),
		mw.Global.CORS(),
	)

	registerSystemRoutes(router, h, mw)

	api := router.Group("/api")
	registerContactRoutes(api, h)

	return router
}

func registerContactRoutes(g *echo.Group, h *handler.Handlers) {
	g.GET("/contacts", h.Contact.ListContacts())

	g.POST("/contact", h.Contact.CreateContact())
	g.GET("/contact/:id", h.Contact.GetContact())
	g.PUT("/contact/:id", h.Contact.UpdateContact())
	g.DELETE("/contact/:id", h.Contact.DeleteContact())
}
