package middleware

import (
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/prometheus/client_golang/prometheus"
)

// Middlewares is built once and used by the router.
type Middlewares struct {
	Global          *GlobalMiddlewares
	ContextEnhancer *ContextEnhancer
	Tracing         *TracingMiddleware
	Metrics         *MetricsMiddleware
}

// NewMiddlewares builds the middleware set. Metrics are registered on
// registry so tests can use a fresh one.
func NewMiddlewares(s *server.Server, registry *prometheus.Registry) *Middlewares {
	return &Middlewares{
		Global:          NewGlobalMiddlewares(s),
		ContextEnhancer: NewContextEnhancer(s),
		Tracing:         NewTracingMiddleware(s, s.LoggerService.GetApplication()),
		Metrics:         NewMetricsMiddleware(registry),
	}
}
