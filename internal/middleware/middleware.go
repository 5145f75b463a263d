// Package middleware holds the echo middleware shared by every route:
// request ids, the request-scoped logger, access logs, panic recovery,
// secure headers, CORS, New Relic tracing, Prometheus metrics and the
// global error handler.
package middleware
