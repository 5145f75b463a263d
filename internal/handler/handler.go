// Package handler is the HTTP layer.
//
// Handlers bind and validate a typed request, call one service method and
// write the result. Errors are returned to echo and rendered by the global
// error handler.
package handler
