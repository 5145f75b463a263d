// Package errs defines the error shapes returned to API clients.
//
// Every failure leaving the HTTP layer is an *HTTPError so clients always
// receive the same JSON envelope: a machine readable code, a message, the
// status and optional per-field details.
package errs
