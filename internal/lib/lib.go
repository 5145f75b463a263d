// Package lib groups integrations that sit outside the request layers:
// the background job queue (Asynq on Redis) and the email client (Resend).
package lib
