// Package service holds the business logic between handlers and
// repositories.
//
// Services receive validated input, call exactly the repository methods an
// operation needs and translate storage failures into API errors.
package service
