package handler

import (
	"net/http"

	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/labstack/echo/v4"
)

const Greeting = "Hello from the Contacts API!"

type RootHandler struct {
	Handler
}

func NewRootHandler(s *server.Server) *RootHandler {
	return &RootHandler{
		Handler: NewHandler(s),
	}
}

func (h *RootHandler) Greet(c echo.Context) error {
	return c.String(http.StatusOK, Greeting)
}
