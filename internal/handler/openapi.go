package handler

import (
	_ "embed"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/deppfellow/contacts-api/internal/openapi"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/labstack/echo/v4"
)

const (
	APITitle   = "Contacts API"
	APIVersion = "1.0.0"
)

//go:embed static/openapi.html
var openAPIUI []byte

// OpenAPIHandler serves the API reference page and the document it loads.
type OpenAPIHandler struct {
	Handler
	document []byte
}

// NewOpenAPIHandler renders the OpenAPI document once at start-up.
func NewOpenAPIHandler(s *server.Server) (*OpenAPIHandler, error) {
	document, err := json.Marshal(openapi.Build(APITitle, APIVersion))
	if err != nil {
		return nil, fmt.Errorf("failed to render OpenAPI document: %w", err)
	}

	return &OpenAPIHandler{
		Handler:  NewHandler(s),
		document: document,
	}, nil
}

// ServeOpenAPIUI serves the interactive reference. It is never cached so
// doc changes show up on reload.
func (h *OpenAPIHandler) ServeOpenAPIUI(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")

	if err := c.HTMLBlob(http.StatusOK, openAPIUI); err != nil {
		return fmt.Errorf("failed to write HTML response: %w", err)
	}
	return nil
}

func (h *OpenAPIHandler) ServeOpenAPIDocument(c echo.Context) error {
	c.Response().Header().Set("Cache-Control", "no-cache")
	return c.JSONBlob(http.StatusOK, h.document)
}
