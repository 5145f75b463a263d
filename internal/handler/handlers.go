package handler

import (
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
)

type Handlers struct {
	Root    *RootHandler
	Health  *HealthHandler
	OpenAPI *OpenAPIHandler
	Contact *ContactHandler
}

func NewHandlers(s *server.Server, services *service.Services) (*Handlers, error) {
	openAPI, err := NewOpenAPIHandler(s)
	if err != nil {
		return nil, err
	}

	return &Handlers{
		Root:    NewRootHandler(s),
		Health:  NewHealthHandler(s),
		OpenAPI: openAPI,
		Contact: NewContactHandler(s, services.Contact),
	}, nil
}
