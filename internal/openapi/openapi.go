// Package openapi describes the HTTP API as an OpenAPI 3.1 document.
//
// Component schemas are generated from the Go types the handlers bind and
// return, so the document follows the code instead of hand written YAML.
package openapi

import (
	"net/http"
	"reflect"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/model"
)

const (
	jsonContentType = "application/json"
	contactsTag     = "Contacts"
)

// Build returns the document for every public route.
func Build(title, version string) *huma.OpenAPI {
	registry := huma.NewMapRegistry("#/components/schemas/", huma.DefaultSchemaNamer)

	oapi := &huma.OpenAPI{
		OpenAPI: "3.1.0",
		Info: &huma.Info{
			Title:       title,
			Version:     version,
			Description: "CRUD API for contacts with paginated listing.",
		},
		Tags: []*huma.Tag{
			{Name: contactsTag, Description: "Manage contacts"},
		},
		Paths:      map[string]*huma.PathItem{},
		Components: &huma.Components{Schemas: registry},
	}

	b := &builder{registry: registry}

	contactSchema := b.schema(model.Contact{})
	pageSchema := b.schema(model.ContactsPage{})
	inputSchema := b.schema(model.ContactInput{})

	oapi.AddOperation(&huma.Operation{
		OperationID: "get-root",
		Method:      http.MethodGet,
		Path:        "/",
		Summary:     "Greeting",
		Responses: map[string]*huma.Response{
			"200": {
				Description: "Static greeting",
				Content: map[string]*huma.MediaType{
					"text/plain": {Schema: &huma.Schema{Type: huma.TypeString}},
				},
			},
		},
	})

	oapi.AddOperation(&huma.Operation{
		OperationID: "list-contacts",
		Method:      http.MethodGet,
		Path:        "/api/contacts",
		Summary:     "List contacts",
		Description: "Returns one page of contacts ordered by id.",
		Tags:        []string{contactsTag},
		Parameters: []*huma.Param{
			b.queryInt("page", "Page number, starting at 1", model.DefaultPage, 1, model.MaxPage),
			b.queryInt("pageSize", "Contacts per page", model.DefaultPageSize, 1, model.MaxPageSize),
		},
		Responses: b.responses(http.StatusOK, "Page of contacts", pageSchema, http.StatusBadRequest),
	})

	oapi.AddOperation(&huma.Operation{
		OperationID: "create-contact",
		Method:      http.MethodPost,
		Path:        "/api/contact",
		Summary:     "Create a contact",
		Tags:        []string{contactsTag},
		RequestBody: b.body(inputSchema),
		Responses:   b.responses(http.StatusCreated, "Created contact", contactSchema, http.StatusBadRequest, http.StatusConflict),
	})

	oapi.AddOperation(&huma.Operation{
		OperationID: "get-contact",
		Method:      http.MethodGet,
		Path:        "/api/contact/{id}",
		Summary:     "Get a contact",
		Tags:        []string{contactsTag},
		Parameters:  []*huma.Param{b.pathID()},
		Responses:   b.responses(http.StatusOK, "Contact", contactSchema, http.StatusBadRequest, http.StatusNotFound),
	})

	oapi.AddOperation(&huma.Operation{
		OperationID: "update-contact",
		Method:      http.MethodPut,
		Path:        "/api/contact/{id}",
		Summary:     "Replace a contact",
		Description: "Replaces name and email. The id cannot change.",
		Tags:        []string{contactsTag},
		Parameters:  []*huma.Param{b.pathID()},
		RequestBody: b.body(inputSchema),
		Responses:   b.responses(http.StatusOK, "Updated contact", contactSchema, http.StatusBadRequest, http.StatusNotFound, http.StatusConflict),
	})

	oapi.AddOperation(&huma.Operation{
		OperationID: "delete-contact",
		Method:      http.MethodDelete,
		Path:        "/api/contact/{id}",
		Summary:     "Delete a contact",
		Description: "Deletes the contact and returns its last representation.",
		Tags:        []string{contactsTag},
		Parameters:  []*huma.Param{b.pathID()},
		Responses:   b.responses(http.StatusOK, "Deleted contact", contactSchema, http.StatusBadRequest, http.StatusNotFound),
	})

	return oapi
}

type builder struct {
	registry huma.Registry
}

func (b *builder) schema(v any) *huma.Schema {
	return b.registry.Schema(reflect.TypeOf(v), true, "")
}

func (b *builder) jsonContent(s *huma.Schema) map[string]*huma.MediaType {
	return map[string]*huma.MediaType{jsonContentType: {Schema: s}}
}

func (b *builder) body(s *huma.Schema) *huma.RequestBody {
	return &huma.RequestBody{
		Required: true,
		Content:  b.jsonContent(s),
	}
}

// responses documents the success response plus the listed error statuses
// and the 500 every route can return.
func (b *builder) responses(status int, description string, s *huma.Schema, errorStatuses ...int) map[string]*huma.Response {
	errorSchema := b.schema(errs.HTTPError{})

	responses := map[string]*huma.Response{
		strconv.Itoa(status): {
			Description: description,
			Content:     b.jsonContent(s),
		},
	}

	for _, code := range append(errorStatuses, http.StatusInternalServerError) {
		responses[strconv.Itoa(code)] = &huma.Response{
			Description: http.StatusText(code),
			Content:     b.jsonContent(errorSchema),
		}
	}
	return responses
}

// queryInt documents an optional integer query parameter. A zero maximum
// means unbounded.
func (b *builder) queryInt(name, description string, def, minimum, maximum int) *huma.Param {
	s := &huma.Schema{
		Type:    huma.TypeInteger,
		Default: def,
		Minimum: floatPtr(minimum),
	}
	if maximum > 0 {
		s.Maximum = floatPtr(maximum)
	}

	return &huma.Param{
		Name:        name,
		In:          "query",
		Description: description,
		Schema:      s,
		Example:     def,
	}
}

func (b *builder) pathID() *huma.Param {
	return &huma.Param{
		Name:        "id",
		In:          "path",
		Description: "Contact id",
		Required:    true,
		Schema: &huma.Schema{
			Type:    huma.TypeInteger,
			Format:  "int64",
			Minimum: floatPtr(1),
		},
		Example: 1,
	}
}

func floatPtr(v int) *float64 {
	f := float64(v)
	return &f
}
