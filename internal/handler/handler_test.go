package handler_test

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/deppfellow/contacts-api/internal/config"
	"github.com/deppfellow/contacts-api/internal/errs"
	"github.com/deppfellow/contacts-api/internal/handler"
	"github.com/deppfellow/contacts-api/internal/middleware"
	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/deppfellow/contacts-api/internal/testutil"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testEnv struct {
	echo  *echo.Echo
	store *testutil.ContactsInmem
	srv   *server.Server
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	logger := zerolog.Nop()
	srv := &server.Server{
		Config: config.Default(),
		Logger: &logger,
	}

	store := testutil.NewContactsInmem()
	services := &service.Services{
		Contact: service.NewContactService(store, nil),
	}

	h, err := handler.NewHandlers(srv, services)
	require.NoError(t, err)

	e := echo.New()
	e.HTTPErrorHandler = middleware.NewGlobalMiddlewares(srv).GlobalErrorHandler

	e.GET("/", h.Root.Greet)
	e.GET("/status", h.Health.CheckHealth)
	e.GET("/api-docs", h.OpenAPI.ServeOpenAPIUI)
	e.GET("/api-docs/openapi.json", h.OpenAPI.ServeOpenAPIDocument)
	e.GET("/api/contacts", h.Contact.ListContacts())
	e.POST("/api/contact", h.Contact.CreateContact())
	e.GET("/api/contact/:id", h.Contact.GetContact())
	e.PUT("/api/contact/:id", h.Contact.UpdateContact())
	e.DELETE("/api/contact/:id", h.Contact.DeleteContact())

	return &testEnv{echo: e, store: store, srv: srv}
}

func (env *testEnv) do(method, target, body string) *httptest.ResponseRecorder {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}

	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	}

	rec := httptest.NewRecorder()
	env.echo.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), rec.Body.String())
	return v
}

func TestGreet(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, handler.Greeting, rec.Body.String())
}

func TestListContacts_Defaults(t *testing.T) {
	env := newTestEnv(t)
	env.store.Seed(3)

	rec := env.do(http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[model.ContactsPage](t, rec)
	assert.Equal(t, 1, page.CurrentPage)
	assert.Equal(t, model.DefaultPageSize, page.PageSize)
	assert.Equal(t, int64(3), page.TotalItems)
	assert.Equal(t, 1, page.TotalPages)
	assert.Len(t, page.Contacts, 3)
}

func TestListContacts_SecondPage(t *testing.T) {
	env := newTestEnv(t)
	env.store.Seed(12)

	rec := env.do(http.MethodGet, "/api/contacts?page=2&pageSize=5", "")
	require.Equal(t, http.StatusOK, rec.Code)

	page := decode[model.ContactsPage](t, rec)
	assert.Equal(t, 2, page.CurrentPage)
	assert.Equal(t, 5, page.PageSize)
	assert.Equal(t, int64(12), page.TotalItems)
	assert.Equal(t, 3, page.TotalPages)
	require.Len(t, page.Contacts, 5)
	assert.Equal(t, int64(6), page.Contacts[0].ID)
	assert.Equal(t, int64(10), page.Contacts[4].ID)
}

func TestListContacts_EmptyIsArray(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/contacts", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"contacts":[]`)
}

func TestListContacts_InvalidQuery(t *testing.T) {
	tests := []struct {
		name  string
		query string
	}{
		{name: "zero page", query: "page=0"},
		{name: "negative page", query: "page=-1"},
		{name: "page size above max", query: "pageSize=101"},
		{name: "zero page size", query: "pageSize=0"},
		{name: "non numeric page", query: "page=abc"},
		{name: "page beyond max", query: "page=10000001"},
		{name: "page overflowing offset", query: "page=922337203685477582&pageSize=10"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(http.MethodGet, "/api/contacts?"+tt.query, "")
			require.Equal(t, http.StatusBadRequest, rec.Code)

			body := decode[errs.HTTPError](t, rec)
			assert.Equal(t, "BAD_REQUEST", body.Code)
			assert.Equal(t, http.StatusBadRequest, body.Status)
		})
	}
}

func TestListContacts_FieldErrorsUseWireNames(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/contacts?pageSize=500", "")
	require.Equal(t, http.StatusBadRequest, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	require.Len(t, body.Errors, 1)
	assert.Equal(t, "pageSize", body.Errors[0].Field)
	assert.Equal(t, "must not exceed 100", body.Errors[0].Error)
}

func TestGetContact(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.store.Seed(2)

	rec := env.do(http.MethodGet, "/api/contact/2", "")
	require.Equal(t, http.StatusOK, rec.Code)

	got := decode[model.Contact](t, rec)
	assert.Equal(t, seeded[1].ID, got.ID)
	assert.Equal(t, seeded[1].Email, got.Email)
}

func TestGetContact_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api/contact/42", "")
	require.Equal(t, http.StatusNotFound, rec.Code)

	body := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "NOT_FOUND", body.Code)
	assert.Equal(t, "Contact not found", body.Message)
	assert.Equal(t, http.StatusNotFound, body.Status)
}

func TestGetContact_InvalidID(t *testing.T) {
	for _, id := range []string{"abc", "0", "-3"} {
		t.Run(id, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(http.MethodGet, "/api/contact/"+id, "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
		})
	}
}

func TestCreateContact(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/contact", `{"name":"Jane Doe","email":"jane@example.com"}`)
	require.Equal(t, http.StatusCreated, rec.Code)

	created := decode[model.Contact](t, rec)
	assert.Equal(t, int64(1), created.ID)
	assert.Equal(t, "Jane Doe", created.Name)
	assert.Equal(t, "jane@example.com", created.Email)
	assert.False(t, created.CreatedAt.IsZero())

	count, err := env.store.Count(t.Context())
	require.NoError(t, err)
	assert.Equal(t, int64(1), count)
}

func TestCreateContact_DuplicateEmail(t *testing.T) {
	env := newTestEnv(t)
	body := `{"name":"Jane Doe","email":"jane@example.com"}`

	require.Equal(t, http.StatusCreated, env.do(http.MethodPost, "/api/contact", body).Code)

	rec := env.do(http.MethodPost, "/api/contact", body)
	require.Equal(t, http.StatusConflict, rec.Code)

	got := decode[errs.HTTPError](t, rec)
	assert.Equal(t, "CONTACT_ALREADY_EXISTS", got.Code)
}

func TestCreateContact_Invalid(t *testing.T) {
	tests := []struct {
		name  string
		body  string
		field string
	}{
		{name: "missing name", body: `{"email":"jane@example.com"}`, field: "name"},
		{name: "missing email", body: `{"name":"Jane"}`, field: "email"},
		{name: "malformed email", body: `{"name":"Jane","email":"nope"}`, field: "email"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			env := newTestEnv(t)

			rec := env.do(http.MethodPost, "/api/contact", tt.body)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			got := decode[errs.HTTPError](t, rec)
			require.NotEmpty(t, got.Errors)
			assert.Equal(t, tt.field, got.Errors[0].Field)
		})
	}
}

func TestCreateContact_MalformedJSON(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPost, "/api/contact", `{"name":`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUpdateContact(t *testing.T) {
	env := newTestEnv(t)
	env.store.Seed(2)

	rec := env.do(http.MethodPut, "/api/contact/2", `{"id":99,"name":"Renamed","email":"renamed@example.com"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	updated := decode[model.Contact](t, rec)
	assert.Equal(t, int64(2), updated.ID, "body id must be ignored")
	assert.Equal(t, "Renamed", updated.Name)
	assert.Equal(t, "renamed@example.com", updated.Email)

	stored, err := env.store.GetByID(t.Context(), 2)
	require.NoError(t, err)
	assert.Equal(t, "Renamed", stored.Name)

	_, err = env.store.GetByID(t.Context(), 99)
	assert.Error(t, err)
}

func TestUpdateContact_NotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodPut, "/api/contact/7", `{"name":"Ghost","email":"ghost@example.com"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDeleteContact(t *testing.T) {
	env := newTestEnv(t)
	seeded := env.store.Seed(1)

	rec := env.do(http.MethodDelete, "/api/contact/1", "")
	require.Equal(t, http.StatusOK, rec.Code)

	deleted := decode[model.Contact](t, rec)
	assert.Equal(t, seeded[0].ID, deleted.ID)

	assert.Equal(t, http.StatusNotFound, env.do(http.MethodGet, "/api/contact/1", "").Code)
	assert.Equal(t, http.StatusNotFound, env.do(http.MethodDelete, "/api/contact/1", "").Code)
}

func TestOpenAPIUI(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api-docs", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get(echo.HeaderContentType), echo.MIMETextHTML)
	assert.Equal(t, "no-cache", rec.Header().Get("Cache-Control"))
	assert.Contains(t, rec.Body.String(), "/api-docs/openapi.json")
}

func TestOpenAPIDocument(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/api-docs/openapi.json", "")
	require.Equal(t, http.StatusOK, rec.Code)

	var doc struct {
		OpenAPI string `json:"openapi"`
		Info    struct {
			Title   string `json:"title"`
			Version string `json:"version"`
		} `json:"info"`
		Paths map[string]map[string]any `json:"paths"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &doc))

	assert.NotEmpty(t, doc.OpenAPI)
	assert.Equal(t, handler.APITitle, doc.Info.Title)
	assert.Equal(t, handler.APIVersion, doc.Info.Version)
	assert.Contains(t, doc.Paths, "/api/contacts")
	assert.Contains(t, doc.Paths["/api/contact"], "post")
	assert.Contains(t, doc.Paths["/api/contact/{id}"], "put")
}

func TestCheckHealth_DatabaseMissing(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(http.MethodGet, "/status", "")
	require.Equal(t, http.StatusServiceUnavailable, rec.Code)

	var body struct {
		Status string                    `json:"status"`
		Checks map[string]map[string]any `json:"checks"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "unhealthy", body.Status)
	assert.Equal(t, "unhealthy", body.Checks["database"]["status"])
	assert.NotContains(t, body.Checks, "redis")
}

func TestCheckHealth_ChecksDisabled(t *testing.T) {
	env := newTestEnv(t)
	env.srv.Config.Observability.HealthChecks.Enabled = false

	rec := env.do(http.MethodGet, "/status", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"healthy"`)
}
