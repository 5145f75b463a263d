package handler

import (
	"net/http"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/deppfellow/contacts-api/internal/server"
	"github.com/deppfellow/contacts-api/internal/service"
	"github.com/labstack/echo/v4"
)

type ContactHandler struct {
	Handler
	contacts *service.ContactService
}

func NewContactHandler(s *server.Server, contacts *service.ContactService) *ContactHandler {
	return &ContactHandler{
		Handler:  NewHandler(s),
		contacts: contacts,
	}
}

func (h *ContactHandler) ListContacts() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.ListContactsRequest) (model.ContactsPage, error) {
		return h.contacts.List(c.Request().Context(), req.Pagination())
	}, http.StatusOK, model.NewListContactsRequest)
}

func (h *ContactHandler) GetContact() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.ContactIDRequest) (*model.Contact, error) {
		return h.contacts.Get(c.Request().Context(), req.ID)
	}, http.StatusOK, newRequest[model.ContactIDRequest])
}

func (h *ContactHandler) CreateContact() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.CreateContactRequest) (*model.Contact, error) {
		return h.contacts.Create(c.Request().Context(), req.ContactInput)
	}, http.StatusCreated, newRequest[model.CreateContactRequest])
}

func (h *ContactHandler) UpdateContact() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.UpdateContactRequest) (*model.Contact, error) {
		return h.contacts.Update(c.Request().Context(), req.ID, req.ContactInput)
	}, http.StatusOK, newRequest[model.UpdateContactRequest])
}

// DeleteContact responds with the deleted contact.
func (h *ContactHandler) DeleteContact() echo.HandlerFunc {
	return Handle(h.Handler, func(c echo.Context, req *model.ContactIDRequest) (*model.Contact, error) {
		return h.contacts.Delete(c.Request().Context(), req.ID)
	}, http.StatusOK, newRequest[model.ContactIDRequest])
}
