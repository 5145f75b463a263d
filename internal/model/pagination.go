package model

import (
	"github.com/deppfellow/contacts-api/internal/validation"
)

const (
	DefaultPage     = 1
	DefaultPageSize = 10
	MaxPageSize     = 100

	// MaxPage keeps (MaxPage-1)*MaxPageSize within a 32-bit int.
	MaxPage = 10_000_000
)

// Pagination is a validated page request.
type Pagination struct {
	Page     int
	PageSize int
}

// Offset is the number of rows skipped before the page starts.
func (p Pagination) Offset() int {
	return (p.Page - 1) * p.PageSize
}

// TotalPages is ceil(total / PageSize), 0 when there are no rows.
func (p Pagination) TotalPages(total int64) int {
	if total <= 0 || p.PageSize <= 0 {
		return 0
	}
	size := int64(p.PageSize)
	return int((total + size - 1) / size)
}

// ContactsPage is the list envelope.
type ContactsPage struct {
	CurrentPage int       `json:"currentPage" doc:"Requested page, starting at 1" example:"1"`
	TotalItems  int64     `json:"totalItems" doc:"Number of contacts across all pages" example:"12"`
	PageSize    int       `json:"pageSize" doc:"Maximum contacts per page" example:"10"`
	TotalPages  int       `json:"totalPages" doc:"Number of pages" example:"2"`
	Contacts    []Contact `json:"contacts" doc:"Contacts on this page, ordered by id"`
}

// NewContactsPage builds the envelope. Contacts is never nil so it always
// encodes as a JSON array.
func NewContactsPage(p Pagination, total int64, contacts []Contact) ContactsPage {
	if contacts == nil {
		contacts = []Contact{}
	}
	return ContactsPage{
		CurrentPage: p.Page,
		TotalItems:  total,
		PageSize:    p.PageSize,
		TotalPages:  p.TotalPages(total),
		Contacts:    contacts,
	}
}

// ListContactsRequest carries the list query string. Use
// NewListContactsRequest so omitted parameters keep their defaults.
type ListContactsRequest struct {
	Page     int `query:"page" validate:"min=1,max=10000000"`
	PageSize int `query:"pageSize" validate:"min=1,max=100"`
}

func NewListContactsRequest() *ListContactsRequest {
	return &ListContactsRequest{
		Page:     DefaultPage,
		PageSize: DefaultPageSize,
	}
}

func (r *ListContactsRequest) Validate() error {
	return validation.Struct(r)
}

func (r *ListContactsRequest) Pagination() Pagination {
	return Pagination{Page: r.Page, PageSize: r.PageSize}
}
