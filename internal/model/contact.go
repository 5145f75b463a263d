package model

import (
	"time"

	"github.com/deppfellow/contacts-api/internal/validation"
)

// Contact is the single resource exposed by the API.
type Contact struct {
	ID        int64     `json:"id" db:"id" doc:"System assigned identifier" example:"1" readOnly:"true"`
	Name      string    `json:"name" db:"name" doc:"Display name" example:"Jane Doe"`
	Email     string    `json:"email" db:"email" doc:"Unique email address" format:"email" example:"jane@example.com"`
	CreatedAt time.Time `json:"createdAt" db:"created_at" doc:"Creation time" readOnly:"true"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at" doc:"Last update time" readOnly:"true"`
}

// ContactInput is the writable part of a contact.
type ContactInput struct {
	Name  string `json:"name" validate:"required,max=255" doc:"Display name" minLength:"1" maxLength:"255" example:"Jane Doe"`
	Email string `json:"email" validate:"required,email,max=320" doc:"Unique email address" format:"email" maxLength:"320" example:"jane@example.com"`
}

// ContactIDRequest addresses a single contact through the :id path segment.
// The id is never read from the body.
type ContactIDRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
}

func (r *ContactIDRequest) Validate() error {
	return validation.Struct(r)
}

// CreateContactRequest is the body of POST /api/contact.
type CreateContactRequest struct {
	ContactInput
}

func (r *CreateContactRequest) Validate() error {
	return validation.Struct(r)
}

// UpdateContactRequest combines the path id with a full replacement body.
type UpdateContactRequest struct {
	ID int64 `param:"id" json:"-" validate:"required,min=1"`
	ContactInput
}

func (r *UpdateContactRequest) Validate() error {
	return validation.Struct(r)
}
