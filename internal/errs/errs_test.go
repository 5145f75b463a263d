package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructors(t *testing.T) {
	custom := "CONTACT_ALREADY_EXISTS"

	tests := []struct {
		name       string
		err        *HTTPError
		wantStatus int
		wantCode   string
	}{
		{"bad request", NewBadRequestError("bad", false, nil, nil, nil), http.StatusBadRequest, "BAD_REQUEST"},
		{"not found", NewNotFoundError("Contact not found", true, nil), http.StatusNotFound, "NOT_FOUND"},
		{"conflict", NewConflictError("exists", true, nil), http.StatusConflict, "CONFLICT"},
		{"conflict custom code", NewConflictError("exists", true, &custom), http.StatusConflict, custom},
		{"unauthorized", NewUnauthorizedError("no", false), http.StatusUnauthorized, "UNAUTHORIZED"},
		{"forbidden", NewForbiddenError("no", false), http.StatusForbidden, "FORBIDDEN"},
		{"internal", NewInternalServerError(), http.StatusInternalServerError, "INTERNAL_SERVER_ERROR"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.wantStatus, tt.err.Status)
			assert.Equal(t, tt.wantCode, tt.err.Code)
		})
	}
}

func TestInternalServerErrorHidesDetails(t *testing.T) {
	err := NewInternalServerError()
	assert.Equal(t, "Internal Server Error", err.Message)
	assert.False(t, err.Override)
}

func TestHTTPError_ErrorsAs(t *testing.T) {
	wrapped := fmt.Errorf("service: %w", NewNotFoundError("Contact not found", true, nil))

	var httpErr *HTTPError
	require.True(t, errors.As(wrapped, &httpErr))
	assert.Equal(t, http.StatusNotFound, httpErr.Status)
	assert.True(t, errors.Is(wrapped, &HTTPError{}))
	assert.EqualError(t, wrapped, "service: Contact not found")
}

func TestWithMessage(t *testing.T) {
	base := NewBadRequestError("original", true, nil, []FieldError{{Field: "name", Error: "is required"}}, nil)
	copied := base.WithMessage("replaced")

	assert.Equal(t, "original", base.Message)
	assert.Equal(t, "replaced", copied.Message)
	assert.Equal(t, base.Errors, copied.Errors)
	assert.Equal(t, base.Code, copied.Code)
}

func TestValidationError(t *testing.T) {
	err := ValidationError(errors.New("page must be at least 1"))
	assert.Equal(t, http.StatusBadRequest, err.Status)
	assert.Equal(t, "Validation failed: page must be at least 1", err.Message)
}

func TestMakeUpperCaseWithUnderscores(t *testing.T) {
	assert.Equal(t, "BAD_REQUEST", MakeUpperCaseWithUnderscores("Bad Request"))
	assert.Equal(t, "NOT_FOUND", MakeUpperCaseWithUnderscores("not found"))
}
