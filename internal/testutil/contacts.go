// Package testutil provides in-memory stand-ins for the storage layer.
package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// ContactsInmem is a thread safe in-memory contact store that fails the
// same way the PostgreSQL repository does: pgx.ErrNoRows for missing ids
// and a unique violation on duplicate emails.
type ContactsInmem struct {
	mu     sync.RWMutex
	nextID int64
	items  map[int64]model.Contact

	// Err, when set, is returned by every method.
	Err error
}

func NewContactsInmem() *ContactsInmem {
	return &ContactsInmem{
		nextID: 1,
		items:  make(map[int64]model.Contact),
	}
}

// Seed inserts n contacts named "Contact 1".."Contact n".
func (s *ContactsInmem) Seed(n int) []model.Contact {
	seeded := make([]model.Contact, 0, n)
	for i := 1; i <= n; i++ {
		c, err := s.Create(context.Background(), model.ContactInput{
			Name:  fmt.Sprintf("Contact %d", i),
			Email: fmt.Sprintf("contact%d@example.com", i),
		})
		if err != nil {
			panic(err)
		}
		seeded = append(seeded, *c)
	}
	return seeded
}

func (s *ContactsInmem) Count(ctx context.Context) (int64, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Err != nil {
		return 0, s.Err
	}
	return int64(len(s.items)), nil
}

func (s *ContactsInmem) List(ctx context.Context, offset, limit int) ([]model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Err != nil {
		return nil, s.Err
	}

	ids := make([]int64, 0, len(s.items))
	for id := range s.items {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	if offset >= len(ids) {
		return []model.Contact{}, nil
	}
	ids = ids[offset:min(offset+limit, len(ids))]

	contacts := make([]model.Contact, 0, len(ids))
	for _, id := range ids {
		contacts = append(contacts, s.items[id])
	}
	return contacts, nil
}

func (s *ContactsInmem) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if s.Err != nil {
		return nil, s.Err
	}

	c, ok := s.items[id]
	if !ok {
		return nil, notFound("get", id)
	}
	return &c, nil
}

func (s *ContactsInmem) Create(ctx context.Context, input model.ContactInput) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}
	if s.emailTaken(input.Email, 0) {
		return nil, uniqueEmail()
	}

	now := time.Now().UTC()
	c := model.Contact{
		ID:        s.nextID,
		Name:      input.Name,
		Email:     input.Email,
		CreatedAt: now,
		UpdatedAt: now,
	}
	s.items[c.ID] = c
	s.nextID++

	return &c, nil
}

func (s *ContactsInmem) Update(ctx context.Context, id int64, input model.ContactInput) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	c, ok := s.items[id]
	if !ok {
		return nil, notFound("update", id)
	}
	if s.emailTaken(input.Email, id) {
		return nil, uniqueEmail()
	}

	c.Name = input.Name
	c.Email = input.Email
	c.UpdatedAt = time.Now().UTC()
	s.items[id] = c

	return &c, nil
}

func (s *ContactsInmem) Delete(ctx context.Context, id int64) (*model.Contact, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.Err != nil {
		return nil, s.Err
	}

	c, ok := s.items[id]
	if !ok {
		return nil, notFound("delete", id)
	}
	delete(s.items, id)

	return &c, nil
}

func (s *ContactsInmem) emailTaken(email string, except int64) bool {
	for id, c := range s.items {
		if id != except && c.Email == email {
			return true
		}
	}
	return false
}

func notFound(op string, id int64) error {
	return fmt.Errorf("table:contacts: %s contact %d: %w", op, id, pgx.ErrNoRows)
}

func uniqueEmail() error {
	return fmt.Errorf("table:contacts: write contact: %w", &pgconn.PgError{
		Severity:       "ERROR",
		Code:           "23505",
		Message:        `duplicate key value violates unique constraint "contacts_email_key"`,
		TableName:      "contacts",
		ConstraintName: "contacts_email_key",
	})
}
