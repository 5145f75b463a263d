package repository

import (
	"context"
	"fmt"

	"github.com/deppfellow/contacts-api/internal/model"
	"github.com/jackc/pgx/v5"
)

const contactColumns = `id, name, email, created_at, updated_at`

type ContactRepository struct {
	db DBTX
}

func NewContactRepository(db DBTX) *ContactRepository {
	return &ContactRepository{db: db}
}

func (r *ContactRepository) Count(ctx context.Context) (int64, error) {
	var total int64
	if err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM contacts`).Scan(&total); err != nil {
		return 0, fmt.Errorf("table:contacts: count contacts: %w", err)
	}
	return total, nil
}

// List returns up to limit contacts after skipping offset, ordered by id.
func (r *ContactRepository) List(ctx context.Context, offset, limit int) ([]model.Contact, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		ORDER BY id
		LIMIT @limit OFFSET @offset`,
		pgx.NamedArgs{"limit": limit, "offset": offset},
	)
	if err != nil {
		return nil, fmt.Errorf("table:contacts: list contacts: %w", err)
	}

	contacts, err := pgx.CollectRows(rows, pgx.RowToStructByName[model.Contact])
	if err != nil {
		return nil, fmt.Errorf("table:contacts: scan contacts: %w", err)
	}
	return contacts, nil
}

func (r *ContactRepository) GetByID(ctx context.Context, id int64) (*model.Contact, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+contactColumns+`
		FROM contacts
		WHERE id = @id`,
		pgx.NamedArgs{"id": id},
	)
	return collectContact(rows, err, fmt.Sprintf("get contact %d", id))
}

func (r *ContactRepository) Create(ctx context.Context, input model.ContactInput) (*model.Contact, error) {
	rows, err := r.db.Query(ctx, `
		INSERT INTO contacts (name, email)
		VALUES (@name, @email)
		RETURNING `+contactColumns,
		pgx.NamedArgs{"name": input.Name, "email": input.Email},
	)
	return collectContact(rows, err, fmt.Sprintf("create contact %q", input.Email))
}

// Update replaces name and email. A missing id surfaces as pgx.ErrNoRows.
func (r *ContactRepository) Update(ctx context.Context, id int64, input model.ContactInput) (*model.Contact, error) {
	rows, err := r.db.Query(ctx, `
		UPDATE contacts
		SET name = @name, email = @email, updated_at = now()
		WHERE id = @id
		RETURNING `+contactColumns,
		pgx.NamedArgs{"id": id, "name": input.Name, "email": input.Email},
	)
	return collectContact(rows, err, fmt.Sprintf("update contact %d", id))
}

// Delete removes the contact and returns its last representation.
func (r *ContactRepository) Delete(ctx context.Context, id int64) (*model.Contact, error) {
	rows, err := r.db.Query(ctx, `
		DELETE FROM contacts
		WHERE id = @id
		RETURNING `+contactColumns,
		pgx.NamedArgs{"id": id},
	)
	return collectContact(rows, err, fmt.Sprintf("delete contact %d", id))
}

func collectContact(rows pgx.Rows, err error, op string) (*model.Contact, error) {
	if err != nil {
		return nil, fmt.Errorf("table:contacts: %s: %w", op, err)
	}

	contact, err := pgx.CollectExactlyOneRow(rows, pgx.RowToAddrOfStructByName[model.Contact])
	if err != nil {
		return nil, fmt.Errorf("table:contacts: %s: %w", op, err)
	}
	return contact, nil
}
