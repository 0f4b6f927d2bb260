package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
)

// ContactRepository provides data access methods for the contacts table.
type ContactRepository struct {
	db *sql.DB
}

func NewContactRepository(db *sql.DB) *ContactRepository {
	return &ContactRepository{db: db}
}

const contactColumns = `id, user_id, name, phone, email, module, notes, created_at`

func scanContact(scan func(dest ...any) error) (model.Contact, error) {
	var c model.Contact
	var phone, email, module, notes sql.NullString
	var createdAtStr string

	err := scan(
		&c.ID,
		&c.UserID,
		&c.Name,
		&phone,
		&email,
		&module,
		&notes,
		&createdAtStr,
	)
	if err != nil {
		return model.Contact{}, err
	}

	c.Phone = nullStringPtr(phone)
	c.Email = nullStringPtr(email)
	c.Module = nullStringPtr(module)
	c.Notes = nullStringPtr(notes)

	c.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return c, nil
}

// GetContacts retrieves contacts based on filter criteria. Search matches
// name substrings case-insensitively.
func (r *ContactRepository) GetContacts(filter model.ContactFilter) ([]model.Contact, error) {
	query := `
          SELECT ` + contactColumns + `
          FROM contacts
          WHERE user_id = ?
      `
	args := []any{filter.UserID}

	if filter.Module != nil {
		query += " AND module = ?"
		args = append(args, *filter.Module)
	}

	if filter.Search != "" {
		query += " AND name LIKE ? COLLATE NOCASE"
		args = append(args, "%"+filter.Search+"%")
	}

	query += " ORDER BY name ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query contacts table: %w", err)
	}
	defer rows.Close()

	contacts := []model.Contact{}

	for rows.Next() {
		c, err := scanContact(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan contacts table results: %w", err)
		}
		contacts = append(contacts, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating contacts table: %w", err)
	}

	return contacts, nil
}

func (r *ContactRepository) GetContactOnID(contactID string) (model.Contact, error) {
	query := `
          SELECT ` + contactColumns + `
          FROM contacts
          WHERE id = ?
      `

	c, err := scanContact(r.db.QueryRow(query, contactID).Scan)
	if err == sql.ErrNoRows {
		return model.Contact{}, apperrors.ErrContactNotFound
	}
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to query contact: %w", err)
	}

	return c, nil
}

func (r *ContactRepository) InsertContact(ctx context.Context, c model.Contact) (model.Contact, error) {
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO contacts (` + contactColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.UserID,
		c.Name,
		c.Phone,
		c.Email,
		c.Module,
		c.Notes,
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Contact{}, fmt.Errorf("failed to insert contact: %w", err)
	}

	return c, nil
}

func (r *ContactRepository) UpdateContact(ctx context.Context, c model.Contact) error {
	query := `
        UPDATE contacts
        SET name = ?, phone = ?, email = ?, module = ?, notes = ?
        WHERE id = ?
    `

	result, err := r.db.ExecContext(ctx, query,
		c.Name,
		c.Phone,
		c.Email,
		c.Module,
		c.Notes,
		c.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrContactNotFound
	}

	return nil
}

func (r *ContactRepository) DeleteContact(ctx context.Context, contactID string) error {
	query := `DELETE FROM contacts WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, contactID)
	if err != nil {
		return fmt.Errorf("failed to delete contact: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrContactNotFound
	}

	return nil
}
