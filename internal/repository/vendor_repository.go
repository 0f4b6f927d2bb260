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

// VendorRepository provides data access methods for the vendors table.
type VendorRepository struct {
	db *sql.DB
}

func NewVendorRepository(db *sql.DB) *VendorRepository {
	return &VendorRepository{db: db}
}

const vendorColumns = `id, user_id, name, trade, phone, email, rating, notes, created_at`

func scanVendor(scan func(dest ...any) error) (model.Vendor, error) {
	var v model.Vendor
	var phone, email, notes sql.NullString
	var rating sql.NullFloat64
	var createdAtStr string

	err := scan(
		&v.ID,
		&v.UserID,
		&v.Name,
		&v.Trade,
		&phone,
		&email,
		&rating,
		&notes,
		&createdAtStr,
	)
	if err != nil {
		return model.Vendor{}, err
	}

	v.Phone = nullStringPtr(phone)
	v.Email = nullStringPtr(email)
	v.Rating = nullFloatPtr(rating)
	v.Notes = nullStringPtr(notes)

	v.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Vendor{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return v, nil
}

// GetVendors retrieves all vendors for a user, optionally narrowed by trade.
func (r *VendorRepository) GetVendors(userID, trade string) ([]model.Vendor, error) {
	query := `
          SELECT ` + vendorColumns + `
          FROM vendors
          WHERE user_id = ?
      `
	args := []any{userID}

	if trade != "" {
		query += " AND trade = ?"
		args = append(args, trade)
	}

	query += " ORDER BY name ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query vendors table: %w", err)
	}
	defer rows.Close()

	vendors := []model.Vendor{}

	for rows.Next() {
		v, err := scanVendor(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan vendors table results: %w", err)
		}
		vendors = append(vendors, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating vendors table: %w", err)
	}

	return vendors, nil
}

func (r *VendorRepository) GetVendorOnID(vendorID string) (model.Vendor, error) {
	query := `
          SELECT ` + vendorColumns + `
          FROM vendors
          WHERE id = ?
      `

	v, err := scanVendor(r.db.QueryRow(query, vendorID).Scan)
	if err == sql.ErrNoRows {
		return model.Vendor{}, apperrors.ErrVendorNotFound
	}
	if err != nil {
		return model.Vendor{}, fmt.Errorf("failed to query vendor: %w", err)
	}

	return v, nil
}

func (r *VendorRepository) InsertVendor(ctx context.Context, v model.Vendor) (model.Vendor, error) {
	v.ID = uuid.New().String()
	v.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO vendors (` + vendorColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.UserID,
		v.Name,
		v.Trade,
		v.Phone,
		v.Email,
		v.Rating,
		v.Notes,
		v.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Vendor{}, fmt.Errorf("failed to insert vendor: %w", err)
	}

	return v, nil
}

func (r *VendorRepository) UpdateVendor(ctx context.Context, v model.Vendor) error {
	query := `
        UPDATE vendors
        SET name = ?, trade = ?, phone = ?, email = ?, rating = ?, notes = ?
        WHERE id = ?
    `

	result, err := r.db.ExecContext(ctx, query,
		v.Name,
		v.Trade,
		v.Phone,
		v.Email,
		v.Rating,
		v.Notes,
		v.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update vendor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrVendorNotFound
	}

	return nil
}

func (r *VendorRepository) DeleteVendor(ctx context.Context, vendorID string) error {
	query := `DELETE FROM vendors WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, vendorID)
	if err != nil {
		return fmt.Errorf("failed to delete vendor: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrVendorNotFound
	}

	return nil
}
