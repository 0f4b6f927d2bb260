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

// PropertyRepository provides data access methods for the properties table.
type PropertyRepository struct {
	db *sql.DB
}

// NewPropertyRepository creates a new PropertyRepository with the provided database connection.
func NewPropertyRepository(db *sql.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

const propertyColumns = `id, user_id, address, city, state, zip, property_type,
	bedrooms, bathrooms, square_feet, year_built, status, created_at`

func scanProperty(scan func(dest ...any) error) (model.Property, error) {
	var p model.Property
	var createdAtStr string

	err := scan(
		&p.ID,
		&p.UserID,
		&p.Address,
		&p.City,
		&p.State,
		&p.Zip,
		&p.PropertyType,
		&p.Bedrooms,
		&p.Bathrooms,
		&p.SquareFeet,
		&p.YearBuilt,
		&p.Status,
		&createdAtStr,
	)
	if err != nil {
		return model.Property{}, err
	}

	p.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Property{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return p, nil
}

// GetProperties retrieves properties from the database based on filter criteria.
// Returns an empty slice if no properties match.
func (r *PropertyRepository) GetProperties(filter model.PropertyFilter) ([]model.Property, error) {
	query := `
          SELECT ` + propertyColumns + `
          FROM properties
          WHERE user_id = ?
      `
	args := []any{filter.UserID}

	if !filter.IncludeRetired {
		query += " AND status != ?"
		args = append(args, model.PropertyStatusRetired)
	}

	query += " ORDER BY created_at ASC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query properties table: %w", err)
	}
	defer rows.Close()

	properties := []model.Property{}

	for rows.Next() {
		p, err := scanProperty(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan properties table results: %w", err)
		}
		properties = append(properties, p)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating properties table: %w", err)
	}

	return properties, nil
}

// GetOwnerIDs retrieves the distinct user IDs that own at least one active
// property. Drives the nightly estimate refresh.
func (r *PropertyRepository) GetOwnerIDs() ([]string, error) {
	query := `
          SELECT DISTINCT user_id
          FROM properties
          WHERE status != ?
          ORDER BY user_id ASC
      `

	rows, err := r.db.Query(query, model.PropertyStatusRetired)
	if err != nil {
		return nil, fmt.Errorf("failed to query property owners: %w", err)
	}
	defer rows.Close()

	ownerIDs := []string{}

	for rows.Next() {
		var ownerID string
		if err := rows.Scan(&ownerID); err != nil {
			return nil, fmt.Errorf("failed to scan property owner: %w", err)
		}
		ownerIDs = append(ownerIDs, ownerID)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating property owners: %w", err)
	}

	return ownerIDs, nil
}

func (r *PropertyRepository) GetPropertyOnID(propertyID string) (model.Property, error) {
	query := `
          SELECT ` + propertyColumns + `
          FROM properties
          WHERE id = ?
      `

	p, err := scanProperty(r.db.QueryRow(query, propertyID).Scan)
	if err == sql.ErrNoRows {
		return model.Property{}, apperrors.ErrPropertyNotFound
	}
	if err != nil {
		return model.Property{}, fmt.Errorf("failed to query property: %w", err)
	}

	return p, nil
}

// InsertProperty stores a new property and returns it with generated fields set.
func (r *PropertyRepository) InsertProperty(ctx context.Context, p model.Property) (model.Property, error) {
	p.ID = uuid.New().String()
	p.CreatedAt = time.Now().UTC()
	if p.Status == "" {
		p.Status = model.PropertyStatusActive
	}

	query := `
        INSERT INTO properties (` + propertyColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		p.ID,
		p.UserID,
		p.Address,
		p.City,
		p.State,
		p.Zip,
		p.PropertyType,
		p.Bedrooms,
		p.Bathrooms,
		p.SquareFeet,
		p.YearBuilt,
		p.Status,
		p.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Property{}, fmt.Errorf("failed to insert property: %w", err)
	}

	return p, nil
}

// UpdateProperty persists the given property's mutable fields.
func (r *PropertyRepository) UpdateProperty(ctx context.Context, p model.Property) error {
	query := `
        UPDATE properties
        SET address = ?, city = ?, state = ?, zip = ?, property_type = ?,
            bedrooms = ?, bathrooms = ?, square_feet = ?, year_built = ?, status = ?
        WHERE id = ?
    `

	result, err := r.db.ExecContext(ctx, query,
		p.Address,
		p.City,
		p.State,
		p.Zip,
		p.PropertyType,
		p.Bedrooms,
		p.Bathrooms,
		p.SquareFeet,
		p.YearBuilt,
		p.Status,
		p.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update property: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrPropertyNotFound
	}

	return nil
}
