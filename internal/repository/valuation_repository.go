package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
)

// ValuationRepository provides data access methods for the valuations table.
// Valuations come back oldest first; the last element is the one performance
// math treats as current.
type ValuationRepository struct {
	db *sql.DB
}

// NewValuationRepository creates a new ValuationRepository with the provided database connection.
func NewValuationRepository(db *sql.DB) *ValuationRepository {
	return &ValuationRepository{db: db}
}

const valuationColumns = `id, property_id, estimated_value, valuation_date, source, created_at`

func scanValuation(scan func(dest ...any) error) (model.Valuation, error) {
	var v model.Valuation
	var dateStr, createdAtStr string

	err := scan(
		&v.ID,
		&v.PropertyID,
		&v.EstimatedValue,
		&dateStr,
		&v.Source,
		&createdAtStr,
	)
	if err != nil {
		return model.Valuation{}, err
	}

	v.ValuationDate, err = ParseTime(dateStr)
	if err != nil {
		return model.Valuation{}, fmt.Errorf("failed to parse date: %w", err)
	}
	v.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Valuation{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return v, nil
}

// GetValuationsOnPropertyID retrieves all valuations for a property, oldest
// first. Returns an empty slice if the property has none.
func (r *ValuationRepository) GetValuationsOnPropertyID(propertyID string) ([]model.Valuation, error) {
	query := `
          SELECT ` + valuationColumns + `
          FROM valuations
          WHERE property_id = ?
          ORDER BY valuation_date ASC, created_at ASC
      `

	rows, err := r.db.Query(query, propertyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuations table: %w", err)
	}
	defer rows.Close()

	valuations := []model.Valuation{}

	for rows.Next() {
		v, err := scanValuation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan valuations table results: %w", err)
		}
		valuations = append(valuations, v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating valuations table: %w", err)
	}

	return valuations, nil
}

// GetValuationOnID retrieves a single valuation by its ID.
func (r *ValuationRepository) GetValuationOnID(valuationID string) (model.Valuation, error) {
	query := `
          SELECT ` + valuationColumns + `
          FROM valuations
          WHERE id = ?
      `

	v, err := scanValuation(r.db.QueryRow(query, valuationID).Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return model.Valuation{}, apperrors.ErrValuationNotFound
		}
		return model.Valuation{}, fmt.Errorf("failed to query valuations table: %w", err)
	}

	return v, nil
}

// GetValuationsOnPropertyIDs retrieves valuations for the given properties,
// grouped by property and sorted oldest first within each group.
// Returns an empty map if propertyIDs is empty.
func (r *ValuationRepository) GetValuationsOnPropertyIDs(propertyIDs []string) (map[string][]model.Valuation, error) {
	if len(propertyIDs) == 0 {
		return make(map[string][]model.Valuation), nil
	}

	valuationPlaceholders := make([]string, len(propertyIDs))
	for i := range valuationPlaceholders {
		valuationPlaceholders[i] = "?"
	}

	//#nosec G202 -- Safe: placeholders are generated programmatically, not from user input
	query := `
		SELECT ` + valuationColumns + `
		FROM valuations
		WHERE property_id IN (` + strings.Join(valuationPlaceholders, ",") + `)
		ORDER BY property_id ASC, valuation_date ASC, created_at ASC
	`

	args := make([]any, len(propertyIDs))
	for i, id := range propertyIDs {
		args[i] = id
	}

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query valuations table: %w", err)
	}
	defer rows.Close()

	valuationsByProperty := make(map[string][]model.Valuation)

	for rows.Next() {
		v, err := scanValuation(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan valuations table results: %w", err)
		}
		valuationsByProperty[v.PropertyID] = append(valuationsByProperty[v.PropertyID], v)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating valuations table: %w", err)
	}

	return valuationsByProperty, nil
}

// InsertValuation stores a new valuation and returns it with generated fields set.
func (r *ValuationRepository) InsertValuation(ctx context.Context, v model.Valuation) (model.Valuation, error) {
	v.ID = uuid.New().String()
	v.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO valuations (` + valuationColumns + `)
        VALUES (?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		v.ID,
		v.PropertyID,
		v.EstimatedValue,
		v.ValuationDate.Format("2006-01-02"),
		v.Source,
		v.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Valuation{}, fmt.Errorf("failed to insert valuation: %w", err)
	}

	return v, nil
}

// DeleteValuation removes a valuation.
func (r *ValuationRepository) DeleteValuation(ctx context.Context, valuationID string) error {
	query := `DELETE FROM valuations WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, valuationID)
	if err != nil {
		return fmt.Errorf("failed to delete valuation: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrValuationNotFound
	}

	return nil
}
