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

// PortfolioRepository provides data access methods for the portfolio_entries table.
// It handles the ownership records that tie properties to users.
type PortfolioRepository struct {
	db *sql.DB
}

// NewPortfolioRepository creates a new PortfolioRepository with the provided database connection.
func NewPortfolioRepository(db *sql.DB) *PortfolioRepository {
	return &PortfolioRepository{db: db}
}

const entryColumns = `id, user_id, property_id, acquisition_date, acquisition_price,
	deal_id, group_id, monthly_rent, monthly_expenses, ownership_percentage, is_active, created_at`

func scanEntry(scan func(dest ...any) error) (model.PortfolioEntry, error) {
	var e model.PortfolioEntry
	var acquisitionDateStr, createdAtStr string
	var dealID, groupID sql.NullString

	err := scan(
		&e.ID,
		&e.UserID,
		&e.PropertyID,
		&acquisitionDateStr,
		&e.AcquisitionPrice,
		&dealID,
		&groupID,
		&e.MonthlyRent,
		&e.MonthlyExpenses,
		&e.OwnershipPercentage,
		&e.IsActive,
		&createdAtStr,
	)
	if err != nil {
		return model.PortfolioEntry{}, err
	}

	e.DealID = nullStringPtr(dealID)
	e.GroupID = nullStringPtr(groupID)

	e.AcquisitionDate, err = ParseTime(acquisitionDateStr)
	if err != nil {
		return model.PortfolioEntry{}, fmt.Errorf("failed to parse date: %w", err)
	}
	e.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.PortfolioEntry{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return e, nil
}

// GetEntries retrieves portfolio entries based on filter criteria.
// Inactive entries are excluded unless the filter asks for them.
// Returns an empty slice if no entries match.
func (s *PortfolioRepository) GetEntries(filter model.PortfolioEntryFilter) ([]model.PortfolioEntry, error) {
	query := `
          SELECT ` + entryColumns + `
          FROM portfolio_entries
          WHERE 1=1
      `
	var args []any

	if filter.UserID != "" {
		query += " AND user_id = ?"
		args = append(args, filter.UserID)
	}

	if filter.PropertyID != "" {
		query += " AND property_id = ?"
		args = append(args, filter.PropertyID)
	}

	if !filter.IncludeInactive {
		query += " AND is_active = ?"
		args = append(args, 1)
	}

	query += " ORDER BY acquisition_date ASC, created_at ASC"

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query portfolio_entries table: %w", err)
	}
	defer rows.Close()

	entries := []model.PortfolioEntry{}

	for rows.Next() {
		e, err := scanEntry(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan portfolio_entries table results: %w", err)
		}
		entries = append(entries, e)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating portfolio_entries table: %w", err)
	}

	return entries, nil
}

func (s *PortfolioRepository) GetEntryOnID(entryID string) (model.PortfolioEntry, error) {
	query := `
          SELECT ` + entryColumns + `
          FROM portfolio_entries
          WHERE id = ?
      `

	e, err := scanEntry(s.db.QueryRow(query, entryID).Scan)
	if err == sql.ErrNoRows {
		return model.PortfolioEntry{}, apperrors.ErrEntryNotFound
	}
	if err != nil {
		return model.PortfolioEntry{}, fmt.Errorf("failed to query portfolio entry: %w", err)
	}

	return e, nil
}

// InsertEntry stores a new portfolio entry and returns it with generated fields set.
func (s *PortfolioRepository) InsertEntry(ctx context.Context, e model.PortfolioEntry) (model.PortfolioEntry, error) {
	e.ID = uuid.New().String()
	e.CreatedAt = time.Now().UTC()
	e.IsActive = true
	if e.OwnershipPercentage == 0 {
		e.OwnershipPercentage = 100
	}

	query := `
        INSERT INTO portfolio_entries (` + entryColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := s.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.PropertyID,
		e.AcquisitionDate.Format("2006-01-02"),
		e.AcquisitionPrice,
		e.DealID,
		e.GroupID,
		e.MonthlyRent,
		e.MonthlyExpenses,
		e.OwnershipPercentage,
		e.IsActive,
		e.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.PortfolioEntry{}, fmt.Errorf("failed to insert portfolio entry: %w", err)
	}

	return e, nil
}

// UpdateEntry persists the entry's mutable fields.
func (s *PortfolioRepository) UpdateEntry(ctx context.Context, e model.PortfolioEntry) error {
	query := `
        UPDATE portfolio_entries
        SET acquisition_date = ?, acquisition_price = ?, monthly_rent = ?,
            monthly_expenses = ?, ownership_percentage = ?
        WHERE id = ?
    `

	result, err := s.db.ExecContext(ctx, query,
		e.AcquisitionDate.Format("2006-01-02"),
		e.AcquisitionPrice,
		e.MonthlyRent,
		e.MonthlyExpenses,
		e.OwnershipPercentage,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update portfolio entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}

	return nil
}

// DeactivateEntry soft-deletes an entry. Monthly records and mortgages stay
// in place for history.
func (s *PortfolioRepository) DeactivateEntry(ctx context.Context, entryID string) error {
	query := `UPDATE portfolio_entries SET is_active = 0 WHERE id = ?`

	result, err := s.db.ExecContext(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to deactivate portfolio entry: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrEntryNotFound
	}

	return nil
}
