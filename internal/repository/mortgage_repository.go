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

// MortgageRepository provides data access methods for the mortgages table.
type MortgageRepository struct {
	db *sql.DB
	tx *sql.Tx
}

// NewMortgageRepository creates a new MortgageRepository with the provided database connection.
func NewMortgageRepository(db *sql.DB) *MortgageRepository {
	return &MortgageRepository{db: db}
}

// WithTx returns a copy of the repository that runs its statements inside tx.
// Used when promoting a mortgage to primary, which must demote the old
// primary in the same transaction.
func (r *MortgageRepository) WithTx(tx *sql.Tx) *MortgageRepository {
	return &MortgageRepository{
		db: r.db,
		tx: tx,
	}
}

func (r *MortgageRepository) getQuerier() interface {
	Query(query string, args ...any) (*sql.Rows, error)
	QueryContext(ctx context.Context, query string, args ...any) (*sql.Rows, error)
	QueryRow(query string, args ...any) *sql.Row
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
	Exec(query string, args ...any) (sql.Result, error)
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
} {
	if r.tx != nil {
		return r.tx
	}
	return r.db
}

const mortgageColumns = `id, entry_id, lender, original_balance, current_balance,
	interest_rate, monthly_payment, is_primary, created_at`

func scanMortgage(scan func(dest ...any) error) (model.Mortgage, error) {
	var m model.Mortgage
	var createdAtStr string

	err := scan(
		&m.ID,
		&m.EntryID,
		&m.Lender,
		&m.OriginalBalance,
		&m.CurrentBalance,
		&m.InterestRate,
		&m.MonthlyPayment,
		&m.IsPrimary,
		&createdAtStr,
	)
	if err != nil {
		return model.Mortgage{}, err
	}

	m.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Mortgage{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return m, nil
}

// GetMortgagesOnEntryID retrieves all mortgages for an entry, primary first,
// then oldest first. Returns an empty slice for unmortgaged entries.
func (r *MortgageRepository) GetMortgagesOnEntryID(entryID string) ([]model.Mortgage, error) {
	query := `
          SELECT ` + mortgageColumns + `
          FROM mortgages
          WHERE entry_id = ?
          ORDER BY is_primary DESC, created_at ASC
      `

	rows, err := r.getQuerier().Query(query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query mortgages table: %w", err)
	}
	defer rows.Close()

	mortgages := []model.Mortgage{}

	for rows.Next() {
		m, err := scanMortgage(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan mortgages table results: %w", err)
		}
		mortgages = append(mortgages, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating mortgages table: %w", err)
	}

	return mortgages, nil
}

func (r *MortgageRepository) GetMortgageOnID(mortgageID string) (model.Mortgage, error) {
	query := `
          SELECT ` + mortgageColumns + `
          FROM mortgages
          WHERE id = ?
      `

	m, err := scanMortgage(r.getQuerier().QueryRow(query, mortgageID).Scan)
	if err == sql.ErrNoRows {
		return model.Mortgage{}, apperrors.ErrMortgageNotFound
	}
	if err != nil {
		return model.Mortgage{}, fmt.Errorf("failed to query mortgage: %w", err)
	}

	return m, nil
}

// InsertMortgage stores a new mortgage and returns it with generated fields set.
func (r *MortgageRepository) InsertMortgage(ctx context.Context, m model.Mortgage) (model.Mortgage, error) {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO mortgages (` + mortgageColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.getQuerier().ExecContext(ctx, query,
		m.ID,
		m.EntryID,
		m.Lender,
		m.OriginalBalance,
		m.CurrentBalance,
		m.InterestRate,
		m.MonthlyPayment,
		m.IsPrimary,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Mortgage{}, fmt.Errorf("failed to insert mortgage: %w", err)
	}

	return m, nil
}

// UpdateMortgage persists the mortgage's mutable fields.
func (r *MortgageRepository) UpdateMortgage(ctx context.Context, m model.Mortgage) error {
	query := `
        UPDATE mortgages
        SET lender = ?, original_balance = ?, current_balance = ?,
            interest_rate = ?, monthly_payment = ?, is_primary = ?
        WHERE id = ?
    `

	result, err := r.getQuerier().ExecContext(ctx, query,
		m.Lender,
		m.OriginalBalance,
		m.CurrentBalance,
		m.InterestRate,
		m.MonthlyPayment,
		m.IsPrimary,
		m.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update mortgage: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrMortgageNotFound
	}

	return nil
}

// ClearPrimary demotes any primary mortgage on the entry. Called inside the
// same transaction that promotes the new primary.
func (r *MortgageRepository) ClearPrimary(ctx context.Context, entryID string) error {
	query := `UPDATE mortgages SET is_primary = 0 WHERE entry_id = ? AND is_primary = 1`

	_, err := r.getQuerier().ExecContext(ctx, query, entryID)
	if err != nil {
		return fmt.Errorf("failed to clear primary mortgage: %w", err)
	}

	return nil
}

// DeleteMortgage removes a mortgage.
func (r *MortgageRepository) DeleteMortgage(ctx context.Context, mortgageID string) error {
	query := `DELETE FROM mortgages WHERE id = ?`

	result, err := r.getQuerier().ExecContext(ctx, query, mortgageID)
	if err != nil {
		return fmt.Errorf("failed to delete mortgage: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrMortgageNotFound
	}

	return nil
}
