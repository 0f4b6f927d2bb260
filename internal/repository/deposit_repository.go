package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
)

// DepositRepository provides data access methods for the deposits and
// deposit_charges tables. Amounts are stored as decimal strings so no cents
// are lost to float conversion.
type DepositRepository struct {
	db *sql.DB
}

func NewDepositRepository(db *sql.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

const depositColumns = `id, user_id, property_id, tenant_name, amount, status,
	received_at, settled_at, created_at`

func scanDeposit(scan func(dest ...any) error) (model.Deposit, error) {
	var d model.Deposit
	var amountStr, receivedAtStr, createdAtStr string
	var settledAt sql.NullString

	err := scan(
		&d.ID,
		&d.UserID,
		&d.PropertyID,
		&d.TenantName,
		&amountStr,
		&d.Status,
		&receivedAtStr,
		&settledAt,
		&createdAtStr,
	)
	if err != nil {
		return model.Deposit{}, err
	}

	d.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return model.Deposit{}, fmt.Errorf("failed to parse deposit amount: %w", err)
	}
	d.ReceivedAt, err = ParseTime(receivedAtStr)
	if err != nil {
		return model.Deposit{}, fmt.Errorf("failed to parse date: %w", err)
	}
	d.SettledAt, err = parseNullTime(settledAt)
	if err != nil {
		return model.Deposit{}, fmt.Errorf("failed to parse date: %w", err)
	}
	d.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Deposit{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return d, nil
}

// GetDeposits retrieves all deposits for a user, newest first.
func (r *DepositRepository) GetDeposits(userID string) ([]model.Deposit, error) {
	query := `
          SELECT ` + depositColumns + `
          FROM deposits
          WHERE user_id = ?
          ORDER BY received_at DESC
      `

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposits table: %w", err)
	}
	defer rows.Close()

	deposits := []model.Deposit{}

	for rows.Next() {
		d, err := scanDeposit(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposits table results: %w", err)
		}
		deposits = append(deposits, d)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposits table: %w", err)
	}

	return deposits, nil
}

func (r *DepositRepository) GetDepositOnID(depositID string) (model.Deposit, error) {
	query := `
          SELECT ` + depositColumns + `
          FROM deposits
          WHERE id = ?
      `

	d, err := scanDeposit(r.db.QueryRow(query, depositID).Scan)
	if err == sql.ErrNoRows {
		return model.Deposit{}, apperrors.ErrDepositNotFound
	}
	if err != nil {
		return model.Deposit{}, fmt.Errorf("failed to query deposit: %w", err)
	}

	return d, nil
}

func (r *DepositRepository) InsertDeposit(ctx context.Context, d model.Deposit) (model.Deposit, error) {
	d.ID = uuid.New().String()
	d.CreatedAt = time.Now().UTC()
	if d.Status == "" {
		d.Status = model.DepositStatusHeld
	}

	query := `
        INSERT INTO deposits (` + depositColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		d.ID,
		d.UserID,
		d.PropertyID,
		d.TenantName,
		d.Amount.String(),
		d.Status,
		d.ReceivedAt.Format("2006-01-02"),
		formatNullTimestamp(d.SettledAt),
		d.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Deposit{}, fmt.Errorf("failed to insert deposit: %w", err)
	}

	return d, nil
}

// MarkSettled flips a deposit to settled and stamps the settlement time.
func (r *DepositRepository) MarkSettled(ctx context.Context, depositID string, settledAt time.Time) error {
	query := `
        UPDATE deposits
        SET status = ?, settled_at = ?
        WHERE id = ?
    `

	result, err := r.db.ExecContext(ctx, query,
		model.DepositStatusSettled,
		settledAt.UTC().Format(time.RFC3339),
		depositID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark deposit settled: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrDepositNotFound
	}

	return nil
}

const depositChargeColumns = `id, deposit_id, description, amount, created_at`

func scanDepositCharge(scan func(dest ...any) error) (model.DepositCharge, error) {
	var c model.DepositCharge
	var amountStr, createdAtStr string

	err := scan(
		&c.ID,
		&c.DepositID,
		&c.Description,
		&amountStr,
		&createdAtStr,
	)
	if err != nil {
		return model.DepositCharge{}, err
	}

	c.Amount, err = decimal.NewFromString(amountStr)
	if err != nil {
		return model.DepositCharge{}, fmt.Errorf("failed to parse charge amount: %w", err)
	}
	c.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.DepositCharge{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return c, nil
}

// GetChargesOnDepositID retrieves all charges against a deposit, oldest first.
func (r *DepositRepository) GetChargesOnDepositID(depositID string) ([]model.DepositCharge, error) {
	query := `
          SELECT ` + depositChargeColumns + `
          FROM deposit_charges
          WHERE deposit_id = ?
          ORDER BY created_at ASC
      `

	rows, err := r.db.Query(query, depositID)
	if err != nil {
		return nil, fmt.Errorf("failed to query deposit_charges table: %w", err)
	}
	defer rows.Close()

	charges := []model.DepositCharge{}

	for rows.Next() {
		c, err := scanDepositCharge(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan deposit_charges table results: %w", err)
		}
		charges = append(charges, c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating deposit_charges table: %w", err)
	}

	return charges, nil
}

func (r *DepositRepository) InsertCharge(ctx context.Context, c model.DepositCharge) (model.DepositCharge, error) {
	c.ID = uuid.New().String()
	c.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO deposit_charges (` + depositChargeColumns + `)
        VALUES (?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		c.ID,
		c.DepositID,
		c.Description,
		c.Amount.String(),
		c.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.DepositCharge{}, fmt.Errorf("failed to insert deposit charge: %w", err)
	}

	return c, nil
}
