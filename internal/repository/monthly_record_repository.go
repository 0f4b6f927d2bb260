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

// MonthlyRecordRepository provides data access methods for the monthly_records table.
// Records are the month-by-month actuals behind every performance calculation.
type MonthlyRecordRepository struct {
	db *sql.DB
}

// NewMonthlyRecordRepository creates a new MonthlyRecordRepository with the provided database connection.
func NewMonthlyRecordRepository(db *sql.DB) *MonthlyRecordRepository {
	return &MonthlyRecordRepository{db: db}
}

const monthlyRecordColumns = `id, entry_id, month, rent_collected,
	maintenance, taxes, insurance, utilities, management, hoa, other, created_at`

func scanMonthlyRecord(scan func(dest ...any) error) (model.MonthlyRecord, error) {
	var m model.MonthlyRecord
	var monthStr, createdAtStr string

	err := scan(
		&m.ID,
		&m.EntryID,
		&monthStr,
		&m.RentCollected,
		&m.Expenses.Maintenance,
		&m.Expenses.Taxes,
		&m.Expenses.Insurance,
		&m.Expenses.Utilities,
		&m.Expenses.Management,
		&m.Expenses.HOA,
		&m.Expenses.Other,
		&createdAtStr,
	)
	if err != nil {
		return model.MonthlyRecord{}, err
	}

	m.Expenses.Total = m.Expenses.Sum()

	m.Month, err = ParseTime(monthStr)
	if err != nil {
		return model.MonthlyRecord{}, fmt.Errorf("failed to parse date: %w", err)
	}
	m.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.MonthlyRecord{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return m, nil
}

// GetRecordsOnEntryID retrieves all monthly records for an entry, oldest month
// first. Returns an empty slice if the entry has no records yet.
func (r *MonthlyRecordRepository) GetRecordsOnEntryID(entryID string) ([]model.MonthlyRecord, error) {
	query := `
          SELECT ` + monthlyRecordColumns + `
          FROM monthly_records
          WHERE entry_id = ?
          ORDER BY month ASC
      `

	rows, err := r.db.Query(query, entryID)
	if err != nil {
		return nil, fmt.Errorf("failed to query monthly_records table: %w", err)
	}
	defer rows.Close()

	records := []model.MonthlyRecord{}

	for rows.Next() {
		m, err := scanMonthlyRecord(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan monthly_records table results: %w", err)
		}
		records = append(records, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating monthly_records table: %w", err)
	}

	return records, nil
}

// UpsertRecord inserts the record for a month, replacing any existing record
// for the same entry and month. The month is normalized to its first day.
func (r *MonthlyRecordRepository) UpsertRecord(ctx context.Context, m model.MonthlyRecord) (model.MonthlyRecord, error) {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()
	m.Month = time.Date(m.Month.Year(), m.Month.Month(), 1, 0, 0, 0, 0, time.UTC)
	m.Expenses.Total = m.Expenses.Sum()

	query := `
        INSERT INTO monthly_records (` + monthlyRecordColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
        ON CONFLICT (entry_id, month) DO UPDATE SET
            rent_collected = excluded.rent_collected,
            maintenance = excluded.maintenance,
            taxes = excluded.taxes,
            insurance = excluded.insurance,
            utilities = excluded.utilities,
            management = excluded.management,
            hoa = excluded.hoa,
            other = excluded.other
    `

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.EntryID,
		m.Month.Format("2006-01-02"),
		m.RentCollected,
		m.Expenses.Maintenance,
		m.Expenses.Taxes,
		m.Expenses.Insurance,
		m.Expenses.Utilities,
		m.Expenses.Management,
		m.Expenses.HOA,
		m.Expenses.Other,
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.MonthlyRecord{}, fmt.Errorf("failed to upsert monthly record: %w", err)
	}

	return m, nil
}

// DeleteRecord removes the record for one entry and month.
func (r *MonthlyRecordRepository) DeleteRecord(ctx context.Context, entryID string, month time.Time) error {
	query := `DELETE FROM monthly_records WHERE entry_id = ? AND month = ?`

	firstOfMonth := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
	result, err := r.db.ExecContext(ctx, query, entryID, firstOfMonth.Format("2006-01-02"))
	if err != nil {
		return fmt.Errorf("failed to delete monthly record: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrMonthlyRecordNotFound
	}

	return nil
}
