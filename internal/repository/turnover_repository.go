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

// TurnoverRepository provides data access methods for the turnovers table.
type TurnoverRepository struct {
	db *sql.DB
}

func NewTurnoverRepository(db *sql.DB) *TurnoverRepository {
	return &TurnoverRepository{db: db}
}

const turnoverColumns = `id, user_id, property_id, stage, notice_date, move_out_date,
	listed_date, leased_date, previous_rent, new_rent, make_ready_budget, notes, created_at`

func scanTurnover(scan func(dest ...any) error) (model.Turnover, error) {
	var t model.Turnover
	var noticeDateStr, createdAtStr string
	var moveOut, listed, leased, notes sql.NullString
	var previousRent, newRent, makeReadyBudget sql.NullFloat64

	err := scan(
		&t.ID,
		&t.UserID,
		&t.PropertyID,
		&t.Stage,
		&noticeDateStr,
		&moveOut,
		&listed,
		&leased,
		&previousRent,
		&newRent,
		&makeReadyBudget,
		&notes,
		&createdAtStr,
	)
	if err != nil {
		return model.Turnover{}, err
	}

	t.PreviousRent = nullFloatPtr(previousRent)
	t.NewRent = nullFloatPtr(newRent)
	t.MakeReadyBudget = nullFloatPtr(makeReadyBudget)
	t.Notes = nullStringPtr(notes)

	t.NoticeDate, err = ParseTime(noticeDateStr)
	if err != nil {
		return model.Turnover{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.MoveOutDate, err = parseNullTime(moveOut)
	if err != nil {
		return model.Turnover{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.ListedDate, err = parseNullTime(listed)
	if err != nil {
		return model.Turnover{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.LeasedDate, err = parseNullTime(leased)
	if err != nil {
		return model.Turnover{}, fmt.Errorf("failed to parse date: %w", err)
	}
	t.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.Turnover{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return t, nil
}

// GetTurnovers retrieves all turnovers for a user, newest notice first.
func (r *TurnoverRepository) GetTurnovers(userID, propertyID string) ([]model.Turnover, error) {
	query := `
          SELECT ` + turnoverColumns + `
          FROM turnovers
          WHERE user_id = ?
      `
	args := []any{userID}

	if propertyID != "" {
		query += " AND property_id = ?"
		args = append(args, propertyID)
	}

	query += " ORDER BY notice_date DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query turnovers table: %w", err)
	}
	defer rows.Close()

	turnovers := []model.Turnover{}

	for rows.Next() {
		t, err := scanTurnover(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan turnovers table results: %w", err)
		}
		turnovers = append(turnovers, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating turnovers table: %w", err)
	}

	return turnovers, nil
}

func (r *TurnoverRepository) GetTurnoverOnID(turnoverID string) (model.Turnover, error) {
	query := `
          SELECT ` + turnoverColumns + `
          FROM turnovers
          WHERE id = ?
      `

	t, err := scanTurnover(r.db.QueryRow(query, turnoverID).Scan)
	if err == sql.ErrNoRows {
		return model.Turnover{}, apperrors.ErrTurnoverNotFound
	}
	if err != nil {
		return model.Turnover{}, fmt.Errorf("failed to query turnover: %w", err)
	}

	return t, nil
}

func (r *TurnoverRepository) InsertTurnover(ctx context.Context, t model.Turnover) (model.Turnover, error) {
	t.ID = uuid.New().String()
	t.CreatedAt = time.Now().UTC()
	if t.Stage == "" {
		t.Stage = model.TurnoverStageNotice
	}

	query := `
        INSERT INTO turnovers (` + turnoverColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.UserID,
		t.PropertyID,
		t.Stage,
		t.NoticeDate.Format("2006-01-02"),
		formatNullDate(t.MoveOutDate),
		formatNullDate(t.ListedDate),
		formatNullDate(t.LeasedDate),
		t.PreviousRent,
		t.NewRent,
		t.MakeReadyBudget,
		t.Notes,
		t.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.Turnover{}, fmt.Errorf("failed to insert turnover: %w", err)
	}

	return t, nil
}

func (r *TurnoverRepository) UpdateTurnover(ctx context.Context, t model.Turnover) error {
	query := `
        UPDATE turnovers
        SET stage = ?, move_out_date = ?, listed_date = ?, leased_date = ?,
            previous_rent = ?, new_rent = ?, make_ready_budget = ?, notes = ?
        WHERE id = ?
    `

	result, err := r.db.ExecContext(ctx, query,
		t.Stage,
		formatNullDate(t.MoveOutDate),
		formatNullDate(t.ListedDate),
		formatNullDate(t.LeasedDate),
		t.PreviousRent,
		t.NewRent,
		t.MakeReadyBudget,
		t.Notes,
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update turnover: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrTurnoverNotFound
	}

	return nil
}
