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

// SkipTraceRepository provides data access methods for the skip_traces table.
// The payload column holds the provider response encrypted by the service
// layer; this repository never sees plaintext.
type SkipTraceRepository struct {
	db *sql.DB
}

func NewSkipTraceRepository(db *sql.DB) *SkipTraceRepository {
	return &SkipTraceRepository{db: db}
}

const skipTraceColumns = `id, user_id, address, owner_name, status, payload, created_at`

func scanSkipTrace(scan func(dest ...any) error) (model.SkipTraceResult, error) {
	var s model.SkipTraceResult
	var ownerName sql.NullString
	var createdAtStr string

	err := scan(
		&s.ID,
		&s.UserID,
		&s.Address,
		&ownerName,
		&s.Status,
		&s.Payload,
		&createdAtStr,
	)
	if err != nil {
		return model.SkipTraceResult{}, err
	}

	s.OwnerName = nullStringPtr(ownerName)

	s.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.SkipTraceResult{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return s, nil
}

// GetSkipTraces retrieves all skip trace results for a user, newest first.
func (r *SkipTraceRepository) GetSkipTraces(userID string) ([]model.SkipTraceResult, error) {
	query := `
          SELECT ` + skipTraceColumns + `
          FROM skip_traces
          WHERE user_id = ?
          ORDER BY created_at DESC
      `

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query skip_traces table: %w", err)
	}
	defer rows.Close()

	results := []model.SkipTraceResult{}

	for rows.Next() {
		s, err := scanSkipTrace(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan skip_traces table results: %w", err)
		}
		results = append(results, s)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating skip_traces table: %w", err)
	}

	return results, nil
}

func (r *SkipTraceRepository) GetSkipTraceOnID(skipTraceID string) (model.SkipTraceResult, error) {
	query := `
          SELECT ` + skipTraceColumns + `
          FROM skip_traces
          WHERE id = ?
      `

	s, err := scanSkipTrace(r.db.QueryRow(query, skipTraceID).Scan)
	if err == sql.ErrNoRows {
		return model.SkipTraceResult{}, apperrors.ErrSkipTraceNotFound
	}
	if err != nil {
		return model.SkipTraceResult{}, fmt.Errorf("failed to query skip trace: %w", err)
	}

	return s, nil
}

func (r *SkipTraceRepository) InsertSkipTrace(ctx context.Context, s model.SkipTraceResult) (model.SkipTraceResult, error) {
	s.ID = uuid.New().String()
	s.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO skip_traces (` + skipTraceColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		s.Address,
		s.OwnerName,
		s.Status,
		s.Payload,
		s.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.SkipTraceResult{}, fmt.Errorf("failed to insert skip trace: %w", err)
	}

	return s, nil
}

// UpdateSkipTrace persists status and payload after the provider responds.
func (r *SkipTraceRepository) UpdateSkipTrace(ctx context.Context, s model.SkipTraceResult) error {
	query := `
        UPDATE skip_traces
        SET owner_name = ?, status = ?, payload = ?
        WHERE id = ?
    `

	result, err := r.db.ExecContext(ctx, query,
		s.OwnerName,
		s.Status,
		s.Payload,
		s.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update skip trace: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrSkipTraceNotFound
	}

	return nil
}
