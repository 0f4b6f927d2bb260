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

// WorkOrderRepository provides data access methods for the work_orders table.
type WorkOrderRepository struct {
	db *sql.DB
}

func NewWorkOrderRepository(db *sql.DB) *WorkOrderRepository {
	return &WorkOrderRepository{db: db}
}

const workOrderColumns = `id, user_id, property_id, vendor_id, title, description,
	status, priority, estimated_cost, actual_cost, completed_at, created_at`

func scanWorkOrder(scan func(dest ...any) error) (model.WorkOrder, error) {
	var w model.WorkOrder
	var vendorID, description, completedAt sql.NullString
	var estimatedCost, actualCost sql.NullFloat64
	var createdAtStr string

	err := scan(
		&w.ID,
		&w.UserID,
		&w.PropertyID,
		&vendorID,
		&w.Title,
		&description,
		&w.Status,
		&w.Priority,
		&estimatedCost,
		&actualCost,
		&completedAt,
		&createdAtStr,
	)
	if err != nil {
		return model.WorkOrder{}, err
	}

	w.VendorID = nullStringPtr(vendorID)
	w.Description = nullStringPtr(description)
	w.EstimatedCost = nullFloatPtr(estimatedCost)
	w.ActualCost = nullFloatPtr(actualCost)

	w.CompletedAt, err = parseNullTime(completedAt)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("failed to parse date: %w", err)
	}
	w.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return w, nil
}

// GetWorkOrders retrieves work orders based on filter criteria, newest first.
func (r *WorkOrderRepository) GetWorkOrders(filter model.WorkOrderFilter) ([]model.WorkOrder, error) {
	query := `
          SELECT ` + workOrderColumns + `
          FROM work_orders
          WHERE user_id = ?
      `
	args := []any{filter.UserID}

	if filter.PropertyID != "" {
		query += " AND property_id = ?"
		args = append(args, filter.PropertyID)
	}

	if filter.Status != "" {
		query += " AND status = ?"
		args = append(args, filter.Status)
	}

	query += " ORDER BY created_at DESC"

	rows, err := r.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query work_orders table: %w", err)
	}
	defer rows.Close()

	orders := []model.WorkOrder{}

	for rows.Next() {
		w, err := scanWorkOrder(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan work_orders table results: %w", err)
		}
		orders = append(orders, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating work_orders table: %w", err)
	}

	return orders, nil
}

func (r *WorkOrderRepository) GetWorkOrderOnID(workOrderID string) (model.WorkOrder, error) {
	query := `
          SELECT ` + workOrderColumns + `
          FROM work_orders
          WHERE id = ?
      `

	w, err := scanWorkOrder(r.db.QueryRow(query, workOrderID).Scan)
	if err == sql.ErrNoRows {
		return model.WorkOrder{}, apperrors.ErrWorkOrderNotFound
	}
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("failed to query work order: %w", err)
	}

	return w, nil
}

func (r *WorkOrderRepository) InsertWorkOrder(ctx context.Context, w model.WorkOrder) (model.WorkOrder, error) {
	w.ID = uuid.New().String()
	w.CreatedAt = time.Now().UTC()
	if w.Status == "" {
		w.Status = model.WorkOrderStatusOpen
	}

	query := `
        INSERT INTO work_orders (` + workOrderColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		w.ID,
		w.UserID,
		w.PropertyID,
		w.VendorID,
		w.Title,
		w.Description,
		w.Status,
		w.Priority,
		w.EstimatedCost,
		w.ActualCost,
		formatNullTimestamp(w.CompletedAt),
		w.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.WorkOrder{}, fmt.Errorf("failed to insert work order: %w", err)
	}

	return w, nil
}

func (r *WorkOrderRepository) UpdateWorkOrder(ctx context.Context, w model.WorkOrder) error {
	query := `
        UPDATE work_orders
        SET vendor_id = ?, title = ?, description = ?, status = ?, priority = ?,
            estimated_cost = ?, actual_cost = ?, completed_at = ?
        WHERE id = ?
    `

	result, err := r.db.ExecContext(ctx, query,
		w.VendorID,
		w.Title,
		w.Description,
		w.Status,
		w.Priority,
		w.EstimatedCost,
		w.ActualCost,
		formatNullTimestamp(w.CompletedAt),
		w.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update work order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrWorkOrderNotFound
	}

	return nil
}

func (r *WorkOrderRepository) DeleteWorkOrder(ctx context.Context, workOrderID string) error {
	query := `DELETE FROM work_orders WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, workOrderID)
	if err != nil {
		return fmt.Errorf("failed to delete work order: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrWorkOrderNotFound
	}

	return nil
}
