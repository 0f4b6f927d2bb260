package model

import "time"

// Work order statuses, in lifecycle order.
const (
	WorkOrderStatusOpen       = "open"
	WorkOrderStatusAssigned   = "assigned"
	WorkOrderStatusInProgress = "in_progress"
	WorkOrderStatusCompleted  = "completed"
	WorkOrderStatusCancelled  = "cancelled"
)

// WorkOrderStatuses lists every accepted status value.
var WorkOrderStatuses = []string{
	WorkOrderStatusOpen,
	WorkOrderStatusAssigned,
	WorkOrderStatusInProgress,
	WorkOrderStatusCompleted,
	WorkOrderStatusCancelled,
}

// Work order priorities.
const (
	WorkOrderPriorityLow    = "low"
	WorkOrderPriorityMedium = "medium"
	WorkOrderPriorityHigh   = "high"
	WorkOrderPriorityUrgent = "urgent"
)

// WorkOrderPriorities lists every accepted priority value.
var WorkOrderPriorities = []string{
	WorkOrderPriorityLow,
	WorkOrderPriorityMedium,
	WorkOrderPriorityHigh,
	WorkOrderPriorityUrgent,
}

// WorkOrder is a maintenance task against a property, optionally assigned to
// a vendor. EstimatedCost and ActualCost stay nil until known.
type WorkOrder struct {
	ID            string     `json:"id"`
	UserID        string     `json:"user_id"`
	PropertyID    string     `json:"property_id"`
	VendorID      *string    `json:"vendor_id,omitempty"`
	Title         string     `json:"title"`
	Description   *string    `json:"description,omitempty"`
	Status        string     `json:"status"`
	Priority      string     `json:"priority"`
	EstimatedCost *float64   `json:"estimated_cost,omitempty"`
	ActualCost    *float64   `json:"actual_cost,omitempty"`
	CompletedAt   *time.Time `json:"completed_at,omitempty"`
	CreatedAt     time.Time  `json:"created_at"`
}

// WorkOrderFilter narrows work order listings.
type WorkOrderFilter struct {
	UserID     string
	PropertyID string
	Status     string
}
