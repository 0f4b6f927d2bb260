package request

type CreateWorkOrderRequest struct {
	PropertyID    string   `json:"propertyId"`
	VendorID      *string  `json:"vendorId,omitempty"`
	Title         string   `json:"title"`
	Description   *string  `json:"description,omitempty"`
	Priority      string   `json:"priority"`
	EstimatedCost *float64 `json:"estimatedCost,omitempty"`
}

type UpdateWorkOrderRequest struct {
	VendorID      *string  `json:"vendorId,omitempty"`
	Title         *string  `json:"title,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Priority      *string  `json:"priority,omitempty"`
	EstimatedCost *float64 `json:"estimatedCost,omitempty"`
	ActualCost    *float64 `json:"actualCost,omitempty"`
}

// UpdateWorkOrderStatusRequest moves a work order through its lifecycle.
// ActualCost may accompany the completed status.
type UpdateWorkOrderStatusRequest struct {
	Status     string   `json:"status"`
	ActualCost *float64 `json:"actualCost,omitempty"`
}

type CreateTurnoverRequest struct {
	PropertyID      string   `json:"propertyId"`
	NoticeDate      string   `json:"noticeDate"`
	PreviousRent    *float64 `json:"previousRent,omitempty"`
	MakeReadyBudget *float64 `json:"makeReadyBudget,omitempty"`
	Notes           *string  `json:"notes,omitempty"`
}

// AdvanceTurnoverRequest moves a turnover to its next stage. Date fields are
// read depending on the stage being entered.
type AdvanceTurnoverRequest struct {
	Date    *string  `json:"date,omitempty"`
	NewRent *float64 `json:"newRent,omitempty"`
	Notes   *string  `json:"notes,omitempty"`
}
