package model

import "time"

// Turnover stages, in order. A turnover advances one stage at a time and
// never moves backward.
const (
	TurnoverStageNotice    = "notice"
	TurnoverStageMoveOut   = "move_out"
	TurnoverStageMakeReady = "make_ready"
	TurnoverStageListing   = "listing"
	TurnoverStageLeased    = "leased"
)

// TurnoverStages lists the stages in progression order.
var TurnoverStages = []string{
	TurnoverStageNotice,
	TurnoverStageMoveOut,
	TurnoverStageMakeReady,
	TurnoverStageListing,
	TurnoverStageLeased,
}

// TurnoverStageIndex returns the position of stage in the progression, or -1
// if the stage is unknown.
func TurnoverStageIndex(stage string) int {
	for i, s := range TurnoverStages {
		if s == stage {
			return i
		}
	}
	return -1
}

// Turnover tracks a unit changing tenants, from notice through re-lease.
type Turnover struct {
	ID              string     `json:"id"`
	UserID          string     `json:"user_id"`
	PropertyID      string     `json:"property_id"`
	Stage           string     `json:"stage"`
	NoticeDate      time.Time  `json:"notice_date"`
	MoveOutDate     *time.Time `json:"move_out_date,omitempty"`
	ListedDate      *time.Time `json:"listed_date,omitempty"`
	LeasedDate      *time.Time `json:"leased_date,omitempty"`
	PreviousRent    *float64   `json:"previous_rent,omitempty"`
	NewRent         *float64   `json:"new_rent,omitempty"`
	MakeReadyBudget *float64   `json:"make_ready_budget,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	CreatedAt       time.Time  `json:"created_at"`
}
