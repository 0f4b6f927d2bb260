package model

import "time"

// Vendor is a service provider (plumber, roofer, property manager) that can
// be assigned to work orders.
type Vendor struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Trade     string    `json:"trade"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Rating    *float64  `json:"rating,omitempty"` // 1-5, set after completed work
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
