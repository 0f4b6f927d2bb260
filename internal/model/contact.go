package model

import "time"

// Contact is a person attached to the account's rolodex: tenants, sellers,
// agents, lenders. Module is optional and records which part of the app the
// contact was created from; a nil Module means unscoped.
type Contact struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Phone     *string   `json:"phone,omitempty"`
	Email     *string   `json:"email,omitempty"`
	Module    *string   `json:"module,omitempty"`
	Notes     *string   `json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// ContactFilter narrows contact listings.
type ContactFilter struct {
	UserID string
	Module *string
	Search string
}
