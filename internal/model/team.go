package model

import "time"

// Team roles. Owners manage membership; members get read/write on the
// owner's data.
const (
	TeamRoleOwner  = "owner"
	TeamRoleMember = "member"
)

// User is an account holder. PasswordHash is never serialized.
type User struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}

// TeamMember links a user into an owner's team. Invitations are rows with
// AcceptedAt nil until the invitee signs in.
type TeamMember struct {
	ID         string     `json:"id"`
	OwnerID    string     `json:"owner_id"`
	Email      string     `json:"email"`
	Role       string     `json:"role"`
	UserID     *string    `json:"user_id,omitempty"`
	AcceptedAt *time.Time `json:"accepted_at,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
}
