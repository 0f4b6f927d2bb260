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

// TeamRepository provides data access methods for the users and team_members
// tables.
type TeamRepository struct {
	db *sql.DB
}

func NewTeamRepository(db *sql.DB) *TeamRepository {
	return &TeamRepository{db: db}
}

const userColumns = `id, email, name, password_hash, created_at`

func scanUser(scan func(dest ...any) error) (model.User, error) {
	var u model.User
	var createdAtStr string

	err := scan(
		&u.ID,
		&u.Email,
		&u.Name,
		&u.PasswordHash,
		&createdAtStr,
	)
	if err != nil {
		return model.User{}, err
	}

	u.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return u, nil
}

func (r *TeamRepository) GetUserOnEmail(email string) (model.User, error) {
	query := `
          SELECT ` + userColumns + `
          FROM users
          WHERE email = ?
      `

	u, err := scanUser(r.db.QueryRow(query, email).Scan)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

func (r *TeamRepository) GetUserOnID(userID string) (model.User, error) {
	query := `
          SELECT ` + userColumns + `
          FROM users
          WHERE id = ?
      `

	u, err := scanUser(r.db.QueryRow(query, userID).Scan)
	if err == sql.ErrNoRows {
		return model.User{}, apperrors.ErrUserNotFound
	}
	if err != nil {
		return model.User{}, fmt.Errorf("failed to query user: %w", err)
	}

	return u, nil
}

func (r *TeamRepository) InsertUser(ctx context.Context, u model.User) (model.User, error) {
	u.ID = uuid.New().String()
	u.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO users (` + userColumns + `)
        VALUES (?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		u.Name,
		u.PasswordHash,
		u.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.User{}, fmt.Errorf("failed to insert user: %w", err)
	}

	return u, nil
}

const teamMemberColumns = `id, owner_id, email, role, user_id, accepted_at, created_at`

func scanTeamMember(scan func(dest ...any) error) (model.TeamMember, error) {
	var m model.TeamMember
	var userID, acceptedAt sql.NullString
	var createdAtStr string

	err := scan(
		&m.ID,
		&m.OwnerID,
		&m.Email,
		&m.Role,
		&userID,
		&acceptedAt,
		&createdAtStr,
	)
	if err != nil {
		return model.TeamMember{}, err
	}

	m.UserID = nullStringPtr(userID)

	m.AcceptedAt, err = parseNullTime(acceptedAt)
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("failed to parse date: %w", err)
	}
	m.CreatedAt, err = ParseTime(createdAtStr)
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("failed to parse date: %w", err)
	}
	return m, nil
}

// GetTeamMembers retrieves all members invited by the given owner.
func (r *TeamRepository) GetTeamMembers(ownerID string) ([]model.TeamMember, error) {
	query := `
          SELECT ` + teamMemberColumns + `
          FROM team_members
          WHERE owner_id = ?
          ORDER BY created_at ASC
      `

	rows, err := r.db.Query(query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to query team_members table: %w", err)
	}
	defer rows.Close()

	members := []model.TeamMember{}

	for rows.Next() {
		m, err := scanTeamMember(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("failed to scan team_members table results: %w", err)
		}
		members = append(members, m)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating team_members table: %w", err)
	}

	return members, nil
}

// GetMembershipOnUserID retrieves the accepted team membership for a user,
// oldest first when the user somehow belongs to several teams. Returns
// ErrTeamMemberNotFound for users who work in their own account.
func (r *TeamRepository) GetMembershipOnUserID(userID string) (model.TeamMember, error) {
	query := `
          SELECT ` + teamMemberColumns + `
          FROM team_members
          WHERE user_id = ? AND accepted_at IS NOT NULL
          ORDER BY created_at ASC
          LIMIT 1
      `

	m, err := scanTeamMember(r.db.QueryRow(query, userID).Scan)
	if err == sql.ErrNoRows {
		return model.TeamMember{}, apperrors.ErrTeamMemberNotFound
	}
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("failed to query team membership: %w", err)
	}

	return m, nil
}

func (r *TeamRepository) InsertTeamMember(ctx context.Context, m model.TeamMember) (model.TeamMember, error) {
	m.ID = uuid.New().String()
	m.CreatedAt = time.Now().UTC()

	query := `
        INSERT INTO team_members (` + teamMemberColumns + `)
        VALUES (?, ?, ?, ?, ?, ?, ?)
    `

	_, err := r.db.ExecContext(ctx, query,
		m.ID,
		m.OwnerID,
		m.Email,
		m.Role,
		m.UserID,
		formatNullTimestamp(m.AcceptedAt),
		m.CreatedAt.Format(time.RFC3339),
	)
	if err != nil {
		return model.TeamMember{}, fmt.Errorf("failed to insert team member: %w", err)
	}

	return m, nil
}

// AcceptInvites links a newly registered user to any pending invitations for
// their email address.
func (r *TeamRepository) AcceptInvites(ctx context.Context, userID, email string) error {
	query := `
        UPDATE team_members
        SET user_id = ?, accepted_at = ?
        WHERE email = ? AND user_id IS NULL
    `

	_, err := r.db.ExecContext(ctx, query,
		userID,
		time.Now().UTC().Format(time.RFC3339),
		email,
	)
	if err != nil {
		return fmt.Errorf("failed to accept team invites: %w", err)
	}

	return nil
}

func (r *TeamRepository) DeleteTeamMember(ctx context.Context, memberID string) error {
	query := `DELETE FROM team_members WHERE id = ?`

	result, err := r.db.ExecContext(ctx, query, memberID)
	if err != nil {
		return fmt.Errorf("failed to delete team member: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return apperrors.ErrTeamMemberNotFound
	}

	return nil
}
