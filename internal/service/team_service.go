package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// TeamService handles account and team membership business logic operations:
// registration, login, invitations, and membership management.
type TeamService struct {
	teamRepo *repository.TeamRepository
	issuer   auth.TokenIssuer
	logger   *zap.Logger
}

// NewTeamService creates a new TeamService with the provided dependencies.
func NewTeamService(teamRepo *repository.TeamRepository, issuer auth.TokenIssuer, logger *zap.Logger) *TeamService {
	return &TeamService{
		teamRepo: teamRepo,
		issuer:   issuer,
		logger:   logger,
	}
}

// Session is the result of a successful register or login.
type Session struct {
	User      model.User `json:"user"`
	Token     string     `json:"token"`
	ExpiresAt time.Time  `json:"expiresAt"`
}

// Register creates a new account and signs the user in.
// Any pending team invitations addressed to the email are linked to the new
// account, so invitees can be added before they ever sign up.
func (s *TeamService) Register(ctx context.Context, req request.RegisterRequest) (*Session, error) {
	email := normalizeEmail(req.Email)

	if _, err := s.teamRepo.GetUserOnEmail(email); err == nil {
		return nil, apperrors.ErrEmailTaken
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := model.User{
		Email:        email,
		Name:         validation.SanitizeText(req.Name),
		PasswordHash: hash,
	}

	created, err := s.teamRepo.InsertUser(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	if err := s.teamRepo.AcceptInvites(ctx, created.ID, email); err != nil {
		// The account exists; invite linking can be retried on next login.
		s.logger.Warn("failed to link pending invites",
			zap.String("user_id", created.ID),
			zap.Error(err))
	}

	return s.startSession(created)
}

// Login verifies credentials and signs the user in. Lookup and password
// failures return the same error so the endpoint does not reveal which
// emails have accounts.
func (s *TeamService) Login(ctx context.Context, req request.LoginRequest) (*Session, error) {
	user, err := s.teamRepo.GetUserOnEmail(normalizeEmail(req.Email))
	if err != nil {
		if errors.Is(err, apperrors.ErrUserNotFound) {
			return nil, apperrors.ErrInvalidCredentials
		}
		return nil, err
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		return nil, apperrors.ErrInvalidCredentials
	}

	if err := s.teamRepo.AcceptInvites(ctx, user.ID, user.Email); err != nil {
		s.logger.Warn("failed to link pending invites",
			zap.String("user_id", user.ID),
			zap.Error(err))
	}

	return s.startSession(user)
}

// startSession resolves the user's data scope and issues a token.
// A user who accepted a team invitation works inside the owner's account;
// everyone else works inside their own.
func (s *TeamService) startSession(user model.User) (*Session, error) {
	accountID := user.ID
	role := model.TeamRoleOwner

	membership, err := s.teamRepo.GetMembershipOnUserID(user.ID)
	if err == nil {
		accountID = membership.OwnerID
		role = membership.Role
	} else if !errors.Is(err, apperrors.ErrTeamMemberNotFound) {
		return nil, err
	}

	token, expiresAt, err := s.issuer.Sign(user.ID, accountID, role)
	if err != nil {
		return nil, fmt.Errorf("failed to sign token: %w", err)
	}

	return &Session{User: user, Token: token, ExpiresAt: expiresAt}, nil
}

// GetTeamMembers lists the members and outstanding invitations of an account.
func (s *TeamService) GetTeamMembers(ownerID string) ([]model.TeamMember, error) {
	return s.teamRepo.GetTeamMembers(ownerID)
}

// InviteTeamMember adds an email to the owner's team. If the email already
// has an account the membership is live immediately; otherwise it stays
// pending until that email registers.
func (s *TeamService) InviteTeamMember(ctx context.Context, ownerID string, req request.InviteTeamMemberRequest) (*model.TeamMember, error) {
	email := normalizeEmail(req.Email)

	role := req.Role
	if role == "" {
		role = model.TeamRoleMember
	}
	if role != model.TeamRoleOwner && role != model.TeamRoleMember {
		return nil, apperrors.ErrInvalidRole
	}

	member := model.TeamMember{
		OwnerID: ownerID,
		Email:   email,
		Role:    role,
	}

	if user, err := s.teamRepo.GetUserOnEmail(email); err == nil {
		if user.ID == ownerID {
			return nil, apperrors.ErrDuplicateEntry
		}
		now := time.Now().UTC()
		member.UserID = &user.ID
		member.AcceptedAt = &now
	} else if !errors.Is(err, apperrors.ErrUserNotFound) {
		return nil, err
	}

	created, err := s.teamRepo.InsertTeamMember(ctx, member)
	if err != nil {
		return nil, fmt.Errorf("failed to invite team member: %w", err)
	}

	return &created, nil
}

// RemoveTeamMember removes a member or revokes a pending invitation.
// Only the owning account may remove its members.
func (s *TeamService) RemoveTeamMember(ctx context.Context, ownerID, memberID string) error {
	members, err := s.teamRepo.GetTeamMembers(ownerID)
	if err != nil {
		return err
	}

	for _, m := range members {
		if m.ID == memberID {
			return s.teamRepo.DeleteTeamMember(ctx, memberID)
		}
	}

	return apperrors.ErrTeamMemberNotFound
}

// GetUser retrieves a user by ID.
func (s *TeamService) GetUser(userID string) (model.User, error) {
	return s.teamRepo.GetUserOnID(userID)
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
