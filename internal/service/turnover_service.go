package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// TurnoverService handles tenant turnover business logic operations.
// A turnover walks a fixed stage progression (notice, move_out, make_ready,
// listing, leased) one step at a time and never moves backward.
type TurnoverService struct {
	turnoverRepo *repository.TurnoverRepository
	propertyRepo *repository.PropertyRepository
}

// NewTurnoverService creates a new TurnoverService with the provided repository dependencies.
func NewTurnoverService(
	turnoverRepo *repository.TurnoverRepository,
	propertyRepo *repository.PropertyRepository,
) *TurnoverService {
	return &TurnoverService{
		turnoverRepo: turnoverRepo,
		propertyRepo: propertyRepo,
	}
}

// GetTurnovers retrieves a user's turnovers, optionally narrowed to one property.
func (s *TurnoverService) GetTurnovers(userID, propertyID string) ([]model.Turnover, error) {
	return s.turnoverRepo.GetTurnovers(userID, propertyID)
}

// GetTurnover retrieves a single turnover by its ID. Turnovers outside the
// user's account are reported as not found.
func (s *TurnoverService) GetTurnover(userID, turnoverID string) (model.Turnover, error) {
	turnover, err := s.turnoverRepo.GetTurnoverOnID(turnoverID)
	if err != nil {
		return model.Turnover{}, err
	}
	if turnover.UserID != userID {
		return model.Turnover{}, apperrors.ErrTurnoverNotFound
	}
	return turnover, nil
}

// CreateTurnover opens a turnover at the notice stage.
func (s *TurnoverService) CreateTurnover(ctx context.Context, userID string, req request.CreateTurnoverRequest) (*model.Turnover, error) {
	property, err := s.propertyRepo.GetPropertyOnID(req.PropertyID)
	if err != nil {
		return nil, err
	}
	if property.UserID != userID {
		return nil, apperrors.ErrPropertyNotFound
	}

	noticeDate, err := time.Parse("2006-01-02", req.NoticeDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse notice date: %w", err)
	}

	turnover := model.Turnover{
		UserID:          userID,
		PropertyID:      req.PropertyID,
		Stage:           model.TurnoverStageNotice,
		NoticeDate:      noticeDate,
		PreviousRent:    req.PreviousRent,
		MakeReadyBudget: req.MakeReadyBudget,
		Notes:           validation.SanitizeTextPtr(req.Notes),
	}

	created, err := s.turnoverRepo.InsertTurnover(ctx, turnover)
	if err != nil {
		return nil, fmt.Errorf("failed to create turnover: %w", err)
	}

	return &created, nil
}

// AdvanceTurnover moves a turnover to its next stage. The request's date
// stamps the stage being entered: move_out sets the move-out date, listing
// sets the listed date, and leased sets the leased date plus the new rent.
// Dates default to today when omitted. Advancing past leased is rejected.
func (s *TurnoverService) AdvanceTurnover(ctx context.Context, userID, id string, req request.AdvanceTurnoverRequest) (*model.Turnover, error) {
	turnover, err := s.GetTurnover(userID, id)
	if err != nil {
		return nil, err
	}

	currentIndex := model.TurnoverStageIndex(turnover.Stage)
	if currentIndex < 0 {
		return nil, apperrors.ErrInvalidStage
	}
	if currentIndex >= len(model.TurnoverStages)-1 {
		return nil, apperrors.ErrInvalidStageTransition
	}

	stageDate := time.Now().UTC()
	if req.Date != nil {
		stageDate, err = time.Parse("2006-01-02", *req.Date)
		if err != nil {
			return nil, fmt.Errorf("failed to parse stage date: %w", err)
		}
	}

	nextStage := model.TurnoverStages[currentIndex+1]
	switch nextStage {
	case model.TurnoverStageMoveOut:
		turnover.MoveOutDate = &stageDate
	case model.TurnoverStageListing:
		turnover.ListedDate = &stageDate
	case model.TurnoverStageLeased:
		turnover.LeasedDate = &stageDate
		if req.NewRent != nil {
			turnover.NewRent = req.NewRent
		}
	}

	turnover.Stage = nextStage
	if req.Notes != nil {
		turnover.Notes = validation.SanitizeTextPtr(req.Notes)
	}

	if err := s.turnoverRepo.UpdateTurnover(ctx, turnover); err != nil {
		return nil, fmt.Errorf("failed to advance turnover: %w", err)
	}

	return &turnover, nil
}

// RentChange reports the rent delta achieved by a completed turnover, or
// false when either rent is unknown.
func (s *TurnoverService) RentChange(turnover model.Turnover) (float64, bool) {
	if turnover.PreviousRent == nil || turnover.NewRent == nil {
		return 0, false
	}
	return *turnover.NewRent - *turnover.PreviousRent, true
}
