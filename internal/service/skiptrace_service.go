package service

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/fernet/fernet-go"
	"go.uber.org/zap"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/api/request"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/apperrors"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/skiptrace"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/validation"
)

// SkipTraceService handles owner-lookup business logic operations.
//
// Provider payloads contain PII (phone numbers, emails, relatives) and are
// fernet-encrypted before they touch the database. Decryption happens only
// when a single result is read back. Multiple keys are accepted so the
// encryption key can rotate without losing old results: new payloads are
// sealed with the first key, reads try every key.
type SkipTraceService struct {
	skipTraceRepo *repository.SkipTraceRepository
	lookupClient  skiptrace.Client
	keys          []*fernet.Key
	logger        *zap.Logger
}

// NewSkipTraceService creates a new SkipTraceService with the provided dependencies.
func NewSkipTraceService(
	skipTraceRepo *repository.SkipTraceRepository,
	lookupClient skiptrace.Client,
	keys []*fernet.Key,
	logger *zap.Logger,
) *SkipTraceService {
	return &SkipTraceService{
		skipTraceRepo: skipTraceRepo,
		lookupClient:  lookupClient,
		keys:          keys,
		logger:        logger,
	}
}

// GetSkipTraces retrieves a user's lookup history, newest first. Payloads
// are omitted from listings; use GetSkipTrace to decrypt one result.
func (s *SkipTraceService) GetSkipTraces(userID string) ([]model.SkipTraceResult, error) {
	results, err := s.skipTraceRepo.GetSkipTraces(userID)
	if err != nil {
		return nil, err
	}
	for i := range results {
		results[i].Payload = ""
	}
	return results, nil
}

// GetSkipTrace retrieves a single result and decrypts its payload.
// Returns the stored row and, for completed lookups, the decrypted contact
// data.
func (s *SkipTraceService) GetSkipTrace(userID, skipTraceID string) (model.SkipTraceResult, *model.SkipTracePayload, error) {
	result, err := s.skipTraceRepo.GetSkipTraceOnID(skipTraceID)
	if err != nil {
		return model.SkipTraceResult{}, nil, err
	}
	if result.UserID != userID {
		return model.SkipTraceResult{}, nil, apperrors.ErrSkipTraceNotFound
	}

	if result.Status != model.SkipTraceStatusComplete || result.Payload == "" {
		result.Payload = ""
		return result, nil, nil
	}

	plaintext := fernet.VerifyAndDecrypt([]byte(result.Payload), 0, s.keys)
	if plaintext == nil {
		return model.SkipTraceResult{}, nil, apperrors.ErrFailedToDecryptSkipTrace
	}

	var payload model.SkipTracePayload
	if err := json.Unmarshal(plaintext, &payload); err != nil {
		return model.SkipTraceResult{}, nil, fmt.Errorf("failed to decode skip trace payload: %w", err)
	}

	result.Payload = ""
	return result, &payload, nil
}

// Run performs an owner lookup for an address and stores the outcome.
//
// The row is written as pending before the provider call so an interrupted
// run still leaves a trace, then updated to complete or failed. Provider
// failures are recorded rather than returned: the stored row's status tells
// the caller what happened, and the attempt stays billable history.
func (s *SkipTraceService) Run(ctx context.Context, userID string, req request.RunSkipTraceRequest) (*model.SkipTraceResult, error) {
	pending := model.SkipTraceResult{
		UserID:    userID,
		Address:   validation.SanitizeText(req.Address),
		OwnerName: validation.SanitizeTextPtr(req.OwnerName),
		Status:    model.SkipTraceStatusPending,
	}

	stored, err := s.skipTraceRepo.InsertSkipTrace(ctx, pending)
	if err != nil {
		return nil, fmt.Errorf("failed to store skip trace request: %w", err)
	}

	lookup, err := s.lookupClient.Lookup(ctx, stored.Address)
	if err != nil {
		s.logger.Warn("skip trace lookup failed",
			zap.String("skip_trace_id", stored.ID),
			zap.Error(err))
		stored.Status = model.SkipTraceStatusFailed
		if updateErr := s.skipTraceRepo.UpdateSkipTrace(ctx, stored); updateErr != nil {
			return nil, fmt.Errorf("failed to record failed lookup: %w", updateErr)
		}
		return &stored, nil
	}

	payload := model.SkipTracePayload{
		Phones:    lookup.Phones,
		Emails:    lookup.Emails,
		Relatives: lookup.Relatives,
	}
	plaintext, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to encode skip trace payload: %w", err)
	}

	token, err := fernet.EncryptAndSign(plaintext, s.keys[0])
	if err != nil {
		return nil, fmt.Errorf("failed to encrypt skip trace payload: %w", err)
	}

	stored.Status = model.SkipTraceStatusComplete
	stored.Payload = string(token)
	if stored.OwnerName == nil && lookup.OwnerName != "" {
		ownerName := validation.SanitizeText(lookup.OwnerName)
		stored.OwnerName = &ownerName
	}

	if err := s.skipTraceRepo.UpdateSkipTrace(ctx, stored); err != nil {
		return nil, fmt.Errorf("failed to store skip trace result: %w", err)
	}

	stored.Payload = ""
	return &stored, nil
}
