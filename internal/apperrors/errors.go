package apperrors

import "errors"

// Domain entity errors represent missing or invalid entities in the system.
// These errors indicate that a requested resource does not exist.
var (
	// ErrPropertyNotFound indicates that a property with the given ID does not exist.
	ErrPropertyNotFound = errors.New("property not found")

	// ErrEntryNotFound indicates that a portfolio entry with the given ID does not exist.
	ErrEntryNotFound = errors.New("portfolio entry not found")

	// ErrMonthlyRecordNotFound indicates no record for a specific entry and month combination.
	ErrMonthlyRecordNotFound = errors.New("monthly record not found")

	// ErrMortgageNotFound indicates that a mortgage with the given ID does not exist.
	ErrMortgageNotFound = errors.New("mortgage not found")

	// ErrValuationNotFound indicates that a valuation with the given ID does not exist.
	ErrValuationNotFound = errors.New("valuation not found")

	// ErrContactNotFound indicates that a contact with the given ID does not exist.
	ErrContactNotFound = errors.New("contact not found")

	// ErrVendorNotFound indicates that a vendor with the given ID does not exist.
	ErrVendorNotFound = errors.New("vendor not found")

	// ErrWorkOrderNotFound indicates that a work order with the given ID does not exist.
	ErrWorkOrderNotFound = errors.New("work order not found")

	// ErrTurnoverNotFound indicates that a turnover with the given ID does not exist.
	ErrTurnoverNotFound = errors.New("turnover not found")

	// ErrSkipTraceNotFound indicates that a skip trace result with the given ID does not exist.
	ErrSkipTraceNotFound = errors.New("skip trace result not found")

	// ErrDepositNotFound indicates that a deposit with the given ID does not exist.
	ErrDepositNotFound = errors.New("deposit not found")

	// ErrUserNotFound indicates that a user with the given email or ID does not exist.
	ErrUserNotFound = errors.New("user not found")

	ErrTeamMemberNotFound = errors.New("team member not found")
)

// Business logic errors represent validation failures or constraint violations.
// These errors indicate that an operation cannot be completed due to business rules.
var (
	// ErrInvalidUUID indicates that a provided ID is not a valid UUID format.
	ErrInvalidUUID = errors.New("invalid UUID format")

	// ErrEmptyID indicates that a required ID parameter is empty or missing.
	ErrEmptyID = errors.New("ID cannot be empty")

	// ErrNegativeAmount indicates that an amount field has an invalid negative value.
	ErrNegativeAmount = errors.New("amount cannot be negative")

	// ErrDuplicateEntry indicates that an entity with the same unique constraint already exists.
	ErrDuplicateEntry = errors.New("duplicate entry")

	// ErrDuplicatePrimaryMortgage indicates that the entry already has a primary mortgage.
	ErrDuplicatePrimaryMortgage = errors.New("entry already has a primary mortgage")

	// ErrDuplicateMonth indicates that the entry already has a record for that month.
	ErrDuplicateMonth = errors.New("monthly record for that month already exists")

	// ErrBalanceExceedsOriginal indicates an update would push a mortgage's
	// current balance above its original balance.
	ErrBalanceExceedsOriginal = errors.New("current balance cannot exceed original balance")

	// ErrInvalidDateRange indicates that the provided date range is invalid
	// (e.g., acquisition date is in the future).
	ErrInvalidDateRange = errors.New("invalid date range")

	// ErrInvalidStageTransition indicates that a turnover cannot move to the requested stage.
	ErrInvalidStageTransition = errors.New("invalid stage transition")

	// ErrDepositAlreadySettled indicates a settlement was attempted on a settled deposit.
	ErrDepositAlreadySettled = errors.New("deposit already settled")

	// ErrInvalidCredentials indicates a failed login attempt.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrEmailTaken indicates that registration used an email that already has an account.
	ErrEmailTaken = errors.New("email already registered")

	// Validation errors for required fields
	ErrInvalidPropertyID = errors.New("property ID is required")
	ErrInvalidEntryID    = errors.New("entry ID is required")
	ErrInvalidAddress    = errors.New("address is required")
	ErrInvalidName       = errors.New("name is required")
	ErrInvalidEmail      = errors.New("valid email is required")
	ErrInvalidSource     = errors.New("valuation source is invalid")
	ErrInvalidStatus     = errors.New("status is invalid")
	ErrInvalidPriority   = errors.New("priority is invalid")
	ErrInvalidStage      = errors.New("stage is invalid")
	ErrInvalidRole       = errors.New("role is invalid")
	ErrInvalidMonth      = errors.New("month parameter is required")
	ErrInvalidRating     = errors.New("rating must be between 1 and 5")
)

// Authorization errors.
var (
	// ErrUnauthorized indicates a missing or invalid access token.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the authenticated user may not act on the resource.
	ErrForbidden = errors.New("forbidden")
)

// Operation failure errors represent system-level failures when retrieving or
// processing data. These errors indicate that an operation failed, but not due
// to missing entities or validation issues.
var (
	// Property operation errors
	ErrFailedToRetrieveProperties = errors.New("failed to retrieve properties")
	ErrFailedToRetrieveProperty   = errors.New("failed to retrieve property")

	// Portfolio operation errors
	ErrFailedToRetrieveEntries     = errors.New("failed to retrieve portfolio entries")
	ErrFailedToRetrieveRecords     = errors.New("failed to retrieve monthly records")
	ErrFailedToRetrieveMortgages   = errors.New("failed to retrieve mortgages")
	ErrFailedToComputePerformance  = errors.New("failed to compute performance")
	ErrFailedToComputeBenchmark    = errors.New("failed to compute benchmark")
	ErrFailedToRetrieveValuations  = errors.New("failed to retrieve valuations")
	ErrFailedToRefreshValuations   = errors.New("failed to refresh valuations")
	ErrFailedToRetrieveSettlement  = errors.New("failed to compute settlement")
	ErrFailedToRunSkipTrace        = errors.New("failed to run skip trace")
	ErrFailedToDecryptSkipTrace    = errors.New("failed to decrypt skip trace payload")

	// System operation errors
	ErrFailedToGetVersionInfo = errors.New("failed to get version information")
)

// Data integrity errors represent inconsistencies or corruption in the data.
var (
	// ErrDataInconsistency indicates that the data is in an inconsistent state
	// (e.g., an entry references a property that doesn't exist).
	ErrDataInconsistency = errors.New("data inconsistency detected")

	// ErrMissingRequiredField indicates that a required field is missing or empty.
	ErrMissingRequiredField = errors.New("missing required field")
)
