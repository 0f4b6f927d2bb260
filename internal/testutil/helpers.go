package testutil

import (
	"database/sql"
	"fmt"
	"math/rand"
	"strings"
	"testing"
	"time"

	"github.com/fernet/fernet-go"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/auth"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/avm"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/model"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/repository"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/service"
	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/skiptrace"
)

func NewTestSystemService(t *testing.T, db *sql.DB) *service.SystemService {
	t.Helper()

	return service.NewSystemService(db)
}

func NewTestPropertyService(t *testing.T, db *sql.DB) *service.PropertyService {
	t.Helper()

	return service.NewPropertyService(repository.NewPropertyRepository(db))
}

func NewTestPerformanceService(t *testing.T, db *sql.DB) *service.PerformanceService {
	t.Helper()

	calculator := service.NewPerformanceCalculator(model.DefaultAssumptions())

	return service.NewPerformanceService(
		repository.NewPortfolioRepository(db),
		repository.NewMonthlyRecordRepository(db),
		repository.NewMortgageRepository(db),
		repository.NewValuationRepository(db),
		calculator,
	)
}

func NewTestPortfolioService(t *testing.T, db *sql.DB) *service.PortfolioService {
	t.Helper()

	return service.NewPortfolioService(
		db,
		repository.NewPortfolioRepository(db),
		repository.NewPropertyRepository(db),
		repository.NewMonthlyRecordRepository(db),
		repository.NewMortgageRepository(db),
		NewTestPerformanceService(t, db),
	)
}

func NewTestValuationService(t *testing.T, db *sql.DB) *service.ValuationService {
	t.Helper()

	return NewTestValuationServiceWithMockAVM(t, db, NewMockEstimateClient())
}

// NewTestValuationServiceWithMockAVM creates a ValuationService with a
// specific mock AVM client. This is useful for testing estimate refresh
// behavior without making real API calls.
func NewTestValuationServiceWithMockAVM(t *testing.T, db *sql.DB, mockAVM avm.Client) *service.ValuationService {
	t.Helper()

	return service.NewValuationService(
		repository.NewValuationRepository(db),
		repository.NewPropertyRepository(db),
		mockAVM,
		NewTestPerformanceService(t, db),
		zap.NewNop(),
	)
}

func NewTestContactService(t *testing.T, db *sql.DB) *service.ContactService {
	t.Helper()

	return service.NewContactService(repository.NewContactRepository(db))
}

func NewTestVendorService(t *testing.T, db *sql.DB) *service.VendorService {
	t.Helper()

	return service.NewVendorService(repository.NewVendorRepository(db))
}

func NewTestWorkOrderService(t *testing.T, db *sql.DB) *service.WorkOrderService {
	t.Helper()

	return service.NewWorkOrderService(
		repository.NewWorkOrderRepository(db),
		repository.NewPropertyRepository(db),
		repository.NewVendorRepository(db),
	)
}

func NewTestTurnoverService(t *testing.T, db *sql.DB) *service.TurnoverService {
	t.Helper()

	return service.NewTurnoverService(
		repository.NewTurnoverRepository(db),
		repository.NewPropertyRepository(db),
	)
}

func NewTestSkipTraceService(t *testing.T, db *sql.DB) *service.SkipTraceService {
	t.Helper()

	return NewTestSkipTraceServiceWithMockLookup(t, db, NewMockLookupClient())
}

// NewTestSkipTraceServiceWithMockLookup creates a SkipTraceService with a
// specific mock lookup client. This is useful for testing provider failure
// handling.
func NewTestSkipTraceServiceWithMockLookup(t *testing.T, db *sql.DB, mockLookup skiptrace.Client) *service.SkipTraceService {
	t.Helper()

	return service.NewSkipTraceService(
		repository.NewSkipTraceRepository(db),
		mockLookup,
		TestFernetKeys(t),
		zap.NewNop(),
	)
}

func NewTestDepositService(t *testing.T, db *sql.DB) *service.DepositService {
	t.Helper()

	return service.NewDepositService(
		repository.NewDepositRepository(db),
		repository.NewPropertyRepository(db),
	)
}

func NewTestTeamService(t *testing.T, db *sql.DB) *service.TeamService {
	t.Helper()

	return service.NewTeamService(repository.NewTeamRepository(db), TestIssuer(), zap.NewNop())
}

// TestIssuer returns the token issuer shared by test services. Tokens signed
// through one helper verify through another.
func TestIssuer() auth.TokenIssuer {
	return auth.TokenIssuer{
		Secret:   []byte("test-signing-secret"),
		TokenTTL: time.Hour,
	}
}

// testFernetKey is a fixed key so payloads written by one helper-built
// service decrypt in another.
const testFernetKey = "cw_0x689RpI-jtRR7oE8h_eQsKImvJapLeSbXpwF4e4="

// TestFernetKeys returns the encryption keyring used by test services.
func TestFernetKeys(t *testing.T) []*fernet.Key {
	t.Helper()

	keys, err := fernet.DecodeKeys(testFernetKey)
	if err != nil {
		t.Fatalf("Failed to decode test fernet key: %v", err)
	}
	return keys
}

// MakeID generates a UUID string for use in tests.
//
// Example usage:
//
//	id := testutil.MakeID()
//	// Returns: "550e8400-e29b-41d4-a716-446655440000"
func MakeID() string {
	return uuid.New().String()
}

// MakeEmail generates a unique email address for testing.
//
// Example usage:
//
//	email := testutil.MakeEmail("landlord")
//	// Returns: "landlord-a1b2c3@example.com"
func MakeEmail(prefix string) string {
	if prefix == "" {
		prefix = "user"
	}
	return prefix + "-" + strings.ToLower(randomAlphanumeric(6)) + "@example.com"
}

// MakeAddress generates a unique street address for testing.
//
// Example usage:
//
//	address := testutil.MakeAddress("Maple Ave")
//	// Returns: "4821 Maple Ave"
func MakeAddress(street string) string {
	if street == "" {
		street = "Main St"
	}
	//nolint:gosec // G404: Using math/rand for test data generation is acceptable
	return fmt.Sprintf("%d %s", 100+rand.Intn(9899), street)
}

// MakeName generates a unique display name for testing.
//
// Example usage:
//
//	name := testutil.MakeName("Vendor")
//	// Returns: "Vendor ABC123"
func MakeName(base string) string {
	if base == "" {
		base = "Test"
	}
	return base + " " + randomAlphanumeric(6)
}

// randomAlphanumeric generates a random alphanumeric string of specified length.
func randomAlphanumeric(length int) string {
	const charset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	result := make([]byte, length)
	for i := range result {
		//nolint:gosec // G404: Using math/rand for test data generation is acceptable
		result[i] = charset[rand.Intn(len(charset))]
	}
	return string(result)
}
