package version

// Version is the application release. Overridden at build time:
//
//	go build -ldflags "-X github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/version.Version=v1.2.0"
var Version = "dev"

// Features flags optional capabilities so the frontend can hide what a
// deployment has not enabled. Keys are stable API contract.
var Features = map[string]bool{
	"avm_refresh":    true,
	"skip_trace":     true,
	"team_accounts":  true,
	"deposit_ledger": true,
	"turnovers":      true,
}
