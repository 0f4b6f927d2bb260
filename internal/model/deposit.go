package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit statuses.
const (
	DepositStatusHeld    = "held"
	DepositStatusSettled = "settled"
)

// Deposit is a security deposit held against a property's tenancy. Amounts
// are decimal because settlement math must be exact to the cent.
type Deposit struct {
	ID         string          `json:"id"`
	UserID     string          `json:"user_id"`
	PropertyID string          `json:"property_id"`
	TenantName string          `json:"tenant_name"`
	Amount     decimal.Decimal `json:"amount"`
	Status     string          `json:"status"`
	ReceivedAt time.Time       `json:"received_at"`
	SettledAt  *time.Time      `json:"settled_at,omitempty"`
	CreatedAt  time.Time       `json:"created_at"`
}

// DepositCharge is a deduction claimed against a deposit: damage, cleaning,
// unpaid rent.
type DepositCharge struct {
	ID          string          `json:"id"`
	DepositID   string          `json:"deposit_id"`
	Description string          `json:"description"`
	Amount      decimal.Decimal `json:"amount"`
	CreatedAt   time.Time       `json:"created_at"`
}

// DepositSettlement is the computed outcome of settling a deposit:
// withheld never exceeds the deposit, refund is the remainder returned to
// the tenant, and balance due is what the tenant still owes when charges
// exceed the deposit.
type DepositSettlement struct {
	DepositID    string          `json:"deposit_id"`
	Deposit      decimal.Decimal `json:"deposit"`
	TotalCharges decimal.Decimal `json:"total_charges"`
	Withheld     decimal.Decimal `json:"withheld"`
	Refund       decimal.Decimal `json:"refund"`
	BalanceDue   decimal.Decimal `json:"balance_due"`
}
