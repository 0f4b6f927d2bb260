package request

// Deposit amounts travel as strings so the decimal values survive the trip
// without float rounding.
type CreateDepositRequest struct {
	PropertyID string `json:"propertyId"`
	TenantName string `json:"tenantName"`
	Amount     string `json:"amount"`
	ReceivedAt string `json:"receivedAt"`
}

type CreateDepositChargeRequest struct {
	Description string `json:"description"`
	Amount      string `json:"amount"`
}
