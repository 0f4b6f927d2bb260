package model

import "time"

// SkipTraceStatus values for a lookup request.
const (
	SkipTraceStatusPending  = "pending"
	SkipTraceStatusComplete = "complete"
	SkipTraceStatusFailed   = "failed"
)

// SkipTraceResult is a stored owner-lookup result. Payload holds the
// provider response (phones, emails, relatives) encrypted at rest; it is
// decrypted only when the record is read back through the service.
type SkipTraceResult struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Address   string    `json:"address"`
	OwnerName *string   `json:"owner_name,omitempty"`
	Status    string    `json:"status"`
	Payload   string    `json:"payload,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// SkipTracePayload is the decrypted provider response body.
type SkipTracePayload struct {
	Phones    []string `json:"phones"`
	Emails    []string `json:"emails"`
	Relatives []string `json:"relatives"`
}
