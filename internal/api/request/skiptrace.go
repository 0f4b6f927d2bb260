package request

type RunSkipTraceRequest struct {
	Address   string  `json:"address"`
	OwnerName *string `json:"ownerName,omitempty"`
}
