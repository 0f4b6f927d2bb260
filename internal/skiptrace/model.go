package skiptrace

// Response represents the raw JSON response from the skip trace provider.
type Response struct {
	Match *struct {
		OwnerName string   `json:"ownerName"`
		Phones    []string `json:"phones"`
		Emails    []string `json:"emails"`
		Relatives []string `json:"relatives"`
	} `json:"match"`
	Error *string `json:"error"`
}

// Result is the parsed provider match for an address lookup.
type Result struct {
	OwnerName string
	Phones    []string
	Emails    []string
	Relatives []string
}
