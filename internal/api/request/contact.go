package request

type CreateContactRequest struct {
	Name   string  `json:"name"`
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty"`
	Module *string `json:"module,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type UpdateContactRequest struct {
	Name   *string `json:"name,omitempty"`
	Phone  *string `json:"phone,omitempty"`
	Email  *string `json:"email,omitempty"`
	Module *string `json:"module,omitempty"`
	Notes  *string `json:"notes,omitempty"`
}

type CreateVendorRequest struct {
	Name  string  `json:"name"`
	Trade string  `json:"trade"`
	Phone *string `json:"phone,omitempty"`
	Email *string `json:"email,omitempty"`
	Notes *string `json:"notes,omitempty"`
}

type UpdateVendorRequest struct {
	Name   *string  `json:"name,omitempty"`
	Trade  *string  `json:"trade,omitempty"`
	Phone  *string  `json:"phone,omitempty"`
	Email  *string  `json:"email,omitempty"`
	Rating *float64 `json:"rating,omitempty"`
	Notes  *string  `json:"notes,omitempty"`
}
