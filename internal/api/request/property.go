package request

// CreatePropertyRequest represents the request body for creating a property
type CreatePropertyRequest struct {
	Address      string  `json:"address"`
	City         string  `json:"city"`
	State        string  `json:"state"`
	Zip          string  `json:"zip"`
	PropertyType string  `json:"propertyType"`
	Bedrooms     int     `json:"bedrooms"`
	Bathrooms    float64 `json:"bathrooms"`
	SquareFeet   int     `json:"squareFeet"`
	YearBuilt    int     `json:"yearBuilt"`
}

type UpdatePropertyRequest struct {
	Address      *string  `json:"address,omitempty"`
	City         *string  `json:"city,omitempty"`
	State        *string  `json:"state,omitempty"`
	Zip          *string  `json:"zip,omitempty"`
	PropertyType *string  `json:"propertyType,omitempty"`
	Bedrooms     *int     `json:"bedrooms,omitempty"`
	Bathrooms    *float64 `json:"bathrooms,omitempty"`
	SquareFeet   *int     `json:"squareFeet,omitempty"`
	YearBuilt    *int     `json:"yearBuilt,omitempty"`
	Status       *string  `json:"status,omitempty"`
}
