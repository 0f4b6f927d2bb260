package request

type CreateValuationRequest struct {
	PropertyID     string  `json:"propertyId"`
	EstimatedValue float64 `json:"estimatedValue"`
	ValuationDate  string  `json:"valuationDate"`
	Source         string  `json:"source"`
}
