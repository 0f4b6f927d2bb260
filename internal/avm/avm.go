package avm

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client defines the interface for fetching automated property valuations.
// This interface enables dependency injection and testing with mock implementations.
type Client interface {
	GetEstimate(ctx context.Context, address, city, state, zip string) (Estimate, error)
}

// EstimateClient provides methods for fetching valuations from an AVM provider.
// It wraps an HTTP client and signs requests with the account's API key.
type EstimateClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewEstimateClient creates a new AVM client against the given provider base
// URL. The API key is sent on every request.
func NewEstimateClient(baseURL, apiKey string) *EstimateClient {
	return &EstimateClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// GetEstimate fetches the provider's current value estimate for one address.
//
// Returns an error if the HTTP request fails, the response cannot be parsed,
// the provider reports an error, or the estimate comes back non-positive.
func (c *EstimateClient) GetEstimate(ctx context.Context, address, city, state, zip string) (Estimate, error) {
	queryURL := fmt.Sprintf("%s/v1/estimate?address=%s&city=%s&state=%s&zip=%s",
		c.baseURL,
		url.QueryEscape(address),
		url.QueryEscape(city),
		url.QueryEscape(state),
		url.QueryEscape(zip),
	)

	req, err := http.NewRequestWithContext(ctx, "GET", queryURL, nil)
	if err != nil {
		return Estimate{}, err
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Estimate{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Estimate{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Estimate{}, err
	}

	if response.Error != nil {
		return Estimate{}, fmt.Errorf("avm error: %s", *response.Error)
	}

	return parseEstimate(response)
}

func parseEstimate(response Response) (Estimate, error) {
	if response.Estimate.Value <= 0 {
		return Estimate{}, fmt.Errorf("no estimate returned")
	}

	asOf, err := time.Parse("2006-01-02", response.Estimate.AsOf)
	if err != nil {
		// Providers differ on timestamp shape
		asOf, err = time.Parse(time.RFC3339, response.Estimate.AsOf)
		if err != nil {
			asOf = time.Now().UTC()
		}
	}

	return Estimate{
		Value:      response.Estimate.Value,
		High:       response.Estimate.High,
		Low:        response.Estimate.Low,
		Confidence: response.Estimate.Confidence,
		AsOf:       asOf.UTC(),
	}, nil
}
