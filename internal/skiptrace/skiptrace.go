package skiptrace

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

// Client defines the interface for owner lookups against a skip trace
// provider. This interface enables dependency injection and testing with
// mock implementations.
type Client interface {
	Lookup(ctx context.Context, address string) (Result, error)
}

// LookupClient provides methods for querying the skip trace provider.
type LookupClient struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
}

// NewLookupClient creates a new skip trace client against the given provider
// base URL.
func NewLookupClient(baseURL, apiKey string) *LookupClient {
	return &LookupClient{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		baseURL:    baseURL,
		apiKey:     apiKey,
	}
}

// Lookup runs an owner search for one address.
func (c *LookupClient) Lookup(ctx context.Context, address string) (Result, error) {
	queryURL := fmt.Sprintf("%s/v1/trace?address=%s", c.baseURL, url.QueryEscape(address))

	req, err := http.NewRequestWithContext(ctx, "GET", queryURL, nil)
	if err != nil {
		return Result{}, err
	}

	req.Header.Set("X-Api-Key", c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return Result{}, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return Result{}, err
	}

	var response Response
	if err := json.Unmarshal(data, &response); err != nil {
		return Result{}, err
	}

	if response.Error != nil {
		return Result{}, fmt.Errorf("skip trace error: %s", *response.Error)
	}
	if response.Match == nil {
		return Result{}, fmt.Errorf("no match returned for address")
	}

	return Result{
		OwnerName: response.Match.OwnerName,
		Phones:    response.Match.Phones,
		Emails:    response.Match.Emails,
		Relatives: response.Match.Relatives,
	}, nil
}
