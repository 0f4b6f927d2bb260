package testutil

import (
	"context"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/skiptrace"
)

// MockLookupClient is a mock implementation of skiptrace.Client for testing.
// It returns predefined test data instead of making actual API calls.
type MockLookupClient struct {
	// MockResult is the result to return from Lookup
	MockResult skiptrace.Result
	// MockError is the error to return from Lookup
	MockError error
	// CallCount tracks how many times Lookup was called
	CallCount int
}

// NewMockLookupClient creates a new mock lookup client with default test data.
func NewMockLookupClient() *MockLookupClient {
	return &MockLookupClient{
		MockResult: skiptrace.Result{
			OwnerName: "Pat Holloway",
			Phones:    []string{"614-555-0188"},
			Emails:    []string{"p.holloway@example.com"},
			Relatives: []string{"Sam Holloway"},
		},
	}
}

// Lookup mocks the provider call with predefined test data.
// It returns the configured MockResult and MockError.
func (m *MockLookupClient) Lookup(_ context.Context, _ string) (skiptrace.Result, error) {
	m.CallCount++
	if m.MockError != nil {
		return skiptrace.Result{}, m.MockError
	}
	return m.MockResult, nil
}

// WithError configures the mock to return the specified error.
func (m *MockLookupClient) WithError(err error) *MockLookupClient {
	m.MockError = err
	return m
}

// WithResult configures the mock to return the specified result.
func (m *MockLookupClient) WithResult(result skiptrace.Result) *MockLookupClient {
	m.MockResult = result
	return m
}
