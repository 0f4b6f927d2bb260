package testutil

import (
	"context"
	"sync"
	"time"

	"github.com/rentfolio/Rental-Portfolio-Manager-Backend/internal/avm"
)

// MockEstimateClient is a mock implementation of avm.Client for testing.
// It returns predefined test data instead of making actual API calls.
//
// Estimate refresh fans out across goroutines, so access is guarded.
type MockEstimateClient struct {
	mu sync.Mutex
	// MockEstimate is the estimate to return from GetEstimate
	MockEstimate avm.Estimate
	// MockError is the error to return from GetEstimate
	MockError error
	// CallCount tracks how many times GetEstimate was called
	CallCount int
}

// NewMockEstimateClient creates a new mock AVM client with default test data.
func NewMockEstimateClient() *MockEstimateClient {
	return &MockEstimateClient{
		MockEstimate: avm.Estimate{
			Value:      245000,
			High:       257000,
			Low:        233000,
			Confidence: 0.82,
			AsOf:       time.Now().UTC(),
		},
	}
}

// GetEstimate mocks the provider call with predefined test data.
// It returns the configured MockEstimate and MockError.
func (m *MockEstimateClient) GetEstimate(_ context.Context, _, _, _, _ string) (avm.Estimate, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.CallCount++
	if m.MockError != nil {
		return avm.Estimate{}, m.MockError
	}
	return m.MockEstimate, nil
}

// Calls returns how many times GetEstimate was invoked.
func (m *MockEstimateClient) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.CallCount
}

// WithError configures the mock to return the specified error.
func (m *MockEstimateClient) WithError(err error) *MockEstimateClient {
	m.MockError = err
	return m
}

// WithEstimate configures the mock to return the specified estimate.
func (m *MockEstimateClient) WithEstimate(estimate avm.Estimate) *MockEstimateClient {
	m.MockEstimate = estimate
	return m
}
