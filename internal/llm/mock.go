package llm

import (
	"context"
	"sync"
)

// MockResponse is a canned response for the MockClient.
type MockResponse struct {
	Text string
	Err  error
}

// MockCall records one request made to the MockClient.
type MockCall struct {
	Prompt string
	Tier   ModelTier
	JSON   bool
}

// MockClient is a deterministic Client for testing.
// It returns canned responses in FIFO order and records all requests.
type MockClient struct {
	mu        sync.Mutex
	responses []MockResponse
	Calls     []MockCall
	closed    bool
}

// NewMockClient creates a MockClient with the given canned responses.
func NewMockClient(responses ...MockResponse) *MockClient {
	return &MockClient{responses: responses}
}

// GenerateContent returns the next canned response.
func (m *MockClient) GenerateContent(_ context.Context, prompt string, tier ModelTier) (string, error) {
	return m.next(MockCall{Prompt: prompt, Tier: tier})
}

// GenerateJSON returns the next canned response.
func (m *MockClient) GenerateJSON(_ context.Context, prompt string, tier ModelTier) (string, error) {
	return m.next(MockCall{Prompt: prompt, Tier: tier, JSON: true})
}

// next returns the next canned response or ErrProviderUnavailable if
// the queue is empty.
func (m *MockClient) next(call MockCall) (string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, call)

	if len(m.responses) == 0 {
		return "", &ErrProviderUnavailable{}
	}

	resp := m.responses[0]
	m.responses = m.responses[1:]
	return resp.Text, resp.Err
}

// GetModel returns "mock".
func (m *MockClient) GetModel(ModelTier) string {
	return "mock"
}

// Close marks the client closed.
func (m *MockClient) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// AddResponse appends a canned response to the queue.
func (m *MockClient) AddResponse(resp MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.responses = append(m.responses, resp)
}

// CallCount returns the number of Generate calls made.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}

// Closed reports whether Close was called.
func (m *MockClient) Closed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.closed
}
