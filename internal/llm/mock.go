package llm

import (
	"context"
	"sync"
)

// MockClient implements Client for testing. It replays a scripted sequence
// of responses and records every prompt it receives.
type MockClient struct {
	mu            sync.Mutex
	responses     []string
	responseIndex int
	prompts       []string
	err           error
	failsLeft     int
	failErr       error
}

// NewMockClient creates a mock that returns the given responses in order.
// Once exhausted it keeps returning the last response.
func NewMockClient(responses ...string) *MockClient {
	return &MockClient{responses: responses}
}

// NewFailingMockClient creates a mock whose Generate always returns err.
func NewFailingMockClient(err error) *MockClient {
	return &MockClient{err: err}
}

// Name returns the provider name.
func (m *MockClient) Name() string {
	return "mock"
}

// Generate records the prompt and returns the next scripted response.
func (m *MockClient) Generate(ctx context.Context, prompt string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", TranslateError("mock", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.prompts = append(m.prompts, prompt)

	if m.failsLeft > 0 {
		m.failsLeft--
		return "", m.failErr
	}
	if m.err != nil {
		return "", m.err
	}
	if len(m.responses) == 0 {
		return "", nil
	}

	reply := m.responses[m.responseIndex]
	if m.responseIndex < len(m.responses)-1 {
		m.responseIndex++
	}
	return reply, nil
}

// Prompts returns a copy of all prompts received so far.
func (m *MockClient) Prompts() []string {
	m.mu.Lock()
	defer m.mu.Unlock()

	out := make([]string, len(m.prompts))
	copy(out, m.prompts)
	return out
}

// CallCount returns how many times Generate was invoked.
func (m *MockClient) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.prompts)
}

// FailTimes makes the mock return err for the next n calls, then resume the
// scripted responses. Calls that fail are still recorded.
func (m *MockClient) FailTimes(n int, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.failsLeft = n
	m.failErr = err
}
