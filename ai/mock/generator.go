package mock

import (
	"context"
	"strings"

	"github.com/poiesic/voyant/ai"
)

// MockGenerator is a test double for ai.Generator.
// It replays scripted responses in order and allows custom behavior
// injection via function fields.
type MockGenerator struct {
	// CompleteFunc is called by Complete if set.
	// If nil, the next scripted response is returned.
	CompleteFunc func(ctx context.Context, req ai.GenerateRequest) (string, error)

	// StreamFunc is called by Stream if set.
	// If nil, the next scripted response is streamed word by word.
	StreamFunc func(ctx context.Context, req ai.GenerateRequest) (*ai.TokenStream, error)

	responses []string
	next      int
	callCount int
	requests  []ai.GenerateRequest
}

// NewMockGenerator creates a mock generator that replays the given
// responses in order. When the script runs out, the last response
// repeats; with no script at all, a fixed placeholder is returned.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator(responses ...string) *MockGenerator {
	return &MockGenerator{responses: responses}
}

// Complete returns the next scripted response.
func (m *MockGenerator) Complete(ctx context.Context, req ai.GenerateRequest) (string, error) {
	m.callCount++
	m.requests = append(m.requests, req)

	if m.CompleteFunc != nil {
		return m.CompleteFunc(ctx, req)
	}

	return m.nextResponse(), nil
}

// Stream streams the next scripted response split on word boundaries.
func (m *MockGenerator) Stream(ctx context.Context, req ai.GenerateRequest) (*ai.TokenStream, error) {
	m.callCount++
	m.requests = append(m.requests, req)

	if m.StreamFunc != nil {
		return m.StreamFunc(ctx, req)
	}

	response := m.nextResponse()
	stream := ai.NewTokenStream(16)
	go func() {
		for i, word := range strings.Split(response, " ") {
			if i > 0 {
				stream.Push(" ")
			}
			stream.Push(word)
		}
		stream.Close(nil)
	}()
	return stream, nil
}

// CallCount returns the number of times Complete or Stream was called.
func (m *MockGenerator) CallCount() int {
	return m.callCount
}

// Requests returns the requests seen so far, in call order.
func (m *MockGenerator) Requests() []ai.GenerateRequest {
	return m.requests
}

// Reset clears call state and custom functions, rewinding the script.
func (m *MockGenerator) Reset() {
	m.callCount = 0
	m.next = 0
	m.requests = nil
	m.CompleteFunc = nil
	m.StreamFunc = nil
}

func (m *MockGenerator) nextResponse() string {
	if len(m.responses) == 0 {
		return "mock response"
	}
	if m.next >= len(m.responses) {
		return m.responses[len(m.responses)-1]
	}
	response := m.responses[m.next]
	m.next++
	return response
}
