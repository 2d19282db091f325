package mocks

import (
	"fmt"

	"github.com/mcoot/arenafc/internal/dependencies/ids"
)

// MockIDs is a mock implementation of ids.Generator for testing
type MockIDs struct {
	// Results is a queue of identifiers to return from NewID
	Results []string
	index   int

	// Prefix is used for generated fallback ids once the queue is drained
	Prefix  string
	counter int
}

// Ensure MockIDs implements Generator
var _ ids.Generator = (*MockIDs)(nil)

// NewMockIDs creates a new MockIDs
func NewMockIDs() *MockIDs {
	return &MockIDs{Prefix: "id"}
}

// NewID returns the next queued id, or a sequential fallback if none remain
func (m *MockIDs) NewID() string {
	if m.index < len(m.Results) {
		result := m.Results[m.index]
		m.index++
		return result
	}
	m.counter++
	return fmt.Sprintf("%s-%d", m.Prefix, m.counter)
}

// Queue adds values to the result queue
func (m *MockIDs) Queue(values ...string) {
	m.Results = append(m.Results, values...)
}

// Reset clears all queued results
func (m *MockIDs) Reset() {
	m.Results = nil
	m.index = 0
	m.counter = 0
}
