// internal/state/mock.go
package state

import (
	"context"
	"sync"
)

// Mock is a test double for Manager.
type Mock struct {
	mu       sync.Mutex
	sessions map[string]Session
	saves    int
	saveErr  error
}

// NewMock creates a new mock state manager for testing.
func NewMock() *Mock {
	return &Mock{sessions: make(map[string]Session)}
}

func (m *Mock) SaveSession(s Session) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.sessions[s.URI] = s
	m.saves++
}

func (m *Mock) SaveSessionNow(_ context.Context, s Session) error {
	m.mu.Lock()
	err := m.saveErr
	m.mu.Unlock()
	if err != nil {
		return err
	}
	m.SaveSession(s)
	return nil
}

func (m *Mock) GetSession(_ context.Context, uri string) (*Session, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[uri]
	if !ok {
		return nil, nil //nolint:nilnil // mirrors Manager
	}
	return &s, nil
}

func (m *Mock) DeleteSession(_ context.Context, uri string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, uri)
	return nil
}

func (m *Mock) Close() error { return nil }

// Test helpers

// SetSaveError makes SaveSessionNow fail with err.
func (m *Mock) SetSaveError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.saveErr = err
}

func (m *Mock) SaveCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.saves
}

// Verify Mock implements Interface at compile time.
var _ Interface = (*Mock)(nil)
