package notify

import "sync"

// Mock records notifications for tests.
type Mock struct {
	mu     sync.Mutex
	sent   []Notification
	closed []uint32
	err    error
}

// Verify Mock implements Notifier at compile time.
var _ Notifier = (*Mock)(nil)

// NewMock creates a mock notifier.
func NewMock() *Mock {
	return &Mock{}
}

// Notify records n and returns its 1-based index as the ID.
func (m *Mock) Notify(n Notification) (uint32, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return 0, m.err
	}
	m.sent = append(m.sent, n)
	return uint32(len(m.sent)), nil
}

func (m *Mock) Close(id uint32) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = append(m.closed, id)
	return nil
}

// SetError makes subsequent Notify calls fail.
func (m *Mock) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}

// Sent returns the notifications sent so far.
func (m *Mock) Sent() []Notification {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Notification(nil), m.sent...)
}

// Closed returns the IDs passed to Close.
func (m *Mock) Closed() []uint32 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]uint32(nil), m.closed...)
}
