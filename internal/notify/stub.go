package notify

// stubNotifier is used when D-Bus is unavailable or on non-Linux platforms.
type stubNotifier struct{}

func (s *stubNotifier) Notify(_ Notification) (uint32, error) { return 0, nil }
func (s *stubNotifier) Close(_ uint32) error                  { return nil }
