package playback

import (
	"sync"

	"github.com/llehouerou/focusplay/internal/status"
)

const eventBufferSize = 16

// Subscription provides event channels for a subscriber.
type Subscription struct {
	StatusUpdated    <-chan status.PlaybackStatus
	Errors           <-chan ErrorEvent
	VideoSizeChanged <-chan VideoSize
	Done             <-chan struct{}

	// Internal write channels
	statusCh chan status.PlaybackStatus
	errorCh  chan ErrorEvent
	sizeCh   chan VideoSize
	doneCh   chan struct{}

	closeOnce sync.Once
}

// newSubscription creates a new subscription with buffered channels.
func newSubscription() *Subscription {
	s := &Subscription{
		statusCh: make(chan status.PlaybackStatus, eventBufferSize),
		errorCh:  make(chan ErrorEvent, eventBufferSize),
		sizeCh:   make(chan VideoSize, eventBufferSize),
		doneCh:   make(chan struct{}),
	}
	s.StatusUpdated = s.statusCh
	s.Errors = s.errorCh
	s.VideoSizeChanged = s.sizeCh
	s.Done = s.doneCh
	return s
}

// close signals subscribers to stop by closing doneCh.
func (s *Subscription) close() {
	s.closeOnce.Do(func() { close(s.doneCh) })
}

// sendStatus sends a status report (non-blocking).
func (s *Subscription) sendStatus(st status.PlaybackStatus) {
	select {
	case s.statusCh <- st:
	default:
		// Drop if buffer full
	}
}

// sendError sends an error event (non-blocking).
func (s *Subscription) sendError(e ErrorEvent) {
	select {
	case s.errorCh <- e:
	default:
	}
}

// sendVideoSize sends a video size event (non-blocking).
func (s *Subscription) sendVideoSize(e VideoSize) {
	select {
	case s.sizeCh <- e:
	default:
	}
}
