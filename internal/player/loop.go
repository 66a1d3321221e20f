package player

import (
	"sync"

	"github.com/gopxl/beep/v2"
)

var _ beep.Streamer = (*loopStreamer)(nil)

// loopStreamer wraps a seekable source and rewinds it at the end while
// looping is enabled.
type loopStreamer struct {
	mu      sync.Mutex
	source  beep.StreamSeeker
	looping bool
	onWrap  func() // Called under the output lock each time the source rewinds
}

// Stream implements beep.Streamer.
func (l *loopStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	l.mu.Lock()
	defer l.mu.Unlock()

	for n < len(samples) {
		m, sok := l.source.Stream(samples[n:])
		n += m
		if sok {
			if m == 0 {
				break
			}
			continue
		}

		// Source exhausted: rewind only when looping a non-empty, healthy source.
		if !l.looping || l.source.Err() != nil || l.source.Len() == 0 {
			return n, n > 0
		}
		if err := l.source.Seek(0); err != nil {
			return n, n > 0
		}
		if l.onWrap != nil {
			l.onWrap()
		}
	}

	return n, true
}

// Err implements beep.Streamer.
func (l *loopStreamer) Err() error {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.source.Err()
}

// SetLooping toggles rewinding at the end of the source.
func (l *loopStreamer) SetLooping(looping bool) {
	l.mu.Lock()
	l.looping = looping
	l.mu.Unlock()
}

// Looping reports whether the source rewinds at its end.
func (l *loopStreamer) Looping() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.looping
}
