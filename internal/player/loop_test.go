package player

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

// mockStreamer produces a fixed number of samples then returns ok=false.
type mockStreamer struct {
	samples   int
	sampleVal float64
	produced  int
	err       error
}

func (m *mockStreamer) Stream(samples [][2]float64) (n int, ok bool) {
	remaining := m.samples - m.produced
	if remaining <= 0 {
		return 0, false
	}
	toWrite := min(len(samples), remaining)
	for i := range toWrite {
		samples[i] = [2]float64{m.sampleVal, m.sampleVal}
	}
	m.produced += toWrite
	return toWrite, true
}

func (m *mockStreamer) Err() error    { return m.err }
func (m *mockStreamer) Len() int      { return m.samples }
func (m *mockStreamer) Position() int { return m.produced }
func (m *mockStreamer) Close() error  { return nil }

func (m *mockStreamer) Seek(p int) error {
	m.produced = max(0, min(p, m.samples))
	return nil
}

func TestLoopStreamer_NoLoopEnds(t *testing.T) {
	src := &mockStreamer{samples: 5, sampleVal: 1.0}
	l := &loopStreamer{source: src}

	buf := make([][2]float64, 10)
	n, ok := l.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 5, n)

	n, ok = l.Stream(buf)
	assert.False(t, ok)
	assert.Equal(t, 0, n)
}

func TestLoopStreamer_LoopFillsBuffer(t *testing.T) {
	src := &mockStreamer{samples: 10, sampleVal: 1.0}
	wraps := 0
	l := &loopStreamer{source: src, looping: true, onWrap: func() { wraps++ }}

	buf := make([][2]float64, 25)
	n, ok := l.Stream(buf)

	assert.True(t, ok)
	assert.Equal(t, 25, n)
	assert.Equal(t, 2, wraps)
	assert.Equal(t, 5, src.Position())
}

func TestLoopStreamer_DisableLoopDuringPlayback(t *testing.T) {
	src := &mockStreamer{samples: 20, sampleVal: 1.0}
	l := &loopStreamer{source: src, looping: true}

	buf := make([][2]float64, 10)
	n, ok := l.Stream(buf)
	assert.True(t, ok)
	assert.Equal(t, 10, n)

	l.SetLooping(false)
	assert.False(t, l.Looping())

	buf2 := make([][2]float64, 25)
	n, ok = l.Stream(buf2)
	assert.True(t, ok)
	assert.Equal(t, 10, n) // remaining 10, no rewind
}

func TestLoopStreamer_ErrorStopsLoop(t *testing.T) {
	src := &mockStreamer{samples: 4, err: errors.New("corrupt frame")}
	l := &loopStreamer{source: src, looping: true}

	buf := make([][2]float64, 10)
	n, ok := l.Stream(buf)

	assert.True(t, ok)
	assert.Equal(t, 4, n)
	assert.EqualError(t, l.Err(), "corrupt frame")
}

func TestLoopStreamer_EmptySourceDoesNotSpin(t *testing.T) {
	l := &loopStreamer{source: &mockStreamer{}, looping: true}

	n, ok := l.Stream(make([][2]float64, 8))

	assert.False(t, ok)
	assert.Equal(t, 0, n)
}
