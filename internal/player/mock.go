// internal/player/mock.go
package player

import (
	"context"
	"net/http"
	"sync"

	"github.com/llehouerou/focusplay/internal/status"
)

// PlayCall records the arguments of one Mock.Play call.
type PlayCall struct {
	Muted        bool
	Rate         float64
	CorrectPitch bool
}

// LoadCall records the arguments of one Mock.Load call.
type LoadCall struct {
	Initial status.PlaybackStatus
	URI     string
	Cookies []*http.Cookie
}

// Mock is a test double for Engine. It is safe for concurrent use.
type Mock struct {
	mu sync.Mutex

	loaded    bool
	playing   bool
	buffering bool
	looping   bool
	released  bool
	volume    float64
	position  int64
	duration  int64
	hasDur    bool
	playable  int64
	hasPlay   bool
	sessionID int
	width     int
	height    int
	trackInfo *TrackInfo
	listener  StateListener

	loadErr   error
	loadHook  func()
	playErr   error
	playPanic any

	loadCalls    []LoadCall
	playCalls    []PlayCall
	pauseCalls   int
	seekCalls    []int64
	volumeCalls  []float64
	surfaceCalls []bool
}

// NewMock creates an unloaded mock engine.
func NewMock() *Mock {
	return &Mock{sessionID: 1}
}

func (m *Mock) Load(_ context.Context, initial status.PlaybackStatus, uri string, cookies []*http.Cookie) error {
	m.mu.Lock()
	m.loadCalls = append(m.loadCalls, LoadCall{Initial: initial, URI: uri, Cookies: cookies})
	hook, err := m.loadHook, m.loadErr
	m.mu.Unlock()

	if hook != nil {
		hook()
	}
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.loaded = true
	m.looping = initial.IsLooping
	return nil
}

func (m *Mock) Play(muted bool, rate float64, correctPitch bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls = append(m.playCalls, PlayCall{Muted: muted, Rate: rate, CorrectPitch: correctPitch})
	if m.playPanic != nil {
		panic(m.playPanic)
	}
	if m.playErr != nil {
		return m.playErr
	}
	m.playing = true
	return nil
}

func (m *Mock) PauseImmediately() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.pauseCalls++
	m.playing = false
}

func (m *Mock) SeekTo(positionMillis int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seekCalls = append(m.seekCalls, positionMillis)
	m.position = positionMillis
	return nil
}

func (m *Mock) SetVolume(volume float64) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.volumeCalls = append(m.volumeCalls, volume)
	m.volume = volume
}

func (m *Mock) SetLooping(looping bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.looping = looping
}

func (m *Mock) Loaded() bool    { return m.get(func() bool { return m.loaded }) }
func (m *Mock) Playing() bool   { return m.get(func() bool { return m.playing }) }
func (m *Mock) Buffering() bool { return m.get(func() bool { return m.buffering }) }
func (m *Mock) Looping() bool   { return m.get(func() bool { return m.looping }) }

func (m *Mock) get(fn func() bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return fn()
}

func (m *Mock) Duration() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration, m.hasDur
}

func (m *Mock) CurrentPosition() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position, m.loaded
}

func (m *Mock) PlayableDuration() (int64, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.playable, m.hasPlay
}

func (m *Mock) AudioSessionID() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.sessionID
}

func (m *Mock) VideoSize() (width, height int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.width, m.height
}

func (m *Mock) ImplementationName() string { return "mock" }

func (m *Mock) TrackInfo() *TrackInfo {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.trackInfo
}

func (m *Mock) SetSurface(_ Surface, playing bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.surfaceCalls = append(m.surfaceCalls, playing)
}

func (m *Mock) SetStateListener(l StateListener) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listener = l
}

func (m *Mock) Release() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.released = true
	m.loaded = false
	m.playing = false
}

// Test helpers

func (m *Mock) SetLoadError(err error) { m.set(func() { m.loadErr = err }) }

// SetLoadHook runs fn inside Load before it returns.
func (m *Mock) SetLoadHook(fn func()) { m.set(func() { m.loadHook = fn }) }

func (m *Mock) SetPlayError(err error) { m.set(func() { m.playErr = err }) }

// SetPlayPanic makes Play panic with v.
func (m *Mock) SetPlayPanic(v any) { m.set(func() { m.playPanic = v }) }

func (m *Mock) SetBuffering(b bool) { m.set(func() { m.buffering = b }) }

func (m *Mock) SetPosition(ms int64) { m.set(func() { m.position = ms }) }

// SetDuration sets the duration; a negative value means unknown.
func (m *Mock) SetDuration(ms int64) {
	m.set(func() { m.duration, m.hasDur = max(ms, 0), ms >= 0 })
}

// SetPlayableDuration sets the buffered duration; negative means unknown.
func (m *Mock) SetPlayableDuration(ms int64) {
	m.set(func() { m.playable, m.hasPlay = max(ms, 0), ms >= 0 })
}

func (m *Mock) SetVideoSize(w, h int) { m.set(func() { m.width, m.height = w, h }) }

func (m *Mock) SetTrackInfo(info *TrackInfo) { m.set(func() { m.trackInfo = info }) }

func (m *Mock) set(fn func()) {
	m.mu.Lock()
	defer m.mu.Unlock()
	fn()
}

func (m *Mock) LoadCalls() []LoadCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]LoadCall(nil), m.loadCalls...)
}

func (m *Mock) PlayCalls() []PlayCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]PlayCall(nil), m.playCalls...)
}

func (m *Mock) PauseCalls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.pauseCalls
}

func (m *Mock) SeekCalls() []int64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]int64(nil), m.seekCalls...)
}

func (m *Mock) VolumeCalls() []float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]float64(nil), m.volumeCalls...)
}

func (m *Mock) SurfaceCalls() []bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]bool(nil), m.surfaceCalls...)
}

func (m *Mock) Volume() float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.volume
}

func (m *Mock) Released() bool { return m.get(func() bool { return m.released }) }

func (m *Mock) stateListener() StateListener {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.listener
}

// SimulateCompleted simulates natural end of media: playback stops unless
// looping, then OnCompleted fires.
func (m *Mock) SimulateCompleted() {
	m.set(func() {
		if !m.looping {
			m.playing = false
		}
	})
	if l := m.stateListener(); l != nil {
		l.OnCompleted()
	}
}

// SimulateError fires OnError with message.
func (m *Mock) SimulateError(message string) {
	if l := m.stateListener(); l != nil {
		l.OnError(message)
	}
}

// SimulateBuffering fires a start, progress and stop sequence.
func (m *Mock) SimulateBuffering(percent int) {
	l := m.stateListener()
	if l == nil {
		return
	}
	m.SetBuffering(true)
	l.OnBufferingStart()
	l.OnBuffering(percent)
	m.SetBuffering(false)
	l.OnBufferingStop()
}

// SimulateSeekCompleted fires OnSeekCompleted.
func (m *Mock) SimulateSeekCompleted() {
	if l := m.stateListener(); l != nil {
		l.OnSeekCompleted()
	}
}

// SimulateVideoSize records and reports new video dimensions.
func (m *Mock) SimulateVideoSize(w, h int) {
	m.SetVideoSize(w, h)
	if l := m.stateListener(); l != nil {
		l.OnVideoSizeChanged(w, h)
	}
}

// Verify Mock implements Engine at compile time.
var _ Engine = (*Mock)(nil)
