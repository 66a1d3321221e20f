package player

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/gopxl/beep/v2"
	"github.com/gopxl/beep/v2/effects"
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/status"
)

// ImplementationName identifies the beep backend in status reports.
const ImplementationName = "beep"

// resampleQuality is the beep resampler quality (1-64).
const resampleQuality = 4

// seekSilence keeps the output muted briefly after a seek to hide the click.
const seekSilence = 100 * time.Millisecond

var sessionIDs atomic.Int32

// BeepEngine plays audio through gopxl/beep.
//
// The output chain is source -> loopStreamer -> Resampler -> Ctrl -> Volume.
// Chain fields are touched only under the output lock; the end-of-stream
// callback runs inside that lock and therefore never takes e.mu.
type BeepEngine struct {
	out    Output
	client *http.Client
	log    *zap.Logger

	mu         sync.Mutex
	source     beep.StreamSeekCloser
	format     beep.Format
	deviceRate beep.SampleRate
	loop       *loopStreamer
	resampler  *beep.Resampler
	ctrl       *beep.Ctrl
	volume     *effects.Volume
	attached   bool
	trackInfo  *TrackInfo
	sessionID  int
	remote     bool
	muted      bool
	level      float64
	rate       float64

	state     atomic.Int32
	buffering atomic.Bool
	released  atomic.Bool
	gen       atomic.Uint64
	listener  atomic.Pointer[listenerRef]
}

// EngineOption configures a BeepEngine.
type EngineOption func(*BeepEngine)

// WithOutput replaces the default beep speaker.
func WithOutput(o Output) EngineOption {
	return func(e *BeepEngine) { e.out = o }
}

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) EngineOption {
	return func(e *BeepEngine) { e.client = c }
}

// NewBeepEngine creates an unloaded engine.
func NewBeepEngine(log *zap.Logger, opts ...EngineOption) *BeepEngine {
	e := &BeepEngine{
		out:    defaultOutput,
		client: http.DefaultClient,
		log:    log.With(zap.String("component", "engine")),
		level:  1,
		rate:   1,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Verify BeepEngine implements Engine at compile time.
var _ Engine = (*BeepEngine)(nil)

func (e *BeepEngine) State() State { return State(e.state.Load()) }

func (e *BeepEngine) SetStateListener(l StateListener) {
	e.listener.Store(&listenerRef{l})
}

func (e *BeepEngine) notify(fn func(StateListener)) {
	if e.released.Load() {
		return
	}
	if ref := e.listener.Load(); ref != nil && ref.l != nil {
		fn(ref.l)
	}
}

// Load opens and decodes uri. A previously loaded source is detached first.
func (e *BeepEngine) Load(ctx context.Context, initial status.PlaybackStatus, uri string, cookies []*http.Cookie) error {
	if e.released.Load() {
		return ErrReleased
	}

	src, err := openSource(ctx, e.client, uri, cookies, engineBuffering{e})
	if err != nil {
		return err
	}

	kind, err := formatOf(src.name, src.contentType)
	if err != nil {
		src.Close()
		return err
	}

	info := readTrackInfo(src, uri)
	streamer, format, err := decode(src, kind)
	if err != nil {
		src.Close()
		return fmt.Errorf("decode %s: %w", kind, err)
	}

	deviceRate, err := e.out.Init(format.SampleRate)
	if err != nil {
		streamer.Close()
		return fmt.Errorf("init output: %w", err)
	}

	info.Format = strings.ToUpper(strings.TrimPrefix(kind, "."))
	info.SampleRate = int(format.SampleRate)
	info.Duration = format.SampleRate.D(streamer.Len())

	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released.Load() {
		streamer.Close()
		return ErrReleased
	}
	e.detachLocked()

	e.source = streamer
	e.format = format
	e.deviceRate = deviceRate
	e.remote = src.remote
	e.trackInfo = info
	e.sessionID = int(sessionIDs.Add(1))
	e.muted = initial.IsMuted
	e.level = clampLevel(initial.Volume)
	e.rate = initial.Rate
	if e.rate <= 0 {
		e.rate = 1
	}
	e.loop = &loopStreamer{
		source:  streamer,
		looping: initial.IsLooping,
		onWrap:  func() { e.notify(StateListener.OnStatusUpdated) },
	}
	e.buildChainLocked()
	e.state.Store(int32(Paused))

	e.log.Info("source loaded",
		zap.String("uri", uri),
		zap.String("format", info.Format),
		zap.Bool("remote", e.remote),
		zap.Int("sample_rate", info.SampleRate),
		zap.Duration("duration", info.Duration))
	return nil
}

// buildChainLocked creates a fresh, paused output chain over e.loop.
func (e *BeepEngine) buildChainLocked() {
	e.resampler = beep.ResampleRatio(resampleQuality, e.ratio(e.rate), e.loop)
	e.ctrl = &beep.Ctrl{Streamer: e.resampler, Paused: true}
	e.volume = &effects.Volume{
		Streamer: e.ctrl,
		Base:     2,
		Volume:   levelToVolume(e.level),
		Silent:   e.silent(),
	}
	e.attached = false
}

// detachLocked ends the current chain and closes its source.
func (e *BeepEngine) detachLocked() {
	e.gen.Add(1)
	if e.ctrl != nil {
		e.out.Lock()
		e.ctrl.Streamer = nil
		e.out.Unlock()
	}
	if e.source != nil {
		e.source.Close()
	}
	e.source, e.loop, e.resampler, e.ctrl, e.volume = nil, nil, nil, nil, nil
	e.attached = false
}

func (e *BeepEngine) ratio(rate float64) float64 {
	return float64(e.format.SampleRate) / float64(e.deviceRate) * rate
}

func (e *BeepEngine) silent() bool {
	return e.muted || e.level <= 0
}

// Play starts or resumes playback. After a natural end it rewinds first.
// beep has no time-stretching, so correctPitch is accepted but rate changes
// always shift pitch.
func (e *BeepEngine) Play(muted bool, rate float64, _ bool) error {
	if rate <= 0 {
		return ErrInvalidRate
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.released.Load() {
		return ErrReleased
	}
	if e.source == nil {
		return ErrNotLoaded
	}

	e.muted = muted
	e.rate = rate

	if State(e.state.Load()) == Completed {
		e.out.Lock()
		if e.source.Position() >= e.source.Len() {
			_ = e.source.Seek(0)
		}
		e.out.Unlock()
		e.buildChainLocked()
	}

	e.out.Lock()
	e.resampler.SetRatio(e.ratio(rate))
	e.ctrl.Paused = false
	e.volume.Silent = e.silent()
	e.out.Unlock()

	e.state.Store(int32(Playing))
	if !e.attached {
		gen, loop := e.gen.Load(), e.loop
		e.out.Play(beep.Seq(e.volume, beep.Callback(func() { e.onEnd(gen, loop) })))
		e.attached = true
	}
	return nil
}

// onEnd runs on the output goroutine when the chain runs dry.
func (e *BeepEngine) onEnd(gen uint64, loop *loopStreamer) {
	if e.released.Load() || gen != e.gen.Load() {
		return
	}
	e.state.CompareAndSwap(int32(Playing), int32(Completed))
	e.state.CompareAndSwap(int32(Paused), int32(Completed))

	if err := loop.Err(); err != nil {
		e.notify(func(l StateListener) { l.OnError(err.Error()) })
		return
	}
	e.notify(StateListener.OnCompleted)
}

func (e *BeepEngine) PauseImmediately() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.ctrl == nil {
		return
	}
	e.out.Lock()
	e.ctrl.Paused = true
	e.out.Unlock()
	e.state.CompareAndSwap(int32(Playing), int32(Paused))
}

// SeekTo moves to positionMillis, clamped to the source length.
func (e *BeepEngine) SeekTo(positionMillis int64) error {
	e.mu.Lock()
	if e.source == nil {
		e.mu.Unlock()
		return ErrNotLoaded
	}

	e.out.Lock()
	n := e.format.SampleRate.N(time.Duration(positionMillis) * time.Millisecond)
	n = max(0, min(n, e.source.Len()))
	e.volume.Silent = true
	err := e.source.Seek(n)
	e.out.Unlock()

	gen := e.gen.Load()
	e.mu.Unlock()

	time.AfterFunc(seekSilence, func() { e.unmuteAfterSeek(gen) })
	if err != nil {
		return fmt.Errorf("seek: %w", err)
	}
	e.notify(StateListener.OnSeekCompleted)
	return nil
}

func (e *BeepEngine) unmuteAfterSeek(gen uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if gen != e.gen.Load() || e.volume == nil {
		return
	}
	e.out.Lock()
	e.volume.Silent = e.silent()
	e.out.Unlock()
}

// SetVolume sets the output level (0.0 to 1.0).
func (e *BeepEngine) SetVolume(volume float64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.level = clampLevel(volume)
	if e.volume == nil {
		return
	}
	e.out.Lock()
	e.volume.Volume = levelToVolume(e.level)
	e.volume.Silent = e.silent()
	e.out.Unlock()
}

func (e *BeepEngine) SetLooping(looping bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.loop != nil {
		e.loop.SetLooping(looping)
	}
}

func (e *BeepEngine) Loaded() bool    { return e.State().IsLoaded() }
func (e *BeepEngine) Playing() bool   { return e.State() == Playing }
func (e *BeepEngine) Buffering() bool { return e.buffering.Load() }

func (e *BeepEngine) Looping() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.loop != nil && e.loop.Looping()
}

func (e *BeepEngine) Duration() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil || e.source.Len() <= 0 {
		return 0, false
	}
	return e.format.SampleRate.D(e.source.Len()).Milliseconds(), true
}

func (e *BeepEngine) CurrentPosition() (int64, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.source == nil {
		return 0, false
	}
	e.out.Lock()
	pos := e.source.Position()
	e.out.Unlock()
	return e.format.SampleRate.D(pos).Milliseconds(), true
}

// PlayableDuration is the whole duration once loaded: remote sources are
// fully buffered by Load.
func (e *BeepEngine) PlayableDuration() (int64, bool) {
	return e.Duration()
}

func (e *BeepEngine) AudioSessionID() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sessionID
}

// VideoSize is always zero: the engine renders audio only.
func (e *BeepEngine) VideoSize() (width, height int) { return 0, 0 }

func (e *BeepEngine) ImplementationName() string { return ImplementationName }

func (e *BeepEngine) TrackInfo() *TrackInfo {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.trackInfo
}

// SetSurface is accepted for API symmetry; there is nothing to render.
func (e *BeepEngine) SetSurface(target Surface, playing bool) {
	if target == nil {
		return
	}
	e.log.Debug("ignoring video surface",
		zap.String("surface", target.SurfaceID()),
		zap.Bool("playing", playing))
}

// Release detaches the output and closes the source. Further events are
// dropped.
func (e *BeepEngine) Release() {
	if e.released.Swap(true) {
		return
	}
	e.mu.Lock()
	defer e.mu.Unlock()
	e.detachLocked()
	e.trackInfo = nil
	e.state.Store(int32(Unloaded))
}

// engineBuffering forwards download progress to the listener.
type engineBuffering struct{ e *BeepEngine }

func (b engineBuffering) start() {
	b.e.buffering.Store(true)
	b.e.notify(StateListener.OnBufferingStart)
}

func (b engineBuffering) progress(percent int) {
	b.e.notify(func(l StateListener) { l.OnBuffering(percent) })
}

func (b engineBuffering) stop() {
	b.e.buffering.Store(false)
	b.e.notify(StateListener.OnBufferingStop)
}
