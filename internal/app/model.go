package app

import (
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/focus"
	"github.com/llehouerou/focusplay/internal/keymap"
	"github.com/llehouerou/focusplay/internal/notify"
	"github.com/llehouerou/focusplay/internal/playback"
	"github.com/llehouerou/focusplay/internal/state"
	"github.com/llehouerou/focusplay/internal/status"
)

const (
	seekStep   = 5 * time.Second
	volumeStep = 0.05
	rateStep   = 0.25
	minRate    = 0.25
	maxRate    = 4.0
)

// Interrupter simulates other applications taking audio focus.
type Interrupter interface {
	Interrupt(gain focus.GainMode) (end func())
}

// Deps are the collaborators of the player screen.
type Deps struct {
	Service playback.Service
	Owner   *focus.Owner
	Focus   Interrupter
	State   state.Interface
	Log     *zap.Logger

	// Announce receives finish and failure milestones; nil is silent.
	Announce *notify.Announcer
	// AlbumArt locates an icon for a media URI.
	AlbumArt func(uri string) string

	// Stderr receives native library output; nil disables the watch.
	Stderr <-chan string
	// Restored is the saved session applied at startup, if any.
	Restored *state.Session
	// Now defaults to time.Now.
	Now func() time.Time
}

// Model is the bubbletea model of the player screen.
type Model struct {
	svc    playback.Service
	owner  *focus.Owner
	sys    Interrupter
	store  state.Interface
	log    *zap.Logger
	stderr <-chan string
	now    func() time.Time

	announce *notify.Announcer
	albumArt func(string) string

	keys *keymap.Resolver
	help help.Model
	sub  *playback.Subscription

	status status.PlaybackStatus
	focus  focus.State

	// Active simulated interruption, ended by the next interrupt key.
	interruptGain   focus.GainMode
	endInterruption func()

	restored *state.Session
	savedAt  time.Time
	lastErr  string
	quitErr  string
	notice   string
	closed   bool

	width  int
	height int
}

// New creates the player screen and subscribes to the playback service.
func New(d Deps) Model {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	now := d.Now
	if now == nil {
		now = time.Now
	}
	albumArt := d.AlbumArt
	if albumArt == nil {
		albumArt = func(string) string { return "" }
	}
	return Model{
		svc:      d.Service,
		owner:    d.Owner,
		sys:      d.Focus,
		store:    d.State,
		log:      log.With(zap.String("component", "tui")),
		stderr:   d.Stderr,
		now:      now,
		announce: d.Announce,
		albumArt: albumArt,
		keys:     keymap.Default(),
		help:     help.New(),
		sub:      d.Service.Subscribe(),
		status:   d.Service.Status(),
		focus:    d.Owner.State(),
		restored: d.Restored,
	}
}

// Init starts the subscription, stderr and tick watches.
func (m Model) Init() tea.Cmd {
	return tea.Batch(m.WatchServiceEvents(), WatchStderr(m.stderr), TickCmd())
}

// Status returns the last status shown.
func (m Model) Status() status.PlaybackStatus { return m.status }

// LastError returns the error line currently shown, if any.
func (m Model) LastError() string { return m.lastErr }

// QuitError returns the failure to save the session on quit, if any.
func (m Model) QuitError() string { return m.quitErr }

// Interrupted reports whether a simulated interruption is active.
func (m Model) Interrupted() bool { return m.endInterruption != nil }
