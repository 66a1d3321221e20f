// Package notify provides desktop notifications via D-Bus.
package notify

import (
	"sync"

	"go.uber.org/zap"
)

// Urgency is the freedesktop notification urgency hint.
type Urgency byte

const (
	UrgencyLow      Urgency = 0
	UrgencyNormal   Urgency = 1
	UrgencyCritical Urgency = 2
)

const appName = "focusplay"

// Notification contains data for a desktop notification.
type Notification struct {
	Title      string  // Summary text (required)
	Body       string  // Body text (optional, supports basic markup)
	Icon       string  // Path to image file or icon name (optional)
	Timeout    int32   // ms, -1 = server default, 0 = never expire
	ReplacesID uint32  // 0 = new notification, >0 = replace existing
	Urgency    Urgency // Low, Normal, Critical
}

// Notifier sends desktop notifications.
type Notifier interface {
	// Notify sends a notification and returns its ID.
	// Returns 0 and nil error if notifications are disabled or unavailable.
	Notify(n Notification) (uint32, error)
	// Close closes a notification by ID.
	Close(id uint32) error
}

// Announcer reports playback milestones of one media item. Each
// announcement replaces the previous one. A nil Announcer is silent.
type Announcer struct {
	n   Notifier
	log *zap.Logger

	mu     sync.Mutex
	lastID uint32
}

// NewAnnouncer creates an announcer sending through n.
func NewAnnouncer(n Notifier, log *zap.Logger) *Announcer {
	return &Announcer{n: n, log: log.With(zap.String("component", "notify"))}
}

// Finished announces that title played to its end.
func (a *Announcer) Finished(title, icon string) {
	a.send(Notification{
		Title:   "Finished",
		Body:    title,
		Icon:    icon,
		Timeout: -1,
		Urgency: UrgencyLow,
	})
}

// Failed announces a fatal playback error.
func (a *Announcer) Failed(title string, err error) {
	body := err.Error()
	if title != "" {
		body = title + "\n" + body
	}
	a.send(Notification{
		Title:   "Playback failed",
		Body:    body,
		Timeout: -1,
		Urgency: UrgencyCritical,
	})
}

// Dismiss closes the last announcement, if any.
func (a *Announcer) Dismiss() {
	if a == nil {
		return
	}
	a.mu.Lock()
	id := a.lastID
	a.lastID = 0
	a.mu.Unlock()
	if id == 0 {
		return
	}
	if err := a.n.Close(id); err != nil {
		a.log.Debug("close notification", zap.Error(err))
	}
}

func (a *Announcer) send(n Notification) {
	if a == nil {
		return
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	n.ReplacesID = a.lastID
	id, err := a.n.Notify(n)
	if err != nil {
		a.log.Warn("desktop notification failed", zap.String("title", n.Title), zap.Error(err))
		return
	}
	a.lastID = id
}
