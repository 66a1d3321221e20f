package state

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/adrg/xdg"
	_ "modernc.org/sqlite" // SQLite driver
)

const (
	appName      = "focusplay"
	dbFileName   = "focusplay.db"
	saveDebounce = 500 * time.Millisecond
)

type Manager struct {
	db        *sql.DB
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   map[string]Session
}

// Open opens the session store in the XDG data directory.
func Open() (*Manager, error) {
	dbPath, err := getDBPath()
	if err != nil {
		return nil, err
	}
	return OpenPath(dbPath)
}

// OpenPath opens the session store at path, creating it if needed.
func OpenPath(path string) (*Manager, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// A single connection keeps :memory: databases alive and serializes writers.
	db.SetMaxOpenConns(1)

	if err := initSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}

	return &Manager{db: db, pending: make(map[string]Session)}, nil
}

func (m *Manager) Close() error {
	m.saveMu.Lock()
	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}
	pending := m.takePendingLocked()
	m.saveMu.Unlock()

	// Flush pending sessions
	for _, s := range pending {
		_ = saveSession(context.Background(), m.db, s)
	}

	return m.db.Close()
}

// SaveSession schedules s to be written. Rapid successive saves for the
// same URI collapse into one write.
func (m *Manager) SaveSession(s Session) {
	m.saveMu.Lock()
	defer m.saveMu.Unlock()

	m.pending[s.URI] = s

	if m.saveTimer != nil {
		m.saveTimer.Stop()
	}

	m.saveTimer = time.AfterFunc(saveDebounce, func() {
		m.saveMu.Lock()
		pending := m.takePendingLocked()
		m.saveMu.Unlock()

		for _, s := range pending {
			_ = saveSession(context.Background(), m.db, s)
		}
	})
}

// SaveSessionNow writes s immediately, dropping any pending save for it.
func (m *Manager) SaveSessionNow(ctx context.Context, s Session) error {
	m.saveMu.Lock()
	delete(m.pending, s.URI)
	m.saveMu.Unlock()

	return saveSession(ctx, m.db, s)
}

// GetSession returns the saved session for uri, or nil if there is none.
func (m *Manager) GetSession(ctx context.Context, uri string) (*Session, error) {
	return getSession(ctx, m.db, uri)
}

// DeleteSession forgets the session for uri.
func (m *Manager) DeleteSession(ctx context.Context, uri string) error {
	m.saveMu.Lock()
	delete(m.pending, uri)
	m.saveMu.Unlock()

	_, err := m.db.ExecContext(ctx, `DELETE FROM sessions WHERE uri = ?`, uri)
	return err
}

func (m *Manager) takePendingLocked() []Session {
	out := make([]Session, 0, len(m.pending))
	for uri, s := range m.pending {
		out = append(out, s)
		delete(m.pending, uri)
	}
	return out
}

func getDBPath() (string, error) {
	return xdg.DataFile(filepath.Join(appName, dbFileName))
}
