// internal/state/interface.go
package state

import "context"

// Interface defines the state manager contract for dependency injection and testing.
type Interface interface {
	SaveSession(s Session)
	SaveSessionNow(ctx context.Context, s Session) error
	GetSession(ctx context.Context, uri string) (*Session, error)
	DeleteSession(ctx context.Context, uri string) error
	Close() error
}

// Verify Manager implements Interface at compile time.
var _ Interface = (*Manager)(nil)
