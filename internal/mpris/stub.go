//go:build !linux

package mpris

import (
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/playback"
)

// Adapter is a no-op on non-Linux platforms.
type Adapter struct{}

// New returns a no-op adapter on non-Linux platforms.
func New(_ playback.Service, _ *zap.Logger) (*Adapter, error) {
	return &Adapter{}, nil
}

// Close is a no-op on non-Linux platforms.
func (a *Adapter) Close() error {
	return nil
}

// FindAlbumArt finds nothing on non-Linux platforms.
func FindAlbumArt(_ string) string { return "" }
