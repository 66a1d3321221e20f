package status

import (
	"encoding/json"
	"errors"
	"fmt"
	"math"

	"github.com/samber/mo"
)

// ErrInvalidStatus is returned for a nil or malformed partial update.
var ErrInvalidStatus = errors.New("invalid status")

// Partial is a caller-supplied set of field changes.
//
// Only intent fields are present: observation fields (isLoaded, isPlaying,
// positionMillis, ...) are never caller-writable. When decoded from JSON,
// observation keys are silently ignored.
type Partial struct {
	ShouldPlay           mo.Option[bool]    `json:"shouldPlay"`
	IsMuted              mo.Option[bool]    `json:"isMuted"`
	Volume               mo.Option[float64] `json:"volume"`
	Rate                 mo.Option[float64] `json:"rate"`
	ShouldCorrectPitch   mo.Option[bool]    `json:"shouldCorrectPitch"`
	IsLooping            mo.Option[bool]    `json:"isLooping"`
	UpdateIntervalMillis mo.Option[int]     `json:"progressUpdateIntervalMillis"`
}

// IsEmpty reports whether p sets no field.
func (p Partial) IsEmpty() bool {
	return !p.ShouldPlay.IsPresent() &&
		!p.IsMuted.IsPresent() &&
		!p.Volume.IsPresent() &&
		!p.Rate.IsPresent() &&
		!p.ShouldCorrectPitch.IsPresent() &&
		!p.IsLooping.IsPresent() &&
		!p.UpdateIntervalMillis.IsPresent()
}

// Validate checks value ranges. A negative update interval is valid and
// disables periodic reporting.
func (p Partial) Validate() error {
	if v, ok := p.Volume.Get(); ok && (math.IsNaN(v) || v < 0 || v > 1) {
		return fmt.Errorf("%w: volume %v outside [0,1]", ErrInvalidStatus, v)
	}
	if r, ok := p.Rate.Get(); ok && (math.IsNaN(r) || math.IsInf(r, 0) || r < 0) {
		return fmt.Errorf("%w: rate %v must be >= 0", ErrInvalidStatus, r)
	}
	return nil
}

// Merge applies p over current field by field. Unset fields keep their
// previous value. current is not modified.
func Merge(current PlaybackStatus, p Partial) PlaybackStatus {
	next := current
	next.ShouldPlay = p.ShouldPlay.OrElse(current.ShouldPlay)
	next.IsMuted = p.IsMuted.OrElse(current.IsMuted)
	next.Volume = p.Volume.OrElse(current.Volume)
	next.Rate = p.Rate.OrElse(current.Rate)
	next.ShouldCorrectPitch = p.ShouldCorrectPitch.OrElse(current.ShouldCorrectPitch)
	next.IsLooping = p.IsLooping.OrElse(current.IsLooping)
	next.UpdateIntervalMillis = p.UpdateIntervalMillis.OrElse(current.UpdateIntervalMillis)
	return next
}

// Overlay returns p with every field set in top replacing its own.
func (p Partial) Overlay(top Partial) Partial {
	p.ShouldPlay = orOption(top.ShouldPlay, p.ShouldPlay)
	p.IsMuted = orOption(top.IsMuted, p.IsMuted)
	p.Volume = orOption(top.Volume, p.Volume)
	p.Rate = orOption(top.Rate, p.Rate)
	p.ShouldCorrectPitch = orOption(top.ShouldCorrectPitch, p.ShouldCorrectPitch)
	p.IsLooping = orOption(top.IsLooping, p.IsLooping)
	p.UpdateIntervalMillis = orOption(top.UpdateIntervalMillis, p.UpdateIntervalMillis)
	return p
}

func orOption[T any](a, b mo.Option[T]) mo.Option[T] {
	if a.IsPresent() {
		return a
	}
	return b
}

// ParsePartial decodes a JSON partial update and validates it.
func ParsePartial(data []byte) (Partial, error) {
	var p *Partial
	if err := json.Unmarshal(data, &p); err != nil {
		return Partial{}, fmt.Errorf("%w: %v", ErrInvalidStatus, err)
	}
	if p == nil {
		return Partial{}, fmt.Errorf("%w: cannot set null status", ErrInvalidStatus)
	}
	if err := p.Validate(); err != nil {
		return Partial{}, err
	}
	return *p, nil
}

// FromStatus builds a partial carrying every intent field of s.
func FromStatus(s PlaybackStatus) Partial {
	return Partial{
		ShouldPlay:           mo.Some(s.ShouldPlay),
		IsMuted:              mo.Some(s.IsMuted),
		Volume:               mo.Some(s.Volume),
		Rate:                 mo.Some(s.Rate),
		ShouldCorrectPitch:   mo.Some(s.ShouldCorrectPitch),
		IsLooping:            mo.Some(s.IsLooping),
		UpdateIntervalMillis: mo.Some(s.UpdateIntervalMillis),
	}
}
