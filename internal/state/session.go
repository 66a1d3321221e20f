package state

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/samber/mo"

	"github.com/llehouerou/focusplay/internal/status"
)

// maxSessions bounds the store; the least recently updated are pruned.
const maxSessions = 200

// finishedMargin is how close to the end a position counts as finished.
const finishedMargin = 2 * time.Second

// Session is the remembered playback settings and position for one URI.
type Session struct {
	URI            string
	Title          string
	Volume         float64
	Muted          bool
	Rate           float64
	CorrectPitch   bool
	Looping        bool
	PositionMillis int64
	DurationMillis int64 // 0 when unknown
	UpdatedAt      time.Time
}

// SessionFromStatus captures the intent and position of st.
func SessionFromStatus(st status.PlaybackStatus, title string, now time.Time) Session {
	return Session{
		URI:            st.URIPath,
		Title:          title,
		Volume:         st.Volume,
		Muted:          st.IsMuted,
		Rate:           st.Rate,
		CorrectPitch:   st.ShouldCorrectPitch,
		Looping:        st.IsLooping,
		PositionMillis: st.PositionMillis,
		DurationMillis: st.DurationMillis,
		UpdatedAt:      now,
	}
}

// Partial returns the saved settings as a status update. The play intent is
// not restored.
func (s Session) Partial() status.Partial {
	return status.Partial{
		IsMuted:            mo.Some(s.Muted),
		Volume:             mo.Some(s.Volume),
		Rate:               mo.Some(s.Rate),
		ShouldCorrectPitch: mo.Some(s.CorrectPitch),
		IsLooping:          mo.Some(s.Looping),
	}
}

// ResumePosition returns where playback should resume: the saved position,
// or 0 when the media had been played to (nearly) the end.
func (s Session) ResumePosition() int64 {
	if s.PositionMillis <= 0 {
		return 0
	}
	if s.DurationMillis > 0 && s.PositionMillis >= s.DurationMillis-finishedMargin.Milliseconds() {
		return 0
	}
	return s.PositionMillis
}

func getSession(ctx context.Context, db *sql.DB, uri string) (*Session, error) {
	var s Session
	var title sql.NullString
	var duration sql.NullInt64
	var updated int64

	row := db.QueryRowContext(ctx, `
		SELECT uri, title, volume, muted, rate, correct_pitch, looping,
		       position_ms, duration_ms, updated_at
		FROM sessions WHERE uri = ?
	`, uri)
	err := row.Scan(&s.URI, &title, &s.Volume, &s.Muted, &s.Rate, &s.CorrectPitch,
		&s.Looping, &s.PositionMillis, &duration, &updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil //nolint:nilnil // no saved session is not an error
	}
	if err != nil {
		return nil, err
	}

	s.Title = title.String
	s.DurationMillis = duration.Int64
	s.UpdatedAt = time.Unix(updated, 0)
	return &s, nil
}

func saveSession(ctx context.Context, db *sql.DB, s Session) error {
	if s.URI == "" {
		return errors.New("session without uri")
	}
	if s.UpdatedAt.IsZero() {
		s.UpdatedAt = time.Now()
	}

	return withTx(ctx, db, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO sessions (uri, title, volume, muted, rate, correct_pitch, looping,
			                      position_ms, duration_ms, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT(uri) DO UPDATE SET
				title = excluded.title,
				volume = excluded.volume,
				muted = excluded.muted,
				rate = excluded.rate,
				correct_pitch = excluded.correct_pitch,
				looping = excluded.looping,
				position_ms = excluded.position_ms,
				duration_ms = excluded.duration_ms,
				updated_at = excluded.updated_at
		`, s.URI, nullString(s.Title), s.Volume, s.Muted, s.Rate, s.CorrectPitch, s.Looping,
			s.PositionMillis, nullInt64(s.DurationMillis, s.DurationMillis > 0), s.UpdatedAt.Unix())
		if err != nil {
			return err
		}

		_, err = tx.ExecContext(ctx, `
			DELETE FROM sessions WHERE uri NOT IN (
				SELECT uri FROM sessions ORDER BY updated_at DESC LIMIT ?
			)
		`, maxSessions)
		return err
	})
}
