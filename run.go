package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/app"
	"github.com/llehouerou/focusplay/internal/config"
	"github.com/llehouerou/focusplay/internal/cookies"
	"github.com/llehouerou/focusplay/internal/errmsg"
	"github.com/llehouerou/focusplay/internal/focus"
	"github.com/llehouerou/focusplay/internal/logger"
	"github.com/llehouerou/focusplay/internal/mpris"
	"github.com/llehouerou/focusplay/internal/notify"
	"github.com/llehouerou/focusplay/internal/playback"
	"github.com/llehouerou/focusplay/internal/player"
	"github.com/llehouerou/focusplay/internal/state"
	"github.com/llehouerou/focusplay/internal/status"
	"github.com/llehouerou/focusplay/internal/stderr"
)

const (
	httpTimeout = 30 * time.Second
	loadTimeout = time.Minute
)

func fail(op errmsg.Op, err error) error {
	return errors.New(errmsg.Format(op, err))
}

func run(ctx context.Context, uri string, opts options) error {
	var extra status.Partial
	if opts.status != "" {
		p, err := status.ParsePartial([]byte(opts.status))
		if err != nil {
			return fmt.Errorf("--status: %w", err)
		}
		extra = p
	}

	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return fail(errmsg.OpConfigLoad, err)
	}

	lc := cfg.GetLogConfig()
	log, err := logger.New(logger.Config{
		Level:      lc.Level,
		File:       lc.File,
		MaxSizeMB:  lc.MaxSizeMB,
		MaxBackups: lc.MaxBackups,
		MaxAgeDays: lc.MaxAgeDays,
		Compress:   lc.Compress,
	})
	if err != nil {
		return fail(errmsg.OpInitialize, err)
	}
	defer func() { _ = log.Sync() }()

	// Audio backends write to fd 2 directly; keep them off the TUI.
	capture, err := stderr.Start(log)
	if err != nil {
		log.Warn("stderr capture unavailable", zap.Error(err))
	} else {
		defer capture.Stop()
	}

	fc := cfg.GetFocusConfig()
	params, err := focusParams(fc)
	if err != nil {
		return fail(errmsg.OpConfigLoad, err)
	}
	sys := focus.NewProcessSystem()
	defer sys.Close()
	owner := focus.NewOwner(sys, params, log, focus.WithDuckFactor(*fc.DuckFactor))

	jar, err := cookies.NewJar(log)
	if err != nil {
		return fail(errmsg.OpInitialize, err)
	}
	jar.Add(lo.Map(cfg.Cookies, func(c config.CookieConfig, _ int) cookies.Seed {
		return cookies.Seed{URL: c.URL, Name: c.Name, Value: c.Value}
	})...)

	engine := player.NewBeepEngine(log, player.WithHTTPClient(&http.Client{
		Jar:     jar.CookieJar(),
		Timeout: httpTimeout,
	}))
	svc := playback.New(engine, owner, uri, playback.WithCookies(jar), playback.WithLogger(log))
	defer func() { _ = svc.Release() }()

	var store state.Interface
	if mgr, err := state.Open(); err != nil {
		log.Warn("session store unavailable", zap.Error(err))
	} else {
		store = mgr
		defer func() { _ = mgr.Close() }()
	}

	ps := cfg.GetPlaybackSettings()
	restored := restoreSession(ctx, store, uri, ps.Resume && !opts.fresh, opts.fresh, log)

	loadCtx, cancel := context.WithTimeout(ctx, loadTimeout)
	_, err = svc.Load(loadCtx, initialStatus(ps, restored))
	cancel()
	if err != nil {
		return fail(errmsg.OpPlaybackLoad, err)
	}
	if restored != nil {
		if pos := restored.ResumePosition(); pos > 0 {
			if err := svc.SeekTo(pos); err != nil {
				log.Warn(errmsg.Format(errmsg.OpPlaybackSeek, err))
			}
		}
	}
	if _, err := svc.SetStatus(startStatus(extra)); err != nil {
		// Focus refusal leaves the player loaded and paused.
		log.Warn(errmsg.Format(errmsg.OpPlaybackPlay, err))
	}

	if cfg.MPRISEnabled() && !opts.noMPRIS {
		adapter, err := mpris.New(svc, log)
		if err != nil {
			log.Warn(errmsg.Format(errmsg.OpMPRISStart, err))
		} else {
			defer func() { _ = adapter.Close() }()
		}
	}

	var announce *notify.Announcer
	if cfg.NotificationsEnabled() {
		n, err := notify.New()
		if err != nil {
			log.Warn(errmsg.Format(errmsg.OpNotifyStart, err))
		} else {
			announce = notify.NewAnnouncer(n, log)
		}
	}

	var lines <-chan string
	if capture != nil {
		lines = capture.Lines()
	}
	m := app.New(app.Deps{
		Service:  svc,
		Owner:    owner,
		Focus:    sys,
		State:    store,
		Log:      log,
		Announce: announce,
		AlbumArt: mpris.FindAlbumArt,
		Stderr:   lines,
		Restored: restored,
	})
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	final, err := p.Run()
	if err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return err
	}
	if fm, ok := final.(app.Model); ok && fm.QuitError() != "" {
		return errors.New(fm.QuitError())
	}
	return nil
}

// restoreSession returns the saved session for uri when resuming. With
// forget set the saved session is deleted first.
func restoreSession(ctx context.Context, store state.Interface, uri string, resume, forget bool, log *zap.Logger) *state.Session {
	if store == nil {
		return nil
	}
	if forget {
		if err := store.DeleteSession(ctx, uri); err != nil {
			log.Warn("forget saved session", zap.String("uri", uri), zap.Error(err))
		}
		return nil
	}
	if !resume {
		return nil
	}
	restored, err := store.GetSession(ctx, uri)
	if err != nil {
		log.Warn(errmsg.Format(errmsg.OpSessionLoad, err))
		return nil
	}
	return restored
}

func focusParams(fc config.FocusConfig) (focus.Params, error) {
	gain, err := focus.ParseGainMode(fc.Gain)
	if err != nil {
		return focus.Params{}, err
	}
	usage, err := focus.ParseUsage(fc.Usage)
	if err != nil {
		return focus.Params{}, err
	}
	ct, err := focus.ParseContentType(fc.ContentType)
	if err != nil {
		return focus.Params{}, err
	}
	return focus.Params{
		Gain:            gain,
		Usage:           usage,
		ContentType:     ct,
		PauseWhenDucked: fc.PauseWhenDucked,
		AcceptDelayed:   fc.AcceptDelayed == nil || *fc.AcceptDelayed,
	}, nil
}

// initialStatus is the status the source is loaded with: configured
// defaults, overridden by the saved session. Playback starts afterwards.
func initialStatus(ps config.PlaybackSettings, restored *state.Session) status.Partial {
	p := status.Partial{
		ShouldPlay:           mo.Some(false),
		Volume:               mo.Some(ps.Volume),
		Rate:                 mo.Some(ps.Rate),
		ShouldCorrectPitch:   mo.Some(ps.CorrectPitch),
		IsLooping:            mo.Some(ps.Looping),
		UpdateIntervalMillis: mo.Some(ps.UpdateIntervalMS),
	}
	if restored != nil {
		p = p.Overlay(restored.Partial())
	}
	return p
}

// startStatus is applied once the saved position is restored: it starts
// playback unless the command line says otherwise.
func startStatus(extra status.Partial) status.Partial {
	if !extra.ShouldPlay.IsPresent() {
		extra.ShouldPlay = mo.Some(true)
	}
	return extra
}

