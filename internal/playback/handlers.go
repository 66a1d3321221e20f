package playback

import (
	"go.uber.org/zap"

	"github.com/llehouerou/focusplay/internal/player"
	"github.com/llehouerou/focusplay/internal/status"
)

// Focus events arrive from the focus owner on foreign goroutines; each one is
// posted to the loop and dropped if the coordinator is no longer loaded.

func (c *coordinator) HandleFocusGained() {
	c.post(func() {
		if !status.ShouldEngineRun(c.current()) {
			return
		}
		if err := c.acquireFocusAndPlay(); err != nil {
			c.log.Warn("resume after focus gain failed", zap.Error(err))
		}
		c.ReportProgress()
	})
}

// HandleFocusLost pauses. A permanent loss also clears the play intent so
// that a later gain does not restart playback on its own.
func (c *coordinator) HandleFocusLost(transient bool) {
	c.post(func() {
		s := c.current()
		if transient && s.IsMuted {
			return
		}
		c.engine.PauseImmediately()
		c.progress.Stop()
		if !transient {
			s.ShouldPlay = false
			c.store(s)
		}
		c.ReportProgress()
	})
}

func (c *coordinator) UpdateVolumeMuteAndDuck() {
	c.post(c.updateVolume)
}

// RequiresAudioFocus is safe to call from any goroutine.
func (c *coordinator) RequiresAudioFocus() bool {
	return c.State() == StateLoaded && c.engine.Playing() && !c.current().IsMuted
}

// AwaitsAudioFocus reports whether the player wants audible playback that
// has not started yet. Safe to call from any goroutine.
func (c *coordinator) AwaitsAudioFocus() bool {
	s := c.current()
	return c.State() == StateLoaded && status.ShouldEngineRun(s) && !s.IsMuted && !c.engine.Playing()
}

func (c *coordinator) OnHostPause() {
	c.post(func() {
		c.engine.PauseImmediately()
		c.progress.Stop()
		c.ReportProgress()
	})
}

func (c *coordinator) OnHostResume() {
	c.post(func() {
		if err := c.acquireFocusAndPlay(); err != nil {
			c.log.Debug("host resume did not restart playback", zap.Error(err))
		}
		c.ReportProgress()
	})
}

// engineEvents forwards engine callbacks to the coordinator loop.
type engineEvents struct{ c *coordinator }

var _ player.StateListener = engineEvents{}

func (e engineEvents) OnBufferingStart() { e.c.post(e.c.ReportProgress) }
func (e engineEvents) OnBufferingStop()  { e.c.post(e.c.ReportProgress) }
func (e engineEvents) OnSeekCompleted()  { e.c.post(e.c.ReportProgress) }
func (e engineEvents) OnStatusUpdated()  { e.c.post(e.c.ReportProgress) }

func (e engineEvents) OnBuffering(pct int) {
	e.c.post(func() {
		e.c.log.Debug("buffering", zap.Int("percent", pct))
		e.c.ReportProgress()
	})
}

// OnCompleted emits exactly one status with DidJustFinish set. Without
// looping the play intent is cleared and focus is offered back.
func (e engineEvents) OnCompleted() {
	c := e.c
	c.post(func() {
		s := c.current()
		if !s.IsLooping {
			s.ShouldPlay = false
			c.store(s)
			c.progress.Stop()
			c.owner.AbandonAudioFocusIfUnused()
		}
		st := c.Status()
		st.DidJustFinish = true
		c.broadcast(st)
		c.log.Debug("playback finished", zap.Bool("looping", s.IsLooping))
	})
}

func (e engineEvents) OnError(message string) {
	c := e.c
	c.post(func() {
		c.log.Error("engine error", zap.String("uri", c.uri), zap.String("error", message))
		c.broadcastError(ErrorEvent{
			Operation: "playback",
			URI:       c.uri,
			Err:       &EngineError{Message: message},
		})
	})
}

func (e engineEvents) OnVideoSizeChanged(width, height int) {
	c := e.c
	c.post(func() {
		c.broadcastVideoSize(VideoSize{Width: width, Height: height})
	})
}
