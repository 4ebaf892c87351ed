package runner

import (
	"math"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// Start resets the game and resumes the scheduler if it was paused.
func (s *Scheduler) Start() {
	if s.game != nil {
		s.game.Reset()
	}
	if !s.running {
		s.Resume()
	}
}

// Pause stops ticks and pauses the game. A tick in progress is not affected;
// polls return immediately until Resume. Pausing a paused scheduler does
// nothing.
func (s *Scheduler) Pause() {
	if !s.running {
		return
	}
	if s.game != nil {
		s.game.Pause()
	}
	s.running = false
	if s.metrics != nil {
		s.metrics.pause(s.clock.Now())
	}
	s.logger.Debug("paused", "game", s.gameKey)
}

// Resume restarts ticks. The time spent paused is not charged to the next
// dt, and the next tick rebinds in case the surface changed meanwhile.
func (s *Scheduler) Resume() {
	now := s.clock.Now()
	s.lastTick = now
	if s.game != nil {
		s.game.Resume()
	}
	s.running = true
	s.rebindPending = true
	if s.metrics != nil {
		s.metrics.resume(now)
	}
	s.logger.Debug("resumed", "game", s.gameKey)
}

// Toggle pauses a running scheduler or resumes a paused one.
func (s *Scheduler) Toggle() {
	if s.running {
		s.Pause()
	} else {
		s.Resume()
	}
}

// SetFPS changes the target rate. Values outside [MinFPS, MaxFPS] are
// clamped; NaN is ignored.
func (s *Scheduler) SetFPS(fps float64) {
	if math.IsNaN(fps) {
		s.logger.Warn("ignoring NaN fps", "fps", s.fps)
		return
	}
	fps = core.ClampF(fps, MinFPS, MaxFPS)
	s.fps = fps
	s.period = time.Duration(math.Round(1000/fps)) * time.Millisecond
}

// SetGame selects the game registered under key. The current game is
// detached but not destroyed, queued input is discarded, and the new game is
// bound on the next tick.
func (s *Scheduler) SetGame(key string) {
	if key == s.gameKey {
		return
	}
	s.gameKey = key
	s.detach()
	s.logger.Info("game changed; will rebind", "game", key)
}

// SetGameInstance makes g the active game directly, bypassing the
// directory. The caller owns g.
func (s *Scheduler) SetGameInstance(g registry.Game) {
	if g == nil || g == s.game {
		return
	}
	s.gameKey = g.ID()
	s.detach()
	s.game = g
	s.logger.Info("game instance changed; will rebind", "game", s.gameKey)
}

func (s *Scheduler) detach() {
	s.game = nil
	s.bound = false
	s.rebindPending = true
	s.queue.Clear()
}

// SendInput queues an event for seat 1.
func (s *Scheduler) SendInput(kind core.InputKind, pressed bool, value int16) bool {
	return s.queue.Push(core.NewInputEvent(kind, pressed, value))
}

// SendInputName queues an event named by its configuration name ("UP",
// "ROTATE_CW", ...). Unknown names are logged and nothing is queued.
func (s *Scheduler) SendInputName(name string, pressed bool, value int16) bool {
	kind, ok := core.ParseInputKind(name)
	if !ok {
		s.logger.Warn("unknown input name", "name", name)
		return false
	}
	return s.SendInput(kind, pressed, value)
}

// SendInputEvent queues ev as is.
func (s *Scheduler) SendInputEvent(ev core.InputEvent) bool {
	return s.queue.Push(ev)
}
