package runner

import (
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// surfaceReady reports whether the surface exists and has a backing buffer.
// Hosts may allocate the buffer after the first poll; that is a normal race
// and only delays the bind.
func (s *Scheduler) surfaceReady() bool {
	return s.surface != nil && s.surface.Valid() && s.surface.PixelBuffer() != nil
}

// ensureBound attaches the active game to the surface. On failure nothing
// changes and the next tick tries again. On success the game has been given
// its current area.
func (s *Scheduler) ensureBound() bool {
	if !s.surfaceReady() {
		if !s.notReady {
			s.logger.Warn("surface not ready; will retry", "game", s.gameKey)
			s.notReady = true
		}
		return false
	}

	if s.game == nil {
		g, err := s.dir.Resolve(s.gameKey)
		if err != nil {
			if !s.notReady {
				s.logger.Error("game not found; will retry", "game", s.gameKey, "error", err)
				s.notReady = true
			}
			return false
		}
		s.game = g
		s.bound = false
	}
	s.notReady = false

	if !s.bound {
		s.game.OnBind(s.surface)
		s.game.Reset()
		s.bound = true
		s.logger.Info("game bound", "game", s.gameKey)
	}

	s.lastW, s.lastH = s.surface.Size()
	s.game.OnResize(s.gameArea(s.lastW, s.lastH))
	return true
}

// detectResize compares the surface size with the last one seen and passes a
// change to the game without rebinding. It returns false, and schedules a
// rebind, if the surface lost its buffer.
func (s *Scheduler) detectResize() bool {
	if !s.surfaceReady() {
		s.rebindPending = true
		return false
	}

	w, h := s.surface.Size()
	if w == s.lastW && h == s.lastH {
		return true
	}
	s.lastW, s.lastH = w, h
	area := s.gameArea(w, h)
	s.logger.Debug("surface resized", "w", w, "h", h, "area", area)
	s.game.OnResize(area)
	return true
}

// gameArea returns the configured area for a w x h surface. A zero width or
// height extends to the surface edge; the result never leaves the surface.
func (s *Scheduler) gameArea(w, h int) core.Rect {
	r := s.area
	if r.W <= 0 {
		r.W = w - r.X
	}
	if r.H <= 0 {
		r.H = h - r.Y
	}
	return r.Intersect(core.NewRect(0, 0, w, h))
}
