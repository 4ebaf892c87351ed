// Package runner drives one game on one surface at a target frame rate.
//
// The Scheduler never sleeps and never blocks. A host loop calls Poll as
// often as it likes; Poll decides from the measured time since the last tick
// whether a tick is due, and runs at most one. All Scheduler methods and all
// game calls belong to the goroutine that calls Poll. Other goroutines only
// push input through Input().Push.
package runner

import (
	"math"
	"time"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/input"
	"github.com/vovakirdan/canvas-arcade/internal/logging"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

const (
	MinFPS     = 1.0
	MaxFPS     = 240.0
	DefaultFPS = 30.0

	// MaxDelta caps the dt handed to Step, in seconds.
	MaxDelta = 0.1
)

// Resolver looks games up by key.
type Resolver interface {
	Resolve(key string) (registry.Game, error)
}

// Options configure a Scheduler.
type Options struct {
	Game        string    // Key resolved on first bind
	FPS         float64   // Target tick rate, clamped to [MinFPS, MaxFPS]
	Area        core.Rect // Game rectangle; zero W or H follows the surface
	StartPaused bool      // Stay idle until Resume or Start

	QueueCapacity int
	PushTimeout   time.Duration

	Metrics       bool
	MetricsPeriod time.Duration
	OnSummary     func(Summary)

	Logger *log.Logger
	Clock  Clock
}

// DefaultOptions returns the options used when nothing is configured.
func DefaultOptions() Options {
	return Options{
		Game:          "snake",
		FPS:           DefaultFPS,
		QueueCapacity: input.DefaultCapacity,
		PushTimeout:   input.DefaultPushTimeout,
		Metrics:       true,
		MetricsPeriod: DefaultMetricsPeriod,
	}
}

// Scheduler owns the tick timing, the input queue and the lifecycle of the
// active game on its surface.
type Scheduler struct {
	dir     Resolver
	surface core.Surface
	queue   *input.Queue
	clock   Clock
	logger  *log.Logger

	fps      float64
	period   time.Duration
	lastTick time.Time
	running  bool

	// Binding state.
	rebindPending bool
	bound         bool
	lastW, lastH  int
	gameKey       string
	game          registry.Game
	area          core.Rect
	notReady      bool // A not-ready warning was logged for the current streak

	metrics     *metricsWindow
	onSummary   func(Summary)
	lastSummary Summary

	events []core.InputEvent
	ticks  uint64
}

// New creates a scheduler for surface. The game is resolved from dir on the
// first tick.
func New(dir Resolver, surface core.Surface, opts Options) *Scheduler {
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = SystemClock{}
	}
	if opts.FPS == 0 || math.IsNaN(opts.FPS) {
		opts.FPS = DefaultFPS
	}

	logger := opts.Logger.With("component", "runner")
	now := opts.Clock.Now()

	s := &Scheduler{
		dir:           dir,
		surface:       surface,
		queue:         input.NewQueue(opts.QueueCapacity, opts.PushTimeout, opts.Logger),
		clock:         opts.Clock,
		logger:        logger,
		lastTick:      now,
		running:       !opts.StartPaused,
		rebindPending: !opts.StartPaused,
		gameKey:       opts.Game,
		area:          opts.Area,
		onSummary:     opts.OnSummary,
		events:        make([]core.InputEvent, 0, input.DefaultCapacity),
	}
	s.SetFPS(opts.FPS)

	if opts.Metrics {
		s.metrics = newMetricsWindow(opts.MetricsPeriod, now)
		if opts.StartPaused {
			s.metrics.pause(now)
		}
	}
	return s
}

// Poll is the host loop's entry point. It runs one tick if at least one
// period has passed since the last one and reports whether a game step ran.
// It never waits.
func (s *Scheduler) Poll() bool {
	if !s.running {
		return false
	}

	now := s.clock.Now()
	elapsed := now.Sub(s.lastTick)
	if elapsed < s.period {
		return false
	}

	// Stamp before the work so a slow step does not push later ticks back.
	s.lastTick = now
	dt := math.Min(elapsed.Seconds(), MaxDelta)
	return s.tick(dt)
}

func (s *Scheduler) tick(dt float64) bool {
	if s.rebindPending || !s.bound {
		if !s.ensureBound() {
			return false
		}
		s.rebindPending = false
	} else if !s.detectResize() {
		return false
	}

	s.events = s.queue.Drain(s.events[:0])
	for _, ev := range s.events {
		s.game.OnInput(ev)
	}

	start := s.clock.Now()
	s.game.Step(dt)
	end := s.clock.Now()
	s.ticks++

	if s.metrics != nil {
		summary, done := s.metrics.record(end, end.Sub(start), s.period, s.queue.Stats().Dropped)
		if done {
			s.lastSummary = summary
			s.logger.Debug("metrics", summary.logKeyvals()...)
			if s.onSummary != nil {
				s.onSummary(summary)
			}
		}
	}
	return true
}

// Running reports whether polls can produce ticks.
func (s *Scheduler) Running() bool {
	return s.running
}

// Period returns the target tick interval.
func (s *Scheduler) Period() time.Duration {
	return s.period
}

// FPS returns the clamped target rate.
func (s *Scheduler) FPS() float64 {
	return s.fps
}

// GameKey returns the key of the selected game.
func (s *Scheduler) GameKey() string {
	return s.gameKey
}

// Game returns the active game, or nil before the first successful bind.
func (s *Scheduler) Game() registry.Game {
	return s.game
}

// RebindPending reports whether the next tick will (re)bind first.
func (s *Scheduler) RebindPending() bool {
	return s.rebindPending
}

// Bound reports whether the active game has been attached to the surface.
func (s *Scheduler) Bound() bool {
	return s.bound
}

// Input returns the queue producers push into.
func (s *Scheduler) Input() *input.Queue {
	return s.queue
}

// Ticks returns the number of game steps run so far.
func (s *Scheduler) Ticks() uint64 {
	return s.ticks
}

// LastSummary returns the most recent metrics summary, if any window closed.
func (s *Scheduler) LastSummary() (Summary, bool) {
	return s.lastSummary, s.lastSummary.Frames > 0
}

// LogConfig logs the scheduler configuration at info level.
func (s *Scheduler) LogConfig() {
	var cw, ch int
	if s.surface != nil {
		cw, ch = s.surface.Size()
	}
	keyvals := []any{
		"game", s.gameKey,
		"area", s.area,
		"canvas_w", cw,
		"canvas_h", ch,
		"period", s.period,
		"running", s.running,
		"queue_capacity", s.queue.Cap(),
		"metrics", s.metrics != nil,
	}
	if s.metrics != nil {
		keyvals = append(keyvals, "metrics_period", s.metrics.period)
	}
	s.logger.Info("runner config", keyvals...)
}
