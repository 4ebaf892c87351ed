package config

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/logging"
	"github.com/vovakirdan/canvas-arcade/internal/runner"
)

// Limits applied by Normalize.
const (
	MaxQueueCapacity = 1024
	MinPollInterval  = time.Millisecond
	MaxPollInterval  = 50 * time.Millisecond
	MinMetricsPeriod = time.Second
)

// Normalize clamps numeric settings into their working ranges. Out-of-range
// values are corrected, not rejected.
func (c *Config) Normalize() {
	d := Default()

	if c.Runner.FPS == 0 || math.IsNaN(c.Runner.FPS) {
		c.Runner.FPS = d.Runner.FPS
	}
	c.Runner.FPS = core.ClampF(c.Runner.FPS, runner.MinFPS, runner.MaxFPS)

	if c.Runner.PollInterval <= 0 {
		c.Runner.PollInterval = d.Runner.PollInterval
	}
	c.Runner.PollInterval = min(max(c.Runner.PollInterval, MinPollInterval), MaxPollInterval)

	if c.Input.QueueCapacity <= 0 {
		c.Input.QueueCapacity = d.Input.QueueCapacity
	}
	c.Input.QueueCapacity = min(c.Input.QueueCapacity, MaxQueueCapacity)
	if c.Input.PushTimeout < 0 {
		c.Input.PushTimeout = 0
	}

	if c.Metrics.Period < MinMetricsPeriod {
		c.Metrics.Period = d.Metrics.Period
	}

	s := &c.Games.Snake
	s.Cols = core.Clamp(s.Cols, 5, 200)
	s.Rows = core.Clamp(s.Rows, 5, 100)
	if s.MoveInterval <= 0 {
		s.MoveInterval = d.Games.Snake.MoveInterval
	}
	s.MinInterval = core.ClampF(s.MinInterval, 0.01, s.MoveInterval)
	s.Speedup = core.ClampF(s.Speedup, 0.5, 1.0)

	p := &c.Games.Pong
	if p.WinScore <= 0 {
		p.WinScore = d.Games.Pong.WinScore
	}
	if p.PaddleHeight <= 0 {
		p.PaddleHeight = d.Games.Pong.PaddleHeight
	}
	p.AI.MinSkill = core.ClampF(p.AI.MinSkill, 0, 1)
	p.AI.MaxSkill = core.ClampF(p.AI.MaxSkill, p.AI.MinSkill, 1)
	p.AI.Margin = core.ClampF(p.AI.Margin, 0, 0.45)
	if p.AI.ErrorRefresh <= 0 {
		p.AI.ErrorRefresh = d.Games.Pong.AI.ErrorRefresh
	}
}

// Validate reports settings that cannot be corrected by clamping.
func (c *Config) Validate() error {
	var errs []error

	if c.Runner.Game == "" {
		errs = append(errs, errors.New("runner.game is empty"))
	}
	if c.Runner.Area.X < 0 || c.Runner.Area.Y < 0 || c.Runner.Area.W < 0 || c.Runner.Area.H < 0 {
		errs = append(errs, fmt.Errorf("runner.area has a negative field: %+v", c.Runner.Area))
	}
	if err := c.LoggingOptions("").Validate(); err != nil {
		errs = append(errs, err)
	}
	if c.Difficulty != "" && !c.Difficulty.Valid() {
		errs = append(errs, fmt.Errorf("unknown difficulty %q (easy, normal, hard, fixed)", c.Difficulty))
	}
	for name, d := range map[string]DifficultyConfig{
		"snake": c.Games.Snake.Difficulty,
		"pong":  c.Games.Pong.Difficulty,
	} {
		switch d.Progression.Type {
		case "", "score", "time", "none":
		default:
			errs = append(errs, fmt.Errorf("games.%s.difficulty.progression.type %q (score, time, none)", name, d.Progression.Type))
		}
	}

	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("config: %w", err)
	}
	return nil
}

// RunnerOptions maps the configuration onto scheduler options. Logger,
// clock and summary callback are left for the caller.
func (c *Config) RunnerOptions() runner.Options {
	a := c.Runner.Area
	return runner.Options{
		Game:          c.Runner.Game,
		FPS:           c.Runner.FPS,
		Area:          core.NewRect(a.X, a.Y, a.W, a.H),
		StartPaused:   c.Runner.StartPaused,
		QueueCapacity: c.Input.QueueCapacity,
		PushTimeout:   c.Input.PushTimeout,
		Metrics:       c.Metrics.Enabled,
		MetricsPeriod: c.Metrics.Period,
	}
}

// LoggingOptions maps the log section onto logger options.
func (c *Config) LoggingOptions(prefix string) logging.Options {
	return logging.Options{Level: c.Log.Level, Format: c.Log.Format, Prefix: prefix}
}
