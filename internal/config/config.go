// Package config provides YAML-based runner and game configuration loading
// and difficulty management for the arcade.
package config

import "time"

// Config is the complete arcade configuration.
type Config struct {
	Runner     RunnerConfig     `yaml:"runner"`
	Input      InputConfig      `yaml:"input"`
	Metrics    MetricsConfig    `yaml:"metrics"`
	Log        LogConfig        `yaml:"log"`
	Difficulty DifficultyPreset `yaml:"difficulty"`
	Games      GamesConfig      `yaml:"games"`

	// Source is the file the configuration was read from, or "embedded".
	Source string `yaml:"-"`
}

// RunnerConfig defines the scheduler parameters.
type RunnerConfig struct {
	Game         string        `yaml:"game"`
	FPS          float64       `yaml:"fps"`
	StartPaused  bool          `yaml:"start_paused"`
	Area         AreaConfig    `yaml:"area"`
	PollInterval time.Duration `yaml:"poll_interval"`
}

// AreaConfig is the game rectangle inside the canvas. Zero W or H follows the
// canvas.
type AreaConfig struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
	W int `yaml:"w"`
	H int `yaml:"h"`
}

// InputConfig defines the input queue.
type InputConfig struct {
	QueueCapacity int           `yaml:"queue_capacity"`
	PushTimeout   time.Duration `yaml:"push_timeout"`
}

// MetricsConfig defines the timing report window.
type MetricsConfig struct {
	Enabled bool          `yaml:"enabled"`
	Period  time.Duration `yaml:"period"`
}

// LogConfig defines where and how much to log.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // text, json, logfmt
	File   string `yaml:"file"`   // Used by the TUI; "~" expands to the home directory
}

// GamesConfig holds the per-game sections.
type GamesConfig struct {
	Snake SnakeConfig `yaml:"snake"`
	Pong  PongConfig  `yaml:"pong"`
}

// SnakeConfig contains all configuration for Snake.
type SnakeConfig struct {
	Cols         int              `yaml:"cols"`
	Rows         int              `yaml:"rows"`
	Walls        bool             `yaml:"walls"`         // Hitting the border ends the game instead of wrapping
	MoveInterval float64          `yaml:"move_interval"` // Seconds per move at start
	MinInterval  float64          `yaml:"min_interval"`  // Fastest seconds per move
	Speedup      float64          `yaml:"speedup"`       // Interval factor applied per food eaten
	Difficulty   DifficultyConfig `yaml:"difficulty"`
}

// PongConfig contains all configuration for Pong.
type PongConfig struct {
	WinScore     int              `yaml:"win_score"`
	BallSpeed    float64          `yaml:"ball_speed"`   // Cells per second
	PaddleSpeed  float64          `yaml:"paddle_speed"` // Cells per second
	PaddleHeight int              `yaml:"paddle_height"`
	AI           PongAI           `yaml:"ai"`
	Difficulty   DifficultyConfig `yaml:"difficulty"`
}

// PongAI configures the computer player on seat 2.
type PongAI struct {
	Enabled      bool    `yaml:"enabled"`
	MinSkill     float64 `yaml:"min_skill"`     // Skill at difficulty level 0
	MaxSkill     float64 `yaml:"max_skill"`     // Skill at difficulty level 1
	Margin       float64 `yaml:"margin"`        // Fraction of the paddle kept clear of the aim point
	ErrorRefresh int     `yaml:"error_refresh"` // Updates between new aim errors
}

// DifficultyConfig defines the difficulty progression system.
type DifficultyConfig struct {
	Enabled      bool              `yaml:"enabled"`
	InitialLevel float64           `yaml:"initial_level"` // 0.0 = easy, 1.0 = hard
	Progression  ProgressionConfig `yaml:"progression"`
	Scaling      ScalingConfig     `yaml:"scaling"`
}

// ProgressionConfig defines how difficulty increases over time.
type ProgressionConfig struct {
	Type  string `yaml:"type"`   // "score", "time", or "none"
	MaxAt int    `yaml:"max_at"` // Score or ticks at which max difficulty is reached
}

// ScalingConfig defines the magnitude of difficulty changes.
type ScalingConfig struct {
	SpeedMultiplier float64 `yaml:"speed_multiplier"` // Multiplier added to speed at max difficulty
}

// DifficultyPreset represents a named difficulty level.
type DifficultyPreset string

const (
	DifficultyEasy   DifficultyPreset = "easy"
	DifficultyNormal DifficultyPreset = "normal"
	DifficultyHard   DifficultyPreset = "hard"
	DifficultyFixed  DifficultyPreset = "fixed"
)

// Valid reports whether p is one of the named presets.
func (p DifficultyPreset) Valid() bool {
	switch p {
	case DifficultyEasy, DifficultyNormal, DifficultyHard, DifficultyFixed:
		return true
	}
	return false
}

// InitialLevelForPreset returns the initial_level for a difficulty preset.
func InitialLevelForPreset(preset DifficultyPreset) float64 {
	switch preset {
	case DifficultyEasy:
		return 0.0
	case DifficultyNormal:
		return 0.3
	case DifficultyHard:
		return 0.7
	default:
		return 0.0
	}
}

// ApplyPreset sets a difficulty section from a preset. Fixed disables
// progression and keeps the configured initial level.
func ApplyPreset(cfg *DifficultyConfig, preset DifficultyPreset) {
	if preset == DifficultyFixed {
		cfg.Enabled = false
		return
	}
	cfg.Enabled = true
	cfg.InitialLevel = InitialLevelForPreset(preset)
}

// ApplyDifficulty applies c.Difficulty to every game section.
func (c *Config) ApplyDifficulty() {
	if !c.Difficulty.Valid() {
		return
	}
	ApplyPreset(&c.Games.Snake.Difficulty, c.Difficulty)
	ApplyPreset(&c.Games.Pong.Difficulty, c.Difficulty)

	switch c.Difficulty {
	case DifficultyEasy:
		c.Games.Pong.AI.MaxSkill = c.Games.Pong.AI.MinSkill
	case DifficultyHard:
		c.Games.Snake.Walls = true
	}
}
