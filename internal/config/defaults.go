package config

import (
	_ "embed"
	"time"
)

//go:embed defaults/runner.yaml
var defaultRunnerYAML []byte

// DefaultYAML returns the embedded default configuration file.
func DefaultYAML() []byte {
	return defaultRunnerYAML
}

// Default returns the hard-coded configuration. It matches the embedded
// defaults/runner.yaml and is used if that fails to parse.
func Default() Config {
	return Config{
		Runner: RunnerConfig{
			Game:         "snake",
			FPS:          30,
			PollInterval: 2 * time.Millisecond,
		},
		Input: InputConfig{
			QueueCapacity: 32,
			PushTimeout:   10 * time.Millisecond,
		},
		Metrics: MetricsConfig{
			Enabled: true,
			Period:  5 * time.Second,
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
			File:   "~/.arcade/logs/arcade.log",
		},
		Difficulty: DifficultyNormal,
		Games: GamesConfig{
			Snake: SnakeConfig{
				Cols:         25,
				Rows:         11,
				MoveInterval: 0.15,
				MinInterval:  0.05,
				Speedup:      0.95,
				Difficulty: DifficultyConfig{
					Enabled: true,
					Progression: ProgressionConfig{
						Type:  "score",
						MaxAt: 30,
					},
					Scaling: ScalingConfig{SpeedMultiplier: 1.0},
				},
			},
			Pong: PongConfig{
				WinScore:     5,
				BallSpeed:    18,
				PaddleSpeed:  20,
				PaddleHeight: 5,
				AI: PongAI{
					Enabled:      true,
					MinSkill:     0.6,
					MaxSkill:     0.9,
					Margin:       0.15,
					ErrorRefresh: 20,
				},
				Difficulty: DifficultyConfig{
					Enabled: true,
					Progression: ProgressionConfig{
						Type:  "time",
						MaxAt: 9000, // 5 minutes at 30fps
					},
					Scaling: ScalingConfig{SpeedMultiplier: 0.5},
				},
			},
		},
		Source: "default",
	}
}
