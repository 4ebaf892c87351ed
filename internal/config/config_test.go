package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

func TestEmbeddedDefaultsMatchHardcoded(t *testing.T) {
	var fromYAML Config
	require.NoError(t, yaml.Unmarshal(DefaultYAML(), &fromYAML))

	want := Default()
	want.Source = ""
	assert.Equal(t, want, fromYAML)
}

func TestLoadCustomOverlaysDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte(`
runner:
  game: pong
  fps: 60
input:
  push_timeout: 3ms
games:
  pong:
    win_score: 11
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, path, cfg.Source)
	assert.Equal(t, "pong", cfg.Runner.Game)
	assert.Equal(t, 60.0, cfg.Runner.FPS)
	assert.Equal(t, 3*time.Millisecond, cfg.Input.PushTimeout)
	assert.Equal(t, 11, cfg.Games.Pong.WinScore)

	// Untouched keys keep their defaults.
	assert.Equal(t, 32, cfg.Input.QueueCapacity)
	assert.Equal(t, 5*time.Second, cfg.Metrics.Period)
	assert.Equal(t, 25, cfg.Games.Snake.Cols)
}

func TestLoadCustomErrors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("runner: [not, a, map"), 0o644))
	_, err = Load(bad)
	assert.Error(t, err)
}

func TestLoadLocalConfigsDir(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir) // keep the user's own config out of the test
	t.Chdir(dir)

	require.NoError(t, os.MkdirAll("configs", 0o755))
	require.NoError(t, os.WriteFile(filepath.Join("configs", FileName), []byte("runner:\n  fps: 12\n"), 0o644))

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join("configs", FileName), cfg.Source)
	assert.Equal(t, 12.0, cfg.Runner.FPS)
}

func TestLoadFallsBackToEmbedded(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("HOME", dir)
	t.Chdir(dir)

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, "embedded", cfg.Source)
	assert.Equal(t, "snake", cfg.Runner.Game)
}

func TestNormalizeClamps(t *testing.T) {
	cfg := Default()
	cfg.Runner.FPS = 1000
	cfg.Runner.PollInterval = time.Second
	cfg.Input.QueueCapacity = 0
	cfg.Metrics.Period = time.Millisecond
	cfg.Games.Pong.AI.MaxSkill = 0.1

	cfg.Normalize()

	assert.Equal(t, 240.0, cfg.Runner.FPS)
	assert.Equal(t, MaxPollInterval, cfg.Runner.PollInterval)
	assert.Equal(t, 32, cfg.Input.QueueCapacity)
	assert.Equal(t, 5*time.Second, cfg.Metrics.Period)
	assert.Equal(t, cfg.Games.Pong.AI.MinSkill, cfg.Games.Pong.AI.MaxSkill)

	cfg.Runner.FPS = 0.2
	cfg.Normalize()
	assert.Equal(t, 1.0, cfg.Runner.FPS)
}

func TestValidate(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	cfg.Log.Level = "loud"
	cfg.Difficulty = "nightmare"
	cfg.Runner.Game = ""
	cfg.Games.Snake.Difficulty.Progression.Type = "moon"

	err := cfg.Validate()
	require.Error(t, err)
	for _, want := range []string{"runner.game", "loud", "nightmare", "moon"} {
		assert.Contains(t, err.Error(), want)
	}
}

func TestRunnerOptions(t *testing.T) {
	cfg := Default()
	cfg.Runner.Area = AreaConfig{X: 1, Y: 2, W: 3, H: 4}
	cfg.Runner.StartPaused = true

	opts := cfg.RunnerOptions()
	assert.Equal(t, "snake", opts.Game)
	assert.Equal(t, 30.0, opts.FPS)
	assert.Equal(t, core.NewRect(1, 2, 3, 4), opts.Area)
	assert.True(t, opts.StartPaused)
	assert.Equal(t, 32, opts.QueueCapacity)
	assert.True(t, opts.Metrics)
}

func TestApplyDifficulty(t *testing.T) {
	cfg := Default()
	cfg.Difficulty = DifficultyHard
	cfg.ApplyDifficulty()
	assert.Equal(t, 0.7, cfg.Games.Pong.Difficulty.InitialLevel)
	assert.True(t, cfg.Games.Snake.Walls)

	cfg = Default()
	cfg.Difficulty = DifficultyFixed
	cfg.ApplyDifficulty()
	assert.False(t, cfg.Games.Snake.Difficulty.Enabled)
	assert.False(t, cfg.Games.Pong.Difficulty.Enabled)
}

func TestExpandHome(t *testing.T) {
	t.Setenv("HOME", "/home/tester")
	assert.Equal(t, "/home/tester/.arcade/x.log", ExpandHome("~/.arcade/x.log"))
	assert.Equal(t, "/var/log/x.log", ExpandHome("/var/log/x.log"))
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "configs", FileName)
	require.NoError(t, WriteDefault(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultYAML(), data)

	assert.Error(t, WriteDefault(path), "existing files are not overwritten")
}
