package main

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/logging"
	"github.com/vovakirdan/canvas-arcade/internal/runner"
)

// override sets a viper key for the duration of the test.
func override(t *testing.T, key string, value any) {
	t.Helper()
	viper.Set(key, value)
	t.Cleanup(func() { viper.Set(key, nil) })
}

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "runner.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoadConfigOverrides(t *testing.T) {
	override(t, "config", writeConfig(t, "runner:\n  game: pong\n  fps: 50\n"))

	cfg, err := loadConfig()
	require.NoError(t, err)
	assert.Equal(t, "pong", cfg.Runner.Game)
	assert.Equal(t, 50.0, cfg.Runner.FPS)

	override(t, "fps", 1000)
	override(t, "log-level", "debug")
	override(t, "difficulty", "hard")

	cfg, err = loadConfig()
	require.NoError(t, err)
	assert.Equal(t, runner.MaxFPS, cfg.Runner.FPS, "fps is clamped after the override")
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.Equal(t, config.DifficultyHard, cfg.Difficulty)
	assert.True(t, cfg.Games.Snake.Walls, "hard turns the snake walls on")
}

func TestLoadConfigRejectsBadValues(t *testing.T) {
	override(t, "config", writeConfig(t, "runner:\n  game: snake\n"))

	override(t, "difficulty", "impossible")
	_, err := loadConfig()
	assert.Error(t, err)
}

func TestLoadConfigMissingFile(t *testing.T) {
	override(t, "config", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := loadConfig()
	assert.Error(t, err)
}

func TestResolveGame(t *testing.T) {
	cfg := config.Default()
	dir, err := buildDirectory(cfg, 1, logging.Discard())
	require.NoError(t, err)

	key, err := resolveGame(dir, cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, cfg.Runner.Game, key)

	key, err = resolveGame(dir, cfg, []string{"pong"})
	require.NoError(t, err)
	assert.Equal(t, "pong", key)

	_, err = resolveGame(dir, cfg, []string{"tetris"})
	assert.ErrorContains(t, err, "unknown game")
}

func TestIgnoreDone(t *testing.T) {
	assert.NoError(t, ignoreDone(nil))
	assert.NoError(t, ignoreDone(context.Canceled))
	assert.NoError(t, ignoreDone(context.DeadlineExceeded))
	assert.Error(t, ignoreDone(os.ErrClosed))
}

func TestBindFlags(t *testing.T) {
	assert.NoError(t, bindFlags(viper.New(), rootCmd, globalFlags...))
	assert.ErrorContains(t, bindFlags(viper.New(), rootCmd, "fps", "frame-rate"), "frame-rate")
}

func TestLoadScript(t *testing.T) {
	script, err := loadScript("")
	require.NoError(t, err)
	assert.Nil(t, script)

	path := filepath.Join(t.TempDir(), "demo.txt")
	require.NoError(t, os.WriteFile(path, []byte("# warm up\n50ms RIGHT\n100ms RIGHT release\n"), 0o644))
	script, err = loadScript(path)
	require.NoError(t, err)
	assert.Len(t, script, 2)
	assert.Equal(t, 150*time.Millisecond, script.Duration())

	require.NoError(t, os.WriteFile(path, []byte("soon RIGHT\n"), 0o644))
	_, err = loadScript(path)
	assert.ErrorContains(t, err, "line 1")

	_, err = loadScript(filepath.Join(t.TempDir(), "missing.txt"))
	assert.ErrorContains(t, err, "read script")
}
