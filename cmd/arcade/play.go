package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/controller"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/logging"
	"github.com/vovakirdan/canvas-arcade/internal/platform/tui"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
	"github.com/vovakirdan/canvas-arcade/internal/runner"
)

// Smallest terminal the games lay out in.
const (
	minTermW = 30
	minTermH = 12
)

var (
	flagHold   time.Duration
	flagScript string
)

var playCmd = &cobra.Command{
	Use:   "play [game]",
	Short: "Play a game",
	Long: `Start playing a game in the terminal. Without an argument the
config's runner.game is used.

Controls:
  Arrows/WASD  - Player 1
  IJKL         - Player 2 (when the computer is not playing it)
  Space/Z, X   - Buttons A, B
  Enter        - Start
  Tab          - Select
  P            - Pause the scheduler
  R            - Restart the game
  N            - Next game
  +/-          - Faster/slower tick rate
  ?            - Toggle help
  Q/Ctrl+C     - Quit

Terminals do not report key releases, so a held key is released after
--hold without a repeat.

--script plays a file of timed input events into the game alongside the
keyboard, one "<delay> <KIND> [press|release] [value=N] [p=N]" per line.

Logs go to log.file from the config.

Examples:
  arcade play snake
  arcade play pong --difficulty easy
  arcade play --fps 60 --hold 200ms
  arcade play pong --script demo.txt`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPlay,
}

func init() {
	playCmd.Flags().DurationVar(&flagHold, "hold", controller.DefaultHold, "Release a key after this long without a repeat")
	playCmd.Flags().StringVar(&flagScript, "script", "", "Play timed input events from this file")
}

func runPlay(cmd *cobra.Command, args []string) error {
	if err := checkTerminal(); err != nil {
		return err
	}
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	script, err := loadScript(flagScript)
	if err != nil {
		return err
	}
	logger, closer, err := openSessionLog(cfg)
	if err != nil {
		return err
	}
	defer closer.Close()

	dir, err := buildDirectory(cfg, seed(), logger)
	if err != nil {
		return err
	}
	key, err := resolveGame(dir, cfg, args)
	if err != nil {
		return err
	}
	return playGame(cfg, dir, key, script, logger)
}

// checkTerminal fails unless stdout is a terminal big enough for the games.
func checkTerminal() error {
	fd := int(os.Stdout.Fd())
	if !term.IsTerminal(fd) {
		return errors.New("play needs a terminal; use 'arcade bench' for headless runs")
	}
	if w, h, err := term.GetSize(fd); err == nil && (w < minTermW || h < minTermH) {
		return fmt.Errorf("terminal is %dx%d, need at least %dx%d", w, h, minTermW, minTermH)
	}
	return nil
}

// openSessionLog opens the log file; stdout belongs to the screen.
func openSessionLog(cfg config.Config) (*log.Logger, io.Closer, error) {
	logger, closer, err := logging.OpenFile(config.ExpandHome(cfg.Log.File), cfg.LoggingOptions("arcade"))
	if err != nil {
		return nil, nil, err
	}
	logger.Info("session start", "config", cfg.Source, "difficulty", cfg.Difficulty)
	return logger, closer, nil
}

// loadScript reads and parses an input script. An empty path is no script.
func loadScript(path string) (controller.Script, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	script, err := controller.ParseScript(string(data))
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return script, nil
}

// playGame runs one TUI session of key until the user quits. A non-empty
// script plays into the input queue until it ends or the session does.
func playGame(cfg config.Config, dir *registry.Directory, key string, script controller.Script, logger *log.Logger) error {
	// The TUI sizes the canvas from the first window size message.
	canvas := core.NewCanvas(0, 0)
	defer canvas.Close()

	opts := cfg.RunnerOptions()
	opts.Game = key
	opts.Logger = logger
	sched := runner.New(dir, canvas, opts)
	sched.LogConfig()

	// Cancel first, then wait for the script to notice.
	var wg sync.WaitGroup
	defer wg.Wait()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if len(script) > 0 {
		logger.Info("playing script", "steps", len(script), "duration", script.Duration())
		wg.Go(func() {
			n, err := script.Run(ctx, sched.Input())
			logger.Info("script done", "accepted", n, "steps", len(script), "err", err)
		})
	}

	err := tui.Run(tui.Options{
		Scheduler:    sched,
		Directory:    dir,
		Canvas:       canvas,
		PollInterval: cfg.Runner.PollInterval,
		KeyMap:       controller.DefaultKeyMap(),
		Hold:         flagHold,
		Logger:       logger,
	})
	if err != nil {
		logger.Error("tui exited", "err", err)
		return fmt.Errorf("run tui: %w", err)
	}

	stats := sched.Input().Stats()
	logger.Info("session end", "game", sched.GameKey(), "ticks", sched.Ticks(),
		"pushed", stats.Pushed, "dropped", stats.Dropped)
	return nil
}
