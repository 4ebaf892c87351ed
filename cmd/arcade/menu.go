package main

import (
	"github.com/spf13/cobra"

	"github.com/vovakirdan/canvas-arcade/internal/controller"
	"github.com/vovakirdan/canvas-arcade/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the arcade with a game picker menu",
	Long: `Start the arcade in interactive menu mode.

Use the arrow keys or w/s to navigate, Enter to select a game.
Quitting a game returns to the menu.

Controls:
  Up/Down/w/s  - Navigate menu
  Enter/Space  - Select game
  Q/Esc        - Quit

Examples:
  arcade menu
  arcade menu --fps 60 --difficulty hard`,
	Args: cobra.NoArgs,
	RunE: runMenu,
}

func init() {
	menuCmd.Flags().DurationVar(&flagHold, "hold", controller.DefaultHold, "Release a key after this long without a repeat")
}

func runMenu(_ *cobra.Command, _ []string) error {
	if err := checkTerminal(); err != nil {
		return err
	}
	cfg, err := loadConfig()
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

	current := cfg.Runner.Game
	for {
		key, err := tui.RunMenu(dir, controller.DefaultKeyMap(), current)
		if err != nil {
			return err
		}
		if key == "" {
			return nil
		}
		if err := playGame(cfg, dir, key, nil, logger); err != nil {
			return err
		}
		current = key
	}
}
