// arcade runs terminal games on a fixed-rate frame scheduler.
//
// Usage:
//
//	arcade list            - List available games
//	arcade play [game]     - Play a game in the terminal
//	arcade menu            - Pick games from an interactive menu
//	arcade bench [game]    - Run a headless stress test and print timing
//
// Global flags:
//
//	--config <path>        - Runner config YAML (default: search ~/.arcade/configs, ./configs)
//	--fps <rate>           - Override the target tick rate
//	--log-level <level>    - debug, info, warn, error
//	--difficulty <preset>  - easy, normal, hard, fixed
//	--seed <value>         - RNG seed for reproducible games (0 = time based)
//
// Every flag can also be set through an ARCADE_ environment variable, for
// example ARCADE_LOG_LEVEL=debug.
package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/games"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

var (
	// Global flags
	flagConfig     string
	flagFPS        float64
	flagLogLevel   string
	flagDifficulty string
	flagSeed       uint64
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "arcade",
	Short: "Canvas Arcade - fixed-rate terminal games",
	Long: `Canvas Arcade drives small games on a character canvas at a fixed
frame rate. Input from the keyboard, scripts or synthetic producers goes
through a bounded queue that the scheduler drains once per frame.

Available commands:
  list     - Show all available games
  play     - Play a game in the terminal
  menu     - Interactive game picker menu
  bench    - Headless stress run with timing report

Examples:
  arcade list
  arcade play pong --difficulty hard
  arcade play --fps 60
  arcade menu
  ARCADE_LOG_LEVEL=debug arcade bench snake --duration 10s`,
	SilenceUsage: true,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVar(&flagConfig, "config", "", "Path to runner config YAML")
	flags.Float64Var(&flagFPS, "fps", 0, "Target tick rate (0 = from config)")
	flags.StringVar(&flagLogLevel, "log-level", "", "Log level: debug, info, warn, error")
	flags.StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	flags.Uint64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")

	viper.SetEnvPrefix("ARCADE")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()
	if err := bindFlags(viper.GetViper(), rootCmd, globalFlags...); err != nil {
		panic(err)
	}

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(benchCmd)
}

// globalFlags are the persistent flags viper resolves, with ARCADE_ env
// fallbacks.
var globalFlags = []string{"config", "fps", "log-level", "difficulty", "seed"}

// bindFlags binds the named persistent flags of cmd to v.
func bindFlags(v *viper.Viper, cmd *cobra.Command, names ...string) error {
	for _, name := range names {
		if err := v.BindPFlag(name, cmd.PersistentFlags().Lookup(name)); err != nil {
			return fmt.Errorf("bind flag %q: %w", name, err)
		}
	}
	return nil
}

// loadConfig reads the config file and applies flag and environment
// overrides on top of it.
func loadConfig() (config.Config, error) {
	cfg, err := config.Load(viper.GetString("config"))
	if err != nil {
		return cfg, err
	}

	if viper.IsSet("fps") {
		cfg.Runner.FPS = viper.GetFloat64("fps")
	}
	if level := viper.GetString("log-level"); level != "" {
		cfg.Log.Level = level
	}
	if preset := viper.GetString("difficulty"); preset != "" {
		cfg.Difficulty = config.DifficultyPreset(preset)
		cfg.ApplyDifficulty()
	}

	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// seed returns the configured seed, or a time based one.
func seed() uint64 {
	if s := viper.GetUint64("seed"); s != 0 {
		return s
	}
	return uint64(time.Now().UnixNano())
}

// buildDirectory registers the built-in games.
func buildDirectory(cfg config.Config, seed uint64, logger *log.Logger) (*registry.Directory, error) {
	dir := registry.NewDirectory()
	if err := games.RegisterAll(dir, cfg.Games, seed, logger); err != nil {
		return nil, fmt.Errorf("register games: %w", err)
	}
	return dir, nil
}

// resolveGame picks the game from the command arguments or the config.
func resolveGame(dir *registry.Directory, cfg config.Config, args []string) (string, error) {
	key := cfg.Runner.Game
	if len(args) > 0 {
		key = args[0]
	}
	if !dir.Has(key) {
		return "", fmt.Errorf("unknown game %q (run 'arcade list' to see available games)", key)
	}
	return key, nil
}
