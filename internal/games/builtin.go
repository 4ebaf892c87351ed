// Package games wires the built-in games into a directory.
package games

import (
	"errors"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/games/pong"
	"github.com/vovakirdan/canvas-arcade/internal/games/snake"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

// RegisterAll adds the built-in games to dir. Snake is registered as an
// instance the caller keeps; Pong as a factory the directory builds on first
// use. seed drives Snake's food placement.
func RegisterAll(dir *registry.Directory, cfg config.GamesConfig, seed uint64, logger *log.Logger) error {
	return errors.Join(
		dir.RegisterInstance(snake.ID, snake.New(cfg.Snake, seed, logger)),
		dir.RegisterFactory(pong.ID, "Pong", func() registry.Game {
			return pong.New(cfg.Pong, logger)
		}),
	)
}
