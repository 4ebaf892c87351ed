package games

import (
	"errors"
	"testing"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
)

func TestRegisterAll(t *testing.T) {
	dir := registry.NewDirectory()
	if err := RegisterAll(dir, config.Default().Games, 1, nil); err != nil {
		t.Fatalf("RegisterAll() error: %v", err)
	}

	infos := dir.List()
	if len(infos) != 2 {
		t.Fatalf("expected 2 games, got %d", len(infos))
	}
	if infos[0].ID != "pong" || !infos[0].Lazy {
		t.Errorf("pong should be a lazy factory entry, got %+v", infos[0])
	}
	if infos[1].ID != "snake" || infos[1].Lazy {
		t.Errorf("snake should be an instance entry, got %+v", infos[1])
	}

	g1, err := dir.Resolve("pong")
	if err != nil {
		t.Fatalf("Resolve(pong) error: %v", err)
	}
	g2, _ := dir.Resolve("pong")
	if g1 != g2 {
		t.Error("pong resolved to two different instances")
	}

	if err := RegisterAll(dir, config.Default().Games, 1, nil); !errors.Is(err, registry.ErrDuplicate) {
		t.Errorf("second RegisterAll should fail with ErrDuplicate, got %v", err)
	}
}
