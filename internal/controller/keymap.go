// Package controller turns raw input sources into queued input events.
// Every adapter here is a producer: it only ever calls Push and may run on
// its own goroutine.
package controller

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Pusher accepts input events. The input queue implements it.
type Pusher interface {
	Push(ev core.InputEvent) bool
}

// HostAction is a keyboard command for the host rather than the game.
type HostAction int

const (
	HostNone HostAction = iota
	HostQuit
	HostPause    // Toggle the scheduler
	HostRestart  // Reset the game and resume
	HostNextGame // Switch to the next registered game
	HostFaster   // Raise the target fps
	HostSlower   // Lower the target fps
	HostHelp     // Toggle the full help view
)

// binding ties a key binding to the event it produces.
type binding struct {
	key    *key.Binding
	kind   core.InputKind
	player uint8
}

// KeyMap holds the terminal key bindings for two seats and the host.
type KeyMap struct {
	Up     key.Binding
	Down   key.Binding
	Left   key.Binding
	Right  key.Binding
	A      key.Binding
	B      key.Binding
	Start  key.Binding
	Select key.Binding

	P2Up    key.Binding
	P2Down  key.Binding
	P2Left  key.Binding
	P2Right key.Binding

	Pause    key.Binding
	Restart  key.Binding
	NextGame key.Binding
	Faster   key.Binding
	Slower   key.Binding
	Help     key.Binding
	Quit     key.Binding
}

// DefaultKeyMap returns the default bindings. Seat 1 uses the arrows or
// WASD, seat 2 uses IJKL.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Up: key.NewBinding(
			key.WithKeys("up", "w"),
			key.WithHelp("↑/w", "up"),
		),
		Down: key.NewBinding(
			key.WithKeys("down", "s"),
			key.WithHelp("↓/s", "down"),
		),
		Left: key.NewBinding(
			key.WithKeys("left", "a"),
			key.WithHelp("←/a", "left"),
		),
		Right: key.NewBinding(
			key.WithKeys("right", "d"),
			key.WithHelp("→/d", "right"),
		),
		A: key.NewBinding(
			key.WithKeys(" ", "z"),
			key.WithHelp("space/z", "A"),
		),
		B: key.NewBinding(
			key.WithKeys("x"),
			key.WithHelp("x", "B"),
		),
		Start: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "start"),
		),
		Select: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "select"),
		),
		P2Up: key.NewBinding(
			key.WithKeys("i"),
			key.WithHelp("i", "p2 up"),
		),
		P2Down: key.NewBinding(
			key.WithKeys("k"),
			key.WithHelp("k", "p2 down"),
		),
		P2Left: key.NewBinding(
			key.WithKeys("j"),
			key.WithHelp("j", "p2 left"),
		),
		P2Right: key.NewBinding(
			key.WithKeys("l"),
			key.WithHelp("l", "p2 right"),
		),
		Pause: key.NewBinding(
			key.WithKeys("p"),
			key.WithHelp("p", "pause"),
		),
		Restart: key.NewBinding(
			key.WithKeys("r"),
			key.WithHelp("r", "restart"),
		),
		NextGame: key.NewBinding(
			key.WithKeys("n"),
			key.WithHelp("n", "next game"),
		),
		Faster: key.NewBinding(
			key.WithKeys("+", "="),
			key.WithHelp("+", "fps up"),
		),
		Slower: key.NewBinding(
			key.WithKeys("-"),
			key.WithHelp("-", "fps down"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "help"),
		),
		Quit: key.NewBinding(
			key.WithKeys("q", "ctrl+c"),
			key.WithHelp("q", "quit"),
		),
	}
}

// ShortHelp returns bindings for the short help view.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Up, k.A, k.Pause, k.Restart, k.NextGame, k.Help, k.Quit}
}

// FullHelp returns bindings for the full help view.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Up, k.Down, k.Left, k.Right},
		{k.A, k.B, k.Start, k.Select},
		{k.P2Up, k.P2Down, k.P2Left, k.P2Right},
		{k.Pause, k.Restart, k.NextGame, k.Faster, k.Slower},
		{k.Help, k.Quit},
	}
}

func (k *KeyMap) gameBindings() []binding {
	return []binding{
		{&k.Up, core.KindUp, 1},
		{&k.Down, core.KindDown, 1},
		{&k.Left, core.KindLeft, 1},
		{&k.Right, core.KindRight, 1},
		{&k.A, core.KindA, 1},
		{&k.B, core.KindB, 1},
		{&k.Start, core.KindStart, 1},
		{&k.Select, core.KindSelect, 1},
		{&k.P2Up, core.KindUp, 2},
		{&k.P2Down, core.KindDown, 2},
		{&k.P2Left, core.KindLeft, 2},
		{&k.P2Right, core.KindRight, 2},
	}
}

// Event maps a key to the press event it stands for.
func (k KeyMap) Event(msg tea.KeyMsg) (core.InputEvent, bool) {
	for _, b := range k.gameBindings() {
		if key.Matches(msg, *b.key) {
			return core.InputEvent{Kind: b.kind, Player: b.player, Pressed: true}, true
		}
	}
	return core.InputEvent{Kind: core.KindNone}, false
}

// Action maps a key to a host command.
func (k KeyMap) Action(msg tea.KeyMsg) HostAction {
	switch {
	case key.Matches(msg, k.Quit):
		return HostQuit
	case key.Matches(msg, k.Pause):
		return HostPause
	case key.Matches(msg, k.Restart):
		return HostRestart
	case key.Matches(msg, k.NextGame):
		return HostNextGame
	case key.Matches(msg, k.Faster):
		return HostFaster
	case key.Matches(msg, k.Slower):
		return HostSlower
	case key.Matches(msg, k.Help):
		return HostHelp
	}
	return HostNone
}
