package controller

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// DefaultHold is how long a terminal key counts as held after its last
// press or auto-repeat.
const DefaultHold = 150 * time.Millisecond

type heldKey struct {
	kind   core.InputKind
	player uint8
}

// Keyboard adapts terminal key presses to press/release pairs. Terminals
// report presses and auto-repeats but no releases, so a key is released
// once no repeat arrived for the hold duration.
type Keyboard struct {
	keys KeyMap
	out  Pusher
	hold time.Duration
	held map[heldKey]time.Time // Release deadline per held key
}

// NewKeyboard creates a keyboard adapter pushing into out. hold <= 0 selects
// DefaultHold.
func NewKeyboard(keys KeyMap, out Pusher, hold time.Duration) *Keyboard {
	if hold <= 0 {
		hold = DefaultHold
	}
	return &Keyboard{keys: keys, out: out, hold: hold, held: make(map[heldKey]time.Time)}
}

// KeyMap returns the bindings in use.
func (k *Keyboard) KeyMap() KeyMap {
	return k.keys
}

// Handle processes one key message. Host commands are returned for the
// caller; game keys are pushed as presses, once per hold. A press the queue
// refuses is not held, so the next repeat tries again and no release is sent
// for it.
func (k *Keyboard) Handle(msg tea.KeyMsg, now time.Time) HostAction {
	if action := k.keys.Action(msg); action != HostNone {
		return action
	}

	ev, ok := k.keys.Event(msg)
	if !ok {
		return HostNone
	}

	id := heldKey{ev.Kind, ev.Player}
	if _, down := k.held[id]; !down && !k.out.Push(ev) {
		return HostNone
	}
	k.held[id] = now.Add(k.hold)
	return HostNone
}

// Expire releases the keys whose hold ran out. It returns how many releases
// were pushed.
func (k *Keyboard) Expire(now time.Time) int {
	n := 0
	for id, deadline := range k.held {
		if now.Before(deadline) {
			continue
		}
		delete(k.held, id)
		k.out.Push(core.InputEvent{Kind: id.kind, Player: id.player, Pressed: false})
		n++
	}
	return n
}

// ReleaseAll releases every held key, e.g. when the host pauses.
func (k *Keyboard) ReleaseAll() {
	for id := range k.held {
		delete(k.held, id)
		k.out.Push(core.InputEvent{Kind: id.kind, Player: id.player, Pressed: false})
	}
}

// Held reports how many keys are currently held.
func (k *Keyboard) Held() int {
	return len(k.held)
}
