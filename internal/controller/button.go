package controller

import (
	"math"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// DefaultDebounce is the minimum time between two accepted edges of a
// button.
const DefaultDebounce = 20 * time.Millisecond

// Button turns a sampled level (a GPIO pin, say) into press and release
// events. Edges closer than the debounce window to the last accepted edge
// are treated as contact bounce and ignored.
type Button struct {
	out      Pusher
	kind     core.InputKind
	player   uint8
	debounce time.Duration

	level    bool
	lastEdge time.Time
}

// NewButton creates a button for seat player that emits kind.
func NewButton(out Pusher, kind core.InputKind, player uint8, debounce time.Duration) *Button {
	if debounce < 0 {
		debounce = 0
	}
	return &Button{out: out, kind: kind, player: player, debounce: debounce}
}

// Update samples the level at now. It returns true if an edge was accepted
// and an event pushed.
func (b *Button) Update(level bool, now time.Time) bool {
	if level == b.level {
		return false
	}
	if !b.lastEdge.IsZero() && now.Sub(b.lastEdge) < b.debounce {
		return false
	}
	b.level = level
	b.lastEdge = now
	b.out.Push(core.InputEvent{Kind: b.kind, Player: b.player, Pressed: level})
	return true
}

// Pressed reports the debounced level.
func (b *Button) Pressed() bool {
	return b.level
}

// Encoder turns rotary encoder detents into rotation events.
type Encoder struct {
	out    Pusher
	player uint8
}

// NewEncoder creates an encoder for seat player.
func NewEncoder(out Pusher, player uint8) *Encoder {
	return &Encoder{out: out, player: player}
}

// Turn reports delta detents, positive clockwise, as one event whose value
// is the step count. Zero pushes nothing.
func (e *Encoder) Turn(delta int) bool {
	if delta == 0 {
		return false
	}
	kind := core.KindRotateCW
	if delta < 0 {
		kind = core.KindRotateCCW
		delta = -delta
	}
	steps := int16(min(delta, math.MaxInt16))
	return e.out.Push(core.InputEvent{Kind: kind, Player: e.player, Pressed: true, Value: steps})
}
