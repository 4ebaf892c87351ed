package pong

import (
	"math"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// View is what the AI may read of the game each update.
type View struct {
	AreaH   int
	BallY   float64
	BallH   int
	BallVX  float64
	PaddleY float64 // Top of the controlled paddle
	PaddleH int
}

type aiInput int

const (
	aiIdle aiInput = iota
	aiUp
	aiDown
)

// AI plays one paddle by emitting the same press and release events a
// player would. It holds at most one direction at a time and moves between
// directions through a release, so every update yields at most one event.
// Updates that need no change return a KindNone event, which callers drop.
type AI struct {
	player   uint8
	left     bool // Controls the left paddle
	margin   float64
	refresh  int
	skill    float64
	current  aiInput
	errorOff float64 // Aim offset, refreshed every refresh updates
	counter  int
	rng      uint32
}

// NewAI creates an AI for seat player. Seat 1 plays the left paddle.
func NewAI(player uint8, cfg config.PongAI) *AI {
	a := &AI{
		player:  player,
		left:    player == 1,
		margin:  cfg.Margin,
		refresh: max(1, cfg.ErrorRefresh),
		skill:   cfg.MinSkill,
		rng:     2463534242 + uint32(player)*12345,
	}
	a.Reset()
	return a
}

// Reset drops held input and aim error.
func (a *AI) Reset() {
	a.current = aiIdle
	a.errorOff = 0
	a.counter = 0
}

// SetSkill sets accuracy in [0,1]; higher skill aims closer to the ball.
func (a *AI) SetSkill(skill float64) {
	a.skill = core.ClampF(skill, 0, 1)
}

func (a *AI) Skill() float64 {
	return a.skill
}

// Update decides the input for this frame.
func (a *AI) Update(v View) core.InputEvent {
	none := core.InputEvent{Kind: core.KindNone, Player: a.player}

	toward := v.BallVX > 0
	if a.left {
		toward = v.BallVX < 0
	}

	var target float64
	if toward {
		a.counter++
		if a.counter >= a.refresh {
			a.counter = 0
			spread := float64(v.PaddleH) * (1 - a.skill) * 0.25
			a.errorOff = a.randRange(-spread, spread)
		}
		target = v.BallY + float64(v.BallH)/2 + a.errorOff
	} else {
		target = float64(v.AreaH) / 2
		a.counter = 0
		a.errorOff = 0
	}

	// Aim for the paddle body, not its edge.
	h := float64(v.PaddleH)
	margin := h * a.margin
	desired := aiIdle
	if target < v.PaddleY+margin || target > v.PaddleY+h-margin {
		if target < v.PaddleY+h/2 {
			desired = aiUp
		} else {
			desired = aiDown
		}
	}
	if desired == a.current {
		return none
	}

	switch {
	case a.current == aiUp:
		a.current = aiIdle
		return core.InputEvent{Kind: core.KindUp, Player: a.player, Pressed: false}
	case a.current == aiDown:
		a.current = aiIdle
		return core.InputEvent{Kind: core.KindDown, Player: a.player, Pressed: false}
	case desired == aiUp:
		a.current = aiUp
		return core.InputEvent{Kind: core.KindUp, Player: a.player, Pressed: true}
	default:
		a.current = aiDown
		return core.InputEvent{Kind: core.KindDown, Player: a.player, Pressed: true}
	}
}

// xorshift32
func (a *AI) next() uint32 {
	a.rng ^= a.rng << 13
	a.rng ^= a.rng >> 17
	a.rng ^= a.rng << 5
	return a.rng
}

func (a *AI) randRange(lo, hi float64) float64 {
	return lo + float64(a.next())/math.MaxUint32*(hi-lo)
}
