package controller

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// PanelConfig describes a simulated hardware panel: one push button with
// contact bounce and one rotary encoder.
type PanelConfig struct {
	Player uint8
	Press  time.Duration // Button half period; the level flips this often
	Bounce time.Duration // Noise after each flip, filtered by the debounce
	Turn   time.Duration // Interval between encoder turns, 0 disables it
	Seed   uint64
}

// PanelStats counts what a panel produced.
type PanelStats struct {
	Edges int // Debounced button edges
	Turns int // Encoder events pushed
}

// Panel drives a Button and an Encoder from a sampled signal, the way a
// GPIO poller would on real hardware.
type Panel struct {
	cfg     PanelConfig
	button  *Button
	encoder *Encoder
	rng     *rand.Rand

	start     time.Time
	nextTurn  time.Time
	level     bool
	toggledAt time.Time
	stats     PanelStats
}

// NewPanel creates a panel pushing into out. Zero durations select 80ms
// presses with 5ms of bounce.
func NewPanel(out Pusher, cfg PanelConfig) *Panel {
	if cfg.Player == 0 {
		cfg.Player = 1
	}
	if cfg.Press <= 0 {
		cfg.Press = 80 * time.Millisecond
	}
	if cfg.Bounce <= 0 {
		cfg.Bounce = 5 * time.Millisecond
	}
	return &Panel{
		cfg:     cfg,
		button:  NewButton(out, core.KindA, cfg.Player, DefaultDebounce),
		encoder: NewEncoder(out, cfg.Player),
		rng:     rand.New(rand.NewPCG(cfg.Seed, cfg.Seed^0xa5a5a5a5)),
	}
}

// Sample reads the simulated pins at now.
func (p *Panel) Sample(now time.Time) {
	if p.start.IsZero() {
		p.start = now
		p.nextTurn = now.Add(p.cfg.Turn)
	}

	level := (now.Sub(p.start)/p.cfg.Press)%2 == 1
	if level != p.level {
		p.level = level
		p.toggledAt = now
	}
	sampled := level
	if !p.toggledAt.IsZero() && now.Sub(p.toggledAt) < p.cfg.Bounce {
		sampled = p.rng.IntN(2) == 0
	}
	if p.button.Update(sampled, now) {
		p.stats.Edges++
	}

	if p.cfg.Turn > 0 && !now.Before(p.nextTurn) {
		if p.encoder.Turn(p.rng.IntN(7) - 3) {
			p.stats.Turns++
		}
		p.nextTurn = p.nextTurn.Add(p.cfg.Turn)
	}
}

// Stats returns the counts so far.
func (p *Panel) Stats() PanelStats {
	return p.stats
}

// Run samples every millisecond until ctx is done.
func (p *Panel) Run(ctx context.Context) PanelStats {
	ticker := time.NewTicker(time.Millisecond)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return p.stats
		case now := <-ticker.C:
			p.Sample(now)
		}
	}
}
