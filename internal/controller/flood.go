package controller

import (
	"context"
	"math/rand/v2"
	"time"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

// Flood pushes random events at a fixed rate. It exists to stress the
// queue's drop-on-full path.
type Flood struct {
	Rate   float64 // Events per second
	Player uint8   // Seat, 0 picks a random one per event
	Seed   uint64
}

// FloodStats reports what a flood run produced.
type FloodStats struct {
	Sent     int
	Accepted int
}

// Rejected is the number of events the queue refused.
func (s FloodStats) Rejected() int {
	return s.Sent - s.Accepted
}

// Run pushes until ctx is done. Events are sent in bursts so rates above the
// ticker resolution are still met.
func (f Flood) Run(ctx context.Context, out Pusher) FloodStats {
	var stats FloodStats
	if f.Rate <= 0 {
		<-ctx.Done()
		return stats
	}

	rng := rand.New(rand.NewPCG(f.Seed, f.Seed^0x9e3779b97f4a7c15))
	const tick = time.Millisecond
	perTick := f.Rate * tick.Seconds()
	budget := 0.0

	ticker := time.NewTicker(tick)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return stats
		case <-ticker.C:
		}
		budget += perTick
		for ; budget >= 1; budget-- {
			stats.Sent++
			if out.Push(f.event(rng)) {
				stats.Accepted++
			}
		}
	}
}

func (f Flood) event(rng *rand.Rand) core.InputEvent {
	player := f.Player
	if player == 0 {
		player = uint8(rng.IntN(core.MaxPlayers)) + 1
	}
	kind := core.InputKind(rng.IntN(int(core.KindNone)))
	ev := core.InputEvent{Kind: kind, Player: player, Pressed: rng.IntN(2) == 0}
	if kind == core.KindRotateCW || kind == core.KindRotateCCW {
		ev.Value = int16(rng.IntN(4) + 1)
		ev.Pressed = true
	}
	return ev
}
