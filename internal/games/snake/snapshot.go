package snake

// State names the phase the game is in.
type State string

const (
	StatePlaying  State = "playing"
	StatePaused   State = "paused"
	StateGameOver State = "game_over"
)

// Snapshot captures the game state for determinism tests and debugging.
type Snapshot struct {
	Moves    int
	Score    int
	High     int
	Len      int
	Head     Point
	Dir      Direction
	Food     Point
	Interval float64
	State    State
}

// Snapshot returns the current game snapshot.
func (g *Game) Snapshot() Snapshot {
	state := StatePlaying
	switch {
	case g.board.GameOver:
		state = StateGameOver
	case g.IsPaused():
		state = StatePaused
	}

	return Snapshot{
		Moves:    g.moves,
		Score:    g.board.Score,
		High:     g.board.HighScore,
		Len:      len(g.snake),
		Head:     g.snake[0],
		Dir:      g.direction,
		Food:     g.food,
		Interval: g.interval,
		State:    state,
	}
}
