package pong

// Snapshot contains the state of a Pong game in integer fields, stable
// enough to compare across runs.
type Snapshot struct {
	Tick     int
	BallX    int
	BallY    int
	BallVX   int // Velocity scaled by 1000 (for precision)
	BallVY   int // Velocity scaled by 1000
	Paddle1Y int
	Paddle2Y int
	Score1   int
	Score2   int
	GameOver bool
	Winner   int // 0=none, 1=Player1, 2=Player2
	Resting  bool
}

// Snapshot returns the current game state.
func (g *Game) Snapshot() Snapshot {
	return Snapshot{
		Tick:     g.ticks,
		BallX:    int(g.ballX),
		BallY:    int(g.ballY),
		BallVX:   int(g.ballVX * 1000),
		BallVY:   int(g.ballVY * 1000),
		Paddle1Y: int(g.paddles[0].y),
		Paddle2Y: int(g.paddles[1].y),
		Score1:   g.scores[0],
		Score2:   g.scores[1],
		GameOver: g.gameOver,
		Winner:   g.winner,
		Resting:  g.resting > 0,
	}
}
