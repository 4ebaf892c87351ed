package core

// Scoreboard is the score/level/lives bookkeeping most arcade games share.
type Scoreboard struct {
	Score     int
	HighScore int
	Level     int
	Lives     int
	GameOver  bool

	startLives int
}

// NewScoreboard creates a scoreboard that starts every game with lives lives.
func NewScoreboard(lives int) Scoreboard {
	s := Scoreboard{startLives: lives}
	s.Reset()
	return s
}

// Reset starts a new game. The high score survives.
func (s *Scoreboard) Reset() {
	s.Score = 0
	s.Level = 1
	s.Lives = s.startLives
	s.GameOver = false
}

// AddScore adds points and tracks the high score.
func (s *Scoreboard) AddScore(points int) {
	s.Score += points
	if s.Score > s.HighScore {
		s.HighScore = s.Score
	}
}

// LoseLife takes a life and returns true when that ended the game.
func (s *Scoreboard) LoseLife() bool {
	if s.Lives > 0 {
		s.Lives--
	}
	if s.Lives == 0 {
		s.GameOver = true
	}
	return s.GameOver
}

func (s *Scoreboard) GainLife() {
	s.Lives++
}

func (s *Scoreboard) NextLevel() {
	s.Level++
}
