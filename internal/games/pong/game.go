// Package pong implements two-paddle Pong. Seat 1 plays the left paddle;
// seat 2 plays the right one, or the computer does when the AI is enabled.
package pong

import (
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/logging"
)

// ID is the directory key of the game.
const ID = "pong"

const (
	paddleMargin = 2   // Columns between the edge and a paddle
	scoreDelay   = 0.3 // Seconds the ball rests after a point
	netRune      = '│'
)

// Vertical serve factors, cycled so rallies start at different angles.
var serveAngles = [...]float64{-1.0, -0.6, -0.3, 0.3, 0.6, 1.0}

// Palette
const (
	colorPaddle = core.ColorBrightWhite
	colorBall   = core.ColorBrightYellow
	colorNet    = core.ColorDarkGray
	colorText   = core.ColorWhite
)

type paddle struct {
	y        float64 // Top, in field rows
	vy       float64 // Rows per second this frame
	up, down bool    // Held buttons
}

// Game implements the Pong game logic.
type Game struct {
	core.Base

	cfg        config.PongConfig
	difficulty *config.DifficultyManager
	ai         *AI // Plays seat 2; nil when disabled
	logger     *log.Logger

	paddles [2]paddle
	ballX   float64
	ballY   float64
	ballVX  float64 // Columns per second
	ballVY  float64 // Rows per second
	speed   float64 // Horizontal ball speed of the current rally

	scores          [2]int
	gameOver        bool
	winner          int // 1 or 2
	lastScoredRight bool
	resting         float64 // Seconds left before the next serve
	serveIdx        int
	ticks           int

	paddleH int

	// Incremental redraw state
	redraw     bool
	lastBall   [2]int
	lastPaddle [2]int
	lastScores [2]int
}

// New creates a Pong game.
func New(cfg config.PongConfig, logger *log.Logger) *Game {
	if cfg.WinScore <= 0 {
		cfg.WinScore = 5
	}
	if logger == nil {
		logger = logging.Discard()
	}
	g := &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		logger:     logger.With("game", ID),
		paddleH:    max(2, cfg.PaddleHeight),
	}
	if cfg.AI.Enabled {
		g.ai = NewAI(2, cfg.AI)
	}
	g.Reset()
	return g
}

func (g *Game) ID() string {
	return ID
}

func (g *Game) Title() string {
	return "Pong"
}

// field returns the playfield size; row 0 of the area holds the score.
func (g *Game) field() (w, h int) {
	a := g.Area()
	return a.W, a.H - 1
}

// OnResize scales the paddles to the area and recenters everything.
func (g *Game) OnResize(area core.Rect) {
	g.Base.OnResize(area)

	_, fh := g.field()
	g.paddleH = core.Clamp(fh/4, 2, max(2, g.cfg.PaddleHeight))
	for i := range g.paddles {
		g.paddles[i].y = float64(fh-g.paddleH) / 2
	}
	g.logger.Debug("layout", "area", area, "paddle_h", g.paddleH)

	g.resetBall()
	g.redraw = true
}

// Reset starts a new match.
func (g *Game) Reset() {
	g.scores = [2]int{}
	g.gameOver = false
	g.winner = 0
	g.lastScoredRight = false
	g.resting = 0
	g.serveIdx = 0
	g.ticks = 0
	g.release()
	for i := range g.paddles {
		g.paddles[i].vy = 0
	}
	g.resetBall()
	g.redraw = true
}

func (g *Game) Pause() {
	g.Base.Pause()
	g.release()
	g.redraw = true
}

func (g *Game) Resume() {
	g.Base.Resume()
	g.redraw = true
}

// release drops every held button, the AI's included.
func (g *Game) release() {
	for i := range g.paddles {
		g.paddles[i].up, g.paddles[i].down = false, false
	}
	if g.ai != nil {
		g.ai.Reset()
	}
}

// resetBall centers the ball and serves it toward the player who conceded.
func (g *Game) resetBall() {
	fw, fh := g.field()
	if fw <= 0 || fh <= 0 {
		return
	}
	g.ballX = float64(fw-1) / 2
	g.ballY = float64(fh-1) / 2

	g.speed = g.difficulty.Speed(g.cfg.BallSpeed, max(g.scores[0], g.scores[1]), g.ticks)
	g.ballVX = g.speed
	if g.lastScoredRight {
		g.ballVX = -g.speed
	}
	g.ballVY = g.speed * 0.3 * serveAngles[g.serveIdx%len(serveAngles)]
	g.serveIdx++
}

// OnInput handles paddle buttons. START restarts a finished match or
// toggles pause.
func (g *Game) OnInput(ev core.InputEvent) {
	if ev.Kind == core.KindStart {
		if !ev.Pressed {
			return
		}
		switch {
		case g.gameOver:
			g.Reset()
		case g.IsPaused():
			g.Resume()
		default:
			g.Pause()
		}
		return
	}

	if g.gameOver || g.IsPaused() {
		return
	}
	switch {
	case ev.Player == 1:
		g.hold(0, ev)
	case ev.Player == 2 && g.ai == nil:
		g.hold(1, ev)
	}
}

func (g *Game) hold(seat int, ev core.InputEvent) {
	switch ev.Kind {
	case core.KindUp:
		g.paddles[seat].up = ev.Pressed
	case core.KindDown:
		g.paddles[seat].down = ev.Pressed
	}
}

// Step advances the rally by dt seconds.
func (g *Game) Step(dt float64) {
	if g.IsPaused() || g.gameOver {
		g.render()
		return
	}
	g.ticks++
	fw, fh := g.field()

	if g.ai != nil {
		g.ai.SetSkill(g.difficulty.Skill(g.cfg.AI.MinSkill, g.cfg.AI.MaxSkill, g.scores[0], g.ticks))
		ev := g.ai.Update(View{
			AreaH:   fh,
			BallY:   g.ballY,
			BallH:   1,
			BallVX:  g.ballVX,
			PaddleY: g.paddles[1].y,
			PaddleH: g.paddleH,
		})
		if ev.Actionable() {
			g.hold(1, ev)
		}
	}

	maxY := float64(max(0, fh-g.paddleH))
	for i := range g.paddles {
		p := &g.paddles[i]
		p.vy = 0
		switch {
		case p.up && !p.down:
			p.vy = -g.cfg.PaddleSpeed
		case p.down && !p.up:
			p.vy = g.cfg.PaddleSpeed
		}
		p.y = core.ClampF(p.y+p.vy*dt, 0, maxY)
	}

	if g.resting > 0 {
		g.resting -= dt
		if g.resting <= 0 {
			g.resetBall()
		}
		g.render()
		return
	}

	g.moveBall(dt, fw, fh)
	g.render()
}

func (g *Game) moveBall(dt float64, fw, fh int) {
	nx := g.ballX + g.ballVX*dt
	ny := g.ballY + g.ballVY*dt

	// Top/bottom bounce
	if ny <= 0 {
		ny = 0
		g.ballVY = -g.ballVY
	} else if bottom := float64(fh - 1); ny >= bottom {
		ny = bottom
		g.ballVY = -g.ballVY
	}

	leftX := float64(paddleMargin + 1)
	rightX := float64(fw - paddleMargin - 1)

	// Only a ball still in front of a paddle can hit it.
	if g.ballVX < 0 && nx <= leftX && g.ballX >= leftX && g.overlaps(ny, g.paddles[0].y) {
		nx = leftX
		g.ballVX = g.speed
		g.spin(ny, &g.paddles[0])
	}
	if g.ballVX > 0 && nx+1 >= rightX && g.ballX+1 <= rightX && g.overlaps(ny, g.paddles[1].y) {
		nx = rightX - 1
		g.ballVX = -g.speed
		g.spin(ny, &g.paddles[1])
	}

	switch {
	case nx <= 0:
		g.point(1)
	case nx+1 >= float64(fw):
		g.point(0)
	default:
		g.ballX, g.ballY = nx, ny
	}
}

func (g *Game) overlaps(ballY, paddleY float64) bool {
	return ballY+1 >= paddleY && ballY <= paddleY+float64(g.paddleH)
}

// spin bends the ball by where it hit the paddle and how the paddle moved.
func (g *Game) spin(ballY float64, p *paddle) {
	half := float64(g.paddleH) / 2
	offset := (ballY + 0.5 - (p.y + half)) / half
	g.ballVY += 0.25*offset*g.speed + 0.35*p.vy
	g.ballVY = core.ClampF(g.ballVY, -g.speed, g.speed)
}

func (g *Game) point(side int) {
	g.scores[side]++
	g.lastScoredRight = side == 1
	g.ballVX, g.ballVY = 0, 0

	if g.scores[side] >= g.cfg.WinScore {
		g.gameOver = true
		g.winner = side + 1
		g.redraw = true
		g.logger.Info("match over", "winner", g.winner, "left", g.scores[0], "right", g.scores[1])
		return
	}
	g.resting = scoreDelay
	g.logger.Debug("point", "left", g.scores[0], "right", g.scores[1])
}

// Score returns the left and right scores.
func (g *Game) Score() (left, right int) {
	return g.scores[0], g.scores[1]
}

// --- Rendering ---

func (g *Game) paddleX(seat int) int {
	if seat == 0 {
		return paddleMargin
	}
	return g.Area().W - paddleMargin - 1
}

func (g *Game) render() {
	if !g.Drawable() {
		return
	}
	if g.redraw {
		g.renderFull()
		g.redraw = false
		return
	}

	ball := [2]int{int(math.Round(g.ballX)), int(math.Round(g.ballY))}
	if ball != g.lastBall {
		g.eraseBall(g.lastBall)
		g.Glyph(ball[0], ball[1]+1, '●', colorBall)
		g.lastBall = ball
	}
	for seat := range g.paddles {
		y := int(math.Round(g.paddles[seat].y))
		if y != g.lastPaddle[seat] {
			x := g.paddleX(seat)
			g.Fill(x, g.lastPaddle[seat]+1, 1, g.paddleH, core.ColorBackground)
			g.Fill(x, y+1, 1, g.paddleH, colorPaddle)
			g.lastPaddle[seat] = y
		}
	}
	if g.scores != g.lastScores {
		g.drawScore()
	}
}

func (g *Game) renderFull() {
	g.ClearArea()
	_, fh := g.field()
	net := g.Area().W / 2
	for y := 0; y < fh; y += 2 {
		g.Glyph(net, y+1, netRune, colorNet)
	}
	g.drawScore()

	for seat := range g.paddles {
		y := int(math.Round(g.paddles[seat].y))
		g.Fill(g.paddleX(seat), y+1, 1, g.paddleH, colorPaddle)
		g.lastPaddle[seat] = y
	}
	g.lastBall = [2]int{int(math.Round(g.ballX)), int(math.Round(g.ballY))}
	g.Glyph(g.lastBall[0], g.lastBall[1]+1, '●', colorBall)

	mid := g.Area().H / 2
	switch {
	case g.gameOver:
		winner := "PLAYER 1 WINS"
		if g.winner == 2 {
			winner = "PLAYER 2 WINS"
			if g.ai != nil {
				winner = "CPU WINS"
			}
		}
		g.TextCentered(mid-1, " "+winner+" ", colorText)
		g.TextCentered(mid+1, " START to play again ", colorText)
	case g.IsPaused():
		g.TextCentered(mid, " PAUSED ", colorText)
	}
}

// eraseBall blanks the ball's old cell, restoring the net under it.
func (g *Game) eraseBall(at [2]int) {
	if at[0] == g.Area().W/2 && at[1]%2 == 0 {
		g.Glyph(at[0], at[1]+1, netRune, colorNet)
		return
	}
	g.Fill(at[0], at[1]+1, 1, 1, core.ColorBackground)
}

func (g *Game) drawScore() {
	g.Fill(0, 0, g.Area().W, 1, core.ColorBackground)
	g.TextCentered(0, fmt.Sprintf("%d - %d", g.scores[0], g.scores[1]), colorText)
	g.lastScores = g.scores
}
