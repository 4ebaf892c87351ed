// Package snake implements grid Snake on a bound surface. The grid has a
// fixed number of cells that scale to the game area.
package snake

import (
	"math/rand/v2"
	"strconv"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/logging"
)

// ID is the directory key of the game.
const ID = "snake"

// Points per food.
const foodScore = 10

// Direction represents the snake's movement direction.
type Direction int

const (
	DirRight Direction = iota
	DirDown
	DirLeft
	DirUp
)

// Point represents a grid coordinate.
type Point struct {
	X, Y int
}

var noPoint = Point{X: -1, Y: -1}

// Palette
const (
	colorSnake  = core.ColorBrightGreen
	colorFood   = core.ColorBrightRed
	colorBorder = core.ColorDarkGray
	colorText   = core.ColorGreen
)

// Game implements Snake.
type Game struct {
	core.Base

	cfg        config.SnakeConfig
	difficulty *config.DifficultyManager
	rng        *rand.Rand
	logger     *log.Logger

	board core.Scoreboard
	moves int // Moves since reset
	eaten int

	snake     []Point // Head at index 0
	direction Direction
	nextDir   Direction // Applied on the next move
	food      Point

	timer        float64 // Seconds accumulated toward the next move
	baseInterval float64 // Shrinks per food
	interval     float64 // Effective seconds per move

	// Layout, recomputed on resize
	grid  core.Rect // Area-relative rect holding the cells
	cellW int
	cellH int

	// Incremental redraw state
	redraw    bool
	lastHead  Point
	lastTail  Point
	lastFood  Point
	lastScore int
}

// New creates a Snake game. The seed makes food placement reproducible.
func New(cfg config.SnakeConfig, seed uint64, logger *log.Logger) *Game {
	if cfg.Cols < 4 {
		cfg.Cols = 4
	}
	if cfg.Rows < 4 {
		cfg.Rows = 4
	}
	if logger == nil {
		logger = logging.Discard()
	}
	g := &Game{
		cfg:        cfg,
		difficulty: config.NewDifficultyManager(cfg.Difficulty),
		rng:        rand.New(rand.NewPCG(seed, seed^0x5eed)),
		logger:     logger.With("game", ID),
		board:      core.NewScoreboard(1),
		cellW:      1,
		cellH:      1,
	}
	g.Reset()
	return g
}

func (g *Game) ID() string {
	return ID
}

func (g *Game) Title() string {
	return "Snake"
}

// OnResize recomputes the cell size so the grid fills the area below the
// score line, inside the border when walls are on.
func (g *Game) OnResize(area core.Rect) {
	g.Base.OnResize(area)

	grid := core.NewRect(0, 1, area.W, area.H-1)
	if g.cfg.Walls {
		grid = core.NewRect(1, 2, area.W-2, area.H-3)
	}
	g.cellW = max(1, grid.W/g.cfg.Cols)
	g.cellH = max(1, grid.H/g.cfg.Rows)
	g.grid = grid

	g.logger.Debug("layout", "area", area, "cell_w", g.cellW, "cell_h", g.cellH)
	g.redraw = true
}

// Reset starts a new round with a three-segment snake in the middle of the
// grid heading right.
func (g *Game) Reset() {
	cx, cy := g.cfg.Cols/2, g.cfg.Rows/2
	g.snake = []Point{{cx, cy}, {cx - 1, cy}, {cx - 2, cy}}
	g.direction = DirRight
	g.nextDir = DirRight

	g.board.Reset()
	g.moves = 0
	g.eaten = 0
	g.timer = 0
	g.baseInterval = g.cfg.MoveInterval
	g.interval = g.cfg.MoveInterval

	g.lastTail = noPoint
	g.lastFood = noPoint
	g.lastScore = 0
	g.spawnFood()
	g.redraw = true
}

func (g *Game) Pause() {
	g.Base.Pause()
	g.redraw = true
}

func (g *Game) Resume() {
	g.Base.Resume()
	g.redraw = true
}

// OnInput steers the snake. START restarts and SELECT toggles pause at any
// time; everything else is ignored while paused or after game over.
func (g *Game) OnInput(ev core.InputEvent) {
	if !ev.Pressed {
		return
	}

	switch ev.Kind {
	case core.KindStart:
		g.Reset()
		return
	case core.KindSelect:
		if g.IsPaused() {
			g.Resume()
		} else {
			g.Pause()
		}
		return
	}

	if g.IsPaused() || g.board.GameOver {
		return
	}

	newDir := g.nextDir
	switch ev.Kind {
	case core.KindUp:
		newDir = DirUp
	case core.KindDown:
		newDir = DirDown
	case core.KindLeft:
		newDir = DirLeft
	case core.KindRight:
		newDir = DirRight
	case core.KindRotateCW:
		newDir = g.direction.turn(int(max(ev.Value, 1)))
	case core.KindRotateCCW:
		newDir = g.direction.turn(-int(max(ev.Value, 1)))
	}

	// Prevent instant reversal
	if !newDir.opposite(g.direction) {
		g.nextDir = newDir
	}
}

// Step moves the snake once the move interval has elapsed and draws what
// changed.
func (g *Game) Step(dt float64) {
	if !g.IsPaused() && !g.board.GameOver {
		g.timer += dt
		if g.timer >= g.interval {
			g.timer -= g.interval
			g.direction = g.nextDir
			g.move()
		}
	}
	g.render()
}

func (g *Game) move() {
	g.moves++

	head := g.snake[0].step(g.direction)
	if g.cfg.Walls {
		if head.X < 0 || head.X >= g.cfg.Cols || head.Y < 0 || head.Y >= g.cfg.Rows {
			g.gameOver("wall")
			return
		}
	} else {
		head.X = (head.X + g.cfg.Cols) % g.cfg.Cols
		head.Y = (head.Y + g.cfg.Rows) % g.cfg.Rows
	}

	if g.occupied(head) {
		g.gameOver("self")
		return
	}

	g.snake = append(g.snake, Point{})
	copy(g.snake[1:], g.snake)
	g.snake[0] = head

	if head == g.food {
		g.eaten++
		g.board.AddScore(foodScore)
		g.baseInterval = max(g.cfg.MinInterval, g.baseInterval*g.cfg.Speedup)
		g.interval = g.difficulty.Interval(g.baseInterval, g.cfg.MinInterval, g.eaten, g.moves)
		g.spawnFood()
		g.logger.Debug("food", "score", g.board.Score, "interval", g.interval)
		return
	}

	g.lastTail = g.snake[len(g.snake)-1]
	g.snake = g.snake[:len(g.snake)-1]
}

func (g *Game) gameOver(cause string) {
	g.board.GameOver = true
	g.redraw = true
	g.logger.Info("game over", "cause", cause, "score", g.board.Score, "high", g.board.HighScore)
}

// spawnFood places food on a random free cell, falling back to a scan when
// random probing keeps hitting the snake.
func (g *Game) spawnFood() {
	for range 100 {
		p := Point{g.rng.IntN(g.cfg.Cols), g.rng.IntN(g.cfg.Rows)}
		if !g.occupied(p) {
			g.food = p
			return
		}
	}
	for y := range g.cfg.Rows {
		for x := range g.cfg.Cols {
			if p := (Point{x, y}); !g.occupied(p) {
				g.food = p
				return
			}
		}
	}
	g.food = noPoint
}

func (g *Game) occupied(p Point) bool {
	for _, seg := range g.snake {
		if seg == p {
			return true
		}
	}
	return false
}

// --- Rendering ---

func (g *Game) render() {
	if !g.Drawable() {
		return
	}
	if g.redraw {
		g.renderFull()
		g.redraw = false
		return
	}

	if g.food != g.lastFood {
		if g.lastFood != noPoint && !g.occupied(g.lastFood) {
			g.drawCell(g.lastFood, core.ColorBackground)
		}
		g.drawCell(g.food, colorFood)
		g.lastFood = g.food
	}
	if g.snake[0] != g.lastHead {
		g.drawCell(g.snake[0], colorSnake)
		g.lastHead = g.snake[0]
	}
	if g.lastTail != noPoint {
		if !g.occupied(g.lastTail) {
			g.drawCell(g.lastTail, core.ColorBackground)
		}
		g.lastTail = noPoint
	}
	if g.board.Score != g.lastScore {
		g.drawScore()
	}
}

func (g *Game) renderFull() {
	g.ClearArea()
	if g.cfg.Walls {
		g.Box(core.NewRect(0, 1, g.Area().W, g.Area().H-1), colorBorder)
	}
	for _, seg := range g.snake {
		g.drawCell(seg, colorSnake)
	}
	g.drawCell(g.food, colorFood)
	g.lastFood = g.food
	g.lastHead = g.snake[0]
	g.lastTail = noPoint
	g.drawScore()

	mid := g.Area().H / 2
	switch {
	case g.board.GameOver:
		g.TextCentered(mid-1, " GAME OVER ", colorText)
		g.TextCentered(mid+1, " START to play again ", colorText)
	case g.IsPaused():
		g.TextCentered(mid, " PAUSED ", colorText)
	}
}

func (g *Game) drawScore() {
	g.Fill(0, 0, g.Area().W, 1, core.ColorBackground)
	g.Text(1, 0, "Score: "+strconv.Itoa(g.board.Score), colorText)
	if g.board.HighScore > 0 {
		hi := "Hi: " + strconv.Itoa(g.board.HighScore)
		g.Text(g.Area().W-len(hi)-1, 0, hi, colorText)
	}
	g.lastScore = g.board.Score
}

func (g *Game) drawCell(p Point, c core.Color) {
	if p == noPoint {
		return
	}
	g.Fill(g.grid.X+p.X*g.cellW, g.grid.Y+p.Y*g.cellH, g.cellW, g.cellH, c)
}

// --- Directions ---

func (p Point) step(d Direction) Point {
	switch d {
	case DirUp:
		p.Y--
	case DirDown:
		p.Y++
	case DirLeft:
		p.X--
	case DirRight:
		p.X++
	}
	return p
}

// turn rotates by n quarter turns, positive clockwise.
func (d Direction) turn(n int) Direction {
	return Direction(((int(d)+n)%4 + 4) % 4)
}

func (d Direction) opposite(other Direction) bool {
	return d.turn(2) == other
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	case DirRight:
		return "right"
	default:
		return "unknown"
	}
}
