package tui

import (
	"strings"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/canvas-arcade/internal/config"
	"github.com/vovakirdan/canvas-arcade/internal/controller"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/games"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
	"github.com/vovakirdan/canvas-arcade/internal/runner"
)

type testClock struct{ now time.Time }

func (c *testClock) Now() time.Time { return c.now }

func newTestModel(t *testing.T, startPaused bool) (Model, *testClock, *core.Canvas) {
	t.Helper()
	dir := registry.NewDirectory()
	if err := games.RegisterAll(dir, config.Default().Games, 1, nil); err != nil {
		t.Fatalf("RegisterAll() error: %v", err)
	}

	clock := &testClock{now: time.Unix(1000, 0)}
	canvas := core.NewCanvas(0, 0)
	opts := runner.DefaultOptions()
	opts.StartPaused = startPaused
	opts.Clock = clock
	sched := runner.New(dir, canvas, opts)

	m := NewModel(Options{
		Scheduler: sched,
		Directory: dir,
		Canvas:    canvas,
		KeyMap:    controller.DefaultKeyMap(),
	})
	return m, clock, canvas
}

func update(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

func TestInitStartsPolling(t *testing.T) {
	m, _, _ := newTestModel(t, false)
	if m.Init() == nil {
		t.Error("running scheduler should start the poll chain")
	}

	paused, _, _ := newTestModel(t, true)
	if paused.Init() != nil {
		t.Error("paused scheduler should not poll")
	}
}

func TestWindowSizeSizesCanvas(t *testing.T) {
	m, _, canvas := newTestModel(t, false)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 80, Height: 30})

	w, h := canvas.Size()
	if w != 80 || h != 30-m.footerHeight() {
		t.Errorf("canvas = %dx%d, expected 80x%d", w, h, 30-m.footerHeight())
	}
}

func TestPollRendersFrame(t *testing.T) {
	m, clock, _ := newTestModel(t, false)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 26})

	clock.now = clock.now.Add(100 * time.Millisecond)
	m, cmd := update(t, m, PollMsg(clock.now))
	if cmd == nil {
		t.Fatal("poll chain should continue while running")
	}
	if !m.sched.Bound() {
		t.Fatal("scheduler should bind once the canvas has a size")
	}
	if !strings.Contains(m.frame, "Score") {
		t.Errorf("frame does not show the game:\n%s", m.frame)
	}
	if !strings.Contains(m.View(), "Snake") {
		t.Error("status line should name the game")
	}
}

func TestPauseStopsPolling(t *testing.T) {
	m, clock, _ := newTestModel(t, false)
	m, _ = update(t, m, tea.WindowSizeMsg{Width: 60, Height: 26})

	m, _ = update(t, m, keyMsg("p"))
	if m.sched.Running() {
		t.Fatal("p should pause")
	}

	// The in-flight poll ends the chain.
	clock.now = clock.now.Add(time.Second)
	m, cmd := update(t, m, PollMsg(clock.now))
	if cmd != nil {
		t.Error("paused model should stop polling")
	}
	if !strings.Contains(m.View(), "PAUSED") {
		t.Error("status line should show PAUSED")
	}

	m, cmd = update(t, m, keyMsg("p"))
	if !m.sched.Running() || cmd == nil {
		t.Error("resuming should restart the poll chain")
	}
}

func TestHostKeys(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	m, _ = update(t, m, keyMsg("n"))
	if got := m.sched.GameKey(); got != "pong" {
		t.Errorf("next game = %q, expected pong", got)
	}

	m, _ = update(t, m, keyMsg("+"))
	if got := m.sched.FPS(); got != runner.DefaultFPS+fpsStep {
		t.Errorf("fps = %v after +", got)
	}
	m, _ = update(t, m, keyMsg("-"))
	m, _ = update(t, m, keyMsg("-"))
	if got := m.sched.FPS(); got != runner.DefaultFPS-fpsStep {
		t.Errorf("fps = %v after two -", got)
	}

	m, _ = update(t, m, keyMsg("?"))
	if !m.help.ShowAll {
		t.Error("? should expand the help")
	}

	m, cmd := update(t, m, keyMsg("q"))
	if cmd == nil || m.View() != "" {
		t.Error("q should quit and clear the view")
	}
}

func TestGameKeysReachQueue(t *testing.T) {
	m, _, _ := newTestModel(t, false)

	m, _ = update(t, m, tea.KeyMsg{Type: tea.KeyUp})
	if got := m.sched.Input().Len(); got != 1 {
		t.Errorf("queue length = %d, expected 1", got)
	}
}

func TestRenderCanvas(t *testing.T) {
	c := core.NewCanvas(4, 2)
	c.DrawText(0, 0, "ab", core.ColorRed)
	c.FillRect(0, 1, 4, 1, core.ColorGreen)

	out := RenderCanvas(c)
	lines := strings.Split(out, "\n")
	if len(lines) != 2 {
		t.Fatalf("expected 2 lines, got %d", len(lines))
	}
	if !strings.Contains(lines[0], "ab") {
		t.Errorf("first line = %q", lines[0])
	}
	if !strings.Contains(lines[1], "████") {
		t.Errorf("second line = %q", lines[1])
	}
}

func TestMenuPicksGame(t *testing.T) {
	dir := registry.NewDirectory()
	if err := games.RegisterAll(dir, config.Default().Games, 1, nil); err != nil {
		t.Fatalf("RegisterAll() error: %v", err)
	}
	keys := controller.DefaultKeyMap()

	m := NewMenuModel(dir, keys, "snake")
	if got := m.items[m.cursor].ID; got != "snake" {
		t.Fatalf("cursor starts on %q, expected snake", got)
	}

	next, _ := m.Update(tea.KeyMsg{Type: tea.KeyUp})
	next, _ = next.Update(tea.KeyMsg{Type: tea.KeyUp}) // Stops at the top
	m = next.(MenuModel)
	if m.cursor != 0 {
		t.Errorf("cursor = %d, expected 0", m.cursor)
	}

	next, cmd := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	m = next.(MenuModel)
	if cmd == nil || m.Selected() != m.items[0].ID {
		t.Errorf("enter should pick %q, got %q", m.items[0].ID, m.Selected())
	}

	quit, _ := NewMenuModel(dir, keys, "").Update(keyMsg("q"))
	if quit.(MenuModel).Selected() != "" {
		t.Error("quitting should not pick a game")
	}
}

func TestFrameCacheRendersDirtyRows(t *testing.T) {
	c := core.NewCanvas(3, 2)
	c.DrawText(0, 0, "abc", core.ColorWhite)
	c.DrawText(0, 1, "def", core.ColorWhite)

	var f frameCache
	full := f.update(c, core.NewRect(0, 0, 3, 2))
	if !strings.Contains(full, "abc") || !strings.Contains(full, "def") {
		t.Fatalf("full frame = %q", full)
	}

	c.DrawText(0, 0, "xyz", core.ColorWhite)
	c.DrawText(0, 1, "uvw", core.ColorWhite)
	partial := f.update(c, core.NewRect(0, 1, 3, 1))
	if !strings.Contains(partial, "abc") {
		t.Error("row outside the dirty rect should come from the cache")
	}
	if !strings.Contains(partial, "uvw") {
		t.Error("dirty row should be re-rendered")
	}

	c.Resize(4, 2)
	resized := f.update(c, core.Rect{})
	if !strings.Contains(resized, "xyz") {
		t.Error("a size change should re-render every row")
	}
}
