package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/vovakirdan/canvas-arcade/internal/controller"
	"github.com/vovakirdan/canvas-arcade/internal/core"
	"github.com/vovakirdan/canvas-arcade/internal/logging"
	"github.com/vovakirdan/canvas-arcade/internal/registry"
	"github.com/vovakirdan/canvas-arcade/internal/runner"
)

// DefaultPollInterval is how often the model re-enters the scheduler.
const DefaultPollInterval = 2 * time.Millisecond

// fpsStep is the change applied by the fps up/down keys.
const fpsStep = 5

var (
	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57")).
			Padding(0, 1)
	pausedStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("229"))
	dimStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241"))
)

// Options configure the TUI host.
type Options struct {
	Scheduler    *runner.Scheduler
	Directory    *registry.Directory
	Canvas       *core.Canvas // The scheduler's surface
	PollInterval time.Duration
	KeyMap       controller.KeyMap
	Hold         time.Duration // Key auto-release, see controller.Keyboard
	Logger       *log.Logger
}

// Model is the Bubble Tea model hosting the scheduler.
type Model struct {
	sched    *runner.Scheduler
	dir      *registry.Directory
	canvas   *core.Canvas
	keyboard *controller.Keyboard
	frames   *frameCache
	help     help.Model
	logger   *log.Logger

	pollInterval time.Duration
	polling      bool // A PollMsg is in flight

	width, height int
	frame         string
	quitting      bool
}

// NewModel creates a model. The canvas is sized on the first window size
// message; until then the scheduler waits for the surface.
func NewModel(opts Options) Model {
	if opts.PollInterval <= 0 {
		opts.PollInterval = DefaultPollInterval
	}
	if opts.Logger == nil {
		opts.Logger = logging.Discard()
	}
	return Model{
		sched:        opts.Scheduler,
		dir:          opts.Directory,
		canvas:       opts.Canvas,
		keyboard:     controller.NewKeyboard(opts.KeyMap, opts.Scheduler.Input(), opts.Hold),
		frames:       &frameCache{},
		help:         help.New(),
		logger:       opts.Logger.With("component", "tui"),
		pollInterval: opts.PollInterval,
		polling:      opts.Scheduler.Running(),
	}
}

// Init starts the poll chain unless the scheduler starts paused.
func (m Model) Init() tea.Cmd {
	if m.polling {
		return pollCmd(m.pollInterval)
	}
	return nil
}

// Update handles messages and updates the model state.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.help.Width = msg.Width
		m.resizeCanvas()
		return m, nil

	case PollMsg:
		return m.handlePoll(time.Time(msg))
	}

	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch m.keyboard.Handle(msg, time.Now()) {
	case controller.HostQuit:
		m.quitting = true
		return m, tea.Quit

	case controller.HostPause:
		if m.sched.Running() {
			m.keyboard.ReleaseAll()
		}
		m.sched.Toggle()

	case controller.HostRestart:
		m.sched.Start()

	case controller.HostNextGame:
		m.keyboard.ReleaseAll()
		next := m.dir.Next(m.sched.GameKey())
		m.logger.Info("switching game", "from", m.sched.GameKey(), "to", next)
		m.sched.SetGame(next)

	case controller.HostFaster:
		m.sched.SetFPS(m.sched.FPS() + fpsStep)

	case controller.HostSlower:
		m.sched.SetFPS(m.sched.FPS() - fpsStep)

	case controller.HostHelp:
		m.help.ShowAll = !m.help.ShowAll
		m.resizeCanvas()
	}

	return m, m.ensurePolling()
}

// handlePoll re-enters the scheduler once. The chain stops while the
// scheduler is paused and restarts through ensurePolling.
func (m Model) handlePoll(now time.Time) (tea.Model, tea.Cmd) {
	m.polling = false
	if !m.sched.Running() {
		return m, nil
	}

	m.keyboard.Expire(now)
	m.sched.Poll()
	if dirty := m.canvas.TakeDirty(); !dirty.Empty() {
		m.frame = m.frames.update(m.canvas, dirty)
	}

	m.polling = true
	return m, pollCmd(m.pollInterval)
}

func (m *Model) ensurePolling() tea.Cmd {
	if m.polling || !m.sched.Running() {
		return nil
	}
	m.polling = true
	return pollCmd(m.pollInterval)
}

// resizeCanvas gives the canvas the window minus the footer. The scheduler
// notices the new size on its next tick.
func (m *Model) resizeCanvas() {
	if m.width <= 0 || m.height <= 0 {
		return
	}
	h := max(0, m.height-m.footerHeight())
	if w, ch := m.canvas.Size(); w == m.width && ch == h {
		return
	}
	m.canvas.Resize(m.width, h)
	m.canvas.TakeDirty()
	m.frame = m.frames.update(m.canvas, core.NewRect(0, 0, m.width, h))
	m.logger.Debug("canvas resized", "w", m.width, "h", h)
}

func (m Model) footerHeight() int {
	return 1 + lipgloss.Height(m.help.View(m.keyboard.KeyMap()))
}

// View renders the current state to a string for display.
func (m Model) View() string {
	if m.quitting {
		return ""
	}

	var b strings.Builder
	b.WriteString(m.frame)
	b.WriteString("\n")
	b.WriteString(m.statusLine())
	b.WriteString("\n")
	b.WriteString(dimStyle.Render(m.help.View(m.keyboard.KeyMap())))
	return b.String()
}

func (m Model) statusLine() string {
	title := m.sched.GameKey()
	if g := m.sched.Game(); g != nil {
		title = g.Title()
	}

	parts := []string{
		statusStyle.Render(title),
		fmt.Sprintf("target %.0f fps", m.sched.FPS()),
	}
	if s, ok := m.sched.LastSummary(); ok {
		parts = append(parts, fmt.Sprintf("actual %.1f fps", s.EffectiveFPS))
		if s.Dropped > 0 {
			parts = append(parts, fmt.Sprintf("dropped %d", s.Dropped))
		}
	}
	if !m.sched.Running() {
		parts = append(parts, pausedStyle.Render("PAUSED"))
	}
	return strings.Join(parts, "  ")
}

// Run starts the Bubble Tea program and blocks until it exits.
func Run(opts Options) error {
	p := tea.NewProgram(NewModel(opts), tea.WithAltScreen())
	_, err := p.Run()
	return err
}
