// Package tui hosts the scheduler inside a Bubble Tea program: the program's
// event loop is the host loop that re-enters the scheduler, key presses
// become queued input, and the canvas is rendered with lipgloss.
package tui

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// PollMsg asks the model to re-enter the scheduler.
type PollMsg time.Time

// pollCmd schedules the next PollMsg after interval.
func pollCmd(interval time.Duration) tea.Cmd {
	return tea.Tick(interval, func(t time.Time) tea.Msg {
		return PollMsg(t)
	})
}
