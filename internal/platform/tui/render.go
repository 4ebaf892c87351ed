package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/canvas-arcade/internal/core"
)

var palette = map[core.Color]lipgloss.Style{
	core.ColorBackground:    lipgloss.NewStyle(),
	core.ColorRed:           fg("1"),
	core.ColorGreen:         fg("2"),
	core.ColorYellow:        fg("3"),
	core.ColorBlue:          fg("4"),
	core.ColorMagenta:       fg("5"),
	core.ColorCyan:          fg("6"),
	core.ColorWhite:         fg("7"),
	core.ColorBrightRed:     fg("9"),
	core.ColorBrightGreen:   fg("10"),
	core.ColorBrightYellow:  fg("11"),
	core.ColorBrightBlue:    fg("12"),
	core.ColorBrightMagenta: fg("13"),
	core.ColorBrightCyan:    fg("14"),
	core.ColorBrightWhite:   fg("15"),
	core.ColorOrange:        fg("208"),
	core.ColorGray:          fg("245"),
	core.ColorDarkGray:      fg("240"),
}

func fg(c string) lipgloss.Style {
	return lipgloss.NewStyle().Foreground(lipgloss.Color(c))
}

// RenderCanvas converts the whole canvas to a styled string.
func RenderCanvas(c *core.Canvas) string {
	var f frameCache
	return f.update(c, core.NewRect(0, 0, c.Width(), c.Height()))
}

// renderRow styles one canvas row, one style run per stretch of equal color.
func renderRow(c *core.Canvas, y int) string {
	w := c.Width()
	var sb, run strings.Builder
	for x := 0; x < w; {
		color := c.Get(x, y).Color
		run.Reset()
		for ; x < w; x++ {
			cell := c.Get(x, y)
			if cell.Color != color {
				break
			}
			if cell.Rune == 0 {
				run.WriteRune(' ')
			} else {
				run.WriteRune(cell.Rune)
			}
		}

		style, ok := palette[color]
		if !ok {
			style = palette[core.ColorBackground]
		}
		sb.WriteString(style.Render(run.String()))
	}
	return sb.String()
}

// frameCache keeps the styled rows of the last frame so only the rows a
// dirty rect touches are styled again.
type frameCache struct {
	rows  []string
	width int
}

// update re-renders the rows covered by dirty and returns the joined frame.
// A size change re-renders everything.
func (f *frameCache) update(c *core.Canvas, dirty core.Rect) string {
	w, h := c.Size()
	from, to := max(0, dirty.Y), min(h, dirty.Bottom())
	if len(f.rows) != h || f.width != w {
		f.rows = make([]string, h)
		f.width = w
		from, to = 0, h
	}
	for y := from; y < to; y++ {
		f.rows[y] = renderRow(c, y)
	}
	return strings.Join(f.rows, "\n")
}
