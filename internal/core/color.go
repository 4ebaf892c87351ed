package core

// Color is a palette index for one surface cell. The host maps it to a
// terminal color when it renders the canvas.
type Color uint8

// Palette entries. ColorBackground clears a cell.
const (
	ColorBackground Color = iota
	ColorRed
	ColorGreen
	ColorYellow
	ColorBlue
	ColorMagenta
	ColorCyan
	ColorWhite
	ColorBrightRed
	ColorBrightGreen
	ColorBrightYellow
	ColorBrightBlue
	ColorBrightMagenta
	ColorBrightCyan
	ColorBrightWhite
	ColorOrange
	ColorGray
	ColorDarkGray
)

// BlockRune is the glyph used for filled cells.
const BlockRune = '█'

// FillRune returns the glyph a filled cell of color c shows.
func FillRune(c Color) rune {
	if c == ColorBackground {
		return ' '
	}
	return BlockRune
}
