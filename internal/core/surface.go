package core

// Cell is one addressable unit of a surface.
type Cell struct {
	Rune  rune
	Color Color
}

// Surface is the drawing target a game binds to. Coordinates are absolute
// surface cells; out-of-bounds drawing is clipped. Drawing does not mark
// anything for redraw until Invalidate is called.
type Surface interface {
	// Valid reports whether the surface still exists.
	Valid() bool
	// Size returns the current dimensions in cells.
	Size() (w, h int)
	// PixelBuffer returns the backing storage, or nil while it is not yet
	// allocated.
	PixelBuffer() []Cell
	SetCell(x, y int, r rune, c Color)
	FillRect(x, y, w, h int, c Color)
	DrawLine(x1, y1, x2, y2 int, c Color)
	DrawText(x, y int, text string, c Color)
	Invalidate(x, y, w, h int)
}
