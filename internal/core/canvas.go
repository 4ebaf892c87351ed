package core

import (
	"strings"
)

// Canvas is an in-memory Surface. It decouples game rendering from the
// terminal: games draw cells, and the platform turns the invalidated canvas
// into terminal output.
//
// A canvas created with a zero dimension has no backing buffer until Resize
// gives it one, which is how hosts that learn the display size late behave.
type Canvas struct {
	width  int
	height int
	cells  []Cell
	dirty  Rect
	closed bool
}

// NewCanvas creates a canvas. The buffer is allocated only when both
// dimensions are positive.
func NewCanvas(width, height int) *Canvas {
	c := &Canvas{}
	c.Resize(width, height)
	return c
}

func (c *Canvas) allocate() {
	if c.width <= 0 || c.height <= 0 {
		c.cells = nil
		return
	}
	c.cells = make([]Cell, c.width*c.height)
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' '}
	}
}

// Valid reports whether the canvas has not been closed.
func (c *Canvas) Valid() bool {
	return !c.closed
}

// Size returns the canvas dimensions in cells.
func (c *Canvas) Size() (int, int) {
	return c.width, c.height
}

// Width returns the canvas width in cells.
func (c *Canvas) Width() int {
	return c.width
}

// Height returns the canvas height in cells.
func (c *Canvas) Height() int {
	return c.height
}

// PixelBuffer returns the backing cells in row-major order, or nil if the
// canvas has no buffer yet.
func (c *Canvas) PixelBuffer() []Cell {
	return c.cells
}

// Resize changes the canvas dimensions, preserving content where possible.
// The whole canvas is invalidated.
func (c *Canvas) Resize(width, height int) {
	if width < 0 {
		width = 0
	}
	if height < 0 {
		height = 0
	}
	if width == c.width && height == c.height && (c.cells != nil || width*height == 0) {
		return
	}

	oldCells := c.cells
	oldW, oldH := c.width, c.height

	c.width = width
	c.height = height
	c.allocate()
	c.dirty = Rect{}

	if c.cells == nil {
		return
	}
	if oldCells != nil {
		copyW := Min(oldW, width)
		copyH := Min(oldH, height)
		for y := 0; y < copyH; y++ {
			copy(c.cells[y*width:y*width+copyW], oldCells[y*oldW:y*oldW+copyW])
		}
	}
	c.dirty = NewRect(0, 0, width, height)
}

// Close releases the buffer. A closed canvas is no longer Valid.
func (c *Canvas) Close() {
	c.closed = true
	c.cells = nil
	c.dirty = Rect{}
}

func (c *Canvas) inBounds(x, y int) bool {
	return c.cells != nil && x >= 0 && x < c.width && y >= 0 && y < c.height
}

// SetCell places a rune at the given position.
// Out-of-bounds coordinates are silently ignored.
func (c *Canvas) SetCell(x, y int, r rune, color Color) {
	if !c.inBounds(x, y) {
		return
	}
	c.cells[y*c.width+x] = Cell{Rune: r, Color: color}
}

// Get returns the cell at the given position, or a blank cell when out of
// bounds.
func (c *Canvas) Get(x, y int) Cell {
	if !c.inBounds(x, y) {
		return Cell{Rune: ' '}
	}
	return c.cells[y*c.width+x]
}

// Clear blanks every cell and invalidates the canvas.
func (c *Canvas) Clear() {
	for i := range c.cells {
		c.cells[i] = Cell{Rune: ' '}
	}
	c.Invalidate(0, 0, c.width, c.height)
}

// FillRect fills a rectangle with solid cells of the given color.
// ColorBackground clears the cells instead.
func (c *Canvas) FillRect(x, y, w, h int, color Color) {
	r := NewRect(x, y, w, h).Intersect(NewRect(0, 0, c.width, c.height))
	if r.Empty() || c.cells == nil {
		return
	}
	fill := Cell{Rune: FillRune(color), Color: color}
	for yy := r.Y; yy < r.Bottom(); yy++ {
		row := c.cells[yy*c.width : (yy+1)*c.width]
		for xx := r.X; xx < r.Right(); xx++ {
			row[xx] = fill
		}
	}
}

// DrawLine draws a line of solid cells between two points inclusive.
func (c *Canvas) DrawLine(x1, y1, x2, y2 int, color Color) {
	dx := Abs(x2 - x1)
	dy := -Abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	fill := FillRune(color)
	e := dx + dy
	for {
		c.SetCell(x1, y1, fill, color)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// DrawText writes a string horizontally starting at (x, y).
// Characters that extend beyond the canvas are clipped.
func (c *Canvas) DrawText(x, y int, text string, color Color) {
	i := 0
	for _, r := range text {
		c.SetCell(x+i, y, r, color)
		i++
	}
}

// Invalidate marks a region for redraw. Regions accumulate until TakeDirty.
func (c *Canvas) Invalidate(x, y, w, h int) {
	r := NewRect(x, y, w, h).Intersect(NewRect(0, 0, c.width, c.height))
	c.dirty = c.dirty.Union(r)
}

// Dirty returns the region invalidated since the last TakeDirty.
func (c *Canvas) Dirty() Rect {
	return c.dirty
}

// TakeDirty returns the invalidated region and resets it.
func (c *Canvas) TakeDirty() Rect {
	d := c.dirty
	c.dirty = Rect{}
	return d
}

// String converts the canvas to text, one line per row.
func (c *Canvas) String() string {
	var sb strings.Builder
	sb.Grow(c.width*c.height + c.height)

	for y := 0; y < c.height; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		sb.WriteString(c.Row(y))
	}
	return sb.String()
}

// Row returns the specified row as a string.
func (c *Canvas) Row(y int) string {
	if y < 0 || y >= c.height || c.cells == nil {
		return strings.Repeat(" ", c.width)
	}
	runes := make([]rune, c.width)
	for x, cell := range c.cells[y*c.width : (y+1)*c.width] {
		runes[x] = cell.Rune
	}
	return string(runes)
}
