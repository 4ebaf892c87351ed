package core

// Base carries the lifecycle state every game needs: the bound surface, the
// area it was given and the paused flag. Games embed it and override what
// they need; the drawing helpers take coordinates relative to the area, clip
// to it and invalidate what they touch.
type Base struct {
	surface Surface
	area    Rect
	paused  bool
}

// OnBind stores the drawing target. Calling it again rebinds.
func (b *Base) OnBind(s Surface) {
	b.surface = s
}

// OnResize stores the usable area.
func (b *Base) OnResize(r Rect) {
	b.area = r
}

func (b *Base) Pause() {
	b.paused = true
}

func (b *Base) Resume() {
	b.paused = false
}

func (b *Base) IsPaused() bool {
	return b.paused
}

// Area returns the rectangle passed to the last OnResize.
func (b *Base) Area() Rect {
	return b.area
}

// Surface returns the bound surface, or nil.
func (b *Base) Surface() Surface {
	return b.surface
}

// Drawable reports whether drawing calls would reach a buffer.
func (b *Base) Drawable() bool {
	return b.surface != nil && b.surface.Valid() && b.surface.PixelBuffer() != nil && !b.area.Empty()
}

// clip translates an area-relative rect to surface coordinates and clips it.
func (b *Base) clip(x, y, w, h int) Rect {
	return NewRect(b.area.X+x, b.area.Y+y, w, h).Intersect(b.area)
}

func (b *Base) invalidate(r Rect) {
	if !r.Empty() {
		b.surface.Invalidate(r.X, r.Y, r.W, r.H)
	}
}

// Fill paints a solid rectangle.
func (b *Base) Fill(x, y, w, h int, c Color) {
	if !b.Drawable() {
		return
	}
	r := b.clip(x, y, w, h)
	if r.Empty() {
		return
	}
	b.surface.FillRect(r.X, r.Y, r.W, r.H, c)
	b.invalidate(r)
}

// Glyph places one rune.
func (b *Base) Glyph(x, y int, r rune, c Color) {
	if !b.Drawable() || !b.area.Contains(b.area.X+x, b.area.Y+y) {
		return
	}
	b.surface.SetCell(b.area.X+x, b.area.Y+y, r, c)
	b.invalidate(NewRect(b.area.X+x, b.area.Y+y, 1, 1))
}

// Text writes a string, dropping the characters outside the area.
func (b *Base) Text(x, y int, text string, c Color) {
	if !b.Drawable() {
		return
	}
	i := 0
	for _, r := range text {
		if b.area.Contains(b.area.X+x+i, b.area.Y+y) {
			b.surface.SetCell(b.area.X+x+i, b.area.Y+y, r, c)
		}
		i++
	}
	b.invalidate(b.clip(x, y, i, 1))
}

// TextCentered writes a string centered horizontally in the area.
func (b *Base) TextCentered(y int, text string, c Color) {
	n := len([]rune(text))
	b.Text((b.area.W-n)/2, y, text, c)
}

// Line draws a solid line. Endpoints are clamped to the area.
func (b *Base) Line(x1, y1, x2, y2 int, c Color) {
	if !b.Drawable() {
		return
	}
	x1, x2 = Clamp(x1, 0, b.area.W-1), Clamp(x2, 0, b.area.W-1)
	y1, y2 = Clamp(y1, 0, b.area.H-1), Clamp(y2, 0, b.area.H-1)
	b.surface.DrawLine(b.area.X+x1, b.area.Y+y1, b.area.X+x2, b.area.Y+y2, c)
	b.invalidate(b.clip(Min(x1, x2), Min(y1, y2), Abs(x2-x1)+1, Abs(y2-y1)+1))
}

// Box draws an outline with box-drawing glyphs.
func (b *Base) Box(r Rect, c Color) {
	if r.W < 2 || r.H < 2 {
		return
	}
	b.Glyph(r.X, r.Y, '┌', c)
	b.Glyph(r.Right()-1, r.Y, '┐', c)
	b.Glyph(r.X, r.Bottom()-1, '└', c)
	b.Glyph(r.Right()-1, r.Bottom()-1, '┘', c)

	for x := r.X + 1; x < r.Right()-1; x++ {
		b.Glyph(x, r.Y, '─', c)
		b.Glyph(x, r.Bottom()-1, '─', c)
	}
	for y := r.Y + 1; y < r.Bottom()-1; y++ {
		b.Glyph(r.X, y, '│', c)
		b.Glyph(r.Right()-1, y, '│', c)
	}
}

// ClearArea blanks the whole area.
func (b *Base) ClearArea() {
	b.Fill(0, 0, b.area.W, b.area.H, ColorBackground)
}
