package core

import "testing"

func boundBase(c *Canvas, area Rect) *Base {
	b := &Base{}
	b.OnBind(c)
	b.OnResize(area)
	c.TakeDirty()
	return b
}

func TestBaseFillClipsToArea(t *testing.T) {
	c := NewCanvas(20, 10)
	b := boundBase(c, NewRect(5, 2, 6, 4))

	b.Fill(-2, -2, 100, 100, ColorBlue)

	if c.Get(4, 2).Rune != ' ' || c.Get(11, 2).Rune != ' ' || c.Get(5, 6).Rune != ' ' {
		t.Error("Fill leaked outside the area")
	}
	if c.Get(5, 2).Color != ColorBlue || c.Get(10, 5).Color != ColorBlue {
		t.Error("Fill should cover the area corners")
	}
	if d := c.TakeDirty(); d != NewRect(5, 2, 6, 4) {
		t.Errorf("dirty = %+v, expected the area", d)
	}
}

func TestBaseTextIsAreaRelative(t *testing.T) {
	c := NewCanvas(20, 10)
	b := boundBase(c, NewRect(3, 1, 5, 3))

	b.Text(1, 0, "ABCDEFG", ColorWhite)

	if c.Get(4, 1).Rune != 'A' {
		t.Errorf("Text should start at area origin + 1, got %q", c.Get(4, 1).Rune)
	}
	if c.Get(7, 1).Rune != 'D' || c.Get(8, 1).Rune != ' ' {
		t.Error("Text should be clipped at the area's right edge")
	}
	if d := c.TakeDirty(); d != NewRect(4, 1, 4, 1) {
		t.Errorf("dirty = %+v, expected {4 1 4 1}", d)
	}
}

func TestBaseWithoutBufferDrawsNothing(t *testing.T) {
	c := NewCanvas(0, 0)
	b := boundBase(c, NewRect(0, 0, 10, 10))

	if b.Drawable() {
		t.Error("Drawable() should be false without a buffer")
	}
	b.Fill(0, 0, 3, 3, ColorRed)
	b.Glyph(1, 1, 'x', ColorRed)
	if !c.Dirty().Empty() {
		t.Error("no region should be invalidated without a buffer")
	}
}

func TestBasePauseResume(t *testing.T) {
	var b Base
	b.Pause()
	if !b.IsPaused() {
		t.Error("IsPaused() should be true after Pause")
	}
	b.Resume()
	if b.IsPaused() {
		t.Error("IsPaused() should be false after Resume")
	}
}

func TestScoreboard(t *testing.T) {
	s := NewScoreboard(2)
	s.AddScore(10)
	s.NextLevel()

	if s.LoseLife() {
		t.Error("first life lost should not end the game")
	}
	if !s.LoseLife() {
		t.Error("last life lost should end the game")
	}

	s.Reset()
	if s.Score != 0 || s.Level != 1 || s.Lives != 2 || s.GameOver {
		t.Errorf("Reset() left %+v", s)
	}
	if s.HighScore != 10 {
		t.Errorf("HighScore = %d, expected 10 to survive Reset", s.HighScore)
	}
}
