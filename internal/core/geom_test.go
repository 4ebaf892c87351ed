package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{"overlapping", NewRect(0, 0, 10, 10), NewRect(5, 5, 10, 10), true},
		{"apart horizontally", NewRect(0, 0, 10, 10), NewRect(15, 0, 10, 10), false},
		{"adjacent edge", NewRect(0, 0, 10, 10), NewRect(10, 0, 10, 10), false},
		{"contained", NewRect(0, 0, 20, 20), NewRect(5, 5, 5, 5), true},
		{"corner cell", NewRect(0, 0, 10, 10), NewRect(9, 9, 10, 10), true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(2, 3, 4, 5)

	if !r.Contains(2, 3) {
		t.Error("top-left corner should be inside")
	}
	if r.Contains(6, 3) {
		t.Error("x == Right() should be outside")
	}
	if r.Contains(2, 8) {
		t.Error("y == Bottom() should be outside")
	}
}

func TestRectUnion(t *testing.T) {
	a := NewRect(0, 0, 2, 2)
	b := NewRect(5, 5, 1, 1)

	u := a.Union(b)
	if u != NewRect(0, 0, 6, 6) {
		t.Errorf("Union() = %+v, expected {0 0 6 6}", u)
	}

	if got := (Rect{}).Union(b); got != b {
		t.Errorf("empty.Union(b) = %+v, expected %+v", got, b)
	}
}

func TestRectIntersect(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	if got := a.Intersect(NewRect(-5, 8, 7, 7)); got != NewRect(0, 8, 2, 2) {
		t.Errorf("Intersect() = %+v, expected {0 8 2 2}", got)
	}
	if got := a.Intersect(NewRect(20, 20, 1, 1)); !got.Empty() {
		t.Errorf("disjoint Intersect() = %+v, expected empty", got)
	}
}

func TestClamp(t *testing.T) {
	if Clamp(-1, 0, 10) != 0 || Clamp(11, 0, 10) != 10 || Clamp(5, 0, 10) != 5 {
		t.Error("Clamp returned an out-of-range value")
	}
	if ClampF(0.5, 1, 2) != 1 || ClampF(3, 1, 2) != 2 {
		t.Error("ClampF returned an out-of-range value")
	}
}
