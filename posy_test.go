package posy

import (
	"math"
	"testing"
)

// --- Rect.Contains ---

func TestRectContains(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	tests := []struct {
		name   string
		x, y   float64
		expect bool
	}{
		{"inside", 50, 40, true},
		{"top-left corner", 10, 20, true},
		{"bottom-right corner", 110, 70, true},
		{"left edge", 10, 40, true},
		{"right edge", 110, 40, true},
		{"outside left", 9, 40, false},
		{"outside right", 111, 40, false},
		{"outside above", 50, 19, false},
		{"outside below", 50, 71, false},
		{"far outside", 999, 999, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := r.Contains(tt.x, tt.y)
			if got != tt.expect {
				t.Errorf("Rect%v.Contains(%v, %v) = %v, want %v", r, tt.x, tt.y, got, tt.expect)
			}
		})
	}
}

// --- Rect.Intersects ---

func TestRectIntersects(t *testing.T) {
	base := Rect{10, 10, 100, 100}
	tests := []struct {
		name   string
		other  Rect
		expect bool
	}{
		{"overlapping", Rect{50, 50, 100, 100}, true},
		{"fully contained", Rect{20, 20, 10, 10}, true},
		{"containing", Rect{0, 0, 200, 200}, true},
		{"adjacent right", Rect{110, 10, 50, 50}, true},
		{"adjacent bottom", Rect{10, 110, 50, 50}, true},
		{"disjoint right", Rect{111, 10, 50, 50}, false},
		{"disjoint above", Rect{10, -100, 50, 50}, false},
		{"same rect", Rect{10, 10, 100, 100}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := base.Intersects(tt.other)
			if got != tt.expect {
				t.Errorf("Rect%v.Intersects(Rect%v) = %v, want %v", base, tt.other, got, tt.expect)
			}
		})
	}
}

func TestRectCenterAndEmpty(t *testing.T) {
	r := Rect{10, 20, 100, 50}
	if c := r.Center(); c != (Vec2{60, 45}) {
		t.Errorf("Center = %v, want {60 45}", c)
	}
	if r.Empty() {
		t.Error("non-zero rect reported empty")
	}
	if !(Rect{Width: 10}).Empty() {
		t.Error("zero-height rect should be empty")
	}
}

func TestLerpRect(t *testing.T) {
	a := Rect{0, 0, 100, 100}
	b := Rect{100, 50, 300, 200}
	if got := LerpRect(a, b, 0); got != a {
		t.Errorf("t=0: %v, want %v", got, a)
	}
	if got := LerpRect(a, b, 1); got != b {
		t.Errorf("t=1: %v, want %v", got, b)
	}
	want := Rect{50, 25, 200, 150}
	if got := LerpRect(a, b, 0.5); got != want {
		t.Errorf("t=0.5: %v, want %v", got, want)
	}
}

// --- Color ---

func TestHex(t *testing.T) {
	c := Hex(0xff8000)
	if c.R != 1 || c.B != 0 || c.A != 1 {
		t.Errorf("Hex(0xff8000) = %+v", c)
	}
	if math.Abs(c.G-128.0/255) > 1e-9 {
		t.Errorf("G = %v, want %v", c.G, 128.0/255)
	}
}

func TestColorRGBAPremultiplies(t *testing.T) {
	got := Color{1, 0.5, 0, 0.5}.RGBA()
	if got.A != 128 || got.R != 128 || got.G != 64 || got.B != 0 {
		t.Errorf("RGBA = %+v", got)
	}
}

func TestColorScaleKeepsAlpha(t *testing.T) {
	c := Color{0.5, 0.8, 0.2, 0.4}.Scale(2)
	if c.R != 1 || c.G != 1 || c.B != 0.4 || c.A != 0.4 {
		t.Errorf("Scale(2) = %+v", c)
	}
	if c := ColorWhite.WithAlpha(0.3); c.A != 0.3 || c.R != 1 {
		t.Errorf("WithAlpha = %+v", c)
	}
}

func TestVec2Dist(t *testing.T) {
	if d := (Vec2{0, 0}).Dist(Vec2{3, 4}); d != 5 {
		t.Errorf("Dist = %v, want 5", d)
	}
}

// --- Random sources ---

func TestRangeRandom(t *testing.T) {
	rng := SeededRand(1)
	r := Range{Min: 2, Max: 5}
	for i := 0; i < 100; i++ {
		v := r.Random(rng)
		if v < 2 || v >= 5 {
			t.Fatalf("Random = %v, out of [2, 5)", v)
		}
	}
	if v := (Range{Min: 3, Max: 3}).Random(rng); v != 3 {
		t.Errorf("degenerate range = %v, want 3", v)
	}
}

func TestSeededRandDeterministic(t *testing.T) {
	a, b := SeededRand(42), SeededRand(42)
	for i := 0; i < 10; i++ {
		if x, y := a.Float64(), b.Float64(); x != y {
			t.Fatalf("draw %d differs: %v vs %v", i, x, y)
		}
	}
}

// --- Enum constant values (catch accidental iota drift) ---

func TestEnumValues(t *testing.T) {
	if NodeTypeContainer != 0 {
		t.Errorf("NodeTypeContainer = %d, want 0", NodeTypeContainer)
	}
	if NodeTypeText != 4 {
		t.Errorf("NodeTypeText = %d, want 4", NodeTypeText)
	}
	if EventPointerDown != 0 {
		t.Errorf("EventPointerDown = %d, want 0", EventPointerDown)
	}
	if EventClick != 3 {
		t.Errorf("EventClick = %d, want 3", EventClick)
	}
	if TextAlignCenter != 0 {
		t.Errorf("TextAlignCenter = %d, want 0", TextAlignCenter)
	}
}
