package posy

import (
	"math"
	"math/rand/v2"
)

// DefaultMaxAttempts is the per-target retry budget when a constraint
// leaves MaxAttempts unset.
const DefaultMaxAttempts = 120

// PlacementConstraint bounds where targets may be placed. It is treated as
// immutable once a session starts.
type PlacementConstraint struct {
	// Bounds is the rectangle candidates are sampled from.
	Bounds Rect
	// MinSeparation is the minimum distance between any two placed points.
	MinSeparation float64
	// Exclusions are rectangles no point may fall inside.
	Exclusions []Rect
	// MaxAttempts is the number of candidates tried per target.
	MaxAttempts int
}

// Placement is the result of Place.
type Placement struct {
	// Points holds one position per target.
	Points []Vec2
	// Attempts holds the number of candidates sampled for each target.
	Attempts []int
	// Exhausted flags targets whose retry budget ran out; their point is the
	// last candidate tried and may violate the constraint.
	Exhausted []bool
}

// AnyExhausted reports whether at least one target fell back to a best
// effort position.
func (p Placement) AnyExhausted() bool {
	for _, e := range p.Exhausted {
		if e {
			return true
		}
	}
	return false
}

// TotalAttempts returns the number of candidates sampled across all targets.
func (p Placement) TotalAttempts() int {
	total := 0
	for _, a := range p.Attempts {
		total += a
	}
	return total
}

// Place computes n positions inside c.Bounds. Each target samples uniform
// candidates until one is at least MinSeparation from every earlier point
// and outside every exclusion, or until MaxAttempts candidates were tried;
// then the last candidate is kept and the target is marked exhausted. Place
// never samples more than n*MaxAttempts candidates.
func Place(n int, c PlacementConstraint, rng *rand.Rand) Placement {
	if n <= 0 {
		return Placement{}
	}
	if rng == nil {
		rng = NewRand()
	}
	budget := c.MaxAttempts
	if budget <= 0 {
		budget = DefaultMaxAttempts
	}
	out := Placement{
		Points:    make([]Vec2, 0, n),
		Attempts:  make([]int, 0, n),
		Exhausted: make([]bool, 0, n),
	}
	minSq := c.MinSeparation * c.MinSeparation

	for i := 0; i < n; i++ {
		var cand Vec2
		ok := false
		attempts := 0
		for attempts < budget && !ok {
			attempts++
			cand = Vec2{
				X: c.Bounds.X + rng.Float64()*c.Bounds.Width,
				Y: c.Bounds.Y + rng.Float64()*c.Bounds.Height,
			}
			ok = c.accepts(cand, out.Points, minSq)
		}
		out.Points = append(out.Points, cand)
		out.Attempts = append(out.Attempts, attempts)
		out.Exhausted = append(out.Exhausted, !ok)
	}
	return out
}

func (c PlacementConstraint) accepts(p Vec2, placed []Vec2, minSq float64) bool {
	for _, ex := range c.Exclusions {
		if ex.Contains(p.X, p.Y) {
			return false
		}
	}
	for _, q := range placed {
		dx, dy := p.X-q.X, p.Y-q.Y
		if dx*dx+dy*dy < minSq {
			return false
		}
	}
	return true
}

// Satisfied reports whether every point respects the separation and
// exclusions of c.
func (c PlacementConstraint) Satisfied(points []Vec2) bool {
	minSq := c.MinSeparation * c.MinSeparation
	for i, p := range points {
		if !c.accepts(p, points[:i], minSq) {
			return false
		}
	}
	return true
}

// Flower field layout, in window pixels.
const (
	fieldMarginLeft   = 20
	fieldMarginRight  = 50
	fieldTop          = 140
	fieldMinBottom    = 220
	fieldBottomInset  = 400
	fieldSeparation   = 70
	bouquetHalfWidth  = 160
	bouquetZoneHeight = 420
)

// FieldConstraint builds the flower field constraint for a w by h window:
// flowers stay below the header and clear of the bouquet at the bottom
// center.
func FieldConstraint(w, h float64) PlacementConstraint {
	bottom := math.Max(fieldMinBottom, h-fieldBottomInset)
	return PlacementConstraint{
		Bounds: Rect{
			X:      fieldMarginLeft,
			Y:      fieldTop,
			Width:  math.Max(0, w-fieldMarginLeft-fieldMarginRight),
			Height: bottom - fieldTop,
		},
		MinSeparation: fieldSeparation,
		Exclusions: []Rect{{
			X:      w/2 - bouquetHalfWidth,
			Y:      h - bouquetZoneHeight,
			Width:  2 * bouquetHalfWidth,
			Height: bouquetZoneHeight,
		}},
		MaxAttempts: DefaultMaxAttempts,
	}
}
