package posy

import (
	"fmt"
	"image"
	"image/color"
	"math"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
)

// Glyph names a decorative symbol drawn procedurally: flowers for the field
// and bouquet, hearts and sparkles for particles. Names are stable so they
// can appear in configuration files.
type Glyph string

const (
	GlyphTulip          Glyph = "tulip"
	GlyphRose           Glyph = "rose"
	GlyphSunflower      Glyph = "sunflower"
	GlyphBlossom        Glyph = "blossom"
	GlyphHibiscus       Glyph = "hibiscus"
	GlyphDaisy          Glyph = "daisy"
	GlyphHeart          Glyph = "heart"
	GlyphSparklingHeart Glyph = "sparkling-heart"
	GlyphGiftHeart      Glyph = "gift-heart"
	GlyphWhiteHeart     Glyph = "white-heart"
	GlyphSparkle        Glyph = "sparkle"
	GlyphStar           Glyph = "star"
	GlyphLeaf           Glyph = "leaf"
)

type glyphShape uint8

const (
	shapeFlower glyphShape = iota
	shapeCup
	shapeHeart
	shapeStar
	shapeLeaf
)

type glyphStyle struct {
	shape  glyphShape
	petals int
	fill   Color
	accent Color
}

var glyphStyles = map[Glyph]glyphStyle{
	GlyphTulip:          {shape: shapeCup, fill: Hex(0xff4f7b), accent: Hex(0x4a8c3f)},
	GlyphRose:           {shape: shapeFlower, petals: 7, fill: Hex(0xd81b3c), accent: Hex(0x9e0f2a)},
	GlyphSunflower:      {shape: shapeFlower, petals: 12, fill: Hex(0xffc928), accent: Hex(0x6b3e1e)},
	GlyphBlossom:        {shape: shapeFlower, petals: 5, fill: Hex(0xffb7d5), accent: Hex(0xff6fa5)},
	GlyphHibiscus:       {shape: shapeFlower, petals: 5, fill: Hex(0xff5a6e), accent: Hex(0xfff07a)},
	GlyphDaisy:          {shape: shapeFlower, petals: 10, fill: Hex(0xffffff), accent: Hex(0xffd23f)},
	GlyphHeart:          {shape: shapeHeart, fill: Hex(0xe8213f)},
	GlyphSparklingHeart: {shape: shapeHeart, fill: Hex(0xff69b4), accent: Hex(0xfff4a3)},
	GlyphGiftHeart:      {shape: shapeHeart, fill: Hex(0xff1493), accent: Hex(0xffd700)},
	GlyphWhiteHeart:     {shape: shapeHeart, fill: Hex(0xfdf6f8)},
	GlyphSparkle:        {shape: shapeStar, petals: 4, fill: Hex(0xfff4a3)},
	GlyphStar:           {shape: shapeStar, petals: 5, fill: Hex(0xffd23f)},
	GlyphLeaf:           {shape: shapeLeaf, fill: Hex(0x5fa84a)},
}

// FlowerGlyphs lists the glyphs that can grow in the field and bouquet.
var FlowerGlyphs = []Glyph{GlyphTulip, GlyphRose, GlyphSunflower, GlyphBlossom, GlyphHibiscus, GlyphDaisy}

// Valid reports whether g names a known glyph.
func (g Glyph) Valid() bool {
	_, ok := glyphStyles[g]
	return ok
}

// ParseGlyph validates a glyph name.
func ParseGlyph(name string) (Glyph, error) {
	g := Glyph(name)
	if !g.Valid() {
		return "", fmt.Errorf("unknown glyph %q", name)
	}
	return g, nil
}

// PickGlyph returns a uniformly chosen glyph from set, or "" if set is empty.
func PickGlyph(set []Glyph, rng *rand.Rand) Glyph {
	if len(set) == 0 {
		return ""
	}
	return set[rng.IntN(len(set))]
}

// --- Drawing ---

var (
	whiteImage    *ebiten.Image
	whiteSubImage *ebiten.Image
)

// whitePixel returns a 1x1 white source image for DrawTriangles. Created
// lazily so importing the package never touches the graphics driver.
func whitePixel() *ebiten.Image {
	if whiteSubImage == nil {
		whiteImage = ebiten.NewImage(3, 3)
		whiteImage.Fill(color.White)
		whiteSubImage = whiteImage.SubImage(image.Rect(1, 1, 2, 2)).(*ebiten.Image)
	}
	return whiteSubImage
}

// drawGlyph renders g centered at (cx, cy) with the given pixel diameter and
// rotation. tint multiplies the glyph's own colors; alpha is final opacity.
func drawGlyph(dst *ebiten.Image, g Glyph, cx, cy, size, rot float64, tint Color, alpha float64) {
	st, ok := glyphStyles[g]
	if !ok || size < 0.5 || alpha <= 0 {
		return
	}
	fill := tintColor(st.fill, tint, alpha)
	accent := tintColor(st.accent, tint, alpha)
	r := size / 2

	switch st.shape {
	case shapeFlower:
		petalR := r * 0.42
		ring := r * 0.55
		for i := 0; i < st.petals; i++ {
			a := rot + 2*math.Pi*float64(i)/float64(st.petals)
			s, c := math.Sincos(a)
			vector.DrawFilledCircle(dst, float32(cx+c*ring), float32(cy+s*ring), float32(petalR), fill.RGBA(), true)
		}
		vector.DrawFilledCircle(dst, float32(cx), float32(cy), float32(r*0.36), accent.RGBA(), true)
	case shapeCup:
		stemTop := rotatePoint(0, r*0.2, rot)
		stemBottom := rotatePoint(0, r, rot)
		vector.StrokeLine(dst, float32(cx+stemTop.X), float32(cy+stemTop.Y),
			float32(cx+stemBottom.X), float32(cy+stemBottom.Y), float32(math.Max(1, r*0.12)), accent.RGBA(), true)
		for _, off := range [][2]float64{{-0.32, -0.1}, {0.32, -0.1}, {0, -0.25}} {
			p := rotatePoint(off[0]*r, off[1]*r, rot)
			vector.DrawFilledCircle(dst, float32(cx+p.X), float32(cy+p.Y), float32(r*0.42), fill.RGBA(), true)
		}
	case shapeHeart:
		outline := HeartOutline(1, 4)
		pts := make([]Vec2, len(outline))
		for i, p := range outline {
			// Heart curves are y-up with the point at 0.35; flip and center.
			q := rotatePoint(p.X*size, -(p.Y-0.62)*size, rot)
			pts[i] = Vec2{cx + q.X, cy + q.Y}
		}
		fillPolygon(dst, pts, fill)
		if st.accent.A > 0 {
			vector.DrawFilledCircle(dst, float32(cx+r*0.3), float32(cy-r*0.35), float32(r*0.14), accent.RGBA(), true)
		}
	case shapeStar:
		points := st.petals
		pts := make([]Vec2, 0, points*2)
		for i := 0; i < points*2; i++ {
			rad := r
			if i%2 == 1 {
				rad = r * 0.38
			}
			a := rot - math.Pi/2 + math.Pi*float64(i)/float64(points)
			s, c := math.Sincos(a)
			pts = append(pts, Vec2{cx + c*rad, cy + s*rad})
		}
		fillPolygon(dst, pts, fill)
	case shapeLeaf:
		const steps = 12
		pts := make([]Vec2, 0, steps*2)
		for i := 0; i <= steps; i++ {
			t := float64(i) / steps
			w := math.Sin(t*math.Pi) * r * 0.45
			p := rotatePoint(w, -r+2*r*t, rot)
			pts = append(pts, Vec2{cx + p.X, cy + p.Y})
		}
		for i := steps - 1; i > 0; i-- {
			t := float64(i) / steps
			w := math.Sin(t*math.Pi) * r * 0.45
			p := rotatePoint(-w, -r+2*r*t, rot)
			pts = append(pts, Vec2{cx + p.X, cy + p.Y})
		}
		fillPolygon(dst, pts, fill)
	}
}

func tintColor(c, tint Color, alpha float64) Color {
	return Color{R: c.R * tint.R, G: c.G * tint.G, B: c.B * tint.B, A: c.A * tint.A * alpha}
}

func rotatePoint(x, y, rot float64) Vec2 {
	if rot == 0 {
		return Vec2{x, y}
	}
	s, c := math.Sincos(rot)
	return Vec2{x*c - y*s, x*s + y*c}
}

// fillPolygon fills a closed polygon using the vector path tessellator.
func fillPolygon(dst *ebiten.Image, pts []Vec2, c Color) {
	if len(pts) < 3 {
		return
	}
	var path vector.Path
	path.MoveTo(float32(pts[0].X), float32(pts[0].Y))
	for _, p := range pts[1:] {
		path.LineTo(float32(p.X), float32(p.Y))
	}
	path.Close()

	vs, is := path.AppendVerticesAndIndicesForFilling(nil, nil)
	for i := range vs {
		vs[i].SrcX = 1
		vs[i].SrcY = 1
		vs[i].ColorR = float32(c.R)
		vs[i].ColorG = float32(c.G)
		vs[i].ColorB = float32(c.B)
		vs[i].ColorA = float32(c.A)
	}
	op := &ebiten.DrawTrianglesOptions{FillRule: ebiten.FillRuleNonZero, AntiAlias: true}
	dst.DrawTriangles(vs, is, whitePixel(), op)
}
