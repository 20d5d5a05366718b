package posy

import (
	"bytes"
	"fmt"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Font wraps Ebitengine's text/v2 for TrueType font rendering.
type Font struct {
	face   *text.GoTextFace
	source *text.GoTextFaceSource
	size   float64
	lh     float64 // cached line height
}

// Label is the content of a text node.
type Label struct {
	Content string
	Font    *Font
	Align   TextAlign
}

// LoadFont loads a TrueType font from raw TTF/OTF data at the given size.
func LoadFont(ttfData []byte, size float64) (*Font, error) {
	source, err := text.NewGoTextFaceSource(bytes.NewReader(ttfData))
	if err != nil {
		return nil, fmt.Errorf("posy: failed to parse TTF data: %w", err)
	}
	return newFont(source, size), nil
}

func newFont(source *text.GoTextFaceSource, size float64) *Font {
	face := &text.GoTextFace{
		Source: source,
		Size:   size,
	}
	m := face.Metrics()
	return &Font{
		face:   face,
		source: source,
		size:   size,
		lh:     m.HAscent + m.HDescent + m.HLineGap,
	}
}

var defaultSource *text.GoTextFaceSource

// DefaultFont returns the bundled Go Regular face at the given size. It
// returns nil if the face cannot be parsed; text nodes with a nil font fall
// back to the debug printer.
func DefaultFont(size float64) *Font {
	if defaultSource == nil {
		src, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			logOnce("default-font", "default font unavailable: %v", err)
			return nil
		}
		defaultSource = src
	}
	return newFont(defaultSource, size)
}

// MeasureString returns the width and height of the rendered text.
func (f *Font) MeasureString(s string) (width, height float64) {
	return text.Measure(s, f.face, f.lh)
}

// LineHeight returns the vertical distance between baselines.
func (f *Font) LineHeight() float64 {
	return f.lh
}

// Size returns the font size in pixels.
func (f *Font) Size() float64 {
	return f.size
}

// drawLabel renders a label centered vertically on (x, y) with the given
// scale, tint and alpha.
func drawLabel(dst *ebiten.Image, lb *Label, x, y, scale float64, c Color, alpha float64) {
	if lb == nil || lb.Content == "" || alpha <= 0 {
		return
	}
	if lb.Font == nil {
		ebitenutil.DebugPrintAt(dst, lb.Content, int(x), int(y))
		return
	}
	w, h := lb.Font.MeasureString(lb.Content)
	var ox float64
	switch lb.Align {
	case TextAlignCenter:
		ox = -w / 2
	case TextAlignRight:
		ox = -w
	}

	op := &text.DrawOptions{}
	op.GeoM.Translate(ox, -h/2)
	op.GeoM.Scale(scale, scale)
	op.GeoM.Translate(x, y)
	op.ColorScale.ScaleWithColor(c.RGBA())
	op.ColorScale.ScaleAlpha(float32(alpha))
	op.LineSpacing = lb.Font.lh
	text.Draw(dst, lb.Content, lb.Font.face, op)
}
