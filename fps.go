package posy

import (
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
)

// fpsOverlay draws the current FPS and TPS in the top-left corner. The
// text is refreshed every ~0.5 seconds into a small cached image.
type fpsOverlay struct {
	img        *ebiten.Image
	sinceDraw  float64
	fps, tps   float64
	refreshing bool
}

func (o *fpsOverlay) update(dt float64) {
	o.sinceDraw += dt
	if o.img != nil && o.sinceDraw < 0.5 {
		return
	}
	o.sinceDraw = 0
	o.fps, o.tps = ebiten.ActualFPS(), ebiten.ActualTPS()
	o.refreshing = true
}

func (o *fpsOverlay) draw(screen *ebiten.Image) {
	if o.img == nil {
		// 100x32 is enough for "FPS: 60.0\nTPS: 60.0"
		o.img = ebiten.NewImage(100, 32)
		o.refreshing = true
	}
	if o.refreshing {
		o.refreshing = false
		o.img.Clear()
		// Semi-transparent background for readability
		o.img.Fill(color.RGBA{0, 0, 0, 128})
		ebitenutil.DebugPrint(o.img, fmt.Sprintf("FPS: %.1f\nTPS: %.1f", o.fps, o.tps))
	}
	screen.DrawImage(o.img, nil)
}
