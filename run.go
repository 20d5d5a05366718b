package posy

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// RunConfig configures the window opened by Run. Zero fields fall back to
// the session's Config.
type RunConfig struct {
	Title      string
	Width      int
	Height     int
	Background Color
	// ShowFPS starts with the FPS overlay visible. F3 toggles it at runtime.
	ShowFPS bool
	// Debug enables scene debug mode. F4 toggles it at runtime.
	Debug bool
}

// game adapts a Session to ebiten.Game.
type game struct {
	session   *Session
	bg        Color
	fps       fpsOverlay
	showFPS   bool
	debug     bool
	drawn     bool
	signalled bool
}

// Run opens a window and drives s until the window closes. The load gate
// is signalled after the first frame has been drawn.
func Run(s *Session, cfg RunConfig) error {
	sc := s.Config()
	if cfg.Title == "" {
		cfg.Title = sc.Window.Title
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		cfg.Width, cfg.Height = sc.Window.Width, sc.Window.Height
	}
	if cfg.Background == (Color{}) {
		cfg.Background = sc.Window.Background.Color()
	}

	ebiten.SetWindowTitle(cfg.Title)
	ebiten.SetWindowSize(cfg.Width, cfg.Height)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)

	g := &game{session: s, bg: cfg.Background, showFPS: cfg.ShowFPS, debug: cfg.Debug}
	s.Scene().SetDebugMode(g.debug)
	return ebiten.RunGame(g)
}

// Update implements ebiten.Game.
func (g *game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF3) {
		g.showFPS = !g.showFPS
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyF4) {
		g.debug = !g.debug
		g.session.Scene().SetDebugMode(g.debug)
	}
	if g.drawn && !g.signalled {
		g.signalled = true
		g.session.SignalLoaded()
	}

	dt := 1.0 / 60
	if tps := ebiten.TPS(); tps > 0 {
		dt = 1 / float64(tps)
	}
	g.session.Update(dt)
	if g.showFPS {
		g.fps.update(dt)
	}
	return nil
}

// Draw implements ebiten.Game.
func (g *game) Draw(screen *ebiten.Image) {
	screen.Fill(g.bg.RGBA())
	g.session.Draw(screen)
	if g.showFPS {
		g.fps.draw(screen)
	}
	g.drawn = true
}

// Layout implements ebiten.Game. The outside size is used as is and
// rebroadcast to the session.
func (g *game) Layout(outsideWidth, outsideHeight int) (int, int) {
	g.session.Resize(outsideWidth, outsideHeight)
	return outsideWidth, outsideHeight
}
