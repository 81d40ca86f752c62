//go:build ebiten

package app

import (
	"sled-mountain/internal/render"
	"sled-mountain/internal/sled"
	"sled-mountain/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Game adapts a sledding session to the ebiten.Game interface.
type Game struct {
	session *Session
	painter *render.GridPainter
	hud     *ui.HUD
	overlay *ui.Overlay

	scale    int
	hudWidth int
	paused   bool
	tickOnce bool
}

// New constructs a Game for the provided session.
func New(session *Session, scale, hudWidth int) *Game {
	if scale <= 0 {
		scale = 1
	}
	size := session.Size()
	return &Game{
		session:  session,
		painter:  render.NewGridPainter(size.W, size.H),
		hud:      ui.NewHUD(session, hudWidth),
		overlay:  ui.NewOverlay(session, scale),
		scale:    scale,
		hudWidth: hudWidth,
	}
}

// Reset puts the rider back on the summit.
func (g *Game) Reset() {
	g.session.Reset()
	g.tickOnce = false
}

// Update handles per-frame input and advances the rider.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEnter) {
		g.paused = false
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset()
	}

	g.overlay.Update()
	g.hud.Update(g.session.Size().W * g.scale)

	if !g.paused || g.tickOnce {
		in := sled.Input{Climb: ebiten.IsKeyPressed(ebiten.KeyUp)}
		if ebiten.IsKeyPressed(ebiten.KeyLeft) {
			in.Steer--
		}
		if ebiten.IsKeyPressed(ebiten.KeyRight) {
			in.Steer++
		}
		if g.tickOnce {
			g.session.Step(in)
		} else {
			g.session.Advance(in)
		}
		g.tickOnce = false
	}
	return nil
}

// Draw renders the mountain, the rider and the panels.
func (g *Game) Draw(screen *ebiten.Image) {
	g.painter.Blit(screen, g.session.Cells(), g.session.Palette(), g.scale)
	g.overlay.Draw(screen)
	g.hud.Draw(screen, g.session.Size().W*g.scale, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.session.Size()
	return s.W*g.scale + g.hudWidth, s.H * g.scale
}
