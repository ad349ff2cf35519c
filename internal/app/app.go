//go:build ebiten

package app

import (
	"image/color"
	"log"
	"time"

	"ising-mc/internal/core"
	"ising-mc/internal/mc"
	"ising-mc/internal/render"
	"ising-mc/internal/ui"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

const historyLength = 512

// Game adapts a Metropolis chain to the ebiten.Game interface.
type Game struct {
	chain   *mc.Chain
	painter *render.LatticePainter
	hud     *ui.HUD
	overlay *ui.Overlay
	pacer   *core.Pacer

	upColor   color.Color
	downColor color.Color

	scale    int
	paused   bool
	tickOnce bool
	seed     int64
}

// New constructs a Game for the provided chain.
func New(chain *mc.Chain, scale, rate, hudWidth int, seed int64) *Game {
	if scale <= 0 {
		scale = 1
	}
	g := &Game{
		chain:     chain,
		painter:   render.NewLatticePainter(chain.Size()),
		hud:       ui.NewHUD(chain, hudWidth),
		overlay:   ui.NewOverlay(historyLength),
		pacer:     core.NewPacer(rate),
		upColor:   render.SpinUp,
		downColor: render.SpinDown,
		scale:     scale,
		seed:      seed,
	}
	g.overlay.Record(chain.Point())
	return g
}

// Reset reinitializes the chain with the provided seed. On failure the
// chain and history are left as they were.
func (g *Game) Reset(seed int64) error {
	if err := g.chain.Reset(seed); err != nil {
		return err
	}
	g.seed = seed
	g.overlay.Clear()
	g.overlay.Record(g.chain.Point())
	g.tickOnce = false
	return nil
}

// Update handles per-frame input and advances the chain.
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
		if err := g.Reset(g.seed); err != nil {
			log.Printf("reset: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		if err := g.Reset(time.Now().UnixNano()); err != nil {
			log.Printf("reseed: %v", err)
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowUp) || inpututil.IsKeyJustPressed(ebiten.KeyArrowRight) {
		g.hud.Adjust("temperature", 1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyArrowDown) || inpututil.IsKeyJustPressed(ebiten.KeyArrowLeft) {
		g.hud.Adjust("temperature", -1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyEqual) {
		g.pacer.SetRate(g.pacer.Rate() * 2)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyMinus) && g.pacer.Rate() > 1 {
		g.pacer.SetRate(g.pacer.Rate() / 2)
	}

	g.overlay.Update()
	g.hud.Update(g.viewSize())

	steps := 0
	if !g.paused {
		steps = g.pacer.Due(time.Now())
	}
	if g.tickOnce {
		steps = 1
		g.tickOnce = false
	}
	for i := 0; i < steps; i++ {
		g.overlay.Record(g.chain.Step())
	}
	return nil
}

// Draw renders the lattice, the history overlay and the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	snap, _ := g.chain.Snapshot()
	g.painter.Blit(screen, snap, g.upColor, g.downColor, g.scale)
	view := g.viewSize()
	g.overlay.Draw(screen, view, view)
	g.hud.Draw(screen, view, g.scale)
}

// Layout returns the logical screen size.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	view := g.viewSize()
	return view + g.hud.Width(), view
}

func (g *Game) viewSize() int { return g.chain.Size() * g.scale }
