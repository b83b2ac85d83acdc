// Package desktop runs the handheld in a window through Ebitengine.
// Unlike a terminal, a window reports key releases, so buttons follow the
// keys exactly.
package desktop

import (
	"errors"
	"fmt"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/vovakirdan/handheld/internal/config"
	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/host"
	"github.com/vovakirdan/handheld/internal/platform/shell"
	"github.com/vovakirdan/handheld/internal/registry"
)

// windowScale is the initial window size as a multiple of the screen.
const windowScale = 4

// buttonKeys lists the keys bound to each handheld button.
var buttonKeys = [core.ButtonCount][]ebiten.Key{
	core.ButtonUp:     {ebiten.KeyArrowUp},
	core.ButtonDown:   {ebiten.KeyArrowDown},
	core.ButtonLeft:   {ebiten.KeyArrowLeft},
	core.ButtonRight:  {ebiten.KeyArrowRight},
	core.ButtonA:      {ebiten.KeyZ},
	core.ButtonB:      {ebiten.KeyX},
	core.ButtonStart:  {ebiten.KeyEnter},
	core.ButtonSelect: {ebiten.KeyShiftLeft, ebiten.KeyShiftRight},
}

var slotKeys = []ebiten.Key{ebiten.KeyDigit1, ebiten.KeyDigit2, ebiten.KeyDigit3}

// Game adapts a host to ebiten.Game.
type Game struct {
	shell   *shell.Controller
	surface *core.Surface
	canvas  *ebiten.Image
}

// New creates a window game for h.
func New(h *host.Host, games []registry.GameInfo) *Game {
	return &Game{shell: shell.New(h, games)}
}

// Update polls the keyboard and runs one host frame.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyO) {
		g.shell.TogglePower()
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyTab) {
		g.shell.NextGame()
	}
	for slot, k := range slotKeys {
		if inpututil.IsKeyJustPressed(k) {
			g.shell.SelectSlot(slot)
		}
	}

	var buttons core.ButtonState
	for b, keys := range buttonKeys {
		for _, k := range keys {
			if ebiten.IsKeyPressed(k) {
				buttons = buttons.With(core.Button(b), true)
			}
		}
	}
	g.shell.SetButtons(buttons)

	g.surface = g.shell.Host().Frame(time.Now())
	return nil
}

// Draw copies the host surface to the window.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.surface == nil {
		return
	}
	if g.canvas == nil {
		g.canvas = ebiten.NewImage(g.surface.Width(), g.surface.Height())
	}
	g.canvas.WritePixels(g.surface.Image().Pix)
	screen.DrawImage(g.canvas, &ebiten.DrawImageOptions{})

	if !g.shell.Host().Powered() {
		label := shell.OffLabel
		// The debug font is 6x16 per glyph
		x := (g.surface.Width() - len(label)*6) / 2
		y := g.surface.Height()/2 - 8
		ebitenutil.DebugPrintAt(screen, label, x, y)
	}
}

// Layout keeps the logical screen size regardless of the window size.
func (g *Game) Layout(_, _ int) (int, int) {
	return core.ScreenWidth, core.ScreenHeight
}

// Run opens the window and blocks until it is closed. The host is powered
// on first and closed on return.
func Run(h *host.Host, cfg config.Config, games []registry.GameInfo) error {
	defer h.Close()

	ebiten.SetWindowSize(core.ScreenWidth*windowScale, core.ScreenHeight*windowScale)
	ebiten.SetWindowTitle("Handheld")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(cfg.FrameRate)

	h.SetPower(true)
	if err := ebiten.RunGame(New(h, games)); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("desktop: %w", err)
	}
	return nil
}
