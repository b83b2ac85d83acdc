// Package shell holds the controls that sit around the handheld's screen:
// the power switch, game selection and the status line. Frontends translate
// their own input events into these calls.
package shell

import (
	"fmt"

	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/host"
	"github.com/vovakirdan/handheld/internal/registry"
)

// OffLabel is shown by frontends while the handheld is powered off.
const OffLabel = "POWER OFF"

// Controller applies shell commands to one host.
type Controller struct {
	host  *host.Host
	games []registry.GameInfo
}

// New creates a controller for h offering the given games in order.
func New(h *host.Host, games []registry.GameInfo) *Controller {
	return &Controller{host: h, games: games}
}

// Host returns the controlled host.
func (c *Controller) Host() *host.Host {
	return c.host
}

// Games returns the selectable games.
func (c *Controller) Games() []registry.GameInfo {
	return c.games
}

// TogglePower flips the power switch. Buttons are released first so a key
// held across a power cycle does not leak into the new game.
func (c *Controller) TogglePower() {
	c.host.ReleaseAll()
	c.host.SetPower(!c.host.Powered())
}

// NextGame selects the game after the active one, wrapping around.
func (c *Controller) NextGame() {
	if len(c.games) == 0 {
		return
	}
	next := c.games[0].ID
	for i, g := range c.games {
		if g.ID == c.host.ActiveGame() {
			next = c.games[(i+1)%len(c.games)].ID
			break
		}
	}
	c.selectGame(next)
}

// SelectSlot selects the game at a zero-based position. Out-of-range slots
// are ignored.
func (c *Controller) SelectSlot(slot int) {
	if slot < 0 || slot >= len(c.games) {
		return
	}
	c.selectGame(c.games[slot].ID)
}

func (c *Controller) selectGame(id string) {
	c.host.ReleaseAll()
	c.host.SetActiveGame(id)
}

// SetButtons applies a full button snapshot, for frontends that observe
// both presses and releases.
func (c *Controller) SetButtons(s core.ButtonState) {
	for b := core.Button(0); b < core.ButtonCount; b++ {
		c.host.SetButton(b, s.Pressed(b))
	}
}

// Title returns the display title of the active game.
func (c *Controller) Title() string {
	id := c.host.ActiveGame()
	for _, g := range c.games {
		if g.ID == id {
			return g.Title
		}
	}
	return id
}

// Status describes the power state, the active game and its phase.
func (c *Controller) Status() string {
	if !c.host.Powered() {
		return OffLabel
	}
	if phase := c.host.Phase(); phase != "" {
		return fmt.Sprintf("%s · %s", c.Title(), phase)
	}
	return fmt.Sprintf("%s · %s", c.Title(), c.host.Status())
}
