package snake

import (
	"fmt"

	"github.com/vovakirdan/handheld/internal/core"
)

func (g *Game) draw(s *State, f core.Frame) *core.DrawList {
	w, h := float64(f.Width), float64(f.Height)
	cell := float64(g.cfg.CellSize)
	d := core.NewDrawList()

	d.Background(core.ShadeDarkest)
	d.Text(fmt.Sprintf("SCORE: %d", s.score), 5, 5, 8, core.AlignStart, core.AlignStart, core.ShadeDark)

	switch s.phase {
	case core.PhaseStart:
		d.Text("SNAKE", w/2, h/2-15, 10, core.AlignCenter, core.AlignCenter, core.ShadeLight)
		d.Text("PRESS START", w/2, h/2+5, 8, core.AlignCenter, core.AlignCenter, core.ShadeLight)

	case core.PhasePlaying:
		for _, p := range s.Snake {
			d.FillRect(float64(p.X)*cell, float64(p.Y)*cell, cell, cell, core.ShadeLight)
		}
		if s.Food.X >= 0 {
			d.FillRect(float64(s.Food.X)*cell, float64(s.Food.Y)*cell, cell, cell, core.ShadeFood)
		}

	case core.PhaseGameOver:
		d.Text("GAME OVER", w/2, h/2-15, 10, core.AlignCenter, core.AlignCenter, core.ShadeLight)
		d.Text(fmt.Sprintf("SCORE: %d", s.score), w/2, h/2, 8, core.AlignCenter, core.AlignCenter, core.ShadeLight)
		d.Text("PRESS START", w/2, h/2+15, 8, core.AlignCenter, core.AlignCenter, core.ShadeLight)
	}

	return d
}
