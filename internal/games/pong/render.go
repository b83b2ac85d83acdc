package pong

import (
	"strconv"

	"github.com/vovakirdan/handheld/internal/core"
)

func (g *Game) draw(s *State, f core.Frame) *core.DrawList {
	w, h := float64(f.Width), float64(f.Height)
	d := core.NewDrawList()

	d.Background(core.ShadeDarkest)

	// Net
	d.Line(w/2, 0, w/2, h, 2, core.ShadeDark)

	// Scores
	d.Text(strconv.Itoa(s.PlayerScore), w*0.25, 15, 12, core.AlignCenter, core.AlignCenter, core.ShadeDark)
	d.Text(strconv.Itoa(s.CPUScore), w*0.75, 15, 12, core.AlignCenter, core.AlignCenter, core.ShadeDark)

	for _, p := range []Paddle{s.Player, s.CPU} {
		d.FillRect(p.X, p.Y-p.Height/2, p.Width, p.Height, core.ShadeLight)
	}
	d.Ellipse(s.Ball.X, s.Ball.Y, s.Ball.Size, s.Ball.Size, core.ShadeLight)

	switch s.phase {
	case core.PhaseStart:
		d.Text("PRESS START", w/2, h/2, 8, core.AlignCenter, core.AlignCenter, core.ShadeLight)
	case core.PhaseGameOver:
		d.Text(s.Winner(g.cfg.Gameplay.WinScore), w/2, h/2-10, 10, core.AlignCenter, core.AlignCenter, core.ShadeLight)
		d.Text("PRESS START", w/2, h/2+10, 8, core.AlignCenter, core.AlignCenter, core.ShadeLight)
	}

	return d
}
