package tetris

import (
	"fmt"

	"github.com/vovakirdan/handheld/internal/core"
)

// previewCell is the block size of the NEXT preview.
const previewCell = 6

var overlay = core.RGBA(15, 56, 15, 200)

func (g *Game) draw(s *State, f core.Frame) *core.DrawList {
	w, h := float64(f.Width), float64(f.Height)
	cell := float64(g.cfg.CellSize)
	offX := float64((f.Width - g.cfg.Cols*g.cfg.CellSize) / 2)
	offY := float64(g.cfg.TopOffset)
	d := core.NewDrawList()

	d.Background(core.ShadeDarkest)
	d.StrokeRect(offX-1, offY-1, float64(g.cfg.Cols)*cell+2, float64(g.cfg.Rows)*cell+2, core.ShadeDark)

	block := func(x, y int, color uint8) {
		d.FillRect(offX+float64(x)*cell, offY+float64(y)*cell, cell, cell, BlockColor(color))
	}
	drawBoard := func() {
		for y, row := range s.Board {
			for x, v := range row {
				if v != 0 {
					block(x, y, v)
				}
			}
		}
	}
	drawPiece := func() {
		for _, c := range s.Current.Cells() {
			block(c.X, c.Y, s.Current.Color)
		}
	}

	switch s.phase {
	case core.PhaseStart:
		d.Text("TETRIS", w/2, h/2-15, 10, core.AlignCenter, core.AlignCenter, core.ShadeLight)
		d.Text("PRESS START", w/2, h/2+5, 8, core.AlignCenter, core.AlignCenter, core.ShadeLight)

	case core.PhasePlaying:
		drawBoard()
		drawPiece()
		g.drawHUD(d, s, w)

	case core.PhasePaused:
		drawBoard()
		drawPiece()
		d.Overlay(overlay)
		d.Text("PAUSED", w/2, h/2, 10, core.AlignCenter, core.AlignCenter, core.ShadeLight)
		d.Text("PRESS START", w/2, h/2+15, 8, core.AlignCenter, core.AlignCenter, core.ShadeLight)

	case core.PhaseGameOver:
		drawBoard()
		d.Overlay(overlay)
		d.Text("GAME OVER", w/2, h/2-15, 10, core.AlignCenter, core.AlignCenter, core.ShadeLight)
		d.Text(fmt.Sprintf("SCORE: %d", s.score), w/2, h/2, 8, core.AlignCenter, core.AlignCenter, core.ShadeLight)
		d.Text("PRESS START", w/2, h/2+15, 8, core.AlignCenter, core.AlignCenter, core.ShadeLight)
	}

	return d
}

// drawHUD renders the counters on the left and the next piece on the right.
func (g *Game) drawHUD(d *core.DrawList, s *State, w float64) {
	d.Text(fmt.Sprintf("SCORE: %d", s.score), 5, 5, 8, core.AlignStart, core.AlignStart, core.ShadeLight)
	d.Text(fmt.Sprintf("LEVEL: %d", s.Level), 5, 15, 8, core.AlignStart, core.AlignStart, core.ShadeLight)
	d.Text(fmt.Sprintf("LINES: %d", s.Lines), 5, 25, 8, core.AlignStart, core.AlignStart, core.ShadeLight)

	d.Text("NEXT:", w-45, 5, 8, core.AlignStart, core.AlignStart, core.ShadeLight)
	for _, c := range s.Next.Shape.Cells(0, 0) {
		d.FillRect(w-40+float64(c.X*previewCell), 15+float64(c.Y*previewCell), previewCell, previewCell, BlockColor(s.Next.Color))
	}
}
