package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/vovakirdan/handheld/internal/core"
)

// upperHalf paints the top pixel with the foreground color and the bottom
// pixel with the background color, so one cell holds two surface rows.
const upperHalf = "▀"

// cellRun is a horizontal run of cells sharing the same pixel pair.
type cellRun struct {
	top, bottom core.Color
	n           int
}

// cellRuns groups the cells of one text row. Row y covers surface rows 2y
// and 2y+1; a missing bottom row on odd-height surfaces reads as black.
func cellRuns(s *core.Surface, y int) []cellRun {
	var runs []cellRun
	for x, width := 0, s.Width(); x < width; x++ {
		top := opaque(s.At(x, 2*y))
		bottom := core.RGB(0, 0, 0)
		if 2*y+1 < s.Height() {
			bottom = opaque(s.At(x, 2*y+1))
		}

		if n := len(runs); n > 0 && runs[n-1].top == top && runs[n-1].bottom == bottom {
			runs[n-1].n++
			continue
		}
		runs = append(runs, cellRun{top: top, bottom: bottom, n: 1})
	}
	return runs
}

// RenderSurface converts a surface to a styled string for display.
// Groups adjacent cells with the same colors to minimize ANSI escape sequences.
func RenderSurface(r *lipgloss.Renderer, s *core.Surface) string {
	if r == nil {
		r = lipgloss.DefaultRenderer()
	}
	rows := (s.Height() + 1) / 2
	styles := make(map[[2]core.Color]lipgloss.Style)

	var sb strings.Builder
	// Pre-allocate with extra space for ANSI codes
	sb.Grow(s.Width()*rows*4 + rows)

	for y := 0; y < rows; y++ {
		if y > 0 {
			sb.WriteRune('\n')
		}
		for _, run := range cellRuns(s, y) {
			pair := [2]core.Color{run.top, run.bottom}
			style, ok := styles[pair]
			if !ok {
				style = r.NewStyle().
					Foreground(lipgloss.Color(hex(run.top))).
					Background(lipgloss.Color(hex(run.bottom)))
				styles[pair] = style
			}
			sb.WriteString(style.Render(strings.Repeat(upperHalf, run.n)))
		}
	}
	return sb.String()
}

func hex(c core.Color) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}

func opaque(c core.Color) core.Color {
	c.A = 0xff
	return c
}
