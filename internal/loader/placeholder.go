package loader

import (
	"fmt"
	"strings"

	"github.com/vovakirdan/handheld/internal/core"
	"github.com/vovakirdan/handheld/internal/registry"
)

// PhaseError is the phase reported by a placeholder's state.
const PhaseError core.Phase = "error"

// maxLineRunes keeps wrapped error text inside the 160px screen at size 8.
const maxLineRunes = 30

// Placeholder stands in for a simulation that could not be resolved or
// initialized. Every frame it clears the surface to neutral gray and shows
// the failing name and error.
type Placeholder struct {
	name string
	err  error
}

// NewPlaceholder returns a placeholder for the failed game name.
func NewPlaceholder(name string, err error) *Placeholder {
	if err == nil {
		err = fmt.Errorf("unknown error")
	}
	return &Placeholder{name: name, err: err}
}

var _ registry.Simulation = (*Placeholder)(nil)

func (p *Placeholder) ID() string    { return p.name }
func (p *Placeholder) Title() string { return "Error" }

// Err returns the failure the placeholder reports.
func (p *Placeholder) Err() error { return p.err }

type placeholderState struct{}

func (placeholderState) Phase() core.Phase { return PhaseError }

// Init never fails.
func (p *Placeholder) Init(core.Env) (core.State, error) {
	return placeholderState{}, nil
}

// Step ignores input and redraws the error screen.
func (p *Placeholder) Step(s core.State, _ core.ButtonState, f core.Frame) (core.State, *core.DrawList) {
	w, h := float64(f.Width), float64(f.Height)

	d := core.NewDrawList()
	d.Background(core.ColorPlaceholder)
	d.Text(fmt.Sprintf("Error loading %q", p.name), w/2, h/2-16, 8, core.AlignCenter, core.AlignCenter, core.ColorWhite)

	y := h/2 + 2
	for _, line := range wrap(p.err.Error(), maxLineRunes) {
		d.Text(line, w/2, y, 6, core.AlignCenter, core.AlignCenter, core.ColorWhite)
		y += 8
	}
	return s, d
}

// wrap splits text into lines of at most width runes, breaking on spaces
// where possible.
func wrap(text string, width int) []string {
	var lines []string
	var cur []rune

	flush := func() {
		if len(cur) > 0 {
			lines = append(lines, string(cur))
			cur = cur[:0]
		}
	}

	for _, word := range strings.Fields(text) {
		r := []rune(word)
		for len(r) > width {
			flush()
			lines = append(lines, string(r[:width]))
			r = r[width:]
		}
		if len(cur) > 0 && len(cur)+1+len(r) > width {
			flush()
		}
		if len(cur) > 0 {
			cur = append(cur, ' ')
		}
		cur = append(cur, r...)
	}
	flush()
	return lines
}
