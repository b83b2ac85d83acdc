package core

import (
	"fmt"
	"strings"
)

// Button is one of the eight physical buttons of the handheld.
type Button int

const (
	ButtonUp Button = iota
	ButtonDown
	ButtonLeft
	ButtonRight
	ButtonA
	ButtonB
	ButtonStart
	ButtonSelect

	// ButtonCount is the number of buttons; useful for sizing arrays.
	ButtonCount
)

var buttonNames = [ButtonCount]string{
	ButtonUp:     "up",
	ButtonDown:   "down",
	ButtonLeft:   "left",
	ButtonRight:  "right",
	ButtonA:      "a",
	ButtonB:      "b",
	ButtonStart:  "start",
	ButtonSelect: "select",
}

// String returns the lower-case button name used by the controller API.
func (b Button) String() string {
	if b < 0 || b >= ButtonCount {
		return "unknown"
	}
	return buttonNames[b]
}

// ParseButton maps a button name ("up", "a", "start", ...) to a Button.
// Matching is case-insensitive.
func ParseButton(name string) (Button, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for b, n := range buttonNames {
		if n == name {
			return Button(b), nil
		}
	}
	return 0, fmt.Errorf("core: unknown button %q", name)
}

// ButtonState is a snapshot of all eight buttons.
// Simulations receive it by value once per frame.
type ButtonState struct {
	Up, Down, Left, Right bool
	A, B                  bool
	Start, Select         bool
}

// Pressed reports whether the given button is held in this snapshot.
func (s ButtonState) Pressed(b Button) bool {
	switch b {
	case ButtonUp:
		return s.Up
	case ButtonDown:
		return s.Down
	case ButtonLeft:
		return s.Left
	case ButtonRight:
		return s.Right
	case ButtonA:
		return s.A
	case ButtonB:
		return s.B
	case ButtonStart:
		return s.Start
	case ButtonSelect:
		return s.Select
	default:
		return false
	}
}

// With returns a copy of s with button b set to down.
func (s ButtonState) With(b Button, down bool) ButtonState {
	switch b {
	case ButtonUp:
		s.Up = down
	case ButtonDown:
		s.Down = down
	case ButtonLeft:
		s.Left = down
	case ButtonRight:
		s.Right = down
	case ButtonA:
		s.A = down
	case ButtonB:
		s.B = down
	case ButtonStart:
		s.Start = down
	case ButtonSelect:
		s.Select = down
	}
	return s
}

// Input is the shared button record written by the controller and polled by
// the host once per frame. Only the latest state of each button is kept:
// a press and release that both land between two frames is never seen.
//
// Input is not safe for concurrent use; the controller and the host run on the
// same goroutine.
type Input struct {
	state ButtonState
}

// SetButton records a press (down=true) or release of a button.
func (in *Input) SetButton(b Button, down bool) {
	in.state = in.state.With(b, down)
}

// Read returns the current snapshot.
func (in *Input) Read() ButtonState {
	return in.state
}

// Reset releases every button.
func (in *Input) Reset() {
	in.state = ButtonState{}
}

// Latch turns a level-triggered button into a press edge: Rising returns true
// only on the first frame a button is seen down, and the button must be seen
// released before it can trigger again.
type Latch struct {
	held bool
}

// Rising reports whether down is a new press.
func (l *Latch) Rising(down bool) bool {
	if down && !l.held {
		l.held = true
		return true
	}
	if !down {
		l.held = false
	}
	return false
}

// Hold marks the button as already held so the current press cannot trigger.
func (l *Latch) Hold() {
	l.held = true
}
