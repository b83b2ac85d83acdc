package core

// OpKind identifies a draw command.
type OpKind uint8

const (
	OpBackground OpKind = iota
	OpFillRect
	OpStrokeRect
	OpEllipse
	OpLine
	OpText
	OpOverlay
)

// String returns the command name.
func (k OpKind) String() string {
	switch k {
	case OpBackground:
		return "background"
	case OpFillRect:
		return "fillRect"
	case OpStrokeRect:
		return "strokeRect"
	case OpEllipse:
		return "ellipse"
	case OpLine:
		return "line"
	case OpText:
		return "text"
	case OpOverlay:
		return "overlay"
	default:
		return "unknown"
	}
}

// Align positions text relative to its anchor point.
type Align uint8

const (
	AlignStart  Align = iota // left, or top
	AlignCenter              // centered on the anchor
	AlignEnd                 // right, or bottom
)

// DrawOp is a single recorded drawing primitive. Coordinates are logical
// surface pixels and may be fractional; the surface rounds them.
type DrawOp struct {
	Kind  OpKind
	Color Color

	// Rectangles use X, Y, W, H (top-left corner).
	// Ellipses use X, Y as the center and W, H as the diameters.
	// Lines run from (X, Y) to (X2, Y2) with the given Weight.
	X, Y   float64
	W, H   float64
	X2, Y2 float64
	Weight float64

	// Text
	Text   string
	Size   float64
	HAlign Align
	VAlign Align
}

// DrawList is the ordered list of draw commands a simulation produces in one
// Step. The host replays it onto the surface.
type DrawList struct {
	ops []DrawOp
}

// NewDrawList creates an empty draw list.
func NewDrawList() *DrawList {
	return &DrawList{ops: make([]DrawOp, 0, 32)}
}

// Background fills the whole surface with an opaque color.
func (d *DrawList) Background(c Color) {
	d.ops = append(d.ops, DrawOp{Kind: OpBackground, Color: c})
}

// FillRect draws a filled rectangle.
func (d *DrawList) FillRect(x, y, w, h float64, c Color) {
	d.ops = append(d.ops, DrawOp{Kind: OpFillRect, X: x, Y: y, W: w, H: h, Color: c})
}

// StrokeRect draws a one pixel rectangle outline.
func (d *DrawList) StrokeRect(x, y, w, h float64, c Color) {
	d.ops = append(d.ops, DrawOp{Kind: OpStrokeRect, X: x, Y: y, W: w, H: h, Color: c, Weight: 1})
}

// Ellipse draws a filled ellipse centered on (cx, cy).
func (d *DrawList) Ellipse(cx, cy, w, h float64, c Color) {
	d.ops = append(d.ops, DrawOp{Kind: OpEllipse, X: cx, Y: cy, W: w, H: h, Color: c})
}

// Line draws a straight line with the given stroke weight.
func (d *DrawList) Line(x1, y1, x2, y2, weight float64, c Color) {
	d.ops = append(d.ops, DrawOp{Kind: OpLine, X: x1, Y: y1, X2: x2, Y2: y2, Weight: weight, Color: c})
}

// Text draws a string anchored at (x, y) with the given pixel size and
// alignment.
func (d *DrawList) Text(s string, x, y, size float64, h, v Align, c Color) {
	d.ops = append(d.ops, DrawOp{
		Kind: OpText, Text: s, X: x, Y: y, Size: size,
		HAlign: h, VAlign: v, Color: c,
	})
}

// Overlay blends a translucent color over the whole surface.
func (d *DrawList) Overlay(c Color) {
	d.ops = append(d.ops, DrawOp{Kind: OpOverlay, Color: c})
}

// Ops returns the recorded commands in order.
func (d *DrawList) Ops() []DrawOp {
	if d == nil {
		return nil
	}
	return d.ops
}

// Len returns the number of recorded commands.
func (d *DrawList) Len() int {
	if d == nil {
		return 0
	}
	return len(d.ops)
}

// Texts returns every string drawn by the list, in order.
func (d *DrawList) Texts() []string {
	var out []string
	for _, op := range d.Ops() {
		if op.Kind == OpText {
			out = append(out, op.Text)
		}
	}
	return out
}

// HasText reports whether s was drawn verbatim.
func (d *DrawList) HasText(s string) bool {
	for _, t := range d.Texts() {
		if t == s {
			return true
		}
	}
	return false
}
