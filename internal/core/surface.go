package core

import (
	"image"
	"image/color"
	"image/draw"
	"math"
	"sync"

	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// Surface is the fixed-resolution drawing target that stands for the
// handheld's screen. It replays DrawLists into an RGBA image that frontends
// copy to a terminal or a window.
//
// A Surface is owned by exactly one host and is not safe for concurrent use.
type Surface struct {
	img   *image.RGBA
	faces map[float64]font.Face
}

// NewSurface allocates a surface of the given logical size, cleared to black.
func NewSurface(width, height int) *Surface {
	s := &Surface{
		img:   image.NewRGBA(image.Rect(0, 0, width, height)),
		faces: make(map[float64]font.Face),
	}
	s.Clear(RGB(0, 0, 0))
	return s
}

// Width returns the surface width in logical pixels.
func (s *Surface) Width() int {
	return s.img.Rect.Dx()
}

// Height returns the surface height in logical pixels.
func (s *Surface) Height() int {
	return s.img.Rect.Dy()
}

// Image exposes the backing image. Callers must not retain it across frames.
func (s *Surface) Image() *image.RGBA {
	return s.img
}

// At returns the color of a pixel. Out-of-bounds coordinates return
// transparent black.
func (s *Surface) At(x, y int) Color {
	if !(image.Point{X: x, Y: y}).In(s.img.Rect) {
		return Color{}
	}
	return s.img.RGBAAt(x, y)
}

// Clear fills the entire surface with an opaque color.
func (s *Surface) Clear(c Color) {
	c.A = 0xff
	draw.Draw(s.img, s.img.Rect, image.NewUniform(c), image.Point{}, draw.Src)
}

// Release drops cached font faces. The surface must not be used afterwards.
func (s *Surface) Release() {
	for size, f := range s.faces {
		f.Close()
		delete(s.faces, size)
	}
}

// Render replays a draw list in order.
func (s *Surface) Render(d *DrawList) {
	for _, op := range d.Ops() {
		s.apply(op)
	}
}

func (s *Surface) apply(op DrawOp) {
	switch op.Kind {
	case OpBackground:
		s.Clear(op.Color)
	case OpFillRect:
		s.fill(rectOf(op.X, op.Y, op.W, op.H), op.Color)
	case OpStrokeRect:
		s.stroke(op)
	case OpEllipse:
		s.ellipse(op)
	case OpLine:
		s.line(op)
	case OpText:
		s.text(op)
	case OpOverlay:
		s.fill(s.img.Rect, op.Color)
	}
}

// rectOf rounds a fractional rectangle to whole pixels.
func rectOf(x, y, w, h float64) image.Rectangle {
	return image.Rect(
		int(math.Round(x)), int(math.Round(y)),
		int(math.Round(x+w)), int(math.Round(y+h)),
	).Canon()
}

// src converts a straight-alpha color to an image source.
func src(c Color) image.Image {
	return image.NewUniform(color.NRGBA(c))
}

func (s *Surface) fill(r image.Rectangle, c Color) {
	draw.Draw(s.img, r.Intersect(s.img.Rect), src(c), image.Point{}, draw.Over)
}

func (s *Surface) stroke(op DrawOp) {
	r := rectOf(op.X, op.Y, op.W, op.H)
	s.fill(image.Rect(r.Min.X, r.Min.Y, r.Max.X+1, r.Min.Y+1), op.Color)
	s.fill(image.Rect(r.Min.X, r.Max.Y, r.Max.X+1, r.Max.Y+1), op.Color)
	s.fill(image.Rect(r.Min.X, r.Min.Y, r.Min.X+1, r.Max.Y+1), op.Color)
	s.fill(image.Rect(r.Max.X, r.Min.Y, r.Max.X+1, r.Max.Y+1), op.Color)
}

func (s *Surface) ellipse(op DrawOp) {
	rx, ry := op.W/2, op.H/2
	if rx <= 0 || ry <= 0 {
		return
	}
	bounds := rectOf(op.X-rx, op.Y-ry, op.W, op.H).Intersect(s.img.Rect)
	c := src(op.Color)
	for py := bounds.Min.Y; py < bounds.Max.Y; py++ {
		for px := bounds.Min.X; px < bounds.Max.X; px++ {
			dx := (float64(px) + 0.5 - op.X) / rx
			dy := (float64(py) + 0.5 - op.Y) / ry
			if dx*dx+dy*dy <= 1 {
				draw.Draw(s.img, image.Rect(px, py, px+1, py+1), c, image.Point{}, draw.Over)
			}
		}
	}
}

func (s *Surface) line(op DrawOp) {
	weight := math.Max(op.Weight, 1)
	dx, dy := op.X2-op.X, op.Y2-op.Y
	steps := int(math.Ceil(math.Max(math.Abs(dx), math.Abs(dy))))
	if steps == 0 {
		steps = 1
	}
	half := weight / 2
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := op.X + dx*t
		y := op.Y + dy*t
		s.fill(rectOf(x-half, y-half, weight, weight), op.Color)
	}
}

func (s *Surface) text(op DrawOp) {
	if op.Text == "" {
		return
	}
	face := s.face(op.Size)
	if face == nil {
		return
	}
	d := font.Drawer{Dst: s.img, Src: src(op.Color), Face: face}
	advance := d.MeasureString(op.Text)
	m := face.Metrics()

	x := fixed.Int26_6(op.X * 64)
	switch op.HAlign {
	case AlignCenter:
		x -= advance / 2
	case AlignEnd:
		x -= advance
	}

	y := fixed.Int26_6(op.Y * 64)
	switch op.VAlign {
	case AlignStart:
		y += m.Ascent
	case AlignCenter:
		y += (m.Ascent - m.Descent) / 2
	case AlignEnd:
		y -= m.Descent
	}

	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(op.Text)
}

// face returns a cached monospace face for the pixel size.
func (s *Surface) face(size float64) font.Face {
	if size <= 0 {
		size = 8
	}
	if f, ok := s.faces[size]; ok {
		return f
	}
	otf, err := monoFont()
	if err != nil {
		return nil
	}
	f, err := opentype.NewFace(otf, &opentype.FaceOptions{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil
	}
	s.faces[size] = f
	return f
}

var (
	monoOnce sync.Once
	mono     *opentype.Font
	monoErr  error
)

// monoFont parses the embedded Go Mono font once per process.
func monoFont() (*opentype.Font, error) {
	monoOnce.Do(func() {
		mono, monoErr = opentype.Parse(gomono.TTF)
	})
	return mono, monoErr
}
