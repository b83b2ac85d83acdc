package core

import "image/color"

// Color is an opaque or translucent RGBA color used by draw commands.
type Color = color.RGBA

// RGB returns an opaque color.
func RGB(r, g, b uint8) Color {
	return Color{R: r, G: g, B: b, A: 0xff}
}

// RGBA returns a color with the given alpha. Channels are not premultiplied;
// the surface premultiplies when compositing.
func RGBA(r, g, b, a uint8) Color {
	return Color{R: r, G: g, B: b, A: a}
}

// The four-shade green palette of the handheld's LCD, darkest first.
var (
	ShadeDarkest = RGB(15, 56, 15)
	ShadeDark    = RGB(60, 105, 60)
	ShadeLight   = RGB(90, 142, 90)
	ShadeFood    = RGB(142, 90, 90)
)

// Shell colors painted outside of any simulation.
var (
	ColorIdle        = RGB(70, 70, 70) // powered off or between games
	ColorPlaceholder = RGB(70, 80, 70) // failed sketch background
	ColorWhite       = RGB(255, 255, 255)
)
