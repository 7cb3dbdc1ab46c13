package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB is an 8-bit color used for shading math before conversion to tcell
type RGB struct {
	R, G, B uint8
}

// fogSegments is the index distance at which a segment reaches maxFog
const (
	fogSegments = 12.0
	maxFog      = 0.7
)

func clamp(v float64) uint8 {
	if v >= 255.0 {
		return 255
	}
	if v <= 0.0 {
		return 0
	}
	return uint8(v)
}

// TcellToRGB converts c, treating ColorDefault as the background
func TcellToRGB(c tcell.Color) RGB {
	if c == tcell.ColorDefault {
		c = RgbBackground
	}
	r, g, b := c.RGB()
	return RGB{uint8(r), uint8(g), uint8(b)}
}

func RGBToTcell(rgb RGB) tcell.Color {
	return tcell.NewRGBColor(int32(rgb.R), int32(rgb.G), int32(rgb.B))
}

// Lerp linearly interpolates between two colors
// t=0 returns a, t=1 returns b
func Lerp(a, b RGB, t float64) RGB {
	if t <= 0 {
		return a
	}
	if t >= 1 {
		return b
	}
	return RGB{
		R: clamp(float64(a.R) + t*float64(int(b.R)-int(a.R))),
		G: clamp(float64(a.G) + t*float64(int(b.G)-int(a.G))),
		B: clamp(float64(a.B) + t*float64(int(b.B)-int(a.B))),
	}
}

// Scale multiplies all channels by factor
func Scale(c RGB, factor float64) RGB {
	return RGB{
		R: clamp(float64(c.R) * factor),
		G: clamp(float64(c.G) * factor),
		B: clamp(float64(c.B) * factor),
	}
}

// fogged fades c toward the background by how many segments away it is from the player
func fogged(c tcell.Color, segmentsAway int) tcell.Color {
	if segmentsAway < 0 {
		segmentsAway = -segmentsAway
	}
	if segmentsAway == 0 {
		return c
	}
	t := min(float64(segmentsAway)/fogSegments, 1) * maxFog
	return RGBToTcell(Lerp(TcellToRGB(c), TcellToRGB(RgbBackground), t))
}
