package render

import (
	"github.com/gdamore/tcell/v2"
)

// Palette
var (
	RgbBackground   = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
	RgbTrackEdge    = tcell.NewRGBColor(180, 180, 180) // Brighter gray
	RgbCenterLine   = tcell.NewRGBColor(90, 90, 110)
	RgbFallbackEdge = tcell.NewRGBColor(200, 50, 50) // Degraded segment
	RgbCurveEdge    = tcell.NewRGBColor(100, 150, 255)
	RgbHillEdge     = tcell.NewRGBColor(0, 200, 0)
	RgbVehicle      = tcell.NewRGBColor(255, 165, 0) // Orange
	RgbVehicleOff   = tcell.NewRGBColor(255, 0, 0)
	RgbCamera       = tcell.NewRGBColor(140, 190, 255)

	RgbStatusText    = tcell.NewRGBColor(0, 0, 0)
	RgbStatusBg      = tcell.NewRGBColor(135, 206, 250) // Light sky blue
	RgbStatusWarnBg  = tcell.NewRGBColor(200, 50, 50)   // Red
	RgbStatusBoostBg = tcell.NewRGBColor(255, 192, 203) // Pink
	RgbSpeedBar      = tcell.NewRGBColor(255, 255, 0)
	RgbSpeedBarEmpty = tcell.NewRGBColor(50, 50, 50)
)

// StyleBackground is the style of an empty cell
var StyleBackground = tcell.StyleDefault.Background(RgbBackground)

// edgeColor picks the boundary color by segment type
func edgeColor(seg *SegmentView) tcell.Color {
	switch {
	case seg.Fallback:
		return RgbFallbackEdge
	case seg.Type == "curve-left" || seg.Type == "curve-right":
		return RgbCurveEdge
	case seg.Type == "hill-up" || seg.Type == "hill-down":
		return RgbHillEdge
	default:
		return RgbTrackEdge
	}
}

// speedColor blends from green to red across the speed ratio
func speedColor(ratio float64) tcell.Color {
	if ratio < 0 {
		ratio = 0
	}
	if ratio > 1 {
		ratio = 1
	}
	return tcell.NewRGBColor(int32(255*ratio), int32(255*(1-ratio)), 0)
}
