package render

import (
	"fmt"
	"math"
	"strings"

	"github.com/gdamore/tcell/v2"

	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

const (
	// Terminal cells are about twice as tall as wide
	cellAspect = 2.0

	// defaultRowsPerUnit shows roughly one segment per 12 rows at the default segment length
	defaultRowsPerUnit = 0.25

	hudRows = 2
)

// TerminalRenderer draws a top-down, heading-up view of the track around the player
type TerminalRenderer struct {
	screen Screen
	buf    *RenderBuffer

	width  int
	height int

	rowsPerUnit float64
}

// NewTerminalRenderer creates a renderer; screen may be nil when only the buffer is inspected
func NewTerminalRenderer(screen Screen, width, height int) *TerminalRenderer {
	return &TerminalRenderer{
		screen:      screen,
		buf:         NewRenderBuffer(width, height),
		width:       width,
		height:      height,
		rowsPerUnit: defaultRowsPerUnit,
	}
}

// Resize follows terminal size changes
func (r *TerminalRenderer) Resize(width, height int) {
	r.width, r.height = width, height
	r.buf.Resize(width, height)
}

// SetZoom sets the map scale in rows per world unit
func (r *TerminalRenderer) SetZoom(rowsPerUnit float64) {
	if rowsPerUnit > 0 && !math.IsInf(rowsPerUnit, 1) {
		r.rowsPerUnit = rowsPerUnit
	}
}

// Buffer exposes the composited frame
func (r *TerminalRenderer) Buffer() *RenderBuffer {
	return r.buf
}

// RenderFrame renders the entire frame and flushes it to the screen
func (r *TerminalRenderer) RenderFrame(frame *Frame) {
	r.buf.Clear()
	if frame == nil {
		r.flush()
		return
	}

	view := r.newViewport(frame)

	for _, seg := range VisibleSegments(frame, CameraPose{Position: view.origin}, view.radius) {
		r.drawSegment(view, &seg, seg.Index-frame.Player.Segment)
	}
	r.drawCamera(view, frame.Camera)
	r.drawVehicle(view, &frame.Player)
	r.drawStatusBar(frame)

	r.flush()
}

func (r *TerminalRenderer) flush() {
	if r.screen != nil {
		r.buf.Flush(r.screen)
	}
}

// viewport maps world XZ onto the map area, heading-up
type viewport struct {
	origin  vmath.Vec3F
	forward vmath.Vec3F
	right   vmath.Vec3F

	cx, cy    float64
	sx, sy    float64
	mapHeight int
	radius    float64
}

func (r *TerminalRenderer) newViewport(frame *Frame) viewport {
	mapHeight := r.height - hudRows
	if mapHeight < 1 {
		mapHeight = 1
	}
	fwd := vmath.V3FNormalize(vmath.V3FHorizontal(frame.Player.Heading))
	if fwd == vmath.V3FZero {
		fwd = vmath.V3FForward
	}
	v := viewport{
		origin:    frame.Player.Position,
		forward:   fwd,
		right:     track.RightOf(fwd),
		cx:        float64(r.width) / 2,
		cy:        float64(mapHeight) * 2 / 3, // More road ahead than behind
		sy:        r.rowsPerUnit,
		sx:        r.rowsPerUnit * cellAspect,
		mapHeight: mapHeight,
	}
	// Farthest visible point, corner of the map
	halfW := float64(r.width) / v.sx
	tall := float64(mapHeight) / v.sy
	v.radius = math.Hypot(halfW, tall) + 1
	return v
}

// project returns continuous cell coordinates of a world point
func (v *viewport) project(p vmath.Vec3F) (float64, float64) {
	d := vmath.V3FSub(p, v.origin)
	return v.cx + vmath.V3FDot(d, v.right)*v.sx, v.cy - vmath.V3FDot(d, v.forward)*v.sy
}

func (v *viewport) visible(x, y int) bool {
	return y >= 0 && y < v.mapHeight && x >= 0
}

func (r *TerminalRenderer) drawSegment(v viewport, seg *SegmentView, away int) {
	pts := seg.ControlPoints
	if len(pts) < 2 {
		return
	}
	left, right := track.Edges(pts, seg.Width)
	edge := StyleBackground.Foreground(fogged(edgeColor(seg), away))
	center := StyleBackground.Foreground(fogged(RgbCenterLine, away))

	for i := 1; i < len(pts); i++ {
		r.drawLine(v, pts[i-1], pts[i], '·', center)
	}
	for i := 1; i < len(pts); i++ {
		r.drawLine(v, left[i-1], left[i], '│', edge)
		r.drawLine(v, right[i-1], right[i], '│', edge)
	}

	// Segment index at the start of the right edge
	if x, y := v.project(right[0]); v.visible(int(x)+1, int(y)) {
		r.buf.Text(int(x)+1, int(y), fmt.Sprintf("%d", seg.Index), StyleBackground.Foreground(RgbCenterLine))
	}
}

func (r *TerminalRenderer) drawLine(v viewport, a, b vmath.Vec3F, ch rune, style tcell.Style) {
	if !vmath.V3FIsFinite(a) || !vmath.V3FIsFinite(b) {
		return
	}
	x1, y1 := v.project(a)
	x2, y2 := v.project(b)
	// Both ends far outside: nothing to draw and the walk could be long
	limit := float64(r.width + r.height)
	if math.Abs(x1-v.cx) > limit && math.Abs(x2-v.cx) > limit || math.Abs(y1-v.cy) > limit && math.Abs(y2-v.cy) > limit {
		return
	}
	vmath.TraverseCells(x1, y1, x2, y2, func(x, y int) bool {
		if v.visible(x, y) {
			r.buf.Set(x, y, ch, style)
		}
		return true
	})
}

func (r *TerminalRenderer) drawVehicle(v viewport, p *PlayerView) {
	if !p.Present {
		return
	}
	style := StyleBackground.Foreground(RgbVehicle)
	if p.OffTrack {
		style = StyleBackground.Foreground(RgbVehicleOff)
	}
	x, y := v.project(p.Position)
	ch := '▲'
	if p.State == "reversing" {
		ch = '▼'
	}
	r.buf.Set(int(x), int(y), ch, style)
}

func (r *TerminalRenderer) drawCamera(v viewport, c CameraPose) {
	x, y := v.project(c.Position)
	if v.visible(int(x), int(y)) {
		r.buf.Set(int(x), int(y), '◆', StyleBackground.Foreground(RgbCamera))
	}
}

// drawStatusBar draws the speed bar and the status line at the bottom
func (r *TerminalRenderer) drawStatusBar(frame *Frame) {
	if r.height < hudRows {
		return
	}
	p := &frame.Player
	ratio := 0.0
	if p.MaxSpeed > 0 {
		ratio = p.Speed / p.MaxSpeed
	}

	// Speed bar
	barY := r.height - 2
	filled := int(math.Round(ratio * float64(r.width)))
	for x := 0; x < r.width; x++ {
		if x < filled {
			r.buf.Set(x, barY, '█', StyleBackground.Foreground(speedColor(float64(x+1)/float64(r.width))))
		} else {
			r.buf.Set(x, barY, '█', StyleBackground.Foreground(RgbSpeedBarEmpty))
		}
	}

	statusY := r.height - 1
	bg := RgbStatusBg
	switch {
	case p.OffTrack:
		bg = RgbStatusWarnBg
	case ratio >= 0.95:
		bg = RgbStatusBoostBg
	}
	style := tcell.StyleDefault.Foreground(RgbStatusText).Background(bg)
	for x := 0; x < r.width; x++ {
		r.buf.Set(x, statusY, ' ', style)
	}
	r.buf.Text(0, statusY, StatusLine(frame), style)
}

// StatusLine formats the HUD text
func StatusLine(frame *Frame) string {
	p := &frame.Player
	state := "--"
	if p.Present {
		state = strings.ToUpper(p.State)
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, " %s | %5.1f u/s | seg %d", state, p.Speed, p.Segment)
	if fb, ok := frame.Metrics[status.TrackFallbacks].(int64); ok && fb > 0 {
		fmt.Fprintf(&sb, " | fallback %d", fb)
	}
	if fps, ok := frame.Metrics[status.SimFPS].(float64); ok && fps > 0 {
		fmt.Fprintf(&sb, " | %3.0f fps", fps)
	}
	if p.OffTrack {
		sb.WriteString(" | OFF TRACK")
	}
	return sb.String()
}
