package session

import (
	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/render"
	"github.com/lixenwraith/vi-racer/system"
	"github.com/lixenwraith/vi-racer/vmath"
)

// viewBuffer collects the view sync hand-off of the latest frame
type viewBuffer struct {
	views []render.EntityView
	next  system.ViewSink
}

func (b *viewBuffer) SyncView(v component.ViewComponent, t component.TransformComponent) {
	b.views = append(b.views, render.EntityView{
		Handle:   v.Handle,
		Kind:     v.Kind.String(),
		Position: t.Position,
		Rotation: t.Rotation,
	})
	if b.next != nil {
		b.next.SyncView(v, t)
	}
}

func (b *viewBuffer) reset() {
	b.views = b.views[:0]
}

// Snapshot copies the state a renderer needs; the result stays valid after later ticks
func (s *Session) Snapshot() render.Frame {
	w := s.world
	frame := render.Frame{
		Frame:   w.Resource.Time.Frame,
		Elapsed: w.Resource.Time.Elapsed,
		Metrics: s.status.Snapshot(),
	}
	if !s.initialized {
		return frame
	}

	if len(s.views.views) > 0 {
		frame.Entities = make([]render.EntityView, len(s.views.views))
		copy(frame.Entities, s.views.views)
	}

	segments := s.stream.Segments()
	frame.Segments = make([]render.SegmentView, len(segments))
	for i := range segments {
		seg := &segments[i]
		frame.Segments[i] = render.SegmentView{
			Index:         seg.Index,
			Type:          seg.Type.String(),
			Fallback:      seg.Fallback,
			Width:         seg.Width,
			ControlPoints: seg.ControlPoints,
		}
	}

	if tr, ok := w.Components.Transform.Get(s.camera); ok {
		frame.Camera = render.CameraPose{Position: tr.Position, Rotation: tr.Rotation}
	}
	frame.Player = s.playerView()
	return frame
}

func (s *Session) playerView() render.PlayerView {
	c := &s.world.Components
	tr, ok := c.Transform.Get(s.player)
	if !ok {
		return render.PlayerView{}
	}
	pv := render.PlayerView{
		Present:  true,
		Position: tr.Position,
		Heading:  vmath.QuatForward(tr.Rotation),
		Segment:  -1,
	}
	if mv, ok := c.Movement.Get(s.player); ok {
		pv.Velocity = mv.Velocity
		pv.Speed = vmath.V3FMag(mv.Velocity)
	}
	if limit, ok := c.MaxSpeed.Get(s.player); ok {
		pv.MaxSpeed = limit.MaxSpeed
	}
	if veh, ok := c.Vehicle.Get(s.player); ok {
		pv.Heading = physics.HeadingFromYaw(veh.Yaw)
		pv.Bank = veh.Bank
		pv.State = veh.State.String()
		pv.Grounded = veh.Grounded
	}
	if contact, ok := c.TrackContact.Get(s.player); ok {
		pv.OffTrack = contact.OffTrack
		pv.Lateral = contact.Lateral
		pv.Segment = contact.Segment
	}
	return pv
}
