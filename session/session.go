// Package session owns one simulation world: its lifecycle, the per-frame pipeline
// and the renderer-facing snapshot.
package session

import (
	"github.com/mlange-42/ark/ecs"
	"github.com/pkg/errors"
	"github.com/segmentio/ksuid"

	"github.com/lixenwraith/vi-racer/component"
	"github.com/lixenwraith/vi-racer/config"
	"github.com/lixenwraith/vi-racer/engine"
	"github.com/lixenwraith/vi-racer/logging"
	"github.com/lixenwraith/vi-racer/parameter"
	"github.com/lixenwraith/vi-racer/physics"
	"github.com/lixenwraith/vi-racer/status"
	"github.com/lixenwraith/vi-racer/system"
	"github.com/lixenwraith/vi-racer/track"
	"github.com/lixenwraith/vi-racer/vmath"
)

// ErrNoPlayer aborts initialization; no gameplay is possible without a player
var ErrNoPlayer = errors.New("player entity could not be created")

// groundScale sizes the fallback ground plane
const groundScale = 1000.0

// Session is an explicit world context replacing process-wide game state
// Not safe for concurrent use: Initialize, Tick, Snapshot and Teardown share one goroutine
type Session struct {
	ID ksuid.KSUID

	cfg    config.Config
	log    *logging.Logger
	status *status.Registry

	world  *engine.World
	stream *track.Stream
	input  system.InputSource
	views  *viewBuffer

	initialized bool
	player      ecs.Entity
	camera      ecs.Entity
	ground      ecs.Entity
}

// Option customizes a session at construction
type Option func(*Session)

// WithInput sets the per-frame input source, typically an input.Collector
func WithInput(src system.InputSource) Option {
	return func(s *Session) { s.input = src }
}

// WithLogger sets the session logger
func WithLogger(log *logging.Logger) Option {
	return func(s *Session) { s.log = log }
}

// WithStatus shares a metrics registry with HUD or bridge readers
func WithStatus(reg *status.Registry) Option {
	return func(s *Session) { s.status = reg }
}

// WithViewSink forwards every synced transform to an additional renderer
func WithViewSink(sink system.ViewSink) Option {
	return func(s *Session) { s.views.next = sink }
}

// New builds the world and registers the pipeline; entities appear on Initialize
func New(cfg config.Config, opts ...Option) *Session {
	s := &Session{
		ID:    ksuid.New(),
		cfg:   cfg,
		views: &viewBuffer{},
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.status == nil {
		s.status = status.NewRegistry()
	}
	if s.log == nil {
		s.log = logging.Discard()
	}
	s.log = s.log.With("session " + s.ID.String())

	s.world = engine.NewWorld(cfg, s.status, s.log)
	s.stream = track.NewStream(track.NewGenerator(cfg.Track, s.log.With("track")), s.world, s.log.With("stream"))
	s.world.Resource.Track.Stream = s.stream

	s.world.AddSystem(system.NewTimeSystem(s.world))
	s.world.AddSystem(system.NewPollInputSystem(s.world, s.input))
	s.world.AddSystem(system.NewDriveSystem(s.world))
	s.world.AddSystem(system.NewForceSystem(s.world))
	s.world.AddSystem(system.NewSpeedLimitSystem(s.world))
	s.world.AddSystem(system.NewMovementSystem(s.world))
	s.world.AddSystem(system.NewTrackSystem(s.world))
	s.world.AddSystem(system.NewBoundarySystem(s.world))
	s.world.AddSystem(system.NewCameraSystem(s.world))
	s.world.AddSystem(system.NewViewSystem(s.world, s.views))
	return s
}

// Initialize spawns the camera, the initial track, the ground plane and the player
// Idempotent: a second call on an initialized session does nothing
func (s *Session) Initialize(cameraPos vmath.Vec3F) error {
	if s.initialized {
		return nil
	}
	if err := s.cfg.Vehicle.Validate(); err != nil {
		return errors.Wrapf(ErrNoPlayer, "vehicle config: %v", err)
	}
	if !vmath.V3FIsFinite(cameraPos) {
		return errors.Errorf("camera position %v not finite", cameraPos)
	}

	s.camera = s.spawnCamera(cameraPos)
	s.stream.SpawnInitialTrack()
	s.ground = s.spawnGround()

	player, err := s.spawnPlayer()
	if err != nil {
		s.destroyAll()
		return err
	}
	s.player = player
	s.initialized = true

	s.log.Infof("initialized: %d segments, seed %d", s.stream.ActiveCount(), s.cfg.Track.Seed)
	return nil
}

func (s *Session) spawnCamera(pos vmath.Vec3F) ecs.Entity {
	w := s.world
	e := w.CreateEntity(component.NewTransform(pos))
	w.Components.Camera.Set(e, component.IsCamera{})
	w.Components.CameraRig.Set(e, component.CameraRigComponent{})
	w.Components.View.Set(e, component.ViewComponent{Kind: component.ViewCamera})
	return e
}

// spawnGround adds the fallback visual plane: tagged as track but without a segment
func (s *Session) spawnGround() ecs.Entity {
	w := s.world
	t := component.NewTransform(vmath.V3FZero)
	t.Scale = vmath.Vec3F{X: groundScale, Y: 1, Z: groundScale}
	e := w.CreateEntity(t)
	w.Components.Track.Set(e, component.IsTrack{})
	w.Components.Ground.Set(e, component.IsGround{})
	w.Components.View.Set(e, component.ViewComponent{Kind: component.ViewGround})
	return e
}

func (s *Session) spawnPlayer() (ecs.Entity, error) {
	w := s.world
	cfg := &s.cfg.Vehicle

	seg0, ok := s.stream.Segment(0)
	if !ok {
		return ecs.Entity{}, errors.Wrap(ErrNoPlayer, "segment 0 missing")
	}
	heading := vmath.V3FNormalize(vmath.V3FHorizontal(seg0.StartDirection))
	spawn := vmath.V3FAdd(seg0.StartPosition, vmath.V3FScale(heading, -parameter.PlayerSpawnZ))
	spawn.Y = track.SurfaceHeight(&seg0, spawn) + parameter.PlayerSpawnHeight
	yaw := physics.YawFromHeading(heading)

	t := component.NewTransform(spawn)
	t.Rotation = physics.Orientation(yaw, 0)
	e := w.CreateEntity(t)
	if !w.Alive(e) {
		return ecs.Entity{}, errors.Wrap(ErrNoPlayer, "entity not alive after spawn")
	}
	w.Components.Movement.Set(e, component.MovementComponent{Damping: cfg.Damping, Thrust: cfg.Thrust})
	w.Components.Input.Set(e, component.InputComponent{})
	w.Components.MaxSpeed.Set(e, component.MaxSpeedComponent{MaxSpeed: cfg.MaxSpeed})
	w.Components.Vehicle.Set(e, component.VehicleComponent{State: component.StateStopped, Grounded: true, Yaw: yaw})
	w.Components.TrackContact.Set(e, component.TrackContactComponent{
		Segment:       0,
		SurfaceHeight: spawn.Y - parameter.PlayerSpawnHeight,
		HasSurface:    true,
	})
	w.Components.View.Set(e, component.ViewComponent{Kind: component.ViewVehicle})
	w.Components.Player.Set(e, component.IsPlayer{})
	return e, nil
}

// Tick advances the simulation by dt seconds; no-op before Initialize
func (s *Session) Tick(dt float64) {
	if !s.initialized {
		return
	}
	s.views.reset()
	s.world.Resource.Time.Advance(dt)
	s.world.Update()
}

// Teardown destroys the player, camera, ground and all segments; Initialize may be called again
func (s *Session) Teardown() {
	if !s.initialized {
		return
	}
	s.destroyAll()
	s.initialized = false
	s.log.Infof("teardown at frame %d", s.world.Resource.Time.Frame)
	s.world.Resource.Time.Reset()
}

func (s *Session) destroyAll() {
	for _, e := range []ecs.Entity{s.player, s.camera, s.ground} {
		s.world.DestroyEntity(e)
	}
	s.player, s.camera, s.ground = ecs.Entity{}, ecs.Entity{}, ecs.Entity{}
	s.stream.ResetTrack()
	s.views.reset()
}

// Initialized reports whether the session holds live entities
func (s *Session) Initialized() bool { return s.initialized }

// World exposes the entity world for tools and tests
func (s *Session) World() *engine.World { return s.world }

// Stream exposes the track stream manager
func (s *Session) Stream() *track.Stream { return s.stream }

// Status returns the session's metrics registry
func (s *Session) Status() *status.Registry { return s.status }

// Config returns the session configuration
func (s *Session) Config() config.Config { return s.cfg }
