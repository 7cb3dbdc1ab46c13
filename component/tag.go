package component

// Zero-size tags mark entity roles

// IsPlayer marks the single player vehicle
type IsPlayer struct{}

// IsCamera marks the single follow camera
type IsCamera struct{}

// IsTrack marks track segments and the ground plane
type IsTrack struct{}

// IsGround marks the fallback ground plane track entity, which has no TrackSegmentComponent
type IsGround struct{}
