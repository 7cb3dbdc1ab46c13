package parameter

// Track geometry defaults
// Length and width are fixed per session, only curvature/elevation/type vary
const (
	// SegmentLength is the centerline length of every segment
	SegmentLength = 50.0

	// TrackWidth is the full drivable width of every segment
	TrackWidth = 20.0

	// ControlPointCount is the number of centerline samples per segment, endpoints inclusive
	ControlPointCount = 11

	// RenderDistance is the number of segments kept ahead of and behind the player
	RenderDistance = 10

	// StraightLeadIn forces segments with index <= this value to be straight
	StraightLeadIn = 5
)

// Shape variation
const (
	// MinCurvature is the smallest turn (radians over one segment) of a curve segment
	MinCurvature = 0.15

	// MaxCurvature is the largest turn (radians over one segment)
	MaxCurvature = 0.6

	// MinElevation and MaxElevation bound the net vertical change of one segment
	MinElevation = -6.0
	MaxElevation = 6.0

	// CurveFrequency in [0,1]; a segment curves when |shape noise| > 1-CurveFrequency
	CurveFrequency = 0.45

	// ElevationFrequency in [0,1]; a segment is labeled a hill when |elevation noise| > 1-ElevationFrequency
	ElevationFrequency = 0.35

	// TrackSeed offsets the noise domain
	TrackSeed = 1337
)

// Noise sampling
const (
	// NoiseIndexStep is the noise-domain distance between consecutive segment indices
	NoiseIndexStep = 0.173

	// ElevationNoiseOffset decorrelates the elevation sample from the shape sample
	ElevationNoiseOffset = 911.37
)

// Streaming
const (
	// ContainmentTolerance scales the half-width used when locating the player's segment
	// Values above 1 keep a slightly off-track player attached to the segment beside them
	ContainmentTolerance = 2.0
)
