package parameter

// Track boundary enforcement
const (
	// BoundaryTolerance scales the half width before correction starts
	BoundaryTolerance = 0.9

	// BoundaryCorrectionStrength is the corrective force per unit of overshoot
	BoundaryCorrectionStrength = 30.0

	// BoundaryOffTrackDamping is the velocity fraction retained per reference frame while off-track
	BoundaryOffTrackDamping = 0.96

	// BoundaryJitter is the max per-axis rumble displacement while off-track
	BoundaryJitter = 0.04

	// BoundaryJitterSeed seeds the rumble source
	BoundaryJitterSeed = 7
)
