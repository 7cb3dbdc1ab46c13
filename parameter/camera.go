package parameter

// Camera follow rig
// Offsets are in the player's local frame: +Y up, +Z behind
const (
	// CameraBaseHeight is the offset height at standstill
	CameraBaseHeight = 6.0

	// CameraHeightDrop is subtracted from the height at max speed
	CameraHeightDrop = 2.5

	// CameraBaseDistance is the trailing distance at standstill
	CameraBaseDistance = 12.0

	// CameraDistanceGrow is added to the distance at max speed
	CameraDistanceGrow = 6.0

	// CameraFollowSharpness is the exponential position blend rate (1/s)
	CameraFollowSharpness = 6.0

	// CameraRotationSharpness is the exponential orientation blend rate (1/s)
	CameraRotationSharpness = 8.0

	// CameraLookAhead is the distance ahead of the player the camera aims at
	CameraLookAhead = 10.0

	// CameraMinDistance and CameraMaxDistance bound the camera-player distance
	CameraMinDistance = 6.0
	CameraMaxDistance = 24.0

	// CameraMinHeight is the minimum height above the player's ground surface
	CameraMinHeight = 1.5
)
