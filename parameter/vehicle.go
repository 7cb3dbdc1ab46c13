package parameter

// Player spawn
const (
	// PlayerSpawnZ places the player a few units into segment 0
	PlayerSpawnZ = -5.0

	// PlayerSpawnHeight is the initial height above the track surface
	PlayerSpawnHeight = 0.0
)

// Longitudinal drive
const (
	// VehicleThrust is the forward acceleration at full throttle (units/s²)
	VehicleThrust = 40.0

	// VehicleBoostMultiplier scales thrust while boost is held
	VehicleBoostMultiplier = 1.8

	// VehicleBrakeForce is the deceleration applied while braking above the reverse threshold
	VehicleBrakeForce = 60.0

	// VehicleReverseThreshold is the speed at or below which brake input reverses
	VehicleReverseThreshold = 2.0

	// VehicleReverseKick is the backward velocity impulse on entering reverse
	VehicleReverseKick = 6.0

	// VehicleReverseForce is the continuous backward acceleration while reversing
	VehicleReverseForce = 15.0

	// VehicleStopSpeed is the speed under which a vehicle with no input is Stopped
	VehicleStopSpeed = 0.2

	// VehicleMaxSpeed is the hard speed clamp
	VehicleMaxSpeed = 60.0

	// VehicleDamping is the velocity fraction retained per reference frame
	VehicleDamping = 0.985
)

// Steering
const (
	// VehicleSteerRate is the yaw rate at full authority (rad/s)
	VehicleSteerRate = 1.8

	// VehicleSteerFullSpeed is the speed at which steering reaches full authority
	VehicleSteerFullSpeed = 15.0

	// VehicleMinSteerAuthority is the authority fraction available at a standstill
	VehicleMinSteerAuthority = 0.1

	// VehicleMouseSensitivity converts mouse delta pixels into yaw radians
	VehicleMouseSensitivity = 0.003

	// VehicleRollRate is the roll rate while airborne (rad/s)
	VehicleRollRate = 2.5
)

// Ground contact
const (
	// VehicleGravity is the downward acceleration while airborne
	VehicleGravity = 25.0

	// VehicleGroundEpsilon is the height above the surface still counted as contact
	VehicleGroundEpsilon = 0.05

	// VehicleLateralFriction is the per-second decay rate of sideways velocity on ground
	VehicleLateralFriction = 6.0
)
