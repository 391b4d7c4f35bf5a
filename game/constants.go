package game

import "math"

const (
	DefaultAcceleration       = float32(30)
	DefaultMaxSpeed           = float32(5)
	DefaultDamping            = float32(0.002)
	DefaultJumpImpulse        = float32(7)
	DefaultJumpCooldown       = float32(0.25)
	DefaultMaxSlopeAngle      = float32(math.Pi / 4)
	DefaultGravity            = float32(-9.81)
	DefaultMouseSensitivity   = float32(0.002)
	DefaultGamepadSensitivity = float32(2.0)
	// DefaultPitchLimit is 89 degrees in radians.
	DefaultPitchLimit = float32(89 * math.Pi / 180)

	DefaultBodyWidth           = float32(0.8)
	DefaultBodyHeight          = float32(1.8)
	DefaultSkinWidth           = float32(0.01)
	DefaultGroundProbeDistance = float32(0.1)
	DefaultGroundBias          = float32(0.1)
	DefaultStepHeight          = float32(0.3)
	DefaultMaxIterations       = 4
	DefaultVerticalEpsilon     = float32(1e-3)

	// VelocityEpsilon is the magnitude below which velocity components are zeroed.
	VelocityEpsilon = float32(1e-6)
	// ContactEpsilon is the tolerance used when deciding if two shapes are touching.
	ContactEpsilon = float32(1e-5)

	HalfPi = float32(math.Pi / 2)
)
