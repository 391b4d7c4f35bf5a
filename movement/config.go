package movement

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/geometry"
	"github.com/oomph-ac/kinematic/oerror"
)

// Config holds every tunable of a character controller. A Config is copied into a Simulator when it is
// created and never changes afterwards.
type Config struct {
	// Acceleration is how quickly the planar velocity approaches the intended velocity, in units/s².
	Acceleration float32
	// MaxSpeed is the planar speed reached with a full-length move intent, in units/s.
	MaxSpeed float32
	// Damping is the fraction of planar velocity retained per second without move intent. It must be
	// in (0, 1], where 1 disables damping.
	Damping float32
	// JumpImpulse is the vertical speed set when jumping, in units/s.
	JumpImpulse float32
	// JumpCooldown is the minimum time between two jumps, in seconds.
	JumpCooldown float32
	// MaxSlopeAngle is the steepest surface, in radians from the up axis, that counts as ground.
	MaxSlopeAngle float32
	// Gravity is the gravitational acceleration. Its opposite direction is the up axis of the body.
	Gravity mgl32.Vec3

	MouseSensitivity   float32
	GamepadSensitivity float32
	PitchMin           float32
	PitchMax           float32

	Shape geometry.Shape
	// SkinWidth is the gap kept between the body and any surface it moves against.
	SkinWidth float32
	// GroundProbeDistance is how far below the body ground is searched for.
	GroundProbeDistance float32
	// GroundBias is the small downward speed applied while grounded so the body stays in contact with
	// the ground, in units/s.
	GroundBias float32
	// StepHeight is the tallest ledge a grounded body climbs without jumping. Zero disables stepping.
	StepHeight float32
	// MaxIterations caps the amount of cast-and-slide passes per tick.
	MaxIterations int
	// VerticalEpsilon is the vertical speed under which a body may be considered grounded.
	VerticalEpsilon float32
}

// DefaultConfig returns a Config with sensible defaults for a human sized first person character.
func DefaultConfig() Config {
	return Config{
		Acceleration:        game.DefaultAcceleration,
		MaxSpeed:            game.DefaultMaxSpeed,
		Damping:             game.DefaultDamping,
		JumpImpulse:         game.DefaultJumpImpulse,
		JumpCooldown:        game.DefaultJumpCooldown,
		MaxSlopeAngle:       game.DefaultMaxSlopeAngle,
		Gravity:             mgl32.Vec3{0, game.DefaultGravity, 0},
		MouseSensitivity:    game.DefaultMouseSensitivity,
		GamepadSensitivity:  game.DefaultGamepadSensitivity,
		PitchMin:            -game.DefaultPitchLimit,
		PitchMax:            game.DefaultPitchLimit,
		Shape:               geometry.Shape{Width: game.DefaultBodyWidth, Height: game.DefaultBodyHeight},
		SkinWidth:           game.DefaultSkinWidth,
		GroundProbeDistance: game.DefaultGroundProbeDistance,
		GroundBias:          game.DefaultGroundBias,
		StepHeight:          game.DefaultStepHeight,
		MaxIterations:       game.DefaultMaxIterations,
		VerticalEpsilon:     game.DefaultVerticalEpsilon,
	}
}

// Validate returns a ConfigError describing the first field holding a value the controller cannot work
// with. Values are never clamped silently.
func (c Config) Validate() error {
	for el := c.scalars().Front(); el != nil; el = el.Next() {
		if !game.IsFinite(el.Value) {
			return oerror.NewConfigError(el.Key, "must be finite, got %v", el.Value)
		}
	}
	if !game.IsFiniteVec3(c.Gravity) {
		return oerror.NewConfigError("Gravity", "must be finite, got %v", c.Gravity)
	}

	switch {
	case c.Acceleration < 0:
		return oerror.NewConfigError("Acceleration", "must not be negative, got %v", c.Acceleration)
	case c.MaxSpeed < 0:
		return oerror.NewConfigError("MaxSpeed", "must not be negative, got %v", c.MaxSpeed)
	case c.Damping <= 0 || c.Damping > 1:
		return oerror.NewConfigError("Damping", "must be in (0, 1], got %v", c.Damping)
	case c.JumpImpulse < 0:
		return oerror.NewConfigError("JumpImpulse", "must not be negative, got %v", c.JumpImpulse)
	case c.JumpCooldown < 0:
		return oerror.NewConfigError("JumpCooldown", "must not be negative, got %v", c.JumpCooldown)
	case c.MaxSlopeAngle < 0 || c.MaxSlopeAngle >= game.HalfPi:
		return oerror.NewConfigError("MaxSlopeAngle", "must be in [0, pi/2), got %v", c.MaxSlopeAngle)
	case c.MouseSensitivity < 0:
		return oerror.NewConfigError("MouseSensitivity", "must not be negative, got %v", c.MouseSensitivity)
	case c.GamepadSensitivity < 0:
		return oerror.NewConfigError("GamepadSensitivity", "must not be negative, got %v", c.GamepadSensitivity)
	case c.PitchMin < -game.HalfPi:
		return oerror.NewConfigError("PitchMin", "must be at least -pi/2, got %v", c.PitchMin)
	case c.PitchMax > game.HalfPi:
		return oerror.NewConfigError("PitchMax", "must be at most pi/2, got %v", c.PitchMax)
	case c.PitchMin >= c.PitchMax:
		return oerror.NewConfigError("PitchMin", "must be below PitchMax (%v), got %v", c.PitchMax, c.PitchMin)
	case !c.Shape.Valid():
		return oerror.NewConfigError("Shape", "must have a positive size, got %vx%v", c.Shape.Width, c.Shape.Height)
	case c.SkinWidth < 0:
		return oerror.NewConfigError("SkinWidth", "must not be negative, got %v", c.SkinWidth)
	case c.GroundProbeDistance <= c.SkinWidth:
		return oerror.NewConfigError("GroundProbeDistance", "must exceed SkinWidth (%v), got %v", c.SkinWidth, c.GroundProbeDistance)
	case c.GroundBias < 0:
		return oerror.NewConfigError("GroundBias", "must not be negative, got %v", c.GroundBias)
	case c.StepHeight < 0 || c.StepHeight >= c.Shape.Height:
		return oerror.NewConfigError("StepHeight", "must be in [0, %v), got %v", c.Shape.Height, c.StepHeight)
	case c.MaxIterations < 1:
		return oerror.NewConfigError("MaxIterations", "must be at least 1, got %v", c.MaxIterations)
	case c.VerticalEpsilon < 0:
		return oerror.NewConfigError("VerticalEpsilon", "must not be negative, got %v", c.VerticalEpsilon)
	}
	return nil
}

// scalars returns every scalar field of the config in declaration order.
func (c Config) scalars() *orderedmap.OrderedMap[string, float32] {
	m := orderedmap.NewOrderedMap[string, float32]()
	m.Set("Acceleration", c.Acceleration)
	m.Set("MaxSpeed", c.MaxSpeed)
	m.Set("Damping", c.Damping)
	m.Set("JumpImpulse", c.JumpImpulse)
	m.Set("JumpCooldown", c.JumpCooldown)
	m.Set("MaxSlopeAngle", c.MaxSlopeAngle)
	m.Set("MouseSensitivity", c.MouseSensitivity)
	m.Set("GamepadSensitivity", c.GamepadSensitivity)
	m.Set("PitchMin", c.PitchMin)
	m.Set("PitchMax", c.PitchMax)
	m.Set("SkinWidth", c.SkinWidth)
	m.Set("GroundProbeDistance", c.GroundProbeDistance)
	m.Set("GroundBias", c.GroundBias)
	m.Set("StepHeight", c.StepHeight)
	m.Set("VerticalEpsilon", c.VerticalEpsilon)
	return m
}
