package input

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/movement"
)

// DefaultDeadzone is the stick deflection under which a gamepad stick is treated as centred.
const DefaultDeadzone = 0.1

// Gamepad turns gamepad state into intents. The left stick moves, the right stick looks and the south
// button jumps. Right stick Y is inverted so that pushing the stick up looks up.
type Gamepad struct {
	LeftStick, RightStick mgl32.Vec2
	// Deadzone is the radial deadzone applied to both sticks.
	Deadzone float32

	south, prevSouth bool
	enabled          bool
}

// NewGamepad returns an enabled Gamepad with the default deadzone.
func NewGamepad() *Gamepad {
	return &Gamepad{Deadzone: DefaultDeadzone, enabled: true}
}

// SetSouth records whether the south button is held down.
func (g *Gamepad) SetSouth(down bool) {
	g.south = down
}

// SetEnabled enables or disables the gamepad. A disabled gamepad produces empty intents.
func (g *Gamepad) SetEnabled(enabled bool) {
	g.enabled = enabled
}

// Intent returns the intent for the current frame and starts a new one.
func (g *Gamepad) Intent() movement.Intent {
	jump := g.south && !g.prevSouth
	g.prevSouth = g.south
	if !g.enabled {
		return movement.Intent{LookDevice: movement.DeviceGamepad}
	}

	look := g.applyDeadzone(g.RightStick)
	return movement.Intent{
		Move:       clampLength(g.applyDeadzone(g.LeftStick)),
		Look:       mgl32.Vec2{look.X(), -look.Y()},
		LookDevice: movement.DeviceGamepad,
		Jump:       jump,
	}
}

// applyDeadzone zeroes sticks inside the deadzone and rescales the rest so that output starts at zero
// on the deadzone edge and reaches full deflection at the rim.
func (g *Gamepad) applyDeadzone(stick mgl32.Vec2) mgl32.Vec2 {
	if !game.IsFiniteVec2(stick) {
		return mgl32.Vec2{}
	}
	dz := g.Deadzone
	if !(dz > 0) || dz >= 1 {
		return stick
	}
	l := stick.Len()
	if l <= dz {
		return mgl32.Vec2{}
	}
	scaled := (math32.Min(l, 1) - dz) / (1 - dz)
	return stick.Mul(scaled / l)
}
