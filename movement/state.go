package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/geometry"
)

// Mode is the locomotion mode of a body.
type Mode uint8

const (
	ModeAirborne Mode = iota
	ModeGrounded
)

func (m Mode) String() string {
	if m == ModeGrounded {
		return "grounded"
	}
	return "airborne"
}

// LookDevice is the kind of device a look delta came from.
type LookDevice uint8

const (
	// DeviceMouse look deltas are raw mouse movement, independent of the tick duration.
	DeviceMouse LookDevice = iota
	// DeviceGamepad look deltas are stick deflections in [-1, 1], treated as rates.
	DeviceGamepad
)

// Intent is the normalised input of a body for a single tick.
type Intent struct {
	// Move is the desired planar movement: X strafes right, Y moves forward. Its length is clamped to 1.
	Move mgl32.Vec2
	// Look is the yaw (X) and pitch (Y) input for the tick.
	Look       mgl32.Vec2
	LookDevice LookDevice
	// Jump is true only on the tick the jump input was pressed.
	Jump bool
}

// ContactInfo describes a surface the body touched during a tick.
type ContactInfo struct {
	Point       mgl32.Vec3
	Normal      mgl32.Vec3
	Distance    float32
	Penetration float32
	// SlopeAngle is the angle between Normal and the up axis, in radians.
	SlopeAngle float32
	Entity     geometry.Entity
}

// State is the persistent movement state of a single body. It is only modified by Simulator.Tick.
type State struct {
	Velocity     mgl32.Vec3
	Grounded     bool
	GroundNormal mgl32.Vec3
	Mode         Mode

	Yaw, Pitch float32

	// JumpRequested is set from the tick's intent and consumed by the same tick.
	JumpRequested bool
	// TimeSinceJump is the time in seconds since the last jump.
	TimeSinceJump float32

	// Ticks is the amount of ticks this state has been simulated for.
	Ticks uint64
}

// NewState returns the state of a body that has just been spawned: at rest and airborne.
func NewState() *State {
	return &State{TimeSinceJump: math32.Inf(1)}
}

// SetVel sets the velocity of the state.
func (s *State) SetVel(v mgl32.Vec3) {
	s.Velocity = v
}

// SetGrounded updates the grounded flag and mode together, recording the ground normal when grounded.
func (s *State) SetGrounded(grounded bool, normal mgl32.Vec3) {
	s.Grounded = grounded
	if grounded {
		s.Mode = ModeGrounded
		s.GroundNormal = normal
		return
	}
	s.Mode = ModeAirborne
	s.GroundNormal = mgl32.Vec3{}
}

// Result is the outcome of a single tick.
type Result struct {
	Position     mgl32.Vec3
	Displacement mgl32.Vec3
	Velocity     mgl32.Vec3

	Grounded     bool
	GroundNormal mgl32.Vec3
	Mode         Mode

	Yaw, Pitch float32
	// BodyRotation is the rotation of the body about its up axis.
	BodyRotation mgl32.Quat
	// CameraRotation is the pitch of the camera relative to the body.
	CameraRotation mgl32.Quat

	Jumped  bool
	Landed  bool
	Stepped bool

	// Iterations is the amount of cast-and-slide passes used.
	Iterations int
	// Exhausted is true if the pass budget ran out before the displacement was consumed.
	Exhausted bool
}
