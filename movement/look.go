package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/game"
)

// Look applies a look delta to a yaw and pitch pair and returns the new pair. Mouse deltas are scaled by
// the mouse sensitivity, gamepad deltas are rates scaled by the gamepad sensitivity and dt. Moving the
// mouse or stick right or down decreases yaw or pitch respectively. Yaw wraps into [-pi, pi) and pitch
// is clamped to the configured range.
func (s *Simulator) Look(yaw, pitch float32, look mgl32.Vec2, device LookDevice, dt float32) (float32, float32) {
	if !game.IsFiniteVec2(look) {
		look = mgl32.Vec2{}
	}

	scale := s.cfg.MouseSensitivity
	if device == DeviceGamepad {
		if !(dt > 0) || !game.IsFinite(dt) {
			dt = 0
		}
		scale = s.cfg.GamepadSensitivity * dt
	}

	yaw = game.WrapAngle(yaw - look.X()*scale)
	pitch = game.ClampFloat(pitch-look.Y()*scale, s.cfg.PitchMin, s.cfg.PitchMax)
	return yaw, pitch
}

func (ctx *tickContext) look() {
	ctx.yaw, ctx.pitch = ctx.sim.Look(ctx.yaw, ctx.pitch, ctx.intent.Look, ctx.intent.LookDevice, ctx.dt)
	ctx.sim.log.Debugf("look: yaw=%.4f pitch=%.4f", ctx.yaw, ctx.pitch)
}
