package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/event"
	"github.com/oomph-ac/kinematic/game"
)

// MoveDirection converts a move intent into a world space direction in the plane perpendicular to the up
// axis, for a body facing the yaw given. Forward is -Z and right is +X at zero yaw.
func (s *Simulator) MoveDirection(yaw float32, move mgl32.Vec2) mgl32.Vec3 {
	rot := s.BodyRotation(yaw)
	forward := rot.Rotate(mgl32.Vec3{0, 0, -1})
	right := rot.Rotate(mgl32.Vec3{1, 0, 0})
	return right.Mul(move.X()).Add(forward.Mul(move.Y()))
}

// integrate turns intent, gravity and jumping into a new velocity and the displacement for this tick.
func (ctx *tickContext) integrate() {
	cfg := &ctx.sim.cfg
	ctx.timeSinceJump += ctx.dt

	planar, vertical := game.SplitVertical(game.ZeroSmall(ctx.vel), ctx.up)
	if move := ctx.intent.Move; move.LenSqr() > 0 {
		target := ctx.sim.MoveDirection(ctx.yaw, move).Mul(cfg.MaxSpeed)
		planar = game.LerpVec3(planar, target, game.ClampFloat(cfg.Acceleration*ctx.dt, 0, 1))
	} else if cfg.Damping < 1 {
		planar = planar.Mul(math32.Pow(cfg.Damping, ctx.dt))
	}

	switch {
	case ctx.onGround && ctx.jumpRequested && ctx.timeSinceJump >= cfg.JumpCooldown:
		vertical = cfg.JumpImpulse
		ctx.onGround = false
		ctx.jumped = true
		ctx.timeSinceJump = 0
		ctx.emit(&event.JumpedEvent{Tick: ctx.state.Ticks + 1, Position: ctx.pos, Impulse: cfg.JumpImpulse})
	case !ctx.onGround:
		vertical += cfg.Gravity.Dot(ctx.up) * ctx.dt
	default:
		vertical = -cfg.GroundBias
	}
	if ctx.jumpRequested && !ctx.jumped {
		ctx.sim.log.Debugf("integrate: jump request dropped (grounded=%t sinceJump=%.3f)", ctx.onGround, ctx.timeSinceJump)
	}
	ctx.jumpRequested = false

	ctx.vel = planar.Add(ctx.up.Mul(vertical))
	ctx.preCollideVel = ctx.vel
	ctx.displacement = ctx.vel.Mul(ctx.dt)
	ctx.sim.log.Debugf("integrate: vel=%v displacement=%v", ctx.vel, ctx.displacement)
}
