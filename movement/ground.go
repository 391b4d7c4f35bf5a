package movement

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/geometry"
)

// DetectGround probes below a body at pos for ground. It reports the contact found and whether that
// contact counts as ground: a surface within the probe distance no steeper than the maximum slope angle.
// Bodies moving up faster than the vertical epsilon are never grounded, and no query is made for them.
func (s *Simulator) DetectGround(q geometry.Querier, pos, vel mgl32.Vec3) (ContactInfo, bool, error) {
	if vel.Dot(s.up) > s.cfg.VerticalEpsilon {
		return ContactInfo{}, false, nil
	}

	hit, ok, err := q.CastShape(s.cfg.Shape, pos, s.up.Mul(-1), s.cfg.GroundProbeDistance)
	if err != nil || !ok {
		return ContactInfo{}, false, err
	}

	c := s.contact(hit)
	return c, s.walkable(c) && hit.Distance <= s.cfg.GroundProbeDistance, nil
}

func (ctx *tickContext) detectGround() error {
	c, grounded, err := ctx.sim.DetectGround(ctx.q, ctx.pos, ctx.vel)
	if err != nil {
		return err
	}

	ctx.onGround = grounded
	ctx.groundedAtStart = grounded
	ctx.sim.log.Debugf("ground: grounded=%t normal=%v slope=%.4f dist=%.4f", grounded, c.Normal, c.SlopeAngle, c.Distance)
	return nil
}
