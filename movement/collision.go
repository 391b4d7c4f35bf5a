package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/event"
	"github.com/oomph-ac/kinematic/game"
)

// minMoveDistance is the displacement length under which the resolver stops moving the body.
const minMoveDistance = float32(1e-6)

// resolve moves the body along its displacement using iterative cast-and-slide, bounded by the configured
// pass budget. Walkable surfaces met while not ascending become ground contacts and stop vertical motion
// instead of deflecting it; every other surface removes the part of the motion going into it.
func (ctx *tickContext) resolve() error {
	cfg := &ctx.sim.cfg
	remaining := ctx.displacement
	ascending := ctx.vel.Dot(ctx.up) > cfg.VerticalEpsilon

	for ctx.iterations < cfg.MaxIterations {
		dist := remaining.Len()
		if dist <= minMoveDistance {
			remaining = mgl32.Vec3{}
			break
		}
		dir := remaining.Mul(1 / dist)
		ctx.iterations++

		hit, ok, err := ctx.q.CastShape(cfg.Shape, ctx.pos, dir, dist+cfg.SkinWidth)
		if err != nil {
			return err
		}
		if !ok {
			ctx.pos = ctx.pos.Add(remaining)
			remaining = mgl32.Vec3{}
			break
		}

		c := ctx.sim.contact(hit)
		ctx.contacts = append(ctx.contacts, c)
		if hit.Penetration > 0 {
			ctx.pos = ctx.pos.Add(hit.Normal.Mul(hit.Penetration))
		}

		travel := math32.Max(0, math32.Min(dist, hit.Distance-cfg.SkinWidth))
		ctx.pos = ctx.pos.Add(dir.Mul(travel))
		remaining = dir.Mul(dist - travel)
		ctx.sim.log.Debugf("resolve: pass %d hit entity %d normal=%v dist=%.4f travel=%.4f", ctx.iterations, hit.Entity, hit.Normal, hit.Distance, travel)

		switch {
		case ctx.sim.walkable(c) && !ascending:
			remaining = clipInto(removeVertical(remaining, ctx.up), c.Normal)
			ctx.vel = removeVertical(ctx.vel, ctx.up)
			ctx.setGroundContact(c)
		case ctx.groundedAtStart && !ctx.jumped && !ctx.stepped && cfg.StepHeight > 0:
			stepped, err := ctx.tryStep(remaining, c)
			if err != nil {
				return err
			}
			if stepped {
				remaining = mgl32.Vec3{}
				continue
			}
			fallthrough
		default:
			remaining = clipInto(remaining, c.Normal)
			ctx.vel = clipInto(ctx.vel, c.Normal)
		}

		// Sliding along this plane may push back into one hit earlier; follow their crease instead.
		for _, prev := range ctx.planes {
			if remaining.Dot(prev) >= -game.ContactEpsilon || prev.ApproxEqualThreshold(c.Normal, game.ContactEpsilon) {
				continue
			}
			crease := prev.Cross(c.Normal)
			if crease.LenSqr() <= 1e-10 {
				remaining = mgl32.Vec3{}
				ctx.vel = clipInto(ctx.vel, prev)
				break
			}
			crease = crease.Normalize()
			remaining = crease.Mul(remaining.Dot(crease))
			if ctx.vel.Dot(prev) < 0 {
				ctx.vel = crease.Mul(ctx.vel.Dot(crease))
			}
		}
		ctx.planes = append(ctx.planes, c.Normal)
	}

	if remaining.Len() > minMoveDistance {
		ctx.exhausted = true
		ctx.emit(&event.BudgetExhaustedEvent{
			Tick:       ctx.state.Ticks + 1,
			Iterations: ctx.iterations,
			Position:   ctx.pos,
			Remaining:  remaining,
		})
		ctx.sim.log.Debugf("resolve: collision budget of %d passes exhausted, dropping %v", cfg.MaxIterations, remaining)
	}
	return ctx.snapToGround(ascending)
}

// tryStep attempts to climb the obstacle described by blocker: up by the step height, across by the planar
// part of the remaining displacement and back down onto walkable ground. The step is taken only if the
// body ends up in free space and gets further than sliding along the obstacle would.
func (ctx *tickContext) tryStep(remaining mgl32.Vec3, blocker ContactInfo) (bool, error) {
	cfg := &ctx.sim.cfg
	planar, _ := game.SplitVertical(remaining, ctx.up)
	across := planar.Len()
	if across <= minMoveDistance {
		return false, nil
	}
	dir := planar.Mul(1 / across)
	slideProgress := clipInto(planar, blocker.Normal).Dot(dir)

	rise := cfg.StepHeight
	hit, ok, err := ctx.q.CastShape(cfg.Shape, ctx.pos, ctx.up, rise+cfg.SkinWidth)
	if err != nil {
		return false, err
	}
	if ok {
		rise = math32.Max(0, math32.Min(rise, hit.Distance-cfg.SkinWidth))
	}
	if rise <= minMoveDistance {
		return false, nil
	}
	raised := ctx.pos.Add(ctx.up.Mul(rise))

	moved := across
	if hit, ok, err = ctx.q.CastShape(cfg.Shape, raised, dir, across+cfg.SkinWidth); err != nil {
		return false, err
	} else if ok {
		moved = math32.Max(0, math32.Min(across, hit.Distance-cfg.SkinWidth))
	}
	if moved <= slideProgress+1e-4 {
		return false, nil
	}
	over := raised.Add(dir.Mul(moved))

	drop := rise + cfg.GroundProbeDistance
	hit, ok, err = ctx.q.CastShape(cfg.Shape, over, ctx.up.Mul(-1), drop+cfg.SkinWidth)
	if err != nil || !ok {
		return false, err
	}
	landing := ctx.sim.contact(hit)
	if !ctx.sim.walkable(landing) {
		return false, nil
	}
	landed := over.Sub(ctx.up.Mul(math32.Max(0, math32.Min(drop, hit.Distance-cfg.SkinWidth))))

	if entities, err := ctx.q.Overlap(cfg.Shape, landed); err != nil || len(entities) > 0 {
		return false, err
	}

	ctx.emit(&event.SteppedEvent{
		Tick:   ctx.state.Ticks + 1,
		From:   ctx.pos,
		To:     landed,
		Height: landed.Sub(ctx.pos).Dot(ctx.up),
	})
	ctx.sim.log.Debugf("resolve: stepped from %v to %v", ctx.pos, landed)

	ctx.pos = landed
	ctx.vel = removeVertical(ctx.vel, ctx.up)
	ctx.stepped = true
	ctx.setGroundContact(landing)
	return true, nil
}

// snapToGround keeps a body that was grounded at the start of the tick in contact with walkable ground
// below it, so that walking down a slope or over small dips does not make it airborne.
func (ctx *tickContext) snapToGround(ascending bool) error {
	if !ctx.groundedAtStart || ctx.jumped || ctx.hasGroundContact || ascending {
		return nil
	}

	cfg := &ctx.sim.cfg
	hit, ok, err := ctx.q.CastShape(cfg.Shape, ctx.pos, ctx.up.Mul(-1), cfg.GroundProbeDistance+cfg.SkinWidth)
	if err != nil || !ok {
		return err
	}
	c := ctx.sim.contact(hit)
	if !ctx.sim.walkable(c) {
		return nil
	}

	ctx.pos = ctx.pos.Sub(ctx.up.Mul(math32.Max(0, hit.Distance-cfg.SkinWidth)))
	ctx.vel = removeVertical(ctx.vel, ctx.up)
	ctx.setGroundContact(c)
	ctx.sim.log.Debugf("resolve: snapped to ground at %v", ctx.pos)
	return nil
}

func (ctx *tickContext) setGroundContact(c ContactInfo) {
	ctx.groundContact = c
	ctx.hasGroundContact = true
}

// clipInto removes the part of v going into a surface with the normal n.
func clipInto(v, n mgl32.Vec3) mgl32.Vec3 {
	if d := v.Dot(n); d < 0 {
		return v.Sub(n.Mul(d))
	}
	return v
}

func removeVertical(v, up mgl32.Vec3) mgl32.Vec3 {
	planar, _ := game.SplitVertical(v, up)
	return planar
}
