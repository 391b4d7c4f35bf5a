package movement

import (
	"sync"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/event"
	"github.com/oomph-ac/kinematic/geometry"
)

var ctxPool = sync.Pool{
	New: func() any {
		return &tickContext{
			contacts: make([]ContactInfo, 0, 8),
			planes:   make([]mgl32.Vec3, 0, 8),
			events:   make([]event.Event, 0, 2),
		}
	},
}

func newCtx(s *Simulator, state *State, pos mgl32.Vec3, in Intent, q geometry.Querier, dt float32) *tickContext {
	ctx := ctxPool.Get().(*tickContext)
	ctx.sim = s
	ctx.state = state
	ctx.q = q
	ctx.dt = dt
	ctx.up = s.up
	ctx.intent = sanitizeIntent(in)

	ctx.startPos = pos
	ctx.pos = pos
	ctx.vel = state.Velocity
	ctx.yaw, ctx.pitch = state.Yaw, state.Pitch
	ctx.jumpRequested = state.JumpRequested || ctx.intent.Jump
	ctx.timeSinceJump = state.TimeSinceJump
	return ctx
}

func putCtx(ctx *tickContext) {
	ctx.reset()
	ctxPool.Put(ctx)
}

func (ctx *tickContext) reset() {
	ctx.sim = nil
	ctx.state = nil
	ctx.q = nil
	ctx.dt = 0
	ctx.up = mgl32.Vec3{}
	ctx.intent = Intent{}

	ctx.startPos = mgl32.Vec3{}
	ctx.pos = mgl32.Vec3{}
	ctx.vel = mgl32.Vec3{}
	ctx.preCollideVel = mgl32.Vec3{}
	ctx.displacement = mgl32.Vec3{}
	ctx.yaw, ctx.pitch = 0, 0
	ctx.jumpRequested = false
	ctx.timeSinceJump = 0

	ctx.onGround = false
	ctx.groundedAtStart = false
	ctx.groundContact = ContactInfo{}
	ctx.hasGroundContact = false

	ctx.jumped = false
	ctx.stepped = false
	ctx.iterations = 0
	ctx.exhausted = false

	ctx.contacts = ctx.contacts[:0]
	ctx.planes = ctx.planes[:0]
	for i := range ctx.events {
		ctx.events[i] = nil
	}
	ctx.events = ctx.events[:0]
}
