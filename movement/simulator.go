package movement

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/event"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/geometry"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/sirupsen/logrus"
)

var (
	worldUp      = mgl32.Vec3{0, 1, 0}
	cameraPitchX = mgl32.Vec3{1, 0, 0}
)

// Simulator advances the movement state of a body one tick at a time. A Simulator holds no per-body
// state of its own beyond its configuration, but its Handler is called from the goroutine running Tick,
// so a single Simulator should not be ticked from multiple goroutines at once.
type Simulator struct {
	cfg Config

	up    mgl32.Vec3
	frame mgl32.Quat

	log     logrus.FieldLogger
	handler Handler
}

// NewSimulator validates cfg and returns a Simulator using it. A ConfigError is returned if the
// configuration is rejected. If log is nil, the standard logrus logger is used.
func NewSimulator(cfg Config, log logrus.FieldLogger) (*Simulator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if log == nil {
		log = logrus.StandardLogger()
	}

	up := game.UpAxis(cfg.Gravity)
	return &Simulator{
		cfg:     cfg,
		up:      up,
		frame:   mgl32.QuatBetweenVectors(worldUp, up),
		log:     log,
		handler: NopHandler{},
	}, nil
}

// Config returns the configuration of the simulator.
func (s *Simulator) Config() Config {
	return s.cfg
}

// Up returns the up axis of the simulator, derived from its gravity.
func (s *Simulator) Up() mgl32.Vec3 {
	return s.up
}

// Handle sets the handler that receives diagnostic events. Passing nil discards events. Handle must not
// be called while the simulator is ticking.
func (s *Simulator) Handle(h Handler) {
	if h == nil {
		h = NopHandler{}
	}
	s.handler = h
}

// Tick runs the full movement pipeline for one body: look, ground detection, integration and collision
// resolution, and then writes the outcome into state. The position given is the body's current position
// and the new position is returned in the Result; the caller owns writing it back.
//
// If the querier returns an error, the tick is aborted and state is left untouched. A non-positive or
// non-finite dt leaves the body where it is.
func (s *Simulator) Tick(state *State, pos mgl32.Vec3, in Intent, q geometry.Querier, dt float32) (Result, error) {
	if state == nil {
		return Result{Position: pos}, oerror.New("tick: nil state")
	}
	if q == nil {
		return s.restingResult(state, pos), oerror.New("tick: nil querier")
	}
	if !(dt > 0) || !game.IsFinite(dt) {
		return s.restingResult(state, pos), nil
	}

	ctx := newCtx(s, state, pos, in, q, dt)
	defer putCtx(ctx)

	ctx.look()
	if err := ctx.detectGround(); err != nil {
		return s.restingResult(state, pos), err
	}
	ctx.integrate()
	if err := ctx.resolve(); err != nil {
		return s.restingResult(state, pos), err
	}
	return ctx.commit(), nil
}

// BodyRotation returns the rotation of a body with the yaw given about the simulator's up axis.
func (s *Simulator) BodyRotation(yaw float32) mgl32.Quat {
	return s.frame.Mul(mgl32.QuatRotate(yaw, worldUp))
}

// CameraRotation returns the local rotation of a camera with the pitch given.
func (s *Simulator) CameraRotation(pitch float32) mgl32.Quat {
	return mgl32.QuatRotate(pitch, cameraPitchX)
}

func (s *Simulator) restingResult(state *State, pos mgl32.Vec3) Result {
	return Result{
		Position:       pos,
		Velocity:       state.Velocity,
		Grounded:       state.Grounded,
		GroundNormal:   state.GroundNormal,
		Mode:           state.Mode,
		Yaw:            state.Yaw,
		Pitch:          state.Pitch,
		BodyRotation:   s.BodyRotation(state.Yaw),
		CameraRotation: s.CameraRotation(state.Pitch),
	}
}

// tickContext holds the working copy of a body's state for the duration of one tick.
type tickContext struct {
	sim   *Simulator
	state *State
	q     geometry.Querier
	dt    float32
	up    mgl32.Vec3

	intent Intent

	startPos      mgl32.Vec3
	pos           mgl32.Vec3
	vel           mgl32.Vec3
	preCollideVel mgl32.Vec3
	displacement  mgl32.Vec3

	yaw, pitch    float32
	jumpRequested bool
	timeSinceJump float32

	// onGround is the ground detector's verdict, cleared when the body jumps.
	onGround        bool
	groundedAtStart bool

	groundContact    ContactInfo
	hasGroundContact bool

	jumped     bool
	stepped    bool
	iterations int
	exhausted  bool

	contacts []ContactInfo
	planes   []mgl32.Vec3
	events   []event.Event
}

func (ctx *tickContext) emit(ev event.Event) {
	ctx.events = append(ctx.events, ev)
}

func (s *Simulator) contact(hit geometry.Hit) ContactInfo {
	return ContactInfo{
		Point:       hit.Point,
		Normal:      hit.Normal,
		Distance:    hit.Distance,
		Penetration: hit.Penetration,
		SlopeAngle:  game.SlopeAngle(hit.Normal, s.up),
		Entity:      hit.Entity,
	}
}

func (s *Simulator) walkable(c ContactInfo) bool {
	return c.SlopeAngle <= s.cfg.MaxSlopeAngle+game.ContactEpsilon
}

// commit writes the outcome of the tick into the body's state. It is the only place State is modified.
func (ctx *tickContext) commit() Result {
	st := ctx.state
	wasGrounded := st.Grounded
	grounded := ctx.hasGroundContact && !ctx.jumped

	st.SetVel(ctx.vel)
	st.SetGrounded(grounded, ctx.groundContact.Normal)
	st.Yaw, st.Pitch = ctx.yaw, ctx.pitch
	st.JumpRequested = false
	st.TimeSinceJump = ctx.timeSinceJump
	st.Ticks++

	landed := grounded && !wasGrounded
	if landed {
		ctx.emit(&event.LandedEvent{
			Tick:         st.Ticks,
			Position:     ctx.pos,
			Normal:       ctx.groundContact.Normal,
			ImpactSpeed:  math32.Max(0, -ctx.preCollideVel.Dot(ctx.up)),
			SlopeDegrees: mgl32.RadToDeg(ctx.groundContact.SlopeAngle),
		})
	} else if wasGrounded && !grounded && !ctx.jumped {
		ctx.emit(&event.LeftGroundEvent{Tick: st.Ticks, Position: ctx.pos})
	}
	for _, ev := range ctx.events {
		ctx.sim.handler.HandleEvent(ev)
	}

	return Result{
		Position:       ctx.pos,
		Displacement:   ctx.pos.Sub(ctx.startPos),
		Velocity:       ctx.vel,
		Grounded:       grounded,
		GroundNormal:   st.GroundNormal,
		Mode:           st.Mode,
		Yaw:            ctx.yaw,
		Pitch:          ctx.pitch,
		BodyRotation:   ctx.sim.BodyRotation(ctx.yaw),
		CameraRotation: ctx.sim.CameraRotation(ctx.pitch),
		Jumped:         ctx.jumped,
		Landed:         landed,
		Stepped:        ctx.stepped,
		Iterations:     ctx.iterations,
		Exhausted:      ctx.exhausted,
	}
}

// sanitizeIntent drops non-finite input and clamps the move vector to unit length.
func sanitizeIntent(in Intent) Intent {
	if !game.IsFiniteVec2(in.Move) {
		in.Move = mgl32.Vec2{}
	}
	if l := in.Move.Len(); l > 1 {
		in.Move = in.Move.Mul(1 / l)
	}
	if !game.IsFiniteVec2(in.Look) {
		in.Look = mgl32.Vec2{}
	}
	return in
}
