package world

import (
	"sync/atomic"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/internal"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/oomph-ac/kinematic/worker"
	"github.com/sasha-s/go-deadlock"
	"github.com/sirupsen/logrus"
)

var currentWorldID atomic.Uint64

// BodyID identifies a body within a World.
type BodyID uint64

// Body is a kinematic body owned by a World: its simulator, its movement state and its position.
type Body struct {
	id    BodyID
	sim   *movement.Simulator
	state *movement.State
	pos   mgl32.Vec3
}

// BodyInfo is a copy of the state of a body at the time it was read.
type BodyInfo struct {
	ID       BodyID
	Position mgl32.Vec3
	State    movement.State
}

// World holds a set of kinematic bodies and ticks them together against a shared, read-only scene.
// Bodies are iterated in the order they were added.
type World struct {
	id     uint64
	nextID BodyID

	bodies *orderedmap.OrderedMap[BodyID, *Body]

	pool    *worker.Pool
	ownPool bool
	log     logrus.FieldLogger

	lastFingerprint uint64
	durations       *internal.Ring[float64]

	deadlock.RWMutex
}

// New returns an empty World. Bodies are ticked on the pool given; if pool is nil, the World starts a
// pool of its own which is stopped by Close.
func New(pool *worker.Pool, log logrus.FieldLogger) *World {
	if log == nil {
		log = logrus.StandardLogger()
	}
	w := &World{
		id:        currentWorldID.Add(1),
		bodies:    orderedmap.NewOrderedMap[BodyID, *Body](),
		pool:      pool,
		log:       log,
		durations: internal.NewRing[float64](statsWindow),
	}
	if w.pool == nil {
		w.pool = worker.NewPool(0, log)
		w.ownPool = true
	}
	w.log = log.WithField("world", w.id)
	return w
}

// AddBody validates cfg and adds a new airborne body at rest at pos. A ConfigError is returned if the
// configuration is rejected.
func (w *World) AddBody(cfg movement.Config, pos mgl32.Vec3) (BodyID, error) {
	if !game.IsFiniteVec3(pos) {
		return 0, oerror.New("body position must be finite, got %v", pos)
	}

	w.Lock()
	defer w.Unlock()

	id := w.nextID + 1
	sim, err := movement.NewSimulator(cfg, w.log.WithField("body", id))
	if err != nil {
		return 0, err
	}
	w.nextID = id
	w.bodies.Set(id, &Body{id: id, sim: sim, state: movement.NewState(), pos: pos})
	w.log.Debugf("added body %d at %v", id, pos)
	return id, nil
}

// RemoveBody removes the body with the ID given, returning false if there was no such body.
func (w *World) RemoveBody(id BodyID) bool {
	w.Lock()
	defer w.Unlock()

	return w.bodies.Delete(id)
}

// Handle sets the handler receiving the diagnostic events of a body.
func (w *World) Handle(id BodyID, h movement.Handler) bool {
	w.Lock()
	defer w.Unlock()

	b, ok := w.bodies.Get(id)
	if !ok {
		return false
	}
	b.sim.Handle(h)
	return true
}

// Teleport moves a body to pos and resets its velocity without running the movement pipeline.
func (w *World) Teleport(id BodyID, pos mgl32.Vec3) bool {
	if !game.IsFiniteVec3(pos) {
		return false
	}

	w.Lock()
	defer w.Unlock()

	b, ok := w.bodies.Get(id)
	if !ok {
		return false
	}
	b.pos = pos
	b.state.SetVel(mgl32.Vec3{})
	b.state.SetGrounded(false, mgl32.Vec3{})
	return true
}

// Body returns a copy of the state of the body with the ID given.
func (w *World) Body(id BodyID) (BodyInfo, bool) {
	w.RLock()
	defer w.RUnlock()

	b, ok := w.bodies.Get(id)
	if !ok {
		return BodyInfo{}, false
	}
	return b.info(), true
}

// Bodies returns a copy of the state of every body, in the order they were added.
func (w *World) Bodies() []BodyInfo {
	w.RLock()
	defer w.RUnlock()

	infos := make([]BodyInfo, 0, w.bodies.Len())
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		infos = append(infos, el.Value.info())
	}
	return infos
}

// Len returns the amount of bodies in the world.
func (w *World) Len() int {
	w.RLock()
	defer w.RUnlock()

	return w.bodies.Len()
}

// Close stops the worker pool of the world if the world started it.
func (w *World) Close() {
	if w.ownPool {
		w.pool.Close()
	}
}

func (b *Body) info() BodyInfo {
	return BodyInfo{ID: b.id, Position: b.pos, State: *b.state}
}
