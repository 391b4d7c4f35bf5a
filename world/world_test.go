package world

import (
	"io"
	"testing"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/event"
	"github.com/oomph-ac/kinematic/geometry"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/oomph-ac/kinematic/scene"
	"github.com/oomph-ac/kinematic/worker"
	"github.com/sirupsen/logrus"
)

func quietLogger() logrus.FieldLogger {
	log := logrus.New()
	log.Out = io.Discard
	return log
}

func groundScene(t *testing.T) *scene.Snapshot {
	t.Helper()
	b := scene.NewBuilder()
	b.AddBox(cube.Box(-200, -1, -200, 200, 0, 200))
	s, err := b.Build()
	if err != nil {
		t.Fatalf("build scene: %v", err)
	}
	return s
}

// hazardQuerier fails queries made east of x=50 and panics on queries made west of x=-50.
type hazardQuerier struct {
	geometry.Querier
}

func (q hazardQuerier) CastShape(shape geometry.Shape, origin, direction mgl32.Vec3, maxDistance float32) (geometry.Hit, bool, error) {
	switch {
	case origin.X() > 50:
		return geometry.Hit{}, false, oerror.NewGeometryError(geometry.OpCastShape, "outside of the loaded area")
	case origin.X() < -50:
		panic("corrupt collider")
	}
	return q.Querier.CastShape(shape, origin, direction, maxDistance)
}

func TestAddBodyRejectsInvalidConfig(t *testing.T) {
	w := New(nil, quietLogger())
	defer w.Close()

	cfg := movement.DefaultConfig()
	cfg.MaxIterations = 0
	if _, err := w.AddBody(cfg, mgl32.Vec3{}); !oerror.IsConfig(err) {
		t.Fatalf("expected a config error, got %v", err)
	}
	if w.Len() != 0 {
		t.Fatalf("rejected body must not be added")
	}

	id, err := w.AddBody(movement.DefaultConfig(), mgl32.Vec3{0, 1, 0})
	if err != nil {
		t.Fatalf("add body: %v", err)
	}
	if id != 1 {
		t.Fatalf("expected the first body to get ID 1, got %d", id)
	}
}

func TestTickMovesAllBodies(t *testing.T) {
	pool := worker.NewPool(4, quietLogger())
	defer pool.Close()
	w := New(pool, quietLogger())
	ground := groundScene(t)

	var ids []BodyID
	for i := 0; i < 16; i++ {
		id, err := w.AddBody(movement.DefaultConfig(), mgl32.Vec3{float32(i) * 2, 2, 0})
		if err != nil {
			t.Fatalf("add body: %v", err)
		}
		ids = append(ids, id)
	}

	intents := map[BodyID]movement.Intent{ids[0]: {Move: mgl32.Vec2{0, 1}}}
	for tick := 0; tick < 120; tick++ {
		report := w.Tick(ground, intents, 1.0/60)
		if len(report.Errors) != 0 {
			t.Fatalf("tick %d: unexpected errors %v", tick, report.Errors)
		}
		if report.Results.Len() != len(ids) {
			t.Fatalf("tick %d: expected %d results, got %d", tick, len(ids), report.Results.Len())
		}
		if report.Fingerprint != ground.Fingerprint() {
			t.Fatalf("expected the scene fingerprint in the report")
		}
	}

	for i, info := range w.Bodies() {
		if info.ID != ids[i] {
			t.Fatalf("expected bodies in insertion order, got %d at %d", info.ID, i)
		}
		if !info.State.Grounded || info.Position.Y() < 0 || info.Position.Y() > 0.1 {
			t.Fatalf("body %d: expected to rest on the ground, got %v (grounded=%v)", info.ID, info.Position, info.State.Grounded)
		}
	}
	if first, _ := w.Body(ids[0]); first.Position.Z() > -1 {
		t.Fatalf("expected the first body to walk forward, got %v", first.Position)
	}
	if second, _ := w.Body(ids[1]); second.Position.X() != 2 || second.Position.Z() != 0 {
		t.Fatalf("body without intent must not move sideways, got %v", second.Position)
	}
	if stats := w.TickStats(); stats.Samples != 120 || stats.Mean < 0 || stats.Max < stats.Mean {
		t.Fatalf("unexpected tick statistics %+v", stats)
	}
}

func TestTickIsolatesFailures(t *testing.T) {
	pool := worker.NewPool(2, quietLogger())
	defer pool.Close()
	w := New(pool, quietLogger())
	q := hazardQuerier{Querier: groundScene(t)}

	healthy, _ := w.AddBody(movement.DefaultConfig(), mgl32.Vec3{0, 2, 0})
	failing, _ := w.AddBody(movement.DefaultConfig(), mgl32.Vec3{60, 2, 0})
	crashing, _ := w.AddBody(movement.DefaultConfig(), mgl32.Vec3{-60, 2, 0})

	report := w.Tick(q, nil, 1.0/60)
	if len(report.Errors) != 2 {
		t.Fatalf("expected two failed bodies, got %v", report.Errors)
	}
	if !oerror.IsGeometry(report.Errors[failing]) {
		t.Fatalf("expected a geometry error for the failing body, got %v", report.Errors[failing])
	}
	if report.Errors[crashing] == nil {
		t.Fatalf("expected the panic to be reported as an error")
	}
	if _, ok := report.Results.Get(healthy); !ok {
		t.Fatalf("healthy body must still tick")
	}

	if info, _ := w.Body(failing); info.Position != (mgl32.Vec3{60, 2, 0}) || info.State.Ticks != 0 {
		t.Fatalf("failed body must be left untouched, got %+v", info)
	}
	if info, _ := w.Body(healthy); info.Position.Y() >= 2 || info.State.Ticks != 1 {
		t.Fatalf("healthy body must have fallen, got %+v", info)
	}
}

func TestParallelTickMatchesSequential(t *testing.T) {
	ground := groundScene(t)
	parallel := New(nil, quietLogger())
	defer parallel.Close()
	sequential := New(nil, quietLogger())
	defer sequential.Close()

	intents := make(map[BodyID]movement.Intent)
	for i := 0; i < 8; i++ {
		pos := mgl32.Vec3{float32(i) * 3, float32(i%3) * 0.5, float32(i)}
		a, _ := parallel.AddBody(movement.DefaultConfig(), pos)
		b, _ := sequential.AddBody(movement.DefaultConfig(), pos)
		if a != b {
			t.Fatalf("expected matching IDs, got %d and %d", a, b)
		}
		intents[a] = movement.Intent{Move: mgl32.Vec2{float32(i%2) - 0.5, 1}, Jump: i%4 == 0}
	}

	for tick := 0; tick < 30; tick++ {
		parallel.Tick(ground, intents, 1.0/60)
		for id, in := range intents {
			if _, err := sequential.TickOne(id, ground, in, 1.0/60); err != nil {
				t.Fatalf("tick one: %v", err)
			}
		}
	}

	for _, info := range parallel.Bodies() {
		other, _ := sequential.Body(info.ID)
		if info.Position != other.Position || info.State != other.State {
			t.Fatalf("body %d diverged: %+v vs %+v", info.ID, info, other)
		}
	}
}

func TestBodyManagement(t *testing.T) {
	w := New(nil, quietLogger())
	defer w.Close()
	ground := groundScene(t)

	id, _ := w.AddBody(movement.DefaultConfig(), mgl32.Vec3{0, 5, 0})
	landed := false
	w.Handle(id, movement.HandlerFunc(func(ev event.Event) {
		if ev.ID() == event.EventIDLanded {
			landed = true
		}
	}))
	for i := 0; i < 120 && !landed; i++ {
		w.Tick(ground, nil, 1.0/60)
	}
	if !landed {
		t.Fatalf("expected a landed event through the body handler")
	}

	if !w.Teleport(id, mgl32.Vec3{10, 3, 10}) {
		t.Fatalf("teleport failed")
	}
	if info, _ := w.Body(id); info.Position != (mgl32.Vec3{10, 3, 10}) || info.State.Grounded {
		t.Fatalf("expected the body to be teleported and airborne, got %+v", info)
	}
	if _, err := w.TickOne(99, ground, movement.Intent{}, 1.0/60); err == nil {
		t.Fatalf("expected an error for a missing body")
	}
	if !w.RemoveBody(id) || w.RemoveBody(id) || w.Len() != 0 {
		t.Fatalf("expected the body to be removed exactly once")
	}
}
