package world

import (
	"fmt"
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/geometry"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/oerror"
	"github.com/oomph-ac/kinematic/worker"
)

// Fingerprinter is implemented by queriers that can identify the scene they answer queries for, such
// as *scene.Snapshot.
type Fingerprinter interface {
	Fingerprint() uint64
}

// TickReport is the outcome of a World tick.
type TickReport struct {
	// Results holds the result of every body that ticked successfully, in body order.
	Results *orderedmap.OrderedMap[BodyID, movement.Result]
	// Errors holds the error of every body whose tick failed. Those bodies were left untouched.
	Errors map[BodyID]error
	// Fingerprint is the fingerprint of the scene ticked against, or zero if the querier has none.
	Fingerprint uint64
	// Duration is the wall time the tick took.
	Duration time.Duration
}

// statsWindow is the amount of recent ticks TickStats is computed over.
const statsWindow = 256

// TickStats describes the wall time of the most recent ticks of a World, in milliseconds.
type TickStats struct {
	Samples int
	Mean    float64
	StdDev  float64
	Max     float64
}

// TickStats returns timing statistics over the most recent ticks.
func (w *World) TickStats() TickStats {
	w.RLock()
	defer w.RUnlock()

	data := w.durations.Slice()
	return TickStats{
		Samples: len(data),
		Mean:    game.Mean(data),
		StdDev:  game.StandardDeviation(data),
		Max:     game.Max(data),
	}
}

// Tick advances every body by dt against the scene q. Bodies are ticked in parallel; each reads only
// the scene and its own state, so q must not be modified until Tick returns. New positions are written
// back once every body has been resolved. A body without an intent in intents ticks with an empty
// intent. An error in one body never stops the others.
func (w *World) Tick(q geometry.Querier, intents map[BodyID]movement.Intent, dt float32) TickReport {
	w.Lock()
	defer w.Unlock()

	start := time.Now()
	report := TickReport{
		Results: orderedmap.NewOrderedMap[BodyID, movement.Result](),
		Errors:  make(map[BodyID]error),
	}
	if fp, ok := q.(Fingerprinter); ok {
		report.Fingerprint = fp.Fingerprint()
		if report.Fingerprint != w.lastFingerprint {
			w.log.Debugf("scene changed (fingerprint %x -> %x)", w.lastFingerprint, report.Fingerprint)
			w.lastFingerprint = report.Fingerprint
		}
	}

	bodies := make([]*Body, 0, w.bodies.Len())
	for el := w.bodies.Front(); el != nil; el = el.Next() {
		bodies = append(bodies, el.Value)
	}
	results := make([]movement.Result, len(bodies))
	jobs := make([]worker.Job, len(bodies))
	for i, b := range bodies {
		i, b := i, b
		in := intents[b.id]
		jobs[i] = worker.Job{
			Tag: fmt.Sprintf("world %d body %d", w.id, b.id),
			Fn: func() (err error) {
				results[i], err = b.sim.Tick(b.state, b.pos, in, q, dt)
				return err
			},
		}
	}
	errs := w.pool.Run(jobs)

	for i, b := range bodies {
		if errs[i] != nil {
			report.Errors[b.id] = fmt.Errorf("body %d: %w", b.id, errs[i])
			w.log.WithField("body", b.id).Warnf("tick failed: %v", errs[i])
			continue
		}
		b.pos = results[i].Position
		report.Results.Set(b.id, results[i])
	}
	report.Duration = time.Since(start)
	w.durations.Push(float64(report.Duration) / float64(time.Millisecond))
	return report
}

// TickOne advances a single body by dt against q on the calling goroutine.
func (w *World) TickOne(id BodyID, q geometry.Querier, in movement.Intent, dt float32) (movement.Result, error) {
	w.Lock()
	defer w.Unlock()

	b, ok := w.bodies.Get(id)
	if !ok {
		return movement.Result{}, oerror.New("body %d does not exist", id)
	}
	res, err := b.sim.Tick(b.state, b.pos, in, q, dt)
	if err != nil {
		return res, fmt.Errorf("body %d: %w", id, err)
	}
	b.pos = res.Position
	return res, nil
}
