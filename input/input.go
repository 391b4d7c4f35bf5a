// Package input normalises device input into movement intents. The movement core only ever sees
// movement.Intent values, never device state.
package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/game"
	"github.com/oomph-ac/kinematic/movement"
)

// Source is anything that produces one intent per frame.
type Source interface {
	Intent() movement.Intent
}

var (
	_ Source = (*Keyboard)(nil)
	_ Source = (*Gamepad)(nil)
)

// Merge combines the intents of several sources into one. Move vectors are summed and clamped to unit
// length and jump is set if any source jumps. Look input from different devices is measured in
// different units, so the first source with any look input wins.
func Merge(intents ...movement.Intent) movement.Intent {
	var out movement.Intent
	lookSet := false
	for _, in := range intents {
		out.Move = out.Move.Add(in.Move)
		out.Jump = out.Jump || in.Jump
		if !lookSet && in.Look.LenSqr() > 0 {
			out.Look, out.LookDevice = in.Look, in.LookDevice
			lookSet = true
		}
	}
	out.Move = clampLength(out.Move)
	return out
}

// Poll reads one intent from every source and merges them.
func Poll(sources ...Source) movement.Intent {
	intents := make([]movement.Intent, 0, len(sources))
	for _, src := range sources {
		intents = append(intents, src.Intent())
	}
	return Merge(intents...)
}

func clampLength(v mgl32.Vec2) mgl32.Vec2 {
	if !game.IsFiniteVec2(v) {
		return mgl32.Vec2{}
	}
	if l := v.Len(); l > 1 {
		return v.Mul(1 / l)
	}
	return v
}
