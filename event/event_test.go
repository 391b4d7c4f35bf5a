package event

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
)

func TestString(t *testing.T) {
	ev := &JumpedEvent{Tick: 12, Position: mgl32.Vec3{1, 0, 2}, Impulse: 7}
	want := "kinematic:jumped [tick=12 position=[1 0 2] impulse=7]"
	if got := String(ev); got != want {
		t.Fatalf("String() = %q, want %q", got, want)
	}
	if got := OrderedMapToString(nil); got != "[]" {
		t.Fatalf("expected empty payload for nil map, got %q", got)
	}
}

func TestPayloadOrder(t *testing.T) {
	ev := &BudgetExhaustedEvent{Tick: 1, Iterations: 4}
	keys := ev.Data().Keys()
	want := []string{"tick", "iterations", "position", "remaining"}
	if len(keys) != len(want) {
		t.Fatalf("unexpected keys %v", keys)
	}
	for i := range want {
		if keys[i] != want[i] {
			t.Fatalf("expected key %q at %d, got %q", want[i], i, keys[i])
		}
	}
}
