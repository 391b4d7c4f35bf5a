package movement

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
)

func TestLookMouse(t *testing.T) {
	sim := newTestSimulator(t, nil)
	sens := sim.Config().MouseSensitivity

	yaw, pitch := sim.Look(0, 0, mgl32.Vec2{100, -50}, DeviceMouse, 1.0/60)
	if math32.Abs(yaw+100*sens) > 1e-6 {
		t.Fatalf("expected yaw %v, got %v", -100*sens, yaw)
	}
	if math32.Abs(pitch-50*sens) > 1e-6 {
		t.Fatalf("expected pitch %v, got %v", 50*sens, pitch)
	}

	// Mouse deltas do not depend on the tick duration.
	yaw2, _ := sim.Look(0, 0, mgl32.Vec2{100, -50}, DeviceMouse, 1)
	if yaw2 != yaw {
		t.Fatalf("mouse look must not scale with dt: %v != %v", yaw2, yaw)
	}
}

func TestLookGamepadScalesWithDelta(t *testing.T) {
	sim := newTestSimulator(t, nil)
	sens := sim.Config().GamepadSensitivity

	yaw, _ := sim.Look(0, 0, mgl32.Vec2{1, 0}, DeviceGamepad, 0.1)
	if math32.Abs(yaw+sens*0.1) > 1e-6 {
		t.Fatalf("expected yaw %v, got %v", -sens*0.1, yaw)
	}
	if yaw, pitch := sim.Look(0.3, 0.2, mgl32.Vec2{1, 1}, DeviceGamepad, 0); yaw != 0.3 || pitch != 0.2 {
		t.Fatalf("gamepad look with no elapsed time must not rotate, got %v %v", yaw, pitch)
	}
}

func TestLookWrapsYaw(t *testing.T) {
	sim := newTestSimulator(t, nil)
	yaw := float32(0)
	for i := 0; i < 1000; i++ {
		yaw, _ = sim.Look(yaw, 0, mgl32.Vec2{-500, 0}, DeviceMouse, 1.0/60)
		if yaw < -math32.Pi || yaw >= math32.Pi {
			t.Fatalf("yaw %v escaped [-pi, pi) after %d turns", yaw, i)
		}
	}
}

func TestLookClampsPitch(t *testing.T) {
	sim := newTestSimulator(t, nil)
	limit := mgl32.DegToRad(89)

	_, pitch := sim.Look(0, 0, mgl32.Vec2{0, -1e6}, DeviceMouse, 1.0/60)
	if math32.Abs(pitch-limit) > 1e-5 {
		t.Fatalf("expected pitch to clamp at %v, got %v", limit, pitch)
	}
	_, pitch = sim.Look(0, 0, mgl32.Vec2{0, 1e6}, DeviceMouse, 1.0/60)
	if math32.Abs(pitch+limit) > 1e-5 {
		t.Fatalf("expected pitch to clamp at %v, got %v", -limit, pitch)
	}
	if _, pitch = sim.Look(0, 0.4, mgl32.Vec2{math32.NaN(), 0}, DeviceMouse, 1.0/60); pitch != 0.4 {
		t.Fatalf("non-finite look input must be ignored, got %v", pitch)
	}
}

func TestTickAppliesLook(t *testing.T) {
	sim := newTestSimulator(t, nil)
	state := NewState()

	res, err := sim.Tick(state, mgl32.Vec3{0, 5, 0}, Intent{Look: mgl32.Vec2{0, -1e6}}, buildScene(t, nil), 1.0/60)
	if err != nil {
		t.Fatalf("tick: %v", err)
	}
	if state.Pitch != sim.Config().PitchMax || res.Pitch != state.Pitch {
		t.Fatalf("expected pitch %v, got %v", sim.Config().PitchMax, state.Pitch)
	}
	want := mgl32.QuatRotate(state.Pitch, mgl32.Vec3{1, 0, 0})
	if !res.CameraRotation.ApproxEqualThreshold(want, 1e-5) {
		t.Fatalf("expected camera rotation %v, got %v", want, res.CameraRotation)
	}
}
