package input

import (
	"testing"

	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/movement"
)

func TestKeyboardMove(t *testing.T) {
	k := NewKeyboard()
	cases := []struct {
		keys []Key
		want mgl32.Vec2
	}{
		{nil, mgl32.Vec2{}},
		{[]Key{KeyW}, mgl32.Vec2{0, 1}},
		{[]Key{KeyDown}, mgl32.Vec2{0, -1}},
		{[]Key{KeyA, KeyRight}, mgl32.Vec2{}},
		{[]Key{KeyW, KeyUp}, mgl32.Vec2{0, 1}},
		{[]Key{KeyW, KeyD}, mgl32.Vec2{1, 1}.Normalize()},
		{[]Key{KeyS, KeyLeft}, mgl32.Vec2{-1, -1}.Normalize()},
	}
	for _, c := range cases {
		for _, key := range []Key{KeyW, KeyA, KeyS, KeyD, KeyUp, KeyLeft, KeyDown, KeyRight} {
			k.SetKey(key, false)
		}
		for _, key := range c.keys {
			k.SetKey(key, true)
		}
		in := k.Intent()
		if !in.Move.ApproxEqualThreshold(c.want, 1e-6) {
			t.Fatalf("keys %v: expected move %v, got %v", c.keys, c.want, in.Move)
		}
		if in.Move.Len() > 1+1e-6 {
			t.Fatalf("keys %v: move %v exceeds unit length", c.keys, in.Move)
		}
	}
}

func TestKeyboardJumpIsEdgeTriggered(t *testing.T) {
	k := NewKeyboard()
	k.SetKey(KeySpace, true)
	if !k.Intent().Jump {
		t.Fatalf("expected a jump on the frame space was pressed")
	}
	if k.Intent().Jump {
		t.Fatalf("holding space must not jump again")
	}
	k.SetKey(KeySpace, false)
	k.Intent()
	k.SetKey(KeySpace, true)
	if !k.Intent().Jump {
		t.Fatalf("expected a jump after space was pressed again")
	}
}

func TestKeyboardMouseCapture(t *testing.T) {
	k := NewKeyboard()
	k.MoveMouse(3, 4)
	if in := k.Intent(); in.Look != (mgl32.Vec2{}) {
		t.Fatalf("mouse look must be ignored while the cursor is free, got %v", in.Look)
	}

	k.SetKey(MouseLeft, true)
	k.MoveMouse(3, 4)
	k.MoveMouse(1, -1)
	in := k.Intent()
	if !k.Captured() || in.Look != (mgl32.Vec2{4, 3}) || in.LookDevice != movement.DeviceMouse {
		t.Fatalf("expected accumulated mouse look after capture, got %v (captured=%v)", in.Look, k.Captured())
	}
	if in := k.Intent(); in.Look != (mgl32.Vec2{}) {
		t.Fatalf("mouse motion must reset every frame, got %v", in.Look)
	}

	k.SetKey(KeyEscape, true)
	k.MoveMouse(5, 5)
	if in := k.Intent(); k.Captured() || in.Look != (mgl32.Vec2{}) {
		t.Fatalf("escape must release the cursor")
	}
}

func TestGamepadDeadzone(t *testing.T) {
	g := NewGamepad()
	g.LeftStick = mgl32.Vec2{0.05, 0.05}
	if in := g.Intent(); in.Move != (mgl32.Vec2{}) {
		t.Fatalf("stick inside the deadzone must be ignored, got %v", in.Move)
	}

	g.LeftStick = mgl32.Vec2{0, 1}
	if in := g.Intent(); !in.Move.ApproxEqualThreshold(mgl32.Vec2{0, 1}, 1e-6) {
		t.Fatalf("full deflection must stay full, got %v", in.Move)
	}

	g.LeftStick = mgl32.Vec2{0.55, 0}
	if in := g.Intent(); math32.Abs(in.Move.X()-0.5) > 1e-5 {
		t.Fatalf("expected the deadzone to be rescaled out, got %v", in.Move)
	}

	g.LeftStick = mgl32.Vec2{1, 1}
	if in := g.Intent(); in.Move.Len() > 1+1e-6 {
		t.Fatalf("move %v exceeds unit length", in.Move)
	}
}

func TestGamepadLookAndJump(t *testing.T) {
	g := NewGamepad()
	g.RightStick = mgl32.Vec2{1, 1}
	g.SetSouth(true)

	in := g.Intent()
	if in.LookDevice != movement.DeviceGamepad {
		t.Fatalf("expected gamepad look device")
	}
	if in.Look.X() <= 0 || in.Look.Y() >= 0 {
		t.Fatalf("expected right stick Y to be inverted, got %v", in.Look)
	}
	if !in.Jump {
		t.Fatalf("expected the south button to jump")
	}
	if g.Intent().Jump {
		t.Fatalf("holding the south button must not jump again")
	}

	g.SetEnabled(false)
	g.SetSouth(false)
	g.Intent()
	g.SetSouth(true)
	if in := g.Intent(); in.Jump || in.Look != (mgl32.Vec2{}) || in.Move != (mgl32.Vec2{}) {
		t.Fatalf("disabled gamepad must produce empty intents, got %+v", in)
	}
}

func TestMerge(t *testing.T) {
	kb := movement.Intent{Move: mgl32.Vec2{0, 1}, Look: mgl32.Vec2{10, 0}, LookDevice: movement.DeviceMouse}
	pad := movement.Intent{Move: mgl32.Vec2{1, 0}, Look: mgl32.Vec2{0.5, 0}, LookDevice: movement.DeviceGamepad, Jump: true}

	in := Merge(kb, pad)
	if !in.Move.ApproxEqualThreshold(mgl32.Vec2{1, 1}.Normalize(), 1e-6) {
		t.Fatalf("expected merged move to be clamped, got %v", in.Move)
	}
	if !in.Jump {
		t.Fatalf("expected jump from any source")
	}
	if in.Look != kb.Look || in.LookDevice != movement.DeviceMouse {
		t.Fatalf("expected the first look input to win, got %v", in.Look)
	}

	in = Merge(movement.Intent{}, pad)
	if in.Look != pad.Look || in.LookDevice != movement.DeviceGamepad {
		t.Fatalf("expected gamepad look when the mouse is idle, got %v", in.Look)
	}
}

func TestPoll(t *testing.T) {
	k := NewKeyboard()
	g := NewGamepad()
	k.SetKey(KeyW, true)
	g.SetSouth(true)

	in := Poll(k, g)
	if in.Move != (mgl32.Vec2{0, 1}) || !in.Jump {
		t.Fatalf("expected keyboard move and gamepad jump, got %+v", in)
	}
}
