package input

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/movement"
)

// Key is a keyboard or mouse button tracked by Keyboard. Its value is the bit it occupies in the
// key state.
type Key uint32

const (
	KeyW Key = iota
	KeyA
	KeyS
	KeyD
	KeyUp
	KeyLeft
	KeyDown
	KeyRight
	KeySpace
	KeyEscape
	MouseLeft
)

// Keyboard turns keyboard and mouse state into intents. Move keys are level triggered, jump is
// triggered only on the frame Space goes down, and mouse motion accumulates between frames. Mouse look
// is only reported while the cursor is captured: a left click captures it and Escape releases it.
type Keyboard struct {
	keys, prevKeys uint64
	mouse          mgl32.Vec2
	captured       bool
}

// NewKeyboard returns a Keyboard with no keys held and the cursor released.
func NewKeyboard() *Keyboard {
	return &Keyboard{}
}

// SetKey records whether the key given is held down.
func (k *Keyboard) SetKey(key Key, down bool) {
	if down {
		k.keys |= 1 << key
		return
	}
	k.keys &^= 1 << key
}

// MoveMouse adds a mouse motion delta, in raw mouse units, to the motion of the current frame.
func (k *Keyboard) MoveMouse(dx, dy float32) {
	k.mouse = k.mouse.Add(mgl32.Vec2{dx, dy})
}

// Captured returns true if the cursor is captured and mouse motion is turned into look input.
func (k *Keyboard) Captured() bool {
	return k.captured
}

// SetCaptured captures or releases the cursor.
func (k *Keyboard) SetCaptured(captured bool) {
	k.captured = captured
}

// Intent returns the intent for the current frame and starts a new one.
func (k *Keyboard) Intent() movement.Intent {
	if k.justPressed(MouseLeft) {
		k.captured = true
	}
	if k.justPressed(KeyEscape) {
		k.captured = false
	}

	in := movement.Intent{
		Move:       k.moveVector(),
		LookDevice: movement.DeviceMouse,
		Jump:       k.justPressed(KeySpace),
	}
	if k.captured {
		in.Look = k.mouse
	}

	k.prevKeys = k.keys
	k.mouse = mgl32.Vec2{}
	return in
}

func (k *Keyboard) moveVector() mgl32.Vec2 {
	var x, y float32
	if k.anyHeld(KeyD, KeyRight) {
		x++
	}
	if k.anyHeld(KeyA, KeyLeft) {
		x--
	}
	if k.anyHeld(KeyW, KeyUp) {
		y++
	}
	if k.anyHeld(KeyS, KeyDown) {
		y--
	}
	return clampLength(mgl32.Vec2{x, y})
}

func (k *Keyboard) anyHeld(keys ...Key) bool {
	for _, key := range keys {
		if hasFlag(k.keys, key) {
			return true
		}
	}
	return false
}

func (k *Keyboard) justPressed(key Key) bool {
	return hasFlag(k.keys, key) && !hasFlag(k.prevKeys, key)
}

func hasFlag(flags uint64, key Key) bool {
	return flags&(1<<key) > 0
}
