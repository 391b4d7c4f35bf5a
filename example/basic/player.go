package main

import (
	"github.com/chewxy/math32"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/oomph-ac/kinematic/event"
	"github.com/oomph-ac/kinematic/input"
	"github.com/oomph-ac/kinematic/movement"
	"github.com/oomph-ac/kinematic/world"
	"github.com/sirupsen/logrus"
)

// script drives the devices of a player on a given tick.
type script func(tick uint64, kb *input.Keyboard, pad *input.Gamepad)

type player struct {
	id     world.BodyID
	kb     *input.Keyboard
	pad    *input.Gamepad
	script script
}

func newPlayer(w *world.World, cfg movement.Config, pos mgl32.Vec3, s script, logger *logrus.Logger) *player {
	id, err := w.AddBody(cfg, pos)
	if err != nil {
		logger.Fatalf("unable to add body: %v", err)
	}
	log := logger.WithField("body", id)
	w.Handle(id, movement.HandlerFunc(func(ev event.Event) {
		if ev.ID() == event.EventIDBudgetExhausted {
			log.Warn(event.String(ev))
			return
		}
		log.Debug(event.String(ev))
	}))
	return &player{id: id, kb: input.NewKeyboard(), pad: input.NewGamepad(), script: s}
}

func (p *player) intent(tick uint64) movement.Intent {
	if p.script != nil {
		p.script(tick, p.kb, p.pad)
	}
	return input.Poll(p.kb, p.pad)
}

// keyboardScript walks forward, turning slowly with the mouse and jumping every two seconds.
func keyboardScript(tick uint64, kb *input.Keyboard, _ *input.Gamepad) {
	if tick == 1 {
		kb.SetKey(input.MouseLeft, true)
	}
	kb.SetKey(input.KeyW, true)
	kb.SetKey(input.KeySpace, tick%120 == 0)
	kb.MoveMouse(2, 0)
}

// gamepadScript circles with the left stick, which walks the body up and down the ramp.
func gamepadScript(tick uint64, _ *input.Keyboard, pad *input.Gamepad) {
	sin, cos := math32.Sincos(float32(tick) / 90)
	pad.LeftStick = mgl32.Vec2{cos, sin}
	pad.RightStick = mgl32.Vec2{0.3, 0}
	pad.SetSouth(tick%300 == 150)
}
