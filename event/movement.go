package event

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl32"
)

// BudgetExhaustedEvent is emitted when the collision resolver used every pass it was allowed before
// consuming the body's displacement. The unconsumed part of the displacement is dropped.
type BudgetExhaustedEvent struct {
	Tick       uint64     `json:"tick"`
	Iterations int        `json:"iterations"`
	Position   mgl32.Vec3 `json:"position"`
	Remaining  mgl32.Vec3 `json:"remaining"`
}

func (e *BudgetExhaustedEvent) ID() string {
	return EventIDBudgetExhausted
}

func (e *BudgetExhaustedEvent) Data() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("tick", e.Tick)
	data.Set("iterations", e.Iterations)
	data.Set("position", e.Position)
	data.Set("remaining", e.Remaining)
	return data
}

// JumpedEvent is emitted when a grounded body jumps.
type JumpedEvent struct {
	Tick     uint64     `json:"tick"`
	Position mgl32.Vec3 `json:"position"`
	Impulse  float32    `json:"impulse"`
}

func (e *JumpedEvent) ID() string {
	return EventIDJumped
}

func (e *JumpedEvent) Data() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("tick", e.Tick)
	data.Set("position", e.Position)
	data.Set("impulse", e.Impulse)
	return data
}

// LandedEvent is emitted when an airborne body becomes grounded.
type LandedEvent struct {
	Tick         uint64     `json:"tick"`
	Position     mgl32.Vec3 `json:"position"`
	Normal       mgl32.Vec3 `json:"normal"`
	ImpactSpeed  float32    `json:"impact_speed"`
	SlopeDegrees float32    `json:"slope_degrees"`
}

func (e *LandedEvent) ID() string {
	return EventIDLanded
}

func (e *LandedEvent) Data() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("tick", e.Tick)
	data.Set("position", e.Position)
	data.Set("normal", e.Normal)
	data.Set("impact_speed", e.ImpactSpeed)
	data.Set("slope", e.SlopeDegrees)
	return data
}

// LeftGroundEvent is emitted when a grounded body becomes airborne without jumping, such as when it
// walks off a ledge.
type LeftGroundEvent struct {
	Tick     uint64     `json:"tick"`
	Position mgl32.Vec3 `json:"position"`
}

func (e *LeftGroundEvent) ID() string {
	return EventIDLeftGround
}

func (e *LeftGroundEvent) Data() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("tick", e.Tick)
	data.Set("position", e.Position)
	return data
}

// SteppedEvent is emitted when a body climbs onto a ledge no higher than its step height.
type SteppedEvent struct {
	Tick   uint64     `json:"tick"`
	From   mgl32.Vec3 `json:"from"`
	To     mgl32.Vec3 `json:"to"`
	Height float32    `json:"height"`
}

func (e *SteppedEvent) ID() string {
	return EventIDStepped
}

func (e *SteppedEvent) Data() *orderedmap.OrderedMap[string, any] {
	data := orderedmap.NewOrderedMap[string, any]()
	data.Set("tick", e.Tick)
	data.Set("from", e.From)
	data.Set("to", e.To)
	data.Set("height", e.Height)
	return data
}
