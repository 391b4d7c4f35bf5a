package event

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"
)

const (
	EventIDBudgetExhausted = "kinematic:budget_exhausted"
	EventIDJumped          = "kinematic:jumped"
	EventIDLanded          = "kinematic:landed"
	EventIDLeftGround      = "kinematic:left_ground"
	EventIDStepped         = "kinematic:stepped"
)

// Event is a diagnostic emitted while a body is ticked.
type Event interface {
	// ID returns a string that identifies the kind of event.
	ID() string
	// Data returns the payload of the event as ordered key/value pairs.
	Data() *orderedmap.OrderedMap[string, any]
}

// String formats an event as its ID followed by its payload, e.g. "kinematic:landed [tick=4 speed=3.2]".
func String(ev Event) string {
	return ev.ID() + " " + OrderedMapToString(ev.Data())
}

// OrderedMapToString formats ordered key/value pairs as "[k1=v1 k2=v2]".
func OrderedMapToString(data *orderedmap.OrderedMap[string, any]) string {
	if data == nil {
		return "[]"
	}

	dataString := "["
	count := data.Len()
	for el := data.Front(); el != nil; el = el.Next() {
		dataString += fmt.Sprintf("%s=%v", el.Key, el.Value)

		count--
		if count > 0 {
			dataString += " "
		}
	}
	dataString += "]"

	return dataString
}
