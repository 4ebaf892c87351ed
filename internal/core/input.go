package core

// InputKind is an abstract controller input, independent of the hardware or
// terminal key that produced it.
type InputKind uint8

const (
	KindUp InputKind = iota
	KindDown
	KindLeft
	KindRight
	KindA
	KindB
	KindSelect
	KindStart
	KindLTrigger // Value carries the analog level
	KindRTrigger
	KindRotateCW // Value carries the step count
	KindRotateCCW
	KindTouch
	KindNone // No actionable input; never queued
)

// MaxPlayers is the highest seat number an event may carry.
const MaxPlayers = 4

var kindNames = [...]string{
	KindUp:        "UP",
	KindDown:      "DOWN",
	KindLeft:      "LEFT",
	KindRight:     "RIGHT",
	KindA:         "A",
	KindB:         "B",
	KindSelect:    "SELECT",
	KindStart:     "START",
	KindLTrigger:  "L_TRIGGER",
	KindRTrigger:  "R_TRIGGER",
	KindRotateCW:  "ROTATE_CW",
	KindRotateCCW: "ROTATE_CCW",
	KindTouch:     "TOUCH",
	KindNone:      "NONE",
}

// String returns the configuration name of the kind.
func (k InputKind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "UNKNOWN"
}

// ParseInputKind maps a configuration name ("UP", "ROTATE_CW", ...) to its kind.
// NONE is not part of the vocabulary and is rejected like any unknown name.
func ParseInputKind(name string) (InputKind, bool) {
	for k := KindUp; k < KindNone; k++ {
		if kindNames[k] == name {
			return k, true
		}
	}
	return KindNone, false
}

// InputEvent is one normalized controller event. It is a plain value and is
// copied into and out of the input queue.
type InputEvent struct {
	Kind    InputKind
	Player  uint8 // Seat 1..MaxPlayers
	Pressed bool  // false = release
	Value   int16 // Analog magnitude, rotation delta or touch coordinate
}

// NewInputEvent creates an event for seat 1.
func NewInputEvent(kind InputKind, pressed bool, value int16) InputEvent {
	return InputEvent{Kind: kind, Player: 1, Pressed: pressed, Value: value}
}

// Actionable reports whether the event carries input a game should see.
func (e InputEvent) Actionable() bool {
	return e.Kind < KindNone
}
