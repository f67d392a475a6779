package stream

import "strconv"

// Event represents a structural event from the decoder. Events
// correspond to the encoder's API methods, providing a symmetric
// encode/decode interface without building value trees.
type Event struct {
	Type EventType

	// Len is the declared element count for BeginArray and the
	// declared pair count for BeginMap.
	Len int

	// Value fields (only one is set based on Type)
	Bool   bool
	Int    int64
	Float  float64
	String string
	Bytes  []byte
	ExtTag int8

	// Offset is the absolute byte offset at which the event's value
	// starts in the stream (decoder only).
	Offset int
}

// IsValueStart returns true if this event starts a value, as opposed
// to closing a container.
func (e *Event) IsValueStart() bool {
	return e.Type != EventEndArray && e.Type != EventEndMap
}

// EventType represents the type of a structural event.
type EventType int

const (
	EventBeginMap EventType = iota
	EventEndMap
	EventBeginArray
	EventEndArray
	EventNil
	EventBool
	EventInt
	EventFloat
	EventString
	EventBinary
	EventExt
)

func (t EventType) String() string {
	switch t {
	case EventBeginMap:
		return "BeginMap"
	case EventEndMap:
		return "EndMap"
	case EventBeginArray:
		return "BeginArray"
	case EventEndArray:
		return "EndArray"
	case EventNil:
		return "Nil"
	case EventBool:
		return "Bool"
	case EventInt:
		return "Int"
	case EventFloat:
		return "Float"
	case EventString:
		return "String"
	case EventBinary:
		return "Binary"
	case EventExt:
		return "Ext"
	default:
		return "Unknown(" + strconv.Itoa(int(t)) + ")"
	}
}
