package value

// Widget is anything that can be connected to a Value. SyncType selects how
// the value is pushed into the widget; the widget then implements the
// matching interface below. Widgets are identified with ==, so
// implementations should be pointers; values of uncomparable types are never
// matched as the source of a change.
type Widget interface {
	SyncType() Type
}

// TextWidget is synchronized as a string (edit fields, labels).
type TextWidget interface {
	Widget
	// Text returns the current text. ok is false when the widget cannot
	// provide it.
	Text() (text string, ok bool)
	// SetText replaces the text and reports success.
	SetText(text string) bool
}

// IntWidget is synchronized as an int (check boxes, sliders, lists).
type IntWidget interface {
	Widget
	Value() int
	SetValue(v int)
}

// FloatWidget is synchronized as a float64.
type FloatWidget interface {
	Widget
	ValueDouble() float64
	SetValueDouble(v float64)
}

// ObjectWidget provides an arbitrary object when pulled.
type ObjectWidget interface {
	Widget
	Object() any
}

// PayloadSetter receives payloads of any type. It is used for widgets whose
// SyncType is TypeObject.
type PayloadSetter interface {
	Widget
	SetPayload(p Payload) bool
}
