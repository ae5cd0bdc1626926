package value

import (
	"container/list"
	"fmt"
	"reflect"
)

// SyncState tracks whether a Value is currently pushing into a widget.
type SyncState uint8

const (
	// Idle accepts changes reported by widgets.
	Idle SyncState = iota
	// Syncing ignores changes reported by widgets; they are echoes of the
	// push in progress.
	Syncing
)

func (s SyncState) String() string {
	if s == Syncing {
		return "Syncing"
	}
	return "Idle"
}

// Value is a named piece of data shared by any number of widgets.
// Values are created by a Group.
type Value struct {
	group   *Group
	name    ID
	payload Payload
	conns   list.List // of *Connection, in connect order
	state   SyncState
}

func newValue(g *Group, name ID, t Type) *Value {
	return &Value{group: g, name: name, payload: Zero(t)}
}

// Name returns the value ID.
func (v *Value) Name() ID { return v.name }

// Group returns the owning group, or nil after Group.Reset.
func (v *Value) Group() *Group { return v.group }

// State returns the synchronization state.
func (v *Value) State() SyncState { return v.state }

// Payload returns the current payload.
func (v *Value) Payload() Payload { return v.payload }

// Type returns the type of the current payload.
func (v *Value) Type() Type { return v.payload.Type() }

// Int returns the payload as an int.
func (v *Value) Int() int { return v.payload.Int() }

// Text returns the payload as a string.
func (v *Value) Text() string { return v.payload.Text() }

// Double returns the payload as a float64.
func (v *Value) Double() float64 { return v.payload.Float() }

// Object returns the payload object, or nil.
func (v *Value) Object() any { return v.payload.Object() }

// Connections returns the number of connected widgets.
func (v *Value) Connections() int { return v.conns.Len() }

// SetInt sets an int payload and pushes it to all widgets. Nothing happens
// when the value already holds the same int. It reports whether every push
// succeeded.
func (v *Value) SetInt(i int) bool { return v.SetPayload(Int(i)) }

// SetText sets a string payload and pushes it to all widgets.
func (v *Value) SetText(s string) bool { return v.SetPayload(String(s)) }

// SetDouble sets a float payload and pushes it to all widgets.
func (v *Value) SetDouble(f float64) bool { return v.SetPayload(Float(f)) }

// SetObject sets an object payload and pushes it to all widgets.
func (v *Value) SetObject(o any) bool { return v.SetPayload(Object(o)) }

// SetPayload replaces the payload and pushes it to all widgets. An unchanged
// payload (same type and value) is not pushed and listeners are not notified.
func (v *Value) SetPayload(p Payload) bool {
	if v.payload.Equal(p) {
		return true
	}
	v.payload = p
	return v.SyncToWidgets(nil)
}

// SetFromWidget pulls the payload from src according to the current payload
// type and pushes it to every other connected widget.
//
// While the value is Syncing the call is ignored. If src cannot provide the
// data the value is left untouched and false is returned.
func (v *Value) SetFromWidget(src Widget) bool {
	return v.setFromWidget(src, nil)
}

// setFromWidget is SetFromWidget that also skips the connection from.
func (v *Value) setFromWidget(src Widget, from *Connection) bool {
	if v.state == Syncing {
		return true
	}
	p, ok := pull(src, v.payload.Type())
	if !ok {
		Logger().Debug("value: pull from widget failed",
			"value", v.name.String(), "type", v.payload.Type().String(), "widget", fmt.Sprintf("%T", src))
		return false
	}
	v.payload = p
	return v.syncToWidgets(func(c *Connection) bool {
		return c == from || sameWidget(c.widget, src)
	})
}

// SyncToWidgets notifies the group listeners, then pushes the payload to every
// connected widget except exclude. A failing widget does not stop the others;
// the result is true only if all pushes succeeded.
func (v *Value) SyncToWidgets(exclude Widget) bool {
	return v.syncToWidgets(func(c *Connection) bool {
		return sameWidget(c.widget, exclude)
	})
}

func (v *Value) syncToWidgets(skip func(*Connection) bool) bool {
	if v.group != nil {
		v.group.InvokeOnValueChanged(v)
	}

	// Connections may be removed while pushing; iterate over a snapshot and
	// skip the ones that were unconnected meanwhile.
	conns := make([]*Connection, 0, v.conns.Len())
	for e := v.conns.Front(); e != nil; e = e.Next() {
		conns = append(conns, e.Value.(*Connection))
	}
	ok := true
	for _, c := range conns {
		if c.value != v || skip(c) {
			continue
		}
		if !v.SyncToWidget(c.widget) {
			ok = false
		}
	}
	return ok
}

// SyncToWidget pushes the payload into w, converted to w.SyncType().
// It returns true without doing anything while the value is Syncing.
func (v *Value) SyncToWidget(w Widget) bool {
	if v.state == Syncing {
		return true
	}
	v.state = Syncing
	ok := push(w, v.payload)
	v.state = Idle
	if !ok {
		Logger().Debug("value: push to widget failed",
			"value", v.name.String(), "type", v.payload.Type().String(), "widget", fmt.Sprintf("%T", w))
	}
	return ok
}

// unconnectAll removes every connection.
func (v *Value) unconnectAll() {
	for e := v.conns.Front(); e != nil; {
		next := e.Next()
		e.Value.(*Connection).Unconnect()
		e = next
	}
}

// sameWidget reports whether a and b are the same widget. Widgets of
// uncomparable types are never the same.
func sameWidget(a, b Widget) bool {
	if a == nil || b == nil || reflect.TypeOf(a) != reflect.TypeOf(b) {
		return false
	}
	return reflect.ValueOf(a).Comparable() && a == b
}

// pull reads a payload of type t from w.
func pull(w Widget, t Type) (Payload, bool) {
	switch t {
	case TypeString:
		tw, ok := w.(TextWidget)
		if !ok {
			return Payload{}, false
		}
		s, ok := tw.Text()
		if !ok {
			return Payload{}, false
		}
		return String(s), true
	case TypeNull, TypeInt:
		iw, ok := w.(IntWidget)
		if !ok {
			return Payload{}, false
		}
		return Int(iw.Value()), true
	case TypeFloat:
		if fw, ok := w.(FloatWidget); ok {
			return Float(fw.ValueDouble()), true
		}
		if iw, ok := w.(IntWidget); ok {
			return Float(float64(iw.Value())), true
		}
		return Payload{}, false
	case TypeObject:
		ow, ok := w.(ObjectWidget)
		if !ok {
			return Payload{}, false
		}
		return Object(ow.Object()), true
	}
	panic(fmt.Sprintf("value: unsupported payload type %v", t))
}

// push writes p into w converted to w.SyncType(). Object payloads only go to
// object widgets.
func push(w Widget, p Payload) bool {
	st := w.SyncType()
	if p.Type() == TypeObject && st != TypeObject {
		return false
	}
	switch st {
	case TypeString:
		tw, ok := w.(TextWidget)
		return ok && tw.SetText(p.Text())
	case TypeNull, TypeInt:
		iw, ok := w.(IntWidget)
		if !ok {
			return false
		}
		iw.SetValue(p.Int())
		return true
	case TypeFloat:
		if fw, ok := w.(FloatWidget); ok {
			fw.SetValueDouble(p.Float())
			return true
		}
		if iw, ok := w.(IntWidget); ok {
			iw.SetValue(p.Int())
			return true
		}
		return false
	default:
		ps, ok := w.(PayloadSetter)
		return ok && ps.SetPayload(p)
	}
}
