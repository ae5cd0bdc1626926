package value

import (
	"container/list"
	"reflect"
)

// Listener is notified every time a value of a Group is synchronized to its
// widgets, whether the change came from code or from a widget.
type Listener interface {
	OnValueChanged(g *Group, v *Value)
}

// ListenerFunc adapts a function to a Listener.
type ListenerFunc func(g *Group, v *Value)

// OnValueChanged calls f(g, v).
func (f ListenerFunc) OnValueChanged(g *Group, v *Value) { f(g, v) }

type listenerEntry struct {
	l       Listener
	removed bool
}

// Group is a registry of named values and the listeners observing them.
type Group struct {
	values    map[ID]*Value
	order     []*Value
	listeners list.List // of *listenerEntry
}

// NewGroup returns an empty group.
func NewGroup() *Group {
	return &Group{values: make(map[ID]*Value)}
}

// CreateValueIfNeeded returns the value called name, creating it with the
// zero payload of type t if it does not exist yet. An existing value keeps
// its payload and type.
func (g *Group) CreateValueIfNeeded(name ID, t Type) *Value {
	if v, ok := g.values[name]; ok {
		return v
	}
	v := newValue(g, name, t)
	g.values[name] = v
	g.order = append(g.order, v)
	return v
}

// Value returns the value called name, or nil.
func (g *Group) Value(name ID) *Value {
	return g.values[name]
}

// Values returns all values in creation order.
func (g *Group) Values() []*Value {
	return append([]*Value(nil), g.order...)
}

// Len returns the number of values.
func (g *Group) Len() int { return len(g.order) }

// AddListener registers l and returns a function that removes it.
// Listeners are notified in registration order.
func (g *Group) AddListener(l Listener) (remove func()) {
	e := &listenerEntry{l: l}
	elem := g.listeners.PushBack(e)
	return func() {
		if e.removed {
			return
		}
		e.removed = true
		g.listeners.Remove(elem)
	}
}

// RemoveListener removes the first registration of l. Listeners of
// non-comparable types (such as ListenerFunc) can only be removed with the
// function returned by AddListener.
func (g *Group) RemoveListener(l Listener) {
	if l == nil || !reflect.TypeOf(l).Comparable() {
		return
	}
	for el := g.listeners.Front(); el != nil; el = el.Next() {
		e := el.Value.(*listenerEntry)
		if reflect.TypeOf(e.l).Comparable() && e.l == l {
			e.removed = true
			g.listeners.Remove(el)
			return
		}
	}
}

// InvokeOnValueChanged notifies every listener that v changed.
// Listeners removed during the notification are not called.
func (g *Group) InvokeOnValueChanged(v *Value) {
	entries := make([]*listenerEntry, 0, g.listeners.Len())
	for el := g.listeners.Front(); el != nil; el = el.Next() {
		entries = append(entries, el.Value.(*listenerEntry))
	}
	for _, e := range entries {
		if !e.removed {
			e.l.OnValueChanged(g, v)
		}
	}
}

// Reset unconnects every widget from every value and removes all values.
// Listeners stay registered.
func (g *Group) Reset() {
	for _, v := range g.order {
		v.unconnectAll()
		v.group = nil
	}
	clear(g.values)
	g.order = nil
}
