package value

import "container/list"

// Connection binds one widget to one Value. The zero Connection is
// unconnected. A widget typically embeds its Connection.
type Connection struct {
	value  *Value
	widget Widget
	elem   *list.Element
}

// Connect binds w to v, replacing any previous binding, and immediately
// pushes the current payload into w. It reports whether that push succeeded.
// Connecting to a nil value or widget only unconnects.
func (c *Connection) Connect(v *Value, w Widget) bool {
	c.Unconnect()
	if v == nil || w == nil {
		return false
	}
	c.value = v
	c.widget = w
	c.elem = v.conns.PushBack(c)
	return v.SyncToWidget(w)
}

// Unconnect removes the binding. It is a no-op on an unconnected Connection.
func (c *Connection) Unconnect() {
	if c.value == nil {
		return
	}
	c.value.conns.Remove(c.elem)
	c.value = nil
	c.widget = nil
	c.elem = nil
}

// SyncFromWidget is called by the widget when the user changed it. It pulls
// the new state into the value and pushes it to the other widgets.
func (c *Connection) SyncFromWidget(src Widget) bool {
	if c.value == nil {
		return false
	}
	return c.value.setFromWidget(src, c)
}

// Connected reports whether the connection is bound.
func (c *Connection) Connected() bool { return c.value != nil }

// Value returns the bound value, or nil.
func (c *Connection) Value() *Value { return c.value }

// Widget returns the bound widget, or nil.
func (c *Connection) Widget() Widget { return c.widget }
