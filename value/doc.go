// Package value keeps widgets in sync with shared named values.
//
// A [Group] owns [Value]s by [ID]. A [Connection] binds one widget to one
// value. When the user edits a widget, the widget calls
// [Connection.SyncFromWidget]; the value pulls the new state from the widget,
// notifies the group listeners and pushes the state to every other connected
// widget. Setting a value from code ([Value.SetInt], [Value.SetText], ...)
// pushes to all connected widgets.
//
//	g := value.NewGroup()
//	volume := g.CreateValueIfNeeded(value.NewID("volume"), value.TypeInt)
//
//	var sliderConn, labelConn value.Connection
//	sliderConn.Connect(volume, slider)
//	labelConn.Connect(volume, label)
//
//	volume.SetInt(7) // slider and label both show 7
//
// Pushing a value into a widget usually makes the widget report a change,
// which would sync the value again. Each Value carries a [SyncState]; while it
// is Syncing, changes reported by widgets are ignored, so the echo stops after
// one level.
//
// Widgets are expected to be pointers (they are compared by identity); a
// widget of an uncomparable type is never taken for another one. The package
// is not safe for concurrent use; it belongs to the UI thread.
package value
