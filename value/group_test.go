package value

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateValueIfNeeded(t *testing.T) {
	g := NewGroup()
	id := NewID("speed")

	v := g.CreateValueIfNeeded(id, TypeFloat)
	require.NotNil(t, v)
	assert.Equal(t, TypeFloat, v.Type())
	assert.Equal(t, id, v.Name())
	assert.Same(t, g, v.Group())

	v.SetDouble(1.5)
	again := g.CreateValueIfNeeded(id, TypeString)
	assert.Same(t, v, again)
	assert.Equal(t, TypeFloat, again.Type(), "existing value keeps its type")
	assert.Equal(t, 1, g.Len())

	assert.Same(t, v, g.Value(id))
	assert.Nil(t, g.Value(NewID("missing")))
}

func TestValuesInCreationOrder(t *testing.T) {
	g := NewGroup()
	names := []string{"c", "a", "b"}
	for _, n := range names {
		g.CreateValueIfNeeded(NewID(n), TypeInt)
	}
	var got []string
	for _, v := range g.Values() {
		got = append(got, v.Name().String())
	}
	assert.Equal(t, names, got)
}

type countingListener struct {
	calls []*Value
}

func (l *countingListener) OnValueChanged(_ *Group, v *Value) {
	l.calls = append(l.calls, v)
}

func TestListeners(t *testing.T) {
	g := NewGroup()
	v := g.CreateValueIfNeeded(NewID("v"), TypeInt)

	l1, l2 := &countingListener{}, &countingListener{}
	g.AddListener(l1)
	remove := g.AddListener(l2)

	v.SetInt(1)
	assert.Len(t, l1.calls, 1)
	assert.Len(t, l2.calls, 1)
	assert.Same(t, v, l1.calls[0])

	remove()
	remove()
	v.SetInt(2)
	assert.Len(t, l1.calls, 2)
	assert.Len(t, l2.calls, 1)

	g.RemoveListener(l1)
	v.SetInt(3)
	assert.Len(t, l1.calls, 2)

	// Non-comparable listeners are ignored by RemoveListener.
	calls := 0
	f := ListenerFunc(func(*Group, *Value) { calls++ })
	g.AddListener(f)
	g.RemoveListener(f)
	v.SetInt(4)
	assert.Equal(t, 1, calls)
}

func TestListenerRemovedDuringNotification(t *testing.T) {
	g := NewGroup()
	v := g.CreateValueIfNeeded(NewID("v"), TypeInt)

	second := &countingListener{}
	g.AddListener(ListenerFunc(func(*Group, *Value) { g.RemoveListener(second) }))
	g.AddListener(second)

	v.SetInt(1)
	assert.Empty(t, second.calls)
}

func TestListenerSeesNewPayload(t *testing.T) {
	g := NewGroup()
	v := g.CreateValueIfNeeded(NewID("v"), TypeString)
	var seen string
	g.AddListener(ListenerFunc(func(_ *Group, v *Value) { seen = v.Text() }))

	w := newFake(TypeString)
	w.conn.Connect(v, w)
	w.userEditsText("typed")
	assert.Equal(t, "typed", seen)
}

func TestInvokeOnValueChangedDirect(t *testing.T) {
	g := NewGroup()
	v := g.CreateValueIfNeeded(NewID("v"), TypeInt)
	l := &countingListener{}
	g.AddListener(l)
	g.InvokeOnValueChanged(v)
	assert.Len(t, l.calls, 1)
}

func TestGroupReset(t *testing.T) {
	g := NewGroup()
	v := g.CreateValueIfNeeded(NewID("v"), TypeInt)
	a, b := newFake(TypeInt), newFake(TypeInt)
	a.conn.Connect(v, a)
	b.conn.Connect(v, b)
	l := &countingListener{}
	g.AddListener(l)

	g.Reset()
	assert.Equal(t, 0, g.Len())
	assert.Nil(t, g.Value(NewID("v")))
	assert.False(t, a.conn.Connected())
	assert.False(t, b.conn.Connected())
	assert.Equal(t, 0, v.Connections())
	assert.Nil(t, v.Group())

	// A detached value still works but notifies nobody.
	v.SetInt(5)
	assert.Empty(t, l.calls)
	assert.Equal(t, 0, a.num)
}
