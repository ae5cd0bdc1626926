package value

// fakeWidget implements every widget interface. Setters record the call
// and then report the change back through conn, like a real widget whose
// change event fires on programmatic updates.
type fakeWidget struct {
	sync Type
	conn Connection

	text   string
	num    int
	dbl    float64
	obj    any
	pushed Payload

	textUnavailable bool
	rejectText      bool
	rejectPayload   bool
	echo            bool

	sets int
}

func newFake(sync Type) *fakeWidget { return &fakeWidget{sync: sync, echo: true} }

func (w *fakeWidget) SyncType() Type { return w.sync }

func (w *fakeWidget) Text() (string, bool) {
	if w.textUnavailable {
		return "", false
	}
	return w.text, true
}

func (w *fakeWidget) SetText(s string) bool {
	if w.rejectText {
		return false
	}
	w.text = s
	w.changed()
	return true
}

func (w *fakeWidget) Value() int { return w.num }

func (w *fakeWidget) SetValue(v int) {
	w.num = v
	w.changed()
}

func (w *fakeWidget) ValueDouble() float64 { return w.dbl }

func (w *fakeWidget) SetValueDouble(v float64) {
	w.dbl = v
	w.changed()
}

func (w *fakeWidget) Object() any { return w.obj }

func (w *fakeWidget) SetPayload(p Payload) bool {
	if w.rejectPayload {
		return false
	}
	w.pushed = p
	w.changed()
	return true
}

func (w *fakeWidget) changed() {
	w.sets++
	if w.echo {
		w.conn.SyncFromWidget(w)
	}
}

// userEdits simulates the user typing into the widget.
func (w *fakeWidget) userEditsText(s string) bool {
	w.text = s
	return w.conn.SyncFromWidget(w)
}

func (w *fakeWidget) userEditsInt(v int) bool {
	w.num = v
	return w.conn.SyncFromWidget(w)
}

// intOnly only implements IntWidget.
type intOnly struct{ v int }

func (w *intOnly) SyncType() Type { return TypeInt }
func (w *intOnly) Value() int     { return w.v }
func (w *intOnly) SetValue(v int) { w.v = v }

// bare implements no data interface at all.
type bare struct{ t Type }

func (b *bare) SyncType() Type { return b.t }
