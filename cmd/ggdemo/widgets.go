package main

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/gogpu/ggui/render"
	"github.com/gogpu/ggui/value"
)

var (
	colBackground = render.RGBA(32, 34, 40, 255)
	colPanel      = render.RGBA(48, 52, 62, 255)
	colBorder     = render.RGBA(90, 96, 110, 255)
	colAccent     = render.RGBA(70, 140, 230, 255)
	colText       = render.RGBA(230, 232, 236, 255)
	colDim        = render.RGBA(150, 154, 164, 255)
)

func toNRGBA(c render.Color) color.NRGBA {
	return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}
}

// widget is a demo widget: it draws itself and reacts to a click or a
// scroll at a point.
type widget interface {
	value.Widget
	bounds() render.Rect
	paint(p *painter)
	click(x, y int)
	scroll(delta int)
}

// painter holds the shared drawing resources.
type painter struct {
	r      *render.Renderer
	labels *labels
	track  *render.Bitmap
}

// slider is an integer widget in [0, max].
type slider struct {
	conn  value.Connection
	rect  render.Rect
	title string
	pos   int
	max   int
}

func (s *slider) SyncType() value.Type { return value.TypeInt }
func (s *slider) Value() int           { return s.pos }
func (s *slider) SetValue(v int)       { s.pos = min(max(v, 0), s.max) }
func (s *slider) bounds() render.Rect  { return s.rect }

func (s *slider) paint(p *painter) {
	r := s.rect
	p.labels.draw(s.title, r.X, r.Y, colDim)
	track := render.NewRect(r.X, r.Y+16, r.W, 10)
	p.r.DrawBitmapTile(track, p.track)
	p.r.DrawRect(track, colBorder)
	fill := track.W * s.pos / max(s.max, 1)
	p.r.DrawRectFill(render.NewRect(track.X, track.Y, fill, track.H), colAccent)
	knob := render.NewRect(track.X+fill-4, track.Y-3, 8, track.H+6)
	p.r.DrawRectFill(knob, colText)
	p.labels.draw(strconv.Itoa(s.pos), r.X+r.W+8, r.Y+14, colText)
}

func (s *slider) click(x, _ int) {
	s.set(s.max * (x - s.rect.X) / max(s.rect.W, 1))
}

func (s *slider) scroll(delta int) { s.set(s.pos + delta) }

func (s *slider) set(v int) {
	s.SetValue(v)
	s.conn.SyncFromWidget(s)
}

// meter shows a float value as a bar. It is read only.
type meter struct {
	conn  value.Connection
	rect  render.Rect
	scale float64
	level float64
}

func (m *meter) SyncType() value.Type     { return value.TypeFloat }
func (m *meter) ValueDouble() float64     { return m.level }
func (m *meter) SetValueDouble(v float64) { m.level = v }
func (m *meter) bounds() render.Rect      { return m.rect }
func (m *meter) click(int, int)           {}
func (m *meter) scroll(int)               {}

func (m *meter) paint(p *painter) {
	r := m.rect
	p.r.DrawRectFill(r, colPanel)
	h := int(float64(r.H) * min(max(m.level/m.scale, 0), 1))
	p.r.DrawRectFill(render.NewRect(r.X, r.Y+r.H-h, r.W, h), colAccent)
	p.r.DrawRect(r, colBorder)
}

// checkbox is an integer widget holding 0 or 1.
type checkbox struct {
	conn    value.Connection
	rect    render.Rect
	title   string
	checked bool
}

func (c *checkbox) SyncType() value.Type { return value.TypeInt }
func (c *checkbox) bounds() render.Rect  { return c.rect }
func (c *checkbox) scroll(int)           {}

func (c *checkbox) Value() int {
	if c.checked {
		return 1
	}
	return 0
}

func (c *checkbox) SetValue(v int) { c.checked = v != 0 }

func (c *checkbox) paint(p *painter) {
	box := render.NewRect(c.rect.X, c.rect.Y, 14, 14)
	p.r.DrawRectFill(box, colPanel)
	p.r.DrawRect(box, colBorder)
	if c.checked {
		p.r.DrawRectFill(render.NewRect(box.X+3, box.Y+3, 8, 8), colAccent)
	}
	p.labels.draw(c.title, box.X+20, box.Y, colText)
}

func (c *checkbox) click(int, int) {
	c.checked = !c.checked
	c.conn.SyncFromWidget(c)
}

// field is a text widget. The demo has no keyboard input; a click cycles
// through a few strings instead.
type field struct {
	conn    value.Connection
	rect    render.Rect
	text    string
	choices []string
}

func (f *field) SyncType() value.Type { return value.TypeString }
func (f *field) Text() (string, bool) { return f.text, true }
func (f *field) bounds() render.Rect  { return f.rect }
func (f *field) scroll(int)           {}

func (f *field) SetText(s string) bool {
	f.text = s
	return true
}

func (f *field) paint(p *painter) {
	p.r.DrawRectFill(f.rect, colPanel)
	p.r.DrawRect(f.rect, colBorder)
	save := p.r.SetClipRect(render.NewRect(f.rect.X+1, f.rect.Y+1, f.rect.W-2, f.rect.H-2), true)
	p.labels.draw(f.text, f.rect.X+4, f.rect.Y+(f.rect.H-13)/2, colText)
	p.r.SetClipRect(save, false)
}

func (f *field) click(int, int) {
	if len(f.choices) == 0 {
		return
	}
	next := f.choices[0]
	for i, s := range f.choices {
		if s == f.text {
			next = f.choices[(i+1)%len(f.choices)]
		}
	}
	f.text = next
	f.conn.SyncFromWidget(f)
}

// form is the demo scene: two sliders and a meter bound to "volume", a
// checkbox bound to "muted" and two fields bound to "name".
type form struct {
	values  *value.Group
	widgets []widget
	status  string
}

func newForm(g *value.Group) *form {
	f := &form{values: g}
	volume := g.CreateValueIfNeeded(value.NewID("volume"), value.TypeInt)
	muted := g.CreateValueIfNeeded(value.NewID("muted"), value.TypeInt)
	name := g.CreateValueIfNeeded(value.NewID("name"), value.TypeString)
	volume.SetInt(35)
	name.SetText("ggui")

	a := &slider{rect: render.NewRect(20, 50, 200, 30), title: "Volume", max: 100}
	b := &slider{rect: render.NewRect(20, 100, 120, 30), title: "Volume (mirror)", max: 100}
	m := &meter{rect: render.NewRect(280, 50, 16, 80), scale: 100}
	c := &checkbox{rect: render.NewRect(20, 150, 120, 14), title: "Muted"}
	f1 := &field{rect: render.NewRect(20, 180, 160, 22), choices: []string{"ggui", "batched", "renderer"}}
	f2 := &field{rect: render.NewRect(20, 210, 160, 22)}

	a.conn.Connect(volume, a)
	b.conn.Connect(volume, b)
	m.conn.Connect(volume, m)
	c.conn.Connect(muted, c)
	f1.conn.Connect(name, f1)
	f2.conn.Connect(name, f2)
	f.widgets = []widget{a, b, m, c, f1, f2}

	g.AddListener(value.ListenerFunc(func(_ *value.Group, v *value.Value) {
		f.status = fmt.Sprintf("%s = %s", v.Name(), v.Payload().Text())
	}))
	return f
}

func (f *form) paint(p *painter, width, height int) {
	p.r.DrawRectFill(render.NewRect(0, 0, width, height), colBackground)
	p.labels.draw("ggui demo", 20, 16, colText)
	for _, w := range f.widgets {
		w.paint(p)
	}
	if f.status != "" {
		p.labels.draw(f.status, 20, height-24, colDim)
	}
}

// hit returns the widget under x, y.
func (f *form) hit(x, y int) widget {
	for _, w := range f.widgets {
		if w.bounds().Contains(x, y) {
			return w
		}
	}
	return nil
}
