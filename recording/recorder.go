package recording

import (
	"errors"
	"fmt"
	"slices"

	"github.com/gogpu/ggui/render"
	"golang.org/x/image/math/f32"
)

func init() {
	render.Register(render.BackendRecording, func(opts render.BackendOptions) (render.Backend, error) {
		return New(opts), nil
	})
}

// ErrUnknownTexture is returned by Playback when a command references a
// texture that was never created in the recording.
var ErrUnknownTexture = errors.New("recording: unknown texture")

// Option configures a Recorder.
type Option func(*Recorder)

// WithScissorOrigin sets the scissor convention the recorder reports.
// The default is render.BottomLeft, the OpenGL convention.
func WithScissorOrigin(o render.Origin) Option {
	return func(r *Recorder) { r.caps.ScissorOrigin = o }
}

// WithPowerOfTwo makes the recorder require power-of-two textures.
func WithPowerOfTwo() Option {
	return func(r *Recorder) { r.caps.PowerOfTwo = true }
}

// WithMaxTextureSize limits texture dimensions.
func WithMaxTextureSize(n int) Option {
	return func(r *Recorder) { r.caps.MaxTextureSize = n }
}

// Recorder is a render.Backend that stores commands.
type Recorder struct {
	caps     render.Caps
	commands []Command
	nextID   TextureID
	bound    TextureID
	live     map[TextureID]bool
	inFrame  bool
	closed   bool
}

// New creates a recorder.
func New(opts render.BackendOptions, options ...Option) *Recorder {
	opts = opts.Normalize()
	r := &Recorder{
		caps: render.Caps{
			ScissorOrigin: render.BottomLeft,
			RingSize:      opts.RingSize,
			BatchVertices: opts.BatchVertices,
		},
		live: make(map[TextureID]bool),
	}
	for _, o := range options {
		o(r)
	}
	return r
}

func (r *Recorder) record(c Command) {
	r.commands = append(r.commands, c)
}

// Name implements render.Backend.
func (r *Recorder) Name() string { return render.BackendRecording }

// Caps implements render.Backend.
func (r *Recorder) Caps() render.Caps { return r.caps }

// BeginFrame implements render.Backend.
func (r *Recorder) BeginFrame(width, height int, projection f32.Mat4) error {
	if r.closed {
		return render.ErrClosed
	}
	r.inFrame = true
	r.record(BeginFrameCommand{Width: width, Height: height, Projection: projection})
	return nil
}

// EndFrame implements render.Backend.
func (r *Recorder) EndFrame() error {
	r.inFrame = false
	r.record(EndFrameCommand{})
	return nil
}

// NewTexture implements render.Backend.
func (r *Recorder) NewTexture(width, height int) (render.Texture, error) {
	if r.closed {
		return nil, render.ErrClosed
	}
	r.nextID++
	t := &texture{rec: r, id: r.nextID}
	r.live[t.id] = true
	r.record(NewTextureCommand{Texture: t.id, Width: width, Height: height})
	return t, nil
}

// BindTexture implements render.Backend.
func (r *Recorder) BindTexture(t render.Texture) {
	id := NoTexture
	if tt, ok := t.(*texture); ok && tt != nil {
		id = tt.id
	}
	r.bound = id
	r.record(BindTextureCommand{Texture: id})
}

// SetScissor implements render.Backend.
func (r *Recorder) SetScissor(rect render.Rect) {
	r.record(SetScissorCommand{Rect: rect})
}

// Draw implements render.Backend.
func (r *Recorder) Draw(slot int, vertices []render.Vertex) {
	r.record(DrawCommand{Slot: slot, Texture: r.bound, Vertices: slices.Clone(vertices)})
}

// Close implements render.Backend.
func (r *Recorder) Close() error {
	r.closed = true
	return nil
}

// Closed reports whether Close was called.
func (r *Recorder) Closed() bool { return r.closed }

// InFrame reports whether BeginFrame was called without EndFrame.
func (r *Recorder) InFrame() bool { return r.inFrame }

// Bound returns the currently bound texture.
func (r *Recorder) Bound() TextureID { return r.bound }

// LiveTextures returns the number of created and not yet destroyed textures.
func (r *Recorder) LiveTextures() int { return len(r.live) }

// Commands returns the recorded commands.
func (r *Recorder) Commands() []Command { return r.commands }

// Len returns the number of recorded commands.
func (r *Recorder) Len() int { return len(r.commands) }

// Count returns how many commands of type t were recorded.
func (r *Recorder) Count(t CommandType) int {
	n := 0
	for _, c := range r.commands {
		if c.Type() == t {
			n++
		}
	}
	return n
}

// Draws returns the recorded draw calls in order.
func (r *Recorder) Draws() []DrawCommand {
	var out []DrawCommand
	for _, c := range r.commands {
		if d, ok := c.(DrawCommand); ok {
			out = append(out, d)
		}
	}
	return out
}

// Scissors returns the recorded scissor rectangles in order.
func (r *Recorder) Scissors() []render.Rect {
	var out []render.Rect
	for _, c := range r.commands {
		if s, ok := c.(SetScissorCommand); ok {
			out = append(out, s.Rect)
		}
	}
	return out
}

// Reset drops the recorded commands. Texture IDs and the bound texture are
// kept so that a later Playback still sees consistent state.
func (r *Recorder) Reset() {
	r.commands = r.commands[:0]
}

// Playback replays the recorded commands into dst. Textures are recreated in
// dst and uploads repeated, so dst ends up with the same frame content.
// Textures still alive at the end of the recording are destroyed in dst.
func (r *Recorder) Playback(dst render.Backend) error {
	textures := make(map[TextureID]render.Texture)
	defer func() {
		for _, t := range textures {
			t.Destroy()
		}
	}()
	lookup := func(id TextureID) (render.Texture, error) {
		if id == NoTexture {
			return nil, nil
		}
		t, ok := textures[id]
		if !ok {
			return nil, fmt.Errorf("%w: %d", ErrUnknownTexture, id)
		}
		return t, nil
	}

	for i, c := range r.commands {
		switch c := c.(type) {
		case BeginFrameCommand:
			if err := dst.BeginFrame(c.Width, c.Height, c.Projection); err != nil {
				return fmt.Errorf("recording: playback command %d: %w", i, err)
			}
		case EndFrameCommand:
			if err := dst.EndFrame(); err != nil {
				return fmt.Errorf("recording: playback command %d: %w", i, err)
			}
		case NewTextureCommand:
			t, err := dst.NewTexture(c.Width, c.Height)
			if err != nil {
				return fmt.Errorf("recording: playback command %d: %w", i, err)
			}
			textures[c.Texture] = t
		case UploadCommand:
			t, err := lookup(c.Texture)
			if err != nil {
				return err
			}
			if err := t.Upload(c.Pixels); err != nil {
				return fmt.Errorf("recording: playback command %d: %w", i, err)
			}
		case BindTextureCommand:
			t, err := lookup(c.Texture)
			if err != nil {
				return err
			}
			dst.BindTexture(t)
		case DestroyTextureCommand:
			t, err := lookup(c.Texture)
			if err != nil {
				return err
			}
			t.Destroy()
			delete(textures, c.Texture)
		case SetScissorCommand:
			rect := c.Rect
			if r.caps.ScissorOrigin != dst.Caps().ScissorOrigin {
				rect = r.flipScissor(i, rect)
			}
			dst.SetScissor(rect)
		case DrawCommand:
			dst.Draw(c.Slot, c.Vertices)
		}
	}
	return nil
}

// flipScissor converts a scissor rect between origins using the height of
// the frame the command at index i belongs to. The flip is its own inverse.
func (r *Recorder) flipScissor(i int, rect render.Rect) render.Rect {
	for j := i; j >= 0; j-- {
		if b, ok := r.commands[j].(BeginFrameCommand); ok {
			return render.ScissorRect(rect, b.Height, render.BottomLeft)
		}
	}
	return rect
}

// texture is a recorded texture handle.
type texture struct {
	rec *Recorder
	id  TextureID
}

// Upload implements render.Texture.
func (t *texture) Upload(pixels []byte) error {
	t.rec.record(UploadCommand{Texture: t.id, Pixels: slices.Clone(pixels)})
	return nil
}

// Destroy implements render.Texture.
func (t *texture) Destroy() {
	delete(t.rec.live, t.id)
	t.rec.record(DestroyTextureCommand{Texture: t.id})
}

// ID returns the texture ID.
func (t *texture) ID() TextureID { return t.id }

// TextureIDOf returns the recorded ID of a texture created by a Recorder, or
// NoTexture for anything else.
func TextureIDOf(t render.Texture) TextureID {
	if tt, ok := t.(*texture); ok && tt != nil {
		return tt.id
	}
	return NoTexture
}
