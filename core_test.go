package ggui

import (
	"bytes"
	"image"
	"log/slog"
	"testing"

	_ "github.com/gogpu/ggui/backend/software"
	"github.com/gogpu/ggui/recording"
	"github.com/gogpu/ggui/render"
	"github.com/gogpu/ggui/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type slider struct {
	conn value.Connection
	pos  int
}

func (s *slider) SyncType() value.Type { return value.TypeInt }
func (s *slider) Value() int           { return s.pos }
func (s *slider) SetValue(v int)       { s.pos = v }

func (s *slider) drag(to int) {
	s.pos = to
	s.conn.SyncFromWidget(s)
}

func TestNewWithBackend(t *testing.T) {
	rec := recording.New(render.DefaultBackendOptions())
	core, err := New(DefaultConfig(), WithBackend(rec))
	require.NoError(t, err)
	assert.Equal(t, render.BackendRecording, core.Backend())
	assert.NotNil(t, core.Renderer())
	assert.NotNil(t, core.Values())

	require.NoError(t, core.Close())
	assert.True(t, rec.Closed())
	assert.Nil(t, core.Renderer())
	assert.NoError(t, core.Close(), "second Close")
}

func TestNewByName(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = render.BackendRecording
	core, err := New(cfg)
	require.NoError(t, err)
	defer core.Close()
	assert.Equal(t, render.BackendRecording, core.Backend())

	_, err = New(cfg, WithBackendName("no-such-backend"))
	assert.ErrorIs(t, err, render.ErrBackendNotAvailable)
}

func TestNewRejectsInvalidConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.RingSize = -2
	_, err := New(cfg, WithBackendName(render.BackendRecording))
	assert.ErrorIs(t, err, ErrInvalidConfig)
}

func TestPaintIntoTarget(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 8, 8))
	core, err := New(DefaultConfig(), WithBackendName(render.BackendSoftware), WithTarget(img))
	require.NoError(t, err)
	defer core.Close()

	red := render.RGBA(255, 0, 0, 255)
	err = core.Paint(8, 8, func(r *render.Renderer) {
		r.DrawRectFill(render.NewRect(2, 2, 4, 4), red)
	})
	require.NoError(t, err)

	assert.Equal(t, uint8(255), img.RGBAAt(3, 3).R)
	assert.Equal(t, uint8(0), img.RGBAAt(0, 0).R)
	assert.Equal(t, 1, core.Renderer().Stats().Batches)
}

func TestClosedCore(t *testing.T) {
	core, err := New(DefaultConfig(), WithBackendName(render.BackendRecording))
	require.NoError(t, err)
	require.NoError(t, core.Close())

	assert.ErrorIs(t, core.Paint(4, 4, func(*render.Renderer) {}), ErrClosed)
	_, err = core.Bind(&value.Connection{}, "x", value.TypeInt, &slider{})
	assert.ErrorIs(t, err, ErrClosed)
	assert.Empty(t, core.Backend())
}

func TestBindSyncsWidgets(t *testing.T) {
	shared := value.NewGroup()
	core, err := New(DefaultConfig(), WithBackendName(render.BackendRecording), WithValues(shared))
	require.NoError(t, err)
	defer core.Close()
	assert.Same(t, shared, core.Values())

	a, b := &slider{pos: 7}, &slider{pos: 9}
	v, err := core.Bind(&a.conn, "volume", value.TypeInt, a)
	require.NoError(t, err)
	_, err = core.Bind(&b.conn, "volume", value.TypeInt, b)
	require.NoError(t, err)
	assert.Equal(t, 0, a.pos, "connect pushes the value")
	assert.Equal(t, 2, v.Connections())

	a.drag(42)
	assert.Equal(t, 42, v.Int())
	assert.Equal(t, 42, b.pos)

	require.NoError(t, core.Close())
	b.drag(5)
	assert.Equal(t, 5, a.pos, "values outlive the renderer")
}

func TestBindReportsRejectedPush(t *testing.T) {
	shared := value.NewGroup()
	shared.CreateValueIfNeeded(value.NewID("doc"), value.TypeObject).SetObject(struct{}{})
	core, err := New(DefaultConfig(), WithBackendName(render.BackendRecording), WithValues(shared))
	require.NoError(t, err)
	defer core.Close()

	s := &slider{pos: 3}
	v, err := core.Bind(&s.conn, "doc", value.TypeInt, s)
	require.ErrorIs(t, err, ErrSyncFailed)
	assert.Contains(t, err.Error(), "doc")
	require.NotNil(t, v)
	assert.True(t, s.conn.Connected(), "the connection stays bound")
	assert.Equal(t, 3, s.pos)

	require.True(t, v.SetInt(8))
	assert.Equal(t, 8, s.pos)
}

func TestWithLoggerPropagates(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() { SetLogger(nil) })

	core, err := New(DefaultConfig(), WithBackendName(render.BackendRecording), WithLogger(l))
	require.NoError(t, err)
	defer core.Close()

	assert.Same(t, l, Logger())
	assert.Same(t, l, render.Logger())
	assert.Same(t, l, value.Logger())
	assert.Contains(t, buf.String(), "ggui: core ready")
}
