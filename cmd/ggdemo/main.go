// Command ggdemo renders a small form of bound widgets with ggui.
//
// By default it renders one frame offscreen and writes it to a PNG file.
// With -window it opens a GLFW window on the gl or glfixed backend; clicking
// and scrolling the widgets shows the value graph keeping them in sync.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"

	"github.com/gogpu/ggui"
	_ "github.com/gogpu/ggui/backend/software"
	_ "github.com/gogpu/ggui/backend/wgpu"
	"github.com/gogpu/ggui/recording"
	"github.com/gogpu/ggui/render"
	xdraw "golang.org/x/image/draw"
)

func logger() *slog.Logger { return ggui.Logger() }

func main() {
	var (
		configPath = flag.String("config", "", "TOML configuration file")
		backend    = flag.String("backend", "", "backend: software, wgpu, gl, glfixed, recording or auto")
		width      = flag.Int("width", 320, "frame width")
		height     = flag.Int("height", 260, "frame height")
		output     = flag.String("output", "ggdemo.png", "output file")
		scale      = flag.Float64("scale", 1, "output scale factor")
		window     = flag.Bool("window", false, "open a window instead of writing a file")
		verbose    = flag.Bool("v", false, "debug logging")
	)
	flag.Parse()

	cfg := ggui.DefaultConfig()
	cfg.Backend = render.BackendSoftware
	if *configPath != "" {
		var err error
		if cfg, err = ggui.LoadConfig(*configPath); err != nil {
			log.Fatal(err)
		}
	}
	if *backend != "" {
		cfg.Backend = *backend
	}
	if *window && *backend == "" && cfg.Backend == render.BackendSoftware {
		cfg.Backend = render.BackendGL
	}
	if *verbose {
		cfg.LogLevel = "debug"
	}

	var err error
	if *window {
		err = runWindow(cfg, *width, *height)
	} else {
		err = renderFile(cfg, *width, *height, *scale, *output)
	}
	if err != nil {
		log.Fatal(err)
	}
}

// demo couples the form with the renderer resources it draws with.
type demo struct {
	core    *ggui.Core
	form    *form
	painter painter
}

func newDemo(core *ggui.Core) (*demo, error) {
	r := core.Renderer()
	track, err := r.CreateBitmap(8, 8, checker(8, 2, render.RGBA(60, 64, 74, 255), render.RGBA(70, 74, 86, 255)))
	if err != nil {
		return nil, fmt.Errorf("ggdemo: track bitmap: %w", err)
	}
	return &demo{
		core: core,
		form: newForm(core.Values()),
		painter: painter{
			r:      r,
			labels: newLabels(r),
			track:  track,
		},
	}, nil
}

func (d *demo) frame(width, height int) error {
	return d.core.Paint(width, height, func(*render.Renderer) {
		d.form.paint(&d.painter, width, height)
	})
}

func (d *demo) click(x, y int) {
	if w := d.form.hit(x, y); w != nil {
		w.click(x, y)
	}
}

func (d *demo) scroll(x, y, delta int) {
	if w := d.form.hit(x, y); w != nil {
		w.scroll(delta)
	}
}

func (d *demo) close() {
	d.painter.labels.close()
	d.painter.track.Close()
}

// pixelReader is implemented by backends that can copy their target back.
type pixelReader interface {
	ReadPixels() (*image.RGBA, error)
}

func renderFile(cfg ggui.Config, width, height int, scale float64, path string) error {
	target := image.NewRGBA(image.Rect(0, 0, width, height))
	core, err := ggui.New(cfg, ggui.WithTarget(target))
	if err != nil {
		return err
	}
	defer core.Close()

	d, err := newDemo(core)
	if err != nil {
		return err
	}
	defer d.close()

	// Interact once so the frame shows synced widgets.
	d.click(170, 70)
	d.click(30, 155)
	d.click(40, 190)

	if err := d.frame(width, height); err != nil {
		return err
	}
	img, err := snapshot(core, target)
	if err != nil {
		return err
	}
	if scale > 0 && scale != 1 {
		img = scaleImage(img, scale)
	}
	if err := writePNG(path, img); err != nil {
		return err
	}
	logger().Info("ggdemo: wrote frame", "path", path, "backend", core.Backend(),
		"batches", core.Renderer().Stats().Batches)
	return nil
}

func snapshot(core *ggui.Core, target *image.RGBA) (*image.RGBA, error) {
	switch b := core.Renderer().Backend().(type) {
	case pixelReader:
		return b.ReadPixels()
	case *recording.Recorder:
		return nil, errors.New("ggdemo: the recording backend has no pixels")
	default:
		if core.Backend() == render.BackendSoftware {
			return target, nil
		}
		return nil, fmt.Errorf("ggdemo: backend %s cannot be read back, use -window", core.Backend())
	}
}

// scaleImage resizes img by factor. Whole factors keep hard pixel edges.
func scaleImage(img *image.RGBA, factor float64) *image.RGBA {
	b := img.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, max(int(float64(b.Dx())*factor), 1), max(int(float64(b.Dy())*factor), 1)))
	var s xdraw.Scaler = xdraw.CatmullRom
	if factor == float64(int(factor)) {
		s = xdraw.NearestNeighbor
	}
	s.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("ggdemo: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("ggdemo: encode %s: %w", path, err)
	}
	return f.Close()
}
