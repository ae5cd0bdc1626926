// Package recording provides a render backend that records every low-level
// GPU command instead of executing it.
//
// The recorder is used to inspect what the batching renderer submits (binds,
// ring slots, scissor rectangles, vertex counts) and to replay a captured
// frame into another backend:
//
//	rec := recording.New(render.DefaultBackendOptions())
//	r, _ := render.NewRenderer(rec)
//
//	r.BeginPaint(640, 480)
//	r.DrawRectFill(render.NewRect(10, 10, 100, 20), render.White)
//	r.EndPaint()
//
//	for _, d := range rec.Draws() {
//	    fmt.Println(d.Slot, len(d.Vertices))
//	}
//
//	// Replay into the software rasteriser.
//	err := rec.Playback(softwareBackend)
//
// The package registers itself under render.BackendRecording.
package recording
