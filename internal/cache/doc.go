// Package cache provides a small least recently used cache for GPU-backed
// resources.
//
// Evicted values are handed to a callback so the owner can release them:
//
//	bitmaps := cache.NewLRU[string, *render.Bitmap](64, func(_ string, b *render.Bitmap) {
//		b.Close()
//	})
//	bitmaps.Put("title", bitmap)
//
// LRU is not safe for concurrent use; it is meant for the UI thread that
// owns the renderer.
package cache
