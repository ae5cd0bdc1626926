// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import "errors"

var (
	// ErrBackendNotAvailable is returned when no backend with the requested
	// name is registered, or when no registered backend could be opened.
	ErrBackendNotAvailable = errors.New("render: backend not available")

	// ErrInvalidBitmapSize is returned for zero, negative or oversized bitmaps.
	ErrInvalidBitmapSize = errors.New("render: invalid bitmap size")

	// ErrNotPowerOfTwo is returned by backends that only accept power-of-two
	// texture dimensions.
	ErrNotPowerOfTwo = errors.New("render: bitmap size is not a power of two")

	// ErrPixelDataSize is returned when the pixel slice does not hold exactly
	// width*height RGBA8 pixels.
	ErrPixelDataSize = errors.New("render: pixel data size mismatch")

	// ErrFrameInProgress is returned by BeginPaint when the previous frame
	// was not ended.
	ErrFrameInProgress = errors.New("render: frame already in progress")

	// ErrNoFrame is returned by EndPaint without a matching BeginPaint.
	ErrNoFrame = errors.New("render: no frame in progress")

	// ErrClosed is returned when using a closed renderer or bitmap.
	ErrClosed = errors.New("render: closed")
)
