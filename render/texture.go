// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"errors"
	"fmt"
	"image"
	"sync/atomic"

	"github.com/gogpu/gpucontext"
)

// ErrTextureReleased is returned when operating on a released texture.
var ErrTextureReleased = errors.New("render: texture has been released")

// PixmapTexture is a CPU-backed texture. It implements gpucontext.Texture
// and gpucontext.TextureUpdater.
type PixmapTexture struct {
	width    int
	height   int
	pix      []byte
	released atomic.Bool
}

// Width returns the texture width in pixels.
func (t *PixmapTexture) Width() int { return t.width }

// Height returns the texture height in pixels.
func (t *PixmapTexture) Height() int { return t.height }

// UpdateData replaces the texture contents.
func (t *PixmapTexture) UpdateData(data []byte) error {
	if t.released.Load() {
		return ErrTextureReleased
	}
	if len(data) != len(t.pix) {
		return fmt.Errorf("render: texture data is %d bytes, want %d", len(data), len(t.pix))
	}
	copy(t.pix, data)
	return nil
}

// Image returns a copy of the texture contents.
func (t *PixmapTexture) Image() *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, t.width, t.height))
	copy(img.Pix, t.pix)
	return img
}

// Destroy releases the pixel buffer. Calling Destroy twice is harmless.
func (t *PixmapTexture) Destroy() {
	if t.released.Swap(true) {
		return
	}
	t.pix = nil
}

// Released reports whether Destroy has been called.
func (t *PixmapTexture) Released() bool {
	return t.released.Load()
}

// SoftwareTextureCreator creates PixmapTextures.
type SoftwareTextureCreator struct{}

// NewTextureFromRGBA creates a CPU texture holding a copy of data.
func (SoftwareTextureCreator) NewTextureFromRGBA(width, height int, data []byte) (gpucontext.Texture, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyImage
	}
	if len(data) != width*height*4 {
		return nil, fmt.Errorf("render: RGBA data is %d bytes, want %d", len(data), width*height*4)
	}
	pix := make([]byte, len(data))
	copy(pix, data)
	return &PixmapTexture{width: width, height: height, pix: pix}, nil
}

// ReleaseTexture destroys tex if its implementation supports it.
// gpucontext.Texture has no lifecycle methods of its own; host textures
// that hold GPU memory implement Destroy.
func ReleaseTexture(tex gpucontext.Texture) {
	if tex == nil {
		return
	}
	if d, ok := tex.(interface{ Destroy() }); ok {
		d.Destroy()
	}
}

// Ensure SoftwareTextureCreator implements gpucontext.TextureCreator.
var _ gpucontext.TextureCreator = SoftwareTextureCreator{}

// Ensure PixmapTexture implements gpucontext.TextureUpdater.
var _ gpucontext.TextureUpdater = (*PixmapTexture)(nil)
