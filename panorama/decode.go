// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"bytes"
	"context"
	"fmt"
	"image"
	_ "image/jpeg" // face images are usually JPEG
	_ "image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/math/f64"
	_ "golang.org/x/image/webp"
	"golang.org/x/sync/errgroup"
)

// decodeFaces decodes the ordered faces concurrently and mirrors each one.
func decodeFaces(ctx context.Context, faces [6]Face, maxSize int) ([6]*image.RGBA, error) {
	var out [6]*image.RGBA
	g, ctx := errgroup.WithContext(ctx)
	for i, f := range faces {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			img, err := decodeFace(f.Data, maxSize)
			if err != nil {
				return fmt.Errorf("panorama: decode %s face: %w", f.Tag, err)
			}
			out[i] = img
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return [6]*image.RGBA{}, err
	}
	return out, nil
}

func decodeFace(data []byte, maxSize int) (*image.RGBA, error) {
	src, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}
	return mirror(src, maxSize), nil
}

// mirror flips src horizontally into a new RGBA image. The cube is viewed
// from the inside, so every face is drawn mirrored. When maxSize > 0 and
// src is larger, the result is scaled down to fit maxSize on its longer
// side.
func mirror(src image.Image, maxSize int) *image.RGBA {
	b := src.Bounds()
	w, h := b.Dx(), b.Dy()
	dw, dh := w, h
	if maxSize > 0 && (w > maxSize || h > maxSize) {
		k := float64(maxSize) / float64(max(w, h))
		dw = max(1, int(float64(w)*k+0.5))
		dh = max(1, int(float64(h)*k+0.5))
	}
	dst := image.NewRGBA(image.Rect(0, 0, dw, dh))
	if w == 0 || h == 0 {
		return dst
	}

	sx := float64(dw) / float64(w)
	sy := float64(dh) / float64(h)
	// Maps src to dst: x' = sx*(Max.X - x), y' = sy*(y - Min.Y).
	m := f64.Aff3{
		-sx, 0, sx * float64(b.Max.X),
		0, sy, -sy * float64(b.Min.Y),
	}
	interp := draw.NearestNeighbor
	if dw != w || dh != h {
		interp = draw.ApproxBiLinear
	}
	interp.Transform(dst, m, src, b, draw.Src, nil)
	return dst
}
