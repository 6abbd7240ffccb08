// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

import (
	"fmt"
	"image"
	"math"
	"sync"

	"github.com/gogpu/gg"
	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/goregular"
)

// Compositor rasterizes a Snapshot with gg.
//
// A Compositor caches one font face per label size and is safe for
// concurrent use.
type Compositor struct {
	Fill    gg.RGBA
	Hover   gg.RGBA
	Outline gg.RGBA
	Text    gg.RGBA
	// LabelScale is the label font size relative to the badge diameter.
	LabelScale float64

	source *text.FontSource

	mu    sync.Mutex
	faces map[int]text.Face
}

// NewCompositor creates a compositor drawing labels with the given font
// data. nil selects Go Regular.
func NewCompositor(font []byte) (*Compositor, error) {
	if font == nil {
		font = goregular.TTF
	}
	src, err := text.NewFontSource(font)
	if err != nil {
		return nil, fmt.Errorf("overlay: load font: %w", err)
	}
	return &Compositor{
		Fill:       gg.Hex("#1565c0"),
		Hover:      gg.Hex("#ff8f00"),
		Outline:    gg.RGB(1, 1, 1),
		Text:       gg.RGB(1, 1, 1),
		LabelScale: 0.4,
		source:     src,
		faces:      make(map[int]text.Face),
	}, nil
}

func (c *Compositor) face(diameter float32) text.Face {
	size := max(int(math.Round(float64(diameter)*c.LabelScale)), 6)
	c.mu.Lock()
	defer c.mu.Unlock()
	f, ok := c.faces[size]
	if !ok {
		f = c.source.Face(float64(size))
		c.faces[size] = f
	}
	return f
}

// Draw renders s onto a transparent width x height image. Hidden and
// fully faded nodes are skipped; an invisible snapshot yields an empty
// image.
func (c *Compositor) Draw(s Snapshot, width, height int) (image.Image, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("overlay: invalid canvas %dx%d", width, height)
	}
	dc := gg.NewContext(width, height)
	defer dc.Close()

	if s.Visible {
		for _, n := range s.Nodes {
			if n.Hidden || n.Opacity <= 0 {
				continue
			}
			if err := c.drawNode(dc, n); err != nil {
				return nil, err
			}
		}
	}
	if err := dc.FlushGPU(); err != nil {
		return nil, fmt.Errorf("overlay: flush: %w", err)
	}
	return dc.Image(), nil
}

func (c *Compositor) drawNode(dc *gg.Context, n NodeView) error {
	x, y := float64(n.X), float64(n.Y)
	r := float64(n.Size) / 2
	op := float64(n.Opacity)

	fill := c.Fill
	if n.Hovered {
		fill = c.Hover
	}
	dc.SetRGBA(fill.R, fill.G, fill.B, fill.A*op)
	dc.DrawCircle(x, y, r)
	if err := dc.Fill(); err != nil {
		return fmt.Errorf("overlay: fill node %d: %w", n.ID, err)
	}

	dc.SetLineWidth(max(1, r/8))
	dc.SetRGBA(c.Outline.R, c.Outline.G, c.Outline.B, c.Outline.A*op)
	dc.DrawCircle(x, y, r)
	if err := dc.Stroke(); err != nil {
		return fmt.Errorf("overlay: stroke node %d: %w", n.ID, err)
	}

	if n.Label == "" {
		return nil
	}
	dc.SetFont(c.face(n.Size))
	dc.SetRGBA(c.Text.R, c.Text.G, c.Text.B, c.Text.A*op)
	dc.DrawStringAnchored(n.Label, x, y, 0.5, 0.5)
	return nil
}
