// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package local implements panorama.ImageProvider over a directory holding
// a YAML manifest and the face images it references.
package local

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"golang.org/x/sync/singleflight"

	"github.com/gogpu/pano"
	"github.com/gogpu/pano/panorama"
)

// Provider serves descriptors from a manifest and reads faces from disk.
// Concurrent Faces calls for the same panorama share one read.
//
// Provider is safe for concurrent use.
type Provider struct {
	root   string
	descs  []*panorama.Descriptor
	reads  singleflight.Group
	logger *slog.Logger
}

// Open reads the manifest at path. Face paths resolve against the
// manifest's directory.
func Open(path string) (*Provider, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("local: %w", err)
	}
	defer f.Close()

	m, err := ParseManifest(f)
	if err != nil {
		return nil, err
	}
	return New(m, filepath.Dir(path))
}

// New creates a provider for m with face paths relative to root.
func New(m *Manifest, root string) (*Provider, error) {
	descs, err := m.Descriptors()
	if err != nil {
		return nil, err
	}
	return &Provider{
		root:   root,
		descs:  descs,
		logger: pano.Logger(),
	}, nil
}

// Descriptors returns the descriptors matching filter in manifest order.
func (p *Provider) Descriptors(ctx context.Context, filter panorama.Filter) ([]*panorama.Descriptor, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	var out []*panorama.Descriptor
	for _, d := range p.descs {
		if filter.Match(d) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Faces reads the face files of d. Faces missing from the manifest are
// not returned; the panorama then fails to load with
// panorama.ErrMissingFace.
//
// Concurrent calls for the same descriptor share one read. The read is
// detached from the caller's cancellation: a caller whose ctx ends returns
// ctx.Err() while the read continues for the others.
func (p *Provider) Faces(ctx context.Context, d *panorama.Descriptor) ([]panorama.Face, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	read := context.WithoutCancel(ctx)
	ch := p.reads.DoChan(d.ID, func() (any, error) {
		return p.readFaces(read, d)
	})
	var res singleflight.Result
	select {
	case res = <-ch:
	case <-ctx.Done():
		return nil, ctx.Err()
	}
	if res.Err != nil {
		return nil, res.Err
	}
	if res.Shared {
		p.logger.Debug("local: shared face read", "id", d.ID)
	}
	faces := res.Val.([]panorama.Face)
	// Callers own the slice; the image bytes are shared read-only.
	return append([]panorama.Face(nil), faces...), nil
}

func (p *Provider) readFaces(ctx context.Context, d *panorama.Descriptor) ([]panorama.Face, error) {
	faces := make([]panorama.Face, 0, len(d.Faces))
	for _, ref := range d.Faces {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		path := filepath.Join(p.root, filepath.FromSlash(ref.URI))
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("local: %s %s face: %w", d.ID, ref.Tag, err)
		}
		faces = append(faces, panorama.Face{Tag: ref.Tag, Data: data})
	}
	p.logger.Debug("local: read faces", "id", d.ID, "count", len(faces))
	return faces, nil
}

var _ panorama.ImageProvider = (*Provider)(nil)
