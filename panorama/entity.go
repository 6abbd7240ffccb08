// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"context"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// Entity is one panorama of a collection: its descriptor, world transform,
// marker icon and visualization. *Entity satisfies cache.Entry.
type Entity struct {
	desc     *Descriptor
	icon     *Icon
	vis      *Visualization
	provider ImageProvider
}

// ID returns the descriptor id.
func (e *Entity) ID() string { return e.desc.ID }

// Descriptor returns the descriptor. It must not be modified.
func (e *Entity) Descriptor() *Descriptor { return e.desc }

// Transform returns the world transform computed by the factory.
func (e *Entity) Transform() mgl32.Mat4 { return e.vis.Transform() }

// Icon returns the marker icon paired with the entity.
func (e *Entity) Icon() *Icon { return e.icon }

// Visualization returns the GPU resource of the entity.
func (e *Entity) Visualization() *Visualization { return e.vis }

// Load fetches the faces from the provider and loads them. It does nothing
// if the visualization is already loaded.
func (e *Entity) Load(ctx context.Context) error {
	if e.vis.Loaded() {
		return nil
	}
	faces, err := e.provider.Faces(ctx, e.desc)
	if err != nil {
		return fmt.Errorf("panorama %s: fetch faces: %w", e.desc.ID, err)
	}
	return e.vis.LoadImages(ctx, faces)
}

// Unload releases the GPU resources of the entity.
func (e *Entity) Unload() {
	e.vis.UnloadImages()
}

// Visible reports whether the panorama is shown.
func (e *Entity) Visible() bool {
	return e.vis.Visible()
}

// String returns the entity id.
func (e *Entity) String() string {
	return e.desc.ID
}
