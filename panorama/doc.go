// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package panorama models 360° panoramas placed in a 3D scene.
//
// A panorama is described by a [Descriptor] fetched from an [ImageProvider]
// and rendered as the inside of a textured unit cube. Each panorama is
// represented by an [Entity] that pairs the descriptor with a precomputed
// world transform and a [Visualization], the resource that owns the GPU
// side of the cube.
//
// A Visualization keeps its [VisualState] (opacity, visibility, scale and
// draw order) independently of whether textures are resident. State set
// while unloaded is applied when the mesh is next created:
//
//	v := e.Visualization()
//	v.SetOpacity(0.5)          // persisted, nothing resident yet
//	_ = e.Load(ctx)            // mesh created with opacity 0.5
//	e.Unload()                 // textures released, state kept
//
// Entities implement the loadable contract of package cache, so residency
// is usually driven by a cache.Cache:
//
//	c := cache.New[*panorama.Entity](8)
//	for e := range coll.Entities() {
//		if err := c.Preload(ctx, e); err != nil { ... }
//	}
//
// A [Factory] builds a [Collection] of entities from a provider query. The
// collection carries a typed event bus for entered and exited notifications.
package panorama
