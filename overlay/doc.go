// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

// Package overlay draws cluster badges as screen-space nodes on top of a
// 3D view.
//
// Badges are not part of the 3D render. Each frame the host passes the
// current clusters to [Renderer.UpdateClusters]; the renderer projects
// them through the camera, sizes them by distance and positions one
// [Node] per cluster in a [Layer]. The layer is attached as the first
// child of the render surface's parent container, so labels stay sharp
// whatever the resolution of the 3D render target.
//
// Nodes are recycled. A node whose cluster disappears fades out for
// Options.ReleaseDelay and then returns to a bounded LIFO pool, from which
// the next new cluster takes its node.
//
// A [Compositor] rasterizes a renderer snapshot with gg, for hosts without
// a layout tree and for headless use.
package overlay
