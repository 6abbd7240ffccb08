// Package pano streams 360° panoramas into a 3D viewer and draws cluster
// badges over the render surface.
//
// # Overview
//
// A panorama is rendered as the inside of a textured cube. Panoramas are
// grouped into collections built by [panorama.Factory]; each entity of a
// collection owns a [panorama.Visualization] that can be loaded into GPU
// memory and unloaded again many times. The [cache.Cache] decides which
// entities stay resident: it deduplicates concurrent loads and evicts the
// least recently admitted entity that is currently invisible.
//
// Markers of a collection are clustered by the host (clustering is not part
// of pano). Each frame the clusters are handed to an [overlay.Renderer] which
// projects them onto the render surface as pooled, screen-space badge nodes.
//
// # Packages
//
//   - cache: bounded loading cache with in-flight deduplication
//   - panorama: descriptors, visualization resource, entities, factory, events
//   - render: device and texture abstraction over gpucontext, panorama shader
//   - overlay: cluster overlay nodes, node pool, layer, compositor
//   - provider/local: manifest-driven image provider for local directories
//
// # Logging
//
// pano is silent by default. Install a logger with [SetLogger]:
//
//	pano.SetLogger(slog.Default())
//
// # Errors
//
// Faults are classified by the sentinels [ErrResourceExhausted],
// [ErrDataIntegrity] and [ErrUnsupportedEvent]. Errors returned by the
// sub-packages wrap them.
package pano
