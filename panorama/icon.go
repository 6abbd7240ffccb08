// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import "github.com/go-gl/mathgl/mgl32"

// Icon is the marker drawn for a panorama. Its pointer identity is stable
// for the lifetime of the collection, so *Icon is usable as an overlay
// handle.
type Icon struct {
	Position mgl32.Vec3
	Index    int
}

// IconAllocator creates one icon per position. The result corresponds to
// positions by index; it may be shorter than positions or contain nil
// entries, in which case the unmatched descriptors are dropped.
type IconAllocator interface {
	AllocateIcons(positions []mgl32.Vec3) []*Icon
}

// IconAllocatorFunc adapts a function to IconAllocator.
type IconAllocatorFunc func(positions []mgl32.Vec3) []*Icon

// AllocateIcons calls f.
func (f IconAllocatorFunc) AllocateIcons(positions []mgl32.Vec3) []*Icon {
	return f(positions)
}

// DefaultIconAllocator allocates a plain Icon per position.
var DefaultIconAllocator IconAllocator = IconAllocatorFunc(func(positions []mgl32.Vec3) []*Icon {
	icons := make([]*Icon, len(positions))
	for i, p := range positions {
		icons[i] = &Icon{Position: p, Index: i}
	}
	return icons
})
