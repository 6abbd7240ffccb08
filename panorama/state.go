// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import "github.com/go-gl/mathgl/mgl32"

// VisualState is the presentation state of a panorama. It is kept
// regardless of GPU residency and applied whenever a mesh is created.
type VisualState struct {
	Opacity     float32
	Visible     bool
	Scale       mgl32.Vec3
	RenderOrder int
}

// DefaultVisualState returns the state of a newly created visualization.
func DefaultVisualState() VisualState {
	return VisualState{
		Opacity: 1,
		Visible: true,
		Scale:   mgl32.Vec3{1, 1, 1},
	}
}

func clampOpacity(o float32) float32 {
	switch {
	case o != o: // NaN
		return 0
	case o < 0:
		return 0
	case o > 1:
		return 1
	}
	return o
}
