// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package render

import (
	"github.com/gogpu/gpucontext"
	"github.com/gogpu/gputypes"
)

// FaceMaterial is the material of one panorama cube face.
//
// Panoramas are viewed from inside the cube, so front faces are culled and
// back faces drawn. Depth testing is disabled so overlapping panoramas are
// ordered by render order alone, never by depth.
type FaceMaterial struct {
	Texture      gpucontext.Texture
	Sampler      gputypes.FilterMode
	CullMode     gputypes.CullMode
	DepthCompare gputypes.CompareFunction
	DepthWrite   bool
	Blend        gputypes.BlendState
	Transparent  bool
	Opacity      float32

	disposed bool
}

// NewFaceMaterial creates the material for one face texture.
func NewFaceMaterial(tex gpucontext.Texture) *FaceMaterial {
	return &FaceMaterial{
		Texture:      tex,
		Sampler:      gputypes.FilterModeLinear,
		CullMode:     gputypes.CullModeFront,
		DepthCompare: gputypes.CompareFunctionAlways,
		DepthWrite:   false,
		Blend:        gputypes.BlendStateAlpha(),
		Transparent:  true,
		Opacity:      1,
	}
}

// Dispose releases the face texture. Calling Dispose twice is harmless.
func (m *FaceMaterial) Dispose() {
	if m.disposed {
		return
	}
	m.disposed = true
	ReleaseTexture(m.Texture)
	m.Texture = nil
}

// Disposed reports whether Dispose has been called.
func (m *FaceMaterial) Disposed() bool {
	return m.disposed
}
