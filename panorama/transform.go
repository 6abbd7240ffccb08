// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"math"

	"github.com/go-gl/mathgl/mgl32"
)

// WorldTransform computes the world matrix of a panorama as
// post * translation * correction.
//
// Sources that pre-multiply the rotation into their placement only need a
// half turn around the up axis. Otherwise the descriptor's raw rotation is
// applied followed by a quarter turn around the up axis. Both conventions
// come from the data source and are kept as is.
func WorldTransform(d *Descriptor, post mgl32.Mat4, preMultiplied bool) mgl32.Mat4 {
	translation := mgl32.Translate3D(d.Translation.X(), d.Translation.Y(), d.Translation.Z())

	var correction mgl32.Mat4
	if preMultiplied {
		correction = mgl32.HomogRotate3DY(math.Pi)
	} else {
		correction = d.Rotation.Mat4().Mul4(mgl32.HomogRotate3DY(math.Pi / 2))
	}
	return post.Mul4(translation).Mul4(correction)
}

// Origin returns the translation part of a world matrix.
func Origin(m mgl32.Mat4) mgl32.Vec3 {
	return m.Col(3).Vec3()
}
