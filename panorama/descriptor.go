// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl32"
)

// FaceTag identifies one of the six faces of a cube-mapped panorama.
type FaceTag uint8

// Face tags. The declaration order matches FaceOrder.
const (
	FaceLeft FaceTag = iota
	FaceRight
	FaceTop
	FaceBottom
	FaceFront
	FaceBack
)

// FaceOrder is the order in which face materials are assigned to the cube.
var FaceOrder = [6]FaceTag{FaceLeft, FaceRight, FaceTop, FaceBottom, FaceFront, FaceBack}

var faceNames = [...]string{
	FaceLeft:   "left",
	FaceRight:  "right",
	FaceTop:    "top",
	FaceBottom: "bottom",
	FaceFront:  "front",
	FaceBack:   "back",
}

// String returns the lowercase face name.
func (t FaceTag) String() string {
	if int(t) < len(faceNames) {
		return faceNames[t]
	}
	return fmt.Sprintf("FaceTag(%d)", t)
}

// ParseFaceTag returns the tag for a face name such as "left".
func ParseFaceTag(s string) (FaceTag, error) {
	for i, name := range faceNames {
		if name == s {
			return FaceTag(i), nil
		}
	}
	return 0, fmt.Errorf("panorama: unknown face %q", s)
}

// Face is the encoded image of one cube face.
type Face struct {
	Tag  FaceTag
	Data []byte
}

// FaceRef points at the image of one face. URI is interpreted by the
// ImageProvider that produced the descriptor.
type FaceRef struct {
	Tag FaceTag
	URI string
}

// Rotation is an axis-angle rotation in radians.
type Rotation struct {
	Axis  mgl32.Vec3
	Angle float32
}

// Mat4 returns the rotation as a homogeneous matrix. A zero axis yields the
// identity.
func (r Rotation) Mat4() mgl32.Mat4 {
	if r.Axis.LenSqr() == 0 || r.Angle == 0 {
		return mgl32.Ident4()
	}
	return mgl32.HomogRotate3D(r.Angle, r.Axis.Normalize())
}

// Descriptor is the immutable metadata of one panorama.
type Descriptor struct {
	ID           string
	Label        string
	CollectionID string
	Translation  mgl32.Vec3
	Rotation     Rotation
	Faces        []FaceRef
}

// Filter selects the descriptors returned by an ImageProvider.
// An empty CollectionID selects every collection.
type Filter struct {
	CollectionID string
}

// Match reports whether d passes the filter.
func (f Filter) Match(d *Descriptor) bool {
	return d != nil && (f.CollectionID == "" || f.CollectionID == d.CollectionID)
}
