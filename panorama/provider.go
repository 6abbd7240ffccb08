// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import "context"

// ImageProvider supplies panorama descriptors and their face images.
//
// Descriptors may contain nil elements; the Factory drops them.
// Faces returns the six encoded faces of d in any order, each tagged.
type ImageProvider interface {
	Descriptors(ctx context.Context, filter Filter) ([]*Descriptor, error)
	Faces(ctx context.Context, d *Descriptor) ([]Face, error)
}

// Scene is the host scene graph. Objects passed to it are opaque to the
// scene's owner; this package registers *CubeMesh values.
type Scene interface {
	AddCustomObject(obj any)
	RemoveCustomObject(obj any)
}
