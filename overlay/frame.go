// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

import "github.com/go-gl/mathgl/mgl32"

// Camera exposes the view and projection transforms of the 3D view.
type Camera interface {
	View() mgl32.Mat4
	Projection() mgl32.Mat4
}

// Frame is the read-only render context of one update.
type Frame struct {
	Surface Surface
	Camera  Camera
	// Model maps cluster positions to world space.
	Model mgl32.Mat4
}

// Cluster is one icon record produced by the clustering step. Icon
// identifies the logical icon and must be stable across frames.
// Records with IsCluster false are single markers and get no badge.
type Cluster[H comparable] struct {
	Icon      H
	IsCluster bool
	Size      int
	Position  mgl32.Vec3
	// SizeScale multiplies the base size; 0 means 1.
	SizeScale float32
}

// StaticCamera is a Camera with fixed matrices.
type StaticCamera struct {
	ViewMatrix       mgl32.Mat4
	ProjectionMatrix mgl32.Mat4
}

// View returns the view matrix.
func (c StaticCamera) View() mgl32.Mat4 { return c.ViewMatrix }

// Projection returns the projection matrix.
func (c StaticCamera) Projection() mgl32.Mat4 { return c.ProjectionMatrix }
