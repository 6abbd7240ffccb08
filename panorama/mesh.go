// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"github.com/go-gl/mathgl/mgl32"
	"github.com/gogpu/wgpu/hal"

	"github.com/gogpu/pano/render"
)

// GeometryGroup is a range of indices drawn with one material.
type GeometryGroup struct {
	Start         int
	Count         int
	MaterialIndex int
}

// BoxGeometry is an indexed unit cube centered on the origin with one
// quad per face. Groups follow FaceOrder.
type BoxGeometry struct {
	Positions []mgl32.Vec3
	Normals   []mgl32.Vec3
	UVs       []mgl32.Vec2
	Indices   []uint16
	Groups    []GeometryGroup

	disposed bool
}

// faceBasis is the outward normal and the image right/up axes of each
// face, indexed by FaceTag.
var faceBasis = [6]struct{ normal, right, up mgl32.Vec3 }{
	FaceLeft:   {mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}, mgl32.Vec3{0, 1, 0}},
	FaceRight:  {mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 0, 1}, mgl32.Vec3{0, 1, 0}},
	FaceTop:    {mgl32.Vec3{0, 1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, -1}},
	FaceBottom: {mgl32.Vec3{0, -1, 0}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 0, 1}},
	FaceFront:  {mgl32.Vec3{0, 0, 1}, mgl32.Vec3{1, 0, 0}, mgl32.Vec3{0, 1, 0}},
	FaceBack:   {mgl32.Vec3{0, 0, -1}, mgl32.Vec3{-1, 0, 0}, mgl32.Vec3{0, 1, 0}},
}

// NewBoxGeometry builds a unit cube.
func NewBoxGeometry() *BoxGeometry {
	g := &BoxGeometry{
		Positions: make([]mgl32.Vec3, 0, 24),
		Normals:   make([]mgl32.Vec3, 0, 24),
		UVs:       make([]mgl32.Vec2, 0, 24),
		Indices:   make([]uint16, 0, 36),
		Groups:    make([]GeometryGroup, 0, 6),
	}
	for i, tag := range FaceOrder {
		fb := faceBasis[tag]
		center := fb.normal.Mul(0.5)
		r := fb.right.Mul(0.5)
		u := fb.up.Mul(0.5)
		base := uint16(len(g.Positions))

		// top-left, top-right, bottom-left, bottom-right
		g.Positions = append(g.Positions,
			center.Sub(r).Add(u),
			center.Add(r).Add(u),
			center.Sub(r).Sub(u),
			center.Add(r).Sub(u),
		)
		g.UVs = append(g.UVs,
			mgl32.Vec2{0, 1}, mgl32.Vec2{1, 1},
			mgl32.Vec2{0, 0}, mgl32.Vec2{1, 0},
		)
		for range 4 {
			g.Normals = append(g.Normals, fb.normal)
		}

		start := len(g.Indices)
		g.Indices = append(g.Indices,
			base, base+2, base+1,
			base+2, base+3, base+1,
		)
		g.Groups = append(g.Groups, GeometryGroup{Start: start, Count: 6, MaterialIndex: i})
	}
	return g
}

// Dispose drops the vertex data. Calling Dispose twice is harmless.
func (g *BoxGeometry) Dispose() {
	if g.disposed {
		return
	}
	g.disposed = true
	g.Positions = nil
	g.Normals = nil
	g.UVs = nil
	g.Indices = nil
	g.Groups = nil
}

// Disposed reports whether Dispose has been called.
func (g *BoxGeometry) Disposed() bool {
	return g.disposed
}

// CubeMesh is the drawable of one loaded panorama: a unit cube seen from
// the inside with one material per face. It is the object registered with
// the Scene. A CubeMesh is owned by its Visualization and must not be
// mutated by the scene.
type CubeMesh struct {
	geometry  *BoxGeometry
	materials [6]*render.FaceMaterial
	shader    hal.ShaderModule

	world       mgl32.Mat4
	model       mgl32.Mat4
	visible     bool
	renderOrder int
	opacity     float32
}

func newCubeMesh(materials [6]*render.FaceMaterial, shader hal.ShaderModule, world mgl32.Mat4) *CubeMesh {
	return &CubeMesh{
		geometry:  NewBoxGeometry(),
		materials: materials,
		shader:    shader,
		world:     world,
		model:     world,
		visible:   true,
		opacity:   1,
	}
}

// apply copies s onto the mesh and its materials.
func (m *CubeMesh) apply(s VisualState) {
	m.model = m.world.Mul4(mgl32.Scale3D(s.Scale.X(), s.Scale.Y(), s.Scale.Z()))
	m.visible = s.Visible
	m.renderOrder = s.RenderOrder
	m.opacity = s.Opacity
	for _, mat := range m.materials {
		if mat != nil {
			mat.Opacity = s.Opacity
		}
	}
}

// Geometry returns the cube geometry.
func (m *CubeMesh) Geometry() *BoxGeometry { return m.geometry }

// Material returns the material of the given face.
func (m *CubeMesh) Material(tag FaceTag) *render.FaceMaterial {
	if int(tag) >= len(m.materials) {
		return nil
	}
	return m.materials[tag]
}

// Shader returns the shader module, or nil when the host draws with its
// own pipeline.
func (m *CubeMesh) Shader() hal.ShaderModule { return m.shader }

// Model returns the world transform scaled by the visual state.
func (m *CubeMesh) Model() mgl32.Mat4 { return m.model }

// Visible reports whether the mesh should be drawn.
func (m *CubeMesh) Visible() bool { return m.visible }

// RenderOrder returns the draw order; lower draws first.
func (m *CubeMesh) RenderOrder() int { return m.renderOrder }

// Opacity returns the material opacity.
func (m *CubeMesh) Opacity() float32 { return m.opacity }

// dispose releases every face texture and material and the geometry.
// The shader module belongs to the device and is kept.
func (m *CubeMesh) dispose() {
	for i, mat := range m.materials {
		if mat != nil {
			mat.Dispose()
		}
		m.materials[i] = nil
	}
	m.geometry.Dispose()
	m.shader = nil
}
