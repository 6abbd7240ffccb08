// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/pano"
	"github.com/gogpu/pano/render"
)

// ErrMissingFace is returned by LoadImages when one of the six faces is
// absent. It wraps pano.ErrDataIntegrity.
var ErrMissingFace = fmt.Errorf("panorama: missing face: %w", pano.ErrDataIntegrity)

// residency is either unloaded or loaded.
type residency interface {
	isResidency()
}

type unloaded struct{}

type loaded struct {
	mesh *CubeMesh
}

func (unloaded) isResidency() {}
func (loaded) isResidency()   {}

// Visualization owns the GPU side of one panorama. It is created unloaded
// and moves between unloaded and loaded any number of times; its visual
// state survives every transition.
//
// Visualization is safe for concurrent use.
type Visualization struct {
	id     string
	world  mgl32.Mat4
	scene  Scene
	device *render.Device
	opts   options

	mu    sync.Mutex
	state VisualState
	res   residency
}

// NewVisualization creates an unloaded visualization. No GPU resource is
// created until LoadImages.
func NewVisualization(id string, world mgl32.Mat4, scene Scene, device *render.Device, opts ...Option) *Visualization {
	if device == nil {
		device = render.NewSoftwareDevice()
	}
	return &Visualization{
		id:     id,
		world:  world,
		scene:  scene,
		device: device,
		opts:   buildOptions(opts),
		state:  DefaultVisualState(),
		res:    unloaded{},
	}
}

// Transform returns the world transform.
func (v *Visualization) Transform() mgl32.Mat4 {
	return v.world
}

// LoadImages decodes faces, builds the cube mesh, applies the current
// visual state and registers the mesh with the scene. faces must contain
// every FaceTag; extra faces are ignored. If the visualization is already
// loaded LoadImages does nothing.
func (v *Visualization) LoadImages(ctx context.Context, faces []Face) error {
	if v.Loaded() {
		return nil
	}

	ordered, err := orderFaces(faces)
	if err != nil {
		v.opts.logger.Error("panorama: face missing", "id", v.id, "err", err)
		return fmt.Errorf("panorama %s: %w", v.id, err)
	}

	images, err := decodeFaces(ctx, ordered, v.opts.maxFaceSize)
	if err != nil {
		return fmt.Errorf("panorama %s: %w", v.id, err)
	}

	var materials [6]*render.FaceMaterial
	release := func() {
		for _, m := range materials {
			if m != nil {
				m.Dispose()
			}
		}
	}
	for i, img := range images {
		tex, err := v.device.CreateTexture(img, v.id+"/"+FaceOrder[i].String())
		if err != nil {
			release()
			return fmt.Errorf("panorama %s: %w", v.id, err)
		}
		materials[i] = render.NewFaceMaterial(tex)
	}

	shader, err := v.device.PanoramaShader()
	if err != nil {
		release()
		return fmt.Errorf("panorama %s: %w", v.id, err)
	}

	mesh := newCubeMesh(materials, shader, v.world)

	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.res.(loaded); ok {
		// Lost a race with another LoadImages.
		mesh.dispose()
		return nil
	}
	mesh.apply(v.state)
	v.res = loaded{mesh: mesh}
	if v.scene != nil {
		v.scene.AddCustomObject(mesh)
	}
	v.opts.logger.Debug("panorama: loaded", "id", v.id, "faceSize", images[0].Bounds().Dx())
	return nil
}

// UnloadImages removes the mesh from the scene and releases its textures,
// materials and geometry. It does nothing when unloaded.
func (v *Visualization) UnloadImages() {
	v.mu.Lock()
	defer v.mu.Unlock()

	l, ok := v.res.(loaded)
	if !ok {
		return
	}
	if v.scene != nil {
		v.scene.RemoveCustomObject(l.mesh)
	}
	l.mesh.dispose()
	v.res = unloaded{}
	v.opts.logger.Debug("panorama: unloaded", "id", v.id)
}

// Loaded reports whether the mesh is resident.
func (v *Visualization) Loaded() bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.res.(loaded)
	return ok
}

// Mesh returns the resident mesh, or nil when unloaded.
func (v *Visualization) Mesh() *CubeMesh {
	v.mu.Lock()
	defer v.mu.Unlock()
	if l, ok := v.res.(loaded); ok {
		return l.mesh
	}
	return nil
}

// State returns a copy of the visual state.
func (v *Visualization) State() VisualState {
	v.mu.Lock()
	defer v.mu.Unlock()
	return v.state
}

// update mutates the state and applies it to the live mesh.
func (v *Visualization) update(fn func(*VisualState)) {
	v.mu.Lock()
	defer v.mu.Unlock()
	fn(&v.state)
	if l, ok := v.res.(loaded); ok {
		l.mesh.apply(v.state)
	}
}

// SetOpacity sets the opacity, clamped to [0, 1].
func (v *Visualization) SetOpacity(o float32) {
	v.update(func(s *VisualState) { s.Opacity = clampOpacity(o) })
}

// Opacity returns the opacity.
func (v *Visualization) Opacity() float32 {
	return v.State().Opacity
}

// SetVisible shows or hides the panorama.
func (v *Visualization) SetVisible(visible bool) {
	v.update(func(s *VisualState) { s.Visible = visible })
}

// Visible reports whether the panorama is shown.
func (v *Visualization) Visible() bool {
	return v.State().Visible
}

// SetScale sets the per-axis scale applied after the world transform.
func (v *Visualization) SetScale(scale mgl32.Vec3) {
	v.update(func(s *VisualState) { s.Scale = scale })
}

// Scale returns the scale.
func (v *Visualization) Scale() mgl32.Vec3 {
	return v.State().Scale
}

// SetRenderOrder sets the draw order.
func (v *Visualization) SetRenderOrder(order int) {
	v.update(func(s *VisualState) { s.RenderOrder = order })
}

// RenderOrder returns the draw order.
func (v *Visualization) RenderOrder() int {
	return v.State().RenderOrder
}

// orderFaces locates each face of FaceOrder by tag.
func orderFaces(faces []Face) ([6]Face, error) {
	var out [6]Face
	for i, tag := range FaceOrder {
		found := false
		for _, f := range faces {
			if f.Tag == tag {
				out[i] = f
				found = true
				break
			}
		}
		if !found {
			return out, fmt.Errorf("%w: %s", ErrMissingFace, tag)
		}
	}
	return out, nil
}
