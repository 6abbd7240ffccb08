// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package panorama

import (
	"context"
	"errors"
	"fmt"

	"github.com/go-gl/mathgl/mgl32"

	"github.com/gogpu/pano/render"
)

// ErrNoProvider is returned by Create when the factory has no provider.
var ErrNoProvider = errors.New("panorama: factory has no image provider")

// Factory builds collections of entities from an ImageProvider.
type Factory struct {
	provider ImageProvider
	scene    Scene
	device   *render.Device
	opts     []Option
	cfg      options
}

// NewFactory creates a factory. A nil device selects a software device.
// opts are also passed to every Visualization the factory creates.
func NewFactory(provider ImageProvider, scene Scene, device *render.Device, opts ...Option) *Factory {
	if device == nil {
		device = render.NewSoftwareDevice()
	}
	return &Factory{
		provider: provider,
		scene:    scene,
		device:   device,
		opts:     opts,
		cfg:      buildOptions(opts),
	}
}

// Create fetches the descriptors selected by filter and builds one entity
// per descriptor. Each world transform is computed with WorldTransform.
// Icons are allocated one per descriptor and paired by index; a pair with
// a nil descriptor or a nil icon is dropped. Entities start hidden.
func (f *Factory) Create(ctx context.Context, filter Filter, post mgl32.Mat4, preMultiplied bool) (*Collection, error) {
	if f.provider == nil {
		return nil, ErrNoProvider
	}
	descs, err := f.provider.Descriptors(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("panorama: fetch descriptors: %w", err)
	}

	transforms := make([]mgl32.Mat4, len(descs))
	positions := make([]mgl32.Vec3, len(descs))
	for i, d := range descs {
		if d == nil {
			continue
		}
		transforms[i] = WorldTransform(d, post, preMultiplied)
		positions[i] = Origin(transforms[i])
	}
	icons := f.cfg.icons.AllocateIcons(positions)

	entities := make([]*Entity, 0, len(descs))
	for i, d := range descs {
		if d == nil || i >= len(icons) || icons[i] == nil {
			f.cfg.logger.Debug("panorama: dropped unpaired descriptor", "index", i)
			continue
		}
		// Entities stay hidden, and so evictable, until the caller shows them.
		vis := NewVisualization(d.ID, transforms[i], f.scene, f.device, f.opts...)
		vis.SetVisible(false)
		entities = append(entities, &Entity{
			desc:     d,
			icon:     icons[i],
			vis:      vis,
			provider: f.provider,
		})
	}
	f.cfg.logger.Info("panorama: collection created",
		"collection", filter.CollectionID, "descriptors", len(descs), "entities", len(entities))
	return newCollection(entities), nil
}
