// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package local

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"slices"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/text/unicode/norm"
	"gopkg.in/yaml.v3"

	"github.com/gogpu/pano/panorama"
)

// ErrInvalidManifest is returned for manifests that cannot describe a
// panorama set.
var ErrInvalidManifest = errors.New("local: invalid manifest")

// Manifest is the on-disk description of a panorama set.
//
//	collections:
//	  - id: site-1
//	    panoramas:
//	      - id: lobby
//	        label: Lobby
//	        translation: [1, 0, 2]
//	        rotation: {axis: [0, 1, 0], angle: 1.5708}
//	        faces:
//	          left: lobby/left.jpg
//	          right: lobby/right.jpg
//	          ...
//
// Face paths are relative to the manifest directory.
type Manifest struct {
	Collections []CollectionEntry `yaml:"collections"`
}

// CollectionEntry groups the panoramas of one collection.
type CollectionEntry struct {
	ID        string          `yaml:"id"`
	Panoramas []PanoramaEntry `yaml:"panoramas"`
}

// PanoramaEntry describes one panorama.
type PanoramaEntry struct {
	ID          string            `yaml:"id"`
	Label       string            `yaml:"label"`
	Translation []float32         `yaml:"translation"`
	Rotation    RotationEntry     `yaml:"rotation"`
	Faces       map[string]string `yaml:"faces"`
}

// RotationEntry is an axis-angle rotation, angle in radians.
type RotationEntry struct {
	Axis  []float32 `yaml:"axis"`
	Angle float32   `yaml:"angle"`
}

// ParseManifest decodes a YAML manifest.
func ParseManifest(r io.Reader) (*Manifest, error) {
	var m Manifest
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&m); err != nil {
		if errors.Is(err, io.EOF) {
			return &m, nil
		}
		return nil, fmt.Errorf("local: parse manifest: %w", err)
	}
	return &m, nil
}

// Descriptors converts the manifest to descriptors in manifest order.
// Ids are normalized to NFC so that visually identical ids compare equal.
func (m *Manifest) Descriptors() ([]*panorama.Descriptor, error) {
	var out []*panorama.Descriptor
	seen := make(map[string]bool)
	for _, c := range m.Collections {
		collection := norm.NFC.String(c.ID)
		for _, p := range c.Panoramas {
			d, err := p.descriptor(collection)
			if err != nil {
				return nil, err
			}
			if seen[d.ID] {
				return nil, fmt.Errorf("%w: duplicate panorama id %q", ErrInvalidManifest, d.ID)
			}
			seen[d.ID] = true
			out = append(out, d)
		}
	}
	return out, nil
}

func (p PanoramaEntry) descriptor(collection string) (*panorama.Descriptor, error) {
	id := norm.NFC.String(p.ID)
	if id == "" {
		return nil, fmt.Errorf("%w: panorama without id in collection %q", ErrInvalidManifest, collection)
	}
	translation, err := vec3(p.Translation)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: translation: %v", ErrInvalidManifest, id, err)
	}
	axis, err := vec3(p.Rotation.Axis)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: rotation axis: %v", ErrInvalidManifest, id, err)
	}

	faces := make([]panorama.FaceRef, 0, len(p.Faces))
	for name, path := range p.Faces {
		tag, err := panorama.ParseFaceTag(name)
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %v", ErrInvalidManifest, id, err)
		}
		if !filepath.IsLocal(filepath.FromSlash(path)) {
			return nil, fmt.Errorf("%w: %s: face path %q leaves the manifest directory", ErrInvalidManifest, id, path)
		}
		faces = append(faces, panorama.FaceRef{Tag: tag, URI: path})
	}
	slices.SortFunc(faces, func(a, b panorama.FaceRef) int { return int(a.Tag) - int(b.Tag) })

	label := p.Label
	if label == "" {
		label = id
	}
	return &panorama.Descriptor{
		ID:           id,
		Label:        label,
		CollectionID: collection,
		Translation:  translation,
		Rotation:     panorama.Rotation{Axis: axis, Angle: p.Rotation.Angle},
		Faces:        faces,
	}, nil
}

// vec3 accepts an empty list as the zero vector.
func vec3(v []float32) (mgl32.Vec3, error) {
	switch len(v) {
	case 0:
		return mgl32.Vec3{}, nil
	case 3:
		return mgl32.Vec3{v[0], v[1], v[2]}, nil
	}
	return mgl32.Vec3{}, fmt.Errorf("want 3 components, got %d", len(v))
}
