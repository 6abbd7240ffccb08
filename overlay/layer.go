// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

import (
	"slices"
	"sync"
)

// Positioning is the layout mode of a container.
type Positioning uint8

const (
	// PositionStatic is the default flow layout. Absolute children are not
	// placed relative to a static container.
	PositionStatic Positioning = iota
	// PositionRelative makes the container the origin of its absolute
	// children.
	PositionRelative
	// PositionAbsolute is an absolutely placed container.
	PositionAbsolute
)

// Container is the parent of the render surface in the host layout.
type Container interface {
	// Prepend inserts l as the first child.
	Prepend(l *Layer)
	Remove(l *Layer)
	Positioning() Positioning
	SetPositioning(p Positioning)
}

// Surface is the host's render surface.
type Surface interface {
	// Size returns the surface size in pixels.
	Size() (width, height int)
	// Parent returns the containing element, or nil while detached.
	Parent() Container
}

// Layer is the absolutely placed element holding the badge nodes.
type Layer struct {
	mu      sync.Mutex
	nodes   []*Node
	visible bool
}

func newLayer() *Layer {
	return &Layer{visible: true}
}

// Len returns the number of nodes in the layer.
func (l *Layer) Len() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.nodes)
}

// Nodes returns the nodes in insertion order.
func (l *Layer) Nodes() []*Node {
	l.mu.Lock()
	defer l.mu.Unlock()
	return slices.Clone(l.nodes)
}

// Visible reports whether the layer is shown.
func (l *Layer) Visible() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.visible
}

func (l *Layer) setVisible(v bool) {
	l.mu.Lock()
	l.visible = v
	l.mu.Unlock()
}

func (l *Layer) add(n *Node) {
	l.mu.Lock()
	l.nodes = append(l.nodes, n)
	l.mu.Unlock()
}

func (l *Layer) remove(n *Node) {
	l.mu.Lock()
	defer l.mu.Unlock()
	if i := slices.Index(l.nodes, n); i >= 0 {
		l.nodes = slices.Delete(l.nodes, i, i+1)
	}
}

func (l *Layer) clear() {
	l.mu.Lock()
	l.nodes = nil
	l.mu.Unlock()
}
