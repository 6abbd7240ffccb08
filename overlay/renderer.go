// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

import (
	"log/slog"
	"sync"

	"github.com/go-gl/mathgl/mgl32"
)

// Renderer keeps one badge node per visible cluster and recycles nodes
// through a bounded pool.
//
// Renderer is safe for concurrent use. The pool and the active map belong
// to one renderer and are never shared.
type Renderer[H comparable] struct {
	opts   Options
	logger *slog.Logger

	mu        sync.Mutex
	layer     *Layer
	parent    Container // nil until attached
	active    map[H]*Node
	releasing map[*Node]Timer
	pool      nodePool

	hovered    H
	hasHovered bool

	nextID    uint64
	created   uint64
	discarded uint64
	disposed  bool
}

// NewRenderer creates a renderer. The layer is attached on the first
// UpdateClusters.
func NewRenderer[H comparable](opts ...Option) *Renderer[H] {
	o := DefaultOptions()
	for _, opt := range opts {
		opt(&o)
	}
	o.normalize()
	return &Renderer[H]{
		opts:      o,
		logger:    o.Logger,
		layer:     newLayer(),
		active:    make(map[H]*Node),
		releasing: make(map[*Node]Timer),
		pool:      nodePool{max: o.MaxPoolSize},
	}
}

// Layer returns the layer element holding the nodes.
func (r *Renderer[H]) Layer() *Layer {
	return r.layer
}

// Attached reports whether the layer has been inserted into a container.
func (r *Renderer[H]) Attached() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.parent != nil
}

// UpdateClusters draws the clusters of one frame. Records with IsCluster
// false are skipped. Nodes of clusters missing from this frame are
// released.
func (r *Renderer[H]) UpdateClusters(clusters []Cluster[H], frame Frame) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return
	}
	if frame.Surface == nil || frame.Camera == nil {
		r.logger.Debug("overlay: frame without surface or camera")
		return
	}
	r.attachLocked(frame.Surface)

	width, height := frame.Surface.Size()
	view := frame.Camera.View()
	viewProj := frame.Camera.Projection().Mul4(view)
	eye := view.Inv().Col(3).Vec3()

	seen := make(map[H]struct{}, len(clusters))
	for i := range clusters {
		c := &clusters[i]
		if !c.IsCluster {
			continue
		}
		if _, dup := seen[c.Icon]; dup {
			continue
		}
		seen[c.Icon] = struct{}{}

		n := r.bindLocked(c.Icon)
		world := frame.Model.Mul4x1(c.Position.Vec4(1))
		r.placeLocked(n, c, world, viewProj, eye, float32(width), float32(height))
	}

	for h, n := range r.active {
		if _, ok := seen[h]; !ok {
			delete(r.active, h)
			r.releaseLocked(n)
		}
	}
}

// placeLocked projects one cluster and positions, sizes and labels n, or
// hides it when it is behind the camera, past the far plane, or entirely
// off-screen.
func (r *Renderer[H]) placeLocked(n *Node, c *Cluster[H], world mgl32.Vec4, viewProj mgl32.Mat4, eye mgl32.Vec3, width, height float32) {
	clip := viewProj.Mul4x1(world)
	if clip.W() <= 0 {
		n.hidden = true
		return
	}
	ndc := clip.Vec3().Mul(1 / clip.W())
	if ndc.Z() > 1 {
		n.hidden = true
		return
	}

	scale := c.SizeScale
	if scale <= 0 {
		scale = 1
	}
	dist := max(world.Vec3().Sub(eye).Len(), 1)
	size := mgl32.Clamp(r.opts.BaseSize*scale/dist, r.opts.MinSize, r.opts.MaxSize)

	x := (ndc.X() + 1) / 2 * width
	y := (1 - ndc.Y()) / 2 * height
	half := size / 2
	if x+half < 0 || x-half > width || y+half < 0 || y-half > height {
		n.hidden = true
		return
	}

	n.hidden = false
	n.x, n.y = x, y
	n.size = size
	n.setLabel(FormatCount(c.Size))
}

// bindLocked returns the node bound to h, binding a pooled or new node if
// there is none.
func (r *Renderer[H]) bindLocked(h H) *Node {
	if n, ok := r.active[h]; ok {
		return n
	}
	n := r.pool.pop()
	if n == nil {
		r.nextID++
		r.created++
		n = &Node{id: r.nextID}
	}
	n.activate()
	n.hovered = r.hasHovered && r.hovered == h
	r.active[h] = n
	r.layer.add(n)
	return n
}

// releaseLocked starts the fade-out of n and schedules its removal.
func (r *Renderer[H]) releaseLocked(n *Node) {
	n.state = StateReleasing
	n.opacity = 0
	n.hovered = false
	r.releasing[n] = r.opts.Scheduler.AfterFunc(r.opts.ReleaseDelay, func() {
		r.finishRelease(n)
	})
}

// finishRelease removes n from the layer and pools or discards it.
func (r *Renderer[H]) finishRelease(n *Node) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.releasing[n]; !ok {
		return
	}
	delete(r.releasing, n)
	r.layer.remove(n)
	if !r.pool.push(n) {
		n.state = StateDiscarded
		r.discarded++
		r.logger.Debug("overlay: pool full, node discarded", "node", n.id)
	}
}

// attachLocked inserts the layer into the surface's parent once. A
// surface without a parent defers attachment to a later frame.
func (r *Renderer[H]) attachLocked(s Surface) {
	if r.parent != nil {
		return
	}
	parent := s.Parent()
	if parent == nil {
		r.logger.Debug("overlay: surface has no parent, attach deferred")
		return
	}
	if parent.Positioning() == PositionStatic {
		parent.SetPositioning(PositionRelative)
	}
	parent.Prepend(r.layer)
	r.parent = parent
}

// SetHoveredCluster highlights the node of h, clearing the previous
// highlight. h need not be bound; the highlight then applies once a node
// is bound to it.
func (r *Renderer[H]) SetHoveredCluster(h H) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.setHoverLocked(h, true)
}

// ClearHoveredCluster removes the highlight.
func (r *Renderer[H]) ClearHoveredCluster() {
	r.mu.Lock()
	defer r.mu.Unlock()
	var zero H
	r.setHoverLocked(zero, false)
}

func (r *Renderer[H]) setHoverLocked(h H, ok bool) {
	if r.hasHovered {
		if n, bound := r.active[r.hovered]; bound {
			n.hovered = false
		}
	}
	r.hovered, r.hasHovered = h, ok
	if !ok {
		return
	}
	if n, bound := r.active[h]; bound {
		n.hovered = true
	} else {
		r.logger.Debug("overlay: hovered cluster has no node")
	}
}

// Hovered returns the hovered handle.
func (r *Renderer[H]) Hovered() (H, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.hovered, r.hasHovered
}

// SetVisible shows or hides the whole layer. Pooling is unaffected.
func (r *Renderer[H]) SetVisible(visible bool) {
	r.layer.setVisible(visible)
}

// Node returns the node bound to h.
func (r *Renderer[H]) Node(h H) (*Node, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	n, ok := r.active[h]
	return n, ok
}

// Dispose cancels pending releases, discards every node and detaches the
// layer. The renderer ignores later updates.
func (r *Renderer[H]) Dispose() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.disposed {
		return
	}
	r.disposed = true

	for n, t := range r.releasing {
		t.Stop()
		n.state = StateDiscarded
	}
	clear(r.releasing)
	for _, n := range r.active {
		n.state = StateDiscarded
	}
	clear(r.active)
	for _, n := range r.pool.drain() {
		n.state = StateDiscarded
	}
	r.layer.clear()

	if r.parent != nil {
		r.parent.Remove(r.layer)
		r.parent = nil
	}
	r.logger.Debug("overlay: renderer disposed", "created", r.created)
}

// Stats describes the node population.
type Stats struct {
	Active    int
	Releasing int
	Pooled    int
	Created   uint64
	Discarded uint64
}

// Stats returns the current node counts.
func (r *Renderer[H]) Stats() Stats {
	r.mu.Lock()
	defer r.mu.Unlock()
	return Stats{
		Active:    len(r.active),
		Releasing: len(r.releasing),
		Pooled:    r.pool.len(),
		Created:   r.created,
		Discarded: r.discarded,
	}
}

// Snapshot is a copy of the layer for drawing.
type Snapshot struct {
	Visible bool
	Nodes   []NodeView
}

// Snapshot copies the nodes in the layer, including those fading out.
func (r *Renderer[H]) Snapshot() Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	nodes := r.layer.Nodes()
	s := Snapshot{Visible: r.layer.Visible(), Nodes: make([]NodeView, len(nodes))}
	for i, n := range nodes {
		s.Nodes[i] = n.view()
	}
	return s
}
