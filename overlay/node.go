// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

import "fmt"

// NodeState is the lifecycle state of a Node.
type NodeState uint8

const (
	// StateActive means the node is bound to a cluster and shown.
	StateActive NodeState = iota
	// StateReleasing means the node is fading out and not yet reusable.
	StateReleasing
	// StatePooled means the node is detached and available for reuse.
	StatePooled
	// StateDiscarded means the node was dropped and will not be reused.
	StateDiscarded
)

// String returns the state name.
func (s NodeState) String() string {
	switch s {
	case StateActive:
		return "active"
	case StateReleasing:
		return "releasing"
	case StatePooled:
		return "pooled"
	case StateDiscarded:
		return "discarded"
	default:
		return fmt.Sprintf("NodeState(%d)", s)
	}
}

// Node is one badge. Nodes are owned by a Renderer; their accessors are
// meant for tests and for hosts that read the layer between updates.
// Use Renderer.Snapshot for concurrent reads.
type Node struct {
	id    uint64
	state NodeState

	x, y    float32 // center, surface pixels, origin top-left
	size    float32
	label   string
	hidden  bool
	hovered bool
	opacity float32

	labelWrites int
}

// ID returns the node serial number, unique per renderer.
func (n *Node) ID() uint64 { return n.id }

// State returns the lifecycle state.
func (n *Node) State() NodeState { return n.state }

// Position returns the badge center in surface pixels.
func (n *Node) Position() (x, y float32) { return n.x, n.y }

// Size returns the badge diameter in pixels.
func (n *Node) Size() float32 { return n.size }

// Label returns the displayed count.
func (n *Node) Label() string { return n.label }

// LabelWrites returns how many times the label text was changed.
func (n *Node) LabelWrites() int { return n.labelWrites }

// Hidden reports whether display is suppressed for this frame.
func (n *Node) Hidden() bool { return n.hidden }

// Hovered reports whether the hover highlight is applied.
func (n *Node) Hovered() bool { return n.hovered }

// Opacity is 1 while active and 0 while fading out.
func (n *Node) Opacity() float32 { return n.opacity }

// setLabel writes s only when it differs from the current label.
func (n *Node) setLabel(s string) {
	if n.label == s {
		return
	}
	n.label = s
	n.labelWrites++
}

// activate prepares a new or pooled node for a cluster.
func (n *Node) activate() {
	n.state = StateActive
	n.opacity = 1
	n.hidden = false
	n.hovered = false
}

// NodeView is a copy of a node's presentation for drawing.
type NodeView struct {
	ID      uint64
	State   NodeState
	X, Y    float32
	Size    float32
	Label   string
	Hidden  bool
	Hovered bool
	Opacity float32
}

func (n *Node) view() NodeView {
	return NodeView{
		ID:      n.id,
		State:   n.state,
		X:       n.x,
		Y:       n.y,
		Size:    n.size,
		Label:   n.label,
		Hidden:  n.hidden,
		Hovered: n.hovered,
		Opacity: n.opacity,
	}
}
