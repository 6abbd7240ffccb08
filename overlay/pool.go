// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package overlay

// nodePool is a bounded LIFO store of detached nodes.
type nodePool struct {
	nodes []*Node
	max   int
}

// pop returns the most recently pushed node, or nil.
func (p *nodePool) pop() *Node {
	if len(p.nodes) == 0 {
		return nil
	}
	last := len(p.nodes) - 1
	n := p.nodes[last]
	p.nodes[last] = nil
	p.nodes = p.nodes[:last]
	return n
}

// push stores n and reports whether there was room.
func (p *nodePool) push(n *Node) bool {
	if len(p.nodes) >= p.max {
		return false
	}
	n.state = StatePooled
	p.nodes = append(p.nodes, n)
	return true
}

func (p *nodePool) len() int {
	return len(p.nodes)
}

// drain empties the pool and returns its nodes.
func (p *nodePool) drain() []*Node {
	nodes := p.nodes
	p.nodes = nil
	return nodes
}
