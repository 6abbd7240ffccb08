// Package lru provides the recency list used by pano's caches.
package lru

// Node is a node in a doubly-linked recency list.
// The node stores the value so owners can unlink it in O(1) from a map.
type Node[T any] struct {
	Value T
	prev  *Node[T]
	next  *Node[T]
	list  *List[T]
}

// Prev returns the next more recently used node, or nil at the front.
func (n *Node[T]) Prev() *Node[T] {
	return n.prev
}

// Next returns the next less recently used node, or nil at the back.
func (n *Node[T]) Next() *Node[T] {
	return n.next
}

// List is a doubly-linked list ordered by recency.
// The list is not thread-safe; callers must handle synchronization.
//
// The head is the most recently used, tail is least recently used.
type List[T any] struct {
	head *Node[T]
	tail *Node[T]
	len  int
}

// New creates an empty recency list.
func New[T any]() *List[T] {
	return &List[T]{}
}

// Len returns the number of nodes in the list.
func (l *List[T]) Len() int {
	return l.len
}

// Front returns the most recently used node, or nil if the list is empty.
func (l *List[T]) Front() *Node[T] {
	return l.head
}

// Back returns the least recently used node, or nil if the list is empty.
func (l *List[T]) Back() *Node[T] {
	return l.tail
}

// PushFront adds a new node at the front (most recently used).
// Returns the created node for later access.
func (l *List[T]) PushFront(v T) *Node[T] {
	node := &Node[T]{Value: v, list: l}
	l.linkFront(node)
	return node
}

// Remove removes a node from the list.
// Removing a node twice, or a node of another list, is a no-op.
func (l *List[T]) Remove(node *Node[T]) {
	if node == nil || node.list != l {
		return
	}
	l.unlink(node)
	node.list = nil
}

// Values returns the values from most to least recently used.
func (l *List[T]) Values() []T {
	out := make([]T, 0, l.len)
	for n := l.head; n != nil; n = n.next {
		out = append(out, n.Value)
	}
	return out
}

// Clear removes all nodes from the list.
func (l *List[T]) Clear() {
	for n := l.head; n != nil; {
		next := n.next
		n.prev, n.next, n.list = nil, nil, nil
		n = next
	}
	l.head = nil
	l.tail = nil
	l.len = 0
}

func (l *List[T]) linkFront(node *Node[T]) {
	node.prev = nil
	node.next = l.head
	if l.head != nil {
		l.head.prev = node
	}
	l.head = node
	if l.tail == nil {
		l.tail = node
	}
	l.len++
}

// unlink removes a node from the list without clearing its list pointer.
func (l *List[T]) unlink(node *Node[T]) {
	if node.prev != nil {
		node.prev.next = node.next
	} else {
		l.head = node.next
	}

	if node.next != nil {
		node.next.prev = node.prev
	} else {
		l.tail = node.prev
	}

	node.prev = nil
	node.next = nil
	l.len--
}
