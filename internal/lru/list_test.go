package lru

import (
	"slices"
	"testing"
)

func TestListPushFrontOrder(t *testing.T) {
	l := New[string]()
	l.PushFront("a")
	l.PushFront("b")
	l.PushFront("c")

	if l.Len() != 3 {
		t.Fatalf("expected 3 nodes, got %d", l.Len())
	}
	if got := l.Values(); !slices.Equal(got, []string{"c", "b", "a"}) {
		t.Errorf("Values() = %v, want [c b a]", got)
	}
	if l.Front().Value != "c" || l.Back().Value != "a" {
		t.Errorf("front/back = %q/%q, want c/a", l.Front().Value, l.Back().Value)
	}
}

func TestListRemove(t *testing.T) {
	l := New[int]()
	a := l.PushFront(1)
	b := l.PushFront(2)
	c := l.PushFront(3)

	l.Remove(b)
	if got := l.Values(); !slices.Equal(got, []int{3, 1}) {
		t.Errorf("after removing middle: %v", got)
	}
	l.Remove(b)
	if l.Len() != 2 {
		t.Errorf("double remove changed length to %d", l.Len())
	}

	l.Remove(c)
	l.Remove(a)
	if l.Len() != 0 || l.Front() != nil || l.Back() != nil {
		t.Errorf("expected empty list, len=%d", l.Len())
	}
}

func TestListRemoveForeignNode(t *testing.T) {
	l1 := New[int]()
	l2 := New[int]()
	n := l1.PushFront(1)
	l2.PushFront(2)

	l2.Remove(n)
	if l1.Len() != 1 || l2.Len() != 1 {
		t.Errorf("foreign node touched lists: l1=%d l2=%d", l1.Len(), l2.Len())
	}
}

func TestListWalkBackToFront(t *testing.T) {
	l := New[int]()
	for i := 1; i <= 4; i++ {
		l.PushFront(i)
	}

	var got []int
	for n := l.Back(); n != nil; n = n.Prev() {
		got = append(got, n.Value)
	}
	if !slices.Equal(got, []int{1, 2, 3, 4}) {
		t.Errorf("back-to-front walk = %v, want [1 2 3 4]", got)
	}
}

func TestListClear(t *testing.T) {
	l := New[int]()
	n := l.PushFront(1)
	l.PushFront(2)
	l.Clear()

	if l.Len() != 0 || l.Front() != nil {
		t.Errorf("Clear left %d nodes", l.Len())
	}
	if n.Next() != nil || n.Prev() != nil {
		t.Error("Clear should unlink nodes")
	}
	l.Remove(n)
	if l.Len() != 0 {
		t.Errorf("removing cleared node changed length to %d", l.Len())
	}
}

func BenchmarkListPushRemove(b *testing.B) {
	l := New[int]()
	for i := range 64 {
		l.PushFront(i)
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		l.Remove(l.Back())
		l.PushFront(i)
	}
}
