// Package list implements the capacity-bounded intrusive doubly-linked
// list every cache policy builds its ordering on.
// See doc.go for complete package documentation.
package list

import "errors"

// ErrFull is returned by the push operations when the list is at its
// declared capacity. Capacity overflow is an explicit failure, never a
// silent drop: the owning cache must evict before pushing.
var ErrFull = errors.New("list: at capacity")

// Node is one list element, carrying its value and its linkage in a
// single allocation. A node's address is stable for as long as the
// entry lives in a cache, which is what lets the policy index maps
// store *Node handles directly.
//
// A node is either linked into exactly one list or unlinked. The
// frequency- and priority-bucket policies unlink a node from one bucket
// list and relink the same node into another, so the handle survives
// bucket moves.
type Node[T any] struct {
	// Value is the payload. Mutable in place through the handle.
	Value T

	prev, next *Node[T]
	list       *List[T]
}

// Next returns the node after n in its list, or nil if n is the back
// node or unlinked. Iteration from Front via Next visits the list in
// order without mutating it.
func (n *Node[T]) Next() *Node[T] {
	if n.list == nil || n.next == &n.list.tail {
		return nil
	}
	return n.next
}

// Prev returns the node before n in its list, or nil if n is the front
// node or unlinked.
func (n *Node[T]) Prev() *Node[T] {
	if n.list == nil || n.prev == &n.list.head {
		return nil
	}
	return n.prev
}

// List is an ordered mutable sequence of nodes anchored between head
// and tail sentinels, bounded by a declared capacity.
//
// All mutations are O(1). The list is not synchronized; the owning
// cache either runs single-threaded or holds a shard mutex.
//
// The zero value is not usable; create instances with New.
type List[T any] struct {
	head, tail Node[T] // sentinels, never returned to callers
	length     int
	capacity   int
}

// New returns an empty list that will hold at most capacity nodes.
func New[T any](capacity int) *List[T] {
	l := &List[T]{capacity: capacity}
	l.head.next = &l.tail
	l.tail.prev = &l.head
	l.head.list = l
	l.tail.list = l
	return l
}

// Len returns the number of linked nodes.
func (l *List[T]) Len() int { return l.length }

// Cap returns the declared capacity.
func (l *List[T]) Cap() int { return l.capacity }

// PushFront allocates a node for v, links it after the head sentinel,
// and returns its handle. Fails with ErrFull at capacity.
func (l *List[T]) PushFront(v T) (*Node[T], error) {
	n := &Node[T]{Value: v}
	if err := l.PushFrontNode(n); err != nil {
		return nil, err
	}
	return n, nil
}

// PushBack allocates a node for v, links it before the tail sentinel,
// and returns its handle. Fails with ErrFull at capacity.
func (l *List[T]) PushBack(v T) (*Node[T], error) {
	if l.length >= l.capacity {
		return nil, ErrFull
	}
	n := &Node[T]{Value: v}
	l.insert(n, l.tail.prev)
	return n, nil
}

// PushFrontNode links an existing unlinked node after the head
// sentinel. This is the relink half of a bucket move: Unlink in the old
// bucket, PushFrontNode in the new one, same handle throughout.
// Fails with ErrFull at capacity. The node must not currently be linked
// into any list.
func (l *List[T]) PushFrontNode(n *Node[T]) error {
	if l.length >= l.capacity {
		return ErrFull
	}
	l.insert(n, &l.head)
	return nil
}

// MoveToFront unlinks n and relinks it after the head sentinel.
// Precondition: n is linked in this list. The sole caller of list
// operations is the owning cache, which only passes handles it stored
// for this list, so an alien handle is a bug there, not here.
func (l *List[T]) MoveToFront(n *Node[T]) {
	if l.head.next == n {
		return
	}
	n.prev.next = n.next
	n.next.prev = n.prev
	l.length--
	l.insert(n, &l.head)
}

// Unlink removes n from the list and returns its value. The node keeps
// its value and may be relinked into another list with PushFrontNode.
// Precondition: n is linked in this list.
func (l *List[T]) Unlink(n *Node[T]) T {
	n.prev.next = n.next
	n.next.prev = n.prev
	n.prev, n.next, n.list = nil, nil, nil
	l.length--
	return n.Value
}

// PopBack unlinks and returns the value of the node before the tail
// sentinel, or false if the list is empty.
func (l *List[T]) PopBack() (T, bool) {
	n := l.Back()
	if n == nil {
		var zero T
		return zero, false
	}
	return l.Unlink(n), true
}

// Front returns the front node without unlinking it, or nil if the
// list is empty. No ordering effect.
func (l *List[T]) Front() *Node[T] {
	if l.length == 0 {
		return nil
	}
	return l.head.next
}

// Back returns the back node without unlinking it, or nil if the list
// is empty. No ordering effect.
func (l *List[T]) Back() *Node[T] {
	if l.length == 0 {
		return nil
	}
	return l.tail.prev
}

// Init empties the list, detaching every node. Entries become
// unreachable through the list and are reclaimed once the owning
// cache's index drops its handles.
func (l *List[T]) Init() {
	for n := l.head.next; n != &l.tail; {
		next := n.next
		n.prev, n.next, n.list = nil, nil, nil
		n = next
	}
	l.head.next = &l.tail
	l.tail.prev = &l.head
	l.length = 0
}

// insert links n immediately after at.
func (l *List[T]) insert(n, at *Node[T]) {
	n.prev = at
	n.next = at.next
	at.next.prev = n
	at.next = n
	n.list = l
	l.length++
}
