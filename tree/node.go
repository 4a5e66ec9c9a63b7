/*
Package tree implements a generic tree of mutable nodes.

Each node carries a payload of type parameter T and an ordered list of
children. Children are kept compact: removing a child shifts its later
siblings, so the position of a child always equals its index among
siblings.

Trees are not safe for concurrent mutation. Styling runs on the thread
owning the tree.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2026 Norbert Pillmayer <norbert@pillmayer.com>

*/
package tree

import "fmt"

// Node is the base type our tree is built of.
type Node[T comparable] struct {
	Payload  T // nodes may carry a payload of arbitrary type
	parent   *Node[T]
	children []*Node[T]
}

// NewNode creates a new tree node with a given payload.
func NewNode[T comparable](payload T) *Node[T] {
	return &Node[T]{Payload: payload}
}

func (node *Node[T]) String() string {
	return fmt.Sprintf("(Node #ch=%d %v)", len(node.children), node.Payload)
}

// AddChild appends ch, detaching it from a previous parent first.
// It returns node to allow for chaining.
func (node *Node[T]) AddChild(ch *Node[T]) *Node[T] {
	return node.InsertChildAt(-1, ch)
}

// InsertChildAt inserts ch at position i, shifting later children.
// Negative positions or positions beyond the end append.
// It returns node to allow for chaining.
func (node *Node[T]) InsertChildAt(i int, ch *Node[T]) *Node[T] {
	if ch == nil {
		return node
	}
	ch.Isolate()
	n := len(node.children)
	if i < 0 || i >= n {
		node.children = append(node.children, ch)
	} else {
		node.children = append(node.children, nil)
		copy(node.children[i+1:], node.children[i:])
		node.children[i] = ch
	}
	ch.parent = node
	return node
}

// Isolate detaches node from its parent and returns it.
func (node *Node[T]) Isolate() *Node[T] {
	if node == nil || node.parent == nil {
		return node
	}
	p := node.parent
	if i := p.IndexOfChild(node); i >= 0 {
		last := len(p.children) - 1
		copy(p.children[i:], p.children[i+1:])
		p.children[last] = nil
		p.children = p.children[:last]
	}
	node.parent = nil
	return node
}

// Parent returns the parent node, or nil for the root of a tree.
func (node *Node[T]) Parent() *Node[T] {
	return node.parent
}

// ChildCount returns the number of children of node.
func (node *Node[T]) ChildCount() int {
	return len(node.children)
}

// Child returns the child at position n, if any.
func (node *Node[T]) Child(n int) (*Node[T], bool) {
	if n < 0 || n >= len(node.children) {
		return nil, false
	}
	return node.children[n], true
}

// Children returns a copy of the list of children of node.
// Callers may mutate the tree while iterating over it.
func (node *Node[T]) Children() []*Node[T] {
	return append([]*Node[T](nil), node.children...)
}

// IndexOfChild returns the position of ch among the children of node, or -1.
func (node *Node[T]) IndexOfChild(ch *Node[T]) int {
	for i, c := range node.children {
		if c == ch {
			return i
		}
	}
	return -1
}

// Walk visits node and its descendants in pre-order. The children of a
// node are skipped if visit returns false for it.
func (node *Node[T]) Walk(visit func(*Node[T]) bool) {
	if !visit(node) {
		return
	}
	for _, ch := range node.Children() {
		ch.Walk(visit)
	}
}
