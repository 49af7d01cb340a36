// Package widget is a small retained-mode component layer for terminal views.
//
// Components form a tree. Rendering produces a Block of styled spans, each
// tagged with the component that owns it; the Screen turns the spans of the
// last frame into boxes, a focus chain and hit-test targets, and routes
// bubbletea messages to the focused component and its ancestors.
package widget

import (
	"slices"
)

// Component is a node of the widget tree.
type Component interface {
	// Render draws the component and its visible children.
	Render() Block
	// OnEvent handles an event and reports whether it was consumed.
	// Unconsumed events bubble to the parent.
	OnEvent(ev *Event) bool
	// Focusable reports whether the component takes part in the focus chain.
	Focusable() bool

	base() *Base
}

// Base carries the tree links and layout box shared by every component.
// Embed it to implement Component.
type Base struct {
	parent   Component
	children []Component
	box      Box
}

func (b *Base) base() *Base { return b }

// OnEvent does nothing by default.
func (b *Base) OnEvent(*Event) bool { return false }

// Focusable is false by default.
func (b *Base) Focusable() bool { return false }

// Parent returns the structural parent, or nil when detached.
func (b *Base) Parent() Component { return b.parent }

// Children returns the children in display order.
func (b *Base) Children() []Component { return slices.Clone(b.children) }

// Box is the area the component's own spans covered in the last frame.
func (b *Base) Box() Box { return b.box }

// Box is an inclusive rectangle in frame coordinates.
type Box struct {
	X0, Y0, X1, Y1 int
}

// Contains reports whether the cell at x, y lies inside the box.
func (b Box) Contains(x, y int) bool {
	return x >= b.X0 && x <= b.X1 && y >= b.Y0 && y <= b.Y1
}

// Empty reports whether the box covers no cell.
func (b Box) Empty() bool { return b.X1 < b.X0 || b.Y1 < b.Y0 }

func (b Box) union(o Box) Box {
	if b.Empty() {
		return o
	}
	if o.Empty() {
		return b
	}
	return Box{X0: min(b.X0, o.X0), Y0: min(b.Y0, o.Y0), X1: max(b.X1, o.X1), Y1: max(b.Y1, o.Y1)}
}

var emptyBox = Box{X0: 0, Y0: 0, X1: -1, Y1: -1}

// Add appends child to parent, detaching it from any previous parent.
func Add(parent, child Component) {
	Insert(parent, child, len(parent.base().children))
}

// Insert places child at index i of parent's children.
func Insert(parent, child Component, i int) {
	Detach(child)
	pb := parent.base()
	i = max(0, min(i, len(pb.children)))
	pb.children = slices.Insert(pb.children, i, child)
	child.base().parent = parent
}

// Detach removes c from its parent. It returns the index c occupied, or -1
// when c had no parent.
func Detach(c Component) int {
	cb := c.base()
	if cb.parent == nil {
		return -1
	}
	pb := cb.parent.base()
	i := slices.Index(pb.children, c)
	if i >= 0 {
		pb.children = slices.Delete(pb.children, i, i+1)
	}
	cb.parent = nil
	return i
}

// Replace puts next where old was in old's parent. The replacement must be
// fully built before the call; old is detached only once next is ready to
// take its slot. It reports false when old has no parent.
func Replace(old, next Component) bool {
	parent := old.base().parent
	if parent == nil {
		return false
	}
	i := Detach(old)
	Insert(parent, next, i)
	return true
}

// Contains reports whether c is root or one of its descendants.
func Contains(root, c Component) bool {
	for ; c != nil; c = c.base().parent {
		if c == root {
			return true
		}
	}
	return false
}

// Ancestors returns c followed by its parents up to the root.
func Ancestors(c Component) []Component {
	var out []Component
	for ; c != nil; c = c.base().parent {
		out = append(out, c)
	}
	return out
}
