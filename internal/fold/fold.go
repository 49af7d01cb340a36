// Package fold tracks the expand/collapse state of a document view.
//
// Every object or array shown in the view owns one Node. Nodes form a tree
// that mirrors the nesting of the view, which lets a single key press expand
// or collapse the whole document by one level at a time: Expand widens the
// shallowest visible frontier, Collapse narrows the deepest one.
package fold

import "slices"

// Node is the fold state of one expandable view element.
//
// A node owns its children. The parent link is only used for lookups and is
// cleared when the parent releases the node, so it never outlives the
// relationship it describes.
type Node struct {
	// Expanded reports whether the element's children are shown.
	Expanded bool

	parent   *Node
	children []*Node
}

// Root creates an unparented, collapsed node.
func Root() *Node {
	return &Node{}
}

// Child creates a collapsed node owned by n.
// The caller keeps the returned node for as long as the view element it
// governs exists and calls Release when that element is discarded.
func (n *Node) Child() *Node {
	c := &Node{parent: n}
	n.children = append(n.children, c)
	return c
}

// Parent returns the owning node, or nil for a root or a released node.
func (n *Node) Parent() *Node {
	return n.parent
}

// Children returns a copy of the owned children in creation order.
func (n *Node) Children() []*Node {
	out := make([]*Node, len(n.children))
	copy(out, n.children)
	return out
}

// Release detaches n from its parent and clears the parent link of each
// direct child. Grandchildren keep pointing at their own parents.
func (n *Node) Release() {
	if p := n.parent; p != nil {
		for i, c := range p.children {
			if c == n {
				p.children = slices.Delete(p.children, i, i+1)
				break
			}
		}
		n.parent = nil
	}
	for _, c := range n.children {
		c.parent = nil
	}
}

// MinLevel is the depth of the shallowest visible frontier below n:
// 0 when n is collapsed, 1 when n is expanded and has no children.
func (n *Node) MinLevel() int {
	if !n.Expanded {
		return 0
	}
	if len(n.children) == 0 {
		return 1
	}
	level := -1
	for _, c := range n.children {
		if l := 1 + c.MinLevel(); level < 0 || l < level {
			level = l
		}
	}
	return level
}

// MaxLevel is the depth of the deepest visible frontier below n.
func (n *Node) MaxLevel() int {
	if !n.Expanded {
		return 0
	}
	level := 1
	for _, c := range n.children {
		level = max(level, 1+c.MaxLevel())
	}
	return level
}

// Expand opens one more level of the shallowest visible frontier below n.
// Every node less than MinLevel()+1 levels below n ends up expanded; deeper
// nodes keep their state. It reports whether MinLevel changed.
func (n *Node) Expand() bool {
	before := n.MinLevel()
	n.expand(before + 1)
	return n.MinLevel() != before
}

func (n *Node) expand(budget int) {
	if budget <= 0 {
		return
	}
	n.Expanded = true
	budget--
	for _, c := range n.children {
		c.expand(budget)
	}
}

// Collapse closes the deepest visible frontier below n by one level and
// reports whether MaxLevel changed. Shallower branches keep their state.
func (n *Node) Collapse() bool {
	before := n.MaxLevel()
	n.collapse(before - 1)
	return n.MaxLevel() != before
}

// collapse keeps descending past untouched nodes: the frontier sits at the
// same depth in every branch, not at the first expanded node found.
func (n *Node) collapse(budget int) {
	if budget <= 0 {
		n.Expanded = false
	}
	budget--
	for _, c := range n.children {
		c.collapse(budget)
	}
}
