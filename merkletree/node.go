package merkletree

import (
	"sort"
)

// Node is a revealed node of a commitment tree. Proof is the node's
// commitment. Body is either a *ValueCommitment (a leaf) or a *Branch.
type Node struct {
	Proof string
	Body  Body
}

// Body is the content of a revealed node.
type Body interface {
	isBody()
}

// Branch maps child labels to children.
type Branch struct {
	Children map[string]Child
}

// Child is a branch entry: either Redacted or a revealed *Node.
type Child interface {
	// ChildProof returns the commitment the child contributes to
	// its parent. It is the same whether the child is revealed or not.
	ChildProof() string
}

// Redacted is a child of which only the commitment is retained.
type Redacted string

var _ Body = (*ValueCommitment)(nil)
var _ Body = (*Branch)(nil)
var _ Child = Redacted("")
var _ Child = (*Node)(nil)

// ChildProof implements Child.
func (r Redacted) ChildProof() string { return string(r) }

// ChildProof implements Child.
func (n *Node) ChildProof() string { return n.Proof }

func (b *Branch) isBody() {}

// Labels returns the labels of b in canonical order.
func (b *Branch) Labels() []string {
	labels := make([]string, 0, len(b.Children))
	for l := range b.Children {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// Leaf returns the value commitment of n if n is a leaf.
func (n *Node) Leaf() (*ValueCommitment, bool) {
	c, ok := n.Body.(*ValueCommitment)
	return c, ok
}

// Branch returns the branch of n if n is a branch.
func (n *Node) Branch() (*Branch, bool) {
	b, ok := n.Body.(*Branch)
	return b, ok
}

// Lookup follows labels from n and returns the child found at the
// end of the path, or nil if a label is missing or a redacted child
// is crossed before the last label.
func (n *Node) Lookup(labels ...string) Child {
	var cur Child = n
	for _, l := range labels {
		node, ok := cur.(*Node)
		if !ok {
			return nil
		}
		b, ok := node.Branch()
		if !ok {
			return nil
		}
		if cur, ok = b.Children[l]; !ok {
			return nil
		}
	}
	return cur
}

// Clone returns a deep copy of n.
func (n *Node) Clone() *Node {
	switch body := n.Body.(type) {
	case *ValueCommitment:
		c := *body
		return &Node{Proof: n.Proof, Body: &c}
	case *Branch:
		return &Node{Proof: n.Proof, Body: body.clone()}
	}
	return &Node{Proof: n.Proof}
}

func (b *Branch) clone() *Branch {
	children := make(map[string]Child, len(b.Children))
	for l, c := range b.Children {
		switch c := c.(type) {
		case *Node:
			children[l] = c.Clone()
		default:
			children[l] = c
		}
	}
	return &Branch{Children: children}
}
