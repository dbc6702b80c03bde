package merkletree

// Selector is a set of selected paths.
type Selector interface {
	// Contains reports whether path is selected.
	Contains(path string) bool
	// HasDescendant reports whether a selected path lies strictly
	// below path.
	HasDescendant(path string) bool
}

// Disclose returns a copy of n in which every child that is neither
// selected nor on the way to a selection is replaced by its commitment.
// An exactly selected child stays revealed with its whole subtree,
// unless deeper selections exist below it, in which case its own
// children are disclosed in turn. The root is never redacted and no
// commitment changes. The returned tree shares no memory with n.
func Disclose(n *Node, sel Selector) *Node {
	b, ok := n.Branch()
	if !ok {
		return n.Clone()
	}
	return &Node{Proof: n.Proof, Body: discloseBranch(b, "", sel)}
}

func discloseBranch(b *Branch, prefix string, sel Selector) *Branch {
	out := &Branch{Children: make(map[string]Child, len(b.Children))}
	for label, child := range b.Children {
		node, revealed := child.(*Node)
		if !revealed {
			out.Children[label] = child
			continue
		}
		path := prefix + label + "/"
		exact, deeper := sel.Contains(path), sel.HasDescendant(path)
		br, isBranch := node.Branch()
		switch {
		case deeper && isBranch:
			out.Children[label] = &Node{Proof: node.Proof, Body: discloseBranch(br, path, sel)}
		case exact:
			out.Children[label] = node.Clone()
		default:
			out.Children[label] = Redacted(node.Proof)
		}
	}
	return out
}
