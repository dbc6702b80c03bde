package merkletree

// BranchBuilder assembles an Object claim programmatically.
//
//	claim := NewBranch().
//		AddNode("personal", NewBranch().
//			AddValue("name", String("Adem")).
//			AddValue("age", Int(5))).
//		Claim()
type BranchBuilder struct {
	claim Object
}

// NewBranch returns an empty BranchBuilder.
func NewBranch() *BranchBuilder {
	return &BranchBuilder{claim: make(Object)}
}

// AddValue sets label to the scalar v.
func (b *BranchBuilder) AddValue(label string, v Value) *BranchBuilder {
	b.claim[label] = Scalar{Value: v}
	return b
}

// AddNode sets label to the branch assembled by child.
func (b *BranchBuilder) AddNode(label string, child *BranchBuilder) *BranchBuilder {
	b.claim[label] = child.Claim()
	return b
}

// Claim returns a copy of the assembled claim.
func (b *BranchBuilder) Claim() Object {
	obj := make(Object, len(b.claim))
	for l, c := range b.claim {
		obj[l] = c
	}
	return obj
}

// Build builds the assembled claim with bl.
func (b *BranchBuilder) Build(bl *Builder) (*Node, error) {
	return bl.Build(b.Claim())
}
