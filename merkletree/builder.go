package merkletree

import (
	"io"
	"runtime"
	"sort"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	"golang.org/x/sync/errgroup"
)

// Builder turns claims into fully revealed commitment trees.
type Builder struct {
	Hasher hasher.CommitmentHasher
	// Rand is the source of salts. Salts are drawn in depth-first
	// order of the sorted labels, so a fixed Rand yields a fixed tree.
	// If nil, crypto/rand is used.
	Rand io.Reader
	// Workers bounds the number of sibling subtrees of a branch hashed
	// concurrently. Values below 2 hash sequentially.
	Workers int
}

// NewBuilder returns a Builder using h, crypto/rand and one worker
// per CPU.
func NewBuilder(h hasher.CommitmentHasher) *Builder {
	return &Builder{
		Hasher:  h,
		Workers: runtime.NumCPU(),
	}
}

// Build constructs the revealed tree of claim and computes every
// commitment. The root claim must be a non-nil Object.
func (b *Builder) Build(claim Claim) (*Node, error) {
	obj, ok := claim.(Object)
	if !ok {
		return nil, errors.Wrapf(ErrClaimShape, "root claim is %T, not an object", claim)
	}
	if obj == nil {
		return nil, errors.Wrap(ErrClaimShape, "missing claim")
	}
	root, err := b.grow(claim, "")
	if err != nil {
		return nil, err
	}
	if err := newProver(b.Hasher, b.Workers, true).seal(root); err != nil {
		return nil, err
	}
	return root, nil
}

// grow builds the tree shape and draws the salts.
func (b *Builder) grow(claim Claim, path string) (*Node, error) {
	switch c := claim.(type) {
	case Scalar:
		vc, err := Commit(b.Rand, c.Value)
		if err != nil {
			return nil, errors.Wrapf(err, "commit %q", path)
		}
		return &Node{Body: vc}, nil
	case Object:
		labels := make([]string, 0, len(c))
		for l := range c {
			if err := CheckLabel(l, path); err != nil {
				return nil, err
			}
			labels = append(labels, l)
		}
		sort.Strings(labels)
		br := &Branch{Children: make(map[string]Child, len(c))}
		for _, l := range labels {
			child, err := b.grow(c[l], path+l+"/")
			if err != nil {
				return nil, err
			}
			br.Children[l] = child
		}
		return &Node{Body: br}, nil
	}
	return nil, errors.Wrapf(ErrClaimShape, "unsupported claim %T at %q", claim, path)
}

// prover computes commitments bottom-up. In sealing mode it stores the
// computed proof in every revealed node; otherwise it checks the
// stored proofs.
type prover struct {
	h       hasher.CommitmentHasher
	sealing bool
	workers int
}

func newProver(h hasher.CommitmentHasher, workers int, sealing bool) *prover {
	return &prover{h: h, sealing: sealing, workers: workers}
}

func (p *prover) seal(n *Node) error {
	_, err := p.proof(n, "")
	return err
}

func (p *prover) proof(n *Node, path string) (string, error) {
	var actual string
	var err error
	switch body := n.Body.(type) {
	case *ValueCommitment:
		actual, err = body.Digest(p.h)
	case *Branch:
		actual, err = p.branch(body, path)
	default:
		return "", errors.Wrapf(ErrSerialization, "node at %q has no body", path)
	}
	if err != nil {
		return "", err
	}
	if p.sealing {
		n.Proof = actual
	} else if n.Proof != actual {
		return "", newVerificationError(n.Proof, actual, path)
	}
	return actual, nil
}

func (p *prover) branch(b *Branch, path string) (string, error) {
	labels := b.Labels()
	proofs := make([]string, len(labels))
	var g errgroup.Group
	// The calling goroutine takes the children no worker is free for.
	if p.workers > 1 {
		g.SetLimit(p.workers - 1)
	}
	for i, l := range labels {
		i, l := i, l
		run := func() error {
			var err error
			switch c := b.Children[l].(type) {
			case *Node:
				proofs[i], err = p.proof(c, path+l+"/")
			case Redacted:
				proofs[i] = string(c)
			default:
				err = errors.Wrapf(ErrSerialization, "child %q has no content", path+l+"/")
			}
			return err
		}
		if p.workers > 1 && g.TryGo(run) {
			continue
		}
		if err := run(); err != nil {
			g.Wait()
			return "", err
		}
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	m := make(map[string]string, len(labels))
	for i, l := range labels {
		m[l] = proofs[i]
	}
	return branchProof(p.h, m)
}
