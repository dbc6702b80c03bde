package protocol

import (
	"io"
	"sync"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/crypto"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	_ "github.com/sdt-sys/sdt-go/crypto/hasher/blake3"
	_ "github.com/sdt-sys/sdt-go/crypto/hasher/sha2"
	_ "github.com/sdt-sys/sdt-go/crypto/hasher/sha3"
	"github.com/sdt-sys/sdt-go/merkletree"
)

// Options control how the trees of a credential are built.
type Options struct {
	// HashAlg selects the hash function of a new credential.
	// It is ignored by Mutate, which keeps the credential's algorithm.
	HashAlg hasher.HashAlg
	// Rand is the source of salts, crypto/rand if nil.
	Rand io.Reader
	// Workers bounds concurrent subtree hashing, one per CPU if zero.
	Workers int
}

// Payload is a link of the mutation chain.
type Payload struct {
	Proof string           `json:"proof"`
	Node  *merkletree.Node `json:"node"`
	Next  *Payload         `json:"next"`
}

// A Credential is the mutation chain of the claims made about a subject.
// Payloads are only ever appended at the tail.
type Credential struct {
	HashAlg hasher.HashAlg `json:"hash_alg"`
	Subject string         `json:"subject"`
	Payload *Payload       `json:"payload"`

	mu sync.RWMutex
}

type inceptionLink struct {
	HashAlg hasher.HashAlg `json:"hash_alg"`
	Root    string         `json:"root"`
	Subject string         `json:"subject"`
}

type mutationLink struct {
	Previous string `json:"previous"`
	Root     string `json:"root"`
}

func builder(alg hasher.HashAlg, opts *Options) (*merkletree.Builder, error) {
	h, err := hasher.Hasher(alg)
	if err != nil {
		return nil, errors.Wrap(ErrUnknownHashAlg, err.Error())
	}
	b := merkletree.NewBuilder(h)
	if opts != nil {
		b.Rand = opts.Rand
		if opts.Workers != 0 {
			b.Workers = opts.Workers
		}
	}
	return b, nil
}

// NewCredential builds the tree of claim and returns a credential
// holding it as the inception payload.
func NewCredential(subject string, claim merkletree.Claim, opts *Options) (*Credential, error) {
	alg := hasher.Default
	if opts != nil && opts.HashAlg != 0 {
		alg = opts.HashAlg
	}
	b, err := builder(alg, opts)
	if err != nil {
		return nil, err
	}
	node, err := b.Build(claim)
	if err != nil {
		return nil, err
	}
	proof, err := merkletree.HashCanonical(b.Hasher, &inceptionLink{
		HashAlg: alg,
		Root:    node.Proof,
		Subject: subject,
	})
	if err != nil {
		return nil, err
	}
	return &Credential{
		HashAlg: alg,
		Subject: subject,
		Payload: &Payload{Proof: proof, Node: node},
	}, nil
}

// Mutate builds the tree of claim and appends it to the chain.
// Only one mutation extends the tail at a time.
func (c *Credential) Mutate(claim merkletree.Claim, opts *Options) error {
	b, err := builder(c.HashAlg, opts)
	if err != nil {
		return err
	}
	node, err := b.Build(claim)
	if err != nil {
		return err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	tail := c.tail()
	if tail == nil {
		return errors.Wrap(ErrMalformedCredential, "no inception payload")
	}
	proof, err := merkletree.HashCanonical(b.Hasher, &mutationLink{
		Previous: tail.Proof,
		Root:     node.Proof,
	})
	if err != nil {
		return err
	}
	tail.Next = &Payload{Proof: proof, Node: node}
	return nil
}

func (c *Credential) tail() *Payload {
	p := c.Payload
	for p != nil && p.Next != nil {
		p = p.Next
	}
	return p
}

// Tail returns the latest payload, or nil for an empty credential.
func (c *Credential) Tail() *Payload {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.tail()
}

// Len returns the number of payloads in the chain.
func (c *Credential) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.lenLocked()
}

// Select returns a new credential in which every payload's tree is
// disclosed with sel. The chain proofs are unchanged.
func (c *Credential) Select(sel merkletree.Selector) *Credential {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := &Credential{HashAlg: c.HashAlg, Subject: c.Subject}
	link := &out.Payload
	for p := c.Payload; p != nil; p = p.Next {
		np := &Payload{Proof: p.Proof}
		if p.Node != nil {
			np.Node = merkletree.Disclose(p.Node, sel)
		}
		*link = np
		link = &np.Next
	}
	return out
}

// Proof recomputes the chain, checking every stored link, and returns
// the proof of the tail.
func (c *Credential) Proof() (string, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.walk(nil)
}

// Verify walks the chain from inception, recomputing every tree root
// and chain proof, and compares the proof of the tail with target.
// The values revealed by all payloads are returned, accumulated in
// chain order.
func (c *Credential) Verify(target string) (merkletree.DiscloseResult, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	result := make(merkletree.DiscloseResult)
	tip, err := c.walk(func(p *Payload) {
		merkletree.Collect(p.Node, result)
	})
	if err != nil {
		return nil, err
	}
	if !crypto.ProofEqual(target, tip) {
		return nil, &merkletree.VerificationError{
			Expected: target,
			Actual:   tip,
			Position: c.lenLocked() - 1,
		}
	}
	return result, nil
}

func (c *Credential) lenLocked() int {
	n := 0
	for p := c.Payload; p != nil; p = p.Next {
		n++
	}
	return n
}

// walk recomputes the chain proofs in order. It stops at the first
// payload whose tree or stored proof does not match.
func (c *Credential) walk(visit func(*Payload)) (string, error) {
	if c.Payload == nil {
		return "", errors.Wrap(ErrMalformedCredential, "no inception payload")
	}
	h, err := hasher.Hasher(c.HashAlg)
	if err != nil {
		return "", errors.Wrap(ErrUnknownHashAlg, err.Error())
	}
	var previous string
	for i, p := 0, c.Payload; p != nil; i, p = i+1, p.Next {
		if p.Node == nil {
			return "", errors.Wrapf(ErrMalformedCredential, "payload %d has no node", i)
		}
		root, err := merkletree.Recompute(h, p.Node)
		if err != nil {
			var verr *merkletree.VerificationError
			if errors.As(err, &verr) {
				verr.Position = i
			}
			return "", err
		}
		var link interface{} = &mutationLink{Previous: previous, Root: root}
		if i == 0 {
			link = &inceptionLink{HashAlg: c.HashAlg, Root: root, Subject: c.Subject}
		}
		proof, err := merkletree.HashCanonical(h, link)
		if err != nil {
			return "", err
		}
		if !crypto.ProofEqual(p.Proof, proof) {
			return "", &merkletree.VerificationError{
				Expected: p.Proof,
				Actual:   proof,
				Position: i,
			}
		}
		if visit != nil {
			visit(p)
		}
		previous = proof
	}
	return previous, nil
}
