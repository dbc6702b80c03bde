/*
Package merkletree implements the commitment tree underlying selective
disclosure credentials.

Commitment Tree

A tree is built from a claim, a nested mapping of labels to scalar values.
Every scalar becomes a leaf holding a value commitment: a fresh 128-bit salt
and the value, hashed in canonical JSON form. Every mapping becomes a branch
whose commitment is the hash of the canonical mapping from each child label
to the child's commitment. A child may be revealed (the node itself) or
redacted (only the child's commitment string). Both contribute the same
string to the parent's commitment, so redacting a subtree never changes
the root.

Disclosure

Disclose produces a redacted copy of a tree given a set of selected paths.
A path is the sequence of labels from the root joined by "/" and terminated
by "/". Selected leaves stay revealed together with the branch shells needed
to reach them; everything else is replaced by its commitment.

Verification

Verify recomputes the commitments of a possibly redacted tree bottom-up,
trusting redacted commitments and re-hashing revealed leaves and branches.
It checks every revealed node's stored proof, compares the recomputed root
with an independently obtained one and collects the revealed values into a
DiscloseResult.

The hash function is supplied by the caller (see
https://godoc.org/github.com/sdt-sys/sdt-go/crypto/hasher).
*/
package merkletree
