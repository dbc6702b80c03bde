/*
Package protocol implements the mutation chain of selective disclosure
credentials and the operations exposed to callers of the library.

Mutation Chain

A Credential is an append-only list of payloads. Every payload holds a
commitment tree (see
https://godoc.org/github.com/sdt-sys/sdt-go/merkletree) and a chain proof.
The proof of the first payload binds the hash algorithm, the subject and
the tree root; the proof of every later payload binds its tree root to
the proof of its predecessor. A holder can redact every payload with the
same query, and a verifier walks the chain from inception to check each
link and the final proof.

Operations

Execute dispatches a Command to one of the six operations: Inception,
Mutation, Selection, Proof, Verification and Disclosure. The outcome is
a Result, which on failure carries an ErrorKind from a fixed taxonomy.
*/
package protocol
