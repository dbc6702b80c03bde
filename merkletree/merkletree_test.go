package merkletree

import (
	"strconv"
	"strings"
	"testing"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/crypto/hasher"
	"github.com/sdt-sys/sdt-go/crypto/hasher/sha2"
)

var testHasher = sha2.New()

const scenarioClaim = `{"personal":{"name":"Adem","age":5},"keys":{"assertions":{"key-1":"0x12"}}}`

// pathSet is a plain Selector over a fixed set of paths.
type pathSet map[string]bool

func newPathSet(paths ...string) pathSet {
	s := make(pathSet)
	for _, p := range paths {
		s[p] = true
	}
	return s
}

func (s pathSet) Contains(path string) bool { return s[path] }

func (s pathSet) HasDescendant(path string) bool {
	for p := range s {
		if len(p) > len(path) && strings.HasPrefix(p, path) {
			return true
		}
	}
	return false
}

func buildScenario(t *testing.T, b *Builder) *Node {
	claim, err := ParseClaim([]byte(scenarioClaim))
	if err != nil {
		t.Fatal(err)
	}
	root, err := b.Build(claim)
	if err != nil {
		t.Fatal(err)
	}
	return root
}

func child(t *testing.T, n *Node, labels ...string) Child {
	c := n.Lookup(labels...)
	if c == nil {
		t.Fatalf("no child at %v", labels)
	}
	return c
}

func TestValueCommitmentDigest(t *testing.T) {
	vc := &ValueCommitment{Salt: "000102030405060708090a0b0c0d0e0f", Value: String("Adem")}
	got, err := vc.Digest(testHasher)
	if err != nil {
		t.Fatal(err)
	}
	want := hasher.HexDigest(testHasher, []byte(`{"salt":"000102030405060708090a0b0c0d0e0f","value":"Adem"}`))
	if got != want {
		t.Error("Unexpected digest", got, "want", want)
	}
}

func TestValueCommitmentHiding(t *testing.T) {
	a, err := Commit(nil, Bool(true))
	if err != nil {
		t.Fatal(err)
	}
	b, err := Commit(nil, Bool(true))
	if err != nil {
		t.Fatal(err)
	}
	if a.Salt == b.Salt {
		t.Fatal("Expect fresh salts")
	}
	da, _ := a.Digest(testHasher)
	db, _ := b.Digest(testHasher)
	if da == db {
		t.Error("Identical values with different salts should have different digests")
	}
}

func TestBuildDeterministic(t *testing.T) {
	n1 := buildScenario(t, NewStaticBuilder(testHasher))
	n2 := buildScenario(t, NewStaticBuilder(testHasher))
	if n1.Proof != n2.Proof {
		t.Fatal("Expect the same root for a fixed random source")
	}

	parallel := NewStaticBuilder(testHasher)
	parallel.Workers = 8
	n3 := buildScenario(t, parallel)
	if n3.Proof != n1.Proof {
		t.Error("Parallel hashing changed the root")
	}
}

func wideClaim(t *testing.T) Claim {
	outer := make(map[string]interface{})
	for i := 0; i < 24; i++ {
		inner := make(map[string]interface{})
		for j := 0; j < 6; j++ {
			inner["f"+strconv.Itoa(j)] = strconv.Itoa(i * j)
		}
		outer["s"+strconv.Itoa(i)] = inner
	}
	c, err := ClaimFromInterface(outer)
	if err != nil {
		t.Fatal(err)
	}
	return c
}

func TestBuildWorkerCounts(t *testing.T) {
	var want string
	for _, workers := range []int{0, 1, 2, 3, 64} {
		b := NewStaticBuilder(testHasher)
		b.Workers = workers
		root, err := b.Build(wideClaim(t))
		if err != nil {
			t.Fatal(err)
		}
		if want == "" {
			want = root.Proof
		} else if root.Proof != want {
			t.Errorf("Workers=%d changed the root", workers)
		}
		if _, err := newProver(testHasher, workers, false).proof(root, ""); err != nil {
			t.Errorf("Workers=%d: check failed: %v", workers, err)
		}
	}
}

func TestCheckConcurrentMismatch(t *testing.T) {
	root, err := NewStaticBuilder(testHasher).Build(wideClaim(t))
	if err != nil {
		t.Fatal(err)
	}
	leaf := child(t, root, "s17", "f3").(*Node)
	leaf.Proof = strings.Repeat("0", 64)

	_, err = newProver(testHasher, 4, false).proof(root, "")
	var verr *VerificationError
	if !errors.As(err, &verr) {
		t.Fatal("Expect a VerificationError, got", err)
	}
	if verr.Path != "s17/f3/" {
		t.Error("Unexpected path", verr.Path)
	}
}

func TestBuildFreshSalts(t *testing.T) {
	n1 := buildScenario(t, NewBuilder(testHasher))
	n2 := buildScenario(t, NewBuilder(testHasher))
	if n1.Proof == n2.Proof {
		t.Fatal("Expect different roots with fresh salts")
	}
	for _, path := range [][]string{
		{"personal", "name"},
		{"personal", "age"},
		{"keys", "assertions", "key-1"},
	} {
		c1 := child(t, n1, path...).(*Node)
		c2 := child(t, n2, path...).(*Node)
		if c1.Proof == c2.Proof {
			t.Error("Leaf commitment did not change at", path)
		}
		l1, _ := c1.Leaf()
		l2, _ := c2.Leaf()
		if !l1.Value.Equal(l2.Value) {
			t.Error("Leaf value changed at", path)
		}
	}
}

func TestBuildProofs(t *testing.T) {
	root := buildScenario(t, NewStaticBuilder(testHasher))
	personal := child(t, root, "personal").(*Node)
	pb, _ := personal.Branch()
	want, err := branchProof(testHasher, map[string]string{
		"age":  pb.Children["age"].ChildProof(),
		"name": pb.Children["name"].ChildProof(),
	})
	if err != nil {
		t.Fatal(err)
	}
	if personal.Proof != want {
		t.Error("Unexpected branch commitment")
	}
	got, err := Recompute(testHasher, root)
	if err != nil {
		t.Fatal(err)
	}
	if got != root.Proof {
		t.Error("Recompute mismatch", got, root.Proof)
	}
}

func TestBuildClaimShape(t *testing.T) {
	for _, claim := range []string{
		`"scalar"`,
		`{"a":[1,2]}`,
		`{"a":{"b":[]}}`,
		`{"a/b":"flat","a":{"b":"nested"}}`,
		`{"a":{"b/c":1}}`,
		`null`,
	} {
		c, err := ParseClaim([]byte(claim))
		if err == nil {
			_, err = NewBuilder(testHasher).Build(c)
		}
		if !errors.Is(err, ErrClaimShape) {
			t.Error(claim, "Expect", ErrClaimShape, "got", err)
		}
	}
}

func TestBuildRejectsMissingClaim(t *testing.T) {
	for _, c := range []Claim{nil, Object(nil)} {
		if _, err := NewBuilder(testHasher).Build(c); !errors.Is(err, ErrClaimShape) {
			t.Errorf("%#v: Expect %v, got %v", c, ErrClaimShape, err)
		}
	}
}

func TestBuildRejectsSeparatorInLabel(t *testing.T) {
	claims := []Claim{
		Object{"a/b": Scalar{Value: String("flat")}},
		NewBranch().AddNode("a", NewBranch().AddValue("b/", Int(1))).Claim(),
	}
	for _, c := range claims {
		if _, err := NewBuilder(testHasher).Build(c); !errors.Is(err, ErrClaimShape) {
			t.Error("Expect", ErrClaimShape, "got", err)
		}
	}
}

func TestScenarioDisclosure(t *testing.T) {
	root := buildScenario(t, NewBuilder(testHasher))
	disclosed := Disclose(root, newPathSet("personal/name/"))

	if _, ok := child(t, disclosed, "keys").(Redacted); !ok {
		t.Error("Expect keys to be redacted")
	}
	if _, ok := child(t, disclosed, "personal", "age").(Redacted); !ok {
		t.Error("Expect personal/age to be redacted")
	}
	name, ok := child(t, disclosed, "personal", "name").(*Node)
	if !ok {
		t.Fatal("Expect personal/name to be revealed")
	}
	leaf, _ := name.Leaf()
	if leaf.Value != String("Adem") || leaf.Salt == "" {
		t.Error("Unexpected leaf", leaf)
	}

	result, err := Verify(testHasher, disclosed, root.Proof)
	if err != nil {
		t.Fatal(err)
	}
	if len(result) != 1 || len(result["personal"].Branch) != 1 {
		t.Fatal("Unexpected disclosed values", result)
	}
	values := result.Values("personal", "name")
	if len(values) != 1 || values[0] != String("Adem") {
		t.Error("Unexpected values", values)
	}
}

func TestRedactionInvariance(t *testing.T) {
	root := buildScenario(t, NewBuilder(testHasher))
	for _, sel := range []pathSet{
		newPathSet(),
		newPathSet("personal/"),
		newPathSet("personal/age/"),
		newPathSet("personal/name/", "keys/assertions/key-1/"),
		newPathSet("keys/"),
		newPathSet("missing/"),
		newPathSet("personal/name/nothing/"),
	} {
		d := Disclose(root, sel)
		if d.Proof != root.Proof {
			t.Error("Disclose changed the root commitment")
		}
		if _, err := Verify(testHasher, d, root.Proof); err != nil {
			t.Error(sel, err)
		}
	}
}

func TestDisclosureMinimality(t *testing.T) {
	root := buildScenario(t, NewBuilder(testHasher))
	tests := []struct {
		sel    pathSet
		leaves []string
	}{
		{newPathSet(), nil},
		{newPathSet("personal/age/"), []string{"personal/age"}},
		{newPathSet("personal/"), []string{"personal/age", "personal/name"}},
		// deeper selections redact the unselected siblings
		{newPathSet("personal/", "personal/name/"), []string{"personal/name"}},
		{newPathSet("keys/assertions/key-1/", "personal/name/"), []string{"keys/assertions/key-1", "personal/name"}},
		{newPathSet("personal/name/nothing/"), nil},
	}
	for _, tc := range tests {
		result, err := Verify(testHasher, Disclose(root, tc.sel), root.Proof)
		if err != nil {
			t.Fatal(err)
		}
		var got []string
		flatten(result, "", &got)
		if strings.Join(got, ",") != strings.Join(tc.leaves, ",") {
			t.Error(tc.sel, "Expect", tc.leaves, "got", got)
		}
	}
}

func flatten(r DiscloseResult, prefix string, out *[]string) {
	for _, l := range sortedLabels(r) {
		e := r[l]
		if len(e.Values) > 0 {
			*out = append(*out, prefix+l)
		}
		flatten(e.Branch, prefix+l+"/", out)
	}
}

func sortedLabels(r DiscloseResult) []string {
	b := &Branch{Children: make(map[string]Child)}
	for l := range r {
		b.Children[l] = Redacted("")
	}
	return b.Labels()
}

func TestDiscloseDoesNotAlias(t *testing.T) {
	root := buildScenario(t, NewBuilder(testHasher))
	d := Disclose(root, newPathSet("personal/"))
	leaf, _ := child(t, d, "personal", "name").(*Node).Leaf()
	leaf.Value = String("Eve")

	orig, _ := child(t, root, "personal", "name").(*Node).Leaf()
	if orig.Value != String("Adem") {
		t.Fatal("Disclose aliased the input tree")
	}
	if _, ok := child(t, root, "keys").(*Node); !ok {
		t.Error("Disclose redacted the input tree")
	}
}

func TestTamperDetection(t *testing.T) {
	root := buildScenario(t, NewBuilder(testHasher))
	d := Disclose(root, newPathSet("personal/name/"))
	leaf, _ := child(t, d, "personal", "name").(*Node).Leaf()
	leaf.Value = String("Eve")

	_, err := Verify(testHasher, d, root.Proof)
	var verr *VerificationError
	if !errors.As(err, &verr) {
		t.Fatal("Expect a VerificationError, got", err)
	}
	if verr.Path != "personal/name/" {
		t.Error("Unexpected path", verr.Path)
	}

	// tampering with the stored proofs as well is caught at the root
	d = Disclose(root, newPathSet("personal/name/"))
	name := child(t, d, "personal", "name").(*Node)
	leaf, _ = name.Leaf()
	leaf.Value = String("Eve")
	name.Proof, _ = leaf.Digest(testHasher)
	personal := child(t, d, "personal").(*Node)
	personal.Proof, _ = newProver(testHasher, 1, true).branch(personal.Body.(*Branch), "personal/")
	d.Proof, _ = newProver(testHasher, 1, true).branch(d.Body.(*Branch), "")
	_, err = Verify(testHasher, d, root.Proof)
	if !errors.As(err, &verr) || verr.Path != "" || verr.Expected != root.Proof {
		t.Error("Expect a root mismatch, got", err)
	}
}

func TestVerifyWrongRoot(t *testing.T) {
	root := buildScenario(t, NewBuilder(testHasher))
	_, err := Verify(testHasher, root, strings.Repeat("0", 64))
	var verr *VerificationError
	if !errors.As(err, &verr) {
		t.Fatal("Expect a VerificationError, got", err)
	}
	if verr.Actual != root.Proof || verr.Position != -1 {
		t.Error("Unexpected error", verr)
	}
}

func TestBranchBuilder(t *testing.T) {
	claim := NewBranch().
		AddNode("personal", NewBranch().
			AddValue("name", String("Adem")).
			AddValue("age", Int(5))).
		AddNode("keys", NewBranch().
			AddNode("assertions", NewBranch().
				AddValue("key-1", String("0x12"))))
	n1, err := claim.Build(NewStaticBuilder(testHasher))
	if err != nil {
		t.Fatal(err)
	}
	n2 := buildScenario(t, NewStaticBuilder(testHasher))
	if n1.Proof != n2.Proof {
		t.Error("BranchBuilder and ParseClaim disagree")
	}
}
