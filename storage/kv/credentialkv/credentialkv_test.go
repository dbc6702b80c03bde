package credentialkv

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/merkletree"
	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/sdt-sys/sdt-go/storage/kv"
	"github.com/sdt-sys/sdt-go/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentialStore(t *testing.T) {
	utils.ForEachBackend(func(backend string, db kv.DB) {
		t.Run(backend, func(t *testing.T) {
			store, err := New(db, 2)
			require.NoError(t, err)

			c := protocol.NewTestCredential(t, "sub-1", `{"a":1}`)
			require.NoError(t, store.Create(c))
			assert.True(t, errors.Is(store.Create(c), ErrSubjectExisted))

			require.NoError(t, c.Mutate(merkletree.NewBranch().AddValue("a", merkletree.Null()).Claim(), nil))
			require.NoError(t, store.Put(c))

			tip, err := c.Proof()
			require.NoError(t, err)
			stored, err := store.Tip("sub-1")
			require.NoError(t, err)
			assert.Equal(t, tip, stored)

			got, err := store.Get("sub-1")
			require.NoError(t, err)
			assert.Equal(t, 2, got.Len())
			_, err = got.Verify(tip)
			require.NoError(t, err)

			// bypass the cache
			fresh, err := New(db, 1)
			require.NoError(t, err)
			got, err = fresh.Get("sub-1")
			require.NoError(t, err)
			assert.Equal(t, "sub-1", got.Subject)

			require.NoError(t, store.Put(protocol.NewTestCredential(t, "sub-0", `{"b":true}`)))
			subjects, err := store.Subjects()
			require.NoError(t, err)
			assert.Equal(t, []string{"sub-0", "sub-1"}, subjects)

			require.NoError(t, store.Delete("sub-1"))
			_, err = store.Get("sub-1")
			assert.Equal(t, ErrCredentialNotFound, err)
			_, err = store.Tip("sub-1")
			assert.Equal(t, ErrCredentialNotFound, err)
			ok, err := store.Exists("sub-1")
			require.NoError(t, err)
			assert.False(t, ok)
		})
	})
}

func TestPutRejectsBrokenChain(t *testing.T) {
	utils.WithDB(func(db kv.DB) {
		store, err := New(db, 4)
		require.NoError(t, err)
		c := protocol.NewTestCredential(t, "sub-1", `{"a":1}`)
		c.Payload.Proof = "00"
		err = store.Put(c)
		var verr *merkletree.VerificationError
		assert.True(t, errors.As(err, &verr))
		ok, err := store.Exists("sub-1")
		require.NoError(t, err)
		assert.False(t, ok)
	})
}
