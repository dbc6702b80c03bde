// Package kvtest checks implementations of kv.DB against the behaviour
// the rest of the module relies on.
package kvtest

import (
	"testing"

	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/storage/kv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestDB runs the conformance tests against an empty db.
func TestDB(t *testing.T, db kv.DB) {
	t.Run("get put delete", func(t *testing.T) {
		_, err := db.Get([]byte("missing"))
		require.True(t, errors.Is(err, db.ErrNotFound()), "got %v", err)

		require.NoError(t, db.Put([]byte("k1"), []byte("v1")))
		v, err := db.Get([]byte("k1"))
		require.NoError(t, err)
		assert.Equal(t, []byte("v1"), v)

		require.NoError(t, db.Delete([]byte("k1")))
		_, err = db.Get([]byte("k1"))
		assert.True(t, errors.Is(err, db.ErrNotFound()))
	})

	t.Run("batch", func(t *testing.T) {
		b := db.NewBatch()
		b.Put([]byte("b1"), []byte("x"))
		b.Reset()
		b.Put([]byte("b2"), []byte("2"))
		b.Put([]byte("b3"), []byte("3"))
		b.Delete([]byte("b3"))
		require.NoError(t, db.Write(b))

		_, err := db.Get([]byte("b1"))
		assert.True(t, errors.Is(err, db.ErrNotFound()))
		v, err := db.Get([]byte("b2"))
		require.NoError(t, err)
		assert.Equal(t, []byte("2"), v)
		_, err = db.Get([]byte("b3"))
		assert.True(t, errors.Is(err, db.ErrNotFound()))
	})

	t.Run("batch reuse", func(t *testing.T) {
		b := db.NewBatch()
		b.Put([]byte("r1"), []byte("1"))
		require.NoError(t, db.Write(b))
		require.NoError(t, db.Put([]byte("r1"), []byte("x")))
		// a written batch starts out empty
		b.Put([]byte("r2"), []byte("2"))
		require.NoError(t, db.Write(b))
		for i := 0; i < 64; i++ {
			wb := db.NewBatch()
			wb.Put([]byte("r3"), []byte{byte(i)})
			require.NoError(t, db.Write(wb))
		}

		for k, want := range map[string][]byte{"r1": []byte("x"), "r2": []byte("2"), "r3": {63}} {
			v, err := db.Get([]byte(k))
			require.NoError(t, err)
			assert.Equal(t, want, v)
		}
	})

	t.Run("iterator", func(t *testing.T) {
		for _, k := range []string{"p/a", "p/b", "p/c", "q/a"} {
			require.NoError(t, db.Put([]byte(k), []byte(k)))
		}
		it := db.NewIterator(kv.BytesPrefix([]byte("p/")))
		var keys []string
		for ok := it.First(); ok; ok = it.Next() {
			keys = append(keys, string(it.Key()))
			assert.Equal(t, it.Key(), it.Value())
		}
		require.True(t, it.Last())
		assert.Equal(t, "p/c", string(it.Key()))
		it.Release()
		require.NoError(t, it.Error())
		assert.Equal(t, []string{"p/a", "p/b", "p/c"}, keys)
	})
}
