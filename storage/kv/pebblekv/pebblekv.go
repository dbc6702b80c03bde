// Package pebblekv implements the kv interface using pebble.
package pebblekv

import (
	"github.com/cockroachdb/pebble"
	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/storage/kv"
)

type pebblekv struct {
	db *pebble.DB
}

// OpenDB opens or creates the database at path.
func OpenDB(path string) (kv.DB, error) {
	db, err := pebble.Open(path, &pebble.Options{})
	if err != nil {
		return nil, errors.Wrapf(err, "open pebble %q", path)
	}
	return Wrap(db), nil
}

// Wrap uses a pebble.DB as a kv.DB with synchronous writes.
func Wrap(db *pebble.DB) kv.DB {
	return &pebblekv{db: db}
}

func (p *pebblekv) Get(key []byte) ([]byte, error) {
	v, closer, err := p.db.Get(key)
	if err != nil {
		return nil, err
	}
	defer closer.Close()
	// v is only valid until closer is closed
	return append([]byte(nil), v...), nil
}

func (p *pebblekv) Put(key, value []byte) error {
	return p.db.Set(key, value, pebble.Sync)
}

func (p *pebblekv) Delete(key []byte) error {
	return p.db.Delete(key, pebble.Sync)
}

// batch holds a pebble batch until it is written. The pebble batch
// goes back to its pool on Write; the next Put starts a new one.
type batch struct {
	db  *pebble.DB
	b   *pebble.Batch
	err error
}

func (b *batch) pending() *pebble.Batch {
	if b.b == nil {
		b.b = b.db.NewBatch()
	}
	return b.b
}

func (b *batch) Reset() {
	if b.b != nil {
		b.b.Reset()
	}
	b.err = nil
}

func (b *batch) Put(key, value []byte) {
	if err := b.pending().Set(key, value, nil); err != nil && b.err == nil {
		b.err = err
	}
}

func (b *batch) Delete(key []byte) {
	if err := b.pending().Delete(key, nil); err != nil && b.err == nil {
		b.err = err
	}
}

func (p *pebblekv) NewBatch() kv.Batch {
	return &batch{db: p.db}
}

func (p *pebblekv) Write(b kv.Batch) error {
	wb, ok := b.(*batch)
	if !ok {
		return errors.Errorf("pebblekv.Write: expected *pebblekv.batch, got %T", b)
	}
	if wb.err != nil {
		return wb.err
	}
	if wb.b == nil {
		return nil
	}
	pb := wb.b
	wb.b = nil
	defer pb.Close()
	return errors.Wrap(pb.Commit(pebble.Sync), "pebblekv.Write")
}

type iterator struct {
	it       *pebble.Iterator
	err      error
	released bool
}

func (i *iterator) Key() []byte {
	if i.it == nil {
		return nil
	}
	return i.it.Key()
}

func (i *iterator) Value() []byte {
	if i.it == nil {
		return nil
	}
	return i.it.Value()
}

func (i *iterator) First() bool {
	return i.it != nil && !i.released && i.it.First()
}

func (i *iterator) Next() bool {
	return i.it != nil && !i.released && i.it.Next()
}

func (i *iterator) Last() bool {
	return i.it != nil && !i.released && i.it.Last()
}

func (i *iterator) Release() {
	if i.it == nil || i.released {
		return
	}
	i.released = true
	if err := i.it.Close(); err != nil && i.err == nil {
		i.err = err
	}
}

func (i *iterator) Error() error {
	if i.err != nil || i.it == nil || i.released {
		return i.err
	}
	return i.it.Error()
}

func (p *pebblekv) NewIterator(rg *kv.Range) kv.Iterator {
	opts := &pebble.IterOptions{}
	if rg != nil {
		opts.LowerBound = rg.Start
		opts.UpperBound = rg.Limit
	}
	it, err := p.db.NewIter(opts)
	if err != nil {
		return &iterator{err: err}
	}
	return &iterator{it: it}
}

func (p *pebblekv) Close() error {
	return p.db.Close()
}

func (p *pebblekv) ErrNotFound() error {
	return pebble.ErrNotFound
}
