// Copyright 2014-2015 The Coname Authors.
//
// Licensed under the Apache License, Version 2.0 (the "License"); you may not
// use this file except in compliance with the License. You may obtain a copy of
// the License at
//
// 	http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS, WITHOUT
// WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied. See the
// License for the specific language governing permissions and limitations under
// the License.

// Package leveldbkv implements the kv interface using leveldb.
// All writes are synchronous.
package leveldbkv

import (
	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/storage/kv"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/opt"
	"github.com/syndtr/goleveldb/leveldb/util"
)

var syncWrite = &opt.WriteOptions{Sync: true}

type leveldbkv struct {
	db *leveldb.DB
}

// OpenDB opens or creates the database at path.
func OpenDB(path string) (kv.DB, error) {
	db, err := leveldb.OpenFile(path, nil)
	if err != nil {
		return nil, errors.Wrapf(err, "open leveldb %q", path)
	}
	return Wrap(db), nil
}

// Wrap uses a leveldb.DB as a kv.DB with synchronous writes.
func Wrap(db *leveldb.DB) kv.DB {
	return &leveldbkv{db: db}
}

// Get returns leveldb.ErrNotFound unwrapped for a missing key.
func (l *leveldbkv) Get(key []byte) ([]byte, error) {
	return l.db.Get(key, nil)
}

func (l *leveldbkv) Put(key, value []byte) error {
	return l.db.Put(key, value, syncWrite)
}

func (l *leveldbkv) Delete(key []byte) error {
	return l.db.Delete(key, syncWrite)
}

func (l *leveldbkv) NewBatch() kv.Batch {
	return new(leveldb.Batch)
}

// Write applies b and empties it.
func (l *leveldbkv) Write(b kv.Batch) error {
	wb, ok := b.(*leveldb.Batch)
	if !ok {
		return errors.Errorf("leveldbkv.Write: expected *leveldb.Batch, got %T", b)
	}
	if err := l.db.Write(wb, syncWrite); err != nil {
		return errors.Wrap(err, "leveldbkv.Write")
	}
	wb.Reset()
	return nil
}

func (l *leveldbkv) NewIterator(rg *kv.Range) kv.Iterator {
	if rg == nil {
		return l.db.NewIterator(nil, nil)
	}
	return l.db.NewIterator(&util.Range{Start: rg.Start, Limit: rg.Limit}, nil)
}

func (l *leveldbkv) Close() error {
	return l.db.Close()
}

func (l *leveldbkv) ErrNotFound() error {
	return leveldb.ErrNotFound
}
