package utils

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sdt-sys/sdt-go/storage/kv"
	"github.com/sdt-sys/sdt-go/storage/kv/leveldbkv"
	"github.com/sdt-sys/sdt-go/storage/kv/pebblekv"
)

// WriteFile writes buf to a file whose path is indicated by filename.
// It refuses to overwrite an existing file.
func WriteFile(filename string, buf []byte, perm os.FileMode) error {
	if _, err := os.Stat(filename); err == nil {
		return fmt.Errorf("Can't write file. File '%s' already exists\n",
			filename)
	}

	if err := os.WriteFile(filename, buf, perm); err != nil {
		return err
	}
	return nil
}

// ResolvePath returns the absolute path of file.
// This will use other as a base path if file is just a file name.
func ResolvePath(file, other string) string {
	if !filepath.IsAbs(file) {
		file = filepath.Join(filepath.Dir(other), file)
	}
	return file
}

// Backends lists the kv.DB implementations, by name.
var Backends = map[string]func(path string) (kv.DB, error){
	"leveldb": leveldbkv.OpenDB,
	"pebble":  pebblekv.OpenDB,
}

// WithDB runs f on a fresh leveldb database in a temporary directory,
// for _tests_.
func WithDB(f func(db kv.DB)) {
	withBackend("leveldb", f)
}

// ForEachBackend runs f once on a fresh temporary database of every
// backend, for _tests_.
func ForEachBackend(f func(backend string, db kv.DB)) {
	for _, name := range []string{"leveldb", "pebble"} {
		name := name
		withBackend(name, func(db kv.DB) { f(name, db) })
	}
}

func withBackend(name string, f func(db kv.DB)) {
	dir, err := os.MkdirTemp("", "sdt-"+name)
	if err != nil {
		panic(err)
	}
	defer os.RemoveAll(dir)
	db, err := Backends[name](filepath.Join(dir, "db"))
	if err != nil {
		panic(err)
	}
	defer db.Close()
	f(db)
}
