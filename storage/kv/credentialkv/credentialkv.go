// Package credentialkv persists credentials in a kv.DB, keyed by subject.
package credentialkv

import (
	"encoding/json"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/pkg/errors"
	"github.com/sdt-sys/sdt-go/protocol"
	"github.com/sdt-sys/sdt-go/storage/kv"
)

const (
	// CredentialIdentifier is the domain separation for credentials.
	CredentialIdentifier = 'C'
	// TipIdentifier is the domain separation for the chain tips.
	TipIdentifier = 'T'
)

var (
	// ErrCredentialNotFound indicates an unknown subject.
	ErrCredentialNotFound = errors.New("[credentialkv] Credential not found")
	// ErrSubjectExisted indicates an inception for a subject that is
	// already stored.
	ErrSubjectExisted = errors.New("[credentialkv] Subject is already registered")
)

// Store keeps the latest credential of every subject together with its
// chain tip. Encoded credentials of recently used subjects are cached.
type Store struct {
	db    kv.DB
	cache *lru.Cache[string, []byte]
}

// New returns a Store on db caching up to cacheSize credentials.
func New(db kv.DB, cacheSize int) (*Store, error) {
	if cacheSize <= 0 {
		cacheSize = 1
	}
	cache, err := lru.New[string, []byte](cacheSize)
	if err != nil {
		return nil, err
	}
	return &Store{db: db, cache: cache}, nil
}

func credentialKey(subject string) []byte {
	key := make([]byte, 0, 1+len(subject))
	key = append(key, CredentialIdentifier)
	return append(key, subject...)
}

func tipKey(subject string) []byte {
	key := make([]byte, 0, 1+len(subject))
	key = append(key, TipIdentifier)
	return append(key, subject...)
}

// Put stores c, replacing any credential of the same subject.
// The chain of c is checked before it is written.
func (s *Store) Put(c *protocol.Credential) error {
	tip, err := c.Proof()
	if err != nil {
		return err
	}
	buf, err := json.Marshal(c)
	if err != nil {
		return err
	}
	wb := s.db.NewBatch()
	wb.Put(credentialKey(c.Subject), buf)
	wb.Put(tipKey(c.Subject), []byte(tip))
	if err := s.db.Write(wb); err != nil {
		return err
	}
	s.cache.Add(c.Subject, buf)
	return nil
}

// Create stores c if its subject is unknown.
func (s *Store) Create(c *protocol.Credential) error {
	ok, err := s.Exists(c.Subject)
	if err != nil {
		return err
	}
	if ok {
		return ErrSubjectExisted
	}
	return s.Put(c)
}

// Get loads the credential of subject.
func (s *Store) Get(subject string) (*protocol.Credential, error) {
	buf, ok := s.cache.Get(subject)
	if !ok {
		var err error
		buf, err = s.db.Get(credentialKey(subject))
		if err != nil {
			if errors.Is(err, s.db.ErrNotFound()) {
				return nil, ErrCredentialNotFound
			}
			return nil, err
		}
		s.cache.Add(subject, buf)
	}
	c := new(protocol.Credential)
	if err := json.Unmarshal(buf, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Tip returns the stored chain tip of subject.
func (s *Store) Tip(subject string) (string, error) {
	tip, err := s.db.Get(tipKey(subject))
	if err != nil {
		if errors.Is(err, s.db.ErrNotFound()) {
			return "", ErrCredentialNotFound
		}
		return "", err
	}
	return string(tip), nil
}

// Exists reports whether a credential of subject is stored.
func (s *Store) Exists(subject string) (bool, error) {
	if s.cache.Contains(subject) {
		return true, nil
	}
	_, err := s.db.Get(tipKey(subject))
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, s.db.ErrNotFound()):
		return false, nil
	}
	return false, err
}

// Delete removes the credential of subject.
func (s *Store) Delete(subject string) error {
	wb := s.db.NewBatch()
	wb.Delete(credentialKey(subject))
	wb.Delete(tipKey(subject))
	s.cache.Remove(subject)
	return s.db.Write(wb)
}

// Subjects returns the stored subjects in key order.
func (s *Store) Subjects() ([]string, error) {
	it := s.db.NewIterator(kv.BytesPrefix([]byte{CredentialIdentifier}))
	var subjects []string
	for ok := it.First(); ok; ok = it.Next() {
		subjects = append(subjects, string(it.Key()[1:]))
	}
	it.Release()
	return subjects, it.Error()
}
