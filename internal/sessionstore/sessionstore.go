// Package sessionstore keeps the current CLI session in a bbolt file so a
// login survives between invocations.
package sessionstore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"go.etcd.io/bbolt"

	"github.com/mesh-intelligence/gradebook/pkg/types"
)

var (
	sessionsBucket = []byte("sessions")
	currentKey     = []byte("current")
)

// Store wraps the session database.
type Store struct {
	db *bbolt.DB
}

// Open opens (or creates) the session database at path.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, fmt.Errorf("create session directory: %w", err)
	}

	db, err := bbolt.Open(path, 0o600, &bbolt.Options{Timeout: time.Second})
	if err != nil {
		return nil, fmt.Errorf("open session db %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(sessionsBucket)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("create sessions bucket: %w", err)
	}
	return &Store{db: db}, nil
}

// Save records s as the current session. Saving the LoggedOut session
// clears it.
func (s *Store) Save(sess types.Session) error {
	if !sess.LoggedIn() {
		return s.Clear()
	}
	data, err := json.Marshal(sess)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Put(currentKey, data)
	})
}

// Load returns the current session, or the LoggedOut session when none
// is stored.
func (s *Store) Load() (types.Session, error) {
	var sess types.Session
	err := s.db.View(func(tx *bbolt.Tx) error {
		v := tx.Bucket(sessionsBucket).Get(currentKey)
		if v == nil {
			return nil
		}
		return json.Unmarshal(v, &sess)
	})
	if err != nil {
		return types.Session{}, fmt.Errorf("read session: %w", err)
	}
	return sess, nil
}

// Clear removes the current session.
func (s *Store) Clear() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		return tx.Bucket(sessionsBucket).Delete(currentKey)
	})
}

// Close releases the database file.
func (s *Store) Close() error {
	return s.db.Close()
}
