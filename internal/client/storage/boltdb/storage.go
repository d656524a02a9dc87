package boltdb

import (
	"fmt"

	"go.etcd.io/bbolt"
)

var bucketCredentials = []byte("credentials")

// Storage is the BoltDB-backed credential store. This is the default
// backend; see the sqlite package for the alternative.
type Storage struct {
	db *bbolt.DB
}

// New opens (or creates) the BoltDB file at dbPath and prepares the
// credentials bucket.
func New(dbPath string) (*Storage, error) {
	db, err := bbolt.Open(dbPath, 0600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		_, err := tx.CreateBucketIfNotExists(bucketCredentials)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize credentials bucket: %w", err)
	}

	return &Storage{db: db}, nil
}

// Close closes the database file. Further calls on the store return
// storage.ErrStorageClosed.
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	err := s.db.Close()
	s.db = nil
	return err
}
