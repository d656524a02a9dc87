package boltdb

import (
	"context"
	"encoding/json"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/trackr-app/trackr/internal/client/storage"
	"github.com/trackr-app/trackr/pkg/api"
)

// Compile-time check that Storage implements CredentialStorage
var _ storage.CredentialStorage = (*Storage)(nil)

// SaveCredentials stores the token and user snapshot together.
func (s *Storage) SaveCredentials(ctx context.Context, creds *storage.Credentials) error {
	if creds == nil {
		return fmt.Errorf("credentials are nil")
	}
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		if err := bucket.Put([]byte(storage.KeyAuthToken), []byte(creds.AccessToken)); err != nil {
			return fmt.Errorf("failed to save token: %w", err)
		}

		if creds.User == nil {
			return bucket.Delete([]byte(storage.KeyUser))
		}

		data, err := json.Marshal(creds.User)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		if err := bucket.Put([]byte(storage.KeyUser), data); err != nil {
			return fmt.Errorf("failed to save user: %w", err)
		}

		return nil
	})
}

// GetCredentials retrieves stored credentials. A corrupt user snapshot is
// tolerated: the token is returned with a nil user.
func (s *Storage) GetCredentials(ctx context.Context) (*storage.Credentials, error) {
	if s.db == nil {
		return nil, storage.ErrStorageClosed
	}

	var creds *storage.Credentials

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		token := bucket.Get([]byte(storage.KeyAuthToken))
		userData := bucket.Get([]byte(storage.KeyUser))
		if token == nil && userData == nil {
			return storage.ErrCredentialsNotFound
		}

		creds = &storage.Credentials{AccessToken: string(token)}

		if userData != nil {
			user := &api.User{}
			if err := json.Unmarshal(userData, user); err == nil {
				creds.User = user
			}
		}

		return nil
	})
	if err != nil {
		return nil, err
	}

	return creds, nil
}

// DeleteCredentials removes both keys. Deleting absent data is a no-op.
func (s *Storage) DeleteCredentials(ctx context.Context) error {
	if s.db == nil {
		return storage.ErrStorageClosed
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketCredentials)
		if bucket == nil {
			return fmt.Errorf("credentials bucket not found")
		}

		if err := bucket.Delete([]byte(storage.KeyAuthToken)); err != nil {
			return fmt.Errorf("failed to delete token: %w", err)
		}
		if err := bucket.Delete([]byte(storage.KeyUser)); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}

		return nil
	})
}
