package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

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
	if s.closed {
		return storage.ErrStorageClosed
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if err := upsert(ctx, tx, storage.KeyAuthToken, creds.AccessToken); err != nil {
		return err
	}

	if creds.User == nil {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM credentials WHERE key = ?`, storage.KeyUser); err != nil {
			return fmt.Errorf("failed to delete user: %w", err)
		}
	} else {
		data, err := json.Marshal(creds.User)
		if err != nil {
			return fmt.Errorf("failed to marshal user: %w", err)
		}
		if err := upsert(ctx, tx, storage.KeyUser, string(data)); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// GetCredentials retrieves stored credentials. A corrupt user snapshot is
// tolerated: the token is returned with a nil user.
func (s *Storage) GetCredentials(ctx context.Context) (*storage.Credentials, error) {
	if s.closed {
		return nil, storage.ErrStorageClosed
	}

	token, tokenFound, err := s.getValue(ctx, storage.KeyAuthToken)
	if err != nil {
		return nil, err
	}
	userData, userFound, err := s.getValue(ctx, storage.KeyUser)
	if err != nil {
		return nil, err
	}

	if !tokenFound && !userFound {
		return nil, storage.ErrCredentialsNotFound
	}

	creds := &storage.Credentials{AccessToken: token}
	if userFound {
		user := &api.User{}
		if err := json.Unmarshal([]byte(userData), user); err == nil {
			creds.User = user
		}
	}

	return creds, nil
}

// DeleteCredentials removes both keys. Deleting absent data is a no-op.
func (s *Storage) DeleteCredentials(ctx context.Context) error {
	if s.closed {
		return storage.ErrStorageClosed
	}

	_, err := s.db.ExecContext(ctx,
		`DELETE FROM credentials WHERE key IN (?, ?)`,
		storage.KeyAuthToken, storage.KeyUser,
	)
	if err != nil {
		return fmt.Errorf("failed to delete credentials: %w", err)
	}
	return nil
}

func (s *Storage) getValue(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRowContext(ctx,
		`SELECT value FROM credentials WHERE key = ?`, key,
	).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return value, true, nil
}

func upsert(ctx context.Context, tx *sql.Tx, key, value string) error {
	_, err := tx.ExecContext(ctx, `
		INSERT INTO credentials (key, value, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, value, time.Now().UTC())
	if err != nil {
		return fmt.Errorf("failed to upsert %s: %w", key, err)
	}
	return nil
}
