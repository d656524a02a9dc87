package storage

import (
	"context"

	"github.com/trackr-app/trackr/pkg/api"
)

// Logical keys under which credentials are persisted. Both backends use
// the same names so a host application can inspect or migrate the data.
const (
	KeyAuthToken = "trackr_auth_token"
	KeyUser      = "trackr_user"
)

// Credentials is the durable mirror of the in-memory session: the opaque
// access token plus the current-user snapshot. User may be nil when the
// persisted snapshot is missing or unreadable; a nil User with a token is
// still returned so the session layer can decide what to do with it.
type Credentials struct {
	AccessToken string
	User        *api.User
}

// CredentialStorage defines durable key/value persistence for the session.
// Reads are tolerant: a corrupt user snapshot degrades to a nil User
// rather than an error, and deleting absent data is not an error.
type CredentialStorage interface {
	// SaveCredentials stores the token and user snapshot together.
	SaveCredentials(ctx context.Context, creds *Credentials) error

	// GetCredentials retrieves stored credentials.
	// Returns ErrCredentialsNotFound if nothing is persisted.
	GetCredentials(ctx context.Context) (*Credentials, error)

	// DeleteCredentials removes both keys (sign-out).
	DeleteCredentials(ctx context.Context) error

	// Close releases the underlying storage.
	Close() error
}
