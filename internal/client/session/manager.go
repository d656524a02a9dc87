package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/trackr-app/trackr/internal/client/storage"
	"github.com/trackr-app/trackr/pkg/api"
)

// Manager is the in-memory source of truth for the current token and
// user, mirrored to durable credential storage on every change. The auth
// service (and the HTTP client's unauthorized hook) are the only intended
// writers; everything else reads through Token/User.
type Manager struct {
	mu     sync.Mutex
	token  string
	user   *api.User
	store  storage.CredentialStorage
	logger *slog.Logger
}

// NewManager creates a session manager. store may be nil for hosts that
// opt out of persistence (the session is then memory-only).
func NewManager(store storage.CredentialStorage, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{store: store, logger: logger}
}

// SetToken sets the in-memory token and mirrors it to storage. An empty
// token clears the user as well, both in memory and in storage, before
// returning: there is never a window where the token is absent but a
// user remains.
func (m *Manager) SetToken(ctx context.Context, token string) {
	m.mu.Lock()
	m.token = token
	if token == "" {
		m.user = nil
	}
	user := m.user
	m.mu.Unlock()

	if m.store == nil {
		return
	}

	if token == "" {
		if err := m.store.DeleteCredentials(ctx); err != nil {
			m.logger.Warn("failed to clear persisted credentials", "error", err)
		}
		return
	}

	m.mirror(ctx, token, user)
}

// SetUser sets the in-memory user snapshot and mirrors it to storage.
// The token is not touched.
func (m *Manager) SetUser(ctx context.Context, user *api.User) {
	m.mu.Lock()
	m.user = user
	token := m.token
	m.mu.Unlock()

	if m.store == nil {
		return
	}
	m.mirror(ctx, token, user)
}

// Token returns the current token without any I/O.
func (m *Manager) Token() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.token
}

// User returns the current user snapshot without any I/O.
func (m *Manager) User() *api.User {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.user
}

// Clear drops the token and user from memory and storage. Storage
// failures are logged and swallowed so sign-out never fails.
func (m *Manager) Clear(ctx context.Context) {
	m.SetToken(ctx, "")
}

// Restore loads persisted credentials into memory. Missing credentials
// are not an error; the session is simply left empty.
func (m *Manager) Restore(ctx context.Context) error {
	if m.store == nil {
		return nil
	}

	creds, err := m.store.GetCredentials(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrCredentialsNotFound) {
			return nil
		}
		return err
	}

	m.mu.Lock()
	m.token = creds.AccessToken
	m.user = creds.User
	m.mu.Unlock()

	return nil
}

func (m *Manager) mirror(ctx context.Context, token string, user *api.User) {
	creds := &storage.Credentials{AccessToken: token, User: user}
	if err := m.store.SaveCredentials(ctx, creds); err != nil {
		m.logger.Warn("failed to persist credentials", "error", err)
	}
}
