package auth

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trackr-app/trackr/internal/client/session"
	"github.com/trackr-app/trackr/internal/client/storage"
	"github.com/trackr-app/trackr/pkg/api"
)

// mockClient implements Client for testing. Unset functions return
// zero-value successes so tests only wire what they exercise.
type mockClient struct {
	registerFn      func(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	loginFn         func(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	listPlaylistsFn func(ctx context.Context) ([]api.Playlist, error)

	listCalls    int
	createdLists []api.CreatePlaylistRequest
	createErr    error
}

func (m *mockClient) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	if m.registerFn != nil {
		return m.registerFn(ctx, req)
	}
	return &api.AuthResponse{}, nil
}

func (m *mockClient) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	if m.loginFn != nil {
		return m.loginFn(ctx, req)
	}
	return &api.AuthResponse{}, nil
}

func (m *mockClient) ListPlaylists(ctx context.Context) ([]api.Playlist, error) {
	m.listCalls++
	if m.listPlaylistsFn != nil {
		return m.listPlaylistsFn(ctx)
	}
	return nil, nil
}

func (m *mockClient) CreatePlaylist(ctx context.Context, req api.CreatePlaylistRequest) (*api.Playlist, error) {
	m.createdLists = append(m.createdLists, req)
	if m.createErr != nil {
		return nil, m.createErr
	}
	return &api.Playlist{ID: int64(len(m.createdLists)), Title: req.Title}, nil
}

func (m *mockClient) RequestPasswordReset(ctx context.Context, req api.PasswordResetRequest) (*api.PasswordResetResponse, error) {
	return &api.PasswordResetResponse{UserID: 1}, nil
}

func (m *mockClient) VerifyPasswordReset(ctx context.Context, req api.PasswordResetVerifyRequest) (*api.MessageResponse, error) {
	return &api.MessageResponse{Detail: "ok"}, nil
}

func (m *mockClient) ConfirmPasswordReset(ctx context.Context, req api.PasswordResetConfirmRequest) (*api.MessageResponse, error) {
	return &api.MessageResponse{Detail: "ok"}, nil
}

func (m *mockClient) RequestPasswordChange(ctx context.Context, req api.PasswordChangeCodeRequest) (*api.MessageResponse, error) {
	return &api.MessageResponse{Detail: "ok"}, nil
}

func (m *mockClient) ChangePassword(ctx context.Context, req api.PasswordChangeRequest) (*api.MessageResponse, error) {
	return &api.MessageResponse{Detail: "ok"}, nil
}

// memStorage is an in-memory CredentialStorage for auth tests.
type memStorage struct {
	creds *storage.Credentials
}

func (m *memStorage) SaveCredentials(ctx context.Context, creds *storage.Credentials) error {
	copied := *creds
	if creds.User != nil {
		user := *creds.User
		copied.User = &user
	}
	m.creds = &copied
	return nil
}

func (m *memStorage) GetCredentials(ctx context.Context) (*storage.Credentials, error) {
	if m.creds == nil {
		return nil, storage.ErrCredentialsNotFound
	}
	copied := *m.creds
	return &copied, nil
}

func (m *memStorage) DeleteCredentials(ctx context.Context) error {
	m.creds = nil
	return nil
}

func (m *memStorage) Close() error { return nil }

type notification struct {
	authed bool
	user   *api.User
}

// testService builds a service over fresh session state and records
// every listener notification.
func testService(client *mockClient, store storage.CredentialStorage) (*Service, *session.Manager, *[]notification) {
	sess := session.NewManager(store, nil)
	registry := session.NewRegistry(nil)
	svc := NewService(client, sess, registry, nil)

	var notes []notification
	registry.Subscribe(func(authed bool, user *api.User) {
		notes = append(notes, notification{authed: authed, user: user})
	})

	return svc, sess, &notes
}

func authOK(username string) *api.AuthResponse {
	return &api.AuthResponse{
		Access:   "access-token-123",
		UserID:   7,
		Username: username,
		Email:    username + "@example.com",
	}
}

func TestSignIn_Success(t *testing.T) {
	client := &mockClient{
		loginFn: func(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
			assert.Equal(t, "alice", req.Username)
			return authOK("alice"), nil
		},
		listPlaylistsFn: func(ctx context.Context) ([]api.Playlist, error) {
			return []api.Playlist{{ID: 1, Title: "Watchlist"}}, nil
		},
	}
	svc, sess, notes := testService(client, &memStorage{})

	resp, err := svc.SignIn(context.Background(), "alice", "password1")

	require.NoError(t, err)
	assert.Equal(t, "access-token-123", resp.Access)
	assert.Equal(t, "access-token-123", sess.Token())
	require.NotNil(t, sess.User())
	assert.Equal(t, "alice", sess.User().Username)

	require.Len(t, *notes, 1)
	assert.True(t, (*notes)[0].authed)
	assert.Equal(t, "alice", (*notes)[0].user.Username)
}

func TestSignIn_BootstrapsDefaultPlaylists_WhenZero(t *testing.T) {
	client := &mockClient{
		loginFn: func(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
			return authOK("alice"), nil
		},
		listPlaylistsFn: func(ctx context.Context) ([]api.Playlist, error) {
			return []api.Playlist{}, nil
		},
	}
	svc, _, _ := testService(client, &memStorage{})

	_, err := svc.SignIn(context.Background(), "alice", "password1")

	require.NoError(t, err)
	require.Len(t, client.createdLists, 3)
	assert.Equal(t, "Watchlist", client.createdLists[0].Title)
	assert.Equal(t, "Favorites", client.createdLists[1].Title)
	assert.Equal(t, "Watched", client.createdLists[2].Title)
}

func TestSignIn_NoBootstrap_WhenPlaylistsExist(t *testing.T) {
	client := &mockClient{
		loginFn: func(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
			return authOK("alice"), nil
		},
		listPlaylistsFn: func(ctx context.Context) ([]api.Playlist, error) {
			return []api.Playlist{{ID: 9, Title: "Mine"}}, nil
		},
	}
	svc, _, _ := testService(client, &memStorage{})

	_, err := svc.SignIn(context.Background(), "alice", "password1")

	require.NoError(t, err)
	assert.Empty(t, client.createdLists)
}

// A returning user who deleted every playlist gets the defaults
// recreated on next login. The trigger is the zero count, deliberately
// not a new-account flag.
func TestSignIn_BootstrapFiresAgain_AfterUserDeletedEverything(t *testing.T) {
	empty := true
	client := &mockClient{
		loginFn: func(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
			return authOK("alice"), nil
		},
	}
	client.listPlaylistsFn = func(ctx context.Context) ([]api.Playlist, error) {
		if empty {
			return nil, nil
		}
		return []api.Playlist{{ID: 1}}, nil
	}
	svc, _, _ := testService(client, &memStorage{})
	ctx := context.Background()

	_, err := svc.SignIn(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Len(t, client.createdLists, 3)

	// Second login with playlists present: no new creations.
	empty = false
	_, err = svc.SignIn(ctx, "alice", "password1")
	require.NoError(t, err)
	assert.Len(t, client.createdLists, 3)
}

func TestSignIn_BootstrapFailure_DoesNotFailSignIn(t *testing.T) {
	client := &mockClient{
		loginFn: func(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
			return authOK("alice"), nil
		},
		listPlaylistsFn: func(ctx context.Context) ([]api.Playlist, error) {
			return nil, nil
		},
		createErr: errors.New("boom"),
	}
	svc, sess, notes := testService(client, &memStorage{})

	_, err := svc.SignIn(context.Background(), "alice", "password1")

	require.NoError(t, err)
	assert.NotEmpty(t, sess.Token())
	require.Len(t, *notes, 1)
	assert.True(t, (*notes)[0].authed)
}

func TestSignIn_MissingToken_Rejects(t *testing.T) {
	client := &mockClient{
		loginFn: func(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
			// 200 with no access field.
			return &api.AuthResponse{UserID: 7, Username: "alice"}, nil
		},
	}
	svc, sess, notes := testService(client, &memStorage{})

	_, err := svc.SignIn(context.Background(), "alice", "password1")

	require.ErrorIs(t, err, ErrNoToken)
	// Session unchanged from before the call.
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
	assert.Empty(t, *notes)
	assert.Zero(t, client.listCalls)
}

func TestSignIn_ErrorClassification(t *testing.T) {
	tests := []struct {
		name     string
		loginErr error
		wantErr  error
	}{
		{
			name:     "401 means invalid credentials",
			loginErr: api.NewHTTPError(http.StatusUnauthorized, []byte(`{"detail": "nope"}`)),
			wantErr:  ErrInvalidCredentials,
		},
		{
			name:     "404 means unknown user",
			loginErr: api.NewHTTPError(http.StatusNotFound, []byte(`{"detail": "missing"}`)),
			wantErr:  ErrUserNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &mockClient{
				loginFn: func(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
					return nil, tt.loginErr
				},
			}
			svc, sess, _ := testService(client, &memStorage{})

			_, err := svc.SignIn(context.Background(), "alice", "password1")

			require.ErrorIs(t, err, tt.wantErr)
			assert.Empty(t, sess.Token())
		})
	}
}

func TestSignIn_OtherBackendError_PassesThrough(t *testing.T) {
	backendErr := api.NewHTTPError(http.StatusBadRequest, []byte(`{"username": ["This field is required."]}`))
	client := &mockClient{
		loginFn: func(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
			return nil, backendErr
		},
	}
	svc, _, _ := testService(client, &memStorage{})

	_, err := svc.SignIn(context.Background(), "alice", "password1")

	var apiErr *api.Error
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "username: This field is required.", apiErr.FormattedMessage())
}

func TestSignUp_SetsSessionAndNotifies(t *testing.T) {
	client := &mockClient{
		registerFn: func(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
			assert.Equal(t, "alice", req.Username)
			assert.Equal(t, "alice@example.com", req.Email)
			return authOK("alice"), nil
		},
	}
	svc, sess, notes := testService(client, &memStorage{})

	resp, err := svc.SignUp(context.Background(), "alice", "alice@example.com", "password1")

	require.NoError(t, err)
	assert.Equal(t, "access-token-123", resp.Access)
	assert.Equal(t, "access-token-123", sess.Token())

	require.Len(t, *notes, 1)
	assert.True(t, (*notes)[0].authed)

	// Sign-up never creates default playlists.
	assert.Empty(t, client.createdLists)
	assert.Zero(t, client.listCalls)
}

func TestSignUp_InvalidInput(t *testing.T) {
	svc, _, _ := testService(&mockClient{}, &memStorage{})
	ctx := context.Background()

	_, err := svc.SignUp(ctx, "al", "alice@example.com", "password1")
	assert.Error(t, err)

	_, err = svc.SignUp(ctx, "alice", "not-an-email", "password1")
	assert.Error(t, err)

	_, err = svc.SignUp(ctx, "alice", "alice@example.com", "short")
	assert.Error(t, err)
}

func TestValidateToken_Success_Idempotent(t *testing.T) {
	client := &mockClient{
		listPlaylistsFn: func(ctx context.Context) ([]api.Playlist, error) {
			return []api.Playlist{{ID: 1}}, nil
		},
	}
	svc, sess, notes := testService(client, &memStorage{})
	ctx := context.Background()

	sess.SetToken(ctx, "abc123")
	sess.SetUser(ctx, &api.User{ID: 1, Username: "alice"})

	assert.True(t, svc.ValidateToken(ctx))
	assert.True(t, svc.ValidateToken(ctx))

	// Two probes, two authenticated notifications, no other side effects.
	assert.Equal(t, 2, client.listCalls)
	require.Len(t, *notes, 2)
	for _, n := range *notes {
		assert.True(t, n.authed)
		assert.Equal(t, "alice", n.user.Username)
	}
	assert.Equal(t, "abc123", sess.Token())
}

func TestValidateToken_Unauthorized_ClearsEverything(t *testing.T) {
	client := &mockClient{
		listPlaylistsFn: func(ctx context.Context) ([]api.Playlist, error) {
			return nil, api.NewHTTPError(http.StatusUnauthorized, []byte(`{"detail": "Invalid token."}`))
		},
	}
	store := &memStorage{}
	svc, sess, notes := testService(client, store)
	ctx := context.Background()

	sess.SetToken(ctx, "stale")
	sess.SetUser(ctx, &api.User{ID: 1, Username: "alice"})

	assert.False(t, svc.ValidateToken(ctx))

	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
	assert.Nil(t, store.creds)

	require.NotEmpty(t, *notes)
	last := (*notes)[len(*notes)-1]
	assert.False(t, last.authed)
	assert.Nil(t, last.user)
}

func TestValidateToken_Forbidden_AlsoClears(t *testing.T) {
	client := &mockClient{
		listPlaylistsFn: func(ctx context.Context) ([]api.Playlist, error) {
			return nil, api.NewHTTPError(http.StatusForbidden, nil)
		},
	}
	svc, sess, _ := testService(client, &memStorage{})
	ctx := context.Background()

	sess.SetToken(ctx, "stale")
	sess.SetUser(ctx, &api.User{ID: 1})

	assert.False(t, svc.ValidateToken(ctx))
	assert.Empty(t, sess.Token())
}

func TestValidateToken_TransientFailure_KeepsCredentials(t *testing.T) {
	client := &mockClient{
		listPlaylistsFn: func(ctx context.Context) ([]api.Playlist, error) {
			return nil, api.NewTimeoutError()
		},
	}
	store := &memStorage{}
	svc, sess, notes := testService(client, store)
	ctx := context.Background()

	sess.SetToken(ctx, "abc123")
	sess.SetUser(ctx, &api.User{ID: 1, Username: "alice"})

	assert.False(t, svc.ValidateToken(ctx))

	// Credentials survive, but the UI still sees a logged-out state.
	assert.Equal(t, "abc123", sess.Token())
	require.NotNil(t, store.creds)
	assert.Equal(t, "abc123", store.creds.AccessToken)

	require.Len(t, *notes, 1)
	assert.False(t, (*notes)[0].authed)
	assert.Nil(t, (*notes)[0].user)
}

func TestValidateToken_MissingCredentials(t *testing.T) {
	client := &mockClient{}
	svc, _, notes := testService(client, &memStorage{})

	assert.False(t, svc.ValidateToken(context.Background()))

	// No probe issued.
	assert.Zero(t, client.listCalls)
	require.Len(t, *notes, 1)
	assert.False(t, (*notes)[0].authed)
}

func TestSignOut_ClearsAndNotifies(t *testing.T) {
	client := &mockClient{}
	store := &memStorage{}
	svc, sess, notes := testService(client, store)
	ctx := context.Background()

	sess.SetToken(ctx, "abc123")
	sess.SetUser(ctx, &api.User{ID: 1, Username: "alice"})

	svc.SignOut(ctx)

	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
	assert.Nil(t, store.creds)

	require.Len(t, *notes, 1)
	assert.False(t, (*notes)[0].authed)
	assert.Nil(t, (*notes)[0].user)
}

func TestHandleUnauthorized_FullClear(t *testing.T) {
	store := &memStorage{}
	svc, sess, notes := testService(&mockClient{}, store)
	ctx := context.Background()

	sess.SetToken(ctx, "abc123")
	sess.SetUser(ctx, &api.User{ID: 1})

	svc.HandleUnauthorized(ctx)

	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
	assert.Nil(t, store.creds)
	require.Len(t, *notes, 1)
	assert.False(t, (*notes)[0].authed)
}

func TestInitialize_RestoresPersistedSession(t *testing.T) {
	// Round trip: credentials persisted by a previous process are
	// restored and validated on cold start.
	store := &memStorage{
		creds: &storage.Credentials{
			AccessToken: "abc123",
			User:        &api.User{ID: 1, Username: "x", Email: "x@x.com"},
		},
	}
	client := &mockClient{
		listPlaylistsFn: func(ctx context.Context) ([]api.Playlist, error) {
			return []api.Playlist{{ID: 1}}, nil
		},
	}
	svc, sess, notes := testService(client, store)

	ok := svc.Initialize(context.Background())

	assert.True(t, ok)
	assert.Equal(t, "abc123", sess.Token())
	require.NotNil(t, sess.User())
	assert.Equal(t, "x", sess.User().Username)

	require.Len(t, *notes, 1)
	assert.True(t, (*notes)[0].authed)
}

func TestInitialize_NothingPersisted(t *testing.T) {
	client := &mockClient{}
	svc, _, notes := testService(client, &memStorage{})

	ok := svc.Initialize(context.Background())

	assert.False(t, ok)
	assert.Zero(t, client.listCalls)
	require.Len(t, *notes, 1)
	assert.False(t, (*notes)[0].authed)
	assert.Nil(t, (*notes)[0].user)
}

func TestInitialize_StaleUserWithoutToken_Cleared(t *testing.T) {
	// Persisted record with a user but no token is inconsistent leftover
	// state and must not surface as a logged-in session.
	store := &memStorage{
		creds: &storage.Credentials{
			AccessToken: "",
			User:        &api.User{ID: 1, Username: "ghost"},
		},
	}
	client := &mockClient{}
	svc, sess, _ := testService(client, store)

	ok := svc.Initialize(context.Background())

	assert.False(t, ok)
	assert.Nil(t, sess.User())
	assert.Zero(t, client.listCalls)
}

func TestPasswordFlows_NoSessionMutation(t *testing.T) {
	svc, sess, notes := testService(&mockClient{}, &memStorage{})
	ctx := context.Background()

	_, err := svc.RequestPasswordReset(ctx, "alice@example.com")
	require.NoError(t, err)

	_, err = svc.VerifyPasswordReset(ctx, 1, "123456")
	require.NoError(t, err)

	_, err = svc.ConfirmPasswordReset(ctx, 1, "newpassword1")
	require.NoError(t, err)

	_, err = svc.RequestPasswordChange(ctx, "alice@example.com")
	require.NoError(t, err)

	_, err = svc.ChangePassword(ctx, "123456", "oldpassword1", "newpassword1")
	require.NoError(t, err)

	// The whole flow leaves the session and listeners untouched.
	assert.Empty(t, sess.Token())
	assert.Nil(t, sess.User())
	assert.Empty(t, *notes)
}

func TestPasswordFlows_Validation(t *testing.T) {
	svc, _, _ := testService(&mockClient{}, &memStorage{})
	ctx := context.Background()

	_, err := svc.RequestPasswordReset(ctx, "bad-email")
	assert.Error(t, err)

	_, err = svc.VerifyPasswordReset(ctx, 1, "")
	assert.Error(t, err)

	_, err = svc.ConfirmPasswordReset(ctx, 1, "short")
	assert.Error(t, err)

	_, err = svc.ChangePassword(ctx, "", "old", "newpassword1")
	assert.Error(t, err)
}
