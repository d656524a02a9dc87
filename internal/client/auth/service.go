package auth

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/trackr-app/trackr/internal/client/session"
	"github.com/trackr-app/trackr/internal/validation"
	"github.com/trackr-app/trackr/pkg/api"
)

// Client is the slice of the API client the auth service depends on.
// ListPlaylists doubles as the token liveness probe; CreatePlaylist is
// used by the first-login bootstrap.
type Client interface {
	Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error)
	Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error)
	ListPlaylists(ctx context.Context) ([]api.Playlist, error)
	CreatePlaylist(ctx context.Context, req api.CreatePlaylistRequest) (*api.Playlist, error)
	RequestPasswordReset(ctx context.Context, req api.PasswordResetRequest) (*api.PasswordResetResponse, error)
	VerifyPasswordReset(ctx context.Context, req api.PasswordResetVerifyRequest) (*api.MessageResponse, error)
	ConfirmPasswordReset(ctx context.Context, req api.PasswordResetConfirmRequest) (*api.MessageResponse, error)
	RequestPasswordChange(ctx context.Context, req api.PasswordChangeCodeRequest) (*api.MessageResponse, error)
	ChangePassword(ctx context.Context, req api.PasswordChangeRequest) (*api.MessageResponse, error)
}

// Sentinel errors surfaced by SignIn.
var (
	// ErrInvalidCredentials maps HTTP 401 on login.
	ErrInvalidCredentials = errors.New("invalid username or password")
	// ErrUserNotFound maps HTTP 404 on login.
	ErrUserNotFound = errors.New("user does not exist")
	// ErrNoToken is returned when a successful login response carries no
	// access token. The session is left untouched.
	ErrNoToken = errors.New("no token received from server")
)

// defaultPlaylists are created for an account found with zero playlists
// at sign-in. The trigger is the zero count, not account age: a returning
// user who deleted every playlist gets these recreated on next login.
var defaultPlaylists = []api.CreatePlaylistRequest{
	{Title: "Watchlist", Description: "Movies and shows you plan to watch"},
	{Title: "Favorites", Description: "Your all-time favorites"},
	{Title: "Watched", Description: "Everything you have finished"},
}

// Service is the session state machine. It owns all session writes and
// is the only component that notifies listeners of state transitions.
// The derived states are: unknown (before Initialize), authenticated
// (token and user present, last probe succeeded), unauthenticated
// (everything else).
type Service struct {
	api       Client
	session   *session.Manager
	listeners *session.Registry
	logger    *slog.Logger
}

// NewService creates the auth service.
func NewService(apiClient Client, sess *session.Manager, listeners *session.Registry, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		api:       apiClient,
		session:   sess,
		listeners: listeners,
		logger:    logger,
	}
}

// Subscribe registers a listener for authentication state changes.
func (s *Service) Subscribe(fn session.Listener) session.Subscription {
	return s.listeners.Subscribe(fn)
}

// CurrentUser returns the session's user snapshot.
func (s *Service) CurrentUser() *api.User {
	return s.session.User()
}

// Token returns the session's access token.
func (s *Service) Token() string {
	return s.session.Token()
}

// Initialize restores persisted credentials and probes them. It must run
// once at process start before any authenticated UI is trusted; running
// it again repeats the same steps (including the probe).
func (s *Service) Initialize(ctx context.Context) bool {
	// Stale state: a user without a token is inconsistent leftover data.
	if s.session.User() != nil && s.session.Token() == "" {
		s.session.SetUser(ctx, nil)
	}

	if err := s.session.Restore(ctx); err != nil {
		s.logger.Warn("failed to restore persisted credentials", "error", err)
	}

	// The persisted record itself may be inconsistent.
	if s.session.User() != nil && s.session.Token() == "" {
		s.session.SetUser(ctx, nil)
	}

	if s.session.Token() != "" && s.session.User() != nil {
		return s.ValidateToken(ctx)
	}

	s.listeners.Notify(false, nil)
	return false
}

// ValidateToken probes the backend with a cheap authenticated read.
// 401/403 means the credentials are definitely dead and triggers a full
// sign-out. Any other failure is treated as transient: the stored token
// survives, but listeners still see an unauthenticated state so the UI
// never shows a falsely-authenticated view.
func (s *Service) ValidateToken(ctx context.Context) bool {
	token := s.session.Token()
	user := s.session.User()
	if token == "" || user == nil {
		s.listeners.Notify(false, nil)
		return false
	}

	_, err := s.api.ListPlaylists(ctx)
	if err == nil {
		s.listeners.Notify(true, user)
		return true
	}

	var apiErr *api.Error
	if errors.As(err, &apiErr) &&
		(apiErr.IsStatus(http.StatusUnauthorized) || apiErr.IsStatus(http.StatusForbidden)) {
		s.logger.Info("stored token rejected by server, signing out")
		s.SignOut(ctx)
		return false
	}

	s.logger.Warn("token validation failed, keeping credentials", "error", err)
	s.listeners.Notify(false, nil)
	return false
}

// SignUp registers a new account. When the response carries a token the
// session is populated and listeners are notified. New accounts start
// empty: no default playlists are created here.
func (s *Service) SignUp(ctx context.Context, username, email, password string) (*api.AuthResponse, error) {
	if err := validation.ValidateUsername(username); err != nil {
		return nil, api.NewValidationError(err.Error())
	}
	if err := validation.ValidateEmail(email); err != nil {
		return nil, api.NewValidationError(err.Error())
	}
	if err := validation.ValidatePassword(password); err != nil {
		return nil, api.NewValidationError(err.Error())
	}

	resp, err := s.api.Register(ctx, api.RegisterRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
	if err != nil {
		return nil, err
	}

	if resp.Access != "" {
		user := userFromResponse(resp)
		s.session.SetToken(ctx, resp.Access)
		s.session.SetUser(ctx, user)
		s.listeners.Notify(true, user)
	}

	return resp, nil
}

// SignIn authenticates and populates the session. Ordering is fixed:
// session mutation, then the zero-playlist bootstrap attempt, then the
// authenticated notification. Listeners never observe the authenticated
// state before the bootstrap has at least been attempted.
func (s *Service) SignIn(ctx context.Context, username, password string) (*api.AuthResponse, error) {
	if username == "" {
		return nil, api.NewValidationError("username cannot be empty")
	}
	if password == "" {
		return nil, api.NewValidationError("password cannot be empty")
	}

	resp, err := s.api.Login(ctx, api.LoginRequest{Username: username, Password: password})
	if err != nil {
		var apiErr *api.Error
		if errors.As(err, &apiErr) {
			switch {
			case apiErr.IsStatus(http.StatusUnauthorized):
				return nil, ErrInvalidCredentials
			case apiErr.IsStatus(http.StatusNotFound):
				return nil, ErrUserNotFound
			}
		}
		return nil, err
	}

	if resp.Access == "" {
		return nil, ErrNoToken
	}

	user := userFromResponse(resp)
	s.session.SetToken(ctx, resp.Access)
	s.session.SetUser(ctx, user)

	s.bootstrapPlaylists(ctx)

	s.listeners.Notify(true, user)
	return resp, nil
}

// SignOut clears the session and persisted credentials, then notifies
// listeners. It never fails: persistence problems are logged inside the
// session manager and the clear proceeds regardless.
func (s *Service) SignOut(ctx context.Context) {
	s.session.Clear(ctx)
	s.listeners.Notify(false, nil)
}

// HandleUnauthorized is wired as the HTTP client's 401 hook: any request
// that comes back unauthorized clears the whole session.
func (s *Service) HandleUnauthorized(ctx context.Context) {
	s.session.Clear(ctx)
	s.listeners.Notify(false, nil)
}

// RequestPasswordReset starts the unauthenticated three-step reset flow.
// No session mutation happens anywhere in the flow; a completed reset
// does not log the user in.
func (s *Service) RequestPasswordReset(ctx context.Context, email string) (*api.PasswordResetResponse, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, api.NewValidationError(err.Error())
	}
	return s.api.RequestPasswordReset(ctx, api.PasswordResetRequest{Email: email})
}

// VerifyPasswordReset checks the emailed code.
func (s *Service) VerifyPasswordReset(ctx context.Context, userID int64, code string) (*api.MessageResponse, error) {
	if code == "" {
		return nil, api.NewValidationError("code cannot be empty")
	}
	return s.api.VerifyPasswordReset(ctx, api.PasswordResetVerifyRequest{UserID: userID, Code: code})
}

// ConfirmPasswordReset sets the new password once the code is verified.
func (s *Service) ConfirmPasswordReset(ctx context.Context, userID int64, newPassword string) (*api.MessageResponse, error) {
	if err := validation.ValidatePassword(newPassword); err != nil {
		return nil, api.NewValidationError(err.Error())
	}
	return s.api.ConfirmPasswordReset(ctx, api.PasswordResetConfirmRequest{UserID: userID, NewPassword: newPassword})
}

// RequestPasswordChange requests a change code for the logged-in user.
func (s *Service) RequestPasswordChange(ctx context.Context, email string) (*api.MessageResponse, error) {
	if err := validation.ValidateEmail(email); err != nil {
		return nil, api.NewValidationError(err.Error())
	}
	return s.api.RequestPasswordChange(ctx, api.PasswordChangeCodeRequest{Email: email})
}

// ChangePassword performs the authenticated password change. The token
// is not rotated; the caller is expected to sign out and back in as a
// separate, explicit step.
func (s *Service) ChangePassword(ctx context.Context, code, currentPassword, newPassword string) (*api.MessageResponse, error) {
	if code == "" {
		return nil, api.NewValidationError("code cannot be empty")
	}
	if err := validation.ValidatePassword(newPassword); err != nil {
		return nil, api.NewValidationError(err.Error())
	}
	return s.api.ChangePassword(ctx, api.PasswordChangeRequest{
		Code:            code,
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	})
}

// bootstrapPlaylists creates the default playlists for an account found
// with zero playlists. Best effort: every failure is logged and
// swallowed, and sign-in proceeds either way.
func (s *Service) bootstrapPlaylists(ctx context.Context) {
	playlists, err := s.api.ListPlaylists(ctx)
	if err != nil {
		s.logger.Warn("skipping default playlist check", "error", err)
		return
	}
	if len(playlists) > 0 {
		return
	}

	s.logger.Info("creating default playlists")
	for _, req := range defaultPlaylists {
		if _, err := s.api.CreatePlaylist(ctx, req); err != nil {
			s.logger.Warn("failed to create default playlist", "title", req.Title, "error", err)
		}
	}
}

func userFromResponse(resp *api.AuthResponse) *api.User {
	return &api.User{
		ID:       resp.UserID,
		Username: resp.Username,
		Email:    resp.Email,
	}
}
