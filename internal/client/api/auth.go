package api

import (
	"context"
	"net/http"

	"github.com/trackr-app/trackr/pkg/api"
)

// Register creates a new account.
func (c *Client) Register(ctx context.Context, req api.RegisterRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/register/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Login authenticates with username and password.
func (c *Client) Login(ctx context.Context, req api.LoginRequest) (*api.AuthResponse, error) {
	var resp api.AuthResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/login/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestPasswordReset starts the unauthenticated reset flow.
func (c *Client) RequestPasswordReset(ctx context.Context, req api.PasswordResetRequest) (*api.PasswordResetResponse, error) {
	var resp api.PasswordResetResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/password-reset/request/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// VerifyPasswordReset checks the emailed reset code.
func (c *Client) VerifyPasswordReset(ctx context.Context, req api.PasswordResetVerifyRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/password-reset/verify/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ConfirmPasswordReset sets the new password after verification.
func (c *Client) ConfirmPasswordReset(ctx context.Context, req api.PasswordResetConfirmRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/password-reset/confirm/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// RequestPasswordChange requests a change code for the logged-in user.
func (c *Client) RequestPasswordChange(ctx context.Context, req api.PasswordChangeCodeRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/change-password/request/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// ChangePassword performs the authenticated password change. The session
// token is not rotated; callers sign out and back in afterwards.
func (c *Client) ChangePassword(ctx context.Context, req api.PasswordChangeRequest) (*api.MessageResponse, error) {
	var resp api.MessageResponse
	if err := c.Do(ctx, http.MethodPost, "/auth/change-password/", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}
