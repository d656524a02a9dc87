package api

// User represents the authenticated user snapshot held in the session
// and persisted under the trackr_user key.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// RegisterRequest represents a request to create a new account.
type RegisterRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

// LoginRequest represents an authentication request.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AuthResponse is returned by both /auth/register/ and /auth/login/.
// Access is the opaque token attached to subsequent requests as
// "Authorization: Token <access>". A 200 response without Access is
// treated as a failed sign-in by the auth service.
type AuthResponse struct {
	Access   string `json:"access"`
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// PasswordResetRequest starts the unauthenticated reset flow.
type PasswordResetRequest struct {
	Email string `json:"email"`
}

// PasswordResetResponse carries the user id the follow-up steps need.
type PasswordResetResponse struct {
	UserID int64  `json:"user_id"`
	Detail string `json:"detail,omitempty"`
}

// PasswordResetVerifyRequest verifies the emailed code.
type PasswordResetVerifyRequest struct {
	UserID int64  `json:"user_id"`
	Code   string `json:"code"`
}

// PasswordResetConfirmRequest sets the new password once the code
// has been verified.
type PasswordResetConfirmRequest struct {
	UserID      int64  `json:"user_id"`
	NewPassword string `json:"new_password"`
}

// PasswordChangeCodeRequest requests a change code for a logged-in user.
type PasswordChangeCodeRequest struct {
	Email string `json:"email"`
}

// PasswordChangeRequest performs the authenticated password change.
type PasswordChangeRequest struct {
	Code            string `json:"code"`
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

// MessageResponse is the generic {detail: ...} acknowledgement several
// password-flow endpoints return.
type MessageResponse struct {
	Detail string `json:"detail,omitempty"`
	Error  string `json:"error,omitempty"`
}
