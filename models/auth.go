package models

import "time"

// Google handshake result kinds. Anything else arriving on the callback is
// ignored so the handshake keeps waiting on its other signal paths.
const (
	GoogleAuthSuccess = "GOOGLE_AUTH_SUCCESS"
	GoogleAuthError   = "GOOGLE_AUTH_ERROR"
)

// GoogleAuthResult is the completion signal of a Google sign-in handshake.
// It arrives either directly on the callback route or through the shared
// result store that the poll path watches.
type GoogleAuthResult struct {
	Type      string    `json:"type"`
	User      AuthUser  `json:"user,omitempty"`
	Token     string    `json:"token,omitempty"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Recognized reports whether the result carries a known type. Unrecognized
// payloads are dropped without resolving the handshake.
func (r GoogleAuthResult) Recognized() bool {
	return r.Type == GoogleAuthSuccess || r.Type == GoogleAuthError
}

// Fresh reports whether the result was produced within the given window of now.
// Stale store entries are purged instead of honored.
func (r GoogleAuthResult) Fresh(now time.Time, window time.Duration) bool {
	age := now.Sub(r.Timestamp)
	return age >= 0 && age <= window
}

// LoginRequest is the password sign-in payload.
type LoginRequest struct {
	Email      string `json:"email" binding:"required"`
	Password   string `json:"password" binding:"required"`
	RememberMe bool   `json:"rememberMe"`
}

// RegisterRequest is the account creation payload.
type RegisterRequest struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// VerifyRequest carries the email verification code.
type VerifyRequest struct {
	Email string `json:"email" binding:"required"`
	Code  string `json:"code" binding:"required"`
}

// ResetPasswordRequest carries a new password for a reset token.
type ResetPasswordRequest struct {
	Password string `json:"password" binding:"required"`
}
