// Package auth owns the portal's sign-in flows: password and role logins
// delegated to the auth backend, the Google popup handshake, and the
// remember-me token lifecycle in the session store.
package auth

import (
	"context"
	"errors"

	"auxin/models"
)

var (
	// ErrHandshakeNotFound marks an unknown or already resolved handshake.
	ErrHandshakeNotFound = errors.New("auth handshake not found")
	// ErrHandshakeTimeout marks a handshake that no signal path resolved
	// before the overall deadline.
	ErrHandshakeTimeout = errors.New("auth handshake timed out")
	// ErrUnrecognizedResult marks a callback payload without a known type.
	// The handshake keeps waiting on its other signal paths.
	ErrUnrecognizedResult = errors.New("unrecognized auth result payload")
)

// GoogleStart describes a freshly opened handshake: the state that ties the
// provider redirect back to it and the URL the popup should load.
type GoogleStart struct {
	State   string `json:"state"`
	AuthURL string `json:"authUrl"`
}

// HandshakeStatus is an advisory snapshot of an in-flight handshake.
type HandshakeStatus struct {
	Pending     bool `json:"pending"`
	PopupClosed bool `json:"popupClosed"`
}

// Service drives every sign-in path the portal offers.
type Service interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error)
	Verify(ctx context.Context, req models.VerifyRequest) error
	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, resetToken, password string) error
	EmployeeLogin(ctx context.Context, email, password string) (*models.AuthResponse, error)
	AdminLogin(ctx context.Context, email, password string) (*models.AuthResponse, error)
	Logout(ctx context.Context, userID string) error

	GoogleStart(ctx context.Context) (*GoogleStart, error)
	GoogleDeliver(ctx context.Context, state string, result models.GoogleAuthResult) error
	GoogleWait(ctx context.Context, state string) (*models.AuthResponse, error)
	GooglePopupClosed(state string) error
	GoogleStatus(state string) (*HandshakeStatus, error)
}
