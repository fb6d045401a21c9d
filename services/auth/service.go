package auth

import (
	"context"
	"fmt"
	"sync"
	"time"

	"auxin/models"
	"auxin/services/events"
	"auxin/upstream"
	"auxin/utils"

	"go.uber.org/zap"
)

// PurgeScheduler enqueues the backstop cleanup for a handshake.
type PurgeScheduler interface {
	SchedulePurge(state string, at time.Time) error
}

// DefaultAuthService implements Service against the upstream auth backend.
type DefaultAuthService struct {
	AuthAPI       *upstream.Client
	Store         *utils.SessionStore
	Results       *ResultStore
	Bus           *events.Bus
	Logger        *zap.Logger
	Purger        PurgeScheduler
	PortalBaseURL string

	Timeout      time.Duration
	PollInterval time.Duration

	mu      sync.Mutex
	pending map[string]*handshake
}

// NewDefaultAuthService wires the service and its pending-handshake table.
func NewDefaultAuthService(api *upstream.Client, store *utils.SessionStore, results *ResultStore, bus *events.Bus, logger *zap.Logger) *DefaultAuthService {
	return &DefaultAuthService{
		AuthAPI:      api,
		Store:        store,
		Results:      results,
		Bus:          bus,
		Logger:       logger,
		Timeout:      5 * time.Minute,
		PollInterval: time.Second,
		pending:      make(map[string]*handshake),
	}
}

// Login exchanges credentials upstream and stores the token under the scope
// the remember-me choice selects.
func (s *DefaultAuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	res, err := s.AuthAPI.Login(ctx, req.Email, req.Password)
	if err != nil {
		return nil, err
	}
	if err := s.Store.SetToken(ctx, res.User.ID, res.Token, req.RememberMe); err != nil {
		return nil, fmt.Errorf("sign-in succeeded but token storage failed: %w", err)
	}
	return &models.AuthResponse{User: res.User, Token: res.Token, Remembered: req.RememberMe}, nil
}

// Register creates an account upstream. New accounts start session-scoped;
// the user opts into remember-me on their next sign-in.
func (s *DefaultAuthService) Register(ctx context.Context, req models.RegisterRequest) (*models.AuthResponse, error) {
	res, err := s.AuthAPI.Register(ctx, req)
	if err != nil {
		return nil, err
	}
	if res.Token != "" && res.User.Valid() {
		if err := s.Store.SetToken(ctx, res.User.ID, res.Token, false); err != nil {
			return nil, fmt.Errorf("registration succeeded but token storage failed: %w", err)
		}
	}
	return &models.AuthResponse{User: res.User, Token: res.Token}, nil
}

// Verify confirms an email verification code upstream.
func (s *DefaultAuthService) Verify(ctx context.Context, req models.VerifyRequest) error {
	return s.AuthAPI.Verify(ctx, req)
}

// ForgotPassword requests a reset email.
func (s *DefaultAuthService) ForgotPassword(ctx context.Context, email string) error {
	return s.AuthAPI.ForgotPassword(ctx, email)
}

// ResetPassword sets a new password for a reset token.
func (s *DefaultAuthService) ResetPassword(ctx context.Context, resetToken, password string) error {
	return s.AuthAPI.ResetPassword(ctx, resetToken, password)
}

// EmployeeLogin signs in an employee; the token is kept under its own
// persistent-scope key, separate from the client token.
func (s *DefaultAuthService) EmployeeLogin(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	res, err := s.AuthAPI.EmployeeLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, res.User.ID, utils.KeyEmployeeToken, res.Token); err != nil {
		return nil, fmt.Errorf("employee sign-in succeeded but token storage failed: %w", err)
	}
	return &models.AuthResponse{User: res.User, Token: res.Token, Remembered: true}, nil
}

// AdminLogin signs in an admin account.
func (s *DefaultAuthService) AdminLogin(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	res, err := s.AuthAPI.AdminLogin(ctx, email, password)
	if err != nil {
		return nil, err
	}
	if err := s.Store.Set(ctx, res.User.ID, utils.KeyAdminToken, res.Token); err != nil {
		return nil, fmt.Errorf("admin sign-in succeeded but token storage failed: %w", err)
	}
	return &models.AuthResponse{User: res.User, Token: res.Token, Remembered: true}, nil
}

// Logout drops both token scopes plus the middleware's hash cache entry and
// announces the sign-out.
func (s *DefaultAuthService) Logout(ctx context.Context, userID string) error {
	if err := s.Store.ClearToken(ctx, userID); err != nil {
		return fmt.Errorf("failed to clear tokens: %w", err)
	}
	if err := s.Results.Client.Del(ctx, utils.AuthCachePrefix+userID).Err(); err != nil {
		s.Logger.Warn("failed to drop cached token hash", zap.Error(err))
	}
	s.Bus.Publish(events.AuthEvent{Kind: events.KindSignedOut, User: models.AuthUser{ID: userID}})
	return nil
}
