package upstream

import (
	"context"
	"net/http"
	"net/url"

	"auxin/models"
)

// LoginResult is the auth backend's response to a credential exchange.
type LoginResult struct {
	User  models.AuthUser `json:"user"`
	Token string          `json:"token"`
}

// Login exchanges credentials for a user and bearer token.
func (c *Client) Login(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Register creates an account. The backend sends the verification email.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) (*LoginResult, error) {
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/register", "", req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Verify confirms an email verification code.
func (c *Client) Verify(ctx context.Context, req models.VerifyRequest) error {
	return c.do(ctx, http.MethodPost, "/api/auth/verify", "", req, nil)
}

// ForgotPassword asks the backend to mail a reset link.
func (c *Client) ForgotPassword(ctx context.Context, email string) error {
	body := map[string]string{"email": email}
	return c.do(ctx, http.MethodPost, "/api/auth/forgot-password", "", body, nil)
}

// ResetPassword sets a new password for a reset token.
func (c *Client) ResetPassword(ctx context.Context, resetToken, password string) error {
	body := map[string]string{"password": password}
	return c.do(ctx, http.MethodPost, "/api/auth/reset-password/"+url.PathEscape(resetToken), "", body, nil)
}

// EmployeeLogin signs in an employee account.
func (c *Client) EmployeeLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/employee/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// AdminLogin signs in an admin account.
func (c *Client) AdminLogin(ctx context.Context, email, password string) (*LoginResult, error) {
	body := map[string]string{"email": email, "password": password}
	var out LoginResult
	if err := c.do(ctx, http.MethodPost, "/api/auth/admin/login", "", body, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// GoogleStartURL builds the upstream OAuth entry URL the popup is sent to.
// The state ties the provider redirect back to a waiting handshake and the
// redirect URI points the provider at the portal's callback route.
func (c *Client) GoogleStartURL(state, redirectURI string) string {
	q := url.Values{}
	q.Set("state", state)
	q.Set("redirect_uri", redirectURI)
	return c.baseURL + "/auth/google?" + q.Encode()
}
