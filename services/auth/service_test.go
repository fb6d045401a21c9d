package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auxin/models"
	"auxin/services/events"
	"auxin/upstream"
	"auxin/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newAuthBackend(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	respond := func(w http.ResponseWriter, token string) {
		json.NewEncoder(w).Encode(upstream.LoginResult{
			User:  models.AuthUser{ID: "u1", Email: "u1@example.com", Name: "U One"},
			Token: token,
		})
	}
	mux.HandleFunc("/api/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var body map[string]string
		json.NewDecoder(r.Body).Decode(&body)
		if body["password"] != "correct" {
			w.WriteHeader(http.StatusUnauthorized)
			json.NewEncoder(w).Encode(map[string]string{"message": "invalid credentials"})
			return
		}
		respond(w, "tok-login")
	})
	mux.HandleFunc("/api/auth/register", func(w http.ResponseWriter, r *http.Request) {
		respond(w, "tok-register")
	})
	mux.HandleFunc("/api/auth/employee/login", func(w http.ResponseWriter, r *http.Request) {
		respond(w, "tok-employee")
	})
	mux.HandleFunc("/api/auth/admin/login", func(w http.ResponseWriter, r *http.Request) {
		respond(w, "tok-admin")
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func newAuthService(t *testing.T) (*DefaultAuthService, *miniredis.Miniredis) {
	t.Helper()

	backend := newAuthBackend(t)
	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })

	svc := NewDefaultAuthService(
		upstream.NewClient(backend.URL, upstream.WithLogger(zap.NewNop())),
		utils.NewSessionStore(client),
		&ResultStore{Client: client, Freshness: 10 * time.Second, RecordTTL: time.Minute},
		events.NewBus(),
		zap.NewNop(),
	)
	return svc, mr
}

func TestLoginStoresTokenPerRememberChoice(t *testing.T) {
	svc, mr := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Login(ctx, models.LoginRequest{Email: "u1@example.com", Password: "correct", RememberMe: true})
	require.NoError(t, err)
	assert.True(t, res.Remembered)

	token, remembered, err := svc.Store.Token(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "tok-login", token)
	assert.True(t, remembered)
	assert.True(t, mr.Exists(utils.PersistentPrefix+"u1:"+utils.KeyToken))

	// Signing in again without remember-me moves the token to the session
	// scope and clears the persistent copy.
	res, err = svc.Login(ctx, models.LoginRequest{Email: "u1@example.com", Password: "correct", RememberMe: false})
	require.NoError(t, err)
	assert.False(t, res.Remembered)

	_, remembered, err = svc.Store.Token(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, remembered)
	assert.False(t, mr.Exists(utils.PersistentPrefix+"u1:"+utils.KeyToken))
	assert.True(t, mr.Exists(utils.SessionPrefix+"u1:"+utils.KeyToken))
}

func TestLoginRejectedLeavesNoToken(t *testing.T) {
	svc, mr := newAuthService(t)

	_, err := svc.Login(context.Background(), models.LoginRequest{Email: "u1@example.com", Password: "wrong"})
	require.Error(t, err)
	assert.True(t, upstream.IsUnauthorized(err))
	assert.Empty(t, mr.Keys())
}

func TestRegisterStoresSessionScopedToken(t *testing.T) {
	svc, mr := newAuthService(t)
	ctx := context.Background()

	res, err := svc.Register(ctx, models.RegisterRequest{Email: "u1@example.com", Password: "pw", Name: "U One"})
	require.NoError(t, err)
	assert.Equal(t, "tok-register", res.Token)

	_, remembered, err := svc.Store.Token(ctx, "u1")
	require.NoError(t, err)
	assert.False(t, remembered)
	assert.True(t, mr.Exists(utils.SessionPrefix+"u1:"+utils.KeyToken))
}

func TestEmployeeAndAdminTokensLiveUnderOwnKeys(t *testing.T) {
	svc, mr := newAuthService(t)
	ctx := context.Background()

	_, err := svc.EmployeeLogin(ctx, "e@example.com", "pw")
	require.NoError(t, err)
	_, err = svc.AdminLogin(ctx, "a@example.com", "pw")
	require.NoError(t, err)

	assert.True(t, mr.Exists(utils.PersistentPrefix+"u1:"+utils.KeyEmployeeToken))
	assert.True(t, mr.Exists(utils.PersistentPrefix+"u1:"+utils.KeyAdminToken))
	// A staff sign-in never touches the client token.
	assert.False(t, mr.Exists(utils.PersistentPrefix+"u1:"+utils.KeyToken))
}

func TestLogoutClearsBothScopesAndAnnounces(t *testing.T) {
	svc, mr := newAuthService(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, models.LoginRequest{Email: "u1@example.com", Password: "correct", RememberMe: true})
	require.NoError(t, err)

	evCh, cancel := svc.Bus.Subscribe()
	defer cancel()

	require.NoError(t, svc.Logout(ctx, "u1"))
	assert.False(t, mr.Exists(utils.PersistentPrefix+"u1:"+utils.KeyToken))
	assert.False(t, mr.Exists(utils.SessionPrefix+"u1:"+utils.KeyToken))

	select {
	case ev := <-evCh:
		assert.Equal(t, events.KindSignedOut, ev.Kind)
		assert.Equal(t, "u1", ev.User.ID)
	case <-time.After(time.Second):
		t.Fatal("no sign-out event published")
	}
}
