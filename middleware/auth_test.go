package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"auxin/config"
	"auxin/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAuthRouter(t *testing.T) (*gin.Engine, *utils.SessionStore, *miniredis.Miniredis) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	config.AppConfig.JWTSecret = "test-secret"

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { client.Close() })
	utils.AuthClient = client

	store := utils.NewSessionStore(client)

	r := gin.New()
	r.GET("/protected", JWTAuthMiddleware(store), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userId": c.GetString("userID")})
	})
	return r, store, mr
}

func doRequest(r *gin.Engine, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestAuthMiddlewareAcceptsStoredToken(t *testing.T) {
	r, store, mr := newAuthRouter(t)

	token, err := utils.GenerateToken("u1", "u1@example.com", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.SetToken(context.Background(), "u1", token, true))

	w := doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "u1")

	// The hash is cached for the hot path.
	assert.True(t, mr.Exists(utils.AuthCachePrefix+"u1"))

	// Second request is served from the cache.
	w = doRequest(r, token)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestAuthMiddlewareRejectsSignedOutToken(t *testing.T) {
	r, store, _ := newAuthRouter(t)

	token, err := utils.GenerateToken("u1", "u1@example.com", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.SetToken(context.Background(), "u1", token, true))
	require.NoError(t, store.ClearToken(context.Background(), "u1"))

	w := doRequest(r, token)
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestAuthMiddlewareRejectsReplacedToken(t *testing.T) {
	r, store, _ := newAuthRouter(t)
	ctx := context.Background()

	oldToken, err := utils.GenerateToken("u1", "u1@example.com", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.SetToken(ctx, "u1", oldToken, true))

	// A fresh sign-in replaces the stored token; the old one must stop working.
	newToken, err := utils.GenerateToken("u1", "u1@example.com", 2*time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.SetToken(ctx, "u1", newToken, false))

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, oldToken).Code)
	assert.Equal(t, http.StatusOK, doRequest(r, newToken).Code)
}

func TestAuthMiddlewareHonorsRequestContext(t *testing.T) {
	r, store, _ := newAuthRouter(t)
	ctx := context.Background()

	token, err := utils.GenerateToken("u1", "u1@example.com", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.SetToken(ctx, "u1", token, true))

	// A request whose context is already cancelled must not be served: the
	// Redis lookups run under the request context.
	cancelled, cancel := context.WithCancel(ctx)
	cancel()
	req := httptest.NewRequest(http.MethodGet, "/protected", nil).WithContext(cancelled)
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.NotEqual(t, http.StatusOK, w.Code)

	// The same token is served normally on a live context.
	assert.Equal(t, http.StatusOK, doRequest(r, token).Code)
}

func TestAuthMiddlewareRejectsGarbage(t *testing.T) {
	r, _, _ := newAuthRouter(t)

	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "").Code)
	assert.Equal(t, http.StatusUnauthorized, doRequest(r, "not-a-jwt").Code)
}
