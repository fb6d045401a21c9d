package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"auxin/models"
	"auxin/services/auth"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// popupCloseHTML is served to the OAuth popup after the callback lands. The
// waiting client learns the outcome through the wait endpoint, not this page.
const popupCloseHTML = `<!doctype html><html><body><script>window.close();</script>Sign-in complete. You can close this window.</body></html>`

// GoogleStart opens a sign-in handshake and returns the popup URL.
func (hb *HandlerBundle) GoogleStart(c *gin.Context) {
	start, err := hb.Auth.GoogleStart(c.Request.Context())
	if err != nil {
		getLogger(c).Error("failed to start google handshake", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to start sign-in"})
		return
	}
	c.JSON(http.StatusOK, start)
}

// GoogleCallback is the redirect target the popup lands on after the provider
// round-trip. The result rides the query string: type, token, error, and a
// JSON-encoded user. Unrecognized payloads are dropped so the handshake keeps
// waiting on its other paths.
func (hb *HandlerBundle) GoogleCallback(c *gin.Context) {
	state := c.Query("state")
	result := models.GoogleAuthResult{
		Type:  c.Query("type"),
		Token: c.Query("token"),
		Error: c.Query("error"),
	}
	if raw := c.Query("user"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &result.User); err != nil {
			getLogger(c).Warn("malformed user payload on google callback", zap.Error(err))
		}
	}

	err := hb.Auth.GoogleDeliver(c.Request.Context(), state, result)
	switch {
	case errors.Is(err, auth.ErrUnrecognizedResult):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unrecognized sign-in result"})
		return
	case errors.Is(err, auth.ErrHandshakeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sign-in session not found or expired"})
		return
	case err != nil:
		getLogger(c).Error("failed to deliver google result", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to complete sign-in"})
		return
	}

	c.Header("Content-Type", "text/html; charset=utf-8")
	c.String(http.StatusOK, popupCloseHTML)
}

// GoogleWait blocks until the handshake resolves or times out.
func (hb *HandlerBundle) GoogleWait(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state is required"})
		return
	}

	res, err := hb.Auth.GoogleWait(c.Request.Context(), state)
	switch {
	case errors.Is(err, auth.ErrHandshakeNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "sign-in session not found or expired"})
	case errors.Is(err, auth.ErrHandshakeTimeout):
		c.JSON(http.StatusRequestTimeout, gin.H{"error": "sign-in timed out"})
	case err != nil:
		c.JSON(http.StatusUnauthorized, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusOK, res)
	}
}

// GooglePopupClosed records the advisory popup-closed signal.
func (hb *HandlerBundle) GooglePopupClosed(c *gin.Context) {
	var req struct {
		State string `json:"state" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Auth.GooglePopupClosed(req.State); err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "sign-in session not found or expired"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "noted"})
}

// GoogleStatus reports whether a handshake is still pending.
func (hb *HandlerBundle) GoogleStatus(c *gin.Context) {
	state := c.Query("state")
	if state == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "state is required"})
		return
	}

	status, err := hb.Auth.GoogleStatus(state)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read sign-in status"})
		return
	}
	c.JSON(http.StatusOK, status)
}
