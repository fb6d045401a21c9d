package handlers

import (
	"net/http"

	"auxin/models"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Login handles password sign-in with the remember-me choice.
func (hb *HandlerBundle) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := hb.Auth.Login(c.Request.Context(), req)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Register creates an account; the backend sends the verification email.
func (hb *HandlerBundle) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := hb.Auth.Register(c.Request.Context(), req)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// Verify confirms an email verification code.
func (hb *HandlerBundle) Verify(c *gin.Context) {
	var req models.VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Auth.Verify(c.Request.Context(), req); err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "email verified"})
}

// ForgotPassword requests a reset email.
func (hb *HandlerBundle) ForgotPassword(c *gin.Context) {
	var req struct {
		Email string `json:"email" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Auth.ForgotPassword(c.Request.Context(), req.Email); err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "reset email sent"})
}

// ResetPassword sets a new password for the reset token in the path.
func (hb *HandlerBundle) ResetPassword(c *gin.Context) {
	var req models.ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Auth.ResetPassword(c.Request.Context(), c.Param("token"), req.Password); err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}

// EmployeeLogin signs in an employee account.
func (hb *HandlerBundle) EmployeeLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := hb.Auth.EmployeeLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// AdminLogin signs in an admin account.
func (hb *HandlerBundle) AdminLogin(c *gin.Context) {
	var req struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := hb.Auth.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// Logout drops the caller's tokens from both scopes.
func (hb *HandlerBundle) Logout(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	if err := hb.Auth.Logout(c.Request.Context(), id); err != nil {
		getLogger(c).Error("logout failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to sign out"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "signed out"})
}
