package handlers

import (
	"errors"
	"io"
	"net/http"

	"auxin/models"
	"auxin/services/payment"

	"github.com/gin-gonic/gin"
)

// CreateOrder opens a PayPal order; the client follows the approval URL and
// the pending IDs ride the session store across the redirect.
func (hb *HandlerBundle) CreateOrder(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := hb.Payment.StartOrder(c.Request.Context(), id, bearerToken(c), req)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// CaptureOrder completes the order after the provider redirect returns. The
// request may omit the order and appointment IDs; the bridge fills them in.
func (hb *HandlerBundle) CaptureOrder(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	// An empty body is fine; the bridge holds everything but the payer ID.
	var req models.CaptureOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	res, err := hb.Payment.CaptureOrder(c.Request.Context(), id, bearerToken(c), req)
	if err != nil {
		if errors.Is(err, payment.ErrNoPendingOrder) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending payment to capture"})
			return
		}
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, res)
}

// PendingOrder reports the bridge state so the return page can resume.
func (hb *HandlerBundle) PendingOrder(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	pending, err := hb.Payment.Pending(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, payment.ErrNoPendingOrder) {
			c.JSON(http.StatusNotFound, gin.H{"error": "no pending payment"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to read pending payment"})
		return
	}
	c.JSON(http.StatusOK, pending)
}
