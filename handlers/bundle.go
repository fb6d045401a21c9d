package handlers

import (
	"net/http"

	"auxin/services/auth"
	"auxin/services/booking"
	"auxin/services/payment"
	"auxin/upstream"
	"auxin/utils"

	"github.com/gin-gonic/gin"
)

// HandlerBundle groups the portal's endpoint handlers around their services.
type HandlerBundle struct {
	Auth       auth.Service
	Booking    booking.SessionService
	Payment    payment.Service
	Scheduling *upstream.Client
	Dashboard  *upstream.Client
	Store      *utils.SessionStore
}

// userID returns the authenticated user ID the auth middleware stored, or
// aborts with 401 when it is missing.
func userID(c *gin.Context) (string, bool) {
	id := c.GetString("userID")
	if id == "" {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "Insufficient authorization"})
		return "", false
	}
	return id, true
}

// bearerToken returns the raw bearer token the auth middleware stored.
func bearerToken(c *gin.Context) string {
	return c.GetString("token")
}
