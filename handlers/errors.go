package handlers

import (
	"errors"
	"net/http"

	"auxin/upstream"
	"auxin/utils"

	"github.com/gin-gonic/gin"
)

// respondUpstreamError relays an upstream failure to the client. A status
// error keeps its code and message; a transport error surfaces as 502 so the
// client can tell "the backend said no" from "the backend is unreachable".
func respondUpstreamError(c *gin.Context, err error) {
	var se *upstream.StatusError
	if errors.As(err, &se) {
		c.JSON(se.Code, gin.H{"error": se.Message})
		return
	}
	utils.JSONError(c, http.StatusBadGateway, "upstream service unavailable", err.Error())
}
