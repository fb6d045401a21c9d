package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// MeetingDurations returns the public duration catalogue for the wizard.
func (hb *HandlerBundle) MeetingDurations(c *gin.Context) {
	durations, err := hb.Scheduling.MeetingDurations(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, durations)
}

// MeetingCategories returns the public category catalogue for the wizard.
func (hb *HandlerBundle) MeetingCategories(c *gin.Context) {
	categories, err := hb.Scheduling.MeetingCategories(c.Request.Context())
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, categories)
}
