package handlers

import (
	"net/http"
	"strconv"

	"auxin/models"

	"github.com/gin-gonic/gin"
)

// MyProjects lists the caller's projects.
func (hb *HandlerBundle) MyProjects(c *gin.Context) {
	projects, err := hb.Dashboard.MyProjects(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, projects)
}

// ProjectTasks lists the tasks of one project.
func (hb *HandlerBundle) ProjectTasks(c *gin.Context) {
	tasks, err := hb.Dashboard.ProjectTasks(c.Request.Context(), bearerToken(c), c.Param("id"))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Notifications lists notifications, newest first, capped by ?limit=.
func (hb *HandlerBundle) Notifications(c *gin.Context) {
	limit := 0
	if raw := c.Query("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			c.JSON(http.StatusBadRequest, gin.H{"error": "limit must be a non-negative integer"})
			return
		}
		limit = n
	}

	notifications, err := hb.Dashboard.Notifications(c.Request.Context(), bearerToken(c), limit)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, notifications)
}

// MarkNotificationRead marks one notification read.
func (hb *HandlerBundle) MarkNotificationRead(c *gin.Context) {
	if err := hb.Dashboard.MarkNotificationRead(c.Request.Context(), bearerToken(c), c.Param("id")); err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "notification marked read"})
}

// MarkAllNotificationsRead marks every notification read.
func (hb *HandlerBundle) MarkAllNotificationsRead(c *gin.Context) {
	if err := hb.Dashboard.MarkAllNotificationsRead(c.Request.Context(), bearerToken(c)); err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "all notifications marked read"})
}

// BillingInfo returns the caller's billing profile.
func (hb *HandlerBundle) BillingInfo(c *gin.Context) {
	info, err := hb.Dashboard.BillingInfo(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, info)
}

// UpdateBillingInfo updates the caller's billing profile.
func (hb *HandlerBundle) UpdateBillingInfo(c *gin.Context) {
	var info models.BillingInfo
	if err := c.ShouldBindJSON(&info); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	updated, err := hb.Dashboard.UpdateBillingInfo(c.Request.Context(), bearerToken(c), info)
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// MyInvoices lists the caller's invoices.
func (hb *HandlerBundle) MyInvoices(c *gin.Context) {
	invoices, err := hb.Dashboard.MyInvoices(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, invoices)
}
