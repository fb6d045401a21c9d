package handlers

import (
	"errors"
	"net/http"

	"auxin/services/booking"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// StartWizardSession opens a scheduling wizard session: categories and
// durations loaded, first active duration pre-selected.
func (hb *HandlerBundle) StartWizardSession(c *gin.Context) {
	session, err := hb.Booking.StartSession(c.Request.Context())
	if err != nil {
		if errors.Is(err, booking.ErrNoDurations) {
			c.JSON(http.StatusConflict, gin.H{"error": "booking is currently unavailable"})
			return
		}
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, session)
}

// GetWizardSession reloads a session, expiring its transient error if due.
func (hb *HandlerBundle) GetWizardSession(c *gin.Context) {
	session, err := hb.Booking.GetSession(c.Request.Context(), c.Param("sessionID"))
	if err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load booking session"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectDate fetches availability for a day; a failed fetch falls back to the
// standard business-hours grid.
func (hb *HandlerBundle) SelectDate(c *gin.Context) {
	var req struct {
		Date string `json:"date" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := hb.Booking.SelectDate(c.Request.Context(), c.Param("sessionID"), bearerToken(c), req.Date)
	if err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load availability"})
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectDuration changes the meeting length, dropping a selected start time
// that no longer fits.
func (hb *HandlerBundle) SelectDuration(c *gin.Context) {
	var req struct {
		DurationID string `json:"durationId" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := hb.Booking.SelectDuration(c.Request.Context(), c.Param("sessionID"), req.DurationID)
	if err != nil {
		if errors.Is(err, booking.ErrSessionNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
			return
		}
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, session)
}

// SelectTime picks a start slot. A slot without room for the selected
// duration comes back 409 with the session carrying the transient message.
func (hb *HandlerBundle) SelectTime(c *gin.Context) {
	var req struct {
		Time string `json:"time" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	session, err := hb.Booking.SelectTime(c.Request.Context(), c.Param("sessionID"), req.Time)
	if err != nil {
		var capErr *booking.CapacityError
		switch {
		case errors.As(err, &capErr):
			c.JSON(http.StatusConflict, gin.H{"error": capErr.Message, "session": session})
		case errors.Is(err, booking.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
		case errors.Is(err, booking.ErrNoDurations):
			c.JSON(http.StatusConflict, gin.H{"error": "booking is currently unavailable"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to select time"})
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// ConfirmBooking reserves the selected slot upstream.
func (hb *HandlerBundle) ConfirmBooking(c *gin.Context) {
	var req struct {
		SessionID string            `json:"sessionId" binding:"required"`
		FormData  map[string]string `json:"formData"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	appt, err := hb.Booking.ConfirmBooking(c.Request.Context(), req.SessionID, bearerToken(c), req.FormData)
	if err != nil {
		var capErr *booking.CapacityError
		switch {
		case errors.As(err, &capErr):
			c.JSON(http.StatusConflict, gin.H{"error": capErr.Message})
		case errors.Is(err, booking.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "booking session not found or expired"})
		case errors.Is(err, booking.ErrNoDurations):
			c.JSON(http.StatusConflict, gin.H{"error": "booking is currently unavailable"})
		default:
			getLogger(c).Warn("booking confirmation failed", zap.Error(err))
			respondUpstreamError(c, err)
		}
		return
	}
	c.JSON(http.StatusCreated, appt)
}

// SaveMeetingForm stores the wizard's in-progress form answers so they
// survive a reload or the payment redirect.
func (hb *HandlerBundle) SaveMeetingForm(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	var req struct {
		FormData map[string]string `json:"formData" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid input", "details": err.Error()})
		return
	}

	if err := hb.Booking.SaveMeetingForm(c.Request.Context(), id, req.FormData); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save form data"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "form saved"})
}

// MeetingForm returns the saved form answers, empty when none are stored.
func (hb *HandlerBundle) MeetingForm(c *gin.Context) {
	id, ok := userID(c)
	if !ok {
		return
	}

	formData, err := hb.Booking.MeetingForm(c.Request.Context(), id)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load form data"})
		return
	}
	if formData == nil {
		formData = map[string]string{}
	}
	c.JSON(http.StatusOK, gin.H{"formData": formData})
}

// MyAppointments lists the caller's appointments.
func (hb *HandlerBundle) MyAppointments(c *gin.Context) {
	appts, err := hb.Booking.MyAppointments(c.Request.Context(), bearerToken(c))
	if err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, appts)
}

// CancelAppointment cancels an appointment upstream.
func (hb *HandlerBundle) CancelAppointment(c *gin.Context) {
	if err := hb.Booking.CancelAppointment(c.Request.Context(), bearerToken(c), c.Param("id")); err != nil {
		respondUpstreamError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "appointment cancelled"})
}
