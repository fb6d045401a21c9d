package upstream

import (
	"context"
	"net/http"
	"net/url"

	"auxin/models"
)

// Available fetches the authoritative slot grid for a date (YYYY-MM-DD).
// Slot availability upstream reflects existing bookings, including later
// slots swallowed by someone else's multi-slot reservation.
func (c *Client) Available(ctx context.Context, token, date string) ([]models.TimeSlot, error) {
	var out models.AvailabilityResponse
	path := "/api/appointments/available?date=" + url.QueryEscape(date)
	if err := c.do(ctx, http.MethodGet, path, token, nil, &out); err != nil {
		return nil, err
	}
	return out.Slots, nil
}

// Book reserves an appointment.
func (c *Client) Book(ctx context.Context, token string, req models.BookingRequest) (*models.Appointment, error) {
	var out models.Appointment
	if err := c.do(ctx, http.MethodPost, "/api/appointments/book", token, req, &out); err != nil {
		return nil, err
	}
	return &out, nil
}

// Cancel cancels an appointment by ID.
func (c *Client) Cancel(ctx context.Context, token, appointmentID string) error {
	path := "/api/appointments/" + url.PathEscape(appointmentID) + "/cancel"
	return c.do(ctx, http.MethodPut, path, token, nil, nil)
}

// MyAppointments lists the caller's appointments.
func (c *Client) MyAppointments(ctx context.Context, token string) ([]models.Appointment, error) {
	var out []models.Appointment
	if err := c.do(ctx, http.MethodGet, "/api/appointments/my-appointments", token, nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MeetingDurations fetches the public duration list, active and inactive.
func (c *Client) MeetingDurations(ctx context.Context) ([]models.MeetingDuration, error) {
	var out []models.MeetingDuration
	if err := c.do(ctx, http.MethodGet, "/api/meeting-durations/public", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// MeetingCategories fetches the public category list.
func (c *Client) MeetingCategories(ctx context.Context) ([]models.MeetingCategory, error) {
	var out []models.MeetingCategory
	if err := c.do(ctx, http.MethodGet, "/api/meeting-categories/public", "", nil, &out); err != nil {
		return nil, err
	}
	return out, nil
}
