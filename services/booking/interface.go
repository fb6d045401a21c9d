package booking

import (
	"context"
	"errors"

	"auxin/models"
)

// ErrSessionNotFound marks an expired or unknown wizard session.
var ErrSessionNotFound = errors.New("booking session not found or expired")

// ErrNoDurations marks an empty active-duration catalogue; booking is
// disabled until the upstream publishes at least one.
var ErrNoDurations = errors.New("no durations available")

// SessionService drives the meeting-scheduling wizard: catalogue loading,
// date/duration/time selection with contiguity validation, and the final
// reservation against the scheduling backend.
type SessionService interface {
	StartSession(ctx context.Context) (*WizardSession, error)
	GetSession(ctx context.Context, sessionID string) (*WizardSession, error)
	SelectDate(ctx context.Context, sessionID, token, date string) (*WizardSession, error)
	SelectDuration(ctx context.Context, sessionID, durationID string) (*WizardSession, error)
	SelectTime(ctx context.Context, sessionID, startTime string) (*WizardSession, error)
	ConfirmBooking(ctx context.Context, sessionID, token string, formData map[string]string) (*models.Appointment, error)
	SaveMeetingForm(ctx context.Context, userID string, formData map[string]string) error
	MeetingForm(ctx context.Context, userID string) (map[string]string, error)
	CancelAppointment(ctx context.Context, token, appointmentID string) error
	MyAppointments(ctx context.Context, token string) ([]models.Appointment, error)
}
