package booking

import (
	"context"
	"encoding/json"
	"fmt"

	"auxin/models"
	"auxin/upstream"
	"auxin/utils"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// DefaultSessionService implements SessionService on top of the scheduling
// backend and a Redis-cached wizard session.
type DefaultSessionService struct {
	Scheduling *upstream.Client
	Cache      *redis.Client
	Store      *utils.SessionStore
	Logger     *zap.Logger
}

// StartSession loads the public catalogues and opens a wizard session. The
// duration list is filtered to active entries and the first active one is
// auto-selected.
func (svc *DefaultSessionService) StartSession(ctx context.Context) (*WizardSession, error) {
	categories, err := svc.Scheduling.MeetingCategories(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meeting categories: %w", err)
	}

	durations, err := svc.Scheduling.MeetingDurations(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch meeting durations: %w", err)
	}
	active := make([]models.MeetingDuration, 0, len(durations))
	for _, d := range durations {
		if d.IsActive {
			active = append(active, d)
		}
	}

	s := &WizardSession{
		SessionID:  uuid.New().String(),
		Categories: categories,
		Durations:  active,
	}
	if len(active) > 0 {
		s.Selection.SelectedDuration = active[0]
	} else {
		svc.Logger.Warn("no active meeting durations published; booking disabled")
	}

	if err := svc.saveSession(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// GetSession returns the current wizard state.
func (svc *DefaultSessionService) GetSession(ctx context.Context, sessionID string) (*WizardSession, error) {
	return svc.loadSession(ctx, sessionID)
}

// SelectDate re-fetches the authoritative slot grid for the chosen date. A
// failed fetch falls back to the locally generated all-available grid rather
// than blocking the wizard. Changing the date resets the chosen start time.
func (svc *DefaultSessionService) SelectDate(ctx context.Context, sessionID, token, date string) (*WizardSession, error) {
	s, err := svc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	s.DateRefetched = s.Selection.SelectedDate != ""

	slots, err := svc.Scheduling.Available(ctx, token, date)
	if err != nil {
		svc.Logger.Warn("availability fetch failed, using local fallback grid",
			zap.String("date", date), zap.Error(err))
		slots = FallbackSlots()
		s.UsedFallback = true
	} else {
		s.UsedFallback = false
	}

	s.Slots = slots
	s.Selection.SelectedDate = date
	s.Selection.SelectedTime = ""

	if err := svc.saveSession(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectDuration switches the meeting duration and re-validates the chosen
// start time. A start that can no longer fit is cleared and a transient error
// is surfaced on the session.
func (svc *DefaultSessionService) SelectDuration(ctx context.Context, sessionID, durationID string) (*WizardSession, error) {
	s, err := svc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(s.Durations) == 0 {
		return nil, ErrNoDurations
	}

	var picked *models.MeetingDuration
	for i := range s.Durations {
		if s.Durations[i].ID == durationID {
			picked = &s.Durations[i]
			break
		}
	}
	if picked == nil {
		return nil, fmt.Errorf("unknown meeting duration %q", durationID)
	}

	s.Selection.SelectedDuration = *picked

	if t := s.Selection.SelectedTime; t != "" && !CanAccommodate(s.Slots, t, picked.Minutes) {
		s.Selection.SelectedTime = ""
		s.setTransientError(fmt.Sprintf("The %s option does not fit at %s. Please pick another time.", picked.Label, t))
		svc.Logger.Debug("duration change invalidated selected time",
			zap.String("time", t), zap.Int("minutes", picked.Minutes))
	}

	if err := svc.saveSession(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// SelectTime picks a start slot after checking the contiguous run it needs.
func (svc *DefaultSessionService) SelectTime(ctx context.Context, sessionID, startTime string) (*WizardSession, error) {
	s, err := svc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(s.Durations) == 0 {
		return nil, ErrNoDurations
	}

	minutes := s.Selection.SelectedDuration.Minutes
	if !CanAccommodate(s.Slots, startTime, minutes) {
		s.setTransientError(fmt.Sprintf("%s does not have enough free time for a %d-minute meeting.", startTime, minutes))
		if err := svc.saveSession(ctx, s); err != nil {
			return nil, err
		}
		return s, NewCapacityError(s.Error)
	}

	s.Selection.SelectedTime = startTime
	if err := svc.saveSession(ctx, s); err != nil {
		return nil, err
	}
	return s, nil
}

// ConfirmBooking reserves the selected slot upstream. A request without form
// data falls back to the saved meeting-form echo; the echo is cleared once
// the booking lands. An unauthorized response clears the caller's stored
// tokens to force a fresh sign-in.
func (svc *DefaultSessionService) ConfirmBooking(ctx context.Context, sessionID, token string, formData map[string]string) (*models.Appointment, error) {
	s, err := svc.loadSession(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(s.Durations) == 0 {
		return nil, ErrNoDurations
	}
	sel := s.Selection
	if sel.SelectedDate == "" || sel.SelectedTime == "" {
		return nil, NewCapacityError("select a date and time before booking")
	}

	userID, _ := utils.ExtractIDFromToken(token)
	if len(formData) == 0 && userID != "" {
		if saved, err := svc.MeetingForm(ctx, userID); err == nil {
			formData = saved
		}
	}

	appt, err := svc.Scheduling.Book(ctx, token, models.BookingRequest{
		Date:       sel.SelectedDate,
		Time:       sel.SelectedTime,
		DurationID: sel.SelectedDuration.ID,
		FormData:   formData,
	})
	if err != nil {
		if upstream.IsUnauthorized(err) {
			svc.clearTokensFor(ctx, token)
		}
		return nil, err
	}

	if userID != "" {
		if err := svc.Store.Delete(ctx, userID, utils.KeyMeetingFormData); err != nil {
			svc.Logger.Warn("failed to clear meeting form echo", zap.Error(err))
		}
	}

	svc.Logger.Info("appointment booked",
		zap.String("appointmentId", appt.ID),
		zap.String("date", sel.SelectedDate),
		zap.String("time", sel.SelectedTime),
		zap.Int("minutes", sel.SelectedDuration.Minutes),
	)
	return appt, nil
}

// SaveMeetingForm stores the in-progress dynamic form payload so the wizard
// survives a reload or the payment redirect with its answers intact.
func (svc *DefaultSessionService) SaveMeetingForm(ctx context.Context, userID string, formData map[string]string) error {
	raw, err := json.Marshal(formData)
	if err != nil {
		return fmt.Errorf("failed to marshal meeting form: %w", err)
	}
	return svc.Store.Set(ctx, userID, utils.KeyMeetingFormData, string(raw))
}

// MeetingForm returns the saved form payload, or nil when none is stored.
func (svc *DefaultSessionService) MeetingForm(ctx context.Context, userID string) (map[string]string, error) {
	raw, err := svc.Store.Get(ctx, userID, utils.KeyMeetingFormData)
	if err != nil {
		return nil, err
	}
	if raw == "" {
		return nil, nil
	}
	var formData map[string]string
	if err := json.Unmarshal([]byte(raw), &formData); err != nil {
		return nil, fmt.Errorf("failed to decode meeting form: %w", err)
	}
	return formData, nil
}

// CancelAppointment cancels an upstream appointment.
func (svc *DefaultSessionService) CancelAppointment(ctx context.Context, token, appointmentID string) error {
	return svc.Scheduling.Cancel(ctx, token, appointmentID)
}

// MyAppointments lists the caller's appointments.
func (svc *DefaultSessionService) MyAppointments(ctx context.Context, token string) ([]models.Appointment, error) {
	return svc.Scheduling.MyAppointments(ctx, token)
}

// clearTokensFor drops both token scopes for the token's subject after an
// upstream 401, forcing re-login.
func (svc *DefaultSessionService) clearTokensFor(ctx context.Context, token string) {
	userID, err := utils.ExtractIDFromToken(token)
	if err != nil || userID == "" {
		return
	}
	if err := svc.Store.ClearToken(ctx, userID); err != nil {
		svc.Logger.Error("failed to clear tokens after upstream 401", zap.Error(err))
	}
}
