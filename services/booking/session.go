package booking

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"auxin/models"

	"github.com/go-redis/redis/v8"
)

const (
	sessionPrefix = "bookingSession:"
	sessionTTL    = 10 * time.Minute

	// transientErrorTTL is how long a capacity error stays on the session
	// before it auto-dismisses.
	transientErrorTTL = 5 * time.Second
)

// WizardSession is the booking wizard's state between steps: category and
// duration catalogues, the slot grid for the chosen date, and the current
// selection. It lives in Redis for the lifetime of the wizard.
type WizardSession struct {
	SessionID  string                   `json:"sessionId"`
	Selection  models.BookingSelection  `json:"selection"`
	Categories []models.MeetingCategory `json:"categories"`
	Durations  []models.MeetingDuration `json:"durations"` // active only
	Slots      []models.TimeSlot        `json:"slots,omitempty"`

	// UsedFallback marks a locally generated all-available grid standing in
	// for a failed authoritative fetch.
	UsedFallback bool `json:"usedFallback,omitempty"`
	// DateRefetched distinguishes a date-change re-fetch from the initial
	// load so the client can show the lighter-weight indicator.
	DateRefetched bool `json:"dateRefetched,omitempty"`

	// Error is the transient capacity message; it dismisses itself after
	// transientErrorTTL.
	Error      string    `json:"error,omitempty"`
	ErrorSetAt time.Time `json:"errorSetAt,omitempty"`
}

// ConsumedSlots returns the slot times the current selection would occupy.
func (s *WizardSession) ConsumedSlots() []string {
	if s.Selection.SelectedTime == "" || s.Selection.SelectedDuration.Minutes == 0 {
		return nil
	}
	return SlotsForDuration(s.Slots, s.Selection.SelectedTime, s.Selection.SelectedDuration.Minutes)
}

func (s *WizardSession) setTransientError(msg string) {
	s.Error = msg
	s.ErrorSetAt = time.Now()
}

// expireTransientError drops a capacity message older than its dismiss delay.
func (s *WizardSession) expireTransientError(now time.Time) {
	if s.Error != "" && now.Sub(s.ErrorSetAt) > transientErrorTTL {
		s.Error = ""
		s.ErrorSetAt = time.Time{}
	}
}

func (svc *DefaultSessionService) saveSession(ctx context.Context, s *WizardSession) error {
	data, err := json.Marshal(s)
	if err != nil {
		return fmt.Errorf("failed to marshal booking session: %w", err)
	}
	if err := svc.Cache.Set(ctx, sessionPrefix+s.SessionID, data, sessionTTL).Err(); err != nil {
		return fmt.Errorf("failed to cache booking session: %w", err)
	}
	return nil
}

func (svc *DefaultSessionService) loadSession(ctx context.Context, sessionID string) (*WizardSession, error) {
	data, err := svc.Cache.Get(ctx, sessionPrefix+sessionID).Result()
	if err == redis.Nil {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read booking session: %w", err)
	}
	var s WizardSession
	if err := json.Unmarshal([]byte(data), &s); err != nil {
		return nil, fmt.Errorf("failed to unmarshal booking session: %w", err)
	}
	s.expireTransientError(time.Now())
	return &s, nil
}
