package booking

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"auxin/config"
	"auxin/models"
	"auxin/upstream"
	"auxin/utils"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// fakeScheduling emulates the scheduling backend with mutable availability so
// a booking is reflected in subsequent fetches.
type fakeScheduling struct {
	mu          sync.Mutex
	slots       map[string][]models.TimeSlot
	durations   []models.MeetingDuration
	categories  []models.MeetingCategory
	bookStatus  int // non-zero forces a booking failure status
	lastBooking models.BookingRequest
}

func (f *fakeScheduling) handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/api/meeting-durations/public", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.durations)
	})
	mux.HandleFunc("/api/meeting-categories/public", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(f.categories)
	})
	mux.HandleFunc("/api/appointments/available", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		defer f.mu.Unlock()
		date := r.URL.Query().Get("date")
		slots, ok := f.slots[date]
		if !ok {
			http.Error(w, `{"message":"no schedule"}`, http.StatusInternalServerError)
			return
		}
		json.NewEncoder(w).Encode(models.AvailabilityResponse{Date: date, Slots: slots})
	})
	mux.HandleFunc("/api/appointments/book", func(w http.ResponseWriter, r *http.Request) {
		if f.bookStatus != 0 {
			http.Error(w, `{"message":"booking rejected"}`, f.bookStatus)
			return
		}
		var req models.BookingRequest
		json.NewDecoder(r.Body).Decode(&req)

		f.mu.Lock()
		defer f.mu.Unlock()
		f.lastBooking = req
		minutes := 0
		for _, d := range f.durations {
			if d.ID == req.DurationID {
				minutes = d.Minutes
			}
		}
		grid := f.slots[req.Date]
		for _, taken := range SlotsForDuration(grid, req.Time, minutes) {
			for i := range grid {
				if grid[i].Time == taken {
					grid[i].Available = false
				}
			}
		}
		f.slots[req.Date] = grid

		json.NewEncoder(w).Encode(models.Appointment{
			ID: "appt-1", Date: req.Date, Time: req.Time, Duration: minutes, Status: "pending_payment",
		})
	})
	return mux
}

func fullDayGrid() []models.TimeSlot {
	return FallbackSlots() // 18 all-available slots, 09:00-17:30
}

func newTestService(t *testing.T, fake *fakeScheduling) (*DefaultSessionService, *utils.SessionStore) {
	t.Helper()

	server := httptest.NewServer(fake.handler())
	t.Cleanup(server.Close)

	mr := miniredis.RunT(t)
	cache := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	sessions := redis.NewClient(&redis.Options{Addr: mr.Addr(), DB: 1})
	t.Cleanup(func() { cache.Close(); sessions.Close() })

	store := utils.NewSessionStore(sessions)
	svc := &DefaultSessionService{
		Scheduling: upstream.NewClient(server.URL, upstream.WithLogger(zap.NewNop())),
		Cache:      cache,
		Store:      store,
		Logger:     zap.NewNop(),
	}
	return svc, store
}

func activeDurations() []models.MeetingDuration {
	return []models.MeetingDuration{
		{ID: "d30", Minutes: 30, Label: "Quick call", Price: 25, IsActive: true},
		{ID: "d60", Minutes: 60, Label: "Consultation", Price: 45, IsActive: true},
		{ID: "d90", Minutes: 90, Label: "Workshop", Price: 60, IsActive: false},
	}
}

func TestStartSessionFiltersActiveAndAutoSelects(t *testing.T) {
	fake := &fakeScheduling{
		durations:  activeDurations(),
		categories: []models.MeetingCategory{{ID: "c1", Name: "Consulting", IsActive: true}},
		slots:      map[string][]models.TimeSlot{},
	}
	svc, _ := newTestService(t, fake)

	s, err := svc.StartSession(context.Background())
	require.NoError(t, err)

	require.Len(t, s.Durations, 2) // inactive d90 filtered out
	assert.Equal(t, "d30", s.Selection.SelectedDuration.ID)
	assert.Len(t, s.Categories, 1)
}

func TestStartSessionWithoutActiveDurationsDisablesBooking(t *testing.T) {
	fake := &fakeScheduling{
		durations: []models.MeetingDuration{{ID: "d90", Minutes: 90, IsActive: false}},
		slots:     map[string][]models.TimeSlot{"2025-01-10": fullDayGrid()},
	}
	svc, _ := newTestService(t, fake)
	ctx := context.Background()

	s, err := svc.StartSession(ctx)
	require.NoError(t, err)
	assert.Empty(t, s.Durations)

	_, err = svc.SelectTime(ctx, s.SessionID, "09:00")
	assert.ErrorIs(t, err, ErrNoDurations)

	_, err = svc.ConfirmBooking(ctx, s.SessionID, "tok", nil)
	assert.ErrorIs(t, err, ErrNoDurations)
}

func TestSelectDateFallsBackWhenFetchFails(t *testing.T) {
	fake := &fakeScheduling{
		durations: activeDurations(),
		slots:     map[string][]models.TimeSlot{}, // no date known upstream
	}
	svc, _ := newTestService(t, fake)
	ctx := context.Background()

	s, err := svc.StartSession(ctx)
	require.NoError(t, err)

	s, err = svc.SelectDate(ctx, s.SessionID, "tok", "2025-03-01")
	require.NoError(t, err)
	assert.True(t, s.UsedFallback)
	assert.False(t, s.DateRefetched)
	require.Len(t, s.Slots, 18)
	assert.Equal(t, "09:00", s.Slots[0].Time)
}

func TestSelectDurationClearsUnfittingSelection(t *testing.T) {
	grid := fullDayGrid()
	grid[1].Available = false // 09:30 booked elsewhere
	fake := &fakeScheduling{
		durations: activeDurations(),
		slots:     map[string][]models.TimeSlot{"2025-01-10": grid},
	}
	svc, _ := newTestService(t, fake)
	ctx := context.Background()

	s, err := svc.StartSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, s.SessionID, "tok", "2025-01-10")
	require.NoError(t, err)

	// 09:00 fits the default 30-minute duration.
	s, err = svc.SelectTime(ctx, s.SessionID, "09:00")
	require.NoError(t, err)
	assert.Equal(t, "09:00", s.Selection.SelectedTime)
	assert.Empty(t, s.Error)

	// Switching to 60 minutes needs 09:30 too, which is taken.
	s, err = svc.SelectDuration(ctx, s.SessionID, "d60")
	require.NoError(t, err)
	assert.Equal(t, "", s.Selection.SelectedTime)
	assert.NotEmpty(t, s.Error)
}

func TestTransientErrorAutoDismisses(t *testing.T) {
	s := &WizardSession{}
	s.setTransientError("does not fit")

	s.expireTransientError(s.ErrorSetAt.Add(transientErrorTTL / 2))
	assert.NotEmpty(t, s.Error)

	s.expireTransientError(s.ErrorSetAt.Add(transientErrorTTL + time.Second))
	assert.Empty(t, s.Error)
	assert.True(t, s.ErrorSetAt.IsZero())
}

func TestSelectTimeRejectsInsufficientRun(t *testing.T) {
	grid := fullDayGrid()
	grid[1].Available = false
	fake := &fakeScheduling{
		durations: activeDurations(),
		slots:     map[string][]models.TimeSlot{"2025-01-10": grid},
	}
	svc, _ := newTestService(t, fake)
	ctx := context.Background()

	s, err := svc.StartSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, s.SessionID, "tok", "2025-01-10")
	require.NoError(t, err)
	_, err = svc.SelectDuration(ctx, s.SessionID, "d60")
	require.NoError(t, err)

	s, err = svc.SelectTime(ctx, s.SessionID, "09:00")
	require.Error(t, err)

	var capErr *CapacityError
	require.ErrorAs(t, err, &capErr)
	assert.Empty(t, s.Selection.SelectedTime)
	assert.NotEmpty(t, s.Error)
}

func TestBookingEndToEnd(t *testing.T) {
	fake := &fakeScheduling{
		durations: activeDurations(),
		slots:     map[string][]models.TimeSlot{"2025-01-10": fullDayGrid()},
	}
	svc, _ := newTestService(t, fake)
	ctx := context.Background()

	s, err := svc.StartSession(ctx)
	require.NoError(t, err)

	s, err = svc.SelectDate(ctx, s.SessionID, "tok", "2025-01-10")
	require.NoError(t, err)
	require.Len(t, s.Slots, 18)
	assert.Equal(t, "17:30", s.Slots[17].Time)

	_, err = svc.SelectDuration(ctx, s.SessionID, "d60")
	require.NoError(t, err)

	s, err = svc.SelectTime(ctx, s.SessionID, "09:00")
	require.NoError(t, err)
	assert.Equal(t, []string{"09:00", "09:30"}, s.ConsumedSlots())

	appt, err := svc.ConfirmBooking(ctx, s.SessionID, "tok", map[string]string{"topic": "kickoff"})
	require.NoError(t, err)
	assert.Equal(t, "appt-1", appt.ID)

	// A re-fetch for the same date now shows both consumed slots taken.
	s, err = svc.SelectDate(ctx, s.SessionID, "tok", "2025-01-10")
	require.NoError(t, err)
	assert.True(t, s.DateRefetched)
	assert.False(t, s.Slots[0].Available)
	assert.False(t, s.Slots[1].Available)
	assert.True(t, s.Slots[2].Available)
}

func TestMeetingFormEchoUsedAndCleared(t *testing.T) {
	fake := &fakeScheduling{
		durations: activeDurations(),
		slots:     map[string][]models.TimeSlot{"2025-01-10": fullDayGrid()},
	}
	svc, store := newTestService(t, fake)
	ctx := context.Background()

	config.AppConfig.JWTSecret = "test-secret"
	token, err := utils.GenerateToken("u1", "a@b.c", time.Hour)
	require.NoError(t, err)

	form := map[string]string{"topic": "kickoff", "attendees": "3"}
	require.NoError(t, svc.SaveMeetingForm(ctx, "u1", form))

	saved, err := svc.MeetingForm(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, form, saved)

	s, err := svc.StartSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, s.SessionID, token, "2025-01-10")
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, s.SessionID, "09:00")
	require.NoError(t, err)

	// Confirm without a form payload: the saved answers ride the booking.
	_, err = svc.ConfirmBooking(ctx, s.SessionID, token, nil)
	require.NoError(t, err)

	fake.mu.Lock()
	assert.Equal(t, form, fake.lastBooking.FormData)
	fake.mu.Unlock()

	// The echo is consumed by the successful booking.
	saved, err = svc.MeetingForm(ctx, "u1")
	require.NoError(t, err)
	assert.Nil(t, saved)
	raw, err := store.Get(ctx, "u1", utils.KeyMeetingFormData)
	require.NoError(t, err)
	assert.Empty(t, raw)
}

func TestConfirmBookingUnauthorizedClearsTokens(t *testing.T) {
	fake := &fakeScheduling{
		durations:  activeDurations(),
		slots:      map[string][]models.TimeSlot{"2025-01-10": fullDayGrid()},
		bookStatus: http.StatusUnauthorized,
	}
	svc, store := newTestService(t, fake)
	ctx := context.Background()

	config.AppConfig.JWTSecret = "test-secret"
	token, err := utils.GenerateToken("u1", "a@b.c", time.Hour)
	require.NoError(t, err)
	require.NoError(t, store.SetToken(ctx, "u1", token, true))

	s, err := svc.StartSession(ctx)
	require.NoError(t, err)
	_, err = svc.SelectDate(ctx, s.SessionID, token, "2025-01-10")
	require.NoError(t, err)
	_, err = svc.SelectTime(ctx, s.SessionID, "09:00")
	require.NoError(t, err)

	_, err = svc.ConfirmBooking(ctx, s.SessionID, token, nil)
	require.Error(t, err)
	assert.True(t, upstream.IsUnauthorized(err))

	stored, _, err := store.Token(ctx, "u1")
	require.NoError(t, err)
	assert.Empty(t, stored)
}
