package booking

import (
	"fmt"
	"testing"

	"auxin/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func gridFrom(times []string, unavailable ...string) []models.TimeSlot {
	blocked := make(map[string]bool, len(unavailable))
	for _, t := range unavailable {
		blocked[t] = true
	}
	slots := make([]models.TimeSlot, 0, len(times))
	for i, t := range times {
		slots = append(slots, models.TimeSlot{
			ID:        fmt.Sprintf("s%d", i),
			Time:      t,
			Time12:    To12Hour(t),
			Available: !blocked[t],
		})
	}
	return slots
}

func TestRequiredSlots(t *testing.T) {
	cases := []struct {
		minutes int
		want    int
	}{
		{30, 1},
		{45, 2}, // rounded up to whole slots by design
		{60, 2},
		{90, 3},
		{1, 1},
		{0, 0},
		{-15, 0},
	}
	for _, tc := range cases {
		assert.Equalf(t, tc.want, RequiredSlots(tc.minutes), "minutes=%d", tc.minutes)
	}
}

func TestCanAccommodate(t *testing.T) {
	grid := gridFrom([]string{"09:00", "09:30", "10:00", "10:30"}, "10:00")

	t.Run("fits when run is free", func(t *testing.T) {
		assert.True(t, CanAccommodate(grid, "09:00", 60))
	})

	t.Run("rejects run crossing a booked slot", func(t *testing.T) {
		// 09:30 + 60min needs 10:00, which is taken.
		assert.False(t, CanAccommodate(grid, "09:30", 60))
	})

	t.Run("rejects booked start slot", func(t *testing.T) {
		assert.False(t, CanAccommodate(grid, "10:00", 30))
	})

	t.Run("rejects run past the end of the grid", func(t *testing.T) {
		assert.False(t, CanAccommodate(grid, "10:30", 60))
		assert.True(t, CanAccommodate(grid, "10:30", 30))
	})

	t.Run("rejects unknown start time", func(t *testing.T) {
		assert.False(t, CanAccommodate(grid, "11:00", 30))
		assert.False(t, CanAccommodate(nil, "09:00", 30))
	})

	t.Run("later slot of another multi-slot booking blocks the run", func(t *testing.T) {
		// Someone booked 09:30 for 60 minutes: 09:30 and 10:00 are both taken.
		g := gridFrom([]string{"09:00", "09:30", "10:00", "10:30"}, "09:30", "10:00")
		assert.False(t, CanAccommodate(g, "09:00", 60))
		assert.True(t, CanAccommodate(g, "09:00", 30))
		assert.True(t, CanAccommodate(g, "10:30", 30))
	})
}

func TestSlotsForDuration(t *testing.T) {
	grid := gridFrom([]string{"09:00", "09:30", "10:00", "10:30"})

	assert.Equal(t, []string{"09:00", "09:30"}, SlotsForDuration(grid, "09:00", 60))
	assert.Equal(t, []string{"09:00", "09:30"}, SlotsForDuration(grid, "09:00", 45))
	assert.Equal(t, []string{"10:00"}, SlotsForDuration(grid, "10:00", 30))

	// Truncated at the end of the grid, never wrapping to the next day.
	assert.Equal(t, []string{"10:00", "10:30"}, SlotsForDuration(grid, "10:00", 90))

	assert.Nil(t, SlotsForDuration(grid, "23:00", 30))
}

func TestFallbackSlots(t *testing.T) {
	slots := FallbackSlots()
	require.Len(t, slots, 18)

	assert.Equal(t, "09:00", slots[0].Time)
	assert.Equal(t, "9:00 AM", slots[0].Time12)
	assert.Equal(t, "17:30", slots[17].Time)
	assert.Equal(t, "5:30 PM", slots[17].Time12)

	for _, s := range slots {
		assert.Truef(t, s.Available, "fallback slot %s must be available", s.Time)
	}
}

func TestTo12Hour(t *testing.T) {
	cases := map[string]string{
		"00:00": "12:00 AM",
		"09:05": "9:05 AM",
		"12:00": "12:00 PM",
		"13:30": "1:30 PM",
		"17:30": "5:30 PM",
	}
	for in, want := range cases {
		assert.Equal(t, want, To12Hour(in))
	}
}
