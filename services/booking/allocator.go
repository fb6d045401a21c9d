package booking

import (
	"fmt"

	"auxin/models"
)

// RequiredSlots returns how many 30-minute slots a duration consumes. Any
// duration is rounded up to whole slots, so a 45-minute meeting consumes two
// slots of calendar space even though only 45 minutes are billed.
func RequiredSlots(durationMinutes int) int {
	if durationMinutes <= 0 {
		return 0
	}
	return (durationMinutes + models.SlotGranularityMinutes - 1) / models.SlotGranularityMinutes
}

// slotIndex locates a start time in the ordered slot list, -1 when absent.
func slotIndex(slots []models.TimeSlot, startTime string) int {
	for i, s := range slots {
		if s.Time == startTime {
			return i
		}
	}
	return -1
}

// CanAccommodate reports whether a contiguous run of available slots long
// enough for the duration begins at startTime. Only the Available flag is
// inspected: the slot list is generated on a fixed cadence in time order, so
// positional adjacency already implies chronological contiguity.
func CanAccommodate(slots []models.TimeSlot, startTime string, durationMinutes int) bool {
	idx := slotIndex(slots, startTime)
	if idx < 0 {
		return false
	}
	need := RequiredSlots(durationMinutes)
	if idx+need > len(slots) {
		return false
	}
	for _, s := range slots[idx : idx+need] {
		if !s.Available {
			return false
		}
	}
	return true
}

// SlotsForDuration returns the literal slot times a booking starting at
// startTime would consume, truncated at the end of the generated grid (a run
// never wraps to the next day).
func SlotsForDuration(slots []models.TimeSlot, startTime string, durationMinutes int) []string {
	idx := slotIndex(slots, startTime)
	if idx < 0 {
		return nil
	}
	end := idx + RequiredSlots(durationMinutes)
	if end > len(slots) {
		end = len(slots)
	}
	times := make([]string, 0, end-idx)
	for _, s := range slots[idx:end] {
		times = append(times, s.Time)
	}
	return times
}

// FallbackSlots generates the local all-available grid used when the
// authoritative availability fetch fails: 09:00 through 17:30 on a 30-minute
// cadence.
func FallbackSlots() []models.TimeSlot {
	const startHour, endHour = 9, 18

	var slots []models.TimeSlot
	for h := startHour; h < endHour; h++ {
		for _, m := range []int{0, 30} {
			t := fmt.Sprintf("%02d:%02d", h, m)
			slots = append(slots, models.TimeSlot{
				ID:        "local-" + t,
				Time:      t,
				Time12:    To12Hour(t),
				Available: true,
			})
		}
	}
	return slots
}

// To12Hour converts "HH:MM" to a 12-hour display string like "9:00 AM".
func To12Hour(hhmm string) string {
	var h, m int
	if _, err := fmt.Sscanf(hhmm, "%d:%d", &h, &m); err != nil {
		return hhmm
	}
	suffix := "AM"
	switch {
	case h == 0:
		h = 12
	case h == 12:
		suffix = "PM"
	case h > 12:
		h -= 12
		suffix = "PM"
	}
	return fmt.Sprintf("%d:%02d %s", h, m, suffix)
}
