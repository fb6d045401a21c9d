package models

// SlotGranularityMinutes is the fixed width of a calendar slot. Every bookable
// duration is rounded up to whole slots of this size.
const SlotGranularityMinutes = 30

// TimeSlot represents one fixed 30-minute calendar unit for a given date.
// Slots are ordered ascending by Time; positional adjacency in a slot list is
// relied upon as chronological contiguity.
type TimeSlot struct {
	ID        string `json:"id"`
	Time      string `json:"time"`   // 24h "HH:MM"
	Time12    string `json:"time12"` // display form, e.g. "9:00 AM"
	Available bool   `json:"available"`
}

// MeetingDuration is a bookable meeting length mapped to a price. A duration
// consumes ceil(Minutes/30) contiguous slots.
type MeetingDuration struct {
	ID       string  `json:"_id"`
	Minutes  int     `json:"minutes"`
	Label    string  `json:"label"`
	Price    float64 `json:"price"`
	IsActive bool    `json:"isActive"`
}

// MeetingCategory is a wizard step-one choice controlling the dynamic form.
type MeetingCategory struct {
	ID          string `json:"_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	IsActive    bool   `json:"isActive"`
}

// AvailabilityResponse is the upstream payload for a date's slot grid.
type AvailabilityResponse struct {
	Date  string     `json:"date"`
	Slots []TimeSlot `json:"slots"`
}
