package models

import "time"

// BookingRequest is the payload for reserving a meeting.
type BookingRequest struct {
	Date       string            `json:"date" binding:"required"` // YYYY-MM-DD
	Time       string            `json:"time" binding:"required"` // "HH:MM" start slot
	DurationID string            `json:"durationId" binding:"required"`
	CategoryID string            `json:"categoryId"`
	FormData   map[string]string `json:"formData,omitempty"`
}

// Appointment is the upstream record of a booked meeting.
type Appointment struct {
	ID         string    `json:"_id"`
	UserID     string    `json:"userId"`
	Date       string    `json:"date"`
	Time       string    `json:"time"`
	Duration   int       `json:"duration"` // minutes
	CategoryID string    `json:"categoryId,omitempty"`
	Status     string    `json:"status"` // e.g. "pending_payment", "confirmed", "cancelled"
	Price      float64   `json:"price"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BookingSelection is the wizard's ephemeral state: the chosen date, start
// time and duration. SelectedTime is cleared whenever a duration change makes
// it unable to fit.
type BookingSelection struct {
	SelectedDate     string          `json:"selectedDate"`
	SelectedTime     string          `json:"selectedTime"`
	SelectedDuration MeetingDuration `json:"selectedDuration"`
}
