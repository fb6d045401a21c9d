package models

import "time"

// Project is a client-portal project summary.
type Project struct {
	ID          string    `json:"_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	Progress    int       `json:"progress"`
	CreatedAt   time.Time `json:"createdAt"`
}

// Task belongs to a project.
type Task struct {
	ID        string     `json:"_id"`
	ProjectID string     `json:"projectId"`
	Title     string     `json:"title"`
	Status    string     `json:"status"`
	DueDate   *time.Time `json:"dueDate,omitempty"`
}

// Notification is a portal notification entry.
type Notification struct {
	ID        string         `json:"_id"`
	Type      string         `json:"type"`
	Title     string         `json:"title"`
	Message   string         `json:"message"`
	Data      map[string]any `json:"data,omitempty"`
	Read      bool           `json:"read"`
	CreatedAt time.Time      `json:"createdAt"`
}

// BillingInfo is the client's billing profile.
type BillingInfo struct {
	Company  string `json:"company,omitempty"`
	Address  string `json:"address,omitempty"`
	City     string `json:"city,omitempty"`
	Country  string `json:"country,omitempty"`
	TaxID    string `json:"taxId,omitempty"`
	Postcode string `json:"postcode,omitempty"`
}

// Invoice is a billed appointment or project charge.
type Invoice struct {
	ID       string     `json:"_id"`
	Number   string     `json:"number"`
	Amount   float64    `json:"amount"`
	Currency string     `json:"currency"`
	Status   string     `json:"status"` // e.g. "paid", "due"
	IssuedAt time.Time  `json:"issuedAt"`
	PaidAt   *time.Time `json:"paidAt,omitempty"`
}
