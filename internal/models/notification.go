package models

import "time"

// Notification kinds
const (
	NotificationMission  = "mission"
	NotificationReminder = "reminder"
	NotificationNewBook  = "new_book"
)

// Notification is a persisted per-user message
type Notification struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	Message   string    `json:"message"`
	Kind      string    `json:"kind"`
	Read      bool      `json:"read"`
	CreatedAt time.Time `json:"created_at"`
}
