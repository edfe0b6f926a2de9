package model

import "time"

// AdminUser is an operator account. PasswordHash never leaves the service layer.
type AdminUser struct {
	ID           int64     `json:"id"`
	Username     string    `json:"username"`
	PasswordHash string    `json:"-"`
	FullName     string    `json:"full_name"`
	CreatedAt    time.Time `json:"created_at"`
}

// SupportRequest is a free-text message a resident sends to the administrators.
type SupportRequest struct {
	ID         int64     `json:"id"`
	ResidentID *int64    `json:"resident_id,omitempty"`
	Content    string    `json:"content"`
	Status     string    `json:"status"`
	CreatedAt  time.Time `json:"created_at"`
}

// Notification levels, from quiet to urgent.
const (
	LevelInfo    = "info"
	LevelSuccess = "success"
	LevelWarning = "warning"
	LevelDanger  = "danger"
)

// Notification is an alert shown to operators on the admin console.
type Notification struct {
	ID        int64     `json:"id"`
	Level     string    `json:"level"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	CreatedAt time.Time `json:"created_at"`
}
