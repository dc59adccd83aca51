package models

import (
	"time"

	"github.com/google/uuid"
)

// User represents a tutor profile
type User struct {
	ID           uuid.UUID  `json:"id"`
	Name         string     `json:"name"`
	Phone        string     `json:"phone"`
	Login        string     `json:"-"`
	PasswordHash string     `json:"-"` // Not serialized
	GuestCode    *string    `json:"guest_code"`
	ReminderDays int        `json:"reminder_days"`
	NotifyEmail  *string    `json:"notify_email"`
	ConfirmedAt  *time.Time `json:"confirmed_at,omitempty"`
	CreatedAt    time.Time  `json:"created_at"`
}

// Confirmed reports whether the account may sign in.
func (u *User) Confirmed() bool {
	return u.ConfirmedAt != nil
}
