package models

import (
	"time"

	"github.com/google/uuid"
)

// Expense represents an operating expense of the tutor
type Expense struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	Description string    `json:"description" validate:"required,max=255"`
	Amount      float64   `json:"amount" validate:"gt=0,lt=10000000000"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"`
	CreatedAt   time.Time `json:"created_at"`
}
