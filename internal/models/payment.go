package models

import (
	"time"

	"github.com/google/uuid"
)

// DateLayout is the calendar-date format used for every stored date.
const DateLayout = "2006-01-02"

// Payment represents a single payment received from a student
type Payment struct {
	ID          uuid.UUID `json:"id"`
	UserID      uuid.UUID `json:"-"`
	StudentName string    `json:"student_name" validate:"required,max=120"`
	GroupName   string    `json:"group_name" validate:"required,max=120"`
	Amount      float64   `json:"amount" validate:"gt=0,lt=10000000000"`
	Date        string    `json:"date" validate:"required,datetime=2006-01-02"` // Format: YYYY-MM-DD
	CreatedAt   time.Time `json:"created_at"`
}

// DateRange limits list queries to [From, To). Empty bounds are open.
type DateRange struct {
	From string
	To   string
}

// Month returns the range covering the calendar month "YYYY-MM".
func Month(month string) (DateRange, error) {
	start, err := time.Parse("2006-01", month)
	if err != nil {
		return DateRange{}, err
	}
	return DateRange{
		From: start.Format(DateLayout),
		To:   start.AddDate(0, 1, 0).Format(DateLayout),
	}, nil
}

// Contains reports whether the YYYY-MM-DD date falls inside the range.
func (r DateRange) Contains(date string) bool {
	if r.From != "" && date < r.From {
		return false
	}
	if r.To != "" && date >= r.To {
		return false
	}
	return true
}
