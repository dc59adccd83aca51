package paystatus

import (
	"fmt"
	"time"

	"github.com/Dan9191/tutor-service/internal/models"
)

// Midnight truncates t to the start of its calendar day in t's location.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// Today returns the current date at midnight in loc, or in local time when loc is nil.
func Today(loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return Midnight(time.Now().In(loc))
}

// ParseDate parses a YYYY-MM-DD date at midnight in loc.
func ParseDate(value string, loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(models.DateLayout, value, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w %q", ErrInvalidDate, value)
	}
	return t, nil
}
