// Package paystatus derives which students are overdue or due soon from their
// payment history. Everything here is pure: no I/O, no shared state.
package paystatus

import (
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/Dan9191/tutor-service/internal/models"
)

var (
	ErrInvalidDate    = errors.New("invalid payment date")
	ErrNegativeWindow = errors.New("reminder window must not be negative")
)

const day = 24 * time.Hour

type lastPayment struct {
	date  time.Time
	group string
}

// Compute returns the overdue and upcoming students as of today. A student is
// due one calendar month after their latest payment dated on or before today.
// Upcoming students are only reported when due within reminderDays.
func Compute(payments []models.Payment, reminderDays int, today time.Time) (models.PaymentStatusReport, error) {
	report := models.PaymentStatusReport{
		Overdue:  []models.PaymentStatus{},
		Upcoming: []models.PaymentStatus{},
	}
	if reminderDays < 0 {
		return report, ErrNegativeWindow
	}
	today = Midnight(today)
	report.Today = today.Format(models.DateLayout)

	latest := make(map[string]lastPayment)
	for _, p := range payments {
		date, err := ParseDate(p.Date, today.Location())
		if err != nil {
			return report, fmt.Errorf("payment %s: %w", p.ID, err)
		}
		if date.After(today) {
			continue
		}
		name := strings.TrimSpace(p.StudentName)
		// equal dates: the later entry replaces the earlier one
		if cur, ok := latest[name]; ok && date.Before(cur.date) {
			continue
		}
		latest[name] = lastPayment{date: date, group: p.GroupName}
	}

	for name, last := range latest {
		due := DueDate(last.date)
		diff := DaysBetween(today, due)
		status := models.PaymentStatus{
			StudentName: name,
			GroupName:   last.group,
			DueDate:     due.Format(models.DateLayout),
			DiffDays:    diff,
		}
		switch {
		case diff < 0:
			status.Days = -diff
			report.Overdue = append(report.Overdue, status)
		case diff <= reminderDays:
			status.Days = diff
			report.Upcoming = append(report.Upcoming, status)
		}
	}

	sort.Slice(report.Overdue, func(i, j int) bool {
		a, b := report.Overdue[i], report.Overdue[j]
		if a.Days != b.Days {
			return a.Days > b.Days
		}
		return a.StudentName < b.StudentName
	})
	sort.Slice(report.Upcoming, func(i, j int) bool {
		a, b := report.Upcoming[i], report.Upcoming[j]
		if a.Days != b.Days {
			return a.Days < b.Days
		}
		return a.StudentName < b.StudentName
	})
	return report, nil
}

// DueDate advances the payment date by one calendar month. Days missing from the
// target month overflow into the next one (Jan 31 -> Mar 2 or Mar 3).
func DueDate(paid time.Time) time.Time {
	return Midnight(paid.AddDate(0, 1, 0))
}

// DaysBetween counts whole days from from to to, rounding partial days up.
func DaysBetween(from, to time.Time) int {
	return int(math.Ceil(float64(to.Sub(from)) / float64(day)))
}
