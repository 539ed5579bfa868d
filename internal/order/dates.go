package order

import (
	"fmt"
	"time"
)

const (
	// DateLayout is the wire format of delivery dates.
	DateLayout = "2006-01-02"
	// MinLeadDays is how many calendar days ahead a delivery must be booked.
	MinLeadDays = 2
	// DefaultDateCount is how many dates are offered when none are configured.
	DefaultDateCount = 7
)

var weekdays = [...]string{"Вс", "Пн", "Вт", "Ср", "Чт", "Пт", "Сб"}

// DeliveryDate is one option of the date picker.
type DeliveryDate struct {
	Value     string
	Label     string
	Available bool
}

// ParseDates parses configured delivery dates.
func ParseDates(values []string) ([]time.Time, error) {
	out := make([]time.Time, 0, len(values))
	for _, v := range values {
		d, err := time.Parse(DateLayout, v)
		if err != nil {
			return nil, fmt.Errorf("parse delivery date %q: %w", v, err)
		}
		out = append(out, d)
	}
	return out, nil
}

// DefaultDates offers n consecutive days starting today.
func DefaultDates(now time.Time, n int) []time.Time {
	today := civil(now)
	out := make([]time.Time, n)
	for i := range out {
		out[i] = today.AddDate(0, 0, i)
	}
	return out
}

// Options marks each date as available when it is at least MinLeadDays
// calendar days after now.
func Options(dates []time.Time, now time.Time) []DeliveryDate {
	today := civil(now)
	out := make([]DeliveryDate, 0, len(dates))
	for _, d := range dates {
		day := civil(d)
		out = append(out, DeliveryDate{
			Value:     day.Format(DateLayout),
			Label:     fmt.Sprintf("%s %s", weekdays[day.Weekday()], day.Format("02.01")),
			Available: daysBetween(today, day) >= MinLeadDays,
		})
	}
	return out
}

// Reconcile keeps selected when it is still available and otherwise falls
// back to the first available option, or "" when there is none.
func Reconcile(options []DeliveryDate, selected string) string {
	first := ""
	for _, o := range options {
		if !o.Available {
			continue
		}
		if o.Value == selected {
			return selected
		}
		if first == "" {
			first = o.Value
		}
	}
	return first
}

// IsAvailable reports whether value is a selectable option.
func IsAvailable(options []DeliveryDate, value string) bool {
	for _, o := range options {
		if o.Value == value {
			return o.Available
		}
	}
	return false
}

func civil(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(to.Sub(from).Hours() / 24)
}
