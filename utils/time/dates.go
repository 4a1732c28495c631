package time

import (
	"errors"
	"time"
)

// DateLayout is the canonical layout of start and end dates.
const DateLayout = "2006-01-02 15:04:05"

// Error constants
var (
	ErrIllegalDate  = errors.New("date should be in the format YYYY-MM-DD HH:mm:ss")
	ErrIllegalRange = errors.New("end date is before start date")
)

var layouts = [...]string{DateLayout, "2006-01-02", time.RFC3339}

// ParseDate parses s as UTC time. Besides DateLayout, plain dates and RFC 3339
// timestamps are accepted.
func ParseDate(s string) (time.Time, error) {
	for _, l := range layouts {
		if t, err := time.ParseInLocation(l, s, time.UTC); err == nil {
			return t, nil
		}
	}
	return time.Time{}, ErrIllegalDate
}

// Days calls visit once per day from start to end, both inclusive. It stops
// early if visit returns false.
func Days(start, end time.Time, visit func(day time.Time) bool) error {
	if end.Before(start) {
		return ErrIllegalRange
	}
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if !visit(d) {
			return nil
		}
	}
	return nil
}
