package utils

import (
	"errors"
	"fmt"
	"regexp"
	"time"
)

// Minutes since midnight, so 0..1439 covers 00:00..23:59.
const MinutesPerDay = 1440

var (
	ErrInvalidTimeFormat = errors.New("invalid_time_format")
	ErrInvalidDateFormat = errors.New("invalid_date_format")

	timePattern = regexp.MustCompile(`^([01][0-9]|2[0-3]):[0-5][0-9]$`)
	datePattern = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)
)

// ParseTime converts a strict 24-hour "HH:MM" string to minutes since
// midnight.
func ParseTime(s string) (int, error) {
	if !timePattern.MatchString(s) {
		return 0, ErrInvalidTimeFormat
	}
	hours := int(s[0]-'0')*10 + int(s[1]-'0')
	mins := int(s[3]-'0')*10 + int(s[4]-'0')
	return hours*60 + mins, nil
}

// FormatTime is the inverse of ParseTime.
func FormatTime(minutes int) (string, error) {
	if minutes < 0 || minutes >= MinutesPerDay {
		return "", fmt.Errorf("minutes %d out of range", minutes)
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60), nil
}

// MustFormatTime panics on out-of-range input; callers use it for values
// already validated against the booking invariants.
func MustFormatTime(minutes int) string {
	s, err := FormatTime(minutes)
	if err != nil {
		panic(err)
	}
	return s
}

func IsOrdered(startMinutes, endMinutes int) bool {
	return startMinutes < endMinutes
}

// ValidateDate checks the YYYY-MM-DD shape and that the value is a real
// calendar day.
func ValidateDate(s string) error {
	if !datePattern.MatchString(s) {
		return ErrInvalidDateFormat
	}
	if _, err := time.Parse("2006-01-02", s); err != nil {
		return ErrInvalidDateFormat
	}
	return nil
}

// DateOf renders t as a plain calendar day.
func DateOf(t time.Time) string {
	return t.Format("2006-01-02")
}

// IsTodayOrFuture compares plain YYYY-MM-DD days; the strings sort
// lexicographically.
func IsTodayOrFuture(date string, now time.Time) bool {
	return date >= DateOf(now)
}
