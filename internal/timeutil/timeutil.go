// Package timeutil holds the pure wall-clock arithmetic shared by the
// scheduler, layout and analytics code: HH:mm strings, minute offsets and
// calendar-day formatting.
package timeutil

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const (
	// MinutesPerDay is 24 hours * 60 minutes.
	MinutesPerDay = 1440

	dateLayout = "2006-01-02"
	timeLayout = "15:04"
)

// FormatError reports a malformed time or date string.
type FormatError struct {
	Input string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("malformed time value %q", e.Input)
}

// ParseTime splits an HH:mm string into its hour and minute components.
// It fails if the input is not two colon-separated integers.
func ParseTime(s string) (hours, minutes int, err error) {
	parts := strings.Split(s, ":")
	if len(parts) != 2 {
		return 0, 0, &FormatError{Input: s}
	}
	hours, err = strconv.Atoi(parts[0])
	if err != nil {
		return 0, 0, &FormatError{Input: s}
	}
	minutes, err = strconv.Atoi(parts[1])
	if err != nil {
		return 0, 0, &FormatError{Input: s}
	}
	return hours, minutes, nil
}

// TimeToMinutes converts an HH:mm string to minutes since midnight.
func TimeToMinutes(s string) (int, error) {
	h, m, err := ParseTime(s)
	if err != nil {
		return 0, err
	}
	return h*60 + m, nil
}

// MinutesToTime converts minutes since midnight to a zero-padded HH:mm
// string. It is the inverse of TimeToMinutes for values in [0, 1440).
func MinutesToTime(minutes int) string {
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}

// FormatDate renders t as a YYYY-MM-DD calendar day.
func FormatDate(t time.Time) string {
	return t.Format(dateLayout)
}

// ParseDate parses a YYYY-MM-DD calendar day.
func ParseDate(s string) (time.Time, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, &FormatError{Input: s}
	}
	return t, nil
}

// FormatTime renders the wall-clock portion of t as HH:mm.
func FormatTime(t time.Time) string {
	return t.Format(timeLayout)
}

// MinuteOfDay returns minutes since midnight for the wall-clock portion of t.
func MinuteOfDay(t time.Time) int {
	return t.Hour()*60 + t.Minute()
}

// InRange reports whether the HH:mm value t falls inside [start, end).
// Malformed inputs are treated as out of range.
func InRange(t, start, end string) bool {
	tm, err := TimeToMinutes(t)
	if err != nil {
		return false
	}
	sm, err := TimeToMinutes(start)
	if err != nil {
		return false
	}
	em, err := TimeToMinutes(end)
	if err != nil {
		return false
	}
	return tm >= sm && tm < em
}
