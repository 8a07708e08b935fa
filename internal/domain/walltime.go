package domain

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// WallTime is a time-of-day value with no date component. Two WallTimes
// compare by minutes since midnight only; comparison alone cannot express
// "tomorrow", which is why the duration engine carries an explicit
// midnight-span flag instead.
type WallTime struct {
	Hour   int
	Minute int
}

// Minutes converts t to minutes since midnight. Minutes is the working unit
// throughout the engine; WallTime exists for parsing and display.
func (t WallTime) Minutes() int {
	return t.Hour*60 + t.Minute
}

// FromMinutes converts minutes since midnight back to a WallTime for
// display. Values >= 1440 wrap into the next day.
func FromMinutes(m int) WallTime {
	m %= 24 * 60
	if m < 0 {
		m += 24 * 60
	}
	return WallTime{Hour: m / 60, Minute: m % 60}
}

func (t WallTime) String() string {
	return fmt.Sprintf("%02d:%02d", t.Hour, t.Minute)
}

// Before reports whether t is earlier than u in minutes since midnight.
func (t WallTime) Before(u WallTime) bool {
	return t.Minutes() < u.Minutes()
}

// ParseWallTime parses a "HH:MM" token. Hours must be 0-23 and minutes 0-59.
func ParseWallTime(s string) (WallTime, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return WallTime{}, fmt.Errorf("invalid time %q: expected HH:MM", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil {
		return WallTime{}, fmt.Errorf("invalid hour in %q: %w", s, err)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil {
		return WallTime{}, fmt.Errorf("invalid minute in %q: %w", s, err)
	}
	if h < 0 || h > 23 || m < 0 || m > 59 {
		return WallTime{}, fmt.Errorf("time %q out of range", s)
	}
	return WallTime{Hour: h, Minute: m}, nil
}

// ParsePunchList parses a comma-separated list of "HH:MM" tokens as logged
// by a clock terminal. Malformed tokens are dropped rather than failing the
// whole record: punch data is device-logged and frequently dirty, and one
// bad token must not cost an employee their computed day.
func ParsePunchList(s string) []WallTime {
	var out []WallTime
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		t, err := ParseWallTime(tok)
		if err != nil {
			continue
		}
		out = append(out, t)
	}
	return out
}

// MinutesToDecimalHours renders minutes as decimal hours rounded to two
// places, the unit the report sinks expect.
func MinutesToDecimalHours(m int) float64 {
	return math.Round(float64(m)/60*100) / 100
}
