package domain

import (
	"fmt"
	"strings"
)

// BreakWindow is a paid-break interval within a shift. Start must be
// strictly before End in minutes since midnight; a single break never wraps
// around midnight.
type BreakWindow struct {
	Start WallTime
	End   WallTime
}

// ShiftPolicy describes a shift's work window and its break windows.
// End may be numerically earlier than Begin for a shift designed to cross
// midnight (e.g. begin 22:00, end 06:00).
type ShiftPolicy struct {
	Name   string
	Begin  WallTime
	End    WallTime
	Breaks []BreakWindow
}

// Validate checks break window invariants: each window well-ordered and no
// two windows overlapping. Overlapping windows would double-count the
// intersection during deduction, so they are rejected up front.
func (s ShiftPolicy) Validate() error {
	for i, b := range s.Breaks {
		if b.Start.Minutes() >= b.End.Minutes() {
			return fmt.Errorf("shift %s: break %s-%s: start must be before end", s.Name, b.Start, b.End)
		}
		for _, prev := range s.Breaks[:i] {
			if b.Start.Minutes() < prev.End.Minutes() && b.End.Minutes() > prev.Start.Minutes() {
				return fmt.Errorf("shift %s: break %s-%s overlaps %s-%s", s.Name, b.Start, b.End, prev.Start, prev.End)
			}
		}
	}
	return nil
}

// CategoryRules governs how the duration engine treats boundary punches for
// an employee category.
type CategoryRules struct {
	GraceLateMinutes  int
	GraceEarlyMinutes int
	DeductBreaks      bool
	AllowMidnightSpan bool
}

// ReconcilePolicy holds the boundary times used when deciding which day2
// punches belong to a shift that began on day1, and how early day1 punches
// are treated relative to the official shift start.
type ReconcilePolicy struct {
	// MidnightBoundary: day2 punches at or before this time are the tail of
	// a day1 shift that ran past midnight.
	MidnightBoundary WallTime
	// ShiftStartReference: day1 work cannot be credited before this time.
	ShiftStartReference WallTime
	// EarlyGraceStart: day1 punches in [EarlyGraceStart, ShiftStartReference)
	// snap to the reference; punches before EarlyGraceStart are excluded.
	EarlyGraceStart WallTime
}

// DefaultShift returns the standard production shift: 09:00-20:30 with four
// break windows.
func DefaultShift() ShiftPolicy {
	return ShiftPolicy{
		Name:  "Shift",
		Begin: WallTime{Hour: 9},
		End:   WallTime{Hour: 20, Minute: 30},
		Breaks: []BreakWindow{
			{Start: WallTime{Hour: 10, Minute: 45}, End: WallTime{Hour: 11}},
			{Start: WallTime{Hour: 13}, End: WallTime{Hour: 13, Minute: 30}},
			{Start: WallTime{Hour: 15, Minute: 45}, End: WallTime{Hour: 16}},
			{Start: WallTime{Hour: 20, Minute: 30}, End: WallTime{Hour: 21}},
		},
	}
}

// DefaultRules returns the rules for continuously-worked categories.
func DefaultRules() CategoryRules {
	return CategoryRules{
		GraceLateMinutes:  10,
		GraceEarlyMinutes: 10,
		DeductBreaks:      true,
		AllowMidnightSpan: true,
	}
}

// DefaultReconcilePolicy returns the observed production boundaries.
func DefaultReconcilePolicy() ReconcilePolicy {
	return ReconcilePolicy{
		MidnightBoundary:    WallTime{Hour: 7, Minute: 15},
		ShiftStartReference: WallTime{Hour: 9},
		EarlyGraceStart:     WallTime{Hour: 7, Minute: 30},
	}
}

// ParseBreakSpec parses the ad hoc break mini-language: comma-separated
// "HH:MM-HH:MM" tokens. Unlike device punch data, this is user-supplied
// configuration, so any malformed token fails the whole parse.
func ParseBreakSpec(s string) ([]BreakWindow, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []BreakWindow
	for _, tok := range strings.Split(s, ",") {
		tok = strings.TrimSpace(tok)
		if tok == "" {
			continue
		}
		parts := strings.Split(tok, "-")
		if len(parts) != 2 {
			return nil, fmt.Errorf("invalid break %q: expected HH:MM-HH:MM", tok)
		}
		start, err := ParseWallTime(parts[0])
		if err != nil {
			return nil, fmt.Errorf("invalid break %q: %w", tok, err)
		}
		end, err := ParseWallTime(parts[1])
		if err != nil {
			return nil, fmt.Errorf("invalid break %q: %w", tok, err)
		}
		if start.Minutes() >= end.Minutes() {
			return nil, fmt.Errorf("invalid break %q: start must be before end", tok)
		}
		out = append(out, BreakWindow{Start: start, End: end})
	}
	return out, nil
}
