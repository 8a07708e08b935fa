package engine

import "punchclock/internal/domain"

const minutesPerDay = 24 * 60

// Duration computes the elapsed minutes between entry and exit. When exit
// is numerically earlier than entry the pair either spans midnight (if the
// rules allow it) or is unusable: a forbidden wrap yields 0 rather than an
// error, because pairing ambiguity is a data-quality condition, not a
// program fault.
func Duration(entry, exit domain.WallTime, allowMidnightSpan bool) int {
	e, x := entry.Minutes(), exit.Minutes()
	if x >= e {
		return x - e
	}
	if allowMidnightSpan {
		return (minutesPerDay - e) + x
	}
	return 0
}

// BreakOverlap sums the overlap between [entry, exit] and each break
// window. The exit is unwrapped onto a single timeline first so that
// midnight-spanning pairs compare correctly. Windows are assumed
// non-overlapping with each other; ShiftPolicy.Validate enforces that.
func BreakOverlap(entry, exit domain.WallTime, breaks []domain.BreakWindow) int {
	e, x := entry.Minutes(), exit.Minutes()
	if x < e {
		x += minutesPerDay
	}
	total := 0
	for _, b := range breaks {
		lo := max(b.Start.Minutes(), e)
		hi := min(b.End.Minutes(), x)
		if hi > lo {
			total += hi - lo
		}
	}
	return total
}

// ApplyGrace snaps a late arrival back to the shift start and an early
// departure forward to the shift end when each falls within its grace
// allowance, then returns the resulting span. Grace only forgives: it never
// moves a punch that was already on time.
func ApplyGrace(entry, exit domain.WallTime, shift domain.ShiftPolicy, rules domain.CategoryRules) int {
	e, x := entry.Minutes(), exit.Minutes()
	begin, end := shift.Begin.Minutes(), shift.End.Minutes()
	if x < e {
		x += minutesPerDay
	}
	if end < begin {
		end += minutesPerDay
	}
	if e > begin && e-begin <= rules.GraceLateMinutes {
		e = begin
	}
	if x < end && end-x <= rules.GraceEarlyMinutes {
		x = end
	}
	if x < e {
		return 0
	}
	return x - e
}

// NetPair computes the policy-correct worked minutes for one pair. Breaks
// are deducted from the raw duration; when grace produced a non-zero
// adjusted span, the break overlap is recomputed on the snapped boundaries
// first, since grace widens the window outward and can pull a break inside
// it. The net result never goes below zero.
func NetPair(pair domain.PunchPair, shift domain.ShiftPolicy, rules domain.CategoryRules) domain.PairBreakdown {
	raw := Duration(pair.Entry, pair.Exit, rules.AllowMidnightSpan)
	wrapDisallowed := raw == 0 && pair.Exit.Minutes() < pair.Entry.Minutes()

	bd := domain.PairBreakdown{
		Entry:          pair.Entry,
		Exit:           pair.Exit,
		RawMinutes:     raw,
		WrapDisallowed: wrapDisallowed,
	}
	if wrapDisallowed {
		return bd
	}

	entry, exit := pair.Entry, pair.Exit
	span := raw
	if g := ApplyGrace(pair.Entry, pair.Exit, shift, rules); g > 0 && g != raw {
		span = g
		entry, exit = snapped(pair.Entry, pair.Exit, shift, rules)
	}
	if rules.DeductBreaks {
		bd.BreakMinutes = BreakOverlap(entry, exit, shift.Breaks)
	}
	bd.NetMinutes = span - bd.BreakMinutes
	if bd.NetMinutes < 0 {
		bd.NetMinutes = 0
	}
	return bd
}

// snapped returns the pair boundaries after grace adjustment, for re-running
// the break overlap on the widened window.
func snapped(entry, exit domain.WallTime, shift domain.ShiftPolicy, rules domain.CategoryRules) (domain.WallTime, domain.WallTime) {
	e, x := entry.Minutes(), exit.Minutes()
	begin, end := shift.Begin.Minutes(), shift.End.Minutes()
	wrapped := x < e
	if wrapped {
		x += minutesPerDay
	}
	if end < begin {
		end += minutesPerDay
	}
	if e > begin && e-begin <= rules.GraceLateMinutes {
		entry = shift.Begin
	}
	if x < end && end-x <= rules.GraceEarlyMinutes {
		exit = shift.End
	}
	return entry, exit
}
