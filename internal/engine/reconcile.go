package engine

import "punchclock/internal/domain"

// ReconcileCrossMidnight moves day2 punches that are really the tail of a
// day1 shift (the employee clocked out after midnight) onto day1. Every
// day2 punch at or before the boundary migrates, appended to day1 in its
// recorded order. When either day has no punches there is nothing to merge
// and no cross-midnight condition is reported.
func ReconcileCrossMidnight(day1, day2 []domain.WallTime, boundary domain.WallTime) ([]domain.WallTime, []domain.WallTime, *domain.CrossMidnightInfo) {
	if len(day1) == 0 || len(day2) == 0 {
		return day1, day2, nil
	}

	limit := boundary.Minutes()
	var early, remaining []domain.WallTime
	for _, p := range day2 {
		if p.Minutes() <= limit {
			early = append(early, p)
		} else {
			remaining = append(remaining, p)
		}
	}
	if len(early) == 0 {
		return day1, day2, nil
	}

	merged := make([]domain.WallTime, 0, len(day1)+len(early))
	merged = append(merged, day1...)
	merged = append(merged, early...)
	return merged, remaining, &domain.CrossMidnightInfo{MigratedPunches: early}
}

// FilterDayOne applies the shift-start reference to day1 punches: a shift
// cannot be credited with time before its official start even if the
// terminal logged an earlier tap. Punches in the narrow pre-shift band
// [EarlyGraceStart, ShiftStartReference) snap to exactly the reference;
// punches before the band are excluded outright.
func FilterDayOne(punches []domain.WallTime, pol domain.ReconcilePolicy) []domain.WallTime {
	ref := pol.ShiftStartReference.Minutes()
	early := pol.EarlyGraceStart.Minutes()

	var out []domain.WallTime
	for _, p := range punches {
		m := p.Minutes()
		switch {
		case m < early:
			// Pre-dawn tap, outside any plausible shift start.
		case m < ref:
			out = append(out, pol.ShiftStartReference)
		default:
			out = append(out, p)
		}
	}
	return out
}
