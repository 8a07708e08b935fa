package domain

// DayRole identifies which calendar day of the two-day processing window a
// punch list was recorded against.
type DayRole string

const (
	Day1 DayRole = "day1"
	Day2 DayRole = "day2"
)

// AttendanceRecord is one employee's row from a day file, as delivered by a
// record source. Punches keep the original recorded order; the source has
// already dropped malformed tokens and absent employees.
type AttendanceRecord struct {
	Code       string
	Name       string
	Company    string
	Department string
	Punches    []WallTime
}

// PunchPair is one continuous work interval derived from the deduplicated
// punch order.
type PunchPair struct {
	Entry WallTime
	Exit  WallTime
}

// PunchDirection is the inferred role of an unpaired punch. Only an entry
// inference exists: a dangling punch always sits at an odd position, an
// entry still waiting for its exit.
type PunchDirection string

const DirectionEntry PunchDirection = "entry"

// UnpairedPunch reports a trailing punch that has no partner. The direction
// is a parity heuristic, not a verified fact: it must never be used to fold
// the punch into a total.
type UnpairedPunch struct {
	Punch     WallTime
	Position  int // 1-based position in the deduplicated sequence
	Direction PunchDirection
	Reason    string
}

// PairBreakdown is the duration engine's per-pair result. WrapDisallowed
// distinguishes a zero that came from a forbidden midnight wrap from a
// legitimately zero-length pair.
type PairBreakdown struct {
	Entry          WallTime
	Exit           WallTime
	RawMinutes     int
	BreakMinutes   int
	NetMinutes     int
	WrapDisallowed bool
}

// DayResult is the computed outcome for one employee on one calendar day.
type DayResult struct {
	WorkedMinutes int
	Pairs         []PairBreakdown
	Unpaired      *UnpairedPunch
}

// CrossMidnightInfo records that punches logged against day2 were migrated
// back to day1 because the employee clocked out after midnight.
type CrossMidnightInfo struct {
	MigratedPunches []WallTime
}

// EmployeeSummary is the final per-employee figure handed to sinks.
type EmployeeSummary struct {
	Code          string
	Name          string
	Company       string
	Department    string
	Day1Punches   []WallTime
	Day1Minutes   int
	Day2Punches   []WallTime
	Day2Minutes   int
	TotalMinutes  int
	CrossMidnight *CrossMidnightInfo
	Unpaired      []UnpairedPunch
}
