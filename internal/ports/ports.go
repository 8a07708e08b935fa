package ports

import (
	"context"

	"punchclock/internal/domain"
)

// RecordSource provides the raw attendance rows for one calendar day.
// Implementations must exclude rows flagged as absent and drop malformed
// punch tokens before the records reach the engine.
type RecordSource interface {
	FetchDay(ctx context.Context, role domain.DayRole) ([]domain.AttendanceRecord, error)
}

// Sink receives computed summaries and persists or renders them. The
// primary target is a MySQL reporting table, but the interface is
// intentionally generic: the engine is agnostic to the output format.
type Sink interface {
	SyncSummaries(ctx context.Context, summaries []domain.EmployeeSummary) error
}
