package usecase

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"punchclock/internal/domain"
	"punchclock/internal/engine"
	"punchclock/internal/metrics"
	"punchclock/internal/ports"
)

// ProcessUseCase coordinates reading both day files, reconciling every
// employee and syncing the summaries to the configured sinks.
type ProcessUseCase struct {
	Log     *slog.Logger
	Source  ports.RecordSource
	Sinks   []ports.Sink
	Options engine.Options
	Metrics *metrics.Collector // optional
}

// Run executes one batch. A failed day file is reported but does not stop
// the other day from being processed; sinks likewise fail independently,
// and the first sink error is returned after all sinks ran.
func (uc *ProcessUseCase) Run(ctx context.Context) error {
	if uc.Source == nil || len(uc.Sinks) == 0 {
		return errors.New("usecase not initialized: missing dependencies")
	}
	start := time.Now()
	agg := engine.NewAggregator(uc.Log, uc.Options)

	var sourceErr error
	for _, role := range []domain.DayRole{domain.Day1, domain.Day2} {
		records, err := uc.Source.FetchDay(ctx, role)
		if err != nil {
			uc.Log.Error("failed to read day file", slog.String("day", string(role)), slog.String("error", err.Error()))
			sourceErr = err
			continue
		}
		uc.Log.Info("fetched attendance records", slog.String("day", string(role)), slog.Int("count", len(records)))
		agg.AddRecords(role, records)
	}

	summaries, err := agg.Summaries(ctx)
	if err != nil {
		return err
	}
	if uc.Metrics != nil {
		for _, s := range summaries {
			migrated := 0
			if s.CrossMidnight != nil {
				migrated = len(s.CrossMidnight.MigratedPunches)
			}
			uc.Metrics.ObserveEmployee(migrated, len(s.Unpaired))
		}
		uc.Metrics.ObserveBatch(time.Since(start).Seconds())
	}
	uc.Log.Info("computed summaries", slog.Int("employees", len(summaries)))

	if len(summaries) == 0 {
		uc.Log.Info("no summaries to sync")
		return sourceErr
	}

	var sinkErr error
	for _, sink := range uc.Sinks {
		if err := sink.SyncSummaries(ctx, summaries); err != nil {
			uc.Log.Error("sink failed", slog.String("error", err.Error()))
			if sinkErr == nil {
				sinkErr = err
			}
		}
	}
	if sinkErr != nil {
		return sinkErr
	}
	uc.Log.Info("batch completed", slog.Int("employees", len(summaries)), slog.Duration("took", time.Since(start)))
	return sourceErr
}
