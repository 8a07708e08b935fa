package app

import (
	"context"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	"punchclock/internal/adapter/csvfile"
	"punchclock/internal/adapter/erpnext"
	msql "punchclock/internal/adapter/mysql"
	"punchclock/internal/config"
	"punchclock/internal/metrics"
	"punchclock/internal/migrate"
	"punchclock/internal/ports"
	"punchclock/internal/usecase"
)

// App wires adapters and use cases.
type App struct {
	log      *slog.Logger
	uc       *usecase.ProcessUseCase
	registry *prometheus.Registry
}

func New(log *slog.Logger, cfg config.Config) (*App, error) {
	opt, err := config.LoadPolicy(cfg.Policy.Path)
	if err != nil {
		return nil, err
	}

	source := csvfile.NewSource(cfg.Files.Day1, cfg.Files.Day2, log)

	var sinks []ports.Sink
	if cfg.MySQL.DSN != "" {
		// Run migrations before opening the sink for use
		if err := migrate.Run(context.Background(), cfg.MySQL.DSN, log); err != nil {
			return nil, err
		}
		sink, err := msql.NewClient(context.Background(), cfg.MySQL.DSN, log)
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, sink)
	}
	if cfg.ERPNext.BaseURL != "" {
		sinks = append(sinks, erpnext.NewClient(cfg.ERPNext.BaseURL, cfg.ERPNext.Token, cfg.ERPNext.Company, cfg.ERPNext.ForDate, log))
	}

	registry := prometheus.NewRegistry()
	uc := &usecase.ProcessUseCase{
		Log:     log,
		Source:  source,
		Sinks:   sinks,
		Options: opt,
		Metrics: metrics.NewCollector(registry),
	}

	return &App{log: log, uc: uc, registry: registry}, nil
}

// RunOnce processes both day files and syncs the resulting summaries.
func (a *App) RunOnce(ctx context.Context) error {
	return a.uc.Run(ctx)
}
