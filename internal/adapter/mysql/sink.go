package mysql

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"strings"
	"time"

	_ "github.com/go-sql-driver/mysql"

	"punchclock/internal/domain"
)

// Client implements ports.Sink by writing summaries to a MySQL table.
type Client struct {
	db  *sql.DB
	log *slog.Logger
}

// NewClient opens a MySQL connection using the provided DSN.
// Example DSN: user:pass@tcp(host:3306)/dbname?parseTime=true&multiStatements=true
func NewClient(ctx context.Context, dsn string, log *slog.Logger) (*Client, error) {
	if dsn == "" {
		return nil, errors.New("mysql: DSN is required")
	}
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		return nil, err
	}
	// Conservative pool defaults; can be adjusted via env later.
	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	c, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := db.PingContext(c); err != nil {
		db.Close()
		return nil, err
	}
	return &Client{db: db, log: log}, nil
}

// SyncSummaries upserts one row per employee. Re-running a batch for the
// same employees overwrites the previous figures.
func (c *Client) SyncSummaries(ctx context.Context, summaries []domain.EmployeeSummary) error {
	if len(summaries) == 0 {
		return nil
	}
	tx, err := c.db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	const q = `
INSERT INTO attendance_summaries
  (employee_code, employee_name, company, department,
   day1_punches, day1_hours, day2_punches, day2_hours, total_hours,
   cross_midnight, unpaired_punches)
VALUES
  (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON DUPLICATE KEY UPDATE
  employee_name=VALUES(employee_name),
  company=VALUES(company),
  department=VALUES(department),
  day1_punches=VALUES(day1_punches),
  day1_hours=VALUES(day1_hours),
  day2_punches=VALUES(day2_punches),
  day2_hours=VALUES(day2_hours),
  total_hours=VALUES(total_hours),
  cross_midnight=VALUES(cross_midnight),
  unpaired_punches=VALUES(unpaired_punches);
`
	stmt, err := tx.PrepareContext(ctx, q)
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, s := range summaries {
		if _, err := stmt.ExecContext(
			ctx,
			s.Code,
			s.Name,
			s.Company,
			s.Department,
			punchesColumn(s.Day1Punches),
			domain.MinutesToDecimalHours(s.Day1Minutes),
			punchesColumn(s.Day2Punches),
			domain.MinutesToDecimalHours(s.Day2Minutes),
			domain.MinutesToDecimalHours(s.TotalMinutes),
			s.CrossMidnight != nil,
			unpairedColumn(s.Unpaired),
		); err != nil {
			tx.Rollback()
			return err
		}
	}
	if err := tx.Commit(); err != nil {
		return err
	}
	c.log.Info("mysql sink upserted summaries", slog.Int("count", len(summaries)))
	return nil
}

// punchesColumn renders a punch list the way the report displays it.
func punchesColumn(punches []domain.WallTime) string {
	parts := make([]string, len(punches))
	for i, p := range punches {
		parts[i] = p.String()
	}
	return strings.Join(parts, ", ")
}

func unpairedColumn(unpaired []domain.UnpairedPunch) string {
	parts := make([]string, len(unpaired))
	for i, u := range unpaired {
		parts[i] = u.Punch.String() + " (likely " + string(u.Direction) + ", unverified)"
	}
	return strings.Join(parts, "; ")
}

// Close closes the underlying DB. Not wired via interface to keep ports minimal.
func (c *Client) Close() error { return c.db.Close() }
