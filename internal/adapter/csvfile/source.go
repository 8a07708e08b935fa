// Package csvfile reads the attendance day files exported by the time-clock
// system: CSV with a header row and one row per employee, punches as a
// comma-separated "HH:MM" list inside a quoted field.
package csvfile

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"punchclock/internal/domain"
)

// Source implements ports.RecordSource over a pair of day files.
type Source struct {
	day1Path string
	day2Path string
	log      *slog.Logger
}

func NewSource(day1Path, day2Path string, log *slog.Logger) *Source {
	return &Source{day1Path: day1Path, day2Path: day2Path, log: log}
}

// Column layout of the exported day files. Columns 4 and 5 carry shift
// metadata the engine does not consume.
const (
	colCode = iota
	colName
	colCompany
	colDepartment
	_
	_
	colPunches
	colStatus

	minColumns = colStatus + 1
)

const statusAbsent = "Not Present"

// FetchDay reads the file for the given day role. Rows flagged absent are
// excluded; malformed punch tokens are dropped per token, never per row.
func (s *Source) FetchDay(ctx context.Context, role domain.DayRole) ([]domain.AttendanceRecord, error) {
	path := s.day1Path
	if role == domain.Day2 {
		path = s.day2Path
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("csvfile: open %s file: %w", role, err)
	}
	defer f.Close()
	return s.read(ctx, f, path)
}

func (s *Source) read(ctx context.Context, r io.Reader, path string) ([]domain.AttendanceRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true

	// Header row.
	if _, err := cr.Read(); err != nil {
		if err == io.EOF {
			return nil, nil
		}
		return nil, fmt.Errorf("csvfile: read header of %s: %w", path, err)
	}

	var out []domain.AttendanceRecord
	for {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			// One mangled row must not abort the rest of the file.
			s.log.Warn("skipping unreadable row", slog.String("file", path), slog.String("error", err.Error()))
			continue
		}
		if len(row) < minColumns {
			continue
		}
		code := strings.TrimSpace(row[colCode])
		if code == "" || strings.TrimSpace(row[colStatus]) == statusAbsent {
			continue
		}
		punches := domain.ParsePunchList(row[colPunches])
		if dropped := tokenCount(row[colPunches]) - len(punches); dropped > 0 {
			s.log.Debug("dropped malformed punch tokens",
				slog.String("employee", code), slog.Int("dropped", dropped))
		}
		out = append(out, domain.AttendanceRecord{
			Code:       code,
			Name:       strings.TrimSpace(row[colName]),
			Company:    strings.TrimSpace(row[colCompany]),
			Department: strings.TrimSpace(row[colDepartment]),
			Punches:    punches,
		})
	}
	return out, nil
}

func tokenCount(s string) int {
	n := 0
	for _, tok := range strings.Split(s, ",") {
		if strings.TrimSpace(tok) != "" {
			n++
		}
	}
	return n
}
