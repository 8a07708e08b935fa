package csvfile

import (
	"context"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/domain"
)

const dayFile = `Code,Name,Company,Department,Shift,Category,Punch Records,Status
E001,Alice Kumar,Raga Tex,Stitching,Shift,Cont Worked,"09:00,09:00,13:00,13:30,20:30",Present
E002,Bala Raj,Raga Tex,Packing,Shift,Cont Worked,"09:05, bogus, 18:02",Present
E003,Chitra Devi,Raga Tex,Stitching,Shift,Cont Worked,"",Not Present
,Ghost Row,Raga Tex,Stitching,Shift,Cont Worked,"09:00",Present
`

func writeDayFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "day1.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestFetchDay(t *testing.T) {
	path := writeDayFile(t, dayFile)
	src := NewSource(path, path, testLogger())

	records, err := src.FetchDay(context.Background(), domain.Day1)
	require.NoError(t, err)
	require.Len(t, records, 2, "absent and codeless rows are excluded")

	assert.Equal(t, "E001", records[0].Code)
	assert.Equal(t, "Alice Kumar", records[0].Name)
	assert.Equal(t, "Stitching", records[0].Department)
	assert.Len(t, records[0].Punches, 5, "duplicates survive the source; dedup is the engine's job")

	assert.Equal(t, "E002", records[1].Code)
	assert.Equal(t, []domain.WallTime{{Hour: 9, Minute: 5}, {Hour: 18, Minute: 2}}, records[1].Punches,
		"malformed token dropped, row kept")
}

func TestFetchDayMissingFile(t *testing.T) {
	src := NewSource("/nonexistent/day1.txt", "/nonexistent/day2.txt", testLogger())
	_, err := src.FetchDay(context.Background(), domain.Day1)
	assert.Error(t, err)
}

func TestFetchDayEmptyFile(t *testing.T) {
	path := writeDayFile(t, "")
	src := NewSource(path, path, testLogger())
	records, err := src.FetchDay(context.Background(), domain.Day1)
	require.NoError(t, err)
	assert.Empty(t, records)
}
