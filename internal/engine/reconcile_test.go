package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/domain"
)

func TestReconcileCrossMidnightMigratesEarlyPunches(t *testing.T) {
	day1 := []domain.WallTime{wt(21, 0)}
	day2 := []domain.WallTime{wt(0, 1), wt(0, 1), wt(6, 30)}

	d1, d2, info := ReconcileCrossMidnight(day1, day2, wt(7, 15))

	assert.Equal(t, []domain.WallTime{wt(21, 0), wt(0, 1), wt(0, 1), wt(6, 30)}, d1)
	assert.Empty(t, d2)
	require.NotNil(t, info)
	assert.Equal(t, []domain.WallTime{wt(0, 1), wt(0, 1), wt(6, 30)}, info.MigratedPunches)
}

func TestReconcileCrossMidnightSplitsAtBoundary(t *testing.T) {
	day1 := []domain.WallTime{wt(21, 0)}
	day2 := []domain.WallTime{wt(6, 30), wt(9, 2), wt(18, 5)}

	d1, d2, info := ReconcileCrossMidnight(day1, day2, wt(7, 15))

	assert.Equal(t, []domain.WallTime{wt(21, 0), wt(6, 30)}, d1)
	assert.Equal(t, []domain.WallTime{wt(9, 2), wt(18, 5)}, d2)
	require.NotNil(t, info)
	assert.Equal(t, []domain.WallTime{wt(6, 30)}, info.MigratedPunches)
}

func TestReconcileCrossMidnightSkipsEmptyDays(t *testing.T) {
	d1, d2, info := ReconcileCrossMidnight(nil, []domain.WallTime{wt(0, 5)}, wt(7, 15))
	assert.Nil(t, info, "no day1 punches: nothing to merge")
	assert.Empty(t, d1)
	assert.Equal(t, []domain.WallTime{wt(0, 5)}, d2)

	d1, d2, info = ReconcileCrossMidnight([]domain.WallTime{wt(9, 0)}, nil, wt(7, 15))
	assert.Nil(t, info, "no day2 punches: nothing to merge")
	assert.Equal(t, []domain.WallTime{wt(9, 0)}, d1)
	assert.Empty(t, d2)
}

func TestReconcileCrossMidnightNoEarlyPunches(t *testing.T) {
	day1 := []domain.WallTime{wt(9, 0), wt(18, 0)}
	day2 := []domain.WallTime{wt(9, 5), wt(18, 2)}
	d1, d2, info := ReconcileCrossMidnight(day1, day2, wt(7, 15))
	assert.Nil(t, info)
	assert.Equal(t, day1, d1)
	assert.Equal(t, day2, d2)
}

func TestFilterDayOne(t *testing.T) {
	pol := domain.DefaultReconcilePolicy()
	tests := []struct {
		name string
		in   []domain.WallTime
		want []domain.WallTime
	}{
		{"on or after reference kept", []domain.WallTime{wt(9, 0), wt(18, 0)}, []domain.WallTime{wt(9, 0), wt(18, 0)}},
		{"pre-shift band snaps to reference", []domain.WallTime{wt(8, 45), wt(18, 0)}, []domain.WallTime{wt(9, 0), wt(18, 0)}},
		{"band lower edge snaps", []domain.WallTime{wt(7, 30)}, []domain.WallTime{wt(9, 0)}},
		{"before the band excluded", []domain.WallTime{wt(7, 29), wt(9, 10)}, []domain.WallTime{wt(9, 10)}},
		{"empty", nil, nil},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, FilterDayOne(tt.in, pol))
		})
	}
}

func TestReconcileAppliesReferenceBeforeMigration(t *testing.T) {
	pol := domain.DefaultReconcilePolicy()
	day1 := []domain.WallTime{wt(7, 0), wt(8, 50), wt(21, 0)}
	day2 := []domain.WallTime{wt(0, 1)}

	d1, d2, info := Reconcile(day1, day2, pol)

	// 07:00 dropped, 08:50 snapped to 09:00, migrated 00:01 appended last.
	assert.Equal(t, []domain.WallTime{wt(9, 0), wt(21, 0), wt(0, 1)}, d1)
	assert.Empty(t, d2)
	require.NotNil(t, info)
}
