package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShiftPolicyValidate(t *testing.T) {
	require.NoError(t, DefaultShift().Validate())

	inverted := ShiftPolicy{Name: "bad", Breaks: []BreakWindow{
		{Start: WallTime{Hour: 11}, End: WallTime{Hour: 10, Minute: 45}},
	}}
	assert.Error(t, inverted.Validate())

	overlapping := ShiftPolicy{Name: "bad", Breaks: []BreakWindow{
		{Start: WallTime{Hour: 10}, End: WallTime{Hour: 11}},
		{Start: WallTime{Hour: 10, Minute: 30}, End: WallTime{Hour: 11, Minute: 30}},
	}}
	assert.Error(t, overlapping.Validate(), "overlapping windows would double-count the intersection")
}

func TestParseBreakSpec(t *testing.T) {
	got, err := ParseBreakSpec("10:30-11:00, 13:00-13:30")
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, BreakWindow{Start: WallTime{Hour: 10, Minute: 30}, End: WallTime{Hour: 11}}, got[0])
	assert.Equal(t, BreakWindow{Start: WallTime{Hour: 13}, End: WallTime{Hour: 13, Minute: 30}}, got[1])
}

func TestParseBreakSpecEmpty(t *testing.T) {
	got, err := ParseBreakSpec("")
	require.NoError(t, err)
	assert.Nil(t, got)
}

// Unlike punch tokens, a malformed break spec fails the whole parse: it is
// user-supplied configuration, not device-logged data.
func TestParseBreakSpecMalformed(t *testing.T) {
	for _, in := range []string{
		"10:30",             // missing '-'
		"10:30-11:00-12:00", // too many fields
		"10:30-eleven",      // unparsable time
		"11:00-10:30",       // inverted
		"10:30-11:00,oops",  // one bad token poisons the parse
	} {
		_, err := ParseBreakSpec(in)
		assert.Errorf(t, err, "ParseBreakSpec(%q)", in)
	}
}

func TestDefaults(t *testing.T) {
	shift := DefaultShift()
	assert.Equal(t, WallTime{Hour: 9}, shift.Begin)
	assert.Equal(t, WallTime{Hour: 20, Minute: 30}, shift.End)
	assert.Len(t, shift.Breaks, 4)

	rules := DefaultRules()
	assert.True(t, rules.AllowMidnightSpan)
	assert.True(t, rules.DeductBreaks)

	rec := DefaultReconcilePolicy()
	assert.Equal(t, WallTime{Hour: 7, Minute: 15}, rec.MidnightBoundary)
	assert.Equal(t, WallTime{Hour: 9}, rec.ShiftStartReference)
	assert.Equal(t, WallTime{Hour: 7, Minute: 30}, rec.EarlyGraceStart)
}
