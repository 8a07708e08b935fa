package cli

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func runAnalyze(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := Build()
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(append([]string{"analyze"}, args...))
	err := root.Execute()
	return buf.String(), err
}

func TestAnalyzePairTable(t *testing.T) {
	out, err := runAnalyze(t, "09:00,09:00,10:45,11:00,15:45,16:00,20:02,20:36")
	require.NoError(t, err)

	assert.Contains(t, out, "Complete pairs: 3")
	assert.Contains(t, out, "Unpaired punch: 20:36 (position 7, likely entry, unverified")
	assert.Contains(t, out, "Total working time: 602 minutes = 10.03 hours")
}

func TestAnalyzeCustomBreaks(t *testing.T) {
	out, err := runAnalyze(t, "20:02,20:36", "--breaks", "20:30-21:00")
	require.NoError(t, err)
	assert.Contains(t, out, "Breaks: 20:30-21:00")
	assert.Contains(t, out, "Total working time: 28 minutes")
}

func TestAnalyzeNoBreaks(t *testing.T) {
	out, err := runAnalyze(t, "20:02,20:36", "--no-breaks")
	require.NoError(t, err)
	assert.Contains(t, out, "Breaks: none")
	assert.Contains(t, out, "Total working time: 34 minutes")
}

func TestAnalyzeSpanMatchesBatchSpanMode(t *testing.T) {
	// Both punches sit inside their grace allowances; span mode measures
	// them as logged, so the total must be the ungraced 620, not the
	// grace-snapped 630 a pair computation would produce.
	out, err := runAnalyze(t, "09:05,12:00,12:40,20:25", "--span")
	require.NoError(t, err)
	assert.Contains(t, out, "Span 09:05-20:25: raw 680, breaks 60, net 620")
	assert.Contains(t, out, "Total working time: 620 minutes")
}

func TestAnalyzeRejectsBadBreakSpec(t *testing.T) {
	_, err := runAnalyze(t, "09:00,18:00", "--breaks", "10:30")
	assert.Error(t, err)
}

func TestAnalyzeRejectsEmptyPunchList(t *testing.T) {
	_, err := runAnalyze(t, "garbage")
	assert.Error(t, err)
}
