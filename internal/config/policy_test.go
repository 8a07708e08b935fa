package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"punchclock/internal/domain"
	"punchclock/internal/engine"
)

func writePolicy(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "policy.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadPolicyDefaults(t *testing.T) {
	opt, err := LoadPolicy("")
	require.NoError(t, err)
	assert.Equal(t, engine.DefaultOptions(), opt)
}

func TestLoadPolicyOverlay(t *testing.T) {
	path := writePolicy(t, `
shift:
  name: Night
  begin: "22:00"
  end: "06:00"
  breaks:
    - "01:00-01:30"
rules:
  grace_late_minutes: 5
  deduct_breaks: false
reconcile:
  midnight_boundary: "06:45"
mode: span
order: chronological
`)
	opt, err := LoadPolicy(path)
	require.NoError(t, err)

	assert.Equal(t, "Night", opt.Shift.Name)
	assert.Equal(t, domain.WallTime{Hour: 22}, opt.Shift.Begin)
	assert.Equal(t, domain.WallTime{Hour: 6}, opt.Shift.End)
	require.Len(t, opt.Shift.Breaks, 1)
	assert.Equal(t, 5, opt.Rules.GraceLateMinutes)
	assert.Equal(t, 10, opt.Rules.GraceEarlyMinutes, "unset values keep their defaults")
	assert.False(t, opt.Rules.DeductBreaks)
	assert.True(t, opt.Rules.AllowMidnightSpan)
	assert.Equal(t, domain.WallTime{Hour: 6, Minute: 45}, opt.Reconcile.MidnightBoundary)
	assert.Equal(t, engine.SpanFirstToLast, opt.Mode)
	assert.Equal(t, engine.OrderChronological, opt.Order)
}

func TestLoadPolicyRejectsBadValues(t *testing.T) {
	for name, content := range map[string]string{
		"bad time":           "shift:\n  begin: \"25:00\"\n",
		"bad break":          "shift:\n  breaks:\n    - \"10:00\"\n",
		"overlapping breaks": "shift:\n  breaks:\n    - \"10:00-11:00\"\n    - \"10:30-11:30\"\n",
		"bad mode":           "mode: everything\n",
		"bad order":          "order: shuffled\n",
		"not yaml":           "\t{{{",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := LoadPolicy(writePolicy(t, content))
			assert.Error(t, err)
		})
	}
}

func TestLoadPolicyMissingFile(t *testing.T) {
	_, err := LoadPolicy("/nonexistent/policy.yaml")
	assert.Error(t, err)
}
