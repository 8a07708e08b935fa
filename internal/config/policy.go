package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"punchclock/internal/domain"
	"punchclock/internal/engine"
)

// policyFile is the on-disk YAML shape of a policy. Times are "HH:MM"
// strings and breaks use the same mini-language as the analyze command.
type policyFile struct {
	Shift struct {
		Name   string   `yaml:"name"`
		Begin  string   `yaml:"begin"`
		End    string   `yaml:"end"`
		Breaks []string `yaml:"breaks"`
	} `yaml:"shift"`
	Rules struct {
		GraceLateMinutes  *int  `yaml:"grace_late_minutes"`
		GraceEarlyMinutes *int  `yaml:"grace_early_minutes"`
		DeductBreaks      *bool `yaml:"deduct_breaks"`
		AllowMidnightSpan *bool `yaml:"allow_midnight_span"`
	} `yaml:"rules"`
	Reconcile struct {
		MidnightBoundary    string `yaml:"midnight_boundary"`
		ShiftStartReference string `yaml:"shift_start_reference"`
		EarlyGraceStart     string `yaml:"early_grace_start"`
	} `yaml:"reconcile"`
	Mode  string `yaml:"mode"`  // "pairs" (default) or "span"
	Order string `yaml:"order"` // "recorded" (default) or "chronological"
}

// LoadPolicy returns the engine options for a batch run: the production
// defaults overlaid with whatever the YAML file at path specifies. An empty
// path yields the defaults unchanged. Policy is user-supplied
// configuration, so any malformed value fails the load.
func LoadPolicy(path string) (engine.Options, error) {
	opt := engine.DefaultOptions()
	if path == "" {
		return opt, nil
	}

	b, err := os.ReadFile(path)
	if err != nil {
		return opt, fmt.Errorf("policy: %w", err)
	}
	var pf policyFile
	if err := yaml.Unmarshal(b, &pf); err != nil {
		return opt, fmt.Errorf("policy: parse %s: %w", path, err)
	}

	if pf.Shift.Name != "" {
		opt.Shift.Name = pf.Shift.Name
	}
	if err := overlayTime(&opt.Shift.Begin, pf.Shift.Begin); err != nil {
		return opt, fmt.Errorf("policy: shift.begin: %w", err)
	}
	if err := overlayTime(&opt.Shift.End, pf.Shift.End); err != nil {
		return opt, fmt.Errorf("policy: shift.end: %w", err)
	}
	if pf.Shift.Breaks != nil {
		breaks := make([]domain.BreakWindow, 0, len(pf.Shift.Breaks))
		for _, spec := range pf.Shift.Breaks {
			bw, err := domain.ParseBreakSpec(spec)
			if err != nil {
				return opt, fmt.Errorf("policy: shift.breaks: %w", err)
			}
			breaks = append(breaks, bw...)
		}
		opt.Shift.Breaks = breaks
	}
	if err := opt.Shift.Validate(); err != nil {
		return opt, fmt.Errorf("policy: %w", err)
	}

	if v := pf.Rules.GraceLateMinutes; v != nil {
		opt.Rules.GraceLateMinutes = *v
	}
	if v := pf.Rules.GraceEarlyMinutes; v != nil {
		opt.Rules.GraceEarlyMinutes = *v
	}
	if v := pf.Rules.DeductBreaks; v != nil {
		opt.Rules.DeductBreaks = *v
	}
	if v := pf.Rules.AllowMidnightSpan; v != nil {
		opt.Rules.AllowMidnightSpan = *v
	}

	if err := overlayTime(&opt.Reconcile.MidnightBoundary, pf.Reconcile.MidnightBoundary); err != nil {
		return opt, fmt.Errorf("policy: reconcile.midnight_boundary: %w", err)
	}
	if err := overlayTime(&opt.Reconcile.ShiftStartReference, pf.Reconcile.ShiftStartReference); err != nil {
		return opt, fmt.Errorf("policy: reconcile.shift_start_reference: %w", err)
	}
	if err := overlayTime(&opt.Reconcile.EarlyGraceStart, pf.Reconcile.EarlyGraceStart); err != nil {
		return opt, fmt.Errorf("policy: reconcile.early_grace_start: %w", err)
	}

	switch pf.Mode {
	case "", "pairs":
	case "span":
		opt.Mode = engine.SpanFirstToLast
	default:
		return opt, fmt.Errorf("policy: unknown mode %q (want pairs or span)", pf.Mode)
	}
	switch pf.Order {
	case "", "recorded":
	case "chronological":
		opt.Order = engine.OrderChronological
	default:
		return opt, fmt.Errorf("policy: unknown order %q (want recorded or chronological)", pf.Order)
	}
	return opt, nil
}

func overlayTime(dst *domain.WallTime, s string) error {
	if s == "" {
		return nil
	}
	t, err := domain.ParseWallTime(s)
	if err != nil {
		return err
	}
	*dst = t
	return nil
}
