package cli

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"punchclock/internal/config"
	"punchclock/internal/domain"
	"punchclock/internal/engine"
)

// newAnalyzeCmd builds the interactive punch inspector. It takes a raw punch
// list on the command line and prints the pair-by-pair breakdown the batch
// engine would produce, which is how odd totals get diagnosed without
// touching the day files.
func newAnalyzeCmd() *cobra.Command {
	var (
		breakSpec  string
		noBreaks   bool
		policyPath string
		span       bool
		chrono     bool
	)

	cmd := &cobra.Command{
		Use:   "analyze \"HH:MM,HH:MM,...\"",
		Short: "Break a punch list down pair by pair and show where the minutes go",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opt, err := config.LoadPolicy(policyPath)
			if err != nil {
				return err
			}
			if breakSpec != "" {
				windows, err := domain.ParseBreakSpec(breakSpec)
				if err != nil {
					return err
				}
				opt.Shift.Breaks = windows
			}
			if noBreaks {
				opt.Shift.Breaks = nil
			}
			if span {
				opt.Mode = engine.SpanFirstToLast
			}
			if chrono {
				opt.Order = engine.OrderChronological
			}

			punches := domain.ParsePunchList(args[0])
			if len(punches) == 0 {
				return fmt.Errorf("no valid punches in %q", args[0])
			}
			printAnalysis(cmd, punches, opt)
			return nil
		},
	}

	cmd.Flags().StringVar(&breakSpec, "breaks", "", "Override break windows, e.g. \"10:45-11:00,13:00-13:30\"")
	cmd.Flags().BoolVar(&noBreaks, "no-breaks", false, "Disable break deduction entirely")
	cmd.Flags().StringVar(&policyPath, "policy", "", "YAML policy file (defaults to built-in shift policy)")
	cmd.Flags().BoolVar(&span, "span", false, "Measure first punch to last punch instead of pair by pair")
	cmd.Flags().BoolVar(&chrono, "chronological", false, "Sort punches before pairing")
	return cmd
}

func printAnalysis(cmd *cobra.Command, punches []domain.WallTime, opt engine.Options) {
	out := cmd.OutOrStdout()
	rule := strings.Repeat("-", 72)

	deduped := engine.Dedup(punches)
	pairs, unpaired := engine.Pair(deduped, opt.Order)

	fmt.Fprintf(out, "Total punches: %d (unique %d) | Complete pairs: %d\n", len(punches), len(deduped), len(pairs))
	if len(opt.Shift.Breaks) == 0 {
		fmt.Fprintln(out, "Breaks: none")
	} else {
		specs := make([]string, len(opt.Shift.Breaks))
		for i, b := range opt.Shift.Breaks {
			specs[i] = fmt.Sprintf("%s-%s", b.Start, b.End)
		}
		fmt.Fprintf(out, "Breaks: %s\n", strings.Join(specs, ", "))
	}
	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "%-6s %-8s %-8s %8s %8s %8s %8s\n", "Pair", "In", "Out", "Raw", "Breaks", "Net", "Hours")
	fmt.Fprintln(out, rule)

	total := 0
	for i, pair := range pairs {
		bd := engine.NetPair(pair, opt.Shift, opt.Rules)
		note := ""
		if bd.WrapDisallowed {
			note = "  (midnight span not allowed for this category)"
		}
		fmt.Fprintf(out, "%-6d %-8s %-8s %8d %8d %8d %8.2f%s\n",
			i+1, pair.Entry, pair.Exit, bd.RawMinutes, bd.BreakMinutes, bd.NetMinutes,
			domain.MinutesToDecimalHours(bd.NetMinutes), note)
		if bd.NetMinutes > 0 {
			total += bd.NetMinutes
		}
	}

	if opt.Mode == engine.SpanFirstToLast && len(deduped) >= 2 {
		// Same computation the batch aggregator runs: first to last punch
		// as logged, breaks inside the outer span, no grace snapping.
		res := engine.ComputeEmployeeDay(deduped, opt, domain.Day2)
		outer := res.Pairs[0]
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "Span %s-%s: raw %d, breaks %d, net %d\n",
			outer.Entry, outer.Exit, outer.RawMinutes, outer.BreakMinutes, outer.NetMinutes)
		total = res.WorkedMinutes
	}

	if unpaired != nil {
		fmt.Fprintln(out, rule)
		fmt.Fprintf(out, "Unpaired punch: %s (position %d, likely %s, %s)\n",
			unpaired.Punch, unpaired.Position, unpaired.Direction, unpaired.Reason)
		fmt.Fprintln(out, "The time after this punch is not counted; verify with the employee.")
	}

	fmt.Fprintln(out, rule)
	fmt.Fprintf(out, "Total working time: %d minutes = %.2f hours\n", total, domain.MinutesToDecimalHours(total))
}
