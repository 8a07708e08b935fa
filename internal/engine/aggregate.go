package engine

import (
	"context"
	"log/slog"
	"runtime"
	"sort"
	"sync"

	"golang.org/x/sync/errgroup"

	"punchclock/internal/domain"
)

// AggregationMode selects how a day's punches are totaled.
type AggregationMode int

const (
	// PairByPair sums the net minutes of every (entry, exit) pair. This is
	// the canonical mode.
	PairByPair AggregationMode = iota
	// SpanFirstToLast treats the first and last punch as one giant pair and
	// deducts every break inside that outer span. It is lossy with respect
	// to intermediate in/out cycles and yields materially different totals,
	// so it must be selected explicitly.
	SpanFirstToLast
)

// Options bundles the policy configuration for a batch run. It is read-only
// for the duration of the run.
type Options struct {
	Shift     domain.ShiftPolicy
	Rules     domain.CategoryRules
	Reconcile domain.ReconcilePolicy
	Mode      AggregationMode
	Order     PairingOrder
}

// DefaultOptions returns the production defaults.
func DefaultOptions() Options {
	return Options{
		Shift:     domain.DefaultShift(),
		Rules:     domain.DefaultRules(),
		Reconcile: domain.DefaultReconcilePolicy(),
		Mode:      PairByPair,
		Order:     OrderRecorded,
	}
}

// ComputeEmployeeDay derives the worked duration for one employee on one
// calendar day. Punches are deduplicated, paired, and each pair is run
// through the duration engine; the result carries the per-pair breakdown
// and any trailing unpaired punch. For role Day1 the shift-start reference
// rule is applied first: day-1 lists handed in here are expected not to
// have been through cross-midnight reconciliation yet (Reconcile applies
// the same rule itself before migrating).
func ComputeEmployeeDay(punches []domain.WallTime, opt Options, role domain.DayRole) domain.DayResult {
	seq := Dedup(punches)
	if role == domain.Day1 {
		seq = FilterDayOne(seq, opt.Reconcile)
	}

	if opt.Mode == SpanFirstToLast {
		return computeSpan(seq, opt)
	}

	pairs, unpaired := Pair(seq, opt.Order)
	res := domain.DayResult{Unpaired: unpaired}
	for _, p := range pairs {
		bd := NetPair(p, opt.Shift, opt.Rules)
		res.Pairs = append(res.Pairs, bd)
		if bd.NetMinutes > 0 {
			res.WorkedMinutes += bd.NetMinutes
		}
	}
	return res
}

func computeSpan(seq []domain.WallTime, opt Options) domain.DayResult {
	if len(seq) < 2 {
		return domain.DayResult{}
	}
	pair := domain.PunchPair{Entry: seq[0], Exit: seq[len(seq)-1]}
	raw := Duration(pair.Entry, pair.Exit, opt.Rules.AllowMidnightSpan)
	bd := domain.PairBreakdown{
		Entry:          pair.Entry,
		Exit:           pair.Exit,
		RawMinutes:     raw,
		WrapDisallowed: raw == 0 && pair.Exit.Minutes() < pair.Entry.Minutes(),
	}
	if !bd.WrapDisallowed && opt.Rules.DeductBreaks {
		bd.BreakMinutes = BreakOverlap(pair.Entry, pair.Exit, opt.Shift.Breaks)
	}
	bd.NetMinutes = max(0, raw-bd.BreakMinutes)
	return domain.DayResult{WorkedMinutes: bd.NetMinutes, Pairs: []domain.PairBreakdown{bd}}
}

// Reconcile applies the full cross-midnight flow for one employee: the day1
// shift-start reference rule first, then migration of early-morning day2
// punches onto day1. The returned day1 list may therefore end with punches
// that chronologically belong to the next calendar date.
func Reconcile(day1, day2 []domain.WallTime, pol domain.ReconcilePolicy) ([]domain.WallTime, []domain.WallTime, *domain.CrossMidnightInfo) {
	return ReconcileCrossMidnight(FilterDayOne(day1, pol), day2, pol.MidnightBoundary)
}

// Aggregator drives the engine over a batch of employees. It owns the
// per-batch employee map: created when records are added, discarded with
// the Aggregator after the summaries are produced. There is no process-wide
// state.
type Aggregator struct {
	log *slog.Logger
	opt Options

	mu        sync.Mutex
	employees map[string]*employeeDays
}

type employeeDays struct {
	rec  domain.AttendanceRecord
	day1 []domain.WallTime
	day2 []domain.WallTime
}

func NewAggregator(log *slog.Logger, opt Options) *Aggregator {
	return &Aggregator{
		log:       log,
		opt:       opt,
		employees: make(map[string]*employeeDays),
	}
}

// AddRecords attributes one day file's records to their employees.
func (a *Aggregator) AddRecords(role domain.DayRole, records []domain.AttendanceRecord) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for _, rec := range records {
		e, ok := a.employees[rec.Code]
		if !ok {
			e = &employeeDays{rec: rec}
			a.employees[rec.Code] = e
		}
		if e.rec.Name == "" {
			e.rec = rec
		}
		if role == domain.Day1 {
			e.day1 = append(e.day1, rec.Punches...)
		} else {
			e.day2 = append(e.day2, rec.Punches...)
		}
	}
}

// Summaries reconciles and computes every employee and returns the results
// sorted by employee code. Employees are independent, so the computation
// fans out across workers; the policy in opt is the only shared input and
// is read-only.
func (a *Aggregator) Summaries(ctx context.Context) ([]domain.EmployeeSummary, error) {
	a.mu.Lock()
	codes := make([]string, 0, len(a.employees))
	for code := range a.employees {
		codes = append(codes, code)
	}
	a.mu.Unlock()
	sort.Strings(codes)

	out := make([]domain.EmployeeSummary, len(codes))
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())
	for i, code := range codes {
		i, code := i, code
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			out[i] = a.computeEmployee(a.employees[code])
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

func (a *Aggregator) computeEmployee(e *employeeDays) domain.EmployeeSummary {
	day1, day2, cross := Reconcile(e.day1, e.day2, a.opt.Reconcile)

	// Day1's list has already been through the reference rule (and may end
	// with migrated after-midnight punches), so both days are computed
	// without further day-1 filtering.
	r1 := ComputeEmployeeDay(day1, a.opt, domain.Day2)
	r2 := ComputeEmployeeDay(day2, a.opt, domain.Day2)

	sum := domain.EmployeeSummary{
		Code:          e.rec.Code,
		Name:          e.rec.Name,
		Company:       e.rec.Company,
		Department:    e.rec.Department,
		Day1Punches:   Dedup(day1),
		Day1Minutes:   r1.WorkedMinutes,
		Day2Punches:   Dedup(day2),
		Day2Minutes:   r2.WorkedMinutes,
		TotalMinutes:  r1.WorkedMinutes + r2.WorkedMinutes,
		CrossMidnight: cross,
	}
	if r1.Unpaired != nil {
		sum.Unpaired = append(sum.Unpaired, *r1.Unpaired)
	}
	if r2.Unpaired != nil {
		sum.Unpaired = append(sum.Unpaired, *r2.Unpaired)
	}
	if cross != nil {
		a.log.Debug("cross-midnight punches migrated",
			slog.String("employee", e.rec.Code),
			slog.Int("migrated", len(cross.MigratedPunches)))
	}
	return sum
}
