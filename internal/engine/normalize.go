// Package engine implements punch-interval reconciliation: deduplication
// and pairing of raw punches, duration computation with midnight-wrap
// semantics, break deduction, grace rounding, and cross-midnight migration.
package engine

import (
	"sort"

	"punchclock/internal/domain"
)

// PairingOrder selects how punches are ordered before pairing.
type PairingOrder int

const (
	// OrderRecorded pairs punches in the order the terminal logged them.
	// This is the canonical mode.
	OrderRecorded PairingOrder = iota
	// OrderChronological sorts punches by time of day before pairing. It
	// produces different pair boundaries when punches were logged out of
	// order, so it must be selected explicitly.
	OrderChronological
)

// Dedup returns the sequence with only the first occurrence of each
// distinct punch kept. Repeated identical punches are the usual double-scan
// artifact on physical terminals and are discarded, not merged. Dedup is
// idempotent.
func Dedup(punches []domain.WallTime) []domain.WallTime {
	seen := make(map[domain.WallTime]bool, len(punches))
	out := make([]domain.WallTime, 0, len(punches))
	for _, p := range punches {
		if seen[p] {
			continue
		}
		seen[p] = true
		out = append(out, p)
	}
	return out
}

// Pair groups a deduplicated sequence into (entry, exit) pairs at positions
// (0,1), (2,3), ... . An odd-length sequence leaves a trailing punch with
// no partner; it is returned as an unpaired-punch report and contributes
// nothing to any total. Punches alternate entry/exit, so the dangling
// punch always sits at an odd 1-based position: a likely entry still
// waiting for its exit. The guess is never authoritative.
func Pair(punches []domain.WallTime, order PairingOrder) ([]domain.PunchPair, *domain.UnpairedPunch) {
	seq := punches
	if order == OrderChronological {
		seq = append([]domain.WallTime(nil), punches...)
		sort.Slice(seq, func(i, j int) bool { return seq[i].Before(seq[j]) })
	}

	pairs := make([]domain.PunchPair, 0, len(seq)/2)
	for i := 0; i+1 < len(seq); i += 2 {
		pairs = append(pairs, domain.PunchPair{Entry: seq[i], Exit: seq[i+1]})
	}

	if len(seq)%2 == 0 {
		return pairs, nil
	}
	pos := len(seq)
	return pairs, &domain.UnpairedPunch{
		Punch:     seq[pos-1],
		Position:  pos,
		Direction: domain.DirectionEntry,
		Reason:    "unverified: missing matching exit punch",
	}
}
