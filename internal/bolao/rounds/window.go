// Package rounds decides which matches are currently open for guesses.
//
// The active round is the one with the most pending matches. Its window starts
// at the beginning of the day of its earliest match and spans WindowDays
// calendar days; matches of the round scheduled after the window are treated
// as postponed. Only matches that have not kicked off yet are open.
package rounds

import (
	"sort"
	"time"

	"github.com/gustavomchagas/chuta/internal/pkg/models"
)

// DefaultWindowDays is the acceptance span of a round, in calendar days.
const DefaultWindowDays = 3

// OpenMatch is a match open for guesses together with its position in the
// window. Number is recomputed on every resolution and never stored.
type OpenMatch struct {
	models.Match
	Number int
}

// Window is the outcome of a resolution.
type Window struct {
	Round int
	Start time.Time
	End   time.Time
	// Open holds in-window matches that have not started, by start time.
	Open []OpenMatch
	// Postponed holds matches of the active round scheduled after End.
	Postponed []models.Match
}

// Empty reports whether no match is open.
func (w Window) Empty() bool {
	return len(w.Open) == 0
}

// ByNumber returns the open match with the given position.
func (w Window) ByNumber(n int) (OpenMatch, bool) {
	if n < 1 || n > len(w.Open) {
		return OpenMatch{}, false
	}
	return w.Open[n-1], true
}

// ByID returns the open match with the given id.
func (w Window) ByID(id string) (OpenMatch, bool) {
	for _, m := range w.Open {
		if m.ID == id {
			return m, true
		}
	}
	return OpenMatch{}, false
}

// Resolver computes round windows in a fixed location.
type Resolver struct {
	loc  *time.Location
	days int
}

// NewResolver returns a resolver computing day boundaries in loc.
// days <= 0 selects DefaultWindowDays.
func NewResolver(loc *time.Location, days int) *Resolver {
	if loc == nil {
		loc = time.UTC
	}
	if days <= 0 {
		days = DefaultWindowDays
	}
	return &Resolver{loc: loc, days: days}
}

// Location returns the location used for day boundaries.
func (r *Resolver) Location() *time.Location {
	return r.loc
}

// Days returns the window span in calendar days.
func (r *Resolver) Days() int {
	return r.days
}

// Resolve computes the window for pending, which is expected in start time
// order (the order only matters for breaking ties between rounds).
func (r *Resolver) Resolve(pending []models.Match, now time.Time) Window {
	round, ok := activeRound(pending)
	if !ok {
		return Window{}
	}

	var inRound []models.Match
	for _, m := range pending {
		if m.Status.Pending() && m.Round == round {
			inRound = append(inRound, m)
		}
	}
	sort.SliceStable(inRound, func(i, j int) bool {
		return inRound[i].StartTime.Before(inRound[j].StartTime)
	})

	start := startOfDay(inRound[0].StartTime.In(r.loc))
	end := start.AddDate(0, 0, r.days).Add(-time.Nanosecond)

	w := Window{Round: round, Start: start, End: end}
	for _, m := range inRound {
		if m.StartTime.After(end) {
			w.Postponed = append(w.Postponed, m)
			continue
		}
		if m.StartTime.After(now) {
			w.Open = append(w.Open, OpenMatch{Match: m, Number: len(w.Open) + 1})
		}
	}
	return w
}

// OpenMatches returns only the open matches of the window.
func (r *Resolver) OpenMatches(pending []models.Match, now time.Time) []models.Match {
	w := r.Resolve(pending, now)
	out := make([]models.Match, len(w.Open))
	for i, m := range w.Open {
		out[i] = m.Match
	}
	return out
}

// activeRound picks the round with most pending matches; ties go to the
// round seen first.
func activeRound(pending []models.Match) (int, bool) {
	counts := make(map[int]int)
	var order []int
	for _, m := range pending {
		if !m.Status.Pending() {
			continue
		}
		if _, seen := counts[m.Round]; !seen {
			order = append(order, m.Round)
		}
		counts[m.Round]++
	}
	if len(order) == 0 {
		return 0, false
	}

	best := order[0]
	for _, round := range order[1:] {
		if counts[round] > counts[best] {
			best = round
		}
	}
	return best, true
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
