package progress

import (
	"maps"
	"slices"
	"time"

	"github.com/abhisek/ghostprotocol/internal/challenges"
)

// RecentWindow is the number of resolved challenges kept for adaptive
// difficulty signals.
const RecentWindow = 10

// Outcome is how an active challenge was resolved.
type Outcome string

const (
	OutcomeSolved  Outcome = "solved"
	OutcomeFailed  Outcome = "failed"
	OutcomeSkipped Outcome = "skipped"
)

// OutcomeRecord is one entry of the rolling window.
type OutcomeRecord struct {
	ChallengeID string
	Category    challenges.Category
	Outcome     Outcome
	Attempts    int // Submissions, including the correct one
	Hints       int
	Duration    time.Duration
}

// Solved reports whether the record is a success.
func (o OutcomeRecord) Solved() bool { return o.Outcome == OutcomeSolved }

// CategoryStats counts resolutions per category.
type CategoryStats struct {
	Attempted int
	Solved    int
}

// Analytics holds the counters the difficulty selector reads. Rates are
// derived on demand and never stored.
type Analytics struct {
	Solved             int
	FirstTrySolves     int
	Failed             int
	Skipped            int
	TotalSolveAttempts int // Submissions across solved challenges
	TotalHints         int // Hints taken on resolved challenges
	Categories         map[challenges.Category]CategoryStats
	Recent             []OutcomeRecord // Oldest first, at most RecentWindow
}

func newAnalytics() Analytics {
	return Analytics{Categories: make(map[challenges.Category]CategoryStats)}
}

func (a Analytics) clone() Analytics {
	out := a
	out.Categories = maps.Clone(a.Categories)
	if out.Categories == nil {
		out.Categories = make(map[challenges.Category]CategoryStats)
	}
	out.Recent = slices.Clone(a.Recent)
	return out
}

func (a *Analytics) record(r OutcomeRecord) {
	if a.Categories == nil {
		a.Categories = make(map[challenges.Category]CategoryStats)
	}
	cs := a.Categories[r.Category]
	cs.Attempted++
	switch r.Outcome {
	case OutcomeSolved:
		a.Solved++
		a.TotalSolveAttempts += r.Attempts
		if r.Attempts == 1 {
			a.FirstTrySolves++
		}
		cs.Solved++
	case OutcomeFailed:
		a.Failed++
	case OutcomeSkipped:
		a.Skipped++
	}
	a.Categories[r.Category] = cs
	a.TotalHints += r.Hints

	a.Recent = append(a.Recent, r)
	if n := len(a.Recent); n > RecentWindow {
		a.Recent = slices.Clone(a.Recent[n-RecentWindow:])
	}
}

// Resolved returns the number of resolved challenges.
func (a Analytics) Resolved() int {
	return a.Solved + a.Failed + a.Skipped
}

// SuccessRate returns the solved fraction of the recent window and the
// window size it was computed over.
func (a Analytics) SuccessRate() (float64, int) {
	if len(a.Recent) == 0 {
		return 0, 0
	}
	solved := 0
	for _, r := range a.Recent {
		if r.Solved() {
			solved++
		}
	}
	return float64(solved) / float64(len(a.Recent)), len(a.Recent)
}

// OverallSuccessRate is solved over all resolutions.
func (a Analytics) OverallSuccessRate() float64 {
	if a.Resolved() == 0 {
		return 0
	}
	return float64(a.Solved) / float64(a.Resolved())
}

// AverageAttempts is the mean number of submissions per solved challenge.
func (a Analytics) AverageAttempts() float64 {
	if a.Solved == 0 {
		return 0
	}
	return float64(a.TotalSolveAttempts) / float64(a.Solved)
}

// HintsPerChallenge is the mean hints taken per challenge in the recent
// window.
func (a Analytics) HintsPerChallenge() float64 {
	if len(a.Recent) == 0 {
		return 0
	}
	total := 0
	for _, r := range a.Recent {
		total += r.Hints
	}
	return float64(total) / float64(len(a.Recent))
}

// SolveTimeTrend compares the mean solve time of the newer half of the
// recent solves to the older half. Below 1 the player is getting faster.
// Returns 1 when fewer than four solves are in the window.
func (a Analytics) SolveTimeTrend() float64 {
	var solves []time.Duration
	for _, r := range a.Recent {
		if r.Solved() {
			solves = append(solves, r.Duration)
		}
	}
	if len(solves) < 4 {
		return 1
	}
	half := len(solves) / 2
	older := mean(solves[:half])
	newer := mean(solves[len(solves)-half:])
	if older <= 0 {
		return 1
	}
	return float64(newer) / float64(older)
}

// CategoryRate returns the solved fraction for a category.
func (a Analytics) CategoryRate(c challenges.Category) (float64, int) {
	cs := a.Categories[c]
	if cs.Attempted == 0 {
		return 0, 0
	}
	return float64(cs.Solved) / float64(cs.Attempted), cs.Attempted
}

func mean(ds []time.Duration) time.Duration {
	if len(ds) == 0 {
		return 0
	}
	var sum time.Duration
	for _, d := range ds {
		sum += d
	}
	return sum / time.Duration(len(ds))
}
