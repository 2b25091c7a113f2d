// Package difficulty picks which presentation of a challenge concept to
// serve. Selection is a pure function of an analytics snapshot so the same
// history always yields the same choice.
package difficulty

import (
	"fmt"
	"math"

	"github.com/abhisek/ghostprotocol/internal/challenges"
	"github.com/abhisek/ghostprotocol/internal/progress"
)

// Score thresholds. Comparisons are strict so a score sitting exactly on a
// threshold stays with the more standard choice.
const (
	ExpertThreshold   = 0.8
	AdvancedThreshold = 0.4
	BeginnerThreshold = -0.3

	// MinSamples is the number of recent outcomes needed before the success
	// rate and hint usage count toward the score.
	MinSamples = 3
)

// Snapshot is the subset of progression analytics the selector reads.
type Snapshot struct {
	SuccessRate       float64
	Samples           int
	HintsPerChallenge float64
	AverageAttempts   float64
	SolveTimeTrend    float64
	Sanity            int
	Level             int
	ConceptAttempts   int // Wrong answers already spent on this concept
}

// SnapshotOf extracts the selector inputs for concept from a state.
func SnapshotOf(s *progress.State, concept string) Snapshot {
	a := s.Analytics()
	rate, n := a.SuccessRate()
	snap := Snapshot{
		SuccessRate:       rate,
		Samples:           n,
		HintsPerChallenge: a.HintsPerChallenge(),
		AverageAttempts:   a.AverageAttempts(),
		SolveTimeTrend:    a.SolveTimeTrend(),
		Sanity:            s.Sanity(),
		Level:             s.Level(),
		ConceptAttempts:   s.Attempts(concept),
	}
	if ch, err := challenges.Lookup(concept); err == nil {
		for _, d := range ch.Difficulties() {
			if v, ok := ch.Variant(d); ok && v.ID != concept {
				snap.ConceptAttempts += s.Attempts(v.ID)
			}
		}
	}
	return snap
}

// Decision is the selector's output.
type Decision struct {
	Challenge  challenges.Challenge // Materialized at Difficulty
	Difficulty challenges.Difficulty
	Score      float64
	Reasons    []string
}

// Score computes the adaptive score and the reasons that contributed.
// Positive scores favour stricter presentations.
func Score(snap Snapshot) (float64, []string) {
	var score float64
	var reasons []string
	add := func(delta float64, format string, args ...any) {
		score += delta
		reasons = append(reasons, fmt.Sprintf("%+.1f ", delta)+fmt.Sprintf(format, args...))
	}

	if snap.Samples >= MinSamples {
		switch {
		case snap.SuccessRate > 0.8:
			add(0.3, "success rate %.0f%%", snap.SuccessRate*100)
		case snap.SuccessRate > 0.6:
			add(0.1, "success rate %.0f%%", snap.SuccessRate*100)
		case snap.SuccessRate < 0.4:
			add(-0.2, "success rate %.0f%%", snap.SuccessRate*100)
		}
		switch {
		case snap.HintsPerChallenge > 1.5:
			add(-0.2, "%.1f hints per challenge", snap.HintsPerChallenge)
		case snap.HintsPerChallenge == 0:
			add(0.1, "no hints used")
		}
	}

	switch {
	case snap.Sanity > 75:
		add(0.2, "sanity %d", snap.Sanity)
	case snap.Sanity < 50:
		add(-0.3, "sanity %d", snap.Sanity)
	}

	if snap.Level > 0 {
		add(math.Min(float64(snap.Level)*0.1, 0.3), "level %d", snap.Level)
	}

	switch {
	case snap.SolveTimeTrend > 1.25:
		add(-0.1, "slowing down")
	case snap.SolveTimeTrend > 0 && snap.SolveTimeTrend < 0.8:
		add(0.1, "speeding up")
	}

	if snap.ConceptAttempts > 3 {
		add(-0.2, "%d prior attempts on this concept", snap.ConceptAttempts)
	}

	// Keep the score stable against float noise so equal histories compare
	// equal at the thresholds.
	score = math.Round(score*1e6) / 1e6
	return score, reasons
}

// Target maps a score to the preferred difficulty.
func Target(score float64) challenges.Difficulty {
	switch {
	case score > ExpertThreshold:
		return challenges.DifficultyExpert
	case score > AdvancedThreshold:
		return challenges.DifficultyAdvanced
	case score < BeginnerThreshold:
		return challenges.DifficultyBeginner
	default:
		return challenges.DifficultyStandard
	}
}

// Select chooses the presentation of ch. Static scaling always serves the
// standard presentation. Custom scaling serves requested when the concept
// offers it. Adaptive scaling scores snap; a target the concept does not
// offer steps toward standard.
func Select(snap Snapshot, ch challenges.Challenge, scaling progress.Scaling, requested challenges.Difficulty) Decision {
	base := ch
	if ch.IsVariant() {
		if b, err := challenges.Lookup(ch.Concept); err == nil {
			base = b
		}
	}

	switch scaling {
	case progress.ScalingStatic:
		return materialize(base, challenges.DifficultyStandard, 0, []string{"static scaling"})
	case progress.ScalingCustom:
		if requested != "" && base.HasDifficulty(requested) {
			return materialize(base, requested, 0, []string{"requested " + string(requested)})
		}
		if requested != "" {
			return materialize(base, challenges.DifficultyStandard, 0, []string{string(requested) + " unavailable"})
		}
		return materialize(base, challenges.DifficultyStandard, 0, []string{"no difficulty requested"})
	}

	score, reasons := Score(snap)
	want := Target(score)
	got := stepToward(base, want)
	if got != want {
		reasons = append(reasons, fmt.Sprintf("%s unavailable, using %s", want, got))
	}
	return materialize(base, got, score, reasons)
}

// stepToward returns want if offered, otherwise the nearest offered
// difficulty between want and standard.
func stepToward(ch challenges.Challenge, want challenges.Difficulty) challenges.Difficulty {
	order := []challenges.Difficulty{
		challenges.DifficultyBeginner,
		challenges.DifficultyStandard,
		challenges.DifficultyAdvanced,
		challenges.DifficultyExpert,
	}
	i := want.Rank() + 1
	for ; i != 1; i -= sign(i - 1) {
		if ch.HasDifficulty(order[i]) {
			return order[i]
		}
	}
	return challenges.DifficultyStandard
}

func sign(n int) int {
	switch {
	case n > 0:
		return 1
	case n < 0:
		return -1
	}
	return 0
}

func materialize(base challenges.Challenge, d challenges.Difficulty, score float64, reasons []string) Decision {
	v, ok := base.Variant(d)
	if !ok {
		v, _ = base.Variant(challenges.DifficultyStandard)
		d = challenges.DifficultyStandard
	}
	return Decision{Challenge: v, Difficulty: d, Score: score, Reasons: reasons}
}
