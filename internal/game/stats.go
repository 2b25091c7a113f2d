package game

import (
	"github.com/abhisek/ghostprotocol/internal/challenges"
	"github.com/abhisek/ghostprotocol/internal/progress"
)

// Stats summarizes the current game.
type Stats struct {
	PlayerName    string
	Slot          int
	Phase         progress.Phase
	Scaling       progress.Scaling
	Level         int
	Experience    int
	NextLevelXP   int // 0 at the level cap
	Sanity        int
	Completed     int // Base challenges completed
	Total         int // Base challenges in the catalog
	HintsUsed     int
	Secrets       int
	NeedsTutorial bool

	Solved         int
	FirstTrySolves int
	Failed         int
	Skipped        int

	// Rates over every resolution, and over the recent window.
	SuccessRate       float64
	RecentSuccessRate float64
	RecentSamples     int
	AverageAttempts   float64
	HintsPerChallenge float64

	Categories []CategoryStats
}

// CategoryStats is one row of the per-category breakdown, in catalog
// category order.
type CategoryStats struct {
	Category  challenges.Category
	Name      string
	Total     int
	Completed int
	Attempted int
	Solved    int
}

// ChallengeView is a catalog entry annotated with the player's progress.
type ChallengeView struct {
	challenges.Challenge
	Completed bool
	Attempts  int
}

// Stats reports the current game's statistics.
func (s *Session) Stats() Stats {
	st := s.state
	a := st.Analytics()
	recent, n := a.SuccessRate()

	out := Stats{
		PlayerName:        st.PlayerName(),
		Slot:              s.slot,
		Phase:             st.Phase(),
		Scaling:           st.Scaling(),
		Level:             st.Level(),
		Experience:        st.Experience(),
		NextLevelXP:       st.NextLevelXP(),
		Sanity:            st.Sanity(),
		Total:             challenges.Count(),
		HintsUsed:         st.HintsUsed(),
		Secrets:           len(st.DiscoveredSecrets()),
		Solved:            a.Solved,
		FirstTrySolves:    a.FirstTrySolves,
		Failed:            a.Failed,
		Skipped:           a.Skipped,
		SuccessRate:       a.OverallSuccessRate(),
		RecentSuccessRate: recent,
		RecentSamples:     n,
		AverageAttempts:   a.AverageAttempts(),
		HintsPerChallenge: a.HintsPerChallenge(),
	}

	for _, c := range challenges.AllCategories() {
		row := CategoryStats{
			Category:  c,
			Name:      challenges.CategoryDisplayName(c),
			Attempted: a.Categories[c].Attempted,
			Solved:    a.Categories[c].Solved,
		}
		for _, ch := range challenges.ByCategory(c) {
			row.Total++
			if st.IsCompleted(ch.ID) {
				row.Completed++
			}
		}
		out.Completed += row.Completed
		if row.Total > 0 || row.Attempted > 0 {
			out.Categories = append(out.Categories, row)
		}
	}
	out.NeedsTutorial = !st.TutorialCompleted() && st.CompletedCount() == 0
	return out
}

// Challenges lists catalog challenges, all levels when level is nil.
func (s *Session) Challenges(level *challenges.Level) []ChallengeView {
	var out []ChallengeView
	for ch := range challenges.List(level) {
		attempts := s.state.Attempts(ch.ID)
		for _, d := range ch.Difficulties() {
			if v, ok := ch.Variant(d); ok && v.ID != ch.ID {
				attempts += s.state.Attempts(v.ID)
			}
		}
		out = append(out, ChallengeView{
			Challenge: ch,
			Completed: s.state.IsCompleted(ch.ID),
			Attempts:  attempts,
		})
	}
	return out
}
