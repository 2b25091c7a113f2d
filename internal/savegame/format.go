package savegame

import (
	"time"

	"github.com/abhisek/ghostprotocol/internal/challenges"
	"github.com/abhisek/ghostprotocol/internal/progress"
)

// CurrentVersion is the save format version written by this build.
const CurrentVersion = 3

// fileV1 is the original bare game-state document. It has no envelope and
// no version key.
type fileV1 struct {
	CurrentLevel        int      `json:"current_level"`
	CompletedChallenges []string `json:"completed_challenges"`
	DiscoveredSecrets   []string `json:"discovered_secrets"`
	PlayerName          string   `json:"player_name"`
	Sanity              int      `json:"sanity"`
	Experience          int      `json:"experience"`
	TutorialCompleted   bool     `json:"tutorial_completed"`
}

// fileV2 introduced the versioned envelope and attempt counters.
type fileV2 struct {
	Version      int       `json:"version"`
	Slot         int       `json:"slot"`
	LastModified time.Time `json:"last_modified"`
	State        stateV2   `json:"state"`
}

type stateV2 struct {
	PlayerName        string         `json:"player_name"`
	Sanity            int            `json:"sanity"`
	Experience        int            `json:"experience"`
	Level             int            `json:"level"`
	Completed         []string       `json:"completed"`
	DiscoveredSecrets []string       `json:"discovered_secrets"`
	TutorialCompleted bool           `json:"tutorial_completed"`
	Attempts          map[string]int `json:"attempts"`
}

// fileV3 is the current format.
type fileV3 struct {
	Version      int       `json:"version"`
	Slot         int       `json:"slot"`
	LastModified time.Time `json:"last_modified"`
	SaveID       string    `json:"save_id,omitempty"`
	GameVersion  string    `json:"game_version,omitempty"`
	State        stateV3   `json:"state"`
}

type stateV3 struct {
	PlayerName        string         `json:"player_name"`
	Sanity            int            `json:"sanity"`
	Experience        int            `json:"experience"`
	Level             int            `json:"level"`
	Completed         []string       `json:"completed"`
	DiscoveredSecrets []string       `json:"discovered_secrets"`
	TutorialCompleted bool           `json:"tutorial_completed"`
	Attempts          map[string]int `json:"attempts"`
	HintsUsed         int            `json:"hints_used"`
	DifficultyScaling string         `json:"difficulty_scaling"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
	Analytics         analyticsV3    `json:"analytics"`
}

type analyticsV3 struct {
	Solved             int                        `json:"solved"`
	FirstTrySolves     int                        `json:"first_try_solves"`
	Failed             int                        `json:"failed"`
	Skipped            int                        `json:"skipped"`
	TotalSolveAttempts int                        `json:"total_solve_attempts"`
	TotalHints         int                        `json:"total_hints"`
	Categories         map[string]categoryStatsV3 `json:"categories"`
	Recent             []outcomeV3                `json:"recent"`
}

type categoryStatsV3 struct {
	Attempted int `json:"attempted"`
	Solved    int `json:"solved"`
}

type outcomeV3 struct {
	ChallengeID string `json:"challenge_id"`
	Category    string `json:"category"`
	Outcome     string `json:"outcome"`
	Attempts    int    `json:"attempts"`
	Hints       int    `json:"hints"`
	DurationMS  int64  `json:"duration_ms"`
}

// encodeState converts a progression snapshot to the current state shape.
func encodeState(sn progress.Snapshot) stateV3 {
	a := sn.Analytics
	out := stateV3{
		PlayerName:        sn.PlayerName,
		Sanity:            sn.Sanity,
		Experience:        sn.Experience,
		Level:             sn.Level(),
		Completed:         nonNil(sn.Completed),
		DiscoveredSecrets: nonNil(sn.DiscoveredSecrets),
		TutorialCompleted: sn.TutorialCompleted,
		Attempts:          make(map[string]int, len(sn.Attempts)),
		HintsUsed:         sn.HintsUsed,
		DifficultyScaling: string(sn.Scaling),
		CreatedAt:         sn.CreatedAt.UTC(),
		UpdatedAt:         sn.UpdatedAt.UTC(),
		Analytics: analyticsV3{
			Solved:             a.Solved,
			FirstTrySolves:     a.FirstTrySolves,
			Failed:             a.Failed,
			Skipped:            a.Skipped,
			TotalSolveAttempts: a.TotalSolveAttempts,
			TotalHints:         a.TotalHints,
			Categories:         make(map[string]categoryStatsV3, len(a.Categories)),
			Recent:             make([]outcomeV3, 0, len(a.Recent)),
		},
	}
	for id, n := range sn.Attempts {
		out.Attempts[id] = n
	}
	for c, cs := range a.Categories {
		out.Analytics.Categories[string(c)] = categoryStatsV3{Attempted: cs.Attempted, Solved: cs.Solved}
	}
	for _, r := range a.Recent {
		out.Analytics.Recent = append(out.Analytics.Recent, outcomeV3{
			ChallengeID: r.ChallengeID,
			Category:    string(r.Category),
			Outcome:     string(r.Outcome),
			Attempts:    r.Attempts,
			Hints:       r.Hints,
			DurationMS:  r.Duration.Milliseconds(),
		})
	}
	return out
}

// decodeState converts the current state shape to a progression snapshot.
func decodeState(st stateV3) progress.Snapshot {
	sn := progress.Snapshot{
		PlayerName:        st.PlayerName,
		Sanity:            st.Sanity,
		Experience:        st.Experience,
		Completed:         st.Completed,
		Attempts:          st.Attempts,
		HintsUsed:         st.HintsUsed,
		DiscoveredSecrets: st.DiscoveredSecrets,
		TutorialCompleted: st.TutorialCompleted,
		Scaling:           progress.Scaling(st.DifficultyScaling),
		CreatedAt:         st.CreatedAt,
		UpdatedAt:         st.UpdatedAt,
		Analytics: progress.Analytics{
			Solved:             st.Analytics.Solved,
			FirstTrySolves:     st.Analytics.FirstTrySolves,
			Failed:             st.Analytics.Failed,
			Skipped:            st.Analytics.Skipped,
			TotalSolveAttempts: st.Analytics.TotalSolveAttempts,
			TotalHints:         st.Analytics.TotalHints,
			Categories:         make(map[challenges.Category]progress.CategoryStats, len(st.Analytics.Categories)),
		},
	}
	for c, cs := range st.Analytics.Categories {
		sn.Analytics.Categories[challenges.Category(c)] = progress.CategoryStats{Attempted: cs.Attempted, Solved: cs.Solved}
	}
	for _, r := range st.Analytics.Recent {
		sn.Analytics.Recent = append(sn.Analytics.Recent, progress.OutcomeRecord{
			ChallengeID: r.ChallengeID,
			Category:    challenges.Category(r.Category),
			Outcome:     progress.Outcome(r.Outcome),
			Attempts:    r.Attempts,
			Hints:       r.Hints,
			Duration:    time.Duration(r.DurationMS) * time.Millisecond,
		})
	}
	return sn
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
