package progress

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

// Snapshot is the plain-data form of a State, used by the persistence
// layer. It never includes the active challenge.
type Snapshot struct {
	PlayerName        string
	Sanity            int
	Experience        int
	Completed         []string // Sorted
	Attempts          map[string]int
	HintsUsed         int
	DiscoveredSecrets []string // Sorted
	TutorialCompleted bool
	Scaling           Scaling
	CreatedAt         time.Time
	UpdatedAt         time.Time
	Analytics         Analytics
}

// Snapshot copies the persistent fields of s.
func (s *State) Snapshot() Snapshot {
	return Snapshot{
		PlayerName:        s.playerName,
		Sanity:            s.sanity,
		Experience:        s.experience,
		Completed:         s.Completed(),
		Attempts:          maps.Clone(s.attempts),
		HintsUsed:         s.hintsUsed,
		DiscoveredSecrets: s.DiscoveredSecrets(),
		TutorialCompleted: s.tutorial,
		Scaling:           s.scaling,
		CreatedAt:         s.createdAt,
		UpdatedAt:         s.updatedAt,
		Analytics:         s.analytics.clone(),
	}
}

// Level returns the level derived from the snapshot's experience.
func (sn Snapshot) Level() int { return LevelFor(sn.Experience) }

// Check reports every field outside its documented range.
func (sn Snapshot) Check() error {
	var v []string
	if sn.Sanity < 0 || sn.Sanity > MaxSanity {
		v = append(v, fmt.Sprintf("sanity %d outside [0, %d]", sn.Sanity, MaxSanity))
	}
	if sn.Experience < 0 {
		v = append(v, fmt.Sprintf("negative experience %d", sn.Experience))
	}
	if sn.HintsUsed < 0 {
		v = append(v, fmt.Sprintf("negative hints used %d", sn.HintsUsed))
	}
	for _, id := range sn.Completed {
		if id == "" {
			v = append(v, "empty completed id")
			break
		}
	}
	for id, n := range sn.Attempts {
		if n < 0 {
			v = append(v, fmt.Sprintf("negative attempts %d for %q", n, id))
		}
	}
	if _, ok := ParseScaling(string(sn.Scaling)); !ok {
		v = append(v, fmt.Sprintf("unknown scaling %q", sn.Scaling))
	}
	a := sn.Analytics
	if a.Solved < 0 || a.FirstTrySolves < 0 || a.Failed < 0 || a.Skipped < 0 ||
		a.TotalSolveAttempts < 0 || a.TotalHints < 0 {
		v = append(v, "negative analytics counter")
	}
	if a.FirstTrySolves > a.Solved {
		v = append(v, fmt.Sprintf("first-try solves %d exceed solves %d", a.FirstTrySolves, a.Solved))
	}
	if len(a.Recent) > RecentWindow {
		v = append(v, fmt.Sprintf("recent window holds %d outcomes, max %d", len(a.Recent), RecentWindow))
	}
	for c, cs := range a.Categories {
		if cs.Attempted < 0 || cs.Solved < 0 || cs.Solved > cs.Attempted {
			v = append(v, fmt.Sprintf("category %q stats out of range", c))
		}
	}
	if len(v) > 0 {
		slices.Sort(v)
		return &InvariantError{Violations: v}
	}
	return nil
}

// Restore builds a State from a snapshot after checking its invariants.
// The result is idle.
func Restore(sn Snapshot) (*State, error) {
	if err := sn.Check(); err != nil {
		return nil, err
	}
	s := &State{
		playerName: sn.PlayerName,
		sanity:     sn.Sanity,
		experience: sn.Experience,
		completed:  make(map[string]bool, len(sn.Completed)),
		attempts:   make(map[string]int, len(sn.Attempts)),
		hintsUsed:  sn.HintsUsed,
		secrets:    make(map[string]bool, len(sn.DiscoveredSecrets)),
		tutorial:   sn.TutorialCompleted,
		scaling:    sn.Scaling,
		createdAt:  sn.CreatedAt,
		updatedAt:  sn.UpdatedAt,
		analytics:  sn.Analytics.clone(),
	}
	if s.playerName == "" {
		s.playerName = DefaultPlayerName
	}
	for _, id := range sn.Completed {
		s.completed[id] = true
	}
	for id, n := range sn.Attempts {
		if n > 0 {
			s.attempts[id] = n
		}
	}
	for _, secret := range sn.DiscoveredSecrets {
		if secret != "" {
			s.secrets[secret] = true
		}
	}
	return s, nil
}
