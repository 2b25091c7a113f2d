package progress

import (
	"fmt"
	"maps"
	"slices"
	"time"
)

const (
	// MaxSanity is the sanity of a fresh game and the upper clamp.
	MaxSanity = 100

	// XPPerLevel is the distance between level thresholds.
	XPPerLevel = 100

	// MaxPlayerLevel caps the derived level.
	MaxPlayerLevel = 10

	// DefaultMaxAttempts is the number of wrong answers after which an
	// active challenge resolves as failed.
	DefaultMaxAttempts = 5

	// DefaultPlayerName is used when a new game is started without a name.
	DefaultPlayerName = "Ghost"
)

// Scaling is the player's difficulty preference.
type Scaling string

const (
	ScalingAdaptive Scaling = "adaptive" // Selector scores recent performance
	ScalingStatic   Scaling = "static"   // Always the standard presentation
	ScalingCustom   Scaling = "custom"   // Player picks the difficulty
)

// ParseScaling maps a configuration value to a Scaling.
func ParseScaling(s string) (Scaling, bool) {
	switch Scaling(s) {
	case ScalingAdaptive, ScalingStatic, ScalingCustom:
		return Scaling(s), true
	}
	return "", false
}

// LevelFor returns the level earned by xp against the fixed threshold
// table 0, 100, 200, ..., 1000.
func LevelFor(xp int) int {
	if xp <= 0 {
		return 0
	}
	return min(xp/XPPerLevel, MaxPlayerLevel)
}

// Thresholds returns the XP needed to reach each level, index = level.
func Thresholds() []int {
	out := make([]int, MaxPlayerLevel+1)
	for i := range out {
		out[i] = i * XPPerLevel
	}
	return out
}

// State is one player's progression record. It is owned by a single
// session and is not safe for concurrent use.
type State struct {
	playerName string
	sanity     int
	experience int
	completed  map[string]bool
	attempts   map[string]int
	hintsUsed  int
	secrets    map[string]bool
	tutorial   bool
	scaling    Scaling
	createdAt  time.Time
	updatedAt  time.Time
	analytics  Analytics

	active *activeChallenge
}

// New creates a fresh game: full sanity, no experience.
func New(playerName string, now time.Time) *State {
	if playerName == "" {
		playerName = DefaultPlayerName
	}
	return &State{
		playerName: playerName,
		sanity:     MaxSanity,
		completed:  make(map[string]bool),
		attempts:   make(map[string]int),
		secrets:    make(map[string]bool),
		scaling:    ScalingAdaptive,
		createdAt:  now,
		updatedAt:  now,
		analytics:  newAnalytics(),
	}
}

func (s *State) PlayerName() string { return s.playerName }
func (s *State) Sanity() int { return s.sanity }
func (s *State) Experience() int { return s.experience }
func (s *State) HintsUsed() int { return s.hintsUsed }
func (s *State) TutorialCompleted() bool { return s.tutorial }
func (s *State) Scaling() Scaling { return s.scaling }
func (s *State) CreatedAt() time.Time { return s.createdAt }
func (s *State) UpdatedAt() time.Time { return s.updatedAt }

// Level is derived from experience on every call.
func (s *State) Level() int { return LevelFor(s.experience) }

// NextLevelXP returns the experience needed for the next level, or 0 at
// the cap.
func (s *State) NextLevelXP() int {
	if s.Level() >= MaxPlayerLevel {
		return 0
	}
	return (s.Level()+1)*XPPerLevel - s.experience
}

// IsCompleted reports whether id is in the completed set.
func (s *State) IsCompleted(id string) bool { return s.completed[id] }

// Completed returns the completed ids, sorted.
func (s *State) Completed() []string {
	return slices.Sorted(maps.Keys(s.completed))
}

// CompletedCount returns the size of the completed set.
func (s *State) CompletedCount() int { return len(s.completed) }

// Attempts returns the cumulative wrong-answer count for id.
func (s *State) Attempts(id string) int { return s.attempts[id] }

// DiscoveredSecrets returns the discovered secrets, sorted.
func (s *State) DiscoveredSecrets() []string {
	return slices.Sorted(maps.Keys(s.secrets))
}

// Analytics returns a copy of the analytics record.
func (s *State) Analytics() Analytics { return s.analytics.clone() }

// SetScaling changes the difficulty preference. Unknown values are
// rejected.
func (s *State) SetScaling(sc Scaling) error {
	if _, ok := ParseScaling(string(sc)); !ok {
		return fmt.Errorf("unknown difficulty scaling %q", sc)
	}
	s.scaling = sc
	return nil
}

// AddExperience adds a non-negative amount of experience and reports
// whether a level threshold was crossed. Non-positive amounts are ignored.
func (s *State) AddExperience(amount int, now time.Time) bool {
	if amount <= 0 {
		return false
	}
	before := s.Level()
	s.experience += amount
	s.updatedAt = now
	return s.Level() > before
}

// ModifySanity applies delta, clamping to [0, MaxSanity], and returns the
// resulting sanity. Reaching zero ends the game and clears any active
// challenge.
func (s *State) ModifySanity(delta int, now time.Time) int {
	s.sanity = clamp(s.sanity+delta, 0, MaxSanity)
	s.updatedAt = now
	if s.sanity == 0 {
		s.active = nil
	}
	return s.sanity
}

// DiscoverSecret records a secret and reports whether it was new. No
// challenge outcome awards secrets; hosts embedding the engine grant them
// for events of their own, and saves carry them across versions.
func (s *State) DiscoverSecret(secret string, now time.Time) bool {
	if secret == "" || s.secrets[secret] {
		return false
	}
	s.secrets[secret] = true
	s.updatedAt = now
	return true
}

// MarkTutorialCompleted sets the tutorial flag.
func (s *State) MarkTutorialCompleted(now time.Time) {
	s.tutorial = true
	s.updatedAt = now
}

// IsGameOver reports whether sanity is depleted.
func (s *State) IsGameOver() bool { return s.sanity == 0 }

// CheckInvariants reports any field outside its documented range.
func (s *State) CheckInvariants() error {
	return s.Snapshot().Check()
}

func clamp(v, lo, hi int) int {
	return max(lo, min(v, hi))
}
