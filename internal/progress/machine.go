package progress

import (
	"fmt"
	"time"

	"github.com/abhisek/ghostprotocol/internal/challenges"
)

// NoHintsMessage is returned by Hint for a challenge without hints.
const NoHintsMessage = "No hints are available for this challenge."

// Phase is the position of the state machine.
type Phase int

const (
	PhaseIdle     Phase = iota // No active challenge
	PhaseActive                // A challenge awaits an answer
	PhaseGameOver              // Sanity depleted; absorbing until reset
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhaseActive:
		return "active"
	case PhaseGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// StartOptions adjusts how a challenge is started.
type StartOptions struct {
	// Replay allows starting a not-yet-completed variant of a completed
	// concept.
	Replay bool

	// MaxAttempts overrides DefaultMaxAttempts when positive.
	MaxAttempts int
}

type activeChallenge struct {
	ch          challenges.Challenge
	startedAt   time.Time
	maxAttempts int
	submissions int
	wrong       int
	hints       int
}

// SubmitResult describes the effect of one submitted answer.
type SubmitResult struct {
	ChallengeID string
	Correct     bool
	Resolution  Outcome // Empty while the challenge stays active
	XPGained    int
	SanityLost  int
	LeveledUp   bool
	Level       int
	Remaining   int    // Attempts left; meaningful after a wrong answer
	Solution    string // Set when the challenge failed
	GameOver    bool
}

// SkipResult describes the effect of a skip.
type SkipResult struct {
	ChallengeID string
	SanityLost  int
	GameOver    bool
}

// Phase returns the current phase.
func (s *State) Phase() Phase {
	switch {
	case s.sanity == 0:
		return PhaseGameOver
	case s.active != nil:
		return PhaseActive
	default:
		return PhaseIdle
	}
}

// Active returns the active challenge, if any.
func (s *State) Active() (challenges.Challenge, bool) {
	if s.active == nil {
		return challenges.Challenge{}, false
	}
	return s.active.ch, true
}

// Start makes ch the active challenge.
func (s *State) Start(ch challenges.Challenge, opts StartOptions, now time.Time) error {
	switch s.Phase() {
	case PhaseGameOver:
		return ErrGameOver
	case PhaseActive:
		return fmt.Errorf("%w: challenge %q is already active", ErrInvalidState, s.active.ch.ID)
	}

	concept := ch.Concept
	if concept == "" {
		concept = ch.ID
	}
	if s.completed[ch.ID] || s.completed[concept] {
		replayable := opts.Replay && ch.IsVariant() && !s.completed[ch.ID]
		if !replayable {
			return fmt.Errorf("%w: %q", ErrAlreadyCompleted, ch.ID)
		}
	}

	maxAttempts := opts.MaxAttempts
	if maxAttempts <= 0 {
		maxAttempts = DefaultMaxAttempts
	}
	if ch.Concept == "" {
		ch.Concept = concept
	}
	s.active = &activeChallenge{
		ch:          ch,
		startedAt:   now,
		maxAttempts: maxAttempts,
	}
	s.updatedAt = now
	return nil
}

// Submit checks answer against the active challenge. A wrong answer costs
// no sanity; sanity is charged once when the challenge resolves.
func (s *State) Submit(answer string, now time.Time) (SubmitResult, error) {
	if err := s.requireActive(); err != nil {
		return SubmitResult{}, err
	}
	a := s.active
	a.submissions++
	s.updatedAt = now

	res := SubmitResult{ChallengeID: a.ch.ID}
	if challenges.ValidateString(a.ch.ID, answer) {
		before := s.Level()
		if !s.completed[a.ch.ID] {
			s.AddExperience(a.ch.XPReward, now)
			res.XPGained = max(a.ch.XPReward, 0)
		}
		s.completed[a.ch.ID] = true
		s.completed[a.ch.Concept] = true

		res.Correct = true
		res.Resolution = OutcomeSolved
		res.SanityLost = s.resolve(OutcomeSolved, now)
		res.Level = s.Level()
		res.LeveledUp = res.Level > before
		res.GameOver = s.IsGameOver()
		return res, nil
	}

	a.wrong++
	s.attempts[a.ch.ID]++
	res.Level = s.Level()
	res.Remaining = a.maxAttempts - a.wrong
	if res.Remaining <= 0 {
		res.Remaining = 0
		res.Resolution = OutcomeFailed
		res.Solution = a.ch.Solution
		res.SanityLost = s.resolve(OutcomeFailed, now)
		res.GameOver = s.IsGameOver()
	}
	return res, nil
}

// Hint returns the next hint of the active challenge. Once the hints are
// exhausted the last one is repeated.
func (s *State) Hint() (string, error) {
	if err := s.requireActive(); err != nil {
		return "", err
	}
	a := s.active
	s.hintsUsed++
	a.hints++
	if len(a.ch.Hints) == 0 {
		return NoHintsMessage, nil
	}
	idx := min(a.hints, len(a.ch.Hints)) - 1
	return a.ch.Hints[idx], nil
}

// HintsTaken returns the hints taken on the active challenge.
func (s *State) HintsTaken() int {
	if s.active == nil {
		return 0
	}
	return s.active.hints
}

// Skip abandons the active challenge, charging its sanity cost.
func (s *State) Skip(now time.Time) (SkipResult, error) {
	if err := s.requireActive(); err != nil {
		return SkipResult{}, err
	}
	id := s.active.ch.ID
	lost := s.resolve(OutcomeSkipped, now)
	return SkipResult{ChallengeID: id, SanityLost: lost, GameOver: s.IsGameOver()}, nil
}

// Abandon clears the active challenge without resolving it. Used when a
// session ends between commands.
func (s *State) Abandon() {
	s.active = nil
}

func (s *State) requireActive() error {
	switch s.Phase() {
	case PhaseGameOver:
		return ErrGameOver
	case PhaseIdle:
		return fmt.Errorf("%w: no active challenge", ErrInvalidState)
	}
	return nil
}

// resolve charges the sanity cost once, records the outcome and clears the
// active pointer. It returns the sanity actually lost.
func (s *State) resolve(outcome Outcome, now time.Time) int {
	a := s.active
	before := s.sanity
	s.ModifySanity(-a.ch.SanityCost, now)

	d := now.Sub(a.startedAt).Truncate(time.Millisecond)
	if d < 0 {
		d = 0
	}
	s.analytics.record(OutcomeRecord{
		ChallengeID: a.ch.ID,
		Category:    a.ch.Category,
		Outcome:     outcome,
		Attempts:    a.submissions,
		Hints:       a.hints,
		Duration:    d,
	})
	s.active = nil
	s.updatedAt = now
	return before - s.sanity
}
