// Package game is the command surface over the progression engine. A
// Session owns one progression state, the slot it belongs to, the save
// manager and the optional journal. Commands return structured results;
// rendering them is the caller's job.
package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/abhisek/ghostprotocol/internal/challenges"
	"github.com/abhisek/ghostprotocol/internal/difficulty"
	"github.com/abhisek/ghostprotocol/internal/progress"
	"github.com/abhisek/ghostprotocol/internal/savegame"
	"github.com/abhisek/ghostprotocol/internal/store"
)

// TutorialConcept is the challenge whose completion finishes the tutorial.
const TutorialConcept = "welcome"

// Options configures a Session.
type Options struct {
	Slot        int               // Defaults to 1
	Saves       *savegame.Manager // Required
	Journal     store.EventRepo   // Optional
	Logger      *zap.Logger
	Clock       func() time.Time
	AutoSave    bool
	MaxAttempts int
	PlayerName  string           // Used for new games
	Scaling     progress.Scaling // Used for new games
}

// StartRequest adjusts how a challenge is started.
type StartRequest struct {
	// Difficulty is honoured under custom scaling when the concept offers
	// it. A variant id passed to Start is always served as is.
	Difficulty challenges.Difficulty

	// Replay allows a not-yet-completed variant of a completed concept.
	Replay bool
}

// Session is not safe for concurrent use.
type Session struct {
	state       *progress.State
	slot        int
	saves       *savegame.Manager
	journal     *journal
	logger      *zap.Logger
	now         func() time.Time
	autoSave    bool
	maxAttempts int
	playerName  string
	scaling     progress.Scaling
	startedAt   time.Time
	dirty       bool
}

// New creates a session holding a fresh state. Call Resume to pick up the
// slot's saved game instead.
func New(opts Options) (*Session, error) {
	if opts.Saves == nil {
		return nil, errors.New("game: save manager is required")
	}
	if opts.Slot == 0 {
		opts.Slot = 1
	}
	if opts.Slot < 1 || opts.Slot > opts.Saves.Slots() {
		return nil, fmt.Errorf("%w: slot %d (valid 1..%d)", savegame.ErrSlotNotFound, opts.Slot, opts.Saves.Slots())
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if strings.TrimSpace(opts.PlayerName) == "" {
		opts.PlayerName = progress.DefaultPlayerName
	}
	if opts.Scaling == "" {
		opts.Scaling = progress.ScalingAdaptive
	}
	if _, ok := progress.ParseScaling(string(opts.Scaling)); !ok {
		return nil, fmt.Errorf("game: unknown difficulty scaling %q", opts.Scaling)
	}
	if opts.MaxAttempts <= 0 {
		opts.MaxAttempts = progress.DefaultMaxAttempts
	}

	id := uuid.NewString()
	logger := opts.Logger.With(zap.String("session", id))
	s := &Session{
		slot:        opts.Slot,
		saves:       opts.Saves,
		journal:     &journal{repo: opts.Journal, sessionID: id, logger: logger},
		logger:      logger,
		now:         opts.Clock,
		autoSave:    opts.AutoSave,
		maxAttempts: opts.MaxAttempts,
		playerName:  opts.PlayerName,
		scaling:     opts.Scaling,
	}
	s.state = s.freshState(opts.PlayerName)
	return s, nil
}

// State returns the live state. Callers must not mutate it directly.
func (s *Session) State() *progress.State { return s.state }

// Slot returns the slot this session saves to.
func (s *Session) Slot() int { return s.slot }

// ID returns the session id recorded in the journal.
func (s *Session) ID() string { return s.journal.sessionID }

func (s *Session) freshState(name string) *progress.State {
	st := progress.New(name, s.now())
	// Validated in New.
	_ = st.SetScaling(s.scaling)
	return st
}

// Resume loads the session's slot. An empty slot starts a new game; a
// corrupt slot starts a new game with a warning and leaves the file alone.
func (s *Session) Resume(ctx context.Context) (Result, error) {
	loaded, err := s.saves.LoadOrNew(s.slot, s.playerName)
	if err != nil {
		return Result{}, err
	}
	s.state = loaded.State
	s.dirty = false

	res := Result{OK: true, Level: s.state.Level()}
	if loaded.FromVersion == 0 {
		_ = s.state.SetScaling(s.scaling)
		res.Message = fmt.Sprintf("New game for %s in slot %d.", s.state.PlayerName(), s.slot)
	} else {
		res.Message = fmt.Sprintf("Loaded slot %d: %s, level %d.", s.slot, s.state.PlayerName(), s.state.Level())
		s.journal.record(ctx, s.now(), store.KindLoad, s.slot, "", fmt.Sprintf("version=%d", loaded.FromVersion))
	}
	for _, w := range loaded.Warnings {
		res.warn(w)
	}
	res.GameOver = s.state.IsGameOver()
	return res, nil
}

// NewGame replaces the state with a fresh one. With auto-save on the slot
// is overwritten immediately.
func (s *Session) NewGame(ctx context.Context, name string) (Result, error) {
	if strings.TrimSpace(name) == "" {
		name = s.playerName
	}
	s.state = s.freshState(name)
	s.dirty = true
	res := Result{
		OK:      true,
		Message: fmt.Sprintf("New game for %s in slot %d.", name, s.slot),
		Level:   s.state.Level(),
	}
	s.autosave(ctx, &res)
	return res, nil
}

// Start presents a challenge. A base id goes through the difficulty
// selector; a variant id is served directly. A replay of a completed
// base id serves an unplayed variant, the requested one when offered.
func (s *Session) Start(ctx context.Context, id string, req StartRequest) (Result, error) {
	ch, err := challenges.Lookup(id)
	if err != nil {
		return Result{}, err
	}

	var dec difficulty.Decision
	switch {
	case ch.IsVariant():
		dec = difficulty.Decision{
			Challenge:  ch,
			Difficulty: ch.Difficulty,
			Reasons:    []string{"variant requested by id"},
		}
	case req.Replay && s.state.IsCompleted(ch.ID):
		v, reasons, ok := s.replayVariant(ch, req.Difficulty)
		if !ok {
			return Result{ChallengeID: ch.ID, GameOver: s.state.IsGameOver()},
				fmt.Errorf("%w: %q has no unplayed variant", progress.ErrAlreadyCompleted, ch.ID)
		}
		dec = difficulty.Decision{
			Challenge:  v,
			Difficulty: v.Difficulty,
			Reasons:    reasons,
		}
	default:
		snap := difficulty.SnapshotOf(s.state, ch.ID)
		dec = difficulty.Select(snap, ch, s.state.Scaling(), req.Difficulty)
	}

	now := s.now()
	opts := progress.StartOptions{Replay: req.Replay, MaxAttempts: s.maxAttempts}
	if err := s.state.Start(dec.Challenge, opts, now); err != nil {
		return Result{ChallengeID: dec.Challenge.ID, GameOver: s.state.IsGameOver()}, err
	}
	s.startedAt = now

	s.logger.Debug("challenge started",
		zap.String("challenge", dec.Challenge.ID),
		zap.String("difficulty", string(dec.Difficulty)),
		zap.Float64("score", dec.Score),
		zap.Strings("reasons", dec.Reasons),
	)
	s.journal.record(ctx, now, store.KindStart, s.slot, dec.Challenge.ID,
		fmt.Sprintf("difficulty=%s score=%.2f", dec.Difficulty, dec.Score))

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n\n%s", dec.Challenge.Title, dec.Challenge.Prompt)
	if dec.Challenge.TimeLimit > 0 {
		fmt.Fprintf(&b, "\n\nTime limit: %s", dec.Challenge.TimeLimit)
	}

	res := Result{
		OK:          true,
		Message:     b.String(),
		ChallengeID: dec.Challenge.ID,
		Difficulty:  dec.Difficulty,
		Remaining:   s.maxAttempts,
		Level:       s.state.Level(),
	}
	if req.Difficulty != "" && req.Difficulty != dec.Difficulty {
		res.warn(fmt.Sprintf("requested %s, serving %s (%s)", req.Difficulty, dec.Difficulty, strings.Join(dec.Reasons, ", ")))
	}
	return res, nil
}

// replayVariant picks the variant of the completed concept ch to replay:
// requested when offered and unplayed, else the first unplayed one.
func (s *Session) replayVariant(ch challenges.Challenge, requested challenges.Difficulty) (challenges.Challenge, []string, bool) {
	if requested != "" && requested != challenges.DifficultyStandard {
		if v, ok := ch.Variant(requested); ok && !s.state.IsCompleted(v.ID) {
			return v, []string{"replay " + string(requested)}, true
		}
	}
	for _, d := range ch.Difficulties() {
		if d == challenges.DifficultyStandard {
			continue
		}
		v, ok := ch.Variant(d)
		if ok && !s.state.IsCompleted(v.ID) {
			reasons := []string{"replay " + string(d)}
			if requested != "" {
				reasons = append(reasons, string(requested)+" unavailable")
			}
			return v, reasons, true
		}
	}
	return challenges.Challenge{}, nil, false
}

// Submit checks an answer against the active challenge.
func (s *Session) Submit(ctx context.Context, answer string) (Result, error) {
	active, _ := s.state.Active()
	now := s.now()
	r, err := s.state.Submit(answer, now)
	if err != nil {
		return Result{GameOver: s.state.IsGameOver()}, err
	}
	s.dirty = true

	res := Result{
		OK:          r.Correct,
		ChallengeID: r.ChallengeID,
		Difficulty:  active.Difficulty,
		Remaining:   r.Remaining,
		XPGained:    r.XPGained,
		SanityLost:  r.SanityLost,
		LeveledUp:   r.LeveledUp,
		Level:       r.Level,
		GameOver:    r.GameOver,
		Solution:    r.Solution,
	}

	var msg strings.Builder
	switch {
	case r.Correct:
		s.journal.record(ctx, now, store.KindAnswer, s.slot, r.ChallengeID, "correct")
		fmt.Fprintf(&msg, "Correct. +%d XP", r.XPGained)
		if r.SanityLost > 0 {
			fmt.Fprintf(&msg, ", -%d sanity", r.SanityLost)
		}
		msg.WriteString(".")
		if r.LeveledUp {
			fmt.Fprintf(&msg, " Level up: you are now level %d.", r.Level)
		}
		if active.Concept == TutorialConcept && !s.state.TutorialCompleted() {
			s.state.MarkTutorialCompleted(now)
		}
		if s.allCompleted() {
			msg.WriteString(" Every challenge is complete.")
		}
		if active.TimeLimit > 0 && now.Sub(s.startedAt) > active.TimeLimit {
			res.warn(fmt.Sprintf("answered after the %s time limit", active.TimeLimit))
		}
	case r.Resolution == progress.OutcomeFailed:
		s.journal.record(ctx, now, store.KindAnswer, s.slot, r.ChallengeID, "wrong")
		s.journal.record(ctx, now, store.KindFail, s.slot, r.ChallengeID, "attempt limit")
		fmt.Fprintf(&msg, "Incorrect. Out of attempts, -%d sanity. The answer was: %s", r.SanityLost, r.Solution)
	default:
		s.journal.record(ctx, now, store.KindAnswer, s.slot, r.ChallengeID, "wrong")
		fmt.Fprintf(&msg, "Incorrect. %d attempt(s) left.", r.Remaining)
	}

	if r.GameOver {
		s.journal.record(ctx, now, store.KindGameOver, s.slot, r.ChallengeID, "")
		msg.WriteString(" Sanity depleted. Game over.")
	}
	res.Message = msg.String()

	if r.Resolution != "" {
		s.autosave(ctx, &res)
	}
	return res, nil
}

// Hint returns the next hint of the active challenge.
func (s *Session) Hint(ctx context.Context) (Result, error) {
	active, _ := s.state.Active()
	text, err := s.state.Hint()
	if err != nil {
		return Result{GameOver: s.state.IsGameOver()}, err
	}
	s.dirty = true
	s.journal.record(ctx, s.now(), store.KindHint, s.slot, active.ID,
		fmt.Sprintf("n=%d", s.state.HintsTaken()))
	return Result{
		OK:          true,
		Message:     text,
		Hint:        text,
		ChallengeID: active.ID,
		Level:       s.state.Level(),
	}, nil
}

// Skip abandons the active challenge at its sanity cost.
func (s *Session) Skip(ctx context.Context) (Result, error) {
	now := s.now()
	r, err := s.state.Skip(now)
	if err != nil {
		return Result{GameOver: s.state.IsGameOver()}, err
	}
	s.dirty = true
	s.journal.record(ctx, now, store.KindSkip, s.slot, r.ChallengeID, "")

	res := Result{
		OK:          true,
		ChallengeID: r.ChallengeID,
		SanityLost:  r.SanityLost,
		GameOver:    r.GameOver,
		Level:       s.state.Level(),
		Message:     fmt.Sprintf("Skipped %s. -%d sanity.", r.ChallengeID, r.SanityLost),
	}
	if r.GameOver {
		s.journal.record(ctx, now, store.KindGameOver, s.slot, r.ChallengeID, "")
		res.Message += " Sanity depleted. Game over."
	}
	s.autosave(ctx, &res)
	return res, nil
}

// Save writes the state to slot, or to the session's slot when slot is 0.
// The session follows the state to the new slot.
func (s *Session) Save(ctx context.Context, slot int) (Result, error) {
	if slot == 0 {
		slot = s.slot
	}
	if err := s.saves.Save(s.state, slot); err != nil {
		return Result{}, err
	}
	s.slot = slot
	s.dirty = false
	s.journal.record(ctx, s.now(), store.KindSave, slot, "", "manual")
	return Result{OK: true, Message: fmt.Sprintf("Saved to slot %d.", slot), Level: s.state.Level()}, nil
}

// Load replaces the state with slot's save. Unlike Resume, a corrupt or
// empty slot is an error and the current state is kept.
func (s *Session) Load(ctx context.Context, slot int) (Result, error) {
	loaded, err := s.saves.Load(slot)
	if err != nil {
		return Result{}, err
	}
	s.state = loaded.State
	s.slot = slot
	s.dirty = false
	s.journal.record(ctx, s.now(), store.KindLoad, slot, "", fmt.Sprintf("version=%d", loaded.FromVersion))

	res := Result{
		OK:       true,
		Message:  fmt.Sprintf("Loaded slot %d: %s, level %d.", slot, s.state.PlayerName(), s.state.Level()),
		Level:    s.state.Level(),
		GameOver: s.state.IsGameOver(),
	}
	for _, w := range loaded.Warnings {
		res.warn(w)
	}
	return res, nil
}

// Export serializes the state into Result.Data.
func (s *Session) Export(ctx context.Context) (Result, error) {
	data, err := s.saves.Export(s.state)
	if err != nil {
		return Result{}, err
	}
	return Result{
		OK:      true,
		Message: fmt.Sprintf("Exported %s (%d bytes).", s.state.PlayerName(), len(data)),
		Data:    data,
		Level:   s.state.Level(),
	}, nil
}

// Import replaces the state with exported data, upgrading older formats.
// The current state is kept when the data is rejected.
func (s *Session) Import(ctx context.Context, data []byte) (Result, error) {
	loaded, err := s.saves.Import(data)
	if err != nil {
		return Result{}, err
	}
	s.state = loaded.State
	s.dirty = true
	s.journal.record(ctx, s.now(), store.KindImport, s.slot, "", fmt.Sprintf("version=%d", loaded.FromVersion))

	res := Result{
		OK:       true,
		Message:  fmt.Sprintf("Imported %s, level %d, into slot %d.", s.state.PlayerName(), s.state.Level(), s.slot),
		Level:    s.state.Level(),
		GameOver: s.state.IsGameOver(),
	}
	for _, w := range loaded.Warnings {
		res.warn(w)
	}
	s.autosave(ctx, &res)
	return res, nil
}

// Reset deletes the slot's save and starts over.
func (s *Session) Reset(ctx context.Context) (Result, error) {
	if err := s.saves.Delete(s.slot); err != nil && !errors.Is(err, savegame.ErrSlotNotFound) {
		return Result{}, err
	}
	s.state = s.freshState(s.playerName)
	s.dirty = false
	return Result{OK: true, Message: fmt.Sprintf("Slot %d cleared.", s.slot)}, nil
}

// SetScaling changes the difficulty preference of the current game.
func (s *Session) SetScaling(ctx context.Context, sc progress.Scaling) (Result, error) {
	if err := s.state.SetScaling(sc); err != nil {
		return Result{}, err
	}
	s.dirty = true
	return Result{OK: true, Message: fmt.Sprintf("Difficulty scaling set to %s.", sc), Level: s.state.Level()}, nil
}

// Close ends the session: an unanswered challenge is dropped without
// charge and unsaved progress is written when auto-save is on.
func (s *Session) Close(ctx context.Context) error {
	s.state.Abandon()
	if !s.dirty || !s.autoSave {
		return nil
	}
	if err := s.saves.Save(s.state, s.slot); err != nil {
		return err
	}
	s.dirty = false
	s.journal.record(ctx, s.now(), store.KindSave, s.slot, "", "close")
	return nil
}

// autosave persists after a resolution. A failed write is reported as a
// warning; the command itself already succeeded.
func (s *Session) autosave(ctx context.Context, res *Result) {
	if !s.autoSave {
		return
	}
	if err := s.saves.Save(s.state, s.slot); err != nil {
		s.logger.Warn("autosave failed", zap.Int("slot", s.slot), zap.Error(err))
		res.warn("autosave failed: " + err.Error())
		return
	}
	s.dirty = false
	s.journal.record(ctx, s.now(), store.KindSave, s.slot, "", "auto")
}

func (s *Session) allCompleted() bool {
	for ch := range challenges.All() {
		if !s.state.IsCompleted(ch.ID) {
			return false
		}
	}
	return true
}
