package game

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/ghostprotocol/internal/challenges"
	"github.com/abhisek/ghostprotocol/internal/progress"
	"github.com/abhisek/ghostprotocol/internal/savegame"
	"github.com/abhisek/ghostprotocol/internal/store"
)

var t0 = time.Date(2024, 5, 1, 20, 0, 0, 0, time.UTC)

type clock struct{ t time.Time }

func (c *clock) now() time.Time         { return c.t }
func (c *clock) advance(d time.Duration) { c.t = c.t.Add(d) }

type fixture struct {
	sess    *Session
	saves   *savegame.Manager
	journal store.EventRepo
	clock   *clock
}

func newFixture(t *testing.T, mutate func(*Options)) *fixture {
	t.Helper()
	dir := t.TempDir()
	c := &clock{t: t0}
	saves, err := savegame.NewManager(dir, savegame.WithClock(c.now))
	require.NoError(t, err)

	st, err := store.OpenDir(t.TempDir())
	require.NoError(t, err)
	t.Cleanup(func() { st.Close() })

	opts := Options{
		Slot:       1,
		Saves:      saves,
		Journal:    st.EventRepo(),
		Clock:      c.now,
		AutoSave:   true,
		PlayerName: "neo",
	}
	if mutate != nil {
		mutate(&opts)
	}
	sess, err := New(opts)
	require.NoError(t, err)
	return &fixture{sess: sess, saves: saves, journal: opts.Journal, clock: c}
}

func (f *fixture) counts(t *testing.T) map[store.Kind]int {
	t.Helper()
	counts, err := f.journal.CountByKind(context.Background(), 0)
	require.NoError(t, err)
	return counts
}

func TestNew_Validation(t *testing.T) {
	saves, err := savegame.NewManager(t.TempDir())
	require.NoError(t, err)

	_, err = New(Options{})
	assert.Error(t, err, "save manager required")

	_, err = New(Options{Saves: saves, Slot: 4})
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)

	_, err = New(Options{Saves: saves, Scaling: "chaotic"})
	assert.Error(t, err)

	s, err := New(Options{Saves: saves})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Slot())
	assert.Equal(t, progress.DefaultPlayerName, s.State().PlayerName())
	assert.Equal(t, progress.ScalingAdaptive, s.State().Scaling())
	assert.NotEmpty(t, s.ID())
}

func TestResume_EmptySlotStartsFresh(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Scaling = progress.ScalingStatic })
	res, err := f.sess.Resume(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Contains(t, res.Message, "New game")
	assert.Empty(t, res.Warning)
	assert.Equal(t, progress.ScalingStatic, f.sess.State().Scaling())
	assert.Zero(t, f.counts(t)[store.KindLoad])
}

func TestResume_LoadsSavedGame(t *testing.T) {
	f := newFixture(t, nil)
	saved := progress.New("trinity", t0)
	saved.AddExperience(150, t0)
	require.NoError(t, f.saves.Save(saved, 1))

	res, err := f.sess.Resume(context.Background())
	require.NoError(t, err)
	assert.Contains(t, res.Message, "trinity")
	assert.Equal(t, 1, res.Level)
	assert.Equal(t, 150, f.sess.State().Experience())
	assert.Equal(t, 1, f.counts(t)[store.KindLoad])
}

func TestResume_CorruptSlotWarns(t *testing.T) {
	f := newFixture(t, nil)
	require.NoError(t, os.WriteFile(f.saves.Path(1), []byte(`{"version": 3, "state": `), 0o600))

	res, err := f.sess.Resume(context.Background())
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.NotEmpty(t, res.Warning)
	assert.Equal(t, progress.MaxSanity, f.sess.State().Sanity())

	data, err := os.ReadFile(f.saves.Path(1))
	require.NoError(t, err)
	assert.Equal(t, `{"version": 3, "state": `, string(data), "corrupt file must be kept")
}

func TestSolveFlow(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	res, err := f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)
	assert.Equal(t, "welcome", res.ChallengeID)
	assert.Equal(t, challenges.DifficultyStandard, res.Difficulty)
	assert.Contains(t, res.Message, "V2VsY29tZSB0byB0aGUgR2hvc3QgUHJvdG9jb2w=")
	assert.Equal(t, progress.DefaultMaxAttempts, res.Remaining)

	f.clock.advance(20 * time.Second)
	res, err = f.sess.Submit(ctx, "  welcome to the ghost protocol ")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 50, res.XPGained)
	assert.Equal(t, 5, res.SanityLost)
	assert.False(t, res.LeveledUp)
	assert.Contains(t, res.Message, "+50 XP")
	assert.Empty(t, res.Warning)
	assert.True(t, f.sess.State().TutorialCompleted())

	loaded, err := f.saves.Load(1)
	require.NoError(t, err, "completion autosaves")
	assert.Equal(t, 50, loaded.State.Experience())
	assert.True(t, loaded.State.IsCompleted("welcome"))

	assert.Equal(t, map[store.Kind]int{
		store.KindStart: 1, store.KindAnswer: 1, store.KindSave: 1,
	}, f.counts(t))
}

func TestSubmit_LevelUp(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.sess.State().AddExperience(60, t0)

	_, err := f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)
	res, err := f.sess.Submit(ctx, "Welcome to the Ghost Protocol")
	require.NoError(t, err)
	assert.True(t, res.LeveledUp)
	assert.Equal(t, 1, res.Level)
	assert.Contains(t, res.Message, "Level up")
}

func TestSubmit_AttemptLimit(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.MaxAttempts = 2 })
	ctx := context.Background()

	_, err := f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)

	res, err := f.sess.Submit(ctx, "nope")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Equal(t, 1, res.Remaining)
	assert.Contains(t, res.Message, "1 attempt(s) left")
	_, err = f.saves.Load(1)
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound, "a wrong answer alone does not autosave")

	res, err = f.sess.Submit(ctx, "still no")
	require.NoError(t, err)
	assert.False(t, res.OK)
	assert.Zero(t, res.Remaining)
	assert.Equal(t, "Welcome to the Ghost Protocol", res.Solution)
	assert.Equal(t, 5, res.SanityLost)
	assert.Equal(t, progress.PhaseIdle, f.sess.State().Phase())

	loaded, err := f.saves.Load(1)
	require.NoError(t, err)
	assert.Equal(t, 2, loaded.State.Attempts("welcome"))
	assert.False(t, loaded.State.IsCompleted("welcome"))

	counts := f.counts(t)
	assert.Equal(t, 2, counts[store.KindAnswer])
	assert.Equal(t, 1, counts[store.KindFail])
}

func TestHints(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.sess.Hint(ctx)
	assert.ErrorIs(t, err, progress.ErrInvalidState)

	_, err = f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)

	want := []string{
		"Base64 is a common encoding scheme. Try a Base64 decoder.",
		"The answer is the decoded text exactly as it appears.",
		"The answer is the decoded text exactly as it appears.",
	}
	for _, w := range want {
		res, err := f.sess.Hint(ctx)
		require.NoError(t, err)
		assert.Equal(t, w, res.Hint)
		assert.Equal(t, "welcome", res.ChallengeID)
	}
	assert.Equal(t, 3, f.sess.State().HintsUsed())
	assert.Equal(t, 3, f.counts(t)[store.KindHint])

	require.NoError(t, f.sess.Close(ctx))
	loaded, err := f.saves.Load(1)
	require.NoError(t, err, "close persists unsaved hint usage")
	assert.Equal(t, 3, loaded.State.HintsUsed())
	assert.Equal(t, progress.PhaseIdle, f.sess.State().Phase())
}

func TestClose_WithoutAutoSave(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.AutoSave = false })
	ctx := context.Background()

	_, err := f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)
	_, err = f.sess.Submit(ctx, "Welcome to the Ghost Protocol")
	require.NoError(t, err)
	require.NoError(t, f.sess.Close(ctx))

	_, err = f.saves.Load(1)
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)
}

func TestSkipToGameOver(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.sess.State().ModifySanity(-96, t0) // 4 left, welcome costs 5

	_, err := f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)
	res, err := f.sess.Skip(ctx)
	require.NoError(t, err)
	assert.True(t, res.GameOver)
	assert.Equal(t, 4, res.SanityLost)
	assert.Contains(t, res.Message, "Game over")

	_, err = f.sess.Start(ctx, "file_discovery", StartRequest{})
	assert.ErrorIs(t, err, progress.ErrGameOver)

	loaded, err := f.saves.Load(1)
	require.NoError(t, err)
	assert.Zero(t, loaded.State.Sanity())

	counts := f.counts(t)
	assert.Equal(t, 1, counts[store.KindSkip])
	assert.Equal(t, 1, counts[store.KindGameOver])

	res, err = f.sess.NewGame(ctx, "")
	require.NoError(t, err)
	assert.Equal(t, progress.MaxSanity, f.sess.State().Sanity())
	assert.Equal(t, "neo", f.sess.State().PlayerName())
}

func TestStart_Errors(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.sess.Start(ctx, "no_such_thing", StartRequest{})
	assert.ErrorIs(t, err, challenges.ErrNotFound)

	_, err = f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)
	_, err = f.sess.Start(ctx, "file_discovery", StartRequest{})
	assert.ErrorIs(t, err, progress.ErrInvalidState)

	_, err = f.sess.Submit(ctx, "Welcome to the Ghost Protocol")
	require.NoError(t, err)
	_, err = f.sess.Start(ctx, "welcome", StartRequest{})
	assert.ErrorIs(t, err, progress.ErrAlreadyCompleted)
}

func TestStart_VariantReplay(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)
	_, err = f.sess.Submit(ctx, "Welcome to the Ghost Protocol")
	require.NoError(t, err)

	_, err = f.sess.Start(ctx, "welcome_speed", StartRequest{})
	assert.ErrorIs(t, err, progress.ErrAlreadyCompleted)

	res, err := f.sess.Start(ctx, "welcome_speed", StartRequest{Replay: true})
	require.NoError(t, err)
	assert.Equal(t, challenges.DifficultyAdvanced, res.Difficulty)
	assert.Contains(t, res.Message, "Time limit: 30s")

	f.clock.advance(45 * time.Second)
	res, err = f.sess.Submit(ctx, "welcome to the ghost protocol")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Equal(t, 75, res.XPGained)
	assert.Contains(t, res.Warning, "time limit")
}

func TestStart_BaseReplay(t *testing.T) {
	tests := []struct {
		name        string
		scaling     progress.Scaling
		requested   challenges.Difficulty
		wantID      string
		wantWarning bool
	}{
		{"adaptive beginner", progress.ScalingAdaptive, challenges.DifficultyBeginner, "welcome_tutorial", false},
		{"static advanced", progress.ScalingStatic, challenges.DifficultyAdvanced, "welcome_speed", false},
		{"no request picks first unplayed", progress.ScalingAdaptive, "", "welcome_tutorial", false},
		{"unavailable falls back", progress.ScalingAdaptive, challenges.DifficultyExpert, "welcome_tutorial", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(o *Options) { o.Scaling = tt.scaling })
			ctx := context.Background()
			_, err := f.sess.Start(ctx, "welcome", StartRequest{})
			require.NoError(t, err)
			_, err = f.sess.Submit(ctx, "Welcome to the Ghost Protocol")
			require.NoError(t, err)

			res, err := f.sess.Start(ctx, "welcome", StartRequest{Replay: true, Difficulty: tt.requested})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.ChallengeID)
			if tt.wantWarning {
				assert.Contains(t, res.Warning, "requested expert")
			} else {
				assert.Empty(t, res.Warning)
			}
		})
	}
}

func TestStart_BaseReplayExhausted(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	for _, id := range []string{"welcome", "welcome_tutorial", "welcome_speed"} {
		_, err := f.sess.Start(ctx, id, StartRequest{Replay: true})
		require.NoError(t, err, id)
		_, err = f.sess.Submit(ctx, "Welcome to the Ghost Protocol")
		require.NoError(t, err, id)
	}

	_, err := f.sess.Start(ctx, "welcome", StartRequest{Replay: true})
	assert.ErrorIs(t, err, progress.ErrAlreadyCompleted)
	_, err = f.sess.Start(ctx, "welcome", StartRequest{})
	assert.ErrorIs(t, err, progress.ErrAlreadyCompleted)
}

func TestStart_Scaling(t *testing.T) {
	tests := []struct {
		name        string
		scaling     progress.Scaling
		requested   challenges.Difficulty
		wantID      string
		wantWarning bool
	}{
		{"custom honours request", progress.ScalingCustom, challenges.DifficultyAdvanced, "welcome_speed", false},
		{"custom beginner", progress.ScalingCustom, challenges.DifficultyBeginner, "welcome_tutorial", false},
		{"custom unavailable", progress.ScalingCustom, challenges.DifficultyExpert, "welcome", true},
		{"static ignores request", progress.ScalingStatic, challenges.DifficultyAdvanced, "welcome", true},
		{"adaptive fresh player", progress.ScalingAdaptive, "", "welcome", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, func(o *Options) { o.Scaling = tt.scaling })
			res, err := f.sess.Start(context.Background(), "welcome", StartRequest{Difficulty: tt.requested})
			require.NoError(t, err)
			assert.Equal(t, tt.wantID, res.ChallengeID)
			if tt.wantWarning {
				assert.NotEmpty(t, res.Warning)
			} else {
				assert.Empty(t, res.Warning)
			}
		})
	}
}

func TestSaveAndLoadSlots(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.AutoSave = false })
	ctx := context.Background()
	f.sess.State().AddExperience(120, t0)

	res, err := f.sess.Save(ctx, 2)
	require.NoError(t, err)
	assert.Contains(t, res.Message, "slot 2")
	assert.Equal(t, 2, f.sess.Slot())

	_, err = f.sess.NewGame(ctx, "morpheus")
	require.NoError(t, err)
	assert.Zero(t, f.sess.State().Experience())

	_, err = f.sess.Load(ctx, 3)
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)
	assert.Equal(t, "morpheus", f.sess.State().PlayerName(), "failed load keeps state")

	_, err = f.saves.Load(2)
	require.NoError(t, err)

	res, err = f.sess.Load(ctx, 2)
	require.NoError(t, err)
	assert.Equal(t, 120, f.sess.State().Experience())
	assert.Equal(t, 1, res.Level)

	_, err = f.sess.Save(ctx, 9)
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)
}

func TestExportImport(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()
	f.sess.State().AddExperience(230, t0)

	res, err := f.sess.Export(ctx)
	require.NoError(t, err)
	require.NotEmpty(t, res.Data)
	exported := res.Data

	_, err = f.sess.NewGame(ctx, "blank")
	require.NoError(t, err)

	_, err = f.sess.Import(ctx, []byte("not json"))
	assert.ErrorIs(t, err, savegame.ErrCorrupt)
	assert.Equal(t, "blank", f.sess.State().PlayerName())

	res, err = f.sess.Import(ctx, exported)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Level)
	assert.Equal(t, "neo", f.sess.State().PlayerName())

	loaded, err := f.saves.Load(1)
	require.NoError(t, err, "import autosaves into the session slot")
	assert.Equal(t, 230, loaded.State.Experience())
	assert.Equal(t, 1, f.counts(t)[store.KindImport])
}

func TestReset(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.sess.Reset(ctx)
	require.NoError(t, err, "resetting an empty slot is fine")

	f.sess.State().AddExperience(10, t0)
	_, err = f.sess.Save(ctx, 0)
	require.NoError(t, err)

	_, err = f.sess.Reset(ctx)
	require.NoError(t, err)
	_, err = f.saves.Load(1)
	assert.ErrorIs(t, err, savegame.ErrSlotNotFound)
	assert.Zero(t, f.sess.State().Experience())
}

func TestSetScaling(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.sess.SetScaling(ctx, "wild")
	assert.Error(t, err)

	_, err = f.sess.SetScaling(ctx, progress.ScalingCustom)
	require.NoError(t, err)
	require.NoError(t, f.sess.Close(ctx))

	loaded, err := f.saves.Load(1)
	require.NoError(t, err)
	assert.Equal(t, progress.ScalingCustom, loaded.State.Scaling())
}

func TestAutosaveFailureIsAWarning(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)
	require.NoError(t, os.RemoveAll(f.saves.Dir()))

	res, err := f.sess.Submit(ctx, "Welcome to the Ghost Protocol")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Contains(t, res.Warning, "autosave failed")
}

type failingRepo struct{ store.EventRepo }

func (failingRepo) Append(context.Context, store.EventData) (int64, error) {
	return 0, errors.New("disk full")
}

func TestJournalFailureIsIgnored(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Journal = failingRepo{} })
	ctx := context.Background()

	_, err := f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)
	res, err := f.sess.Submit(ctx, "Welcome to the Ghost Protocol")
	require.NoError(t, err)
	assert.True(t, res.OK)
	assert.Empty(t, res.Warning)
}

func TestNoJournal(t *testing.T) {
	f := newFixture(t, func(o *Options) { o.Journal = nil })
	ctx := context.Background()

	_, err := f.sess.Start(ctx, "welcome", StartRequest{})
	require.NoError(t, err)
	_, err = f.sess.Skip(ctx)
	require.NoError(t, err)
}
