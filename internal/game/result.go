package game

import "github.com/abhisek/ghostprotocol/internal/challenges"

// Result is the structured outcome of one command. Presentation is left to
// the caller.
type Result struct {
	OK          bool
	Message     string
	ChallengeID string
	Difficulty  challenges.Difficulty
	Hint        string
	Remaining   int // Attempts left after a wrong answer
	XPGained    int
	SanityLost  int
	LeveledUp   bool
	Level       int
	GameOver    bool
	Solution    string // Revealed when a challenge fails
	Warning     string
	Data        []byte // Export payload
}

func (r *Result) warn(w string) {
	if w == "" {
		return
	}
	if r.Warning != "" {
		r.Warning += "; "
	}
	r.Warning += w
}
