package store

import (
	"context"
	"slices"
	"time"
)

// Kind identifies what an event records.
type Kind string

const (
	KindStart    Kind = "start"
	KindAnswer   Kind = "answer"
	KindHint     Kind = "hint"
	KindSkip     Kind = "skip"
	KindFail     Kind = "fail"
	KindGameOver Kind = "game_over"
	KindSave     Kind = "save"
	KindLoad     Kind = "load"
	KindImport   Kind = "import"
)

// Kinds lists every event kind.
var Kinds = []Kind{
	KindStart, KindAnswer, KindHint, KindSkip, KindFail,
	KindGameOver, KindSave, KindLoad, KindImport,
}

// Valid reports whether k is a known kind.
func (k Kind) Valid() bool {
	return slices.Contains(Kinds, k)
}

// EventData is what callers append. A zero Timestamp means now.
type EventData struct {
	Kind        Kind
	Slot        int
	SessionID   string
	ChallengeID string
	Detail      string
	Timestamp   time.Time
}

// Event is a stored journal entry.
type Event struct {
	Sequence    int64
	Timestamp   time.Time
	Kind        Kind
	Slot        int
	SessionID   string
	ChallengeID string
	Detail      string
}

// QueryOpts configures event queries with filtering and pagination.
type QueryOpts struct {
	Limit  int       // max results (0 = unlimited)
	After  int64     // sequence > After
	Before int64     // sequence < Before
	From   time.Time // timestamp >= From
	To     time.Time // timestamp <= To
	Slot   int       // 0 = all slots
	Kinds  []Kind    // empty = all kinds
	Newest bool      // newest first; with Limit, the most recent events
}

// EventRepo provides append and query access to journal events.
type EventRepo interface {
	// Append records an event and returns its sequence number.
	Append(ctx context.Context, data EventData) (int64, error)

	// Query returns events matching opts, ordered by sequence.
	Query(ctx context.Context, opts QueryOpts) ([]Event, error)

	// CountByKind tallies events per kind for slot (0 = all slots).
	CountByKind(ctx context.Context, slot int) (map[Kind]int, error)
}
