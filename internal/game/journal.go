package game

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/abhisek/ghostprotocol/internal/store"
)

// journal records session events. Recording never fails a command: errors
// are logged and dropped, and a nil repo records nothing.
type journal struct {
	repo      store.EventRepo
	sessionID string
	logger    *zap.Logger
}

func (j *journal) record(ctx context.Context, at time.Time, kind store.Kind, slot int, challengeID, detail string) {
	if j == nil || j.repo == nil {
		return
	}
	_, err := j.repo.Append(ctx, store.EventData{
		Kind:        kind,
		Slot:        slot,
		SessionID:   j.sessionID,
		ChallengeID: challengeID,
		Detail:      detail,
		Timestamp:   at,
	})
	if err != nil {
		j.logger.Warn("journal append failed",
			zap.String("kind", string(kind)),
			zap.Int("slot", slot),
			zap.Error(err),
		)
	}
}
