package forest

import (
	"time"

	"github.com/google/uuid"
)

// FullyGrownStage is the visual stage of every completed tree.
const FullyGrownStage = 5

// Tree is the immutable record of one completed focus session. It is
// created exactly once, atomically with the session's completion, and never
// mutated or deleted afterwards.
type Tree struct {
	ID             string
	SessionID      string
	StartTime      time.Time
	CompletionTime time.Time
	StartDay       time.Time
	VisualStage    int
}

// NewTree builds the tree for a session that is completing.
func NewTree(sessionID string, startTime, completionTime, startDay time.Time) *Tree {
	return &Tree{
		ID:             uuid.NewString(),
		SessionID:      sessionID,
		StartTime:      startTime,
		CompletionTime: completionTime,
		StartDay:       startDay,
		VisualStage:    FullyGrownStage,
	}
}
