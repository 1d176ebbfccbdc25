package stats

import (
	"time"

	"github.com/google/uuid"
)

// StreakData is the singleton streak record. A zero LastSessionStartDay
// means no session has ever completed.
type StreakData struct {
	ID                  string
	CurrentStreak       int
	LastSessionStartDay time.Time
}

// NewStreakData creates the zero-state singleton.
func NewStreakData() *StreakData {
	return &StreakData{ID: uuid.NewString(), CurrentStreak: 0}
}

// TamperEvent is one append-only audit entry for a detected time jump.
type TamperEvent struct {
	ID                string
	Timestamp         time.Time
	TimeJumpMagnitude float64
}

// NewTamperEvent records a detection at the current wall-clock instant.
func NewTamperEvent(magnitude float64) *TamperEvent {
	return &TamperEvent{
		ID:                uuid.NewString(),
		Timestamp:         time.Now(),
		TimeJumpMagnitude: magnitude,
	}
}
