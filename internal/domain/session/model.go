package session

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/perennial/grove/internal/clock"
	"github.com/perennial/grove/internal/dates"
)

// FocusDuration is the fixed length of one focus session, in seconds.
const FocusDuration = 1500

// Status is the persisted lifecycle status of a session record.
type Status string

const (
	StatusActive    Status = "active"
	StatusPaused    Status = "paused"
	StatusCompleted Status = "completed"
	StatusAbandoned Status = "abandoned"
)

// ParseStatus converts a stored status value back to a Status. Unrecognized
// values are an error, never silently coerced to a terminal status.
func ParseStatus(s string) (Status, error) {
	switch Status(s) {
	case StatusActive, StatusPaused, StatusCompleted, StatusAbandoned:
		return Status(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, s)
}

// Terminal reports whether the status permits no further transitions.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusAbandoned
}

// Session is one timed focus attempt.
//
// StartDay is normalized to local midnight once at creation and never
// recomputed later. ElapsedSeconds is always derived from
// MonotonicReference, never from wall-clock arithmetic, and stays within
// [0, FocusDuration].
type Session struct {
	ID                 string
	StartTime          time.Time
	StartDay           time.Time
	EndTime            *time.Time
	ElapsedSeconds     int
	Status             Status
	TreeStage          int
	MonotonicReference clock.Reading
}

// New creates an active session starting at the supplied wall-clock instant,
// anchored to the supplied monotonic reading.
func New(startTime time.Time, reference clock.Reading) *Session {
	return &Session{
		ID:                 uuid.NewString(),
		StartTime:          startTime,
		StartDay:           dates.StartOfDay(startTime),
		ElapsedSeconds:     0,
		Status:             StatusActive,
		TreeStage:          1,
		MonotonicReference: reference,
	}
}

// TreeStage maps elapsed seconds to the 1-5 visual growth stage. Stage 5 is
// reached exactly at completion.
func TreeStage(elapsed int) int {
	switch {
	case elapsed < 300:
		return 1
	case elapsed < 600:
		return 2
	case elapsed < 900:
		return 3
	case elapsed < 1200:
		return 4
	default:
		return 5
	}
}
