// Package clock supplies monotonic time readings and pure detectors for
// abnormal elapsed-time jumps. Elapsed-time math in the session engine must
// never touch the wall clock; it works exclusively on Reading differences.
package clock

import "time"

// Reading is a monotonic clock value in seconds. Only differences between
// two readings from the same Clock are meaningful.
type Reading float64

// Clock produces monotonic readings immune to wall-clock edits.
type Clock interface {
	Now() Reading
}

const (
	// JumpThreshold is the discrepancy, in seconds, above which a
	// wall-clock manipulation is assumed.
	JumpThreshold = 300

	// MaxSessionSeconds is the longest elapsed time a single focus
	// session can legitimately accumulate.
	MaxSessionSeconds = 1500
)

type monotonic struct {
	base time.Time
}

// NewMonotonic returns a Clock backed by the runtime's monotonic source.
// Readings are seconds since the clock was constructed; time.Time
// subtraction uses the monotonic component, so wall-clock changes do not
// affect them.
func NewMonotonic() Clock {
	return &monotonic{base: time.Now()}
}

func (c *monotonic) Now() Reading {
	return Reading(time.Since(c.base).Seconds())
}

// DetectJump compares the elapsed time between two readings against an
// expected elapsed duration. It returns the discrepancy magnitude and true
// when the discrepancy exceeds JumpThreshold.
func DetectJump(previous, current Reading, expectedElapsed float64) (float64, bool) {
	actual := float64(current - previous)
	discrepancy := actual - expectedElapsed
	if discrepancy < 0 {
		discrepancy = -discrepancy
	}
	if discrepancy > JumpThreshold {
		return discrepancy, true
	}
	return 0, false
}

// DetectAbnormalElapsed flags an elapsed interval that is impossible for a
// live session: negative, or longer than the maximum session duration. It
// returns the magnitude of the interval and true when anomalous.
func DetectAbnormalElapsed(previous, current Reading) (float64, bool) {
	elapsed := float64(current - previous)
	if elapsed < 0 || elapsed > MaxSessionSeconds {
		if elapsed < 0 {
			elapsed = -elapsed
		}
		return elapsed, true
	}
	return 0, false
}
