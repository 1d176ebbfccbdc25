// Package notify implements the advisory completion alert. The scheduler
// has no effect on engine correctness; a missed or duplicate notification
// only affects the user-facing alert.
package notify

import (
	"io"
	"log/slog"
	"os/exec"
	"sync"
	"time"
)

// DesktopScheduler fires a desktop notification when the focus session is
// due to complete. It shells out to notify-send when available and falls
// back to a log line.
type DesktopScheduler struct {
	logger *slog.Logger

	mu    sync.Mutex
	timer *time.Timer
}

// NewDesktop creates a scheduler that notifies via the desktop environment.
func NewDesktop(logger *slog.Logger) *DesktopScheduler {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &DesktopScheduler{logger: logger}
}

// ScheduleCompletion arms the alert to fire after the given number of seconds.
func (s *DesktopScheduler) ScheduleCompletion(seconds int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.cancelLocked()
	s.timer = time.AfterFunc(time.Duration(seconds)*time.Second, s.fire)
}

// CancelPending disarms any scheduled alert.
func (s *DesktopScheduler) CancelPending() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cancelLocked()
}

// Reschedule disarms and re-arms the alert.
func (s *DesktopScheduler) Reschedule(seconds int) {
	s.ScheduleCompletion(seconds)
}

func (s *DesktopScheduler) cancelLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

func (s *DesktopScheduler) fire() {
	cmd := exec.Command("notify-send", "Focus complete!", "Your tree is fully grown. Great job!")
	if err := cmd.Run(); err != nil {
		s.logger.Info("focus session complete", "notify_error", err)
	}
}

// Noop discards all scheduling calls. Used when notifications are disabled.
type Noop struct{}

func (Noop) ScheduleCompletion(int) {}
func (Noop) CancelPending()         {}
func (Noop) Reschedule(int)         {}
