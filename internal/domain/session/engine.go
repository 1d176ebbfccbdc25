package session

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"sync"
	"time"

	"github.com/perennial/grove/internal/clock"
	"github.com/perennial/grove/internal/domain/forest"
	"github.com/perennial/grove/internal/repository/repoerr"
)

// State is the engine's in-memory lifecycle state. It mirrors the persisted
// Status set plus idle, which has no record behind it.
type State string

const (
	StateIdle      State = "idle"
	StateActive    State = "active"
	StatePaused    State = "paused"
	StateCompleted State = "completed"
	StateAbandoned State = "abandoned"
)

// Engine drives a focus session from start through pause, resume, cancel,
// and completion. All commands are serialized behind a single mutex; at most
// one tick loop is alive per engine instance.
//
// Elapsed time is always floor(now - monotonicReference); every display
// value derives from it. Persistence on a transition must succeed before the
// in-memory state commits; per-tick persistence is best-effort.
type Engine struct {
	sessions Repository
	streaks  StreakRecorder
	tampers  TamperLogger
	notifier Notifier
	clock    clock.Clock
	logger   *slog.Logger

	mu          sync.Mutex
	state       State
	current     *Session
	lastReading clock.Reading
	lastWall    time.Time
	remaining   int
	stage       int
	stop        chan struct{}
	tickEvery   time.Duration
}

// Option configures an Engine.
type Option func(*Engine)

// WithTickInterval overrides the one-second tick cadence. Tests use a short
// interval; production never should.
func WithTickInterval(d time.Duration) Option {
	return func(e *Engine) {
		e.tickEvery = d
	}
}

// NewEngine creates an idle engine.
func NewEngine(
	sessions Repository,
	streaks StreakRecorder,
	tampers TamperLogger,
	notifier Notifier,
	clk clock.Clock,
	logger *slog.Logger,
	opts ...Option,
) *Engine {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	e := &Engine{
		sessions:  sessions,
		streaks:   streaks,
		tampers:   tampers,
		notifier:  notifier,
		clock:     clk,
		logger:    logger,
		state:     StateIdle,
		remaining: FocusDuration,
		stage:     1,
		tickEvery: time.Second,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// State returns the current lifecycle state.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.state
}

// RemainingSeconds returns the countdown value as of the last recompute.
func (e *Engine) RemainingSeconds() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.remaining
}

// CurrentStage returns the tree growth stage as of the last recompute.
func (e *Engine) CurrentStage() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.stage
}

// CurrentSession returns a copy of the session the engine is driving, or nil
// when idle.
func (e *Engine) CurrentSession() *Session {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.current == nil {
		return nil
	}
	copied := *e.current
	return &copied
}

// Start creates a new active session and begins ticking.
func (e *Engine) Start(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateIdle {
		return ErrSessionAlreadyActive
	}

	now := time.Now()
	ref := e.clock.Now()
	sess := New(now, ref)

	if err := e.sessions.Create(ctx, sess); err != nil {
		return fmt.Errorf("creating session: %w", err)
	}

	e.current = sess
	e.state = StateActive
	e.lastReading = ref
	e.lastWall = now
	e.remaining = FocusDuration
	e.stage = 1

	e.notifier.ScheduleCompletion(FocusDuration)
	e.startTicker()
	return nil
}

// Pause stops ticking and snapshots elapsed time.
func (e *Engine) Pause(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateActive {
		return ErrNoActiveSession
	}
	if _, err := e.findPersisted(ctx, StatusActive); err != nil {
		return err
	}

	elapsed := e.observe(ctx)

	updated := *e.current
	updated.Status = StatusPaused
	updated.ElapsedSeconds = elapsed
	updated.TreeStage = TreeStage(elapsed)
	if err := e.sessions.Update(ctx, &updated); err != nil {
		return fmt.Errorf("persisting pause: %w", err)
	}

	*e.current = updated
	e.state = StatePaused
	e.remaining = FocusDuration - elapsed
	e.stage = updated.TreeStage
	e.stopTicker()
	e.notifier.CancelPending()
	return nil
}

// Resume re-anchors the monotonic reference so the countdown continues from
// the paused elapsed value, and restarts ticking.
func (e *Engine) Resume(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StatePaused {
		return ErrSessionNotPaused
	}
	if _, err := e.findPersisted(ctx, StatusPaused); err != nil {
		return err
	}

	now := time.Now()
	cur := e.clock.Now()

	updated := *e.current
	updated.Status = StatusActive
	updated.MonotonicReference = cur - clock.Reading(updated.ElapsedSeconds)
	if err := e.sessions.Update(ctx, &updated); err != nil {
		return fmt.Errorf("persisting resume: %w", err)
	}

	*e.current = updated
	e.state = StateActive
	e.lastReading = cur
	e.lastWall = now
	e.notifier.Reschedule(FocusDuration - updated.ElapsedSeconds)
	e.startTicker()
	return nil
}

// Cancel abandons the running or paused session.
func (e *Engine) Cancel(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateActive && e.state != StatePaused {
		return ErrNoActiveSession
	}
	if _, err := e.findPersisted(ctx, StatusActive, StatusPaused); err != nil {
		return err
	}

	elapsed := e.current.ElapsedSeconds
	if e.state == StateActive {
		elapsed = e.observe(ctx)
	}
	end := time.Now()

	updated := *e.current
	updated.Status = StatusAbandoned
	updated.EndTime = &end
	updated.ElapsedSeconds = elapsed
	updated.TreeStage = TreeStage(elapsed)
	if err := e.sessions.Update(ctx, &updated); err != nil {
		return fmt.Errorf("persisting cancel: %w", err)
	}

	*e.current = updated
	e.state = StateAbandoned
	e.stopTicker()
	e.notifier.CancelPending()
	return nil
}

// Reset clears the in-memory countdown after a terminal session. The
// terminal record itself is never mutated.
func (e *Engine) Reset() error {
	e.mu.Lock()
	defer e.mu.Unlock()

	switch e.state {
	case StateActive, StatePaused:
		return ErrSessionAlreadyActive
	case StateIdle:
		return nil
	}

	e.current = nil
	e.state = StateIdle
	e.remaining = FocusDuration
	e.stage = 1
	return nil
}

// HandleBackground stops the tick loop without a logical pause; elapsed time
// keeps accruing against the monotonic reference.
func (e *Engine) HandleBackground() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTicker()
}

// HandleForeground runs the single-step catch-up recompute. A session that
// finished while backgrounded completes here exactly as a live tick would.
func (e *Engine) HandleForeground(ctx context.Context) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateActive {
		return nil
	}
	e.recompute(ctx)
	if e.state == StateActive {
		e.startTicker()
	}
	return nil
}

// HandleInterruption drives an explicit pause for phone-call-style
// preemptions while active.
func (e *Engine) HandleInterruption(ctx context.Context) error {
	if e.State() != StateActive {
		return nil
	}
	return e.Pause(ctx)
}

// Close stops the tick loop. It does not transition the session.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.stopTicker()
}

func (e *Engine) tick(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.state != StateActive || e.current == nil {
		return
	}
	e.recompute(ctx)
}

// recompute is the shared body of a live tick and a foreground catch-up.
// Caller holds the mutex and has verified the engine is active.
func (e *Engine) recompute(ctx context.Context) {
	elapsed := e.observe(ctx)

	e.remaining = FocusDuration - elapsed
	e.stage = TreeStage(elapsed)
	e.current.ElapsedSeconds = elapsed
	e.current.TreeStage = e.stage

	// Best-effort durability; the next tick retries.
	if err := e.sessions.Update(ctx, e.current); err != nil {
		e.logger.Warn("tick persist failed", "session", e.current.ID, "error", err)
	}

	if e.remaining == 0 {
		if err := e.complete(ctx); err != nil {
			e.logger.Error("completion failed, will retry", "session", e.current.ID, "error", err)
		}
	}
}

// observe takes a fresh monotonic reading, runs tamper detection against the
// previous one, and returns the clamped elapsed seconds for the current
// session. Caller holds the mutex.
func (e *Engine) observe(ctx context.Context) int {
	cur := e.clock.Now()
	now := time.Now()

	expected := now.Sub(e.lastWall).Seconds()
	if mag, hit := clock.DetectJump(e.lastReading, cur, expected); hit {
		e.logger.Warn("time jump detected", "magnitude_seconds", mag)
		if err := e.tampers.LogTimeJump(ctx, mag); err != nil {
			e.logger.Warn("failed to log time jump", "error", err)
		}
	}
	e.lastReading = cur
	e.lastWall = now

	elapsed := int(cur - e.current.MonotonicReference)
	if elapsed < 0 {
		elapsed = 0
	}
	if elapsed > FocusDuration {
		elapsed = FocusDuration
	}
	return elapsed
}

// complete applies the completion transition: the session record and its
// tree are persisted in one atomic step, then the streak rule consumes the
// session's start day. On any failure the in-memory machine stays active and
// the next tick retries; the tree insert and the streak rule are both
// idempotent per session, so retries cannot double-apply effects. Caller
// holds the mutex.
func (e *Engine) complete(ctx context.Context) error {
	sess := e.current
	prev := *sess

	end := time.Now()
	sess.Status = StatusCompleted
	sess.EndTime = &end
	sess.ElapsedSeconds = FocusDuration
	sess.TreeStage = 5

	tree := forest.NewTree(sess.ID, sess.StartTime, end, sess.StartDay)
	if err := e.sessions.Complete(ctx, sess, tree); err != nil {
		*sess = prev
		return fmt.Errorf("persisting completion: %w", err)
	}
	if err := e.streaks.RecordCompletion(ctx, sess.StartDay); err != nil {
		*sess = prev
		return fmt.Errorf("updating streak: %w", err)
	}

	e.state = StateCompleted
	e.remaining = 0
	e.stage = 5
	e.stopTicker()
	return nil
}

func (e *Engine) findPersisted(ctx context.Context, statuses ...Status) (*Session, error) {
	sess, err := e.sessions.FindByStatus(ctx, statuses...)
	if err != nil {
		if errors.Is(err, repoerr.ErrNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("loading session: %w", err)
	}
	return sess, nil
}

func (e *Engine) startTicker() {
	if e.stop != nil {
		return
	}
	stop := make(chan struct{})
	e.stop = stop
	go func() {
		ticker := time.NewTicker(e.tickEvery)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				e.tick(context.Background())
			case <-stop:
				return
			}
		}
	}()
}

func (e *Engine) stopTicker() {
	if e.stop != nil {
		close(e.stop)
		e.stop = nil
	}
}
