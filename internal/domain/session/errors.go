package session

import "errors"

var (
	// ErrSessionAlreadyActive indicates a start while a session is running or paused.
	ErrSessionAlreadyActive = errors.New("session already active")
	// ErrNoActiveSession indicates a pause or cancel with nothing to act on.
	ErrNoActiveSession = errors.New("no active session")
	// ErrSessionNotPaused indicates a resume while not paused.
	ErrSessionNotPaused = errors.New("session not paused")
	// ErrSessionNotFound indicates the expected persisted record is missing
	// (store and engine fell out of sync). Recoverable.
	ErrSessionNotFound = errors.New("session not found")
	// ErrInvalidStatus indicates a stored status value outside the closed set.
	ErrInvalidStatus = errors.New("invalid session status")
)
