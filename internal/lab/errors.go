package lab

import "errors"

var (
	// ErrEmptySelection is returned when an experiment is started with nothing staged
	ErrEmptySelection = errors.New("selection is empty")
	// ErrExperimentRunning is returned when a session already has a pending experiment
	ErrExperimentRunning = errors.New("experiment already in progress")
	// ErrStaleExperiment is returned when the selection changed before the result was applied
	ErrStaleExperiment = errors.New("selection changed during experiment")
	// ErrSessionClosed is returned when a session is evicted or closed with an experiment pending
	ErrSessionClosed = errors.New("session closed")
	// ErrSessionNotFound is returned by lookups that do not create sessions
	ErrSessionNotFound = errors.New("session not found")
)
