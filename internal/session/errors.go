package session

import (
	"errors"
	"fmt"
	"strings"

	"github.com/MKhiriev/go-replica-sync/internal/engine"
	"github.com/MKhiriev/go-replica-sync/models"
)

var (
	// ErrInvalidInput is returned for user input that can be corrected and
	// retried, such as an empty secret or an incomplete profile.
	ErrInvalidInput = errors.New("invalid input")

	// ErrIndexOutOfRange is returned by the table model for a row outside
	// [0, RowCount()). Rows are never clamped.
	ErrIndexOutOfRange = errors.New("row index out of range")

	// ErrNotEditable is returned by ToggleIgnore outside the Reviewing state.
	ErrNotEditable = errors.New("items can only be changed while reviewing")

	// ErrConnection is the engine's connection error class, re-exported so
	// presentation code only depends on this package.
	ErrConnection = engine.ErrConnection

	// ErrUserCancelled is the failure reason after the user dismissed a
	// credential challenge.
	ErrUserCancelled = errors.New("cancelled by user")

	// ErrSync classifies failures of the sync step; see SyncError.
	ErrSync = errors.New("synchronization failed")

	// ErrNoChallenge is returned when resolving or cancelling with no
	// challenge pending.
	ErrNoChallenge = errors.New("no credential challenge is pending")

	// ErrSessionClosed is returned by every operation after Close.
	ErrSessionClosed = errors.New("session closed")
)

// Protocol violations. They indicate a bug in the caller, not a condition a
// user can recover from.
var (
	// ErrChallengePending is returned when a second challenge is raised
	// while one is still pending.
	ErrChallengePending = errors.New("a credential challenge is already pending")

	// ErrInvalidTransition is returned when an operation is requested from a
	// state that does not allow it.
	ErrInvalidTransition = errors.New("invalid session transition")
)

// TransitionError describes a rejected operation.
type TransitionError struct {
	Op   string
	From State
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%v: %s is not allowed in state %s", ErrInvalidTransition, e.Op, e.From)
}

func (e *TransitionError) Is(target error) bool {
	return target == ErrInvalidTransition
}

// SyncError is the failure reason of a sync step. Either Err is set (the
// engine could not continue) or Failed lists the items that were not
// propagated. Items applied before the failure stay applied.
type SyncError struct {
	Failed []models.ItemFailure
	Err    error
}

func (e *SyncError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%v: %v", ErrSync, e.Err)
	}

	paths := make([]string, 0, len(e.Failed))
	for _, f := range e.Failed {
		paths = append(paths, f.Path)
	}
	return fmt.Sprintf("%v: %d item(s) failed: %s", ErrSync, len(e.Failed), strings.Join(paths, ", "))
}

func (e *SyncError) Unwrap() error {
	return e.Err
}

func (e *SyncError) Is(target error) bool {
	return target == ErrSync
}

func indexError(row, count int) error {
	return fmt.Errorf("%w: row %d, %d rows", ErrIndexOutOfRange, row, count)
}
