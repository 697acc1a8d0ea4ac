package engine

import (
	"errors"
	"fmt"
)

var (
	// ErrConnection classifies every failure to reach or talk to a replica.
	// Match it with errors.Is on errors returned by Engine methods.
	ErrConnection = errors.New("connection error")

	// ErrUnknownHandle is returned for a Handle that was never issued or has
	// already been closed.
	ErrUnknownHandle = errors.New("unknown connection handle")

	// ErrUnknownCredentialRequest is returned by ResumeWithCredential for a
	// request that was aborted, already resumed or never issued.
	ErrUnknownCredentialRequest = errors.New("unknown credential request")

	// ErrTooManyAttempts is wrapped into the ConnectionError returned after
	// the last rejected secret.
	ErrTooManyAttempts = errors.New("too many authentication attempts")
)

// ConnectionError reports a network-level failure on one root.
type ConnectionError struct {
	Root string
	Err  error
}

func (e *ConnectionError) Error() string {
	return fmt.Sprintf("connection to %s failed: %v", e.Root, e.Err)
}

func (e *ConnectionError) Unwrap() error {
	return e.Err
}

// Is makes every *ConnectionError match ErrConnection.
func (e *ConnectionError) Is(target error) bool {
	return target == ErrConnection
}
