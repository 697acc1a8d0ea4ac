// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"

	"github.com/MKhiriev/go-replica-sync/internal/session"
)

// Frontend drives sessions on behalf of a user and blocks until the user is
// done.
type Frontend interface {
	Run(ctx context.Context) error
}

// SessionFactory returns a new idle session reporting to observer.
type SessionFactory func(observer session.Observer) *session.Session

// Prompter asks the user for input outside a full-screen UI.
type Prompter interface {
	// ReadSecret shows prompt and reads a secret without echoing it.
	ReadSecret(prompt string) (string, error)

	// Confirm asks a yes/no question. The default answer is no.
	Confirm(question string) (bool, error)
}
