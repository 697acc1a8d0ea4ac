// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"sync"
)

// Challenge is a pending request for a secret. It resolves exactly once,
// either to a secret or to ErrUserCancelled.
type Challenge struct {
	prompt string
	result chan challengeResult
}

type challengeResult struct {
	secret string
	err    error
}

// Prompt returns the text to present to the user.
func (c *Challenge) Prompt() string {
	return c.prompt
}

// Wait blocks until the challenge is resolved or ctx is done.
func (c *Challenge) Wait(ctx context.Context) (string, error) {
	select {
	case res := <-c.result:
		return res.secret, res.err
	case <-ctx.Done():
		return "", ctx.Err()
	}
}

// CredentialChannel lets the engine pause for a secret without the session
// knowing engine internals. It holds at most one pending challenge.
type CredentialChannel struct {
	notify func(Event)

	mu      sync.Mutex
	pending *Challenge
}

// NewCredentialChannel returns an empty channel. notify, if not nil, receives
// EventCredentialRequired and EventCredentialResolved.
func NewCredentialChannel(notify func(Event)) *CredentialChannel {
	if notify == nil {
		notify = func(Event) {}
	}
	return &CredentialChannel{notify: notify}
}

// Raise creates the pending challenge. It fails with ErrChallengePending when
// another challenge has not been resolved yet.
func (c *CredentialChannel) Raise(prompt string) (*Challenge, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending != nil {
		return nil, ErrChallengePending
	}

	c.pending = &Challenge{prompt: prompt, result: make(chan challengeResult, 1)}
	c.notify(Event{Kind: EventCredentialRequired, State: AwaitingCredential, Prompt: prompt})
	return c.pending, nil
}

// Resolve satisfies the pending challenge with secret. An empty secret is
// rejected with ErrInvalidInput and the challenge stays pending.
func (c *CredentialChannel) Resolve(secret string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return ErrNoChallenge
	}
	if secret == "" {
		return ErrInvalidInput
	}

	c.finishLocked(challengeResult{secret: secret})
	return nil
}

// Cancel resolves the pending challenge to ErrUserCancelled.
func (c *CredentialChannel) Cancel() error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return ErrNoChallenge
	}

	c.finishLocked(challengeResult{err: ErrUserCancelled})
	return nil
}

// Pending returns the prompt of the pending challenge, if any.
func (c *CredentialChannel) Pending() (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.pending == nil {
		return "", false
	}
	return c.pending.prompt, true
}

func (c *CredentialChannel) finishLocked(res challengeResult) {
	prompt := c.pending.prompt
	c.pending.result <- res
	c.pending = nil
	c.notify(Event{Kind: EventCredentialResolved, Prompt: prompt, Err: res.err})
}
