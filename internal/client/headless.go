// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package client

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/session"
	"github.com/MKhiriev/go-replica-sync/models"
)

// HeadlessOptions configures a Headless run.
type HeadlessOptions struct {
	// Profile is the name of the stored profile to synchronize.
	Profile string
	// AssumeYes propagates the reviewed items without asking.
	AssumeYes bool
	// Out receives the item list, progress and the final report.
	Out io.Writer
	// Prompter reads passwords and the confirmation.
	Prompter Prompter
}

// Headless runs one session for a stored profile without a full-screen UI.
// Conflicts are always skipped; there is no per-item review.
type Headless struct {
	newSession SessionFactory
	opts       HeadlessOptions
	logger     *logger.Logger

	syncing bool
}

// NewHeadless returns a frontend synchronizing opts.Profile once.
func NewHeadless(newSession SessionFactory, opts HeadlessOptions, logger *logger.Logger) *Headless {
	if opts.Out == nil {
		opts.Out = io.Discard
	}
	return &Headless{newSession: newSession, opts: opts, logger: logger}
}

// Run connects, reconciles and, once confirmed, propagates. It returns nil
// when everything was applied or the user declined, the session failure
// otherwise.
func (h *Headless) Run(ctx context.Context) error {
	events := make(chan session.Event, 64)
	done := make(chan struct{})

	sess := h.newSession(session.ObserverFunc(func(ev session.Event) {
		select {
		case events <- ev:
		case <-done:
		}
	}))
	defer sess.Close()
	defer close(done)

	if err := sess.OpenProfileByName(ctx, h.opts.Profile); err != nil {
		return err
	}
	fmt.Fprintf(h.opts.Out, "%s\n", sess.Status())

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case ev := <-events:
			finished, err := h.handle(ctx, sess, ev)
			if finished {
				return err
			}
		}
	}
}

func (h *Headless) handle(ctx context.Context, sess *session.Session, ev session.Event) (bool, error) {
	switch ev.Kind {
	case session.EventCredentialRequired:
		h.answer(sess, ev.Prompt)

	case session.EventListInstalled:
		return h.review(ctx, sess)

	case session.EventSyncProgress:
		fmt.Fprintf(h.opts.Out, "[%d/%d] %s\n", ev.Progress.Done, ev.Progress.Total, ev.Progress.Path)

	case session.EventSyncDone:
		h.printReport(ev.Report)
		return true, ev.Err

	case session.EventStateChanged:
		// a failed sync is reported by EventSyncDone together with its report
		if ev.State == session.Failed && !h.syncing {
			return true, ev.Err
		}
	}
	return false, nil
}

// answer resolves the pending challenge. An empty answer is asked again; a
// read error, EOF included, cancels the challenge, which fails the session.
func (h *Headless) answer(sess *session.Session, prompt string) {
	for {
		secret, err := h.opts.Prompter.ReadSecret(prompt)
		if err != nil {
			h.logger.Warn().Err(err).Str("func", "Headless.answer").Msg("credential not provided")
			if cErr := sess.CancelCredential(); cErr != nil {
				h.logger.Err(cErr).Str("func", "Headless.answer").Msg("failed to cancel credential challenge")
			}
			return
		}

		err = sess.ResolveCredential(secret)
		if errors.Is(err, session.ErrInvalidInput) {
			fmt.Fprintln(h.opts.Out, "The password must not be empty")
			continue
		}
		if err != nil {
			h.logger.Err(err).Str("func", "Headless.answer").Msg("failed to resolve credential challenge")
		}
		return
	}
}

func (h *Headless) review(ctx context.Context, sess *session.Session) (bool, error) {
	rows := sess.Table().Rows()
	if len(rows) == 0 {
		fmt.Fprintln(h.opts.Out, "Everything is in sync")
		return true, nil
	}

	conflicts := 0
	for _, row := range rows {
		fmt.Fprintln(h.opts.Out, row.Summary)
		if row.Action == models.Conflict {
			conflicts++
		}
	}
	if conflicts > 0 {
		fmt.Fprintf(h.opts.Out, "%d conflicts will be skipped\n", conflicts)
	}

	if !h.opts.AssumeYes {
		ok, err := h.opts.Prompter.Confirm(fmt.Sprintf("Propagate %d changes?", len(rows)-conflicts))
		if err != nil {
			return true, fmt.Errorf("read confirmation: %w", err)
		}
		if !ok {
			fmt.Fprintln(h.opts.Out, "Nothing was changed")
			return true, nil
		}
	}

	h.syncing = true
	if err := sess.Sync(ctx); err != nil {
		return true, err
	}
	return false, nil
}

func (h *Headless) printReport(report *models.SyncReport) {
	if report == nil {
		return
	}

	fmt.Fprintf(h.opts.Out, "Applied: %d, skipped: %d, failed: %d\n",
		len(report.Applied), len(report.Skipped), len(report.Failed))
	for _, f := range report.Failed {
		fmt.Fprintf(h.opts.Out, "  %s: %s\n", f.Path, f.Reason)
	}
}
