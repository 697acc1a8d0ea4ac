package session

import (
	"context"
	"errors"
	"fmt"

	"github.com/MKhiriev/go-replica-sync/internal/engine"
	"github.com/MKhiriev/go-replica-sync/models"
)

// runConnect is the background unit of work started by OpenProfile. It
// drives Connecting → (AwaitingCredential → Connecting)* → Reconciling →
// Reviewing, or ends in Failed.
func (s *Session) runConnect(ctx context.Context, attempt uint64, profile models.Profile) {
	defer s.wg.Done()

	res, err := s.engine.Connect(ctx, profile)
	for err == nil && res.NeedsCredential() {
		var stop bool
		res, err, stop = s.awaitCredential(ctx, attempt, *res.Credential)
		if stop {
			return
		}
	}
	if err != nil {
		s.failAttempt(attempt, connectionFailure(err))
		return
	}

	if !s.connected(attempt, res.Handle) {
		return
	}
	s.reconcile(ctx, attempt, res.Handle)
}

// awaitCredential raises a challenge for req, waits for the user and resumes
// the engine with the answer. stop is set when the attempt ended while
// waiting; the session state has already been settled in that case.
func (s *Session) awaitCredential(ctx context.Context, attempt uint64, req engine.CredentialRequest) (engine.ConnectResult, error, bool) {
	s.mu.Lock()
	if !s.currentLocked(attempt) || s.state != Connecting {
		s.mu.Unlock()
		s.engine.Abort(req)
		return engine.ConnectResult{}, nil, true
	}
	if err := s.transitionLocked("await credential", AwaitingCredential); err != nil {
		s.mu.Unlock()
		s.engine.Abort(req)
		return engine.ConnectResult{}, nil, true
	}
	challenge, err := s.credentials.Raise(req.Prompt)
	if err != nil {
		s.failLocked(err, false)
		s.mu.Unlock()
		s.engine.Abort(req)
		return engine.ConnectResult{}, nil, true
	}
	s.status = req.Prompt
	s.log.Info().Str("prompt", req.Prompt).Msg("credential required")
	s.mu.Unlock()

	secret, err := challenge.Wait(ctx)
	if err != nil {
		s.engine.Abort(req)

		s.mu.Lock()
		if s.currentLocked(attempt) && s.state == AwaitingCredential {
			_ = s.credentials.Cancel()
			s.failLocked(err, false)
		}
		s.mu.Unlock()
		return engine.ConnectResult{}, nil, true
	}

	res, err := s.engine.ResumeWithCredential(ctx, req, secret)
	return res, err, false
}

// connected records the established handle. A handle arriving for a stale
// attempt is closed right away.
func (s *Session) connected(attempt uint64, h engine.Handle) bool {
	s.mu.Lock()
	if !s.currentLocked(attempt) || s.state != Connecting {
		s.mu.Unlock()
		s.closeHandle(h, true)
		return false
	}
	defer s.mu.Unlock()

	s.handle, s.hasHandle = h, true
	s.status = "Looking for changes"
	s.log.Info().Msg("connected")
	return s.transitionLocked("connected", Reconciling) == nil
}

func (s *Session) runReconcile(ctx context.Context, attempt uint64, h engine.Handle) {
	defer s.wg.Done()
	s.reconcile(ctx, attempt, h)
}

// reconcile asks the engine for the item list and installs it wholesale.
func (s *Session) reconcile(ctx context.Context, attempt uint64, h engine.Handle) {
	items, err := s.engine.Reconcile(ctx, h)
	if err != nil {
		s.failAttempt(attempt, err)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(attempt) || s.state != Reconciling {
		return
	}

	s.table.install(items, true)
	if len(items) == 0 {
		s.status = "Everything is in sync"
	} else {
		s.status = fmt.Sprintf("%d items to review", len(items))
	}
	s.log.Info().Int("items", len(items)).Msg("reconciliation finished")

	if err := s.transitionLocked("reconciled", Reviewing); err != nil {
		return
	}
	s.events.push(Event{Kind: EventListInstalled, State: Reviewing})
}

// runSync applies the reviewed items. It is never cancelled by the session.
func (s *Session) runSync(ctx context.Context, attempt uint64, h engine.Handle, items []*models.ReconItem) {
	defer s.wg.Done()

	progress := func(p models.SyncProgress) {
		s.mu.Lock()
		if s.currentLocked(attempt) {
			s.status = fmt.Sprintf("Synchronizing %d/%d: %s", p.Done, p.Total, p.Path)
		}
		s.mu.Unlock()
		s.events.push(Event{Kind: EventSyncProgress, State: Syncing, Progress: p})
	}

	report, err := s.engine.ApplySync(ctx, h, items, progress)

	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(attempt) || s.state != Syncing {
		return
	}

	s.report = &report
	switch {
	case err != nil:
		s.failLocked(&SyncError{Failed: report.Failed, Err: err}, true)
	case len(report.Failed) > 0:
		s.failLocked(&SyncError{Failed: report.Failed}, true)
	default:
		if s.cancel != nil {
			s.cancel()
			s.cancel = nil
		}
		s.status = fmt.Sprintf("Synchronization complete: %d applied, %d skipped",
			len(report.Applied), len(report.Skipped))
		s.log.Info().Int("applied", len(report.Applied)).Int("skipped", len(report.Skipped)).Msg("synchronization complete")
		if err := s.transitionLocked("synced", Done); err != nil {
			return
		}
	}

	s.events.push(Event{Kind: EventSyncDone, State: s.state, Report: &report, Err: s.failure})
}

// failAttempt moves the session to Failed unless the attempt is stale or the
// session already settled.
func (s *Session) failAttempt(attempt uint64, reason error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if !s.currentLocked(attempt) || s.state.Terminal() {
		return
	}
	if s.state == AwaitingCredential {
		_ = s.credentials.Cancel()
	}
	s.failLocked(reason, false)
}

// connectionFailure classifies every connect-phase failure as ErrConnection.
func connectionFailure(err error) error {
	if errors.Is(err, ErrConnection) || errors.Is(err, context.Canceled) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrConnection, err)
}
