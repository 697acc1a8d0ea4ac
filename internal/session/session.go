// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package session

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/MKhiriev/go-replica-sync/internal/engine"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/models"
)

// Session orchestrates one synchronization run at a time for a controller
// instance: profile editing, connecting (with credential challenges),
// reconciling, reviewing and syncing.
//
// Every exported method is safe for concurrent use. Methods that start engine
// work return as soon as the work is scheduled; the outcome is reported to
// the Observer.
type Session struct {
	id          string
	engine      engine.Engine
	profiles    ProfileStore
	log         *logger.Logger
	events      *eventQueue
	credentials *CredentialChannel
	table       *TableModel

	mu        sync.Mutex
	state     State
	status    string
	profile   *models.Profile
	handle    engine.Handle
	hasHandle bool
	failure   error
	report    *models.SyncReport
	attempt   uint64
	cancel    context.CancelFunc
	closed    bool

	wg sync.WaitGroup
}

// New constructs an idle Session. observer may be nil.
func New(eng engine.Engine, profiles ProfileStore, observer Observer, log *logger.Logger) *Session {
	id := uuid.NewString()
	s := &Session{
		id:       id,
		engine:   eng,
		profiles: profiles,
		log:      log.WithSession(id),
		events:   newEventQueue(observer),
		state:    Idle,
		status:   "Choose a profile",
	}
	s.credentials = NewCredentialChannel(s.events.push)
	s.table = newTableModel(s.itemToggled)

	return s
}

// ID returns the unique id of the session, used to correlate log entries.
func (s *Session) ID() string {
	return s.id
}

// State returns the current state.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// Status returns a one-line human-readable description of the current step.
func (s *Session) Status() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.status
}

// Profile returns the active profile, if a session attempt is in progress.
func (s *Session) Profile() (models.Profile, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.profile == nil {
		return models.Profile{}, false
	}
	return *s.profile, true
}

// Failure returns the reason of the last transition to Failed, or nil.
func (s *Session) Failure() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.failure
}

// Report returns the report of the last sync step, or nil.
func (s *Session) Report() *models.SyncReport {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.report
}

// Table returns the item table. The pointer is stable for the lifetime of
// the session; its contents follow the session.
func (s *Session) Table() *TableModel {
	return s.table
}

// PendingPrompt returns the prompt of the pending credential challenge.
func (s *Session) PendingPrompt() (string, bool) {
	return s.credentials.Pending()
}

// ListProfiles returns the stored profiles.
func (s *Session) ListProfiles(ctx context.Context) ([]models.Profile, error) {
	profiles, err := s.profiles.ListProfiles(ctx)
	if err != nil {
		return nil, fmt.Errorf("list profiles: %w", err)
	}
	return profiles, nil
}

// DeleteProfile removes a stored profile. Only allowed while idle.
func (s *Session) DeleteProfile(ctx context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked("delete profile", Idle); err != nil {
		return err
	}
	if err := s.profiles.Delete(ctx, name); err != nil {
		return fmt.Errorf("delete profile %q: %w", name, err)
	}
	return nil
}

// CreateProfile opens the profile editor: Idle → ChoosingProfile.
func (s *Session) CreateProfile() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transitionLocked("create profile", ChoosingProfile); err != nil {
		return err
	}
	s.status = "New profile"
	return nil
}

// SaveProfile validates and persists p, then returns to Idle. An invalid
// profile or a store failure leaves the editor open.
func (s *Session) SaveProfile(ctx context.Context, p models.Profile) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked("save profile", ChoosingProfile); err != nil {
		return err
	}
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}
	if err := s.profiles.Save(ctx, p); err != nil {
		s.log.Err(err).Str("func", "Session.SaveProfile").Str("profile", p.Name).Msg("failed to save profile")
		return fmt.Errorf("save profile %q: %w", p.Name, err)
	}

	s.log.Info().Str("profile", p.Name).Msg("profile saved")
	s.status = fmt.Sprintf("Profile %q saved", p.Name)
	return s.transitionLocked("save profile", Idle)
}

// CancelProfileEdit discards the profile being edited: ChoosingProfile → Idle.
func (s *Session) CancelProfileEdit() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transitionLocked("cancel profile edit", Idle); err != nil {
		return err
	}
	s.status = "Choose a profile"
	return nil
}

// OpenProfileByName loads the named profile and opens it.
func (s *Session) OpenProfileByName(ctx context.Context, name string) error {
	p, err := s.profiles.Load(ctx, name)
	if err != nil {
		return fmt.Errorf("load profile %q: %w", name, err)
	}
	return s.OpenProfile(ctx, p)
}

// OpenProfile starts connecting to the roots of p: Idle → Connecting. The
// background work outlives the call and is bound to ctx.
func (s *Session) OpenProfile(ctx context.Context, p models.Profile) error {
	if err := p.Validate(); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidInput, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transitionLocked("open profile", Connecting); err != nil {
		return err
	}

	profile := p
	s.profile = &profile
	s.failure = nil
	s.report = nil
	s.status = fmt.Sprintf("Connecting to %s and %s", p.RootA, p.RootB)
	s.log.Info().Str("profile", p.Name).Msg("opening profile")

	workCtx, attempt := s.beginWorkLocked(ctx)
	s.wg.Add(1)
	go s.runConnect(workCtx, attempt, profile)

	return nil
}

// ResolveCredential answers the pending challenge: AwaitingCredential →
// Connecting. An empty secret returns ErrInvalidInput and the challenge stays
// pending.
func (s *Session) ResolveCredential(secret string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked("resolve credential", AwaitingCredential); err != nil {
		return err
	}
	if err := s.credentials.Resolve(secret); err != nil {
		return err
	}

	s.status = "Authenticating…"
	return s.transitionLocked("resolve credential", Connecting)
}

// CancelCredential dismisses the pending challenge and aborts the whole
// connection attempt: AwaitingCredential → Failed(ErrUserCancelled).
func (s *Session) CancelCredential() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.requireLocked("cancel credential", AwaitingCredential); err != nil {
		return err
	}
	if err := s.credentials.Cancel(); err != nil {
		return err
	}

	s.log.Info().Msg("credential challenge cancelled by user")
	s.failLocked(ErrUserCancelled, false)
	return nil
}

// Sync applies the reviewed items: Reviewing → Syncing → Done | Failed.
// Ignored items are skipped. A started sync cannot be cancelled.
func (s *Session) Sync(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.transitionLocked("sync", Syncing); err != nil {
		return err
	}

	s.table.setEditable(false)
	items := s.table.list()
	s.status = "Synchronizing…"

	workCtx, attempt := s.beginWorkLocked(context.WithoutCancel(ctx))
	s.wg.Add(1)
	go s.runSync(workCtx, attempt, s.handle, items)

	return nil
}

// Restart leaves a finished attempt (Done or Failed → Idle) or re-runs the
// reconciliation of the current roots (Reviewing → Reconciling → Reviewing).
func (s *Session) Restart(ctx context.Context) error {
	s.mu.Lock()

	switch s.state {
	case Done, Failed:
		h, hasHandle := s.resetLocked()
		err := s.transitionLocked("restart", Idle)
		s.status = "Choose a profile"
		s.mu.Unlock()
		s.closeHandle(h, hasHandle)
		return err

	case Reviewing:
		if err := s.transitionLocked("restart", Reconciling); err != nil {
			s.mu.Unlock()
			return err
		}
		s.table.clear()
		s.status = "Looking for changes"

		workCtx, attempt := s.beginWorkLocked(ctx)
		s.wg.Add(1)
		go s.runReconcile(workCtx, attempt, s.handle)
		s.mu.Unlock()
		return nil

	default:
		err := s.rejectLocked("restart")
		s.mu.Unlock()
		return err
	}
}

// Close tears the session down: in-flight connect or reconcile work is
// cancelled, a running sync is waited for, the connection is closed and the
// observer stops receiving events. Close is idempotent.
func (s *Session) Close() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	s.closed = true
	if s.state != Syncing && s.cancel != nil {
		s.cancel()
	}
	_ = s.credentials.Cancel()
	s.mu.Unlock()

	s.wg.Wait()

	s.mu.Lock()
	s.attempt++
	h, hasHandle := s.resetLocked()
	s.mu.Unlock()

	s.closeHandle(h, hasHandle)
	s.events.close()
	return nil
}

// beginWorkLocked starts a new unit of background work. Completion signals
// carrying an older attempt number are dropped.
func (s *Session) beginWorkLocked(ctx context.Context) (context.Context, uint64) {
	if s.cancel != nil {
		s.cancel()
	}
	s.attempt++
	workCtx, cancel := context.WithCancel(ctx)
	s.cancel = cancel
	return workCtx, s.attempt
}

// currentLocked reports whether a completion signal of attempt may still
// change the session.
func (s *Session) currentLocked(attempt uint64) bool {
	return !s.closed && s.attempt == attempt
}

func (s *Session) transitionLocked(op string, next State) error {
	if s.closed {
		return ErrSessionClosed
	}
	if !s.state.canTransitionTo(next) {
		return s.rejectLocked(op)
	}

	prev := s.state
	s.state = next
	s.log.Debug().Str("from", prev.String()).Str("to", next.String()).Str("op", op).Msg("session transition")
	s.events.push(Event{Kind: EventStateChanged, State: next, Err: s.failure})
	return nil
}

func (s *Session) requireLocked(op string, want State) error {
	if s.closed {
		return ErrSessionClosed
	}
	if s.state != want {
		return s.rejectLocked(op)
	}
	return nil
}

func (s *Session) rejectLocked(op string) error {
	if s.closed {
		return ErrSessionClosed
	}
	err := &TransitionError{Op: op, From: s.state}
	s.log.Error().Err(err).Str("func", "Session").Msg("protocol violation")
	return err
}

// failLocked moves the session to Failed with reason. The item list is
// dropped unless keepItems is set, in which case it stays visible but
// read-only.
func (s *Session) failLocked(reason error, keepItems bool) {
	if keepItems {
		s.table.setEditable(false)
	} else {
		s.table.clear()
	}
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}

	s.failure = reason
	s.status = "Failed: " + reason.Error()
	s.log.Warn().Err(reason).Msg("session failed")
	if err := s.transitionLocked("fail", Failed); err != nil {
		s.log.Err(err).Str("func", "Session.failLocked").Msg("cannot enter failed state")
	}
}

// resetLocked forgets the current attempt and returns the handle to close.
func (s *Session) resetLocked() (engine.Handle, bool) {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
	h, hasHandle := s.handle, s.hasHandle
	s.handle, s.hasHandle = "", false
	s.profile = nil
	s.failure = nil
	s.report = nil
	s.table.clear()
	return h, hasHandle
}

func (s *Session) closeHandle(h engine.Handle, ok bool) {
	if !ok {
		return
	}
	if err := s.engine.Close(h); err != nil && !errors.Is(err, engine.ErrUnknownHandle) {
		s.log.Err(err).Str("func", "Session.closeHandle").Msg("failed to close connection")
	}
}

func (s *Session) itemToggled(row int, item *models.ReconItem) {
	s.log.Debug().Int("row", row).Str("path", item.Path).Bool("ignored", item.Ignored).Msg("item disposition changed")
	s.events.push(Event{Kind: EventItemChanged, State: Reviewing, Row: row})
}
