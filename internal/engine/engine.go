// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package engine

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"sync"

	"github.com/MKhiriev/go-replica-sync/internal/adapter"
	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/replica"
	"github.com/MKhiriev/go-replica-sync/internal/store"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
	"github.com/MKhiriev/go-replica-sync/models"
)

type engine struct {
	opener      Opener
	archive     store.ArchiveRepository
	maxAttempts int
	ids         *utils.UUIDGenerator
	logger      *logger.Logger

	mu      sync.Mutex
	pending map[string]*pendingConnect
	conns   map[Handle]*connection
}

// pendingConnect is a connection suspended on the password of roots[next].
type pendingConnect struct {
	profile  models.Profile
	replicas [2]replica.Replica
	next     int
	remote   adapter.ReplicaAdapter
	attempt  int
}

func (pc *pendingConnect) close() {
	if pc.remote != nil {
		_ = pc.remote.Close()
	}
	for _, r := range pc.replicas {
		if r != nil {
			_ = r.Close()
		}
	}
}

// connection is an established pair of replicas.
type connection struct {
	profile  models.Profile
	replicas [2]replica.Replica

	// mu serializes Reconcile and ApplySync on one handle.
	mu   sync.Mutex
	plan Plan
}

// New returns the Engine used by the client. Remote roots get at most
// appCfg.MaxAuthAttempts passwords each.
func New(opener Opener, archive store.ArchiveRepository, appCfg config.ClientApp, logger *logger.Logger) Engine {
	maxAttempts := appCfg.MaxAuthAttempts
	if maxAttempts < 1 {
		maxAttempts = 1
	}

	return &engine{
		opener:      opener,
		archive:     archive,
		maxAttempts: maxAttempts,
		ids:         utils.NewUUIDGenerator(),
		logger:      logger,
		pending:     make(map[string]*pendingConnect),
		conns:       make(map[Handle]*connection),
	}
}

func (e *engine) Connect(ctx context.Context, profile models.Profile) (ConnectResult, error) {
	if err := profile.Validate(); err != nil {
		return ConnectResult{}, err
	}

	e.logger.Info().Str("profile", profile.Name).Msg("connecting to replicas")
	return e.advance(ctx, &pendingConnect{profile: profile})
}

func (e *engine) ResumeWithCredential(ctx context.Context, req CredentialRequest, secret string) (ConnectResult, error) {
	pc, ok := e.takePending(req.Token)
	if !ok {
		return ConnectResult{}, ErrUnknownCredentialRequest
	}

	root := pc.profile.Roots()[pc.next]
	err := pc.remote.Login(ctx, secret)
	switch {
	case errors.Is(err, adapter.ErrUnauthorized):
		if pc.attempt >= e.maxAttempts {
			e.logger.Warn().Str("root", root).Int("attempts", pc.attempt).Msg("giving up after rejected passwords")
			pc.close()
			return ConnectResult{}, &ConnectionError{Root: root, Err: fmt.Errorf("%w: %w", ErrTooManyAttempts, err)}
		}
		pc.attempt++
		return e.suspend(pc, root), nil

	case err != nil:
		pc.close()
		return ConnectResult{}, &ConnectionError{Root: root, Err: err}
	}

	pc.replicas[pc.next] = pc.remote
	pc.remote = nil
	pc.next++
	return e.advance(ctx, pc)
}

func (e *engine) Abort(req CredentialRequest) {
	if pc, ok := e.takePending(req.Token); ok {
		e.logger.Debug().Str("profile", pc.profile.Name).Msg("connection aborted")
		pc.close()
	}
}

func (e *engine) Close(h Handle) error {
	e.mu.Lock()
	conn, ok := e.conns[h]
	delete(e.conns, h)
	e.mu.Unlock()

	if !ok {
		return ErrUnknownHandle
	}

	var errs []error
	for _, r := range conn.replicas {
		errs = append(errs, r.Close())
	}
	return errors.Join(errs...)
}

// advance opens the remaining roots in order until one needs a password.
func (e *engine) advance(ctx context.Context, pc *pendingConnect) (ConnectResult, error) {
	roots := pc.profile.Roots()
	for ; pc.next < len(roots); pc.next++ {
		root := roots[pc.next]

		if !IsRemote(root) {
			r, err := e.opener.OpenLocal(root)
			if err != nil {
				pc.close()
				return ConnectResult{}, &ConnectionError{Root: root, Err: err}
			}
			pc.replicas[pc.next] = r
			continue
		}

		remote, err := e.opener.OpenRemote(root)
		if err != nil {
			pc.close()
			return ConnectResult{}, &ConnectionError{Root: root, Err: err}
		}
		if err = remote.Ping(ctx); err != nil {
			_ = remote.Close()
			pc.close()
			return ConnectResult{}, &ConnectionError{Root: root, Err: err}
		}

		pc.remote = remote
		pc.attempt = 1
		return e.suspend(pc, root), nil
	}

	h := Handle(e.ids.Generate())
	e.mu.Lock()
	e.conns[h] = &connection{profile: pc.profile, replicas: pc.replicas}
	e.mu.Unlock()

	e.logger.Info().Str("profile", pc.profile.Name).Msg("connected to both replicas")
	return ConnectResult{Handle: h}, nil
}

// suspend parks pc under a fresh token and returns the password request.
func (e *engine) suspend(pc *pendingConnect, root string) ConnectResult {
	token := e.ids.Generate()

	e.mu.Lock()
	e.pending[token] = pc
	e.mu.Unlock()

	return ConnectResult{Credential: &CredentialRequest{
		Prompt: credentialPrompt(pc.profile, root, pc.attempt),
		Token:  token,
	}}
}

func (e *engine) takePending(token string) (*pendingConnect, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()

	pc, ok := e.pending[token]
	delete(e.pending, token)
	return pc, ok
}

func (e *engine) connection(h Handle) (*connection, error) {
	e.mu.Lock()
	defer e.mu.Unlock()

	conn, ok := e.conns[h]
	if !ok {
		return nil, ErrUnknownHandle
	}
	return conn, nil
}

// credentialPrompt builds "Password for host [user@]host[ (attempt n)]".
func credentialPrompt(profile models.Profile, root string, attempt int) string {
	host := root
	if u, err := url.Parse(root); err == nil && u.Host != "" {
		host = u.Host
	}
	if profile.Username != "" {
		host = profile.Username + "@" + host
	}

	prompt := "Password for host " + host
	if attempt > 1 {
		prompt = fmt.Sprintf("%s (attempt %d)", prompt, attempt)
	}
	return prompt
}
