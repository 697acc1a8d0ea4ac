package tui

import (
	"context"
	"errors"
	"fmt"
	"sync"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-replica-sync/internal/client"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/session"
	"github.com/MKhiriev/go-replica-sync/models"
)

// TUI is the full-screen frontend. It owns one session for its lifetime and
// renders it: profile list and editor, password prompt, item review, sync
// progress and the outcome.
type TUI struct {
	newSession client.SessionFactory
	buildInfo  models.AppBuildInfo
	logger     *logger.Logger
}

// New returns a TUI creating its session with newSession.
func New(newSession client.SessionFactory, buildInfo models.AppBuildInfo, logger *logger.Logger) *TUI {
	return &TUI{newSession: newSession, buildInfo: buildInfo, logger: logger}
}

// Run shows the UI until the user quits or ctx is done.
func (t *TUI) Run(ctx context.Context) error {
	observer := &programObserver{}
	sess := t.newSession(observer)
	defer sess.Close()

	program := tea.NewProgram(newAppModel(ctx, sess, t.buildInfo), tea.WithAltScreen(), tea.WithContext(ctx))
	observer.attach(program)

	if _, err := program.Run(); err != nil {
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return ctx.Err()
		}
		t.logger.Err(err).Str("func", "TUI.Run").Msg("terminal ui stopped with error")
		return fmt.Errorf("run terminal ui: %w", err)
	}
	return nil
}

// programObserver forwards session events into the bubbletea event loop.
type programObserver struct {
	mu      sync.Mutex
	program *tea.Program
}

func (o *programObserver) attach(p *tea.Program) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.program = p
}

func (o *programObserver) Notify(ev session.Event) {
	o.mu.Lock()
	p := o.program
	o.mu.Unlock()

	// Send returns immediately once the program has exited.
	if p != nil {
		p.Send(sessionEventMsg{event: ev})
	}
}
