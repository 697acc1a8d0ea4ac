// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package tui

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/MKhiriev/go-replica-sync/internal/session"
	"github.com/MKhiriev/go-replica-sync/models"
)

type screen int

const (
	screenProfiles screen = iota
	screenProfileForm
	screenBusy
	screenCredential
	screenReview
	screenDetail
	screenSync
	screenResult
)

// writeClipboard is replaced in tests.
var writeClipboard = clipboard.WriteAll

// appModel renders the session. Screens follow the session state reported
// by sessionEventMsg; key presses become session operations.
type appModel struct {
	ctx           context.Context
	session       *session.Session
	buildInfo     models.AppBuildInfo
	currentScreen screen

	profiles   profileListModel
	form       profileFormModel
	busy       busyModel
	credential credentialModel
	review     reviewModel
	detail     detailModel
	syncScreen syncModel
	result     resultModel

	// editing is the profile loaded into the form by the next ChoosingProfile.
	editing *models.Profile

	showError     bool
	errorOverlay  errorOverlayModel
	showConfirm   bool
	confirm       confirmModel
	pendingDelete string
	showBuildInfo bool
}

func newAppModel(ctx context.Context, sess *session.Session, buildInfo models.AppBuildInfo) appModel {
	return appModel{
		ctx:           ctx,
		session:       sess,
		buildInfo:     buildInfo,
		currentScreen: screenProfiles,
		profiles:      newProfileListModel(),
		busy:          newBusyModel(),
		syncScreen:    newSyncModel(),
	}
}

func (m appModel) Init() tea.Cmd {
	return tea.Batch(m.cmdLoadProfiles(), m.busy.spinner.Tick)
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if key.Matches(msg, keys.forceQuit) {
			return m, tea.Quit
		}
		if m.showError {
			if key.Matches(msg, keys.enter) || key.Matches(msg, keys.esc) {
				m.showError = false
				m.errorOverlay.message = ""
			}
			return m, nil
		}
		if m.showConfirm {
			if key.Matches(msg, keys.yes) {
				m.showConfirm = false
				name := m.pendingDelete
				m.pendingDelete = ""
				return m, m.cmdDeleteProfile(name)
			}
			if key.Matches(msg, keys.no) || key.Matches(msg, keys.esc) {
				m.showConfirm = false
				m.pendingDelete = ""
			}
			return m, nil
		}
		if m.showBuildInfo {
			if key.Matches(msg, keys.esc) || key.Matches(msg, keys.info) {
				m.showBuildInfo = false
			}
			return m, nil
		}
	case tea.WindowSizeMsg:
		m.review.height = msg.Height
		if w := msg.Width - 12; w > 10 {
			m.syncScreen.bar.Width = w
		}
		return m, nil
	case spinner.TickMsg:
		var cmd tea.Cmd
		m.busy.spinner, cmd = m.busy.spinner.Update(msg)
		return m, cmd
	case sessionEventMsg:
		return m.onSessionEvent(msg.event)
	case profilesLoadedMsg:
		if msg.err != nil {
			m.profiles.loading = false
			m.raiseError(humanizeError(msg.err))
			return m, nil
		}
		m.profiles.setProfiles(msg.profiles)
		return m, nil
	case profileSavedMsg:
		m.form.submitting = false
		if msg.err != nil {
			m.form.err = msg.err.Error()
		}
		return m, nil
	case profileDeletedMsg:
		if msg.err != nil {
			m.raiseError(msg.err.Error())
			return m, nil
		}
		m.profiles.status = fmt.Sprintf("Profile %q deleted", msg.name)
		return m, m.cmdLoadProfiles()
	case copiedMsg:
		if msg.err != nil {
			m.raiseError(msg.err.Error())
			return m, nil
		}
		m.detail.status = "Copied!"
		return m, cmdClearStatus()
	case clearStatusMsg:
		m.detail.status = ""
		return m, nil
	}

	switch m.currentScreen {
	case screenProfiles:
		return m.updateProfiles(msg)
	case screenProfileForm:
		return m.updateForm(msg)
	case screenCredential:
		return m.updateCredential(msg)
	case screenReview:
		return m.updateReview(msg)
	case screenDetail:
		return m.updateDetail(msg)
	case screenResult:
		return m.updateResult(msg)
	}

	return m, nil
}

func (m appModel) View() string {
	var body string
	switch {
	case m.showBuildInfo:
		body = renderBuildInfoWindow(m.buildInfo)
	case m.currentScreen == screenProfiles:
		body = m.profiles.View()
	case m.currentScreen == screenProfileForm:
		body = m.form.View()
	case m.currentScreen == screenBusy:
		body = m.busy.View()
	case m.currentScreen == screenCredential:
		body = m.credential.View()
	case m.currentScreen == screenReview:
		body = m.review.View()
	case m.currentScreen == screenDetail:
		body = m.detail.View()
	case m.currentScreen == screenSync:
		body = m.syncScreen.View()
	case m.currentScreen == screenResult:
		body = m.result.View()
	}

	if m.showConfirm {
		body += "\n\n" + m.confirm.View()
	}
	if m.showError {
		body += "\n\n" + m.errorOverlay.View()
	}

	return appStyle.Render(body)
}

func (m *appModel) raiseError(message string) {
	m.showError = true
	m.errorOverlay.message = message
}

// onSessionEvent moves the UI along with the session.
func (m appModel) onSessionEvent(ev session.Event) (tea.Model, tea.Cmd) {
	switch ev.Kind {
	case session.EventStateChanged:
		return m.enterState(ev)
	case session.EventCredentialRequired:
		m.credential = newCredentialModel(ev.Prompt)
		m.currentScreen = screenCredential
		return m, textinput.Blink
	case session.EventListInstalled, session.EventItemChanged:
		m.review.setRows(m.session.Table().Rows())
		m.review.status = m.session.Status()
	case session.EventSyncProgress:
		m.syncScreen.progress = ev.Progress
	case session.EventSyncDone:
		m.result.report = ev.Report
	}
	return m, nil
}

func (m appModel) enterState(ev session.Event) (tea.Model, tea.Cmd) {
	switch ev.State {
	case session.Idle:
		m.currentScreen = screenProfiles
		m.profiles.loading = true
		m.profiles.status = m.session.Status()
		return m, m.cmdLoadProfiles()
	case session.ChoosingProfile:
		m.form = newProfileFormModel(m.editing)
		m.editing = nil
		m.currentScreen = screenProfileForm
		return m, textinput.Blink
	case session.Connecting, session.Reconciling:
		m.busy.status = m.session.Status()
		m.currentScreen = screenBusy
	case session.AwaitingCredential:
		// the prompt arrives with EventCredentialRequired
	case session.Reviewing:
		m.review.setRows(m.session.Table().Rows())
		m.review.status = m.session.Status()
		m.currentScreen = screenReview
	case session.Syncing:
		m.syncScreen.progress = models.SyncProgress{}
		m.currentScreen = screenSync
	case session.Done, session.Failed:
		m.result = resultModel{
			state:   ev.State,
			status:  m.session.Status(),
			failure: ev.Err,
			report:  m.session.Report(),
		}
		m.currentScreen = screenResult
	}
	return m, nil
}

func (m appModel) updateProfiles(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.up):
		if m.profiles.idx > 0 {
			m.profiles.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.profiles.idx < len(m.profiles.profiles)-1 {
			m.profiles.idx++
		}
	case key.Matches(keyMsg, keys.enter):
		p, ok := m.profiles.current()
		if !ok {
			return m, nil
		}
		m.profiles.status = ""
		if err := m.session.OpenProfile(m.ctx, p); err != nil {
			m.raiseError(err.Error())
		}
	case key.Matches(keyMsg, keys.newItem):
		m.editing = nil
		if err := m.session.CreateProfile(); err != nil {
			m.raiseError(err.Error())
		}
	case key.Matches(keyMsg, keys.edit):
		p, ok := m.profiles.current()
		if !ok {
			return m, nil
		}
		m.editing = &p
		if err := m.session.CreateProfile(); err != nil {
			m.editing = nil
			m.raiseError(err.Error())
		}
	case key.Matches(keyMsg, keys.delete):
		p, ok := m.profiles.current()
		if !ok {
			return m, nil
		}
		m.pendingDelete = p.Name
		m.confirm.message = p.Name
		m.showConfirm = true
	case key.Matches(keyMsg, keys.reload):
		m.profiles.loading = true
		return m, m.cmdLoadProfiles()
	case key.Matches(keyMsg, keys.info):
		m.showBuildInfo = true
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			if err := m.session.CancelProfileEdit(); err != nil {
				m.raiseError(err.Error())
			}
			return m, nil
		case key.Matches(keyMsg, keys.tab), keyMsg.Type == tea.KeyDown:
			m.form.move(1)
			return m, nil
		case key.Matches(keyMsg, keys.backtab), keyMsg.Type == tea.KeyUp:
			m.form.move(-1)
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			if m.form.submitting {
				return m, nil
			}
			m.form.submitting = true
			m.form.err = ""
			return m, m.cmdSaveProfile(m.form.profile())
		}
	}

	var cmd tea.Cmd
	m.form.inputs[m.form.focus], cmd = m.form.inputs[m.form.focus].Update(msg)
	return m, cmd
}

func (m appModel) updateCredential(msg tea.Msg) (tea.Model, tea.Cmd) {
	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch {
		case key.Matches(keyMsg, keys.esc):
			if err := m.session.CancelCredential(); err != nil {
				m.raiseError(err.Error())
			}
			return m, nil
		case key.Matches(keyMsg, keys.enter):
			err := m.session.ResolveCredential(m.credential.input.Value())
			switch {
			case errors.Is(err, session.ErrInvalidInput):
				m.credential.err = "The password must not be empty"
			case err != nil:
				m.raiseError(err.Error())
			default:
				m.credential.input.Reset()
				m.busy.status = m.session.Status()
				m.currentScreen = screenBusy
			}
			return m, nil
		}
	}

	var cmd tea.Cmd
	m.credential.input, cmd = m.credential.input.Update(msg)
	return m, cmd
}

func (m appModel) updateReview(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	table := m.session.Table()
	switch {
	case key.Matches(keyMsg, keys.up):
		if m.review.idx > 0 {
			m.review.idx--
		}
	case key.Matches(keyMsg, keys.down):
		if m.review.idx < len(m.review.rows)-1 {
			m.review.idx++
		}
	case key.Matches(keyMsg, keys.toggle):
		if len(m.review.rows) == 0 {
			return m, nil
		}
		if err := table.ToggleIgnore(m.review.idx); err != nil {
			m.raiseError(err.Error())
			return m, nil
		}
		m.review.setRows(table.Rows())
	case key.Matches(keyMsg, keys.enter):
		if len(m.review.rows) == 0 {
			return m, nil
		}
		text, err := table.Detail(m.review.idx)
		if err != nil {
			m.raiseError(err.Error())
			return m, nil
		}
		m.detail = detailModel{path: m.review.rows[m.review.idx].Path, text: text, back: screenReview}
		m.currentScreen = screenDetail
	case key.Matches(keyMsg, keys.sync):
		if err := m.session.Sync(m.ctx); err != nil {
			m.raiseError(err.Error())
		}
	case key.Matches(keyMsg, keys.rescan):
		if err := m.session.Restart(m.ctx); err != nil {
			m.raiseError(err.Error())
		}
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) updateDetail(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.copy):
		return m, cmdCopyToClipboard(m.detail.text)
	case key.Matches(keyMsg, keys.esc):
		m.currentScreen = m.detail.back
	}
	return m, nil
}

func (m appModel) updateResult(msg tea.Msg) (tea.Model, tea.Cmd) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch {
	case key.Matches(keyMsg, keys.enter):
		if err := m.session.Restart(m.ctx); err != nil {
			m.raiseError(err.Error())
		}
	case key.Matches(keyMsg, keys.quit):
		return m, tea.Quit
	}
	return m, nil
}

func (m appModel) cmdLoadProfiles() tea.Cmd {
	ctx := m.ctx
	sess := m.session
	return func() tea.Msg {
		profiles, err := sess.ListProfiles(ctx)
		return profilesLoadedMsg{profiles: profiles, err: err}
	}
}

func (m appModel) cmdSaveProfile(p models.Profile) tea.Cmd {
	ctx := m.ctx
	sess := m.session
	return func() tea.Msg {
		return profileSavedMsg{err: sess.SaveProfile(ctx, p)}
	}
}

func (m appModel) cmdDeleteProfile(name string) tea.Cmd {
	ctx := m.ctx
	sess := m.session
	return func() tea.Msg {
		return profileDeletedMsg{name: name, err: sess.DeleteProfile(ctx, name)}
	}
}

func cmdCopyToClipboard(text string) tea.Cmd {
	return func() tea.Msg {
		if err := writeClipboard(text); err != nil {
			return copiedMsg{err: fmt.Errorf("copy to clipboard: %w", err)}
		}
		return copiedMsg{}
	}
}

func cmdClearStatus() tea.Cmd {
	return tea.Tick(2*time.Second, func(time.Time) tea.Msg {
		return clearStatusMsg{}
	})
}
