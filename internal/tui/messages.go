package tui

import (
	"github.com/MKhiriev/go-replica-sync/internal/session"
	"github.com/MKhiriev/go-replica-sync/models"
)

type sessionEventMsg struct {
	event session.Event
}

type profilesLoadedMsg struct {
	profiles []models.Profile
	err      error
}

type profileSavedMsg struct {
	err error
}

type profileDeletedMsg struct {
	name string
	err  error
}

type copiedMsg struct {
	err error
}

type clearStatusMsg struct{}
