package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-replica-sync/models"
)

type profileListModel struct {
	profiles []models.Profile
	idx      int
	loading  bool
	status   string
}

func newProfileListModel() profileListModel {
	return profileListModel{loading: true}
}

func (m profileListModel) current() (models.Profile, bool) {
	if len(m.profiles) == 0 || m.idx < 0 || m.idx >= len(m.profiles) {
		return models.Profile{}, false
	}
	return m.profiles[m.idx], true
}

func (m *profileListModel) setProfiles(profiles []models.Profile) {
	m.loading = false
	m.profiles = profiles
	if m.idx >= len(profiles) {
		m.idx = len(profiles) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m profileListModel) View() string {
	var b strings.Builder

	switch {
	case m.loading:
		b.WriteString("Loading...\n")
	case len(m.profiles) == 0:
		b.WriteString("No profiles yet. Press n to create one.\n")
	default:
		for i, p := range m.profiles {
			line := fmt.Sprintf("%-16s %s  <->  %s", fitText(p.Name, 16), p.RootA, p.RootB)
			if i == m.idx {
				b.WriteString(cursorStyle.Render("> " + line))
			} else {
				b.WriteString("  " + line)
			}
			b.WriteString("\n")
		}
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("REPLICA SYNC: PROFILES", b.String(),
		"enter: open  n: new  e: edit  d: delete  r: reload  v: about  q: quit")
}
