package tui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"

	"github.com/MKhiriev/go-replica-sync/models"
)

const (
	fieldName = iota
	fieldRootA
	fieldRootB
	fieldUsername
	fieldIgnore
	fieldCount
)

var fieldLabels = [fieldCount]string{
	fieldName:     "Name:     ",
	fieldRootA:    "Root A:   ",
	fieldRootB:    "Root B:   ",
	fieldUsername: "Username: ",
	fieldIgnore:   "Ignore:   ",
}

type profileFormModel struct {
	inputs  []textinput.Model
	focus   int
	editing bool
	// name is the stored name of the edited profile. It is the profile's key,
	// so it cannot be changed from the form.
	name       string
	submitting bool
	err        string
}

// newProfileFormModel returns an empty form, or one filled from p with the
// name locked.
func newProfileFormModel(p *models.Profile) profileFormModel {
	inputs := make([]textinput.Model, fieldCount)
	for i := range inputs {
		inputs[i] = textinput.New()
		inputs[i].Width = 48
	}
	inputs[fieldRootA].Placeholder = "/path/to/dir or http://host:port"
	inputs[fieldRootB].Placeholder = "/path/to/dir or http://host:port"
	inputs[fieldIgnore].Placeholder = "*.tmp, .git/*"
	inputs[fieldName].Focus()

	m := profileFormModel{inputs: inputs}
	if p == nil {
		return m
	}

	m.editing = true
	m.name = p.Name
	m.inputs[fieldName].SetValue(p.Name)
	m.inputs[fieldName].Blur()
	m.inputs[fieldRootA].Focus()
	m.focus = fieldRootA
	m.inputs[fieldRootA].SetValue(p.RootA)
	m.inputs[fieldRootB].SetValue(p.RootB)
	m.inputs[fieldUsername].SetValue(p.Username)
	m.inputs[fieldIgnore].SetValue(strings.Join(p.Ignore, ", "))
	return m
}

func (m *profileFormModel) move(delta int) {
	m.inputs[m.focus].Blur()
	m.focus = (m.focus + delta + fieldCount) % fieldCount
	if m.editing && m.focus == fieldName {
		m.focus = (m.focus + delta + fieldCount) % fieldCount
	}
	m.inputs[m.focus].Focus()
}

func (m profileFormModel) profile() models.Profile {
	var ignore []string
	for _, pattern := range strings.Split(m.inputs[fieldIgnore].Value(), ",") {
		if pattern = strings.TrimSpace(pattern); pattern != "" {
			ignore = append(ignore, pattern)
		}
	}

	name := strings.TrimSpace(m.inputs[fieldName].Value())
	if m.editing {
		name = m.name
	}

	return models.Profile{
		Name:     name,
		RootA:    strings.TrimSpace(m.inputs[fieldRootA].Value()),
		RootB:    strings.TrimSpace(m.inputs[fieldRootB].Value()),
		Username: strings.TrimSpace(m.inputs[fieldUsername].Value()),
		Ignore:   ignore,
	}
}

func (m profileFormModel) View() string {
	title := "NEW PROFILE"
	if m.editing {
		title = "EDIT PROFILE: " + m.name
	}

	var b strings.Builder
	for i, input := range m.inputs {
		b.WriteString(fieldLabels[i])
		b.WriteString("[" + input.View() + "]\n")
	}
	if m.submitting {
		b.WriteString("\nSaving...\n")
	}
	if m.err != "" {
		b.WriteString("\n" + errorStyle.Render(m.err) + "\n")
	}

	return renderPage(title, b.String(), "tab: next field  shift+tab: previous  enter: save  esc: cancel")
}
