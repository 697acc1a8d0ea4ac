package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
)

type credentialModel struct {
	prompt string
	input  textinput.Model
	err    string
}

func newCredentialModel(prompt string) credentialModel {
	input := textinput.New()
	input.EchoMode = textinput.EchoPassword
	input.EchoCharacter = '*'
	input.Width = 40
	input.Focus()

	return credentialModel{prompt: prompt, input: input}
}

func (m credentialModel) View() string {
	data := m.prompt + "\n\n[" + m.input.View() + "]"
	if m.err != "" {
		data += "\n\n" + errorStyle.Render(m.err)
	}
	return renderPage("AUTHENTICATION", data, "enter: submit  esc: cancel connection")
}
