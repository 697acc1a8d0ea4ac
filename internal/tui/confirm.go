package tui

type confirmModel struct {
	message string
}

func (m confirmModel) View() string {
	content := "Delete profile \"" + m.message + "\" and its archive?\n\n"
	content += "y: yes    n: no"
	return overlayBoxStyle.Render(content)
}
