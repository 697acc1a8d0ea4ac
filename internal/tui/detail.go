package tui

type detailModel struct {
	path   string
	text   string
	status string
	back   screen
}

func (m detailModel) View() string {
	data := m.text
	if m.status != "" {
		data += "\n\n" + m.status
	}
	return renderPage("DETAILS: "+m.path, data, "c: copy  esc: back")
}
