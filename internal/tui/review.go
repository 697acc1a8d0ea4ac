package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-replica-sync/internal/session"
	"github.com/MKhiriev/go-replica-sync/models"
)

type reviewModel struct {
	rows   []session.Row
	idx    int
	status string
	height int
}

func (m *reviewModel) setRows(rows []session.Row) {
	m.rows = rows
	if m.idx >= len(rows) {
		m.idx = len(rows) - 1
	}
	if m.idx < 0 {
		m.idx = 0
	}
}

func (m reviewModel) View() string {
	var b strings.Builder

	if len(m.rows) == 0 {
		b.WriteString("Everything is in sync.\n")
	}

	start, end := window(m.idx, len(m.rows), m.height-12)
	for i := start; i < end; i++ {
		row := m.rows[i]

		mark := "   "
		line := row.Summary
		switch {
		case row.Ignored:
			mark = "[-]"
			line = ignoredStyle.Render(line)
		case row.Action == models.Conflict:
			line = conflictStyle.Render(line)
		}

		cursor := "  "
		if i == m.idx {
			cursor = cursorStyle.Render("> ")
		}
		b.WriteString(cursor + mark + " " + line + "\n")
	}
	if len(m.rows) > end-start {
		b.WriteString(helpStyle.Render(fmt.Sprintf("\n%d-%d of %d", start+1, end, len(m.rows))) + "\n")
	}

	if m.status != "" {
		b.WriteString("\n" + m.status + "\n")
	}

	return renderPage("REVIEW CHANGES", b.String(),
		"space: ignore/unignore  enter: details  s: synchronize  r: rescan  q: quit")
}
