package tui

import (
	"fmt"
	"strings"

	"github.com/MKhiriev/go-replica-sync/internal/session"
	"github.com/MKhiriev/go-replica-sync/models"
)

type resultModel struct {
	state   session.State
	status  string
	failure error
	report  *models.SyncReport
}

func (m resultModel) View() string {
	var b strings.Builder

	b.WriteString(m.status + "\n")
	if m.failure != nil {
		b.WriteString("\n" + errorStyle.Render(humanizeError(m.failure)) + "\n")
	}

	if m.report != nil {
		fmt.Fprintf(&b, "\nApplied: %d  Skipped: %d  Failed: %d\n",
			len(m.report.Applied), len(m.report.Skipped), len(m.report.Failed))
		for _, f := range m.report.Failed {
			fmt.Fprintf(&b, "  %s: %s\n", f.Path, f.Reason)
		}
	}

	title := "DONE"
	if m.state == session.Failed {
		title = "FAILED"
	}
	return renderPage(title, b.String(), "enter: back to profiles  q: quit")
}
