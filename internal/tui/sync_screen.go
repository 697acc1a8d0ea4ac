package tui

import (
	"fmt"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/bubbles/spinner"

	"github.com/MKhiriev/go-replica-sync/models"
)

// busyModel is shown while the session connects or reconciles.
type busyModel struct {
	spinner spinner.Model
	status  string
}

func newBusyModel() busyModel {
	s := spinner.New()
	s.Spinner = spinner.MiniDot
	return busyModel{spinner: s}
}

func (m busyModel) View() string {
	return renderPage("WORKING", m.spinner.View()+" "+m.status, "")
}

type syncModel struct {
	bar      progress.Model
	progress models.SyncProgress
}

func newSyncModel() syncModel {
	return syncModel{bar: progress.New(progress.WithDefaultGradient(), progress.WithWidth(48))}
}

func (m syncModel) percent() float64 {
	if m.progress.Total == 0 {
		return 0
	}
	return float64(m.progress.Done) / float64(m.progress.Total)
}

func (m syncModel) View() string {
	data := m.bar.ViewAs(m.percent())
	if m.progress.Total > 0 {
		data += fmt.Sprintf("\n\n%d/%d  %s", m.progress.Done, m.progress.Total, m.progress.Path)
	}
	return renderPage("SYNCHRONIZING", data, "a started synchronization cannot be interrupted")
}
