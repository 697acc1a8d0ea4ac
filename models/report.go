package models

import "time"

// ItemFailure records a reconciliation item whose propagation failed.
type ItemFailure struct {
	Index  int    `json:"index"`
	Path   string `json:"path"`
	Reason string `json:"reason"`
}

// SyncReport summarizes one sync step.
type SyncReport struct {
	// Applied lists the paths propagated successfully, in item order.
	Applied []string `json:"applied"`

	// Skipped lists ignored items and conflicts.
	Skipped []string `json:"skipped"`

	// Failed lists items that could not be propagated. Items applied before
	// a failure stay applied.
	Failed []ItemFailure `json:"failed"`

	StartedAt  time.Time `json:"started_at"`
	FinishedAt time.Time `json:"finished_at"`
}

// SyncProgress is emitted by the engine after each processed item.
type SyncProgress struct {
	Done  int    `json:"done"`
	Total int    `json:"total"`
	Path  string `json:"path"`
}
