// Package engine implements the reconciliation/transfer engine driven by a
// synchronization session.
//
// The session sees the engine only through [Engine]: it connects to the two
// roots of a profile (possibly suspending on a [CredentialRequest] for each
// remote root), reconciles them into a list of [models.ReconItem] and applies
// the non-ignored items. Connections are referred to by an opaque [Handle];
// the engine alone owns the state behind it.
package engine

import (
	"context"

	"github.com/MKhiriev/go-replica-sync/models"
)

//go:generate mockgen -source=interfaces.go -destination=../mock/engine_mock.go -package=mock

// Handle is an opaque reference to an established connection. Callers must
// not interpret its value.
type Handle string

// CredentialRequest is returned instead of a Handle when a root needs a
// secret before the connection can proceed.
type CredentialRequest struct {
	// Prompt is the text presented to the user, e.g. "Password for host x".
	Prompt string

	// Token identifies the suspended connection inside the engine. It is
	// opaque to callers and only passed back to ResumeWithCredential or Abort.
	Token string
}

// ConnectResult carries exactly one of an established connection handle or a
// pending credential request.
type ConnectResult struct {
	Handle     Handle
	Credential *CredentialRequest
}

// NeedsCredential reports whether the connection is suspended on a secret.
func (r ConnectResult) NeedsCredential() bool {
	return r.Credential != nil
}

// ProgressFunc receives one update per processed item during ApplySync.
type ProgressFunc func(progress models.SyncProgress)

// Engine is the protocol a synchronization session drives.
type Engine interface {
	// Connect starts connecting to both roots of profile. Roots are handled
	// in order; the first root needing authentication suspends the
	// connection and a CredentialRequest is returned. Network failures are
	// returned as *ConnectionError.
	Connect(ctx context.Context, profile models.Profile) (ConnectResult, error)

	// ResumeWithCredential continues a suspended connection with secret. It
	// may return a further CredentialRequest (second root, or a rejected
	// secret) or the final Handle.
	ResumeWithCredential(ctx context.Context, req CredentialRequest, secret string) (ConnectResult, error)

	// Abort discards a suspended connection. Unknown requests are ignored.
	Abort(req CredentialRequest)

	// Reconcile scans both roots and returns the detected differences in
	// engine order. Item indexes equal their positions.
	Reconcile(ctx context.Context, h Handle) ([]*models.ReconItem, error)

	// ApplySync propagates every item that is neither ignored nor a
	// conflict. Per-item failures are reported in the SyncReport; an error
	// is returned only when the step could not continue at all. Applied
	// items are never rolled back.
	ApplySync(ctx context.Context, h Handle, items []*models.ReconItem, progress ProgressFunc) (models.SyncReport, error)

	// Close releases the connection behind h.
	Close(h Handle) error
}
