package adapter

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/MKhiriev/go-replica-sync/internal/utils"
	"github.com/MKhiriev/go-replica-sync/models"
)

// Scan implements [replica.Replica] with GET /api/states.
func (h *httpReplicaAdapter) Scan(ctx context.Context) ([]models.FileState, error) {
	resp, err := h.authedRequest(ctx).Get("/api/states")
	if err != nil {
		return nil, fmt.Errorf("%w: get states request: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}

	var sr models.StatesResponse
	if err = json.Unmarshal(resp.Body(), &sr); err != nil {
		return nil, fmt.Errorf("decode states response: %w", err)
	}
	if sr.Length != len(sr.States) {
		return nil, fmt.Errorf("incomplete states response: %d of %d states", len(sr.States), sr.Length)
	}

	return sr.States, nil
}

// Open implements [replica.Replica] with GET /api/files. The returned body is
// streamed and must be closed by the caller.
func (h *httpReplicaAdapter) Open(ctx context.Context, relPath string) (io.ReadCloser, error) {
	resp, err := h.authedRequest(ctx).
		SetDoNotParseResponse(true).
		SetQueryParam("path", relPath).
		Get("/api/files")
	if err != nil {
		return nil, fmt.Errorf("%w: download request: %w", ErrUnavailable, err)
	}
	if err = mapStreamedHTTPError(resp); err != nil {
		return nil, err
	}

	return resp.RawBody(), nil
}

// Write implements [replica.Replica] with PUT /api/files. The body is
// streamed from r and the server verifies it against state.Hash before
// replacing the file.
func (h *httpReplicaAdapter) Write(ctx context.Context, state models.FileState, r io.Reader) error {
	resp, err := h.authedRequest(ctx).
		SetHeader("Content-Type", "application/octet-stream").
		SetHeader(utils.ContentHashHeader, state.Hash).
		SetQueryParams(map[string]string{
			"path":  state.Path,
			"mtime": state.ModTime.UTC().Format(time.RFC3339),
		}).
		SetBody(r).
		Put("/api/files")
	if err != nil {
		return fmt.Errorf("%w: upload request: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

// Remove implements [replica.Replica] with DELETE /api/files.
func (h *httpReplicaAdapter) Remove(ctx context.Context, relPath string) error {
	resp, err := h.authedRequest(ctx).
		SetQueryParam("path", relPath).
		Delete("/api/files")
	if err != nil {
		return fmt.Errorf("%w: delete request: %w", ErrUnavailable, err)
	}

	return mapHTTPError(resp)
}

// Close drops idle keep-alive connections and forgets the token.
func (h *httpReplicaAdapter) Close() error {
	h.setToken("")
	h.client.GetClient().CloseIdleConnections()
	return nil
}
