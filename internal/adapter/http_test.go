// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package adapter

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/replica"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
	"github.com/MKhiriev/go-replica-sync/models"
)

// newTestAdapter creates an httpReplicaAdapter pointed at the test server.
func newTestAdapter(t *testing.T, serverURL string) *httpReplicaAdapter {
	t.Helper()
	a, err := NewHTTPReplicaAdapter(serverURL, config.ClientAdapter{RequestTimeout: 5 * time.Second}, logger.Nop())
	require.NoError(t, err)
	return a.(*httpReplicaAdapter)
}

// ── NewHTTPReplicaAdapter ───────────────────────────────────────────────────

func TestNewHTTPReplicaAdapter_InvalidAddress(t *testing.T) {
	for _, raw := range []string{"", "  ", "ftp://host", "/local/path", "http://"} {
		t.Run(raw, func(t *testing.T) {
			_, err := NewHTTPReplicaAdapter(raw, config.ClientAdapter{}, logger.Nop())
			assert.ErrorIs(t, err, ErrInvalidAddress)
		})
	}
}

func TestNewHTTPReplicaAdapter_TrimsSlash(t *testing.T) {
	a, err := NewHTTPReplicaAdapter("https://nas:8443/", config.ClientAdapter{}, logger.Nop())
	require.NoError(t, err)
	assert.Equal(t, "https://nas:8443", a.BaseURL())
}

// ── Ping ────────────────────────────────────────────────────────────────────

func TestPing_Success(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/api/ping", r.URL.Path)
		_, _ = w.Write([]byte("1.0.0"))
	}))
	defer srv.Close()

	assert.NoError(t, newTestAdapter(t, srv.URL).Ping(context.Background()))
}

func TestPing_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	err := newTestAdapter(t, url).Ping(context.Background())
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.Contains(t, err.Error(), "ping request")
}

// ── Login ───────────────────────────────────────────────────────────────────

func TestLogin_StoresToken(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/auth/login":
			var req models.LoginRequest
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&req))
			assert.Equal(t, "s3cret", req.Password)
			w.Header().Set("Authorization", "Bearer issued-token")
		case "/api/files":
			assert.Equal(t, "Bearer issued-token", r.Header.Get("Authorization"))
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	require.NoError(t, a.Login(context.Background(), "s3cret"))
	assert.Equal(t, "issued-token", a.getToken())
	assert.NoError(t, a.Remove(context.Background(), "x"))
}

func TestLogin_WrongPassword(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "wrong password", http.StatusUnauthorized)
	}))
	defer srv.Close()

	a := newTestAdapter(t, srv.URL)
	err := a.Login(context.Background(), "nope")
	assert.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, a.getToken())
}

func TestLogin_MissingAuthorizationHeader(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Login(context.Background(), "pw")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bearer token")
}

// ── Scan ────────────────────────────────────────────────────────────────────

func TestScan_Success(t *testing.T) {
	mtime := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	states := []models.FileState{{Path: "a.txt", Hash: "aa", Size: 1, ModTime: mtime}}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/api/states", r.URL.Path)
		_, _ = utils.WriteJSON(w, models.StatesResponse{States: states, Length: 1}, http.StatusOK)
	}))
	defer srv.Close()

	got, err := newTestAdapter(t, srv.URL).Scan(context.Background())
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "a.txt", got[0].Path)
	assert.True(t, got[0].ModTime.Equal(mtime))
}

func TestScan_LengthMismatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = utils.WriteJSON(w, models.StatesResponse{Length: 2}, http.StatusOK)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Scan(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "incomplete")
}

func TestScan_Unauthorized(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Scan(context.Background())
	assert.ErrorIs(t, err, ErrUnauthorized)
}

// ── Open ────────────────────────────────────────────────────────────────────

func TestOpen_StreamsBody(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "dir/file name.txt", r.URL.Query().Get("path"))
		_, _ = w.Write([]byte("contents"))
	}))
	defer srv.Close()

	rc, err := newTestAdapter(t, srv.URL).Open(context.Background(), "dir/file name.txt")
	require.NoError(t, err)
	defer rc.Close()

	data, err := io.ReadAll(rc)
	require.NoError(t, err)
	assert.Equal(t, "contents", string(data))
}

func TestOpen_NotFoundMatchesReplicaError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "no such file", http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := newTestAdapter(t, srv.URL).Open(context.Background(), "gone.txt")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, replica.ErrNotFound)
	assert.Contains(t, err.Error(), "no such file")
}

// ── Write ───────────────────────────────────────────────────────────────────

func TestWrite_SendsContentAndMetadata(t *testing.T) {
	mtime := time.Date(2025, 2, 3, 4, 5, 6, 0, time.UTC)
	state := models.FileState{Path: "a/b.txt", Hash: utils.HashBytes([]byte("payload")), ModTime: mtime}

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "a/b.txt", r.URL.Query().Get("path"))
		assert.Equal(t, "2025-02-03T04:05:06Z", r.URL.Query().Get("mtime"))
		assert.Equal(t, state.Hash, r.Header.Get(utils.ContentHashHeader))

		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "payload", string(body))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Write(context.Background(), state, strings.NewReader("payload"))
	assert.NoError(t, err)
}

func TestWrite_IntegrityFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "integrity check failed", http.StatusBadRequest)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Write(context.Background(), models.FileState{Path: "x"}, strings.NewReader("x"))
	assert.ErrorIs(t, err, ErrBadRequest)
}

// ── Remove / Close ──────────────────────────────────────────────────────────

func TestRemove_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	err := newTestAdapter(t, srv.URL).Remove(context.Background(), "x")
	assert.ErrorIs(t, err, ErrInternalServerError)
}

func TestClose_ForgetsToken(t *testing.T) {
	a := newTestAdapter(t, "http://localhost:1")
	a.setToken("tok")

	require.NoError(t, a.Close())
	assert.Empty(t, a.getToken())
}

// ── mapHTTPStatus ───────────────────────────────────────────────────────────

func TestMapHTTPStatus(t *testing.T) {
	tests := []struct {
		status int
		want   error
	}{
		{http.StatusBadRequest, ErrBadRequest},
		{http.StatusUnauthorized, ErrUnauthorized},
		{http.StatusForbidden, ErrForbidden},
		{http.StatusNotFound, ErrNotFound},
		{http.StatusConflict, ErrConflict},
		{http.StatusBadGateway, ErrBadGateway},
		{http.StatusInternalServerError, ErrInternalServerError},
	}

	for _, tt := range tests {
		t.Run(http.StatusText(tt.status), func(t *testing.T) {
			assert.ErrorIs(t, mapHTTPStatus(tt.status, "body"), tt.want)
		})
	}

	assert.NoError(t, mapHTTPStatus(http.StatusNoContent, ""))
	assert.EqualError(t, mapHTTPStatus(http.StatusTeapot, ""), "http 418: I'm a teapot")
}
