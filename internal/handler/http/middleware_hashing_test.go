// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package http

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
)

func TestContentHashing(t *testing.T) {
	valid := utils.HashBytes([]byte("data"))

	tests := []struct {
		name       string
		hash       string
		wantStatus int
		wantHash   string
	}{
		{name: "missing", hash: "", wantStatus: http.StatusBadRequest},
		{name: "not hex", hash: strings.Repeat("z", 64), wantStatus: http.StatusBadRequest},
		{name: "wrong length", hash: valid[:40], wantStatus: http.StatusBadRequest},
		{name: "valid", hash: valid, wantStatus: http.StatusOK, wantHash: valid},
		{name: "upper case is normalized", hash: " " + strings.ToUpper(valid) + " ", wantStatus: http.StatusOK, wantHash: valid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := &Handler{logger: logger.Nop()}

			var seen string
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				seen = r.Header.Get(utils.ContentHashHeader)
				w.WriteHeader(http.StatusOK)
			})

			req := httptest.NewRequest(http.MethodPut, "/api/files?path=a", strings.NewReader("data"))
			if tt.hash != "" {
				req.Header.Set(utils.ContentHashHeader, tt.hash)
			}
			rr := httptest.NewRecorder()
			h.contentHashing(next).ServeHTTP(rr, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantHash, seen)
		})
	}
}
