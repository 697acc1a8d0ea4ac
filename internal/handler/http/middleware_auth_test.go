package http

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/service"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
)

func newHandlerWithAuthService(authSvc service.AuthService) *Handler {
	return &Handler{
		logger: logger.Nop(),
		services: &service.Services{
			AuthService: authSvc,
		},
	}
}

func executeAuth(h *Handler, authHeader string, next http.Handler) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(logger.Nop().WithContext(req.Context()))
	if authHeader != "" {
		req.Header.Set("Authorization", authHeader)
	}
	rr := httptest.NewRecorder()
	h.auth(next).ServeHTTP(rr, req)
	return rr
}

func TestAuth_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantNext   bool
	}{
		{name: "no header", header: "", wantStatus: http.StatusUnauthorized},
		{name: "scheme only", header: "Bearer", wantStatus: http.StatusUnauthorized},
		{name: "too many parts", header: "Bearer a b", wantStatus: http.StatusUnauthorized},
		{name: "invalid token", header: "Bearer stale", wantStatus: http.StatusUnauthorized},
		{name: "valid token", header: "Bearer " + validToken, wantStatus: http.StatusOK, wantNext: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newHandlerWithAuthService(&mockAuthService{parseTokenFn: acceptValidToken})

			called := false
			next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				called = true
				w.WriteHeader(http.StatusOK)
			})

			rr := executeAuth(h, tt.header, next)

			assert.Equal(t, tt.wantStatus, rr.Code)
			assert.Equal(t, tt.wantNext, called)
		})
	}
}

func TestAuth_StoresClientIDAndTagsLogger(t *testing.T) {
	h := newHandlerWithAuthService(&mockAuthService{parseTokenFn: acceptValidToken})

	var buf bytes.Buffer
	var clientID string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID, _ = utils.GetClientIDFromContext(r.Context())
		logger.FromRequest(r).Info().Msg("inside")
	})

	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	req = req.WithContext(zerolog.New(&buf).WithContext(req.Context()))
	req.Header.Set("Authorization", "Bearer "+validToken)
	h.auth(next).ServeHTTP(httptest.NewRecorder(), req)

	require.Equal(t, "client-1", clientID)
	assert.Contains(t, buf.String(), `"client_id":"client-1"`)
}
