package adapter

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"sync"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-replica-sync/internal/config"
	"github.com/MKhiriev/go-replica-sync/internal/logger"
	"github.com/MKhiriev/go-replica-sync/internal/utils"
	"github.com/MKhiriev/go-replica-sync/models"
)

type httpReplicaAdapter struct {
	client  *utils.HTTPClient
	baseURL string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPReplicaAdapter constructs the HTTP implementation of
// [ReplicaAdapter] for the server at rawURL. Requests time out after
// adapterCfg.RequestTimeout.
//
// Returns ErrInvalidAddress if rawURL is not an http or https URL with a host.
func NewHTTPReplicaAdapter(rawURL string, adapterCfg config.ClientAdapter, logger *logger.Logger) (ReplicaAdapter, error) {
	baseURL, err := normalizeBaseURL(rawURL)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidAddress, err)
	}

	return &httpReplicaAdapter{
		client:  utils.NewHTTPClient(baseURL, adapterCfg.RequestTimeout),
		baseURL: baseURL,
		logger:  logger,
	}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return "", fmt.Errorf("unsupported scheme %q", u.Scheme)
	}
	if u.Host == "" {
		return "", fmt.Errorf("address must include host")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpReplicaAdapter) BaseURL() string {
	return h.baseURL
}

func (h *httpReplicaAdapter) setToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpReplicaAdapter) getToken() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

// Ping implements [ReplicaAdapter] with GET /api/ping.
func (h *httpReplicaAdapter) Ping(ctx context.Context) error {
	resp, err := h.client.R().
		SetContext(ctx).
		Get("/api/ping")
	if err != nil {
		return fmt.Errorf("%w: ping request: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	h.logger.Debug().Str("server", h.baseURL).Str("version", strings.TrimSpace(resp.String())).Msg("replica server is reachable")
	return nil
}

// Login implements [ReplicaAdapter]. It POSTs the password to
// /api/auth/login and keeps the bearer token from the Authorization header.
func (h *httpReplicaAdapter) Login(ctx context.Context, password string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(models.LoginRequest{Password: password}).
		Post("/api/auth/login")
	if err != nil {
		return fmt.Errorf("%w: login request: %w", ErrUnavailable, err)
	}
	if err = mapHTTPError(resp); err != nil {
		return err
	}

	token, err := utils.ParseBearerToken(resp.Header().Get("Authorization"))
	if err != nil {
		return fmt.Errorf("login parse bearer token: %w", err)
	}

	h.setToken(token)
	h.logger.Info().Str("server", h.baseURL).Msg("logged in to replica server")
	return nil
}

func (h *httpReplicaAdapter) authedRequest(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.getToken(); token != "" {
		req.SetHeader("Authorization", "Bearer "+token)
	}
	return req
}
