package upstream

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/maintdesk/access-service/internal/infra/config"
	"github.com/maintdesk/access-service/internal/repository"
)

// Client talks to the dashboard API that owns role and user persistence.
// It never retries on its own: callers decide whether a failed save is
// re-invoked, and the edit state survives the failure.
type Client struct {
	http *resty.Client
	log  *zap.Logger
}

// New builds a client for the configured upstream API.
func New(cfg config.UpstreamSettings, log *zap.Logger) *Client {
	if log == nil {
		log = zap.NewNop()
	}

	httpClient := resty.New().
		SetBaseURL(cfg.BaseURL).
		SetHeader("Accept", "application/json").
		SetRetryCount(0)

	if cfg.Timeout > 0 {
		httpClient.SetTimeout(cfg.Timeout)
	}
	if cfg.ServiceToken != "" {
		httpClient.SetAuthToken(cfg.ServiceToken)
	}

	return &Client{http: httpClient, log: log}
}

// HealthCheck probes the upstream API's health endpoint.
func (c *Client) HealthCheck(ctx context.Context) error {
	resp, err := c.http.R().SetContext(ctx).Get("/health")
	if err != nil {
		return fmt.Errorf("upstream health: %w", err)
	}
	if resp.IsError() {
		return fmt.Errorf("upstream health: status %d", resp.StatusCode())
	}
	return nil
}

// statusError maps upstream HTTP failures onto repository sentinels. A
// vanished record surfaces as ErrNotFound so callers treat it as a
// collaborator error instead of silently ignoring it.
func statusError(resp *resty.Response) error {
	switch resp.StatusCode() {
	case http.StatusNotFound:
		return repository.ErrNotFound
	case http.StatusUnauthorized, http.StatusForbidden:
		return repository.ErrUnauthorized
	default:
		return fmt.Errorf("upstream: unexpected status %d for %s %s",
			resp.StatusCode(), resp.Request.Method, resp.Request.URL)
	}
}
