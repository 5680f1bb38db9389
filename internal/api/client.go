// Package api is the HTTP client for the dashboard backend. The backend
// aggregates third-party market data and exposes one JSON endpoint per
// dashboard component.
package api

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Masterminds/semver/v3"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/cbmo4ers/coinpulse/internal/logger"
	"github.com/cbmo4ers/coinpulse/internal/types"
	"github.com/cbmo4ers/coinpulse/pkg/errors"
)

// Component endpoint paths served by the backend.
const (
	ComponentGainers3Min  = "/api/component/gainers-table"
	ComponentLosers3Min   = "/api/component/losers-table"
	ComponentGainers1Min  = "/api/component/gainers-table-1min"
	ComponentTopBanner    = "/api/component/top-banner-scroll"
	ComponentBottomBanner = "/api/component/bottom-banner-scroll"
)

// requestIDHeader carries a per-request UUID for correlating backend logs.
const requestIDHeader = "X-Request-ID"

// Client talks to the dashboard backend.
type Client struct {
	baseURL    string
	httpClient *http.Client
	minVersion *semver.Version
	logger     *logger.Logger
}

// NewClient creates a backend client. minBackendVersion must be a valid
// semver string; the health check rejects older backends.
func NewClient(baseURL, minBackendVersion string, timeout time.Duration, log *logger.Logger) (*Client, error) {
	if baseURL == "" {
		return nil, errors.New(errors.ErrCodeMissingParameter, "backend base URL is required")
	}

	minVersion, err := semver.NewVersion(minBackendVersion)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeInvalidVersion, err, "invalid minimum backend version %q", minBackendVersion)
	}

	if log == nil {
		log = logger.NewNop()
	}

	return &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{Timeout: timeout},
		minVersion: minVersion,
		logger:     log.Named("api"),
	}, nil
}

// GetComponent fetches one component endpoint and decodes its envelope.
// An empty or missing data array is reported as ErrCodeEmptyPayload so
// callers can fall back without inspecting the payload.
func (c *Client) GetComponent(ctx context.Context, path string) (*types.ComponentEnvelope, error) {
	resp, err := c.get(ctx, path)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := errors.NewStatusErrorf(resp.StatusCode, path, "backend returned %d for %s", resp.StatusCode, path)

		return nil, errors.Wrapf(errors.ErrCodeUnexpectedStatus, statusErr, "component fetch failed for %s", path)
	}

	var envelope types.ComponentEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, errors.Wrapf(errors.ErrCodeFeedParseFailed, err, "failed to decode response for %s", path)
	}

	if len(envelope.Data) == 0 {
		return nil, errors.Newf(errors.ErrCodeEmptyPayload, "empty data array for %s", path)
	}

	return &envelope, nil
}

// Health checks the backend root endpoint. Any 2xx counts as alive; a
// backend older than the configured minimum version is reported as an
// error even when reachable.
func (c *Client) Health(ctx context.Context) (*types.ServiceInfo, error) {
	resp, err := c.get(ctx, "/")
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		statusErr := errors.NewStatusErrorf(resp.StatusCode, "/", "backend returned %d for liveness check", resp.StatusCode)

		return nil, errors.Wrap(errors.ErrCodeBackendUnavailable, "liveness check failed", statusErr)
	}

	var info types.ServiceInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		// A 2xx with an undecodable body still counts as alive.
		c.logger.Debug("liveness payload not decodable", zap.Error(err))

		return &types.ServiceInfo{Status: "running"}, nil
	}

	if info.Version != "" {
		version, err := semver.NewVersion(info.Version)
		if err == nil && version.LessThan(c.minVersion) {
			return &info, errors.Newf(errors.ErrCodeVersionTooOld,
				"backend version %s is older than required %s", info.Version, c.minVersion)
		}
	}

	return &info, nil
}

// BaseURL returns the configured backend root.
func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	url := c.baseURL + path

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeRequestFailed, err, "failed to build request for %s", path)
	}

	req.Header.Set("Accept", "application/json")
	req.Header.Set(requestIDHeader, uuid.NewString())

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeRequestFailed, fmt.Sprintf("request to %s failed", url), err)
	}

	return resp, nil
}
