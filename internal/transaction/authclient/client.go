// Package authclient calls the Authentication Service to verify bearer
// tokens. The upstream is treated as an external, possibly-unavailable
// dependency: unreachable and "credential rejected" are distinct failures.
package authclient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/frauddetect/fraud-detection/internal/transaction/api/metrics"
	"github.com/frauddetect/fraud-detection/internal/transaction/core/domain"
)

const defaultTimeout = 10 * time.Second

// Client is the Remote Verification Client.
type Client struct {
	baseURL string
	http    *http.Client
	log     zerolog.Logger
}

// NewClient creates a Client for the Authentication Service at baseURL.
// Every verification call is bounded by timeout; a hung upstream must not
// hang the dependent request.
func NewClient(baseURL string, timeout time.Duration, log zerolog.Logger) *Client {
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		log:     log,
	}
}

type verifyResponse struct {
	Valid    bool   `json:"valid"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Error    string `json:"error"`
}

// Verify resolves a bearer credential through the Authentication Service.
//
//   - transport failure or timeout → ErrAuthServiceUnavailable
//   - non-200, {valid:false}, or a valid response missing the role →
//     ErrAuthenticationFailed
//   - otherwise the verified identity is returned
func (c *Client) Verify(ctx context.Context, token string) (*domain.Identity, error) {
	// Absorb double-prefixed credentials from naive clients before the
	// value goes on the wire.
	token = strings.TrimSpace(token)
	for strings.HasPrefix(token, "Bearer ") {
		token = strings.TrimSpace(strings.TrimPrefix(token, "Bearer "))
	}

	start := time.Now()
	id, err := c.verify(ctx, token)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	metrics.AuthVerifyDuration.WithLabelValues(outcome).Observe(time.Since(start).Seconds())

	return id, err
}

func (c *Client) verify(ctx context.Context, token string) (*domain.Identity, error) {
	endpoint := c.baseURL + "/verify-token?token=" + url.QueryEscape(token)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthServiceUnavailable, err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Error().Err(err).Msg("auth service unreachable")
		return nil, fmt.Errorf("%w: %v", domain.ErrAuthServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		c.log.Warn().Int("status", resp.StatusCode).Msg("token verification rejected upstream")
		return nil, domain.ErrAuthenticationFailed
	}

	var result verifyResponse
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		// An unparseable upstream response is untrusted, not unavailable.
		c.log.Warn().Err(err).Msg("malformed verification response")
		return nil, domain.ErrAuthenticationFailed
	}

	if !result.Valid {
		return nil, domain.ErrAuthenticationFailed
	}
	if result.Role == "" {
		c.log.Warn().Msg("verification response missing role")
		return nil, domain.ErrAuthenticationFailed
	}

	return &domain.Identity{Username: result.Username, Role: result.Role}, nil
}

// Ping reports upstream availability for the readiness probe.
func (c *Client) Ping(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return err
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("auth service health: status %d", resp.StatusCode)
	}
	return nil
}
