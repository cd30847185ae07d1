// Package apiclient talks to the remote auth and food services. It builds
// one outbound request per operation, attaches the stored bearer token for
// authenticated calls, decodes typed responses, and maps every transport
// and HTTP failure into the unified error taxonomy.
//
// The client performs exactly one attempt per call. The
// token-refresh-and-retry-once sequence lives at the repository boundary,
// not here.
package apiclient

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/rs/zerolog"

	"github.com/vladamisici/food-analyzer-sub001/internal/apperrors"
	"github.com/vladamisici/food-analyzer-sub001/internal/secrets"
)

// Default service endpoints.
const (
	DefaultAuthBaseURL = "https://auth.foodtrack.app/v1"
	DefaultFoodBaseURL = "https://api.foodtrack.app/v1"

	defaultTimeout = 30 * time.Second
)

// ClientConfig holds configuration for the API client.
type ClientConfig struct {
	// AuthBaseURL is the auth-service base URL (optional).
	AuthBaseURL string

	// FoodBaseURL is the food-service base URL (optional).
	FoodBaseURL string

	// HTTPClient is the HTTP client to use (optional).
	HTTPClient *http.Client

	// Secrets supplies the bearer token for authenticated calls (required).
	Secrets secrets.Store

	// Logger for client operations.
	Logger zerolog.Logger
}

// Client is the remote API client.
type Client struct {
	authBaseURL string
	foodBaseURL string
	httpClient  *http.Client
	secrets     secrets.Store
	logger      zerolog.Logger
}

// NewClient creates a new API client.
func NewClient(cfg ClientConfig) *Client {
	authBase := cfg.AuthBaseURL
	if authBase == "" {
		authBase = DefaultAuthBaseURL
	}
	foodBase := cfg.FoodBaseURL
	if foodBase == "" {
		foodBase = DefaultFoodBaseURL
	}
	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: defaultTimeout}
	}
	return &Client{
		authBaseURL: authBase,
		foodBaseURL: foodBase,
		httpClient:  httpClient,
		secrets:     cfg.Secrets,
		logger:      cfg.Logger,
	}
}

// do executes one request and decodes a 2xx body into out (when non-nil).
// Authenticated calls fail immediately with authentication/unauthorized
// when no token is stored; there is no anonymous fallback.
func (c *Client) do(ctx context.Context, method, url string, body any, authed bool, out any) error {
	var reqBody *bytes.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return apperrors.Storage(apperrors.KindEncodingFailed, fmt.Errorf("encoding request body: %w", err))
		}
		reqBody = bytes.NewReader(encoded)
	} else {
		reqBody = bytes.NewReader(nil)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, reqBody)
	if err != nil {
		return apperrors.Networking(apperrors.KindInvalidResponse, fmt.Errorf("creating request: %w", err))
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	if authed {
		token, err := c.secrets.Load(ctx, secrets.KeyAuthToken)
		if err != nil {
			return apperrors.Authentication(apperrors.KindUnauthorized)
		}
		req.Header.Set("Authorization", "Bearer "+string(token))
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return classifyTransport(err)
	}
	defer resp.Body.Close()

	if err := mapStatus(resp.StatusCode); err != nil {
		c.logger.Debug().
			Str("method", method).
			Str("url", url).
			Int("status", resp.StatusCode).
			Msg("request failed")
		return err
	}

	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return apperrors.Networking(apperrors.KindDecodingError, fmt.Errorf("decoding response: %w", err))
	}
	return nil
}

// mapStatus converts a response status into a taxonomy outcome. 2xx maps
// to nil (caller decodes the body).
func mapStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusUnauthorized:
		return apperrors.Authentication(apperrors.KindUnauthorized)
	case code == http.StatusForbidden:
		return apperrors.Authentication(apperrors.KindTokenExpired)
	case code == http.StatusConflict:
		return apperrors.Authentication(apperrors.KindUserExists)
	case code == http.StatusUnprocessableEntity:
		return apperrors.Validation(apperrors.KindInvalidCredentials)
	default:
		return apperrors.ServerError(code)
	}
}

// classifyTransport maps transport-level failures into distinct networking
// kinds. A cancelled context is surfaced unchanged: cancellation is a
// terminal outcome for the caller, not a network condition.
func classifyTransport(err error) error {
	if errors.Is(err, context.Canceled) {
		return context.Canceled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return apperrors.Networking(apperrors.KindTimeout, err)
	}

	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return apperrors.Networking(apperrors.KindTimeout, err)
	}

	var opErr *net.OpError
	if errors.As(err, &opErr) {
		return apperrors.Networking(apperrors.KindNoConnection, err)
	}
	var dnsErr *net.DNSError
	if errors.As(err, &dnsErr) {
		return apperrors.Networking(apperrors.KindNoConnection, err)
	}

	return apperrors.Networking(apperrors.KindInvalidResponse, err)
}
