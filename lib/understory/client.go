// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package understory

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"

	"github.com/understory-cli/understory/lib/clock"
	"github.com/understory-cli/understory/lib/netutil"
	"github.com/understory-cli/understory/lib/version"
)

// DefaultBaseURL is the root URL of the public Understory API.
const DefaultBaseURL = "https://api.understory.io"

// Config holds configuration for creating a [Client].
type Config struct {
	// BaseURL is the root URL for API requests. Defaults to
	// DefaultBaseURL. Must use HTTPS.
	BaseURL string

	// TokenURL, Audience and Scopes configure the token exchange. See
	// [TokenConfig].
	TokenURL string
	Audience string
	Scopes   string

	ClientID     string
	ClientSecret string

	// HTTPClient is used for all HTTP requests, the token exchange
	// included. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Clock provides time for token expiry. Defaults to clock.Real().
	Clock clock.Clock

	// Logger receives one debug record per request. Defaults to
	// slog.Default().
	Logger *slog.Logger

	// UserAgent defaults to version.UserAgent().
	UserAgent string
}

// Client is an authenticated, read-only Understory API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	tokens     *TokenSource
	userAgent  string
	clock      clock.Clock
	logger     *slog.Logger
}

// NewClient creates an API client. Returns an error if either URL does
// not use HTTPS. Missing credentials are not detected here; the first
// request fails with ErrCredentialsMissing instead.
func NewClient(config Config) (*Client, error) {
	baseURL := config.BaseURL
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	baseURL = strings.TrimRight(baseURL, "/")
	if !strings.HasPrefix(baseURL, "https://") {
		return nil, fmt.Errorf("understory: API client requires HTTPS (got %q)", baseURL)
	}

	tokenURL := config.TokenURL
	if tokenURL == "" {
		tokenURL = DefaultTokenURL
	}
	if !strings.HasPrefix(tokenURL, "https://") {
		return nil, fmt.Errorf("understory: token endpoint requires HTTPS (got %q)", tokenURL)
	}

	httpClient := config.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	clk := config.Clock
	if clk == nil {
		clk = clock.Real()
	}

	logger := config.Logger
	if logger == nil {
		logger = slog.Default()
	}

	userAgent := config.UserAgent
	if userAgent == "" {
		userAgent = version.UserAgent()
	}

	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
		tokens: NewTokenSource(TokenConfig{
			TokenURL:     tokenURL,
			Audience:     config.Audience,
			Scopes:       config.Scopes,
			ClientID:     config.ClientID,
			ClientSecret: config.ClientSecret,
			HTTPClient:   httpClient,
			Clock:        clk,
			UserAgent:    userAgent,
		}),
		userAgent: userAgent,
		clock:     clk,
		logger:    logger,
	}, nil
}

// Tokens returns the client's token source.
func (client *Client) Tokens() *TokenSource {
	return client.tokens
}

// Request carries the optional parts of a GET request.
type Request struct {
	// Params become the query string via BuildQuery.
	Params Params

	// Header entries are added after the fixed headers and replace
	// them when the names collide.
	Header http.Header
}

// Get issues an authenticated GET for path (relative to the base URL,
// e.g. "/v1/events") and returns the response body unvalidated.
//
// On a non-2xx response the body is decoded as JSON if possible, kept
// as text otherwise, and returned inside an *APIError.
func (client *Client) Get(ctx context.Context, path string, request Request) (json.RawMessage, error) {
	token, err := client.tokens.Token(ctx)
	if err != nil {
		return nil, err
	}

	target := client.baseURL + path
	if query := BuildQuery(request.Params); query != "" {
		target += "?" + query
	}

	httpRequest, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
	if err != nil {
		return nil, fmt.Errorf("understory: creating request: %w", err)
	}

	requestID := uuid.NewString()
	httpRequest.Header.Set("Authorization", "Bearer "+token)
	httpRequest.Header.Set("Content-Type", "application/json")
	httpRequest.Header.Set("Accept", "application/json")
	httpRequest.Header.Set("User-Agent", client.userAgent)
	httpRequest.Header.Set("X-Request-ID", requestID)
	for name, values := range request.Header {
		httpRequest.Header.Del(name)
		for _, value := range values {
			httpRequest.Header.Add(name, value)
		}
	}

	started := client.clock.Now()
	response, err := client.httpClient.Do(httpRequest)
	if err != nil {
		return nil, fmt.Errorf("understory: GET %s: %w", path, err)
	}
	defer response.Body.Close()

	body, err := netutil.ReadResponse(response.Body)
	if err != nil {
		return nil, fmt.Errorf("understory: reading response body: %w", err)
	}

	client.logger.Debug("api request",
		"method", http.MethodGet,
		"path", path,
		"query", httpRequest.URL.RawQuery,
		"status", response.StatusCode,
		"request_id", requestID,
		"elapsed", client.clock.Now().Sub(started),
	)

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return nil, &APIError{
			StatusCode: response.StatusCode,
			Status:     statusText(response),
			Body:       netutil.JSONOrText(body),
			RequestID:  requestID,
		}
	}

	return json.RawMessage(body), nil
}

// GetJSON issues a GET like [Client.Get] and decodes the body into result.
func (client *Client) GetJSON(ctx context.Context, path string, request Request, result any) error {
	body, err := client.Get(ctx, path, request)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, result); err != nil {
		return fmt.Errorf("understory: decoding %s response: %w", path, err)
	}
	return nil
}

// statusText extracts the reason phrase from the status line ("404 Not
// Found" yields "Not Found"), falling back to the standard text.
func statusText(response *http.Response) string {
	text := strings.TrimSpace(strings.TrimPrefix(response.Status, strconv.Itoa(response.StatusCode)))
	if text == "" {
		text = http.StatusText(response.StatusCode)
	}
	return text
}
