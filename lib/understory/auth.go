// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package understory

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/understory-cli/understory/lib/clock"
	"github.com/understory-cli/understory/lib/netutil"
	"github.com/understory-cli/understory/lib/version"
)

// RefreshBuffer is how long before the declared expiry a cached token
// is treated as expired.
const RefreshBuffer = 300 * time.Second

// Defaults for the token exchange.
const (
	DefaultTokenURL = "https://api.auth.understory.io/oauth2/token"
	DefaultAudience = "https://api.understory.io"
	DefaultScopes   = "openid experience.read event.read booking.read marketing.read"
)

// TokenConfig configures a [TokenSource].
type TokenConfig struct {
	// TokenURL is the OAuth2 token endpoint. Defaults to DefaultTokenURL.
	TokenURL string

	// Audience is sent as the audience form field. Defaults to
	// DefaultAudience.
	Audience string

	// Scopes is sent verbatim as the scope form field. An empty value
	// is sent as-is; callers wanting the default pass DefaultScopes.
	Scopes string

	ClientID     string
	ClientSecret string

	// HTTPClient performs the exchange. Defaults to http.DefaultClient.
	HTTPClient *http.Client

	// Clock is read once per exchange to compute the expiry. Defaults
	// to clock.Real().
	Clock clock.Clock

	// UserAgent defaults to version.UserAgent().
	UserAgent string
}

// TokenSource obtains and caches access tokens with the
// client-credentials grant. It is safe for concurrent use.
type TokenSource struct {
	tokenURL     string
	audience     string
	scopes       string
	clientID     string
	clientSecret string
	httpClient   *http.Client
	clock        clock.Clock
	userAgent    string

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewTokenSource creates a TokenSource with an empty cache.
func NewTokenSource(config TokenConfig) *TokenSource {
	source := &TokenSource{
		tokenURL:     config.TokenURL,
		audience:     config.Audience,
		scopes:       config.Scopes,
		clientID:     config.ClientID,
		clientSecret: config.ClientSecret,
		httpClient:   config.HTTPClient,
		clock:        config.Clock,
		userAgent:    config.UserAgent,
	}
	if source.tokenURL == "" {
		source.tokenURL = DefaultTokenURL
	}
	if source.audience == "" {
		source.audience = DefaultAudience
	}
	if source.httpClient == nil {
		source.httpClient = http.DefaultClient
	}
	if source.clock == nil {
		source.clock = clock.Real()
	}
	if source.userAgent == "" {
		source.userAgent = version.UserAgent()
	}
	return source
}

// Token returns a valid access token. A cached token is returned
// without any network call while the current time is more than
// RefreshBuffer before its expiry; otherwise one exchange is made and
// its result replaces the cache.
func (source *TokenSource) Token(ctx context.Context) (string, error) {
	if source.clientID == "" || source.clientSecret == "" {
		return "", ErrCredentialsMissing
	}

	source.mu.Lock()
	defer source.mu.Unlock()

	now := source.clock.Now()
	if source.token != "" && now.Before(source.expiresAt.Add(-RefreshBuffer)) {
		return source.token, nil
	}

	token, lifetime, err := source.exchange(ctx)
	if err != nil {
		return "", err
	}

	source.token = token
	source.expiresAt = now.Add(lifetime)
	return token, nil
}

// Reset discards the cached token. The next Token call performs an
// exchange.
func (source *TokenSource) Reset() {
	source.mu.Lock()
	defer source.mu.Unlock()
	source.token = ""
	source.expiresAt = time.Time{}
}

// exchange performs the client-credentials POST and returns the token
// and its declared lifetime. Must be called with source.mu held.
func (source *TokenSource) exchange(ctx context.Context) (string, time.Duration, error) {
	form := url.Values{
		"grant_type":    {"client_credentials"},
		"audience":      {source.audience},
		"scope":         {source.scopes},
		"client_id":     {source.clientID},
		"client_secret": {source.clientSecret},
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, source.tokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", 0, fmt.Errorf("understory: creating token request: %w", err)
	}
	request.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	request.Header.Set("Accept", "application/json")
	request.Header.Set("User-Agent", source.userAgent)

	response, err := source.httpClient.Do(request)
	if err != nil {
		return "", 0, fmt.Errorf("understory: token request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode < 200 || response.StatusCode >= 300 {
		return "", 0, &AuthError{
			StatusCode: response.StatusCode,
			Body:       netutil.ErrorBody(response.Body),
		}
	}

	var result struct {
		AccessToken string  `json:"access_token"`
		ExpiresIn   float64 `json:"expires_in"`
		TokenType   string  `json:"token_type"`
	}
	if err := netutil.DecodeResponse(response.Body, &result); err != nil {
		return "", 0, fmt.Errorf("understory: decoding token response: %w", err)
	}
	if result.AccessToken == "" {
		return "", 0, fmt.Errorf("understory: token response has no access_token")
	}

	return result.AccessToken, time.Duration(result.ExpiresIn * float64(time.Second)), nil
}
