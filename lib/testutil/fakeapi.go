// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package testutil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"

	"github.com/go-chi/chi/v5"
)

// TokenPath is the token endpoint path on a FakeAPI server.
const TokenPath = "/oauth2/token"

// RecordedRequest is one resource request received by a FakeAPI.
type RecordedRequest struct {
	Path   string
	Query  url.Values
	Header http.Header
}

// FakeAPI is an in-process Understory API for tests.
type FakeAPI struct {
	Server *httptest.Server
	Router chi.Router

	t testing.TB

	mu           sync.Mutex
	tokenForms   []url.Values
	tokenStatus  int
	tokenBody    string
	expiresIn    int
	issuedTokens map[string]bool
	requests     []RecordedRequest
}

// NewFakeAPI starts a TLS server that issues tokens valid for one hour.
// The server is closed when the test completes.
func NewFakeAPI(t testing.TB) *FakeAPI {
	t.Helper()

	api := &FakeAPI{
		Router:       chi.NewRouter(),
		t:            t,
		expiresIn:    3600,
		issuedTokens: make(map[string]bool),
	}
	api.Router.Post(TokenPath, api.handleToken)
	api.Server = httptest.NewTLSServer(api.Router)
	t.Cleanup(api.Server.Close)
	return api
}

// URL returns the server's base URL.
func (api *FakeAPI) URL() string { return api.Server.URL }

// TokenURL returns the full token endpoint URL.
func (api *FakeAPI) TokenURL() string { return api.Server.URL + TokenPath }

// HTTPClient returns a client that trusts the server's certificate.
func (api *FakeAPI) HTTPClient() *http.Client { return api.Server.Client() }

// SetExpiresIn sets the expires_in value of subsequently issued tokens.
func (api *FakeAPI) SetExpiresIn(seconds int) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.expiresIn = seconds
}

// FailTokens makes the token endpoint answer with status and body.
func (api *FakeAPI) FailTokens(status int, body string) {
	api.mu.Lock()
	defer api.mu.Unlock()
	api.tokenStatus = status
	api.tokenBody = body
}

// TokenRequests returns the decoded form bodies of every token request.
func (api *FakeAPI) TokenRequests() []url.Values {
	api.mu.Lock()
	defer api.mu.Unlock()
	return append([]url.Values(nil), api.tokenForms...)
}

// Requests returns every authenticated request made to path, in order.
func (api *FakeAPI) Requests(path string) []RecordedRequest {
	api.mu.Lock()
	defer api.mu.Unlock()
	var matched []RecordedRequest
	for _, request := range api.requests {
		if request.Path == path {
			matched = append(matched, request)
		}
	}
	return matched
}

// ServeJSON answers GET path with status and a literal body.
func (api *FakeAPI) ServeJSON(path string, status int, body string) {
	api.Router.With(api.authenticate).Get(path, func(writer http.ResponseWriter, _ *http.Request) {
		writer.Header().Set("Content-Type", "application/json")
		writer.WriteHeader(status)
		fmt.Fprint(writer, body)
	})
}

// ServePages answers GET path as a paged collection. Each element of
// pages is the JSON array of items for one page. Every page but the
// last carries a next cursor; the cursors contain characters that must
// survive query encoding, so a client that rewrites them fails to find
// the following page.
func (api *FakeAPI) ServePages(path string, pages ...string) {
	cursors := make(map[string]int, len(pages))
	for index := 1; index < len(pages); index++ {
		cursors[PageCursor(index)] = index
	}

	api.Router.With(api.authenticate).Get(path, func(writer http.ResponseWriter, request *http.Request) {
		index := 0
		if cursor := request.URL.Query().Get("cursor"); cursor != "" {
			var ok bool
			index, ok = cursors[cursor]
			if !ok {
				http.Error(writer, `{"message":"unknown cursor"}`, http.StatusBadRequest)
				return
			}
		}

		page := map[string]json.RawMessage{"items": json.RawMessage(pages[index])}
		if index+1 < len(pages) {
			next, _ := json.Marshal(PageCursor(index + 1))
			page["next"] = next
		}
		writer.Header().Set("Content-Type", "application/json")
		if err := json.NewEncoder(writer).Encode(page); err != nil {
			api.t.Errorf("encoding page %d of %s: %v", index, path, err)
		}
	})
}

// PageCursor is the cursor ServePages hands out for page index.
func PageCursor(index int) string {
	return fmt.Sprintf("c/%d+==&p", index)
}

// authenticate records the request and rejects bearer tokens that this
// server did not issue.
func (api *FakeAPI) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(writer http.ResponseWriter, request *http.Request) {
		token, ok := strings.CutPrefix(request.Header.Get("Authorization"), "Bearer ")

		api.mu.Lock()
		api.requests = append(api.requests, RecordedRequest{
			Path:   request.URL.Path,
			Query:  request.URL.Query(),
			Header: request.Header.Clone(),
		})
		valid := ok && api.issuedTokens[token]
		api.mu.Unlock()

		if !valid {
			http.Error(writer, `{"message":"invalid token"}`, http.StatusUnauthorized)
			return
		}
		next.ServeHTTP(writer, request)
	})
}

func (api *FakeAPI) handleToken(writer http.ResponseWriter, request *http.Request) {
	if err := request.ParseForm(); err != nil {
		http.Error(writer, err.Error(), http.StatusBadRequest)
		return
	}

	api.mu.Lock()
	api.tokenForms = append(api.tokenForms, request.PostForm)
	status, body, expiresIn := api.tokenStatus, api.tokenBody, api.expiresIn
	api.mu.Unlock()

	if status != 0 {
		writer.WriteHeader(status)
		fmt.Fprint(writer, body)
		return
	}
	if request.PostForm.Get("grant_type") != "client_credentials" {
		http.Error(writer, "unsupported_grant_type", http.StatusBadRequest)
		return
	}

	token := UniqueID("token")
	api.mu.Lock()
	api.issuedTokens[token] = true
	api.mu.Unlock()

	writer.Header().Set("Content-Type", "application/json")
	json.NewEncoder(writer).Encode(map[string]any{
		"access_token": token,
		"expires_in":   expiresIn,
		"token_type":   "Bearer",
	})
}
