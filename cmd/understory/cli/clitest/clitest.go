// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

// Package clitest runs understory commands against a fake API in
// tests.
package clitest

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/lib/clock"
	"github.com/understory-cli/understory/lib/config"
	"github.com/understory-cli/understory/lib/testutil"
)

// Harness is an App wired to a FakeAPI with captured output.
type Harness struct {
	App   *cli.App
	API   *testutil.FakeAPI
	Clock *clock.FakeClock

	Stdout *bytes.Buffer
	Stderr *bytes.Buffer
}

// New returns a Harness whose clock reads now and whose calendar is
// UTC. The config file points at the fake API and credentials come from
// a private environment, so the process environment is never read.
func New(t *testing.T, now time.Time) *Harness {
	t.Helper()

	api := testutil.NewFakeAPI(t)
	directory := t.TempDir()
	configPath := filepath.Join(directory, "understory.yaml")
	content := fmt.Sprintf("api:\n  base_url: %s\n  token_url: %s\noutput:\n  color: false\n",
		api.URL(), api.TokenURL())
	if err := os.WriteFile(configPath, []byte(content), 0o600); err != nil {
		t.Fatalf("writing config: %v", err)
	}

	env := map[string]string{
		config.EnvClientID:  "client-id",
		config.EnvSecretKey: "client-secret",
	}

	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	fakeClock := clock.Fake(now)
	app := cli.NewApp(stdout, stderr)
	app.DefaultConfigPath = configPath
	app.DotEnvPath = filepath.Join(directory, ".env")
	app.LookupEnv = func(name string) (string, bool) {
		value, ok := env[name]
		return value, ok
	}
	app.Clock = fakeClock
	app.Location = time.UTC
	app.HTTPClient = fakeOnlyClient(t, api)

	return &Harness{
		App:    app,
		API:    api,
		Clock:  fakeClock,
		Stdout: stdout,
		Stderr: stderr,
	}
}

// fakeOnlyClient returns a copy of the fake API's client that fails
// the test on any request addressed to another host.
func fakeOnlyClient(t *testing.T, api *testutil.FakeAPI) *http.Client {
	t.Helper()
	server, err := url.Parse(api.URL())
	if err != nil {
		t.Fatalf("parsing fake API URL: %v", err)
	}
	client := *api.HTTPClient()
	client.Transport = &hostGuard{t: t, host: server.Host, next: client.Transport}
	return &client
}

// hostGuard rejects requests whose host is not host.
type hostGuard struct {
	t    interface{ Errorf(format string, args ...any) }
	host string
	next http.RoundTripper
}

func (guard *hostGuard) RoundTrip(request *http.Request) (*http.Response, error) {
	if request.URL.Host != guard.host {
		guard.t.Errorf("request to %s bypassed the fake API at %s", request.URL, guard.host)
		return nil, fmt.Errorf("clitest: refusing request to %s", request.URL.Host)
	}
	return guard.next.RoundTrip(request)
}

// Run executes command with args.
func (h *Harness) Run(command *cli.Command, args ...string) error {
	return command.Execute(context.Background(), args, h.App.Logger())
}

// DecodeStdout unmarshals everything written to stdout into target.
func (h *Harness) DecodeStdout(t *testing.T, target any) {
	t.Helper()
	if err := json.Unmarshal(h.Stdout.Bytes(), target); err != nil {
		t.Fatalf("decoding stdout %q: %v", h.Stdout.String(), err)
	}
}
