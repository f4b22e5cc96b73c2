// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package events

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/cmd/understory/cli/clitest"
	"github.com/understory-cli/understory/lib/understory"
)

var wednesday = time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)

func TestList_SendsNormalizedQuery(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON(understory.PathEvents, http.StatusOK, `{"items":[{"id":"e1"}],"next":"n/1"}`)

	err := h.Run(Command(h.App), "list",
		"--from", "2026-02-18T10:00:00",
		"--to", "2026-02-18T12:00:00+01:00",
		"--limit", "20",
		"--cursor", "c/1+==")
	if err != nil {
		t.Fatalf("events list: %v", err)
	}

	requests := h.API.Requests(understory.PathEvents)
	if len(requests) != 1 {
		t.Fatalf("requests = %d, want 1", len(requests))
	}
	query := requests[0].Query
	want := map[string]string{
		"from":   "2026-02-18T10:00:00Z",
		"to":     "2026-02-18T11:00:00Z",
		"limit":  "20",
		"cursor": "c/1+==",
	}
	for key, value := range want {
		if got := query.Get(key); got != value {
			t.Errorf("query %s = %q, want %q", key, got, value)
		}
	}

	var page understory.Page[json.RawMessage]
	h.DecodeStdout(t, &page)
	if len(page.Items) != 1 || page.Next != "n/1" {
		t.Errorf("output = %+v, want one item and the API's next cursor", page)
	}
}

func TestList_DefaultLimitAndNoDates(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON(understory.PathEvents, http.StatusOK, `{"items":[]}`)

	if err := h.Run(Command(h.App), "list"); err != nil {
		t.Fatalf("events list: %v", err)
	}
	query := h.API.Requests(understory.PathEvents)[0].Query
	if query.Get("limit") != "100" {
		t.Errorf("limit = %q, want 100", query.Get("limit"))
	}
	for _, key := range []string{"from", "to", "cursor"} {
		if query.Has(key) {
			t.Errorf("query carries %s=%q, want it omitted", key, query.Get(key))
		}
	}
}

func TestList_InvalidDateMakesNoRequest(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON(understory.PathEvents, http.StatusOK, `{"items":[]}`)

	err := h.Run(Command(h.App), "list", "--from", "next tuesday")
	if err == nil {
		t.Fatal("events list accepted an unparseable date")
	}
	if category := cli.Categorize(err); category != cli.CategoryValidation {
		t.Errorf("category = %s, want validation", category)
	}
	if requests := h.API.Requests(understory.PathEvents); len(requests) != 0 {
		t.Errorf("requests = %d, want none", len(requests))
	}
}

func TestList_AllCollectsEveryPage(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServePages(understory.PathEvents, `[{"id":"e1"},{"id":"e2"}]`, `[{"id":"e3"}]`)

	if err := h.Run(Command(h.App), "list", "--all"); err != nil {
		t.Fatalf("events list --all: %v", err)
	}

	var output map[string]json.RawMessage
	h.DecodeStdout(t, &output)
	if _, ok := output["next"]; ok {
		t.Error("collected output carries a next cursor")
	}
	var items []json.RawMessage
	if err := json.Unmarshal(output["items"], &items); err != nil {
		t.Fatalf("decoding items: %v", err)
	}
	if len(items) != 3 {
		t.Errorf("items = %d, want 3", len(items))
	}
}

func TestGet_EscapesID(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON("/v1/events/{id}", http.StatusOK, `{"id":"a b"}`)

	if err := h.Run(Command(h.App), "get", "a b"); err != nil {
		t.Fatalf("events get: %v", err)
	}
	requests := h.API.Requests("/v1/events/a b")
	if len(requests) != 1 {
		t.Fatalf("requests for the decoded path = %d, want 1", len(requests))
	}
}

func TestGet_RequiresID(t *testing.T) {
	h := clitest.New(t, wednesday)
	err := h.Run(Command(h.App), "get")
	if cli.Categorize(err) != cli.CategoryValidation {
		t.Errorf("events get without id: %v, want a validation error", err)
	}
}

func TestGet_NotFound(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON("/v1/events/{id}", http.StatusNotFound, `{"message":"no such event"}`)

	err := h.Run(Command(h.App), "get", "missing")
	if !understory.IsNotFound(err) {
		t.Fatalf("events get: %v, want a 404 API error", err)
	}
	if cli.ExitCodeFor(err) != cli.ExitFailure {
		t.Errorf("exit code = %d, want %d", cli.ExitCodeFor(err), cli.ExitFailure)
	}
}

func TestNext_UsesWindowFromNow(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON(understory.PathEvents, http.StatusOK, `{"items":[{"id":"e1"}],"next":"ignored"}`)

	if err := h.Run(Command(h.App), "next", "--hours", "8", "--limit", "3"); err != nil {
		t.Fatalf("events next: %v", err)
	}

	query := h.API.Requests(understory.PathEvents)[0].Query
	if query.Get("from") != "2026-02-18T09:00:00Z" || query.Get("to") != "2026-02-18T17:00:00Z" {
		t.Errorf("window = %s..%s", query.Get("from"), query.Get("to"))
	}
	if query.Get("limit") != "3" {
		t.Errorf("limit = %q, want 3", query.Get("limit"))
	}

	var output nextResult
	h.DecodeStdout(t, &output)
	if len(output.Items) != 1 || output.From != "2026-02-18T09:00:00Z" || output.To != "2026-02-18T17:00:00Z" {
		t.Errorf("output = %+v", output)
	}
}

func TestNext_EmptyWindowPrintsEmptyList(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON(understory.PathEvents, http.StatusOK, `{}`)

	if err := h.Run(Command(h.App), "next"); err != nil {
		t.Fatalf("events next: %v", err)
	}
	var output map[string]json.RawMessage
	h.DecodeStdout(t, &output)
	if string(output["items"]) != "[]" {
		t.Errorf("items = %s, want []", output["items"])
	}
}

func TestNext_RejectsNonPositiveHours(t *testing.T) {
	h := clitest.New(t, wednesday)
	err := h.Run(Command(h.App), "next", "--hours", "0")
	if cli.Categorize(err) != cli.CategoryValidation {
		t.Errorf("events next --hours 0: %v, want a validation error", err)
	}
}
