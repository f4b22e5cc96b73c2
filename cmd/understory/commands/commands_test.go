// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package commands

import (
	"encoding/json"
	"net/http"
	"strings"
	"testing"
	"time"

	"github.com/understory-cli/understory/cmd/understory/cli"
	"github.com/understory-cli/understory/cmd/understory/cli/clitest"
	"github.com/understory-cli/understory/lib/understory"
	"github.com/understory-cli/understory/lib/version"
)

var wednesday = time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)

func TestDescribe_ListsEveryRunnableCommand(t *testing.T) {
	h := clitest.New(t, wednesday)
	if err := h.Run(Root(h.App), "describe"); err != nil {
		t.Fatalf("describe: %v", err)
	}

	var output struct {
		Commands []struct {
			Command     string               `json:"command"`
			Annotations *cli.ToolAnnotations `json:"annotations"`
			InputSchema cli.Schema           `json:"input_schema"`
		} `json:"commands"`
	}
	h.DecodeStdout(t, &output)

	byName := make(map[string]int, len(output.Commands))
	for index, entry := range output.Commands {
		byName[entry.Command] = index
		if entry.Annotations == nil {
			t.Errorf("%s: no annotations", entry.Command)
		}
	}
	for _, name := range []string{
		"understory me",
		"understory events list",
		"understory availability day",
		"understory bookings for-date",
		"understory orders refunds",
		"understory stats busiest",
		"understory version",
		"understory describe",
	} {
		if _, ok := byName[name]; !ok {
			t.Errorf("catalog has no %q", name)
		}
	}
	if _, ok := byName["understory"]; ok {
		t.Error("catalog lists the root command")
	}

	guests := output.Commands[byName["understory stats guests"]].InputSchema
	for _, property := range []string{"from", "to", "period", "month"} {
		if guests.Properties[property] == nil {
			t.Errorf("stats guests schema has no %q property", property)
		}
	}
	events := output.Commands[byName["understory events list"]].InputSchema
	if limit := events.Properties["limit"]; limit == nil || limit.Default != float64(100) {
		t.Errorf("events list limit schema = %+v, want default 100", limit)
	}
}

func TestVersion(t *testing.T) {
	t.Run("text", func(t *testing.T) {
		h := clitest.New(t, wednesday)
		if err := h.Run(Root(h.App), "version"); err != nil {
			t.Fatalf("version: %v", err)
		}
		if !strings.HasPrefix(h.Stdout.String(), "understory "+version.Short()) {
			t.Errorf("version output = %q", h.Stdout.String())
		}
	})
	t.Run("json", func(t *testing.T) {
		h := clitest.New(t, wednesday)
		if err := h.Run(Root(h.App), "-f", "json", "version"); err != nil {
			t.Fatalf("version: %v", err)
		}
		var output versionInfo
		h.DecodeStdout(t, &output)
		if output.Version != version.Short() || output.UserAgent != version.UserAgent() {
			t.Errorf("version output = %+v", output)
		}
	})
}

func TestRoot_GlobalFormatPrecedesSubcommandFlags(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON(understory.PathEvents, http.StatusOK, `{"items":[{"id":"e1","capacity":{"total":8}}],"next":"c2"}`)

	err := h.Run(Root(h.App), "-f", "table", "events", "list", "-f", "2026-02-18T00:00:00")
	if err != nil {
		t.Fatalf("events list: %v", err)
	}

	query := h.API.Requests(understory.PathEvents)[0].Query
	if query.Get("from") != "2026-02-18T00:00:00Z" {
		t.Errorf("subcommand -f was not read as --from: %v", query)
	}
	output := h.Stdout.String()
	if !strings.HasPrefix(output, "id ") || !strings.Contains(output, "Next page cursor: c2") {
		t.Errorf("table output = %q", output)
	}
}

func TestRoot_KeepsEmbedderConfig(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON(understory.PathMe, http.StatusOK, `{"company":"Fjord Tours"}`)

	// Global flag parsing resets Globals; the config file must survive.
	for _, args := range [][]string{{"me"}, {"-f", "yaml", "me"}} {
		if err := h.Run(Root(h.App), args...); err != nil {
			t.Fatalf("%v: %v", args, err)
		}
	}
	if got := len(h.API.Requests(understory.PathMe)); got != 2 {
		t.Errorf("fake API saw %d /v1/me requests, want 2", got)
	}
	if got := len(h.API.TokenRequests()); got != 1 {
		t.Errorf("fake API issued %d tokens, want 1", got)
	}
}

func TestRoot_RejectsUnknownFormat(t *testing.T) {
	h := clitest.New(t, wednesday)
	err := h.Run(Root(h.App), "--format", "xml", "me")
	if cli.Categorize(err) != cli.CategoryValidation {
		t.Errorf("--format xml: %v, want a validation error", err)
	}
	if len(h.API.TokenRequests()) != 0 {
		t.Error("token requested despite an invalid --format")
	}
}

func TestRoot_SuggestsCommand(t *testing.T) {
	h := clitest.New(t, wednesday)
	err := h.Run(Root(h.App), "evnets")
	if err == nil || !strings.Contains(err.Error(), `did you mean "events"`) {
		t.Errorf("unknown command error = %v, want a suggestion", err)
	}
}

func TestRoot_VerboseLogsRequests(t *testing.T) {
	h := clitest.New(t, wednesday)
	h.API.ServeJSON(understory.PathMe, http.StatusOK, `{}`)

	if err := h.Run(Root(h.App), "--verbose", "me"); err != nil {
		t.Fatalf("me: %v", err)
	}
	var logged map[string]any
	for _, line := range strings.Split(strings.TrimSpace(h.Stderr.String()), "\n") {
		if err := json.Unmarshal([]byte(line), &logged); err == nil && logged["msg"] == "api request" {
			if logged["path"] != understory.PathMe {
				t.Errorf("logged path = %v", logged["path"])
			}
			return
		}
	}
	t.Errorf("no api request log line in stderr %q", h.Stderr.String())
}
