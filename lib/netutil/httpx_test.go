// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package netutil

import (
	"bytes"
	"fmt"
	"testing"
)

func TestReadResponse(t *testing.T) {
	t.Run("normal body", func(t *testing.T) {
		data, err := ReadResponse(bytes.NewReader([]byte(`{"status":"ok"}`)))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if string(data) != `{"status":"ok"}` {
			t.Fatalf("got %q, want %q", data, `{"status":"ok"}`)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		data, err := ReadResponse(bytes.NewReader(nil))
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(data) != 0 {
			t.Fatalf("expected empty, got %d bytes", len(data))
		}
	})

	t.Run("read error propagates", func(t *testing.T) {
		_, err := ReadResponse(&failReader{})
		if err == nil {
			t.Fatal("expected error from failing reader")
		}
	})
}

func TestDecodeResponse(t *testing.T) {
	t.Run("valid JSON", func(t *testing.T) {
		body := bytes.NewReader([]byte(`{"name":"test","count":42}`))
		var result struct {
			Name  string `json:"name"`
			Count int    `json:"count"`
		}
		if err := DecodeResponse(body, &result); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if result.Name != "test" {
			t.Fatalf("name: got %q, want %q", result.Name, "test")
		}
		if result.Count != 42 {
			t.Fatalf("count: got %d, want %d", result.Count, 42)
		}
	})

	t.Run("invalid JSON", func(t *testing.T) {
		if err := DecodeResponse(bytes.NewReader([]byte(`not json`)), &struct{}{}); err == nil {
			t.Fatal("expected error for invalid JSON")
		}
	})

	t.Run("read error propagates", func(t *testing.T) {
		if err := DecodeResponse(&failReader{}, &struct{}{}); err == nil {
			t.Fatal("expected error from failing reader")
		}
	})
}

func TestErrorBody(t *testing.T) {
	t.Run("returns body as string", func(t *testing.T) {
		got := ErrorBody(bytes.NewReader([]byte(`{"message":"invalid_client"}`)))
		if got != `{"message":"invalid_client"}` {
			t.Fatalf("got %q, want %q", got, `{"message":"invalid_client"}`)
		}
	})

	t.Run("empty body", func(t *testing.T) {
		if got := ErrorBody(bytes.NewReader(nil)); got != "" {
			t.Fatalf("expected empty, got %q", got)
		}
	})

	t.Run("read error returns empty", func(t *testing.T) {
		if got := ErrorBody(&failReader{}); got != "" {
			t.Fatalf("expected empty from failing reader, got %q", got)
		}
	})
}

func TestJSONOrText(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "object", body: `{"message":"nope"}`, want: "map[message:nope]"},
		{name: "array", body: `[1,2]`, want: "[1 2]"},
		{name: "plain text", body: "Bad Gateway", want: "Bad Gateway"},
		{name: "truncated JSON", body: `{"message":`, want: `{"message":`},
		{name: "empty", body: "", want: ""},
		{name: "whitespace", body: "  \n", want: ""},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := fmt.Sprint(JSONOrText([]byte(test.body)))
			if got != test.want {
				t.Errorf("JSONOrText(%q) = %q, want %q", test.body, got, test.want)
			}
		})
	}
}

// failReader always returns an error on Read.
type failReader struct{}

func (*failReader) Read([]byte) (int, error) {
	return 0, fmt.Errorf("simulated read failure")
}
