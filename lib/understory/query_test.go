// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package understory

import "testing"

func TestBuildQuery(t *testing.T) {
	tests := []struct {
		name   string
		params Params
		want   string
	}{
		{name: "nil", params: nil, want: ""},
		{name: "all empty", params: Params{"from": "", "cursor": ""}, want: ""},
		{name: "drops empty values", params: Params{"from": "", "limit": "50"}, want: "limit=50"},
		{name: "sorted by key", params: Params{"to": "b", "from": "a", "limit": "5"}, want: "from=a&limit=5&to=b"},
		{name: "escapes values", params: Params{"cursor": "c/1+==&p"}, want: "cursor=c%2F1%2B%3D%3D%26p"},
		{name: "colons in timestamps", params: Params{"from": "2026-02-20T23:00:00Z"}, want: "from=2026-02-20T23%3A00%3A00Z"},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if got := BuildQuery(test.params); got != test.want {
				t.Errorf("BuildQuery(%v) = %q, want %q", test.params, got, test.want)
			}
		})
	}
}

func TestParams_SetInt(t *testing.T) {
	params := Params{}
	params.SetInt("limit", 0)
	params.SetInt("offset", -1)
	params.SetInt("hours", 24)

	if _, present := params["limit"]; present {
		t.Error("zero value was stored")
	}
	if _, present := params["offset"]; present {
		t.Error("negative value was stored")
	}
	if params["hours"] != "24" {
		t.Errorf("hours = %q, want 24", params["hours"])
	}
}

func TestParams_CloneIsIndependent(t *testing.T) {
	original := Params{"from": "a"}
	clone := original.Clone()
	clone["from"] = "b"
	clone["cursor"] = "c"

	if original["from"] != "a" {
		t.Errorf("original modified: %v", original)
	}
	if _, present := original["cursor"]; present {
		t.Errorf("original gained a key: %v", original)
	}
}
