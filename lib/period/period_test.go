// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package period

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/understory-cli/understory/lib/clock"
)

// cet is a fixed UTC+1 zone so expectations do not depend on the host.
var cet = time.FixedZone("CET", 60*60)

// wednesday is 2026-02-18 10:00 in cet.
var wednesday = time.Date(2026, 2, 18, 9, 0, 0, 0, time.UTC)

func TestPeriod(t *testing.T) {
	tests := []struct {
		name     string
		now      time.Time
		location *time.Location
		period   string
		want     Range
	}{
		{
			name: "today UTC", now: wednesday, location: time.UTC, period: "today",
			want: Range{"2026-02-18T00:00:00Z", "2026-02-19T00:00:00Z"},
		},
		{
			name: "today local midnight", now: wednesday, location: cet, period: "today",
			want: Range{"2026-02-17T23:00:00Z", "2026-02-18T23:00:00Z"},
		},
		{
			name: "today after local midnight", now: time.Date(2026, 2, 18, 23, 30, 0, 0, time.UTC), location: cet, period: "today",
			want: Range{"2026-02-18T23:00:00Z", "2026-02-19T23:00:00Z"},
		},
		{
			name: "tomorrow", now: wednesday, location: cet, period: "tomorrow",
			want: Range{"2026-02-18T23:00:00Z", "2026-02-19T23:00:00Z"},
		},
		{
			name: "this-week on wednesday", now: wednesday, location: cet, period: "this-week",
			want: Range{"2026-02-15T23:00:00Z", "2026-02-22T23:00:00Z"},
		},
		{
			name: "next-week on wednesday", now: wednesday, location: cet, period: "next-week",
			want: Range{"2026-02-22T23:00:00Z", "2026-03-01T23:00:00Z"},
		},
		{
			name: "this-week on monday", now: time.Date(2026, 2, 16, 12, 0, 0, 0, time.UTC), location: time.UTC, period: "this-week",
			want: Range{"2026-02-16T00:00:00Z", "2026-02-23T00:00:00Z"},
		},
		{
			name: "this-week on sunday", now: time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC), location: time.UTC, period: "this-week",
			want: Range{"2026-02-16T00:00:00Z", "2026-02-23T00:00:00Z"},
		},
		{
			name: "next-week on sunday", now: time.Date(2026, 2, 22, 12, 0, 0, 0, time.UTC), location: time.UTC, period: "next-week",
			want: Range{"2026-02-23T00:00:00Z", "2026-03-02T00:00:00Z"},
		},
		{
			name: "this-month", now: wednesday, location: cet, period: "this-month",
			want: Range{"2026-01-31T23:00:00Z", "2026-02-28T23:00:00Z"},
		},
		{
			name: "this-month in december", now: time.Date(2025, 12, 5, 0, 0, 0, 0, time.UTC), location: time.UTC, period: "this-month",
			want: Range{"2025-12-01T00:00:00Z", "2026-01-01T00:00:00Z"},
		},
		{
			name: "last-month in january", now: time.Date(2026, 1, 10, 0, 0, 0, 0, time.UTC), location: time.UTC, period: "last-month",
			want: Range{"2025-12-01T00:00:00Z", "2026-01-01T00:00:00Z"},
		},
		{
			name: "case insensitive", now: wednesday, location: time.UTC, period: "Next-Week",
			want: Range{"2026-02-23T00:00:00Z", "2026-03-02T00:00:00Z"},
		},
		{
			name: "sub-second clock truncated", now: time.Date(2026, 2, 18, 9, 0, 0, 500, time.UTC), location: time.UTC, period: "today",
			want: Range{"2026-02-18T00:00:00Z", "2026-02-19T00:00:00Z"},
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			resolver := NewResolver(clock.Fake(test.now), test.location)
			got, err := resolver.Period(test.period)
			if err != nil {
				t.Fatalf("Period(%q): %v", test.period, err)
			}
			if got != test.want {
				t.Errorf("Period(%q) = %+v, want %+v", test.period, got, test.want)
			}
		})
	}
}

func TestPeriod_Unknown(t *testing.T) {
	resolver := NewResolver(clock.Fake(wednesday), time.UTC)
	for _, name := range []string{"", "yesterday", "this week", "next-month"} {
		_, err := resolver.Period(name)
		if !errors.Is(err, ErrInvalidPeriod) {
			t.Errorf("Period(%q) error = %v, want ErrInvalidPeriod", name, err)
			continue
		}
		if !strings.Contains(err.Error(), "this-week") {
			t.Errorf("Period(%q) error %q does not list the valid names", name, err)
		}
	}
}

func TestMonth(t *testing.T) {
	resolver := NewResolver(clock.Fake(wednesday), time.UTC)

	got, err := resolver.Month("2026-02")
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	if want := (Range{"2026-02-01T00:00:00Z", "2026-03-01T00:00:00Z"}); got != want {
		t.Errorf("Month(2026-02) = %+v, want %+v", got, want)
	}

	got, err = resolver.Month("2025-12")
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	if want := (Range{"2025-12-01T00:00:00Z", "2026-01-01T00:00:00Z"}); got != want {
		t.Errorf("Month(2025-12) = %+v, want %+v", got, want)
	}
}

func TestMonth_LocalBounds(t *testing.T) {
	resolver := NewResolver(clock.Fake(wednesday), cet)
	got, err := resolver.Month("2026-02")
	if err != nil {
		t.Fatalf("Month: %v", err)
	}
	if want := (Range{"2026-01-31T23:00:00Z", "2026-02-28T23:00:00Z"}); got != want {
		t.Errorf("Month(2026-02) = %+v, want %+v", got, want)
	}
}

func TestMonth_Invalid(t *testing.T) {
	tests := []struct {
		value      string
		wantDetail string
	}{
		{"2026-13", "month must be 01-12"},
		{"2026-00", "month must be 01-12"},
		{"2026-2", "use YYYY-MM"},
		{"26-02", "use YYYY-MM"},
		{"2026-02-01", "use YYYY-MM"},
		{"february", "use YYYY-MM"},
		{"", "use YYYY-MM"},
	}

	resolver := NewResolver(clock.Fake(wednesday), time.UTC)
	for _, test := range tests {
		_, err := resolver.Month(test.value)
		if !errors.Is(err, ErrInvalidMonthFormat) {
			t.Errorf("Month(%q) error = %v, want ErrInvalidMonthFormat", test.value, err)
			continue
		}
		if !strings.Contains(err.Error(), test.wantDetail) {
			t.Errorf("Month(%q) error = %q, want it to contain %q", test.value, err, test.wantDetail)
		}
	}
}

func TestDay(t *testing.T) {
	resolver := NewResolver(clock.Fake(wednesday), cet)

	got, err := resolver.Day("2026-02-21")
	if err != nil {
		t.Fatalf("Day: %v", err)
	}
	if want := (Range{"2026-02-20T23:00:00Z", "2026-02-21T23:00:00Z"}); got != want {
		t.Errorf("Day = %+v, want %+v", got, want)
	}

	for _, value := range []string{"2026-02-30", "21-02-2026", "2026-02-21T00:00:00", ""} {
		if _, err := resolver.Day(value); !errors.Is(err, ErrInvalidDate) {
			t.Errorf("Day(%q) error = %v, want ErrInvalidDate", value, err)
		}
	}
}

func TestLocalDateAndWindow(t *testing.T) {
	fake := clock.Fake(time.Date(2026, 2, 18, 23, 30, 15, 999, time.UTC))
	resolver := NewResolver(fake, cet)

	if got := resolver.LocalDate(0); got != "2026-02-19" {
		t.Errorf("LocalDate(0) = %q, want 2026-02-19", got)
	}
	if got := resolver.LocalDate(1); got != "2026-02-20" {
		t.Errorf("LocalDate(1) = %q, want 2026-02-20", got)
	}

	window := resolver.Window(24 * time.Hour)
	if want := (Range{"2026-02-18T23:30:15Z", "2026-02-19T23:30:15Z"}); window != want {
		t.Errorf("Window = %+v, want %+v", window, want)
	}
}

func TestNormalizeDatetime(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  string
	}{
		{"positive offset", "2026-02-21T00:00:00+01:00", "2026-02-20T23:00:00Z"},
		{"negative offset", "2026-02-20T19:00:00-05:00", "2026-02-21T00:00:00Z"},
		{"already UTC", "2026-02-21T00:00:00Z", "2026-02-21T00:00:00Z"},
		{"fraction dropped", "2026-02-21T00:00:00.789Z", "2026-02-21T00:00:00Z"},
		{"minutes with offset", "2026-02-21T10:30+02:00", "2026-02-21T08:30:00Z"},
		{"no offset is local", "2026-02-21T00:00:00", "2026-02-20T23:00:00Z"},
		{"no offset minutes", "2026-02-21T10:30", "2026-02-21T09:30:00Z"},
		{"no offset fraction", "2026-02-21T10:30:00.5", "2026-02-21T09:30:00Z"},
		{"date only is UTC", "2026-02-21", "2026-02-21T00:00:00Z"},
		{"year-month is UTC", "2026-02", "2026-02-01T00:00:00Z"},
		{"year is UTC", "2026", "2026-01-01T00:00:00Z"},
		{"lowercase z", "2026-02-21T00:00:00z", "2026-02-21T00:00:00Z"},
		{"lowercase t", "2026-02-21t10:30", "2026-02-21T09:30:00Z"},
	}

	resolver := NewResolver(clock.Fake(wednesday), cet)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := resolver.NormalizeDatetime(test.value)
			if err != nil {
				t.Fatalf("NormalizeDatetime(%q): %v", test.value, err)
			}
			if got != test.want {
				t.Errorf("NormalizeDatetime(%q) = %q, want %q", test.value, got, test.want)
			}
		})
	}
}

func TestNormalizeDatetime_Invalid(t *testing.T) {
	resolver := NewResolver(clock.Fake(wednesday), time.UTC)
	for _, value := range []string{"not-a-date", "", "2026-02-30T00:00:00Z", "2026-02-21 00:00:00", "tomorrow", "2026-13", "26"} {
		_, err := resolver.NormalizeDatetime(value)
		if !errors.Is(err, ErrInvalidDatetime) {
			t.Errorf("NormalizeDatetime(%q) error = %v, want ErrInvalidDatetime", value, err)
		}
	}
}

func TestNormalizeDatetime_PackageLevel(t *testing.T) {
	got, err := NormalizeDatetime("2026-02-21T00:00:00+01:00")
	if err != nil {
		t.Fatalf("NormalizeDatetime: %v", err)
	}
	if got != "2026-02-20T23:00:00Z" {
		t.Errorf("NormalizeDatetime = %q", got)
	}
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name      string
		selection Selection
		want      Range
		wantErr   error
	}{
		{
			name:      "month wins over everything",
			selection: Selection{Month: "2026-03", Period: "today", From: "2026-01-01", To: "2026-01-02"},
			want:      Range{"2026-03-01T00:00:00Z", "2026-04-01T00:00:00Z"},
		},
		{
			name:      "period wins over from and to",
			selection: Selection{Period: "today", From: "2026-01-01", To: "2026-01-02"},
			want:      Range{"2026-02-18T00:00:00Z", "2026-02-19T00:00:00Z"},
		},
		{
			name:      "explicit range normalized",
			selection: Selection{From: "2026-02-21T00:00:00+01:00", To: "2026-02-22"},
			want:      Range{"2026-02-20T23:00:00Z", "2026-02-22T00:00:00Z"},
		},
		{
			name:      "default period",
			selection: Selection{DefaultPeriod: "today"},
			want:      Range{"2026-02-18T00:00:00Z", "2026-02-19T00:00:00Z"},
		},
		{name: "nothing", selection: Selection{}, wantErr: ErrRangeRequired},
		{name: "from only", selection: Selection{From: "2026-02-01"}, wantErr: ErrRangeRequired},
		{name: "to only with default", selection: Selection{To: "2026-02-01", DefaultPeriod: "today"}, wantErr: ErrRangeRequired},
		{name: "bad month", selection: Selection{Month: "2026-13"}, wantErr: ErrInvalidMonthFormat},
		{name: "bad period", selection: Selection{Period: "someday"}, wantErr: ErrInvalidPeriod},
		{name: "bad from", selection: Selection{From: "soon", To: "2026-02-01"}, wantErr: ErrInvalidDatetime},
		{name: "bad to", selection: Selection{From: "2026-02-01", To: "later"}, wantErr: ErrInvalidDatetime},
		{name: "reversed", selection: Selection{From: "2026-02-02", To: "2026-02-01"}, wantErr: ErrEmptyRange},
		{name: "equal bounds", selection: Selection{From: "2026-02-01", To: "2026-02-01T00:00:00Z"}, wantErr: ErrEmptyRange},
	}

	resolver := NewResolver(clock.Fake(wednesday), time.UTC)
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got, err := resolver.Resolve(test.selection)
			if test.wantErr != nil {
				if !errors.Is(err, test.wantErr) {
					t.Fatalf("Resolve error = %v, want %v", err, test.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Resolve: %v", err)
			}
			if got != test.want {
				t.Errorf("Resolve = %+v, want %+v", got, test.want)
			}
		})
	}
}
