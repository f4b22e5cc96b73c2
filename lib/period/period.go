// Copyright 2026 The Understory CLI Authors
// SPDX-License-Identifier: Apache-2.0

package period

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/understory-cli/understory/lib/clock"
)

// APILayout is the datetime layout the Understory API accepts.
const APILayout = "2006-01-02T15:04:05Z"

// DateLayout is the calendar date layout used for single-day input.
const DateLayout = "2006-01-02"

// Names lists the recognized period names in help order.
var Names = []string{"today", "tomorrow", "this-week", "next-week", "this-month", "last-month"}

var (
	// ErrInvalidPeriod is returned for a period name not in Names.
	ErrInvalidPeriod = errors.New("unknown period")

	// ErrInvalidMonthFormat is returned for month strings that are not
	// YYYY-MM or name a month outside 01-12.
	ErrInvalidMonthFormat = errors.New("invalid month")

	// ErrInvalidDatetime is returned for strings that are not ISO 8601
	// datetimes.
	ErrInvalidDatetime = errors.New("invalid datetime")

	// ErrInvalidDate is returned for strings that are not YYYY-MM-DD.
	ErrInvalidDate = errors.New("invalid date")

	// ErrRangeRequired is returned by Resolve when the selection names
	// no usable range.
	ErrRangeRequired = errors.New("provide --period, --month <YYYY-MM>, or both --from and --to")

	// ErrEmptyRange is returned by Resolve when --from is not before --to.
	ErrEmptyRange = errors.New("--from must be before --to")
)

var monthPattern = regexp.MustCompile(`^(\d{4})-(\d{2})$`)

// Range is a half-open UTC interval in APILayout form.
type Range struct {
	From string `json:"from"`
	To   string `json:"to"`
}

// Resolver computes date ranges relative to a clock in one location.
type Resolver struct {
	clock    clock.Clock
	location *time.Location
}

// NewResolver returns a Resolver reading the time from clk and placing
// calendar boundaries in location. A nil clk uses the real clock and a
// nil location uses time.Local.
func NewResolver(clk clock.Clock, location *time.Location) *Resolver {
	if clk == nil {
		clk = clock.Real()
	}
	if location == nil {
		location = time.Local
	}
	return &Resolver{clock: clk, location: location}
}

// Format renders t as an API timestamp.
func Format(t time.Time) string {
	return t.UTC().Format(APILayout)
}

func newRange(from, to time.Time) Range {
	return Range{From: Format(from), To: Format(to)}
}

// now returns the current time in the resolver's location.
func (resolver *Resolver) now() time.Time {
	return resolver.clock.Now().In(resolver.location)
}

// midnight returns the start of the local day containing t.
func (resolver *Resolver) midnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, resolver.location)
}

// weekStart returns the Monday at or before the local day containing t.
func (resolver *Resolver) weekStart(t time.Time) time.Time {
	offset := 1 - int(t.Weekday())
	if t.Weekday() == time.Sunday {
		offset = -6
	}
	return resolver.midnight(t).AddDate(0, 0, offset)
}

// Period resolves a named period relative to the current time.
func (resolver *Resolver) Period(name string) (Range, error) {
	now := resolver.now()
	today := resolver.midnight(now)
	year, month, _ := now.Date()

	switch strings.ToLower(name) {
	case "today":
		return newRange(today, today.AddDate(0, 0, 1)), nil
	case "tomorrow":
		return newRange(today.AddDate(0, 0, 1), today.AddDate(0, 0, 2)), nil
	case "this-week":
		start := resolver.weekStart(now)
		return newRange(start, start.AddDate(0, 0, 7)), nil
	case "next-week":
		start := resolver.weekStart(now).AddDate(0, 0, 7)
		return newRange(start, start.AddDate(0, 0, 7)), nil
	case "this-month":
		return newRange(
			time.Date(year, month, 1, 0, 0, 0, 0, resolver.location),
			time.Date(year, month+1, 1, 0, 0, 0, 0, resolver.location),
		), nil
	case "last-month":
		return newRange(
			time.Date(year, month-1, 1, 0, 0, 0, 0, resolver.location),
			time.Date(year, month, 1, 0, 0, 0, 0, resolver.location),
		), nil
	}
	return Range{}, fmt.Errorf("%w %q: use %s", ErrInvalidPeriod, name, strings.Join(Names, ", "))
}

// Month resolves a YYYY-MM string to the whole local calendar month.
func (resolver *Resolver) Month(value string) (Range, error) {
	match := monthPattern.FindStringSubmatch(value)
	if match == nil {
		return Range{}, fmt.Errorf("%w %q: use YYYY-MM (e.g. 2026-02 for February 2026)", ErrInvalidMonthFormat, value)
	}
	year, _ := strconv.Atoi(match[1])
	month, _ := strconv.Atoi(match[2])
	if month < 1 || month > 12 {
		return Range{}, fmt.Errorf("%w %q: month must be 01-12", ErrInvalidMonthFormat, value)
	}
	return newRange(
		time.Date(year, time.Month(month), 1, 0, 0, 0, 0, resolver.location),
		time.Date(year, time.Month(month)+1, 1, 0, 0, 0, 0, resolver.location),
	), nil
}

// Day resolves a YYYY-MM-DD string to that local calendar day.
func (resolver *Resolver) Day(value string) (Range, error) {
	day, err := time.ParseInLocation(DateLayout, value, resolver.location)
	if err != nil {
		return Range{}, fmt.Errorf("%w %q: use YYYY-MM-DD", ErrInvalidDate, value)
	}
	return newRange(day, day.AddDate(0, 0, 1)), nil
}

// LocalDate returns the local calendar date days from today, as
// YYYY-MM-DD.
func (resolver *Resolver) LocalDate(days int) string {
	return resolver.midnight(resolver.now()).AddDate(0, 0, days).Format(DateLayout)
}

// Window returns the range from now to now plus length.
func (resolver *Resolver) Window(length time.Duration) Range {
	now := resolver.clock.Now()
	return newRange(now, now.Add(length))
}

// offsetLayouts carry their own zone. localLayouts are read in the
// resolver's location.
var (
	offsetLayouts = []string{
		time.RFC3339Nano,
		"2006-01-02T15:04Z07:00",
	}
	localLayouts = []string{
		"2006-01-02T15:04:05.999999999",
		"2006-01-02T15:04",
	}
	dateLayouts = []string{
		DateLayout,
		"2006-01",
		"2006",
	}
)

// NormalizeDatetime re-renders an ISO 8601 datetime in APILayout.
// Values with an offset or Z keep their instant; values without one
// are read in the resolver's location; a bare date, year-month, or year
// is UTC midnight at its start. The T and Z designators may be
// lowercase.
func (resolver *Resolver) NormalizeDatetime(value string) (string, error) {
	canonical := strings.ToUpper(value)
	for _, layout := range offsetLayouts {
		if t, err := time.Parse(layout, canonical); err == nil {
			return Format(t), nil
		}
	}
	for _, layout := range localLayouts {
		if t, err := time.ParseInLocation(layout, canonical, resolver.location); err == nil {
			return Format(t), nil
		}
	}
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, canonical, time.UTC); err == nil {
			return Format(t), nil
		}
	}
	return "", fmt.Errorf("%w %q: use ISO 8601 (e.g. 2026-02-21T00:00:00 or 2026-02-21T00:00:00Z)", ErrInvalidDatetime, value)
}

// NormalizeDatetime normalizes value using the local time zone.
func NormalizeDatetime(value string) (string, error) {
	return NewResolver(nil, nil).NormalizeDatetime(value)
}

// Selection is the set of range flags a command received.
type Selection struct {
	Month  string
	Period string
	From   string
	To     string

	// DefaultPeriod applies when none of Month, Period, From or To is
	// set. Empty means a range is required.
	DefaultPeriod string
}

// Resolve picks a range from selection. Month wins over Period, Period
// over an explicit From and To pair.
func (resolver *Resolver) Resolve(selection Selection) (Range, error) {
	switch {
	case selection.Month != "":
		return resolver.Month(selection.Month)
	case selection.Period != "":
		return resolver.Period(selection.Period)
	case selection.From != "" && selection.To != "":
		return resolver.explicit(selection.From, selection.To)
	case selection.From == "" && selection.To == "" && selection.DefaultPeriod != "":
		return resolver.Period(selection.DefaultPeriod)
	}
	return Range{}, ErrRangeRequired
}

func (resolver *Resolver) explicit(from, to string) (Range, error) {
	normalizedFrom, err := resolver.NormalizeDatetime(from)
	if err != nil {
		return Range{}, err
	}
	normalizedTo, err := resolver.NormalizeDatetime(to)
	if err != nil {
		return Range{}, err
	}
	// APILayout strings order the same way as the instants they name.
	if normalizedFrom >= normalizedTo {
		return Range{}, fmt.Errorf("%w (got %s and %s)", ErrEmptyRange, normalizedFrom, normalizedTo)
	}
	return Range{From: normalizedFrom, To: normalizedTo}, nil
}
