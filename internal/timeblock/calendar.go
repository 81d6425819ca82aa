// Package timeblock implements the scheduling core for the shared worktime
// calendar: week window derivation, splitting of time blocks into per-day
// fragments, day and person aggregation, and policy validation. Every
// function in the package is a pure computation over its arguments; callers
// own persistence and concurrency.
package timeblock

import (
	"fmt"
	"time"
)

// DateLayout is the wire format for calendar day keys.
const DateLayout = "2006-01-02"

// DateTimeLayout is the wall-clock wire format accepted for block bounds.
const DateTimeLayout = "2006-01-02T15:04"

// Calendar anchors day and week boundaries to one fixed IANA timezone so the
// rest of the package can treat instants as zone-agnostic values. All
// timezone-sensitive arithmetic lives here.
type Calendar struct {
	loc *time.Location
}

// NewCalendar resolves the named IANA timezone.
func NewCalendar(zone string) (Calendar, error) {
	loc, err := time.LoadLocation(zone)
	if err != nil {
		return Calendar{}, fmt.Errorf("timeblock: unknown timezone %q: %w", zone, err)
	}
	return Calendar{loc: loc}, nil
}

// Location exposes the underlying timezone.
func (c Calendar) Location() *time.Location {
	if c.loc == nil {
		return time.UTC
	}
	return c.loc
}

// StartOfDay returns midnight of the calendar day containing t.
func (c Calendar) StartOfDay(t time.Time) time.Time {
	local := t.In(c.Location())
	return time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, c.Location())
}

// AddDays moves t forward by n calendar days, preserving the wall clock
// across DST transitions.
func (c Calendar) AddDays(t time.Time, n int) time.Time {
	local := t.In(c.Location())
	return local.AddDate(0, 0, n)
}

// AtHour returns the instant at the given wall-clock hour of the calendar
// day that starts at dayStart. Hours of 24 or more roll into the following
// day, so AtHour(day, 25) is 01:00 of the next day.
func (c Calendar) AtHour(dayStart time.Time, hour int) time.Time {
	local := dayStart.In(c.Location())
	day := local
	for hour >= 24 {
		day = c.AddDays(day, 1)
		hour -= 24
	}
	return time.Date(day.Year(), day.Month(), day.Day(), hour, 0, 0, 0, c.Location())
}

// WeekStart returns the Monday 00:00 of the ISO week containing t. It is
// idempotent: WeekStart(WeekStart(t)) == WeekStart(t).
func (c Calendar) WeekStart(t time.Time) time.Time {
	day := c.StartOfDay(t)
	// Monday is 1 in Go's weekday numbering, Sunday is 0.
	offset := (int(day.Weekday()) + 6) % 7
	return c.StartOfDay(c.AddDays(day, -offset))
}

// ParseDate parses a YYYY-MM-DD string as midnight in the calendar's zone.
func (c Calendar) ParseDate(value string) (time.Time, error) {
	t, err := time.ParseInLocation(DateLayout, value, c.Location())
	if err != nil {
		return time.Time{}, fmt.Errorf("timeblock: invalid date %q: %w", value, err)
	}
	return t, nil
}

// ParseDateTime parses a block bound. Minute-precision wall-clock values are
// interpreted in the calendar's zone; RFC 3339 values carry their own offset.
func (c Calendar) ParseDateTime(value string) (time.Time, error) {
	if t, err := time.ParseInLocation(DateTimeLayout, value, c.Location()); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t.In(c.Location()), nil
	}
	return time.Time{}, fmt.Errorf("timeblock: invalid datetime %q", value)
}

// DateKey formats the calendar day containing t as a YYYY-MM-DD key.
func (c Calendar) DateKey(t time.Time) string {
	return t.In(c.Location()).Format(DateLayout)
}

// FormatDateTime renders an instant as a minute-precision wall-clock string
// in the calendar's zone, the representation used on the wire.
func (c Calendar) FormatDateTime(t time.Time) string {
	return t.In(c.Location()).Format(DateTimeLayout)
}

// WeekdayName returns the full English weekday name of the day containing t.
func (c Calendar) WeekdayName(t time.Time) string {
	return t.In(c.Location()).Weekday().String()
}
