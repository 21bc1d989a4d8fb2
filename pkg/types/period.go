// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import (
	"fmt"
	"time"
)

// dateLayout is the on-disk date format used across all artifacts.
const dateLayout = "2006-01-02"

// Date is a calendar date with day precision. The zero value marshals to
// an empty string so optional dates stay readable in output artifacts.
type Date struct {
	time.Time
}

// NewDate builds a Date from year, month, and day in UTC.
func NewDate(year int, month time.Month, day int) Date {
	return Date{time.Date(year, month, day, 0, 0, 0, 0, time.UTC)}
}

// ParseDate parses a date in 2006-01-02 form.
func ParseDate(s string) (Date, error) {
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return Date{}, fmt.Errorf("parsing date %q: %w", s, err)
	}
	return Date{t}, nil
}

// AddDays returns the date n days later.
func (d Date) AddDays(n int) Date {
	return Date{d.Time.AddDate(0, 0, n)}
}

// DaysSince returns the whole days elapsed from other to d.
func (d Date) DaysSince(other Date) int {
	return int(d.Time.Sub(other.Time) / (24 * time.Hour))
}

// String formats the date as 2006-01-02, or empty for the zero value.
func (d Date) String() string {
	if d.IsZero() {
		return ""
	}
	return d.Time.Format(dateLayout)
}

func (d Date) MarshalJSON() ([]byte, error) {
	return []byte(`"` + d.String() + `"`), nil
}

func (d *Date) UnmarshalJSON(data []byte) error {
	s := string(data)
	if len(s) >= 2 && s[0] == '"' && s[len(s)-1] == '"' {
		s = s[1 : len(s)-1]
	}
	if s == "" || s == "null" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

func (d Date) MarshalYAML() (any, error) {
	return d.String(), nil
}

func (d *Date) UnmarshalYAML(unmarshal func(any) error) error {
	var s string
	if err := unmarshal(&s); err != nil {
		return err
	}
	if s == "" {
		*d = Date{}
		return nil
	}
	parsed, err := ParseDate(s)
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}

// Period is one academic period: a label and an inclusive date range.
type Period struct {
	Label string `json:"label" yaml:"label"`
	Start Date   `json:"start_date" yaml:"start_date"`
	End   Date   `json:"end_date" yaml:"end_date"`
}

// Validate checks that the period has both dates and that the start
// precedes the end. A failure here is fatal to calendar generation.
func (p Period) Validate() error {
	if p.Start.IsZero() || p.End.IsZero() {
		return fmt.Errorf("period %q: start and end dates are required", p.Label)
	}
	if !p.Start.Before(p.End.Time) {
		return fmt.Errorf("period %q: start date %s is not before end date %s",
			p.Label, p.Start, p.End)
	}
	return nil
}

// Weeks returns the number of calendar weeks the period spans, counting
// the week containing the end date.
func (p Period) Weeks() int {
	return p.End.DaysSince(p.Start)/7 + 1
}

// WeekStart returns the first day of the 1-based week n.
func (p Period) WeekStart(n int) Date {
	return p.Start.AddDays((n - 1) * 7)
}

// WeekOf returns the 1-based week containing d. Callers must check
// Contains first; dates before the start map to week numbers below 1.
func (p Period) WeekOf(d Date) int {
	return d.DaysSince(p.Start)/7 + 1
}

// Contains reports whether d falls inside the period, boundaries included.
func (p Period) Contains(d Date) bool {
	return !d.Before(p.Start.Time) && !d.After(p.End.Time)
}
