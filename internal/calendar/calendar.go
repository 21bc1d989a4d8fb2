// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package calendar derives the weekly evaluation schedule for a period
// from a set of normalized course records.
package calendar

import (
	"fmt"
	"sort"

	"github.com/acadops/syllabus-etl/pkg/types"
)

// Build produces one schedule per week of the period, covering the full
// period even where no evaluation falls. Week-resolved evaluations land
// on the Monday of their week; date-resolved ones keep their exact date.
// Entries that cannot be placed, or fall outside the period, are skipped
// with a warning. An invalid period is the only fatal condition.
func Build(period types.Period, courses []*types.Course) ([]types.WeekSchedule, []string, error) {
	if err := period.Validate(); err != nil {
		return nil, nil, fmt.Errorf("building calendar for %s: %w", period.Label, err)
	}

	weeks := make([]types.WeekSchedule, period.Weeks())
	for i := range weeks {
		start := period.WeekStart(i + 1)
		weeks[i] = types.WeekSchedule{
			Week:  i + 1,
			Start: start,
			End:   start.AddDays(6),
		}
	}

	var warnings []string
	for _, c := range courses {
		for _, e := range c.Evaluations {
			date, ok := resolveDate(period, e)
			if !ok {
				warnings = append(warnings, fmt.Sprintf("course %s: evaluation %q has no date or week, left off the calendar", c.Key(), e.Label))
				continue
			}
			// The date itself must lie inside the period; a week-index
			// check alone would admit dates in the trailing partial week.
			if !period.Contains(date) {
				warnings = append(warnings, fmt.Sprintf("course %s: evaluation %q on %s falls outside the period", c.Key(), e.Label, date))
				continue
			}
			w := period.WeekOf(date)
			weeks[w-1].Items = append(weeks[w-1].Items, types.ScheduleItem{
				CourseCode: c.Code,
				NRC:        c.NRC,
				Label:      e.Label,
				Date:       date,
			})
		}
	}

	for i := range weeks {
		items := weeks[i].Items
		sort.SliceStable(items, func(a, b int) bool {
			if !items[a].Date.Equal(items[b].Date.Time) {
				return items[a].Date.Before(items[b].Date.Time)
			}
			return items[a].CourseCode < items[b].CourseCode
		})
	}
	return weeks, warnings, nil
}

// resolveDate picks the calendar date for an evaluation. An explicit
// date always wins over the week number.
func resolveDate(period types.Period, e types.Evaluation) (types.Date, bool) {
	switch e.Resolution {
	case types.ResolvedByDate:
		return e.Date, true
	case types.ResolvedByWeek:
		return period.WeekStart(e.Week), true
	}
	return types.Date{}, false
}
