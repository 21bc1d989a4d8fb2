// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ScheduleItem is one evaluation placed on the weekly calendar.
type ScheduleItem struct {
	CourseCode string `json:"course_code" yaml:"course_code"`
	NRC        string `json:"nrc" yaml:"nrc"`
	Label      string `json:"label" yaml:"label"`

	// Date is the resolved calendar date: the explicit source date when
	// one was given, otherwise the first day of the source week.
	Date Date `json:"date" yaml:"date"`
}

// WeekSchedule is one calendar week of the academic period with the
// evaluations due in it. Weeks with no evaluations still appear so the
// rendered calendar covers the whole period.
type WeekSchedule struct {
	Week  int            `json:"week" yaml:"week"`
	Start Date           `json:"start" yaml:"start"`
	End   Date           `json:"end" yaml:"end"`
	Items []ScheduleItem `json:"items,omitempty" yaml:"items,omitempty"`
}
