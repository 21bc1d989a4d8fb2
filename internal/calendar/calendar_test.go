package calendar

import (
	"strings"
	"testing"
	"time"

	"github.com/acadops/syllabus-etl/pkg/types"
)

var period2025_2 = types.Period{
	Label: "2025-2",
	Start: types.NewDate(2025, time.August, 18),
	End:   types.NewDate(2025, time.December, 19),
}

func course(code, nrc string, evals ...types.Evaluation) *types.Course {
	return &types.Course{Code: code, NRC: nrc, Evaluations: evals}
}

func TestBuildPlacesWeekResolvedEvaluations(t *testing.T) {
	courses := []*types.Course{
		course("1AEL0244", "8281",
			types.Evaluation{Label: "Primer Parcial", Weight: 20, Week: 4, Resolution: types.ResolvedByWeek},
		),
	}

	weeks, warnings, err := Build(period2025_2, courses)
	if err != nil {
		t.Fatal(err)
	}
	if len(warnings) != 0 {
		t.Errorf("unexpected warnings: %v", warnings)
	}
	if len(weeks) != 18 {
		t.Fatalf("got %d weeks, want 18", len(weeks))
	}

	w4 := weeks[3]
	if len(w4.Items) != 1 {
		t.Fatalf("week 4 items = %+v", w4.Items)
	}
	if got := w4.Items[0].Date.String(); got != "2025-09-08" {
		t.Errorf("week 4 date = %s, want 2025-09-08", got)
	}
}

func TestBuildCoversEveryWeek(t *testing.T) {
	weeks, _, err := Build(period2025_2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(weeks) != 18 {
		t.Fatalf("got %d weeks, want 18", len(weeks))
	}

	w1 := weeks[0]
	if w1.Start.String() != "2025-08-18" || w1.End.String() != "2025-08-24" {
		t.Errorf("week 1 range = %s..%s", w1.Start, w1.End)
	}
	for i, w := range weeks {
		if w.Week != i+1 {
			t.Errorf("week %d numbered %d", i+1, w.Week)
		}
		if len(w.Items) != 0 {
			t.Errorf("week %d should be empty, got %+v", w.Week, w.Items)
		}
	}
}

func TestBuildExplicitDateWins(t *testing.T) {
	// A dated evaluation keeps its exact day even when a week is also set.
	courses := []*types.Course{
		course("1FIS0101", "4411",
			types.Evaluation{
				Label:      "Laboratorio 3",
				Weight:     10,
				Week:       2,
				Date:       types.NewDate(2025, time.October, 1),
				Resolution: types.ResolvedByDate,
			},
		),
	}

	weeks, _, err := Build(period2025_2, courses)
	if err != nil {
		t.Fatal(err)
	}

	// 2025-10-01 is 44 days in, week 7.
	w7 := weeks[6]
	if len(w7.Items) != 1 || w7.Items[0].Date.String() != "2025-10-01" {
		t.Errorf("week 7 items = %+v", w7.Items)
	}
}

func TestBuildSortsItemsWithinWeek(t *testing.T) {
	courses := []*types.Course{
		course("1MAT0200", "9001",
			types.Evaluation{Label: "Control 2", Weight: 10, Date: types.NewDate(2025, time.September, 10), Resolution: types.ResolvedByDate},
		),
		course("1AEL0244", "8281",
			types.Evaluation{Label: "Primer Parcial", Weight: 20, Week: 4, Resolution: types.ResolvedByWeek},
		),
		course("1FIS0101", "4411",
			types.Evaluation{Label: "Quiz 1", Weight: 5, Week: 4, Resolution: types.ResolvedByWeek},
		),
	}

	weeks, _, err := Build(period2025_2, courses)
	if err != nil {
		t.Fatal(err)
	}

	items := weeks[3].Items
	if len(items) != 3 {
		t.Fatalf("week 4 items = %+v", items)
	}
	// Same-date items order by course code, the dated one comes last.
	if items[0].CourseCode != "1AEL0244" || items[1].CourseCode != "1FIS0101" || items[2].CourseCode != "1MAT0200" {
		t.Errorf("item order = %s, %s, %s", items[0].CourseCode, items[1].CourseCode, items[2].CourseCode)
	}
}

func TestBuildSkipsUnplaceableEvaluations(t *testing.T) {
	courses := []*types.Course{
		course("1AEL0244", "8281",
			types.Evaluation{Label: "Participación", Weight: 50, Resolution: types.Unresolved},
			types.Evaluation{Label: "Recuperación", Weight: 10, Date: types.NewDate(2026, time.January, 15), Resolution: types.ResolvedByDate},
			types.Evaluation{Label: "Examen Final", Weight: 40, Week: 16, Resolution: types.ResolvedByWeek},
		),
	}

	weeks, warnings, err := Build(period2025_2, courses)
	if err != nil {
		t.Fatal(err)
	}

	total := 0
	for _, w := range weeks {
		total += len(w.Items)
	}
	if total != 1 {
		t.Errorf("placed %d items, want 1", total)
	}
	if len(warnings) != 2 {
		t.Fatalf("warnings = %v", warnings)
	}
	if !strings.Contains(warnings[0], "Participación") || !strings.Contains(warnings[1], "outside the period") {
		t.Errorf("warnings = %v", warnings)
	}
}

func TestBuildExcludesDateInTrailingPartialWeek(t *testing.T) {
	// 2025-12-20 sits inside the final calendar week but after the period
	// end date, so it must not be placed.
	courses := []*types.Course{
		course("1AEL0244", "8281",
			types.Evaluation{Label: "Examen Rezagados", Weight: 40, Date: types.NewDate(2025, time.December, 20), Resolution: types.ResolvedByDate},
		),
	}

	weeks, warnings, err := Build(period2025_2, courses)
	if err != nil {
		t.Fatal(err)
	}

	for _, w := range weeks {
		if len(w.Items) != 0 {
			t.Errorf("week %d should be empty, got %+v", w.Week, w.Items)
		}
	}
	if len(warnings) != 1 || !strings.Contains(warnings[0], "outside the period") {
		t.Errorf("warnings = %v, want one out-of-period warning", warnings)
	}
}

func TestBuildInvalidPeriod(t *testing.T) {
	bad := types.Period{Label: "2025-2", Start: types.NewDate(2025, time.August, 18)}
	if _, _, err := Build(bad, nil); err == nil {
		t.Fatal("expected error for period without end date")
	}
}
