// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Resolution records how an evaluation's calendar placement was determined.
// The three-way outcome keeps downstream handling explicit: an entry is
// placed by an explicit date, by a week number, or not at all.
type Resolution string

const (
	ResolvedByDate Resolution = "by_date"
	ResolvedByWeek Resolution = "by_week"
	Unresolved     Resolution = "none"
)

// Evaluation is one graded activity from a syllabus evaluation table.
type Evaluation struct {
	// Label is the activity name as it appears in the table
	// (e.g. "Primer Parcial").
	Label string `json:"label" yaml:"label"`

	// Code is the abbreviation the template attaches to some activities
	// (e.g. "EP" in "Examen Parcial - EP"). Empty when absent.
	Code string `json:"code,omitempty" yaml:"code,omitempty"`

	// Kind is a best-effort category tag: examen, proyecto, laboratorio,
	// practica, control, participacion, trabajo, or otro.
	Kind string `json:"kind" yaml:"kind"`

	// Weight is the percentage contribution to the final grade.
	Weight float64 `json:"weight" yaml:"weight"`

	// Week is the 1-based week number within the academic period.
	// Zero when the source gave an explicit date or nothing at all.
	Week int `json:"week,omitempty" yaml:"week,omitempty"`

	// Date is the explicit calendar date from the source, when present.
	Date Date `json:"date,omitempty" yaml:"date,omitempty"`

	// Resolution says which of Week or Date carries the placement.
	Resolution Resolution `json:"resolution" yaml:"resolution"`
}

// LearningUnit is one block of the learning-units section: a numbered
// title, an achievement statement, a week range, and topic lists.
type LearningUnit struct {
	Number      int      `json:"number" yaml:"number"`
	Title       string   `json:"title" yaml:"title"`
	Achievement string   `json:"achievement,omitempty" yaml:"achievement,omitempty"`
	StartWeek   int      `json:"start_week,omitempty" yaml:"start_week,omitempty"`
	EndWeek     int      `json:"end_week,omitempty" yaml:"end_week,omitempty"`
	Topics      []string `json:"topics,omitempty" yaml:"topics,omitempty"`
}

// Course is the normalized record extracted from one syllabus document.
// Once the normalizer returns it, the record is treated as immutable.
type Course struct {
	// Name is the course title.
	Name string `json:"name" yaml:"name"`

	// Code is the institutional course code (e.g. "1AEL0244").
	Code string `json:"code" yaml:"code"`

	// NRC is the section/registration identifier distinguishing parallel
	// offerings of the same course.
	NRC string `json:"nrc" yaml:"nrc"`

	// Period is the academic period label (e.g. "2025-2").
	Period string `json:"period,omitempty" yaml:"period,omitempty"`

	// Credits is the credit-unit count. Zero when unparsable or absent.
	Credits int `json:"credits" yaml:"credits"`

	// Instructor is the first listed instructor. Empty when absent.
	Instructor string `json:"instructor,omitempty" yaml:"instructor,omitempty"`

	// Faculty lists every instructor named in the document.
	Faculty []string `json:"faculty,omitempty" yaml:"faculty,omitempty"`

	// Areas lists the programs or careers the course belongs to.
	Areas []string `json:"areas,omitempty" yaml:"areas,omitempty"`

	// TotalWeeks is the declared duration of the course in weeks.
	TotalWeeks int `json:"total_weeks,omitempty" yaml:"total_weeks,omitempty"`

	// Units holds the learning-unit blocks in document order.
	Units []LearningUnit `json:"units,omitempty" yaml:"units,omitempty"`

	// Evaluations holds the evaluation entries in table order.
	Evaluations []Evaluation `json:"evaluations" yaml:"evaluations"`

	// Warnings lists the non-fatal irregularities found while parsing
	// and normalizing this document.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`

	// SourceFile is the basename of the originating PDF.
	SourceFile string `json:"source_file,omitempty" yaml:"source_file,omitempty"`
}

// Key returns the run-unique course identity: code and NRC.
func (c *Course) Key() string {
	return c.Code + "-" + c.NRC
}
