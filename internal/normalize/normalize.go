// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package normalize merges parser outputs into validated course records.
// Only a missing required field is fatal for a document; every other
// irregularity degrades to a warning attached to the record.
package normalize

import (
	"fmt"
	"math"

	"github.com/acadops/syllabus-etl/internal/parse"
	"github.com/acadops/syllabus-etl/pkg/types"
)

// MissingFieldError reports a document whose text did not yield one of
// the required identity fields (name, code, nrc).
type MissingFieldError struct {
	Field    parse.Field
	Document string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("document %s: required field %q not found", e.Document, e.Field)
}

// Meta carries the identity encoded in the document filename. It is used
// to fill the period and to cross-check the parsed fields; it never
// substitutes for a required text field.
type Meta struct {
	Period string
	Code   string
	NRC    string
}

// weightSumTolerance absorbs the rounding the source tables exhibit.
const weightSumTolerance = 0.01

// Normalize builds one course record from the parsed fields, evaluation
// entries, and unit blocks of a document. parserWarnings are carried into
// the record ahead of the normalizer's own findings.
func Normalize(doc string, fields parse.FieldResult, evals []types.Evaluation, units []types.LearningUnit, meta Meta, parserWarnings []string) (*types.Course, error) {
	if len(fields.Missing) > 0 {
		return nil, &MissingFieldError{Field: fields.Missing[0], Document: doc}
	}

	warnings := append([]string(nil), parserWarnings...)

	course := &types.Course{
		Name:       fields.Get(parse.FieldName),
		Code:       fields.Get(parse.FieldCode),
		NRC:        fields.Get(parse.FieldNRC),
		Units:      units,
		SourceFile: doc,
	}

	course.Period = meta.Period
	if course.Period == "" {
		course.Period = fields.Get(parse.FieldPeriod)
	}

	if v := fields.Get(parse.FieldCredits); v != "" {
		if n, ok := parse.FirstInt(v); ok {
			course.Credits = n
		} else {
			warnings = append(warnings, fmt.Sprintf("credit value %q is not numeric, defaulting to 0", v))
		}
	}
	if v := fields.Get(parse.FieldWeeks); v != "" {
		if n, ok := parse.FirstInt(v); ok {
			course.TotalWeeks = n
		}
	}
	if v := fields.Get(parse.FieldInstructor); v != "" {
		// Names keep their internal comma ("Apellidos, Nombres").
		course.Faculty = parse.SplitBullets(v)
		if len(course.Faculty) > 0 {
			course.Instructor = course.Faculty[0]
		}
	}
	if v := fields.Get(parse.FieldAreas); v != "" {
		course.Areas = parse.SplitList(v)
	}

	if meta.Code != "" && meta.Code != course.Code {
		warnings = append(warnings, fmt.Sprintf("course code mismatch between filename (%s) and content (%s)", meta.Code, course.Code))
	}
	if meta.NRC != "" && meta.NRC != course.NRC {
		warnings = append(warnings, fmt.Sprintf("NRC mismatch between filename (%s) and content (%s)", meta.NRC, course.NRC))
	}

	course.Evaluations, warnings = dedupeEvaluations(evals, warnings)

	sum := 0.0
	for _, e := range course.Evaluations {
		if e.Weight < 0 || e.Weight > 100 {
			warnings = append(warnings, fmt.Sprintf("evaluation %q has out-of-range weight %.4g", e.Label, e.Weight))
		}
		sum += e.Weight
	}
	if len(course.Evaluations) > 0 && math.Abs(sum-100) > weightSumTolerance {
		warnings = append(warnings, fmt.Sprintf("evaluation weights sum to %.4g, not 100", sum))
	}

	course.Warnings = warnings
	return course, nil
}

// dedupeEvaluations drops entries that parsed identically on label and
// weight, which happens when a table row is scanned twice across a page
// break. The first occurrence wins.
func dedupeEvaluations(evals []types.Evaluation, warnings []string) ([]types.Evaluation, []string) {
	type key struct {
		label  string
		weight float64
	}
	seen := make(map[key]bool)
	var out []types.Evaluation
	for _, e := range evals {
		k := key{label: parse.Fold(e.Label), weight: e.Weight}
		if seen[k] {
			warnings = append(warnings, fmt.Sprintf("duplicate evaluation row %q removed", e.Label))
			continue
		}
		seen[k] = true
		out = append(out, e)
	}
	return out, warnings
}
