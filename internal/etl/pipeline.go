// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package etl runs the extraction pipeline over a batch of syllabus PDFs,
// turning each document into a normalized course record.
package etl

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/acadops/syllabus-etl/internal/normalize"
	"github.com/acadops/syllabus-etl/internal/parse"
	"github.com/acadops/syllabus-etl/internal/pdftext"
	"github.com/acadops/syllabus-etl/pkg/types"
)

// Summary holds the outcome of a batch run.
type Summary struct {
	Parsed   int
	Skipped  int
	Warnings int
}

// Total returns the number of documents processed.
func (s Summary) Total() int {
	return s.Parsed + s.Skipped
}

// HasFailures reports whether any document was skipped.
func (s Summary) HasFailures() bool {
	return s.Skipped > 0
}

// DuplicateCourseError reports a document carrying a code and NRC pair
// already parsed from an earlier document in the same run.
type DuplicateCourseError struct {
	Code     string
	NRC      string
	Document string
	Kept     string
}

func (e *DuplicateCourseError) Error() string {
	return fmt.Sprintf("document %s: duplicate course %s-%s, keeping record from %s",
		e.Document, e.Code, e.NRC, e.Kept)
}

// Runner drives the pipeline. The extractor is pluggable so tests can run
// without the pdftotext binary.
type Runner struct {
	Extractor pdftext.Extractor
}

// NewRunner builds a Runner backed by the pdftotext tool on PATH.
func NewRunner() (*Runner, error) {
	ex, err := pdftext.NewPdftotextExtractor()
	if err != nil {
		return nil, err
	}
	return &Runner{Extractor: ex}, nil
}

// Process runs one document through extract, parse, and normalize.
func (r *Runner) Process(path string) (*types.Course, error) {
	pages, err := r.Extractor.Extract(path)
	if err != nil {
		return nil, err
	}
	lines := pdftext.Lines(pages)

	fields := parse.ParseFields(lines)
	evals, warnings := parse.ParseEvaluations(lines)
	units := parse.ParseUnits(lines)

	var meta normalize.Meta
	if fm, ok := pdftext.ParseFileName(filepath.Base(path)); ok {
		meta = normalize.Meta{Period: fm.Period, Code: fm.Code, NRC: fm.NRC}
	}
	return normalize.Normalize(filepath.Base(path), fields, evals, units, meta, warnings)
}

// Run processes every path in order, printing per-document status to w.
// A failing document is reported and skipped; the batch always continues.
// When two documents yield the same course key the first record is kept.
func (r *Runner) Run(paths []string, w io.Writer) ([]*types.Course, Summary) {
	var (
		summary Summary
		courses []*types.Course
		seen    = make(map[string]string)
	)
	for _, path := range paths {
		base := filepath.Base(path)
		course, err := r.Process(path)
		if err == nil {
			if kept, dup := seen[course.Key()]; dup {
				err = &DuplicateCourseError{Code: course.Code, NRC: course.NRC, Document: base, Kept: kept}
			} else {
				seen[course.Key()] = base
			}
		}
		if err != nil {
			fmt.Fprintf(w, "skipped: %s (%v)\n", base, err)
			summary.Skipped++
			continue
		}
		fmt.Fprintf(w, "parsed:  %s (%s, %d evaluations)\n", base, course.Key(), len(course.Evaluations))
		for _, warning := range course.Warnings {
			fmt.Fprintf(w, "  warning: %s\n", warning)
		}
		summary.Parsed++
		summary.Warnings += len(course.Warnings)
		courses = append(courses, course)
	}
	fmt.Fprintf(w, "\nBatch summary: %d parsed, %d skipped, %d warnings (total: %d)\n",
		summary.Parsed, summary.Skipped, summary.Warnings, summary.Total())
	return courses, summary
}
