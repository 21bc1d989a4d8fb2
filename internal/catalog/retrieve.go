// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/acadops/syllabus-etl/pkg/types"
)

// QueryOptions holds parameters for catalog queries.
type QueryOptions struct {
	// Query is the FTS5 full-text search string over evaluation labels.
	Query string

	// Code filters by institutional course code.
	Code string

	// NRC filters by section identifier.
	NRC string

	// Kind filters by evaluation category (examen, laboratorio, ...).
	Kind string

	// Week filters by resolved week number. Zero means no filter.
	Week int

	// MaxResults limits result count. Zero uses the store default.
	MaxResults int
}

// IsEmpty reports whether the query has no search terms or filters.
func (q QueryOptions) IsEmpty() bool {
	return q.Query == "" && q.Code == "" && q.NRC == "" && q.Kind == "" && q.Week == 0
}

// QueryResult is one evaluation entry with its course identity attached.
type QueryResult struct {
	CourseKey  string           `json:"course_key" yaml:"course_key"`
	CourseName string           `json:"course_name" yaml:"course_name"`
	Code       string           `json:"code" yaml:"code"`
	NRC        string           `json:"nrc" yaml:"nrc"`
	Period     string           `json:"period" yaml:"period"`
	Label      string           `json:"label" yaml:"label"`
	Kind       string           `json:"kind" yaml:"kind"`
	Abbrev     string           `json:"abbrev,omitempty" yaml:"abbrev,omitempty"`
	Weight     float64          `json:"weight" yaml:"weight"`
	Week       int              `json:"week,omitempty" yaml:"week,omitempty"`
	Date       types.Date       `json:"date,omitempty" yaml:"date,omitempty"`
	Resolution types.Resolution `json:"resolution" yaml:"resolution"`
}

// Retrieve queries the catalog with optional full-text search over
// evaluation labels and structured filters. Full-text queries rank by
// relevance; structured-only queries sort by course key and week.
func (s *Store) Retrieve(ctx context.Context, opts QueryOptions) ([]QueryResult, error) {
	maxResults := opts.MaxResults
	if maxResults <= 0 {
		maxResults = s.maxResults
	}

	var (
		qb     strings.Builder
		args   []any
		useFTS = opts.Query != ""
	)

	if useFTS {
		qb.WriteString(
			`SELECT c.key, c.name, c.code, c.nrc, c.period,
				e.label, e.kind, e.abbrev, e.weight, e.week, e.eval_date, e.resolution
			FROM evaluations_fts
			JOIN evaluations e ON e.rowid = evaluations_fts.rowid
			LEFT JOIN courses c ON e.course_key = c.key
			WHERE evaluations_fts MATCH ?`)
		args = append(args, opts.Query)
	} else {
		qb.WriteString(
			`SELECT c.key, c.name, c.code, c.nrc, c.period,
				e.label, e.kind, e.abbrev, e.weight, e.week, e.eval_date, e.resolution
			FROM evaluations e
			LEFT JOIN courses c ON e.course_key = c.key
			WHERE 1=1`)
	}

	if opts.Code != "" {
		qb.WriteString(` AND c.code = ?`)
		args = append(args, opts.Code)
	}
	if opts.NRC != "" {
		qb.WriteString(` AND c.nrc = ?`)
		args = append(args, opts.NRC)
	}
	if opts.Kind != "" {
		qb.WriteString(` AND e.kind = ?`)
		args = append(args, opts.Kind)
	}
	if opts.Week != 0 {
		qb.WriteString(` AND e.week = ?`)
		args = append(args, opts.Week)
	}

	if useFTS {
		qb.WriteString(` ORDER BY evaluations_fts.rank`)
	} else {
		qb.WriteString(` ORDER BY c.key, e.week, e.label`)
	}

	qb.WriteString(` LIMIT ?`)
	args = append(args, maxResults)

	rows, err := s.db.QueryContext(ctx, qb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("querying catalog: %w", err)
	}
	defer rows.Close()

	var results []QueryResult
	for rows.Next() {
		var (
			qr         QueryResult
			key        sql.NullString
			name       sql.NullString
			code       sql.NullString
			nrc        sql.NullString
			period     sql.NullString
			dateStr    string
			resolution string
		)

		if err := rows.Scan(
			&key, &name, &code, &nrc, &period,
			&qr.Label, &qr.Kind, &qr.Abbrev, &qr.Weight, &qr.Week, &dateStr, &resolution,
		); err != nil {
			return nil, fmt.Errorf("scanning row: %w", err)
		}

		qr.CourseKey = key.String
		qr.CourseName = name.String
		qr.Code = code.String
		qr.NRC = nrc.String
		qr.Period = period.String
		qr.Resolution = types.Resolution(resolution)
		if dateStr != "" {
			d, err := types.ParseDate(dateStr)
			if err != nil {
				return nil, fmt.Errorf("decoding stored date %q: %w", dateStr, err)
			}
			qr.Date = d
		}

		results = append(results, qr)
	}

	return results, rows.Err()
}

// Courses returns the identity rows of every indexed course, sorted by key.
func (s *Store) Courses(ctx context.Context) ([]types.Course, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT key, code, nrc, name, period, credits, instructor, areas, source_file
		 FROM courses ORDER BY key`)
	if err != nil {
		return nil, fmt.Errorf("querying courses: %w", err)
	}
	defer rows.Close()

	var courses []types.Course
	for rows.Next() {
		var (
			c         types.Course
			key       string
			areasJSON sql.NullString
		)
		if err := rows.Scan(&key, &c.Code, &c.NRC, &c.Name, &c.Period,
			&c.Credits, &c.Instructor, &areasJSON, &c.SourceFile); err != nil {
			return nil, fmt.Errorf("scanning course: %w", err)
		}
		if areasJSON.Valid {
			if err := json.Unmarshal([]byte(areasJSON.String), &c.Areas); err != nil {
				return nil, fmt.Errorf("decoding areas for course %s: %w", key, err)
			}
		}
		courses = append(courses, c)
	}
	return courses, rows.Err()
}
