// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package emit writes the pipeline's output artifacts: per-course JSON
// records, the combined course listing, and the weekly calendar in YAML
// and plain-text form.
package emit

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	yaml "go.yaml.in/yaml/v3"

	"github.com/acadops/syllabus-etl/internal/parse"
	"github.com/acadops/syllabus-etl/pkg/types"
)

// CombinedFileName is the single-file course listing written next to the
// per-course records.
const CombinedFileName = "courses.json"

// Slug derives a filesystem-safe name from a course name: accents folded,
// lowercased, with every run of non-alphanumeric characters collapsed to
// a single hyphen.
func Slug(name string) string {
	folded := parse.Fold(name)
	var b strings.Builder
	pending := false
	for _, r := range folded {
		switch {
		case r >= 'a' && r <= 'z' || r >= '0' && r <= '9':
			if pending && b.Len() > 0 {
				b.WriteByte('-')
			}
			pending = false
			b.WriteRune(r)
		default:
			pending = true
		}
	}
	if b.Len() == 0 {
		return "curso"
	}
	return b.String()
}

// CourseFileName returns the record file name for a course, slug plus NRC
// so parallel sections of the same course do not collide.
func CourseFileName(c *types.Course) string {
	return fmt.Sprintf("%s-%s.json", Slug(c.Name), c.NRC)
}

// WriteCourse writes one course record into dir and returns the path.
func WriteCourse(dir string, c *types.Course) (string, error) {
	path := filepath.Join(dir, CourseFileName(c))
	if err := writeJSON(path, c); err != nil {
		return "", fmt.Errorf("writing course %s: %w", c.Key(), err)
	}
	return path, nil
}

// WriteAll writes the combined listing of every parsed course into dir.
func WriteAll(dir string, courses []*types.Course) (string, error) {
	path := filepath.Join(dir, CombinedFileName)
	if err := writeJSON(path, courses); err != nil {
		return "", fmt.Errorf("writing course listing: %w", err)
	}
	return path, nil
}

// ReadAll loads the combined listing back, for commands that rebuild
// derived artifacts without re-parsing the PDFs.
func ReadAll(dir string) ([]*types.Course, error) {
	path := filepath.Join(dir, CombinedFileName)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading course listing: %w", err)
	}
	var courses []*types.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return courses, nil
}

// WriteScheduleYAML writes the weekly calendar as YAML into dir, named
// after the period label.
func WriteScheduleYAML(dir string, period types.Period, weeks []types.WeekSchedule) (string, error) {
	doc := struct {
		Period types.Period         `yaml:"period"`
		Weeks  []types.WeekSchedule `yaml:"weeks"`
	}{Period: period, Weeks: weeks}

	data, err := yaml.Marshal(doc)
	if err != nil {
		return "", fmt.Errorf("encoding calendar: %w", err)
	}
	path := filepath.Join(dir, fmt.Sprintf("calendario-%s.yaml", period.Label))
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("writing calendar: %w", err)
	}
	return path, nil
}

// RenderCalendar writes the human-readable calendar, one block per week.
func RenderCalendar(w io.Writer, weeks []types.WeekSchedule) error {
	for i, week := range weeks {
		if i > 0 {
			if _, err := fmt.Fprintln(w); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "Semana %d (%s a %s)\n", week.Week, week.Start, week.End)
		fmt.Fprintln(w, strings.Repeat("-", 48))
		if len(week.Items) == 0 {
			fmt.Fprintln(w, "  (sin evaluaciones)")
			continue
		}
		for _, item := range week.Items {
			if _, err := fmt.Fprintf(w, "  %s  %s %s  %s\n", item.Date, item.CourseCode, item.NRC, item.Label); err != nil {
				return err
			}
		}
	}
	return nil
}

func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}
