// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/acadops/syllabus-etl/internal/calendar"
	"github.com/acadops/syllabus-etl/internal/emit"
	"github.com/acadops/syllabus-etl/internal/etl"
	"github.com/acadops/syllabus-etl/internal/pdftext"
	"github.com/acadops/syllabus-etl/pkg/types"
)

var runCmd = &cobra.Command{
	Use:   "run [pdfs...]",
	Short: "Process syllabus PDFs into course records and the weekly calendar",
	Long: `Run extracts text from each syllabus PDF, parses the course identity and
evaluation table, and writes one JSON record per course plus a combined
listing. It then derives the weekly evaluation calendar for the period.

With no arguments it processes every PDF under the source directory.
A document that fails to parse is reported and skipped; the batch always
runs to completion.`,
	RunE: runRun,
}

func runRun(cmd *cobra.Command, args []string) error {
	cfg, err := pipelineConfig()
	if err != nil {
		return err
	}
	period, err := periodFromConfig(cmd, cfg)
	if err != nil {
		return err
	}

	paths := args
	if len(paths) == 0 {
		sourceDir, _ := cmd.Flags().GetString("source-dir")
		if sourceDir == "" {
			sourceDir = cfg.Source.Dir
		}
		paths, err = pdftext.FindSyllabi(sourceDir)
		if err != nil {
			return err
		}
		if len(paths) == 0 {
			return fmt.Errorf("no PDF files found under %s", sourceDir)
		}
	}

	runner, err := etl.NewRunner()
	if err != nil {
		return err
	}

	courses, summary := runner.Run(paths, os.Stdout)
	if len(courses) == 0 {
		return fmt.Errorf("no documents parsed (%d skipped)", summary.Skipped)
	}

	coursesDir := cfg.Output.CoursesDir
	if err := os.MkdirAll(coursesDir, 0o755); err != nil {
		return fmt.Errorf("creating courses directory: %w", err)
	}
	for _, c := range courses {
		if _, err := emit.WriteCourse(coursesDir, c); err != nil {
			return err
		}
	}
	if _, err := emit.WriteAll(coursesDir, courses); err != nil {
		return err
	}
	fmt.Printf("\nWrote %d course records to %s\n", len(courses), coursesDir)

	if err := writeCalendar(cfg, period, courses); err != nil {
		return err
	}

	if summary.HasFailures() {
		return fmt.Errorf("%d document(s) skipped", summary.Skipped)
	}
	return nil
}

func init() {
	runCmd.Flags().String("source-dir", "", "directory to scan for syllabus PDFs (default: source.dir from config)")

	rootCmd.AddCommand(runCmd)
}

// writeCalendar derives the weekly schedule and writes the YAML and
// plain-text artifacts into the calendar directory.
func writeCalendar(cfg types.PipelineConfig, period types.Period, courses []*types.Course) error {
	weeks, warnings, err := calendar.Build(period, courses)
	if err != nil {
		return err
	}
	for _, warning := range warnings {
		fmt.Fprintf(os.Stderr, "warning: %s\n", warning)
	}

	calendarDir := cfg.Output.CalendarDir
	if err := os.MkdirAll(calendarDir, 0o755); err != nil {
		return fmt.Errorf("creating calendar directory: %w", err)
	}

	yamlPath, err := emit.WriteScheduleYAML(calendarDir, period, weeks)
	if err != nil {
		return err
	}

	txtPath := filepath.Join(calendarDir, fmt.Sprintf("calendario-%s.txt", period.Label))
	f, err := os.Create(txtPath)
	if err != nil {
		return fmt.Errorf("writing calendar: %w", err)
	}
	defer f.Close()
	if err := emit.RenderCalendar(f, weeks); err != nil {
		return err
	}

	fmt.Printf("Wrote calendar for %s to %s and %s\n", period.Label, yamlPath, txtPath)
	return nil
}
