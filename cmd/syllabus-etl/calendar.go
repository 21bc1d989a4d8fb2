// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"github.com/spf13/cobra"

	"github.com/acadops/syllabus-etl/internal/emit"
)

var calendarCmd = &cobra.Command{
	Use:   "calendar",
	Short: "Rebuild the weekly calendar from already-parsed course records",
	Long: `Calendar re-derives the weekly evaluation schedule from the combined
course listing written by a previous run, without touching the PDFs.
Use it after editing the period dates in config.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := pipelineConfig()
		if err != nil {
			return err
		}
		period, err := periodFromConfig(cmd, cfg)
		if err != nil {
			return err
		}

		courses, err := emit.ReadAll(cfg.Output.CoursesDir)
		if err != nil {
			return err
		}
		return writeCalendar(cfg, period, courses)
	},
}

func init() {
	rootCmd.AddCommand(calendarCmd)
}
