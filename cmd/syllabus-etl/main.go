// Package main is the entry point for the syllabus-etl CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/acadops/syllabus-etl/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the syllabus-etl CLI.
var rootCmd = &cobra.Command{
	Use:   "syllabus-etl",
	Short: "Extract structured course data from syllabus PDFs",
	Long: `syllabus-etl turns institutional syllabus PDFs into normalized JSON course
records and a weekly evaluation calendar for the academic period.

Each pipeline stage is a subcommand: run processes a batch of PDFs end to
end, extract dumps the raw text of one document, calendar rebuilds the
weekly schedule from already-parsed records, and catalog maintains a
searchable SQLite index of every evaluation.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./syllabus-etl.yaml or ~/.config/syllabus-etl/config.yaml)")
	rootCmd.PersistentFlags().String("period", "", "academic period label, e.g. 2025-2 (default: default_period from config)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("syllabus-etl")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "syllabus-etl"))
		}
	}

	viper.SetEnvPrefix("SYLLABUS_ETL")
	viper.AutomaticEnv()

	viper.SetDefault("source.dir", "silabos")
	viper.SetDefault("output.courses_dir", "cursos")
	viper.SetDefault("output.calendar_dir", "calendario")
	viper.SetDefault("catalog.dir", "catalogo")
	viper.SetDefault("catalog.max_results", 20)

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig unmarshals the full viper state into the typed config.
func pipelineConfig() (types.PipelineConfig, error) {
	var cfg types.PipelineConfig
	if err := viper.Unmarshal(&cfg); err != nil {
		return cfg, fmt.Errorf("loading config: %w", err)
	}
	return cfg, nil
}

// periodFromConfig resolves the period from the --period flag or the
// configured default. A period that is missing or misconfigured is fatal;
// every derived date in the calendar depends on it.
func periodFromConfig(cmd *cobra.Command, cfg types.PipelineConfig) (types.Period, error) {
	label, _ := cmd.Flags().GetString("period")
	if label == "" {
		label = cfg.DefaultPeriod
	}
	if label == "" {
		return types.Period{}, fmt.Errorf("no period selected: pass --period or set default_period in config")
	}

	pc, ok := cfg.Periods[label]
	if !ok || pc.StartDate == "" || pc.EndDate == "" {
		return types.Period{}, fmt.Errorf("period %q not configured: set periods.%s.start_date and periods.%s.end_date", label, label, label)
	}

	start, err := types.ParseDate(pc.StartDate)
	if err != nil {
		return types.Period{}, fmt.Errorf("period %q: %w", label, err)
	}
	end, err := types.ParseDate(pc.EndDate)
	if err != nil {
		return types.Period{}, fmt.Errorf("period %q: %w", label, err)
	}

	p := types.Period{Label: label, Start: start, End: end}
	if err := p.Validate(); err != nil {
		return types.Period{}, err
	}
	return p, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
