// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/acadops/syllabus-etl/internal/catalog"
	"github.com/acadops/syllabus-etl/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the searchable course catalog (store, retrieve, export)",
	Long: `Catalog maintains a local SQLite index over the parsed course records.
Use subcommands to ingest records, search evaluations, or export.`,
}

// --- store subcommand ---

var catalogStoreCmd = &cobra.Command{
	Use:   "store",
	Short: "Ingest parsed course records into the catalog",
	Long: `Store reads the per-course JSON records from the courses directory,
ingests them into a SQLite database with FTS5 indexing, and writes an
export file. Unchanged records are skipped on subsequent runs.`,
	RunE: runCatalogStore,
}

func runCatalogStore(cmd *cobra.Command, args []string) error {
	store, _, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d record(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- retrieve subcommand ---

var catalogRetrieveCmd = &cobra.Command{
	Use:   "retrieve [query]",
	Short: "Search evaluations with full-text search and filters",
	Long: `Retrieve searches the catalog using FTS5 full-text search over
evaluation labels, structured filters (course code, NRC, kind, week),
or a combination of both.`,
	RunE: runCatalogRetrieve,
}

func runCatalogRetrieve(cmd *cobra.Command, args []string) error {
	store, _, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)
	if opts.IsEmpty() {
		return fmt.Errorf("query or filter required: provide a search query, --code, --nrc, --kind, or --week")
	}

	results, err := store.Retrieve(context.Background(), opts)
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatRetrieveOutput(results, jsonOutput)
}

func formatRetrieveOutput(results []catalog.QueryResult, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(results)
	}

	if len(results) == 0 {
		fmt.Println("No results found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-14s  %-30s  %-13s  %6s  %4s  %s\n",
		"Course", "Evaluation", "Kind", "Weight", "Week", "Date")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, r := range results {
		label := r.Label
		if len(label) > 30 {
			label = label[:27] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-14s  %-30s  %-13s  %5.1f%%  %4d  %s\n",
			r.CourseKey, label, r.Kind, r.Weight, r.Week, r.Date)
	}

	fmt.Fprintf(os.Stdout, "\n%d results\n", len(results))
	return nil
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog to YAML or JSON",
	Long: `Export writes the full catalog (or a filtered subset) to export.yaml
or export.json in the catalog directory. Supports the same filter flags
as retrieve for partial exports.`,
	RunE: runCatalogExport,
}

func runCatalogExport(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")

	store, catalogDir, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	opts := queryOptsFromFlags(cmd, args)

	switch format {
	case "yaml", "":
		if err := store.ExportYAML(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.yaml\n", catalogDir)
	case "json":
		if err := store.ExportJSON(context.Background(), opts); err != nil {
			return err
		}
		fmt.Printf("Exported to %s/export.json\n", catalogDir)
	default:
		return fmt.Errorf("unsupported format %q: use yaml or json", format)
	}

	return nil
}

// --- shared helpers ---

// openCatalog resolves the catalog settings from flags and config and
// opens the store. It also returns the resolved catalog directory.
func openCatalog(cmd *cobra.Command) (*catalog.Store, string, error) {
	cfg, err := pipelineConfig()
	if err != nil {
		return nil, "", err
	}

	catalogDir, _ := cmd.Flags().GetString("catalog-dir")
	if catalogDir == "" {
		catalogDir = cfg.Catalog.Dir
	}
	coursesDir, _ := cmd.Flags().GetString("courses-dir")
	if coursesDir == "" {
		coursesDir = cfg.Output.CoursesDir
	}
	maxResults, _ := cmd.Flags().GetInt("max-results")
	if maxResults == 0 {
		maxResults = cfg.Catalog.MaxResults
	}

	store, err := catalog.NewStore(types.CatalogConfig{Dir: catalogDir, MaxResults: maxResults}, coursesDir)
	if err != nil {
		return nil, "", err
	}
	return store, catalogDir, nil
}

func queryOptsFromFlags(cmd *cobra.Command, args []string) catalog.QueryOptions {
	queryText, _ := cmd.Flags().GetString("query")
	if queryText == "" && len(args) > 0 {
		queryText = strings.Join(args, " ")
	}

	code, _ := cmd.Flags().GetString("code")
	nrc, _ := cmd.Flags().GetString("nrc")
	kind, _ := cmd.Flags().GetString("kind")
	week, _ := cmd.Flags().GetInt("week")
	limit, _ := cmd.Flags().GetInt("limit")

	return catalog.QueryOptions{
		Query:      queryText,
		Code:       code,
		NRC:        nrc,
		Kind:       kind,
		Week:       week,
		MaxResults: limit,
	}
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("catalog-dir", "", "catalog directory (default: catalog.dir from config)")
	catalogCmd.PersistentFlags().String("courses-dir", "", "directory of parsed course records (default: output.courses_dir from config)")
	catalogCmd.PersistentFlags().Int("max-results", 0, "maximum number of query results (0 = config default)")

	// Retrieve flags.
	catalogRetrieveCmd.Flags().String("query", "", "full-text search query over evaluation labels")
	catalogRetrieveCmd.Flags().String("code", "", "filter by course code")
	catalogRetrieveCmd.Flags().String("nrc", "", "filter by NRC")
	catalogRetrieveCmd.Flags().String("kind", "", "filter by evaluation kind: examen, laboratorio, practica, ...")
	catalogRetrieveCmd.Flags().Int("week", 0, "filter by week number")
	catalogRetrieveCmd.Flags().Int("limit", 0, "maximum results (0 = use default)")
	catalogRetrieveCmd.Flags().Bool("json", false, "output results as JSON")

	// Export flags.
	catalogExportCmd.Flags().String("format", "yaml", "export format: yaml or json")
	catalogExportCmd.Flags().String("query", "", "full-text search filter for partial export")
	catalogExportCmd.Flags().String("code", "", "filter by course code for partial export")
	catalogExportCmd.Flags().String("nrc", "", "filter by NRC for partial export")
	catalogExportCmd.Flags().String("kind", "", "filter by evaluation kind for partial export")
	catalogExportCmd.Flags().Int("week", 0, "filter by week number for partial export")
	catalogExportCmd.Flags().Int("limit", 0, "maximum entries to export (0 = all)")

	// Wire subcommands.
	catalogCmd.AddCommand(catalogStoreCmd)
	catalogCmd.AddCommand(catalogRetrieveCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
