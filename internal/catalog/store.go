// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog persists parsed course records in a SQLite index so
// evaluation entries can be searched across a whole period's syllabi.
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/acadops/syllabus-etl/internal/emit"
	"github.com/acadops/syllabus-etl/pkg/types"
)

const dbFile = "catalog.db"

// Store manages the course catalog SQLite database.
type Store struct {
	db         *sql.DB
	catalogDir string
	coursesDir string
	maxResults int
}

// NewStore opens or creates the catalog database at catalogDir/catalog.db,
// creating the schema if needed. coursesDir is where the pipeline emits
// the per-course JSON records the catalog ingests.
func NewStore(cfg types.CatalogConfig, coursesDir string) (*Store, error) {
	if err := os.MkdirAll(cfg.Dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(cfg.Dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{
		db:         db,
		catalogDir: cfg.Dir,
		coursesDir: coursesDir,
		maxResults: maxResults,
	}

	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS courses (
			key TEXT PRIMARY KEY,
			code TEXT NOT NULL,
			nrc TEXT NOT NULL,
			name TEXT,
			period TEXT,
			credits INTEGER,
			instructor TEXT,
			areas TEXT,
			source_file TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS evaluations (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			course_key TEXT NOT NULL REFERENCES courses(key),
			label TEXT NOT NULL,
			kind TEXT,
			abbrev TEXT,
			weight REAL,
			week INTEGER,
			eval_date TEXT,
			resolution TEXT,
			search_text TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_course_key ON evaluations(course_key)`,
		`CREATE INDEX IF NOT EXISTS idx_evaluations_kind ON evaluations(kind)`,
		`CREATE TABLE IF NOT EXISTS ingest_status (
			course_key TEXT PRIMARY KEY,
			file_mod_time TEXT
		)`,
	}

	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='evaluations_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		// search_text carries course name plus label so a query can hit
		// either.
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE evaluations_fts USING fts5(search_text, content=evaluations, content_rowid=rowid)`,
			`CREATE TRIGGER evaluations_ai AFTER INSERT ON evaluations BEGIN
				INSERT INTO evaluations_fts(rowid, search_text) VALUES (new.rowid, new.search_text);
			END`,
			`CREATE TRIGGER evaluations_ad AFTER DELETE ON evaluations BEGIN
				INSERT INTO evaluations_fts(evaluations_fts, rowid, search_text) VALUES('delete', old.rowid, old.search_text);
			END`,
			`CREATE TRIGGER evaluations_au AFTER UPDATE ON evaluations BEGIN
				INSERT INTO evaluations_fts(evaluations_fts, rowid, search_text) VALUES('delete', old.rowid, old.search_text);
				INSERT INTO evaluations_fts(rowid, search_text) VALUES (new.rowid, new.search_text);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}

	return nil
}

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of record files processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest reads the per-course JSON records from the courses directory and
// populates the database. Unchanged files are detected by modification
// time and skipped, so re-running after a partial batch is cheap. On
// success it refreshes export.yaml.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	entries, err := os.ReadDir(s.coursesDir)
	if err != nil {
		return IngestSummary{}, fmt.Errorf("reading courses directory %s: %w", s.coursesDir, err)
	}

	var summary IngestSummary

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") || entry.Name() == emit.CombinedFileName {
			continue
		}

		select {
		case <-ctx.Done():
			return summary, ctx.Err()
		default:
		}

		name := strings.TrimSuffix(entry.Name(), ".json")
		path := filepath.Join(s.coursesDir, entry.Name())

		info, err := entry.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		data, err := os.ReadFile(path)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		var course types.Course
		if err := json.Unmarshal(data, &course); err != nil {
			fmt.Fprintf(w, "failed  %s: parse error: %v\n", name, err)
			summary.Failed++
			continue
		}

		var storedModTime string
		err = s.db.QueryRowContext(ctx,
			`SELECT file_mod_time FROM ingest_status WHERE course_key = ?`, course.Key(),
		).Scan(&storedModTime)

		if err == nil && storedModTime == modTime {
			fmt.Fprintf(w, "skipped %s\n", name)
			summary.Skipped++
			continue
		}
		isUpdate := err == nil

		if err := s.ingestCourse(ctx, &course, modTime, isUpdate); err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", name, err)
			summary.Failed++
			continue
		}

		if isUpdate {
			fmt.Fprintf(w, "updated %s (%d evaluations)\n", name, len(course.Evaluations))
			summary.Updated++
		} else {
			fmt.Fprintf(w, "indexed %s (%d evaluations)\n", name, len(course.Evaluations))
			summary.Indexed++
		}
	}

	fmt.Fprintf(w, "\nindexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)

	if summary.Indexed > 0 || summary.Updated > 0 {
		if err := s.ExportYAML(ctx, QueryOptions{}); err != nil {
			fmt.Fprintf(w, "warning: export.yaml write failed: %v\n", err)
		}
	}

	return summary, nil
}

func (s *Store) ingestCourse(ctx context.Context, course *types.Course, modTime string, isUpdate bool) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	if isUpdate {
		if _, err := tx.ExecContext(ctx, `DELETE FROM evaluations WHERE course_key = ?`, course.Key()); err != nil {
			return fmt.Errorf("deleting old evaluations: %w", err)
		}
	}

	areasJSON, _ := json.Marshal(course.Areas)
	_, err = tx.ExecContext(ctx,
		`INSERT INTO courses (key, code, nrc, name, period, credits, instructor, areas, source_file)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(key) DO UPDATE SET
			code=excluded.code, nrc=excluded.nrc, name=excluded.name,
			period=excluded.period, credits=excluded.credits,
			instructor=excluded.instructor, areas=excluded.areas,
			source_file=excluded.source_file`,
		course.Key(), course.Code, course.NRC, course.Name, course.Period,
		course.Credits, course.Instructor, string(areasJSON), course.SourceFile,
	)
	if err != nil {
		return fmt.Errorf("upserting course: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO evaluations (course_key, label, kind, abbrev, weight, week, eval_date, resolution, search_text)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	for _, e := range course.Evaluations {
		_, err := stmt.ExecContext(ctx,
			course.Key(), e.Label, e.Kind, e.Code, e.Weight, e.Week,
			e.Date.String(), string(e.Resolution), course.Name+" "+e.Label,
		)
		if err != nil {
			return fmt.Errorf("inserting evaluation %q: %w", e.Label, err)
		}
	}

	_, err = tx.ExecContext(ctx,
		`INSERT INTO ingest_status (course_key, file_mod_time) VALUES (?, ?)
		 ON CONFLICT(course_key) DO UPDATE SET file_mod_time=excluded.file_mod_time`,
		course.Key(), modTime,
	)
	if err != nil {
		return fmt.Errorf("updating ingest status: %w", err)
	}

	return tx.Commit()
}
