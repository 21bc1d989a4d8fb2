package catalog

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/acadops/syllabus-etl/internal/emit"
	"github.com/acadops/syllabus-etl/pkg/types"
)

// --- test helpers ---

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	tmpDir := t.TempDir()

	coursesDir := filepath.Join(tmpDir, "cursos")
	if err := os.MkdirAll(coursesDir, 0o755); err != nil {
		t.Fatal(err)
	}

	cfg := types.CatalogConfig{
		Dir:        filepath.Join(tmpDir, "catalogo"),
		MaxResults: 20,
	}
	store, err := NewStore(cfg, coursesDir)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })

	return store, tmpDir
}

func sampleCourse(code, nrc string) *types.Course {
	return &types.Course{
		Name:       "Análisis de Circuitos Eléctricos 2",
		Code:       code,
		NRC:        nrc,
		Period:     "2025-2",
		Credits:    4,
		Instructor: "Rojas Quispe",
		Areas:      []string{"INGENIERÍA ELECTRÓNICA"},
		Evaluations: []types.Evaluation{
			{Label: "Examen Parcial", Kind: "examen", Code: "EP", Weight: 30, Week: 8, Resolution: types.ResolvedByWeek},
			{Label: "Examen Final", Kind: "examen", Code: "EF", Weight: 40, Week: 16, Resolution: types.ResolvedByWeek},
			{Label: "Trabajos de laboratorio", Kind: "laboratorio", Weight: 30,
				Date: types.NewDate(2025, time.October, 20), Resolution: types.ResolvedByDate},
		},
		SourceFile: "UG-202520_" + code + "-" + nrc + ".pdf",
	}
}

// ingestHelper writes a course record file and ingests it.
func ingestHelper(t *testing.T, store *Store, tmpDir string, c *types.Course) {
	t.Helper()
	if _, err := emit.WriteCourse(filepath.Join(tmpDir, "cursos"), c); err != nil {
		t.Fatal(err)
	}
	var buf strings.Builder
	if _, err := store.Ingest(context.Background(), &buf); err != nil {
		t.Fatal(err)
	}
}

// --- schema tests ---

func TestNewStoreCreatesSchema(t *testing.T) {
	store, _ := testSetup(t)

	tables := []string{"courses", "evaluations", "evaluations_fts", "ingest_status"}
	for _, table := range tables {
		var count int
		err := store.db.QueryRow(
			`SELECT count(*) FROM sqlite_master WHERE type IN ('table','view') AND name = ?`, table,
		).Scan(&count)
		if err != nil {
			t.Fatalf("checking table %s: %v", table, err)
		}
		if count == 0 {
			t.Errorf("table %s does not exist", table)
		}
	}
}

// --- ingest tests ---

func TestIngestIndexesCourses(t *testing.T) {
	store, tmpDir := testSetup(t)

	for _, c := range []*types.Course{sampleCourse("1AEL0244", "8281"), sampleCourse("1AEL0244", "8282")} {
		if _, err := emit.WriteCourse(filepath.Join(tmpDir, "cursos"), c); err != nil {
			t.Fatal(err)
		}
	}

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Indexed != 2 || summary.Total() != 2 {
		t.Fatalf("summary = %+v", summary)
	}

	courses, err := store.Courses(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if len(courses) != 2 {
		t.Fatalf("got %d courses, want 2", len(courses))
	}
	if courses[0].Key() != "1AEL0244-8281" {
		t.Errorf("first course = %s", courses[0].Key())
	}
	if len(courses[0].Areas) != 1 {
		t.Errorf("areas not restored: %+v", courses[0])
	}
}

func TestCoursesRejectsCorruptAreas(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, sampleCourse("1AEL0244", "8281"))

	if _, err := store.db.Exec(`UPDATE courses SET areas = 'not-json'`); err != nil {
		t.Fatal(err)
	}

	_, err := store.Courses(context.Background())
	if err == nil || !strings.Contains(err.Error(), "decoding areas") {
		t.Errorf("err = %v, want areas decode failure", err)
	}
}

func TestIngestSkipsUnchangedFiles(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, sampleCourse("1AEL0244", "8281"))

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 1 || summary.Indexed != 0 {
		t.Errorf("second run summary = %+v", summary)
	}
	if !strings.Contains(buf.String(), "skipped") {
		t.Errorf("output = %s", buf.String())
	}
}

func TestIngestIgnoresCombinedListing(t *testing.T) {
	store, tmpDir := testSetup(t)

	c := sampleCourse("1AEL0244", "8281")
	if _, err := emit.WriteAll(filepath.Join(tmpDir, "cursos"), []*types.Course{c}); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Total() != 0 {
		t.Errorf("combined listing should not be ingested: %+v", summary)
	}
}

func TestIngestWritesExport(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, sampleCourse("1AEL0244", "8281"))

	if _, err := os.Stat(filepath.Join(tmpDir, "catalogo", "export.yaml")); err != nil {
		t.Errorf("export.yaml not written: %v", err)
	}
}

// --- retrieve tests ---

func TestRetrieveFullText(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, sampleCourse("1AEL0244", "8281"))

	results, err := store.Retrieve(context.Background(), QueryOptions{Query: "laboratorio"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Fatalf("got %d results, want 1: %+v", len(results), results)
	}
	r := results[0]
	if r.Label != "Trabajos de laboratorio" || r.CourseKey != "1AEL0244-8281" {
		t.Errorf("result = %+v", r)
	}
	if r.Date.String() != "2025-10-20" || r.Resolution != types.ResolvedByDate {
		t.Errorf("date not restored: %+v", r)
	}

	// Course-name terms hit too; every evaluation of the course matches.
	results, err = store.Retrieve(context.Background(), QueryOptions{Query: "circuitos"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Errorf("course-name search: got %d results, want 3", len(results))
	}
}

func TestRetrieveStructuredFilters(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, sampleCourse("1AEL0244", "8281"))
	ingestHelper(t, store, tmpDir, sampleCourse("1AEL0244", "8282"))

	results, err := store.Retrieve(context.Background(), QueryOptions{Kind: "examen", NRC: "8281"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2: %+v", len(results), results)
	}
	// Structured queries sort by course key then week.
	if results[0].Week != 8 || results[1].Week != 16 {
		t.Errorf("order = %+v", results)
	}

	results, err = store.Retrieve(context.Background(), QueryOptions{Week: 16})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 2 {
		t.Errorf("week filter across sections: got %d, want 2", len(results))
	}
}

func TestRetrieveHonorsMaxResults(t *testing.T) {
	store, tmpDir := testSetup(t)
	ingestHelper(t, store, tmpDir, sampleCourse("1AEL0244", "8281"))

	results, err := store.Retrieve(context.Background(), QueryOptions{MaxResults: 1})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("got %d results, want 1", len(results))
	}
}

func TestIngestUpdateReplacesEvaluations(t *testing.T) {
	store, tmpDir := testSetup(t)
	c := sampleCourse("1AEL0244", "8281")
	ingestHelper(t, store, tmpDir, c)

	c.Evaluations = c.Evaluations[:1]
	path := filepath.Join(tmpDir, "cursos", emit.CourseFileName(c))
	if _, err := emit.WriteCourse(filepath.Join(tmpDir, "cursos"), c); err != nil {
		t.Fatal(err)
	}
	// Push the mod time forward so the file reads as changed.
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}

	var buf strings.Builder
	summary, err := store.Ingest(context.Background(), &buf)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Updated != 1 {
		t.Fatalf("summary = %+v", summary)
	}

	results, err := store.Retrieve(context.Background(), QueryOptions{Code: "1AEL0244"})
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 {
		t.Errorf("stale evaluations kept: %+v", results)
	}
}
