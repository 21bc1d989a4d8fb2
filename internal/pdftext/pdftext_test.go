// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"errors"
	"strings"
	"testing"
)

// fakeExecutor implements executor for testing. It returns canned output
// or errors depending on configuration.
type fakeExecutor struct {
	lookPathErr error
	output      []byte
	runErr      error
	gotArgs     []string
}

func (f *fakeExecutor) LookPath(file string) (string, error) {
	if f.lookPathErr != nil {
		return "", f.lookPathErr
	}
	return "/usr/bin/" + file, nil
}

func (f *fakeExecutor) RunCaptured(name string, args ...string) ([]byte, error) {
	f.gotArgs = append([]string{name}, args...)
	return f.output, f.runErr
}

func TestNewPdftotextExtractorMissingBinary(t *testing.T) {
	fake := &fakeExecutor{lookPathErr: errors.New("executable file not found")}
	_, err := newPdftotextExtractor(fake)
	if err == nil {
		t.Fatal("expected error when pdftotext is not on PATH")
	}
	if !strings.Contains(err.Error(), "pdftotext") {
		t.Errorf("error %q should name the missing binary", err)
	}
}

func TestExtractSplitsPages(t *testing.T) {
	fake := &fakeExecutor{output: []byte("page one\nline two\fpage two\f")}
	ex, err := newPdftotextExtractor(fake)
	if err != nil {
		t.Fatal(err)
	}

	pages, err := ex.Extract("silabo.pdf")
	if err != nil {
		t.Fatal(err)
	}
	if len(pages) != 2 {
		t.Fatalf("got %d pages, want 2", len(pages))
	}
	if !strings.Contains(pages[0], "line two") {
		t.Errorf("page 1 = %q, should contain second line", pages[0])
	}
	if pages[1] != "page two" {
		t.Errorf("page 2 = %q, want %q", pages[1], "page two")
	}
}

func TestExtractFailures(t *testing.T) {
	tests := []struct {
		name string
		fake *fakeExecutor
	}{
		{name: "tool error", fake: &fakeExecutor{runErr: errors.New("damaged root object")}},
		{name: "empty output", fake: &fakeExecutor{output: []byte("  \n \f ")}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ex, err := newPdftotextExtractor(tt.fake)
			if err != nil {
				t.Fatal(err)
			}
			_, err = ex.Extract("bad.pdf")
			var extErr *ExtractionError
			if !errors.As(err, &extErr) {
				t.Fatalf("error %v should be an *ExtractionError", err)
			}
			if extErr.Path != "bad.pdf" {
				t.Errorf("error path = %q, want bad.pdf", extErr.Path)
			}
		})
	}
}

func TestLines(t *testing.T) {
	pages := []string{"a  \nb\t", "c"}
	got := Lines(pages)
	want := []string{"a", "b", "c"}
	if len(got) != len(want) {
		t.Fatalf("got %d lines, want %d", len(got), len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestParseFileName(t *testing.T) {
	tests := []struct {
		name     string
		filename string
		want     FileMeta
		ok       bool
	}{
		{
			name:     "standard syllabus name",
			filename: "UG-202520_1AEL0244-8281.pdf",
			want:     FileMeta{Period: "2025-2", Code: "1AEL0244", NRC: "8281"},
			ok:       true,
		},
		{
			name:     "first term",
			filename: "UG-202410_1ASI0733-2210.pdf",
			want:     FileMeta{Period: "2024-1", Code: "1ASI0733", NRC: "2210"},
			ok:       true,
		},
		{
			name:     "unrelated pdf",
			filename: "notas-de-clase.pdf",
			ok:       false,
		},
		{
			name:     "wrong extension",
			filename: "UG-202520_1AEL0244-8281.txt",
			ok:       false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseFileName(tt.filename)
			if ok != tt.ok {
				t.Fatalf("ok = %v, want %v", ok, tt.ok)
			}
			if got != tt.want {
				t.Errorf("meta = %+v, want %+v", got, tt.want)
			}
		})
	}
}
