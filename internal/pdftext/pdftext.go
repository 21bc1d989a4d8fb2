// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pdftext adapts an external PDF-text-extraction tool into the
// ordered page/line sequences the parsing stages consume.
package pdftext

import (
	"bytes"
	"fmt"
	"os/exec"
	"strings"
)

const binPdftotext = "pdftotext"

// ExtractionError reports a document the extraction tool could not read
// (corrupt, encrypted, or image-only PDFs). It is fatal for that one
// document only; the batch continues.
type ExtractionError struct {
	Path string
	Err  error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("extracting text from %s: %v", e.Path, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}

// Extractor yields the ordered page text of a PDF document. Tests supply
// a fake; production uses the pdftotext binary.
type Extractor interface {
	Extract(path string) ([]string, error)
}

// executor abstracts command execution for testing.
type executor interface {
	LookPath(file string) (string, error)
	RunCaptured(name string, args ...string) ([]byte, error)
}

// osExecutor is the production executor backed by os/exec.
type osExecutor struct{}

func (osExecutor) LookPath(file string) (string, error) {
	return exec.LookPath(file)
}

func (osExecutor) RunCaptured(name string, args ...string) ([]byte, error) {
	return exec.Command(name, args...).Output()
}

var defaultExec executor = osExecutor{}

// PdftotextExtractor shells out to the pdftotext binary. The -layout flag
// keeps the column spacing of tables intact in the extracted text.
type PdftotextExtractor struct {
	exec executor
}

// NewPdftotextExtractor verifies the pdftotext binary is on PATH and
// returns an extractor bound to it.
func NewPdftotextExtractor() (*PdftotextExtractor, error) {
	return newPdftotextExtractor(defaultExec)
}

func newPdftotextExtractor(exec executor) (*PdftotextExtractor, error) {
	if _, err := exec.LookPath(binPdftotext); err != nil {
		return nil, fmt.Errorf("%s not found on PATH: %w", binPdftotext, err)
	}
	return &PdftotextExtractor{exec: exec}, nil
}

// Extract runs pdftotext on the document and splits its output into pages
// on form-feed boundaries. An empty result is treated as an extraction
// failure, which is what image-only scans produce.
func (p *PdftotextExtractor) Extract(path string) ([]string, error) {
	out, err := p.exec.RunCaptured(binPdftotext, "-layout", "-enc", "UTF-8", path, "-")
	if err != nil {
		return nil, &ExtractionError{Path: path, Err: err}
	}
	if len(bytes.TrimSpace(out)) == 0 {
		return nil, &ExtractionError{Path: path, Err: fmt.Errorf("no extractable text")}
	}

	pages := strings.Split(string(out), "\f")
	for len(pages) > 0 && strings.TrimSpace(pages[len(pages)-1]) == "" {
		pages = pages[:len(pages)-1]
	}
	return pages, nil
}

// Lines flattens pages into one ordered sequence of right-trimmed lines.
func Lines(pages []string) []string {
	var lines []string
	for _, page := range pages {
		for _, line := range strings.Split(page, "\n") {
			lines = append(lines, strings.TrimRight(line, " \t\r"))
		}
	}
	return lines
}
