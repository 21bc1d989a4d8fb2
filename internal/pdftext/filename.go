// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pdftext

import (
	"io/fs"
	"path/filepath"
	"regexp"
	"sort"
	"strings"
)

// FileMeta is the identity encoded in a syllabus filename following the
// institutional naming convention, e.g. "UG-202520_1AEL0244-8281.pdf".
type FileMeta struct {
	// Period is the academic period in "YYYY-T" form (e.g. "2025-2").
	Period string

	// Code is the institutional course code.
	Code string

	// NRC is the section/registration identifier.
	NRC string
}

var fileNamePattern = regexp.MustCompile(`^UG-(\d{5})0_([A-Z0-9_\-]{8})-(\d{4})\.pdf$`)

// ParseFileName extracts period, course code, and NRC from a syllabus
// filename. Returns false when the name does not follow the convention;
// the document is still processed, the filename just contributes nothing.
func ParseFileName(name string) (FileMeta, bool) {
	m := fileNamePattern.FindStringSubmatch(name)
	if m == nil {
		return FileMeta{}, false
	}
	raw := m[1]
	return FileMeta{
		Period: raw[:4] + "-" + raw[4:],
		Code:   m[2],
		NRC:    m[3],
	}, true
}

// FindSyllabi walks dir recursively and returns the paths of all PDF
// files, sorted for deterministic processing order.
func FindSyllabi(dir string) ([]string, error) {
	var paths []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(path), ".pdf") {
			paths = append(paths, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(paths)
	return paths, nil
}
