// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"strings"
	"unicode"
	"unicode/utf8"
)

// Field identifies one extractable general-information field.
type Field string

const (
	FieldName       Field = "name"
	FieldCode       Field = "code"
	FieldNRC        Field = "nrc"
	FieldCredits    Field = "credits"
	FieldInstructor Field = "instructor"
	FieldPeriod     Field = "period"
	FieldWeeks      Field = "weeks"
	FieldAreas      Field = "areas"
)

// fieldLabels maps each field to its label patterns in priority order.
// Labels are written accent-free and lowercase; matching folds document
// lines the same way. New template variants extend this table, not the
// scan logic.
var fieldLabels = map[Field][]string{
	FieldName:       {"nombre del curso", "nombre de la asignatura"},
	FieldCode:       {"codigo del curso", "codigo de curso"},
	FieldNRC:        {"nrc"},
	FieldCredits:    {"creditos"},
	FieldInstructor: {"cuerpo academico", "docente", "profesor"},
	FieldPeriod:     {"periodo"},
	FieldWeeks:      {"semanas"},
	FieldAreas:      {"area o programa", "carrera"},
}

// RequiredFields are the fields without which a document cannot become a
// course record.
var RequiredFields = []Field{FieldName, FieldCode, FieldNRC}

// FieldResult holds the fields located in one document and the required
// fields that could not be found.
type FieldResult struct {
	Values  map[Field]string
	Missing []Field
}

// Get returns the located value for f, or empty.
func (r FieldResult) Get(f Field) string {
	return r.Values[f]
}

// ParseFields scans the document lines for every known field.
func ParseFields(lines []string) FieldResult {
	values := make(map[Field]string)
	for f := range fieldLabels {
		if v, ok := FindField(lines, f); ok {
			values[f] = v
		}
	}

	var missing []Field
	for _, f := range RequiredFields {
		if values[f] == "" {
			missing = append(missing, f)
		}
	}
	return FieldResult{Values: values, Missing: missing}
}

// FindField scans lines top to bottom for the first label match of f and
// returns the extracted value. The value is the remainder of the matching
// line after the separator, or the next non-empty line when the label
// stands alone. First match wins; the documents are single-column.
func FindField(lines []string, f Field) (string, bool) {
	for _, label := range fieldLabels[f] {
		for i, line := range lines {
			rest, ok := matchLabel(line, label)
			if !ok {
				continue
			}
			if v := cleanValue(rest); v != "" {
				return v, true
			}
			for _, next := range lines[i+1:] {
				if v := cleanValue(next); v != "" {
					return v, true
				}
			}
			return "", false
		}
	}
	return "", false
}

// matchLabel reports whether the folded line contains label followed by a
// ':' or '-' separator, returning the unfolded remainder after the
// separator so accents in the value survive. Between label and separator
// only whitespace and a parenthesized note are allowed, which covers
// lines like "NRC (Codigo de Registro) : 8281".
func matchLabel(line, label string) (string, bool) {
	folded := Fold(line)
	idx := strings.Index(folded, label)
	if idx < 0 {
		return "", false
	}

	// The label must start at a word boundary.
	if idx > 0 {
		if r, _ := utf8.DecodeLastRuneInString(folded[:idx]); unicode.IsLetter(r) || unicode.IsDigit(r) {
			return "", false
		}
	}

	after := folded[idx+len(label):]
	sep := strings.IndexAny(after, ":-")
	if sep < 0 {
		return "", false
	}
	if strings.TrimSpace(stripParens(after[:sep])) != "" {
		return "", false
	}

	// Fold preserves rune counts, so map the folded offset back to the
	// original line by rune index.
	runeOff := utf8.RuneCountInString(folded[:idx+len(label)+sep]) + 1
	orig := []rune(line)
	if runeOff > len(orig) {
		return "", false
	}
	return string(orig[runeOff:]), true
}

// stripParens removes parenthesized spans from s.
func stripParens(s string) string {
	var b strings.Builder
	depth := 0
	for _, r := range s {
		switch {
		case r == '(':
			depth++
		case r == ')':
			if depth > 0 {
				depth--
			}
		case depth == 0:
			b.WriteRune(r)
		}
	}
	return b.String()
}

// cleanValue trims whitespace and trailing punctuation from a candidate
// field value.
func cleanValue(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimRight(s, ".,;:")
	return strings.TrimSpace(s)
}
