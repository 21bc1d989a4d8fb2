// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parse locates labeled fields and evaluation tables in the text
// of one syllabus document. All matching is case- and accent-insensitive;
// the documents are Spanish and inconsistent about both.
package parse

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// foldChain decomposes accented runes and strips their combining marks,
// so "Código" and "CODIGO" compare equal after lowercasing.
var foldChain = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Fold returns s lowercased with accents removed. For the Latin text of
// this template each accented rune folds to exactly one base rune, so
// rune offsets in the folded string line up with the original; matchLabel
// relies on that to slice values out of the unfolded line.
func Fold(s string) string {
	out, _, err := transform.String(foldChain, s)
	if err != nil {
		out = s
	}
	return strings.ToLower(out)
}

// FirstInt returns the first unsigned integer embedded in s.
func FirstInt(s string) (int, bool) {
	n := 0
	found := false
	for _, r := range s {
		if r >= '0' && r <= '9' {
			n = n*10 + int(r-'0')
			found = true
			continue
		}
		if found {
			break
		}
	}
	return n, found
}

// SplitList splits a value on bullet characters or commas and trims the
// pieces. Program/area lists use commas as separators.
func SplitList(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '•' || r == '\uf0b7' || r == ',' || r == ';'
	})
	return trimParts(parts)
}

// SplitBullets splits a value on bullet characters and semicolons only.
// Faculty names are "Apellidos, Nombres", so a comma there is part of one
// name, not a list separator.
func SplitBullets(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == '•' || r == '\uf0b7' || r == ';'
	})
	return trimParts(parts)
}

func trimParts(parts []string) []string {
	var out []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
