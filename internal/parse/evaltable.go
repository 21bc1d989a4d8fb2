// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/acadops/syllabus-etl/pkg/types"
)

// KindOtro is the fallback category for evaluations no keyword matches.
const KindOtro = "otro"

// kindKeywords classifies an evaluation from its label or type column.
// First hit wins, so the more specific substrings come first.
var kindKeywords = []struct {
	substr, kind string
}{
	{"proyecto", "proyecto"},
	{"parcial", "examen"},
	{"examen", "examen"},
	{"final", "examen"},
	{"laborat", "laboratorio"},
	{"practica", "practica"},
	{"quiz", "control"},
	{"control", "control"},
	{"participacion", "participacion"},
	{"tarea", "trabajo"},
	{"trabajo", "trabajo"},
}

// ClassifyKind returns the category tag for an evaluation label.
func ClassifyKind(label string) string {
	folded := Fold(label)
	for _, k := range kindKeywords {
		if strings.Contains(folded, k.substr) {
			return k.kind
		}
	}
	return KindOtro
}

var (
	// sectionHeading matches the roman-numeral section headings of the
	// template, e.g. "VIII. EVALUACIÓN" once folded.
	sectionHeading = regexp.MustCompile(`^[ivx]+\.\s`)

	// columnSplit breaks a table row into cells: commas, tabs, or the
	// 2+ space runs pdftotext -layout leaves between columns.
	columnSplit = regexp.MustCompile(`\s*,\s*|\t+|\s{2,}`)

	weightPattern = regexp.MustCompile(`^(\d{1,3}(?:[.,]\d+)?)\s*%?$`)
	weekPattern   = regexp.MustCompile(`^(?:semana\s+)?(\d{1,2})$`)

	// abbrevSuffix splits labels of the form "Examen Parcial - EP".
	abbrevSuffix = regexp.MustCompile(`^(.*\S)\s+-\s+([A-Z]{1,4}\d{0,2})$`)
)

// dateLayouts are the explicit date formats observed in the table, tried
// before any week-number interpretation.
var dateLayouts = []string{"2006-01-02", "02/01/2006", "2/1/2006"}

// ParseEvaluations locates the evaluation table in the document lines and
// parses each row into an evaluation entry. Rows that do not match the
// minimum shape (label plus numeric weight) are skipped rather than
// treated as errors; page breaks and decorative lines appear inside
// tables. A document with no recognizable table yields an empty slice.
func ParseEvaluations(lines []string) ([]types.Evaluation, []string) {
	rows := evalTableLines(lines)

	var evals []types.Evaluation
	var warnings []string
	for _, row := range rows {
		if isColumnHeader(Fold(row)) {
			// The template repeats the column header on page breaks.
			continue
		}
		e, ok := parseEvalRow(row)
		if !ok {
			continue
		}
		if e.Resolution == types.Unresolved {
			warnings = append(warnings, fmt.Sprintf("evaluation %q has no recognizable week or date", e.Label))
		}
		evals = append(evals, e)
	}
	return evals, warnings
}

// evalTableLines returns the lines between the evaluation section heading
// (or the table's own column header) and the terminator: a total row, the
// next section heading, or end of input.
func evalTableLines(lines []string) []string {
	start := -1
	for i, line := range lines {
		folded := Fold(line)
		if isEvalHeading(folded) || isColumnHeader(folded) {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var rows []string
	for _, line := range lines[start+1:] {
		folded := Fold(strings.TrimSpace(line))
		if folded == "" {
			continue
		}
		if strings.HasPrefix(folded, "total") || sectionHeading.MatchString(folded) {
			break
		}
		rows = append(rows, line)
	}
	return rows
}

// isEvalHeading matches the "VIII. EVALUACIÓN" style section heading.
func isEvalHeading(folded string) bool {
	return sectionHeading.MatchString(folded) && strings.Contains(folded, "evaluacion")
}

// isColumnHeader matches the TIPO/PESO/SEMANA column header row.
func isColumnHeader(folded string) bool {
	return strings.Contains(folded, "tipo") &&
		strings.Contains(folded, "peso") &&
		strings.Contains(folded, "semana")
}

// parseEvalRow parses one table row. The minimum shape is a label cell
// plus a numeric weight cell; the week/date cell and a type cell are
// optional. A row without a parsable weight is disqualified.
func parseEvalRow(row string) (types.Evaluation, bool) {
	cells := splitCells(row)
	if len(cells) < 2 {
		return types.Evaluation{}, false
	}

	label := cells[0]
	rest := cells[1:]

	weight, wIdx := findWeight(rest)
	if wIdx < 0 {
		return types.Evaluation{}, false
	}

	e := types.Evaluation{
		Label:      label,
		Weight:     weight,
		Resolution: types.Unresolved,
	}

	if m := abbrevSuffix.FindStringSubmatch(label); m != nil {
		e.Label = m[1]
		e.Code = m[2]
	}

	var kindHint string
	for i, cell := range rest {
		if i == wIdx {
			continue
		}
		if e.Resolution == types.Unresolved {
			if d, ok := parseDateCell(cell); ok {
				e.Date = d
				e.Resolution = types.ResolvedByDate
				continue
			}
			if w, ok := parseWeekCell(cell); ok {
				e.Week = w
				e.Resolution = types.ResolvedByWeek
				continue
			}
		}
		if kindHint == "" && !isNumericCell(cell) {
			kindHint = cell
		}
	}

	e.Kind = ClassifyKind(e.Label)
	if e.Kind == KindOtro && kindHint != "" {
		e.Kind = ClassifyKind(kindHint)
	}
	return e, true
}

// splitCells breaks a row into trimmed, non-empty cells.
func splitCells(row string) []string {
	parts := columnSplit.Split(strings.TrimSpace(row), -1)
	var cells []string
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			cells = append(cells, p)
		}
	}
	return cells
}

// findWeight picks the weight cell: the first cell carrying a percent
// sign, else the first bare number in the row. The template always writes
// the percent sign on weights, so the bare-number fallback only fires on
// degraded extractions; there it leans on PESO preceding SEMANA in column
// order, and a row of bare numbers with the columns swapped will misread.
func findWeight(cells []string) (float64, int) {
	for i, c := range cells {
		if strings.HasSuffix(c, "%") {
			if w, ok := parseWeightValue(c); ok {
				return w, i
			}
		}
	}
	for i, c := range cells {
		if w, ok := parseWeightValue(c); ok {
			return w, i
		}
	}
	return 0, -1
}

func parseWeightValue(cell string) (float64, bool) {
	m := weightPattern.FindStringSubmatch(cell)
	if m == nil {
		return 0, false
	}
	w, err := strconv.ParseFloat(strings.ReplaceAll(m[1], ",", "."), 64)
	if err != nil {
		return 0, false
	}
	return w, true
}

func parseDateCell(cell string) (types.Date, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, cell); err == nil {
			return types.Date{Time: t}, true
		}
	}
	return types.Date{}, false
}

func parseWeekCell(cell string) (int, bool) {
	m := weekPattern.FindStringSubmatch(Fold(cell))
	if m == nil {
		return 0, false
	}
	w, err := strconv.Atoi(m[1])
	if err != nil || w < 1 {
		return 0, false
	}
	return w, true
}

// isNumericCell reports whether the cell is purely numeric, with or
// without a percent sign.
func isNumericCell(cell string) bool {
	_, ok := parseWeightValue(cell)
	return ok
}
