// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parse

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/acadops/syllabus-etl/pkg/types"
)

var (
	unitHeading = regexp.MustCompile(`^unidad\s+n[.°º]*\s*(\d+)\s*:\s*(.+)$`)
	weekRange   = regexp.MustCompile(`^semana\s+(\d{1,2})\s*-\s*(\d{1,2})\b`)
)

const achievementLabel = "logro de la unidad:"

// ParseUnits parses the learning-units section into unit blocks. Each
// block starts at a "Unidad n. N: Title" line and collects an achievement
// statement, a week range, and bulleted topics until the next block or
// the end of the section. Malformed pieces degrade to zero values; a
// document without the section yields nil.
func ParseUnits(lines []string) []types.LearningUnit {
	section := unitSectionLines(lines)

	var units []types.LearningUnit
	var cur *types.LearningUnit

	for _, line := range section {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" {
			continue
		}
		folded := Fold(trimmed)

		if m := unitHeading.FindStringSubmatch(folded); m != nil {
			if cur != nil {
				units = append(units, *cur)
			}
			num, _ := strconv.Atoi(m[1])
			// Take the title from the unfolded line to keep accents.
			title := trimmed
			if i := strings.Index(trimmed, ":"); i >= 0 {
				title = strings.TrimSpace(trimmed[i+1:])
			}
			cur = &types.LearningUnit{Number: num, Title: title}
			continue
		}
		if cur == nil {
			continue
		}

		if strings.HasPrefix(folded, achievementLabel) {
			if i := strings.Index(trimmed, ":"); i >= 0 {
				cur.Achievement = strings.TrimSpace(trimmed[i+1:])
			}
			continue
		}
		if m := weekRange.FindStringSubmatch(folded); m != nil && cur.StartWeek == 0 {
			cur.StartWeek, _ = strconv.Atoi(m[1])
			cur.EndWeek, _ = strconv.Atoi(m[2])
			// Topics often share the week-range line in the layout output.
			rest := trimmed[len(m[0]):]
			cur.Topics = append(cur.Topics, SplitList(rest)...)
			continue
		}
		if strings.HasPrefix(trimmed, "•") || strings.HasPrefix(trimmed, "\uf0b7") {
			cur.Topics = append(cur.Topics, SplitList(trimmed)...)
		}
	}
	if cur != nil {
		units = append(units, *cur)
	}
	return units
}

// unitSectionLines bounds the "VI. UNIDADES DE APRENDIZAJE" section.
func unitSectionLines(lines []string) []string {
	start := -1
	for i, line := range lines {
		folded := Fold(strings.TrimSpace(line))
		if sectionHeading.MatchString(folded) && strings.Contains(folded, "unidades de aprendizaje") {
			start = i
			break
		}
	}
	if start < 0 {
		return nil
	}

	var section []string
	for _, line := range lines[start+1:] {
		folded := Fold(strings.TrimSpace(line))
		if sectionHeading.MatchString(folded) {
			break
		}
		section = append(section, line)
	}
	return section
}
