// Package validate checks heading well-formedness and level progression
// over a parsed document tree.
package validate

import (
	"fmt"
	"strings"

	"github.com/tkaine/mdstruct/internal/mdtree"
)

// Violation is a single defect, tagged with its 1-based source line.
type Violation struct {
	Line    int    `json:"line"`
	Message string `json:"message"`
}

func (v Violation) String() string {
	return fmt.Sprintf("line %d: %s", v.Line, v.Message)
}

// Report aggregates every violation found in one pass. The caller decides
// presentation; nothing here short-circuits.
type Report struct {
	Valid        bool        `json:"valid"`
	HeadingCount int         `json:"headings"`
	LevelCounts  map[int]int `json:"level_counts,omitempty"`
	Note         string      `json:"note,omitempty"`
	Violations   []Violation `json:"violations,omitempty"`
}

// Check runs the format check on each heading in isolation and the
// level-skip check across the heading sequence. The level check judges
// each transition against the previous heading's level: stepping deeper
// by more than one is illegal, while equal or shallower steps are always
// legal (that is how siblings and new chapters work), so one illegal jump
// is reported once, not re-reported for every sibling that follows it. A
// heading that fails the format check is left out of the level-skip check
// (its level is too suspect to judge transitions by) but still counts as
// the previous level for the heading after it.
func Check(root *mdtree.Node) Report {
	report := Report{Valid: true, LevelCounts: map[int]int{}}

	prev := 0
	root.WalkHeadings(func(h *mdtree.Node) {
		report.HeadingCount++
		report.LevelCounts[h.Level]++

		formatOK := true
		if msg := checkFormat(h.Raw); msg != "" {
			report.Violations = append(report.Violations, Violation{Line: h.Line, Message: msg})
			formatOK = false
		}

		if formatOK && h.Level > prev+1 {
			report.Violations = append(report.Violations, Violation{
				Line:    h.Line,
				Message: fmt.Sprintf("heading level jumps from %d to %d; levels may deepen only one at a time", prev, h.Level),
			})
		}
		prev = h.Level
	})

	if report.HeadingCount == 0 {
		report.Note = "no headings found"
		report.LevelCounts = nil
	}
	report.Valid = len(report.Violations) == 0
	return report
}

// checkFormat validates one raw heading line in isolation: a run of 1-6
// hashes, exactly one space, then a non-empty title. It returns the first
// failure so one malformed line yields one violation.
func checkFormat(raw string) string {
	hashes := 0
	for hashes < len(raw) && raw[hashes] == '#' {
		hashes++
	}
	if hashes == 0 || hashes > 6 {
		return fmt.Sprintf("heading must start with 1-6 '#' characters, found %d", hashes)
	}

	rest := raw[hashes:]
	if !strings.HasPrefix(rest, " ") {
		return "heading '#' characters must be followed by exactly one space"
	}
	if len(rest) > 1 && (rest[1] == ' ' || rest[1] == '\t') {
		return "heading '#' characters must be followed by exactly one space"
	}

	if strings.TrimSpace(rest) == "" {
		return "heading has an empty title"
	}
	return ""
}
