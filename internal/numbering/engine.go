// Package numbering assigns hierarchical chapter numbers to the heading
// nodes of a document tree.
package numbering

import (
	"strconv"
	"strings"

	"github.com/tkaine/mdstruct/internal/mdtree"
)

// Apply walks every heading in document order and fills in its numbering
// per the policy. Tree shape is never altered; only the Num field is
// written. The six counters live on the stack of this call, so concurrent
// invocations over distinct trees are independent.
func Apply(root *mdtree.Node, policy mdtree.Policy) {
	var counters [6]int
	root.WalkHeadings(func(h *mdtree.Node) {
		number(h, &counters, policy)
	})
}

func number(h *mdtree.Node, counters *[6]int, policy mdtree.Policy) {
	level := h.Level

	if policy.IgnoreFirstLevel && level == 1 {
		h.Num = nil
		return
	}

	effective := level
	if policy.IgnoreFirstLevel && level > 1 {
		effective = level - 1
	}

	counters[effective-1]++
	for i := effective; i < len(counters); i++ {
		counters[i] = 0
	}

	path := make([]int, 0, effective)
	for i := 0; i < effective; i++ {
		if counters[i] > 0 {
			path = append(path, counters[i])
		}
	}

	h.Num = &mdtree.Numbering{Path: path, Formatted: format(path, policy)}
}

func format(path []int, policy mdtree.Policy) string {
	if len(path) == 0 {
		return ""
	}

	switch {
	case policy.LocalizedOrdinals && policy.ArabicSublevels:
		// Top level carries the ordinal token alone; deeper labels drop the
		// top counter and run arabic, which reads as restarting at 1 under
		// each top-level group.
		if len(path) == 1 {
			return CJKNumeral(path[0]) + "、"
		}
		return joinArabic(path[1:])

	case policy.LocalizedOrdinals:
		var sb strings.Builder
		for _, n := range path {
			sb.WriteString(CJKNumeral(n))
			sb.WriteString("、")
		}
		return sb.String()

	default:
		return joinArabic(path)
	}
}

func joinArabic(path []int) string {
	parts := make([]string, len(path))
	for i, n := range path {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, ".") + ". "
}
