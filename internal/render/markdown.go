// Package render serializes a document tree back to text.
package render

import (
	"strings"

	"github.com/tkaine/mdstruct/internal/mdtree"
)

// Markdown reconstructs the document. Heading lines come out normalized
// (hashes, one space, clean title) with the numbering label when asked for
// and present; content and image lines are emitted verbatim. Lines are
// joined with single newlines and nothing is appended past the join.
func Markdown(root *mdtree.Node, includeNumbering bool) string {
	var lines []string
	emit(root, includeNumbering, &lines)
	return strings.Join(lines, "\n")
}

func emit(n *mdtree.Node, includeNumbering bool, lines *[]string) {
	switch n.Kind {
	case mdtree.KindRoot:
		// The root is a container, not a line.
	case mdtree.KindHeading:
		label := ""
		if includeNumbering && n.Num != nil {
			label = n.Num.Formatted
		}
		*lines = append(*lines, strings.Repeat("#", n.Level)+" "+label+n.Title)
	case mdtree.KindContent, mdtree.KindImage:
		*lines = append(*lines, n.Raw)
	}
	for _, c := range n.Children {
		emit(c, includeNumbering, lines)
	}
}
