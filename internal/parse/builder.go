// Package parse turns flat Markdown text into an mdtree document tree.
//
// The builder is deliberately permissive: any line opening with '#' is
// taken as a heading by hash count, and level jumps always find a parent.
// Judging whether a heading is well-formed is the validator's concern.
package parse

import (
	"strings"

	"github.com/adrg/frontmatter"

	"github.com/tkaine/mdstruct/internal/mdtree"
)

// Document is the parse result: the tree plus any front-matter metadata.
type Document struct {
	Root *mdtree.Node
	// Meta holds decoded YAML front matter, nil when the document has none
	// or the block failed to decode.
	Meta map[string]any
}

// Build parses Markdown text into a document tree. It never fails on
// malformed input; defects are degraded to best-effort nodes for the
// validator to report.
func Build(text string) *Document {
	root := mdtree.NewRoot()
	doc := &Document{Root: root}

	lines := splitLines(text)

	// A leading front-matter block is opaque: its lines stay verbatim
	// Content under the root, and nothing inside it (YAML comments start
	// with '#') is mistaken for a heading.
	fmEnd := frontMatterEnd(lines)
	if fmEnd > 0 {
		doc.Meta = decodeFrontMatter(text)
		for i := 0; i < fmEnd; i++ {
			root.AddChild(mdtree.NewContent(lines[i], i+1))
		}
	}

	type stackEntry struct {
		level int
		node  *mdtree.Node
	}
	var stack []stackEntry

	for i := fmEnd; i < len(lines); i++ {
		line := lines[i]
		lineNo := i + 1

		if level, rest, ok := headingLine(line); ok {
			orig := strings.TrimSpace(rest)
			node := mdtree.NewHeading(level, CleanTitle(orig), orig, line, lineNo)

			// Pop everything at or below this level; they are closed.
			for len(stack) > 0 && stack[len(stack)-1].level >= level {
				stack = stack[:len(stack)-1]
			}
			if len(stack) > 0 {
				stack[len(stack)-1].node.AddChild(node)
			} else {
				root.AddChild(node)
			}
			stack = append(stack, stackEntry{level: level, node: node})
			continue
		}

		parent := root
		if len(stack) > 0 {
			parent = stack[len(stack)-1].node
		}

		// A line that is exactly one remote image reference gets its own
		// node so the localizer can address it; inline images stay content.
		if refs := ExtractImages(line); len(refs) == 1 && strings.TrimSpace(line) == strings.TrimSpace(refs[0].Ref) {
			parent.AddChild(mdtree.NewImage(refs[0], line, lineNo))
			continue
		}

		parent.AddChild(mdtree.NewContent(line, lineNo))
	}

	return doc
}

// headingLine reports whether line opens with a hash run. level is capped
// at 6; runs of more than six hashes still parse (the validator flags
// them) with the extra hashes kept in rest.
func headingLine(line string) (level int, rest string, ok bool) {
	if !strings.HasPrefix(line, "#") {
		return 0, "", false
	}
	n := 0
	for n < len(line) && line[n] == '#' {
		n++
	}
	level = n
	if level > 6 {
		level = 6
	}
	return level, line[n:], true
}

// frontMatterEnd returns the number of leading lines taken up by a YAML
// front-matter block (delimiters included), or 0 when there is none.
func frontMatterEnd(lines []string) int {
	if len(lines) == 0 || strings.TrimRight(lines[0], " \t") != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		switch strings.TrimRight(lines[i], " \t") {
		case "---", "...":
			return i + 1
		}
	}
	return 0
}

func decodeFrontMatter(text string) map[string]any {
	var meta map[string]any
	if _, err := frontmatter.Parse(strings.NewReader(text), &meta); err != nil {
		return nil
	}
	return meta
}

// splitLines splits on '\n' the way the renderer joins: a trailing newline
// yields a final empty line that survives the round trip.
func splitLines(text string) []string {
	if text == "" {
		return nil
	}
	return strings.Split(text, "\n")
}
