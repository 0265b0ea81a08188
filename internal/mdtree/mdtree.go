// Package mdtree models a Markdown document as a tree keyed by heading
// depth. The tree is built once per operation, mutated in place by the
// numbering engine, and read by the validator and renderer.
package mdtree

import (
	"fmt"
	"strings"
)

// Kind distinguishes the node variants. The set is closed: every consumer
// switches exhaustively over it.
type Kind int

const (
	KindRoot Kind = iota
	KindHeading
	KindContent
	KindImage
)

// ImageKind distinguishes the two image reference syntaxes.
type ImageKind int

const (
	ImageMarkdown ImageKind = iota // ![alt](url "title")
	ImageHTML                      // <img src="url" ...>
)

// ImageRef describes a remote image reference found in the source.
type ImageRef struct {
	Kind      ImageKind
	Ref       string // the exact source span, e.g. `![a](http://x/y.png)`
	URL       string // original remote URL
	LocalPath string // relative local path once localized, empty before
	Alt       string
	Title     string // markdown title, empty for HTML images
	Attrs     string // attribute text for HTML images, src excluded
}

// Numbering is the counter path and formatted label assigned to a heading
// by a completed numbering pass. Formatted includes the trailing separator,
// e.g. "1.2.1. " or "一、".
type Numbering struct {
	Path      []int
	Formatted string
}

// Policy controls how the numbering engine formats labels.
type Policy struct {
	// IgnoreFirstLevel leaves H1 headings unnumbered and shifts deeper
	// headings up one effective level.
	IgnoreFirstLevel bool
	// LocalizedOrdinals formats counters as CJK numerals (一、二、...).
	LocalizedOrdinals bool
	// ArabicSublevels keeps sublevels arabic under CJK top-level labels.
	// Only meaningful when LocalizedOrdinals is set.
	ArabicSublevels bool
}

// Node is a node in the document tree. Children are exclusively owned and
// kept in document order.
type Node struct {
	Kind      Kind
	Level     int    // heading level 1-6, zero otherwise
	Title     string // clean heading title, numbering stripped
	OrigTitle string // heading text as written, numbering included
	Raw       string // the verbatim source line ("" for the root)
	Line      int    // 1-based source line number, 0 for the root
	Image     *ImageRef
	Num       *Numbering
	Children  []*Node
}

// NewRoot returns an empty root node.
func NewRoot() *Node {
	return &Node{Kind: KindRoot}
}

// NewHeading returns a heading node for a raw source line. title is the
// clean title, orig the heading text as written.
func NewHeading(level int, title, orig, raw string, line int) *Node {
	return &Node{Kind: KindHeading, Level: level, Title: title, OrigTitle: orig, Raw: raw, Line: line}
}

// NewContent returns an opaque content node holding one verbatim line.
func NewContent(raw string, line int) *Node {
	return &Node{Kind: KindContent, Raw: raw, Line: line}
}

// NewImage returns a node for a line that is a single remote image reference.
func NewImage(ref ImageRef, raw string, line int) *Node {
	return &Node{Kind: KindImage, Image: &ref, Raw: raw, Line: line}
}

// AddChild appends a child, preserving document order.
func (n *Node) AddChild(child *Node) {
	n.Children = append(n.Children, child)
}

// Walk visits n and all descendants in document (pre-)order.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// WalkHeadings visits every heading node in document order.
func (n *Node) WalkHeadings(fn func(*Node)) {
	n.Walk(func(node *Node) {
		if node.Kind == KindHeading {
			fn(node)
		}
	})
}

// Headings collects all heading nodes in document order.
func (n *Node) Headings() []*Node {
	var out []*Node
	n.WalkHeadings(func(h *Node) { out = append(out, h) })
	return out
}

// String renders an indented outline of the tree for debugging.
func (n *Node) String() string {
	var sb strings.Builder
	n.dump(&sb, 0)
	return sb.String()
}

func (n *Node) dump(sb *strings.Builder, depth int) {
	indent := strings.Repeat("  ", depth)
	switch n.Kind {
	case KindRoot:
		sb.WriteString(indent + "Root\n")
	case KindHeading:
		label := ""
		if n.Num != nil {
			label = fmt.Sprintf(" [%s]", n.Num.Formatted)
		}
		fmt.Fprintf(sb, "%sH%d: %s%s\n", indent, n.Level, n.Title, label)
	case KindContent:
		preview := n.Raw
		if len(preview) > 50 {
			preview = preview[:47] + "..."
		}
		fmt.Fprintf(sb, "%sContent: %s\n", indent, preview)
	case KindImage:
		src := n.Image.URL
		if n.Image.LocalPath != "" {
			src = n.Image.LocalPath
		}
		fmt.Fprintf(sb, "%sImage: %s (alt: %s)\n", indent, src, n.Image.Alt)
	}
	for _, c := range n.Children {
		c.dump(sb, depth+1)
	}
}
