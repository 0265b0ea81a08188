package parse

import (
	"testing"

	"github.com/tkaine/mdstruct/internal/mdtree"
)

func TestBuild_HeadingHierarchy(t *testing.T) {
	input := `# Title

Intro text.

## Section A

### Subsection A1

## Section B
`
	doc := Build(input)
	root := doc.Root

	if len(root.Children) != 1 {
		t.Fatalf("expected 1 top-level child (h1), got %d", len(root.Children))
	}
	h1 := root.Children[0]
	if h1.Kind != mdtree.KindHeading || h1.Title != "Title" || h1.Level != 1 {
		t.Fatalf("unexpected h1 node: %+v", h1)
	}

	var h2s []*mdtree.Node
	for _, c := range h1.Children {
		if c.Kind == mdtree.KindHeading {
			h2s = append(h2s, c)
		}
	}
	if len(h2s) != 2 {
		t.Fatalf("expected 2 h2 children under h1, got %d", len(h2s))
	}
	if h2s[0].Title != "Section A" || h2s[1].Title != "Section B" {
		t.Errorf("unexpected h2 titles: %q, %q", h2s[0].Title, h2s[1].Title)
	}

	var h3s []*mdtree.Node
	for _, c := range h2s[0].Children {
		if c.Kind == mdtree.KindHeading {
			h3s = append(h3s, c)
		}
	}
	if len(h3s) != 1 || h3s[0].Title != "Subsection A1" {
		t.Fatalf("expected one h3 %q under Section A, got %v", "Subsection A1", h3s)
	}
}

func TestBuild_StripsNumberingIntoTitle(t *testing.T) {
	doc := Build("## 1.2. Background")
	h := doc.Root.Headings()[0]
	if h.Title != "Background" {
		t.Errorf("Title = %q, want %q", h.Title, "Background")
	}
	if h.OrigTitle != "1.2. Background" {
		t.Errorf("OrigTitle = %q, want %q", h.OrigTitle, "1.2. Background")
	}
	if h.Raw != "## 1.2. Background" {
		t.Errorf("Raw = %q, want the verbatim line", h.Raw)
	}
}

func TestBuild_LevelJumpStillFindsParent(t *testing.T) {
	doc := Build("# A\n#### Deep\n## B")
	h1 := doc.Root.Children[0]
	if len(h1.Children) != 2 {
		t.Fatalf("expected the h4 and h2 both under h1, got %d children", len(h1.Children))
	}
	if h1.Children[0].Level != 4 || h1.Children[1].Level != 2 {
		t.Errorf("unexpected child levels %d, %d", h1.Children[0].Level, h1.Children[1].Level)
	}
}

func TestBuild_PermissiveHeadings(t *testing.T) {
	// Malformed heading lines still become heading nodes; judging them is
	// the validator's job.
	doc := Build("##NoSpace\n####### Seven")
	headings := doc.Root.Headings()
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %d", len(headings))
	}
	if headings[0].Level != 2 || headings[0].Title != "NoSpace" {
		t.Errorf("unexpected first heading: level %d title %q", headings[0].Level, headings[0].Title)
	}
	if headings[1].Level != 6 {
		t.Errorf("hash run over 6 should cap at level 6, got %d", headings[1].Level)
	}
}

func TestBuild_LineNumbers(t *testing.T) {
	doc := Build("intro\n# A\ntext\n## B")
	headings := doc.Root.Headings()
	if headings[0].Line != 2 || headings[1].Line != 4 {
		t.Errorf("heading lines = %d, %d; want 2, 4", headings[0].Line, headings[1].Line)
	}
}

func TestBuild_FrontMatter(t *testing.T) {
	input := `---
title: My Doc
# a yaml comment, not a heading
---
# Real Heading
`
	doc := Build(input)

	if doc.Meta == nil || doc.Meta["title"] != "My Doc" {
		t.Errorf("expected front-matter title %q, got %v", "My Doc", doc.Meta)
	}
	headings := doc.Root.Headings()
	if len(headings) != 1 || headings[0].Title != "Real Heading" {
		t.Fatalf("front-matter lines leaked into headings: %v", headings)
	}
	// The block itself survives as verbatim content under the root.
	if doc.Root.Children[0].Raw != "---" || doc.Root.Children[2].Raw != "# a yaml comment, not a heading" {
		t.Errorf("front-matter lines not preserved verbatim")
	}
}

func TestBuild_ImageNodes(t *testing.T) {
	input := "# A\n![logo](https://example.com/logo.png)\nsee ![inline](https://example.com/i.png) here\n![local](./local.png)"
	doc := Build(input)
	h1 := doc.Root.Children[0]

	if len(h1.Children) != 3 {
		t.Fatalf("expected 3 children under h1, got %d", len(h1.Children))
	}
	if h1.Children[0].Kind != mdtree.KindImage {
		t.Errorf("bare remote image line should be an image node, got kind %d", h1.Children[0].Kind)
	}
	if h1.Children[0].Image.URL != "https://example.com/logo.png" {
		t.Errorf("image URL = %q", h1.Children[0].Image.URL)
	}
	if h1.Children[1].Kind != mdtree.KindContent {
		t.Errorf("inline image line should stay content")
	}
	if h1.Children[2].Kind != mdtree.KindContent {
		t.Errorf("local image line should stay content")
	}
}

func TestBuild_Empty(t *testing.T) {
	doc := Build("")
	if len(doc.Root.Children) != 0 {
		t.Errorf("empty input should yield an empty tree, got %d children", len(doc.Root.Children))
	}
}
