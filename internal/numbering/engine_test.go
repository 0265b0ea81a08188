package numbering

import (
	"testing"

	"github.com/tkaine/mdstruct/internal/mdtree"
	"github.com/tkaine/mdstruct/internal/parse"
)

const outline = `# First
## Alpha
### Deep
## Beta
# Second
`

func labels(root *mdtree.Node) []string {
	var out []string
	root.WalkHeadings(func(h *mdtree.Node) {
		if h.Num == nil {
			out = append(out, "")
			return
		}
		out = append(out, h.Num.Formatted)
	})
	return out
}

func assertLabels(t *testing.T, got, want []string) {
	t.Helper()
	if len(got) != len(want) {
		t.Fatalf("got %d labels %v, want %d", len(got), got, len(want))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("label %d = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestApply_Arabic(t *testing.T) {
	doc := parse.Build(outline)
	Apply(doc.Root, mdtree.Policy{})
	assertLabels(t, labels(doc.Root), []string{"1. ", "1.1. ", "1.1.1. ", "1.2. ", "2. "})
}

func TestApply_CJK(t *testing.T) {
	doc := parse.Build(outline)
	Apply(doc.Root, mdtree.Policy{LocalizedOrdinals: true})
	assertLabels(t, labels(doc.Root), []string{"一、", "一、一、", "一、一、一、", "一、二、", "二、"})
}

func TestApply_CJKTopArabicSublevels(t *testing.T) {
	doc := parse.Build(outline)
	Apply(doc.Root, mdtree.Policy{LocalizedOrdinals: true, ArabicSublevels: true})
	assertLabels(t, labels(doc.Root), []string{"一、", "1. ", "1.1. ", "2. ", "二、"})
}

func TestApply_CJKTopSiblingSublevels(t *testing.T) {
	doc := parse.Build("# One\n## A\n### A1\n### A2\n## B\n# Two")
	Apply(doc.Root, mdtree.Policy{LocalizedOrdinals: true, ArabicSublevels: true})
	assertLabels(t, labels(doc.Root), []string{"一、", "1. ", "1.1. ", "1.2. ", "2. ", "二、"})
}

func TestApply_IgnoreFirstLevel(t *testing.T) {
	doc := parse.Build(outline)
	Apply(doc.Root, mdtree.Policy{IgnoreFirstLevel: true})
	// H1 headings carry no label; H2 is promoted to the top counter, and the
	// counters keep running across H1 boundaries.
	assertLabels(t, labels(doc.Root), []string{"", "1. ", "1.1. ", "2. ", ""})
}

func TestApply_IgnoreFirstLevelMixed(t *testing.T) {
	doc := parse.Build("# One\n## A\n### A1\n### A2\n## B\n# Two")
	Apply(doc.Root, mdtree.Policy{IgnoreFirstLevel: true, LocalizedOrdinals: true, ArabicSublevels: true})
	// H1s stay unlabeled; the promoted H2s take the CJK top-level labels
	// and the H3s run arabic beneath them.
	assertLabels(t, labels(doc.Root), []string{"", "一、", "1. ", "2. ", "二、", ""})
}

func TestApply_CounterReset(t *testing.T) {
	doc := parse.Build("# A\n## A1\n### A1a\n## A2\n### A2a")
	Apply(doc.Root, mdtree.Policy{})
	// The level-3 counter restarts under each level-2 heading.
	assertLabels(t, labels(doc.Root), []string{"1. ", "1.1. ", "1.1.1. ", "1.2. ", "1.2.1. "})
}

func TestApply_ReplacesExistingNumbering(t *testing.T) {
	doc := parse.Build("# 3. Old Label\n## 3.7. Stale")
	Apply(doc.Root, mdtree.Policy{})
	headings := doc.Root.Headings()
	if headings[0].Num.Formatted != "1. " || headings[0].Title != "Old Label" {
		t.Errorf("got %q + %q", headings[0].Num.Formatted, headings[0].Title)
	}
	if headings[1].Num.Formatted != "1.1. " || headings[1].Title != "Stale" {
		t.Errorf("got %q + %q", headings[1].Num.Formatted, headings[1].Title)
	}
}

func TestApply_LevelJumpSkipsEmptyCounters(t *testing.T) {
	doc := parse.Build("# A\n### Deep")
	Apply(doc.Root, mdtree.Policy{})
	// Level 2 was never opened, so its zero counter drops out of the path.
	assertLabels(t, labels(doc.Root), []string{"1. ", "1.1. "})
}

func TestCJKNumeral(t *testing.T) {
	cases := []struct {
		n    int
		want string
	}{
		{0, "零"},
		{1, "一"},
		{9, "九"},
		{10, "十"},
		{11, "十一"},
		{15, "十五"},
		{20, "二十"},
		{21, "二十一"},
		{99, "九十九"},
		{100, "100"},
		{327, "327"},
		{-1, "-1"},
	}
	for _, tc := range cases {
		if got := CJKNumeral(tc.n); got != tc.want {
			t.Errorf("CJKNumeral(%d) = %q, want %q", tc.n, got, tc.want)
		}
	}
}
