package parse

import (
	"strings"
	"testing"

	"github.com/tkaine/mdstruct/internal/mdtree"
)

func TestExtractImages_Markdown(t *testing.T) {
	refs := ExtractImages(`before ![alt text](https://example.com/a.png "the title") after`)
	if len(refs) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(refs))
	}
	r := refs[0]
	if r.Kind != mdtree.ImageMarkdown {
		t.Errorf("kind = %d, want markdown", r.Kind)
	}
	if r.URL != "https://example.com/a.png" || r.Alt != "alt text" || r.Title != "the title" {
		t.Errorf("unexpected ref: %+v", r)
	}
	if r.Ref != `![alt text](https://example.com/a.png "the title")` {
		t.Errorf("Ref span = %q", r.Ref)
	}
}

func TestExtractImages_HTML(t *testing.T) {
	refs := ExtractImages(`<img src="https://example.com/b.jpg" alt="b" width="100">`)
	if len(refs) != 1 {
		t.Fatalf("expected 1 ref, got %d", len(refs))
	}
	r := refs[0]
	if r.Kind != mdtree.ImageHTML || r.URL != "https://example.com/b.jpg" || r.Alt != "b" {
		t.Errorf("unexpected ref: %+v", r)
	}
	if !strings.Contains(r.Attrs, `width="100"`) {
		t.Errorf("attrs should keep width, got %q", r.Attrs)
	}
	if strings.Contains(r.Attrs, "src=") {
		t.Errorf("attrs must exclude src, got %q", r.Attrs)
	}
}

func TestExtractImages_SkipsLocal(t *testing.T) {
	line := `![a](./a.png) ![b](images/b.png) <img src="/abs/c.png">`
	if refs := ExtractImages(line); len(refs) != 0 {
		t.Errorf("local references should be ignored, got %d", len(refs))
	}
}

func TestExtractImages_Multiple(t *testing.T) {
	line := `![a](https://x.test/a.png) and ![b](https://x.test/b.png)`
	refs := ExtractImages(line)
	if len(refs) != 2 {
		t.Fatalf("expected 2 refs, got %d", len(refs))
	}
	if refs[0].URL != "https://x.test/a.png" || refs[1].URL != "https://x.test/b.png" {
		t.Errorf("refs out of order: %v, %v", refs[0].URL, refs[1].URL)
	}
}

func TestRebuildRef(t *testing.T) {
	md := mdtree.ImageRef{Kind: mdtree.ImageMarkdown, Alt: "a", Title: "t"}
	if got := RebuildRef(md, "assets/x.png"); got != `![a](assets/x.png "t")` {
		t.Errorf("markdown rebuild = %q", got)
	}

	mdNoTitle := mdtree.ImageRef{Kind: mdtree.ImageMarkdown, Alt: "a"}
	if got := RebuildRef(mdNoTitle, "assets/x.png"); got != `![a](assets/x.png)` {
		t.Errorf("markdown rebuild without title = %q", got)
	}

	h := mdtree.ImageRef{Kind: mdtree.ImageHTML, Attrs: `alt="b" width="100"`}
	if got := RebuildRef(h, "assets/y.jpg"); got != `<img alt="b" width="100" src="assets/y.jpg">` {
		t.Errorf("html rebuild = %q", got)
	}
}
