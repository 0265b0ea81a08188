package mdfile

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestCheckPath(t *testing.T) {
	md := writeTemp(t, "doc.md", "# A\n")
	if err := CheckPath(md); err != nil {
		t.Errorf("unexpected error for .md: %v", err)
	}

	markdown := writeTemp(t, "doc.markdown", "# A\n")
	if err := CheckPath(markdown); err != nil {
		t.Errorf("unexpected error for .markdown: %v", err)
	}

	txt := writeTemp(t, "doc.txt", "hi")
	if err := CheckPath(txt); !errors.Is(err, ErrNotMarkdown) {
		t.Errorf("expected ErrNotMarkdown for .txt, got %v", err)
	}

	upper := writeTemp(t, "doc.MD", "# A\n")
	if err := CheckPath(upper); !errors.Is(err, ErrNotMarkdown) {
		t.Errorf("extension check is case-sensitive; expected ErrNotMarkdown, got %v", err)
	}

	if err := CheckPath(filepath.Join(t.TempDir(), "missing.md")); err == nil {
		t.Error("expected an error for a missing file")
	}
}

func TestReadWrite(t *testing.T) {
	path := writeTemp(t, "doc.md", "# A\nbody\n")
	content, err := Read(path)
	if err != nil {
		t.Fatal(err)
	}
	if content != "# A\nbody\n" {
		t.Errorf("Read = %q", content)
	}

	if err := Write(path, "# B\n"); err != nil {
		t.Fatal(err)
	}
	content, _ = Read(path)
	if content != "# B\n" {
		t.Errorf("after Write, Read = %q", content)
	}
}

func TestOutputPath(t *testing.T) {
	if got := OutputPath("in.md", ""); got != "in.md" {
		t.Errorf("in-place OutputPath = %q", got)
	}
	if got := OutputPath("in.md", "out.md"); got != "out.md" {
		t.Errorf("explicit OutputPath = %q", got)
	}
}

func TestDerivedPath(t *testing.T) {
	if got := DerivedPath("doc.md", "numed"); got != "doc.numed.md" {
		t.Errorf("DerivedPath = %q", got)
	}
	if got := DerivedPath("dir/doc.markdown", "unnumed"); got != "dir/doc.unnumed.markdown" {
		t.Errorf("DerivedPath = %q", got)
	}
}

func TestAppendTail(t *testing.T) {
	path := writeTemp(t, "doc.md", "# A\nbody\n")
	if err := AppendTail(path); err != nil {
		t.Fatal(err)
	}
	content, _ := Read(path)
	if content != "# A\nbody\n"+TailHeading+"\n" {
		t.Errorf("after AppendTail: %q", content)
	}
}

func TestAppendTail_NoTrailingNewline(t *testing.T) {
	path := writeTemp(t, "doc.md", "# A\nbody")
	if err := AppendTail(path); err != nil {
		t.Fatal(err)
	}
	content, _ := Read(path)
	if content != "# A\nbody\n"+TailHeading+"\n" {
		t.Errorf("after AppendTail: %q", content)
	}
}
