// Package mdfile is the file-system collaborator around the core
// pipeline: reading and writing Markdown documents with extension checks.
// The core itself only sees in-memory strings.
package mdfile

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ErrNotMarkdown is returned for paths whose extension is not exactly
// "md" or "markdown". The check is case-sensitive.
var ErrNotMarkdown = errors.New("file must have a .md or .markdown extension")

// TailHeading is the sentinel heading appended by AppendTail to force a
// final section boundary.
const TailHeading = "# Head999"

// CheckPath verifies the path exists and carries a Markdown extension.
func CheckPath(path string) error {
	if _, err := os.Stat(path); err != nil {
		return fmt.Errorf("stat %s: %w", path, err)
	}
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext != "md" && ext != "markdown" {
		return fmt.Errorf("%s: %w", path, ErrNotMarkdown)
	}
	return nil
}

// Read loads a Markdown document after validating the path.
func Read(path string) (string, error) {
	if err := CheckPath(path); err != nil {
		return "", err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	return string(data), nil
}

// Write stores content at path with conventional permissions.
func Write(path, content string) error {
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// OutputPath resolves where a transformed document is written: the
// explicit output when given, otherwise the input path itself (in-place).
func OutputPath(input, output string) string {
	if output != "" {
		return output
	}
	return input
}

// DerivedPath builds a sibling path with a tag spliced in before the
// extension, e.g. ("doc.md", "numed") -> "doc.numed.md". Used for the
// save-as-new-file default.
func DerivedPath(input, tag string) string {
	ext := filepath.Ext(input)
	return strings.TrimSuffix(input, ext) + "." + tag + ext
}

// AppendTail appends the sentinel heading as a final line, inserting a
// newline first when the file does not end with one.
func AppendTail(path string) error {
	content, err := Read(path)
	if err != nil {
		return err
	}
	if content != "" && !strings.HasSuffix(content, "\n") {
		content += "\n"
	}
	return Write(path, content+TailHeading+"\n")
}
