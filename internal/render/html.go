package render

import (
	"bytes"
	"fmt"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"

	"github.com/tkaine/mdstruct/internal/mdtree"
)

var htmlEngine = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// HTML renders the tree as an HTML preview. The tree is first serialized
// back to Markdown (numbering labels included when present) and then
// converted, so the preview shows exactly what a write-back would produce.
func HTML(root *mdtree.Node, includeNumbering bool) ([]byte, error) {
	md := Markdown(root, includeNumbering)
	var buf bytes.Buffer
	if err := htmlEngine.Convert([]byte(md), &buf); err != nil {
		return nil, fmt.Errorf("render html: %w", err)
	}
	return buf.Bytes(), nil
}
