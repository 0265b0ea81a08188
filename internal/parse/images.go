package parse

import (
	"fmt"
	"regexp"
	"strings"

	"golang.org/x/net/html"

	"github.com/tkaine/mdstruct/internal/mdtree"
)

var (
	mdImageRe  = regexp.MustCompile(`!\[([^\]]*)\]\(([^)]+?)(?:\s+"([^"]*)")?\)`)
	htmlImgRe  = regexp.MustCompile(`<img\s[^>]*?/?>`)
	remoteHTTP = []string{"http://", "https://"}
)

func isRemoteURL(u string) bool {
	for _, p := range remoteHTTP {
		if strings.HasPrefix(u, p) {
			return true
		}
	}
	return false
}

// ExtractImages finds every remote image reference in one source line, in
// source order within each syntax. Local references are ignored; the
// localizer has nothing to do for them.
func ExtractImages(line string) []mdtree.ImageRef {
	var refs []mdtree.ImageRef

	for _, m := range mdImageRe.FindAllStringSubmatch(line, -1) {
		url := m[2]
		if !isRemoteURL(url) {
			continue
		}
		refs = append(refs, mdtree.ImageRef{
			Kind:  mdtree.ImageMarkdown,
			Ref:   m[0],
			URL:   url,
			Alt:   m[1],
			Title: m[3],
		})
	}

	for _, span := range htmlImgRe.FindAllString(line, -1) {
		ref, ok := parseImgTag(span)
		if !ok || !isRemoteURL(ref.URL) {
			continue
		}
		refs = append(refs, ref)
	}

	return refs
}

// parseImgTag extracts src, alt, and the remaining attributes from an
// <img> tag span. The span was located by regexp; the tag itself goes
// through the HTML tokenizer so quoting and attribute order are handled
// properly.
func parseImgTag(span string) (mdtree.ImageRef, bool) {
	doc, err := html.Parse(strings.NewReader(span))
	if err != nil {
		return mdtree.ImageRef{}, false
	}

	var img *html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if img != nil {
			return
		}
		if n.Type == html.ElementNode && n.Data == "img" {
			img = n
			return
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	if img == nil {
		return mdtree.ImageRef{}, false
	}

	ref := mdtree.ImageRef{Kind: mdtree.ImageHTML, Ref: span}
	var attrs []string
	for _, a := range img.Attr {
		switch a.Key {
		case "src":
			ref.URL = a.Val
		case "alt":
			ref.Alt = a.Val
			attrs = append(attrs, fmt.Sprintf(`%s=%q`, a.Key, a.Val))
		default:
			attrs = append(attrs, fmt.Sprintf(`%s=%q`, a.Key, a.Val))
		}
	}
	if ref.URL == "" {
		return mdtree.ImageRef{}, false
	}
	ref.Attrs = strings.Join(attrs, " ")
	return ref, true
}

// RebuildRef renders an image reference with its source swapped for path,
// preserving alt, title, and HTML attributes.
func RebuildRef(ref mdtree.ImageRef, path string) string {
	switch ref.Kind {
	case mdtree.ImageHTML:
		if ref.Attrs != "" {
			return fmt.Sprintf(`<img %s src=%q>`, ref.Attrs, path)
		}
		return fmt.Sprintf(`<img src=%q>`, path)
	default:
		title := ""
		if ref.Title != "" {
			title = fmt.Sprintf(" %q", ref.Title)
		}
		return fmt.Sprintf("![%s](%s%s)", ref.Alt, path, title)
	}
}
