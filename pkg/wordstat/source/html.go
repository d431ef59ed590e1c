package source

import (
	"context"
	"os"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// HTML is an HTML page whose visible text is analysed.
type HTML struct {
	Path string
}

// Load parses the page and returns its text content.
func (h HTML) Load(ctx context.Context) ([]string, error) {
	f, err := os.Open(h.Path)
	if err != nil {
		return nil, unavailable(h.Path, err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, unavailable(h.Path, err)
	}
	return []string{ExtractText(doc)}, nil
}

// ExtractText concatenates text nodes, skipping script and style bodies.
// Text nodes are joined by newlines so adjacent elements never glue words.
func ExtractText(n *html.Node) string {
	var buf strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode && (n.DataAtom == atom.Script || n.DataAtom == atom.Style) {
			return
		}
		if n.Type == html.TextNode {
			buf.WriteString(n.Data)
			buf.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(n)

	return strings.TrimSpace(buf.String())
}
