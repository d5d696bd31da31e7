package ingest

import (
	"fmt"
	"io"
	"strings"

	"golang.org/x/net/html"
)

// HTMLText extracts the visible text of an HTML document, skipping script,
// style, and head content. Block elements become paragraph breaks.
func HTMLText(r io.Reader) (string, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return "", fmt.Errorf("parsing html: %w", err)
	}

	var b strings.Builder
	collectText(doc, &b)
	return normalize(b.String()), nil
}

var skipElements = map[string]bool{
	"script":   true,
	"style":    true,
	"head":     true,
	"noscript": true,
	"template": true,
}

var blockElements = map[string]bool{
	"p": true, "div": true, "section": true, "article": true,
	"li": true, "ul": true, "ol": true, "table": true, "tr": true,
	"h1": true, "h2": true, "h3": true, "h4": true, "h5": true, "h6": true,
	"br": true, "hr": true, "header": true, "footer": true, "main": true,
}

func collectText(n *html.Node, b *strings.Builder) {
	if n.Type == html.ElementNode && skipElements[n.Data] {
		return
	}
	if n.Type == html.TextNode {
		b.WriteString(n.Data)
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		collectText(c, b)
	}
	if n.Type == html.ElementNode && blockElements[n.Data] {
		b.WriteString("\n\n")
	}
}
