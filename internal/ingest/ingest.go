// Package ingest extracts plain text from resume PDFs and web pages so the
// operator can fold existing material into the chatbot context override.
package ingest

import (
	"strings"
	"unicode"
)

// normalize collapses runs of whitespace into single spaces, keeping only
// paragraph breaks (two or more newlines), so extracted text reads cleanly
// inside a prompt.
func normalize(s string) string {
	var b strings.Builder
	b.Grow(len(s))

	space := false
	newlines := 0
	for _, r := range s {
		switch {
		case r == '\n':
			newlines++
		case unicode.IsSpace(r):
			space = true
		default:
			if b.Len() > 0 {
				if newlines > 1 {
					b.WriteString("\n\n")
				} else if space || newlines == 1 {
					b.WriteByte(' ')
				}
			}
			space = false
			newlines = 0
			b.WriteRune(r)
		}
	}
	return b.String()
}
