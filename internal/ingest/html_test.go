package ingest

import (
	"strings"
	"testing"
)

func TestHTMLText(t *testing.T) {
	page := `<!DOCTYPE html>
<html>
<head><title>Ignored</title><style>body { color: red }</style></head>
<body>
  <script>console.log("ignored");</script>
  <h1>James Nicholas</h1>
  <p>Full-stack   developer in
  Portland.</p>
  <ul><li>React</li><li>Node.js</li></ul>
</body>
</html>`

	got, err := HTMLText(strings.NewReader(page))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{"James Nicholas", "Full-stack developer in Portland.", "React", "Node.js"} {
		if !strings.Contains(got, want) {
			t.Errorf("extracted text missing %q:\n%s", want, got)
		}
	}
	for _, banned := range []string{"Ignored", "console.log", "color: red"} {
		if strings.Contains(got, banned) {
			t.Errorf("extracted text includes %q:\n%s", banned, got)
		}
	}
}

func TestHTMLText_BlockBreaks(t *testing.T) {
	got, err := HTMLText(strings.NewReader("<p>first</p><p>second</p>"))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != "first\n\nsecond" {
		t.Errorf("got %q, want paragraph break between blocks", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"  a   b  ", "a b"},
		{"a\nb", "a b"},
		{"a\n\n\n\nb", "a\n\nb"},
		{"a \n b", "a b"},
		{"", ""},
		{"  \n\t ", ""},
	}
	for _, tt := range tests {
		if got := normalize(tt.in); got != tt.want {
			t.Errorf("normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestResumeText_MissingFile(t *testing.T) {
	if _, err := ResumeText("does-not-exist.pdf"); err == nil {
		t.Fatal("expected error for missing file")
	}
}
