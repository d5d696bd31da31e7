package ingest

import (
	"bytes"
	"fmt"

	"github.com/ledongthuc/pdf"
)

// ResumeText extracts the plain text of a PDF resume at path. Formatting is
// lost; the result is normalized prose suitable for a prompt.
func ResumeText(path string) (string, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening pdf %s: %w", path, err)
	}
	defer f.Close()

	reader, err := r.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("extracting pdf text: %w", err)
	}

	var buf bytes.Buffer
	if _, err := buf.ReadFrom(reader); err != nil {
		return "", fmt.Errorf("reading pdf text: %w", err)
	}

	text := normalize(buf.String())
	if text == "" {
		return "", fmt.Errorf("pdf %s contains no extractable text", path)
	}
	return text, nil
}
