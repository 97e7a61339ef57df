package view

import (
	"bytes"
	"fmt"
	"html/template"

	"github.com/yuin/goldmark"
)

// FooterFromMarkdown renders the footer banner from Markdown. Raw HTML in
// the source is dropped by goldmark's default renderer.
func FooterFromMarkdown(src string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(src), &buf); err != nil {
		return "", fmt.Errorf("rendering footer markdown: %w", err)
	}
	return template.HTML(bytes.TrimSpace(buf.Bytes())), nil
}
