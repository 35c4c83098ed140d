package render

import (
	"fmt"

	md "github.com/JohannesKaufmann/html-to-markdown"
	"github.com/JohannesKaufmann/html-to-markdown/plugin"
)

// MarkdownExporter converts rendered post HTML to Markdown.
// Input is sanitized first, then converted with GitHub flavoured extensions
// so tables, strikethrough and task lists survive.
type MarkdownExporter struct {
	sanitizer *Sanitizer
	converter *md.Converter
}

// NewMarkdownExporter creates an exporter with the post sanitizer
func NewMarkdownExporter(sanitizer *Sanitizer) *MarkdownExporter {
	if sanitizer == nil {
		sanitizer = NewSanitizer()
	}
	conv := md.NewConverter("", true, &md.Options{CodeBlockStyle: "fenced"})
	conv.Use(plugin.GitHubFlavored())
	return &MarkdownExporter{sanitizer: sanitizer, converter: conv}
}

// Convert transforms an HTML fragment into Markdown
func (e *MarkdownExporter) Convert(fragment string) (string, error) {
	sanitized, err := e.sanitizer.Sanitize(fragment)
	if err != nil {
		return "", fmt.Errorf("failed to sanitize HTML: %w", err)
	}

	markdown, err := e.converter.ConvertString(sanitized)
	if err != nil {
		return "", fmt.Errorf("failed to convert HTML to markdown: %w", err)
	}
	return markdown, nil
}
