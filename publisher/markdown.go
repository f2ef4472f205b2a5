package publisher

import (
	"bytes"
	"strings"

	"github.com/yuin/goldmark"
)

// RenderMarkdown converts a Markdown post body to the HTML WordPress
// stores. Content that already looks like HTML is passed through.
func RenderMarkdown(md string) (string, error) {
	trimmed := strings.TrimSpace(md)
	if strings.HasPrefix(trimmed, "<") {
		return md, nil
	}
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(md), &buf); err != nil {
		return "", err
	}
	return buf.String(), nil
}
