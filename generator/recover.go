package generator

import (
	"encoding/json"
	"strings"

	"github.com/tidwall/gjson"
)

const (
	fallbackTitle = "Blog Post"
	// Hard cap asserted to the model for SEO meta descriptions. Applied
	// only on the fallback path; a validly parsed field passes through.
	metaDescriptionLimit = 155
)

// Recover turns raw model output into a Post. The model is asked for a
// bare JSON object but routinely wraps it in code fences or lets control
// characters slip into string values, so the text is cleaned up before
// parsing. Recover never fails: when nothing parseable remains, a post
// synthesized from the raw text is returned instead.
func Recover(raw string) Post {
	cleaned := stripFences(strings.TrimSpace(raw))
	cleaned = stripControlChars(cleaned)
	cleaned = strings.ReplaceAll(cleaned, "\r\n", "\n")

	var post Post
	if err := json.Unmarshal([]byte(cleaned), &post); err == nil && post.Title != "" {
		return post
	}

	// Tolerant pass: the object may carry mistyped values the strict
	// decode rejects (numbers where strings belong, extra keys).
	if gjson.Valid(cleaned) {
		doc := gjson.Parse(cleaned)
		if title := doc.Get("title"); title.Exists() {
			return Post{
				Title:           title.String(),
				MetaDescription: doc.Get("metaDescription").String(),
				Content:         doc.Get("content").String(),
			}
		}
	}

	return Post{
		Title:           fallbackTitle,
		MetaDescription: truncateRunes(raw, metaDescriptionLimit),
		Content:         raw,
	}
}

// stripFences removes a surrounding markdown code fence (```json ... ```)
// when present.
func stripFences(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```")
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		// Drop the language tag line.
		s = s[i+1:]
	}
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// stripControlChars removes characters that are illegal inside JSON
// strings (0x00-0x08, 0x0B-0x0C, 0x0E-0x1F, 0x7F-0x9F). Tabs, newlines,
// and carriage returns survive.
func stripControlChars(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r <= 0x08,
			r == 0x0B, r == 0x0C,
			r >= 0x0E && r <= 0x1F,
			r >= 0x7F && r <= 0x9F:
			return -1
		}
		return r
	}, s)
}

func truncateRunes(s string, limit int) string {
	if len(s) <= limit {
		return s
	}
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}
	return string(runes[:limit])
}
