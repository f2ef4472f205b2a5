package generator

import "strings"

// Prompt 表示发送给 LLM 的消息对。
type Prompt struct {
	System string
	User   string
}

// tag tokens recognized in message templates, with the human-readable
// fallback shown when the form left the value empty.
var tagTable = []struct {
	token    string
	fallback string
	value    func(Tags) string
}{
	{"{{enterprise}}", "[ENTERPRISE]", func(t Tags) string { return t.Enterprise }},
	{"{{phone}}", "[PHONE]", func(t Tags) string { return t.Phone }},
	{"{{siteURL}}", "[SITE URL]", func(t Tags) string { return t.SiteURL }},
	{"{{keyword}}", "[KEYWORD]", func(t Tags) string { return t.Keyword }},
}

// ExpandTags replaces every occurrence of the recognized {{tag}} tokens
// with the matching value, or its bracket fallback when the value is
// empty. Unrecognized tokens are left untouched. Never fails.
func ExpandTags(template string, tags Tags) string {
	out := template
	for _, tag := range tagTable {
		v := tag.value(tags)
		if v == "" {
			v = tag.fallback
		}
		out = strings.ReplaceAll(out, tag.token, v)
	}
	return out
}

// BuildPostPrompt wraps an expanded message in the instruction that asks
// the model for a structured blog post.
func BuildPostPrompt(message string) Prompt {
	var sb strings.Builder
	sb.WriteString("You are a professional content writer. Generate a blog post about the topic in the user message.\n")
	sb.WriteString(`Return ONLY a valid JSON object with exactly this structure: {"title": string, "metaDescription": string, "content": string}.` + "\n")
	sb.WriteString("The metaDescription must be under 155 characters. The content may use Markdown.\n")
	sb.WriteString("Do not include any other text or explanation.\n")
	return Prompt{System: sb.String(), User: message}
}
