package elementor

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// ParseTemplate decodes builder JSON into nodes. It accepts either a raw
// array of elements or a full template export ({"content": [...], ...}).
// Pasted exports are often over-escaped; when the input is not valid
// JSON as-is, a backslash-stripping repair pass is tried before giving up.
func ParseTemplate(raw string) ([]*Node, error) {
	s := strings.TrimSpace(raw)
	if s == "" {
		return nil, errors.New("template JSON is empty")
	}
	if !gjson.Valid(s) {
		s = repairEscapes(s)
		if !gjson.Valid(s) {
			return nil, errors.New("template is not valid JSON")
		}
	}

	doc := gjson.Parse(s)
	if doc.IsObject() {
		content := doc.Get("content")
		if !content.IsArray() {
			return nil, errors.New("template object has no content array")
		}
		s = content.Raw
	}

	var nodes []*Node
	if err := json.Unmarshal([]byte(s), &nodes); err != nil {
		return nil, fmt.Errorf("decode template: %w", err)
	}
	return nodes, nil
}

// repairEscapes drops stray backslashes from a double-escaped export,
// the same tolerance the builder's own import applies.
func repairEscapes(s string) string {
	return strings.ReplaceAll(s, `\`, "")
}
