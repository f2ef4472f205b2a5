package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRecoverFencedJSON(t *testing.T) {
	raw := "```json\n{\"title\":\"T\",\"metaDescription\":\"M\",\"content\":\"C\"}\n```"

	post := Recover(raw)

	assert.Equal(t, "T", post.Title)
	assert.Equal(t, "M", post.MetaDescription)
	assert.Equal(t, "C", post.Content)
}

func TestRecoverBareJSON(t *testing.T) {
	post := Recover(`  {"title":"T","metaDescription":"M","content":"C"}  `)
	assert.Equal(t, Post{Title: "T", MetaDescription: "M", Content: "C"}, post)
}

func TestRecoverStripsControlChars(t *testing.T) {
	raw := "{\"title\":\"T\x00it\x1fle\",\"metaDescription\":\"M\",\"content\":\"C\"}"

	post := Recover(raw)

	assert.Equal(t, "Title", post.Title)
	assert.Equal(t, "M", post.MetaDescription)
}

func TestRecoverNormalizesCRLF(t *testing.T) {
	raw := "```json\r\n{\"title\":\"T\",\"metaDescription\":\"M\",\"content\":\"C\"}\r\n```"
	post := Recover(raw)
	assert.Equal(t, "T", post.Title)
}

func TestRecoverFallback(t *testing.T) {
	raw := strings.Repeat("not json at all ", 20) // well over 155 chars

	post := Recover(raw)

	assert.Equal(t, "Blog Post", post.Title)
	assert.Equal(t, raw[:155], post.MetaDescription)
	assert.Equal(t, raw, post.Content)
}

func TestRecoverFallbackShortText(t *testing.T) {
	post := Recover("short answer")

	assert.Equal(t, "Blog Post", post.Title)
	assert.Equal(t, "short answer", post.MetaDescription)
	assert.Equal(t, "short answer", post.Content)
}

func TestRecoverLongParsedMetaDescriptionPassesThrough(t *testing.T) {
	long := strings.Repeat("m", 300)
	raw := `{"title":"T","metaDescription":"` + long + `","content":"C"}`

	post := Recover(raw)

	// The 155 cap is fallback-only; parsed fields are untouched.
	assert.Equal(t, long, post.MetaDescription)
}

func TestRecoverTolerantFieldExtraction(t *testing.T) {
	// Mistyped values fail the strict decode but the object is usable.
	raw := `{"title":"T","metaDescription":123,"content":"C","extra":true}`

	post := Recover(raw)

	assert.Equal(t, "T", post.Title)
	assert.Equal(t, "123", post.MetaDescription)
	assert.Equal(t, "C", post.Content)
}

func TestRecoverWrongShapeFallsBack(t *testing.T) {
	raw := `[1,2,3]`
	post := Recover(raw)
	assert.Equal(t, "Blog Post", post.Title)
	assert.Equal(t, raw, post.Content)
}
