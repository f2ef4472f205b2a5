package generator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExpandTagsReplacesAllOccurrences(t *testing.T) {
	tags := Tags{Enterprise: "Acme", Phone: "555-1234", SiteURL: "https://acme.test", Keyword: "landscaping"}

	got := ExpandTags("Hi {{enterprise}}, call {{phone}}", tags)
	assert.Equal(t, "Hi Acme, call 555-1234", got)

	got = ExpandTags("{{keyword}} and {{keyword}} again, see {{siteURL}}", tags)
	assert.Equal(t, "landscaping and landscaping again, see https://acme.test", got)
}

func TestExpandTagsFallbacks(t *testing.T) {
	got := ExpandTags("Hi {{enterprise}}, call {{phone}}", Tags{})
	assert.Equal(t, "Hi [ENTERPRISE], call [PHONE]", got)

	got = ExpandTags("{{siteURL}} {{keyword}}", Tags{})
	assert.Equal(t, "[SITE URL] [KEYWORD]", got)
}

func TestExpandTagsLeavesUnrecognizedTokens(t *testing.T) {
	got := ExpandTags("{{enterprise}} {{something_else}}", Tags{Enterprise: "Acme"})
	assert.Equal(t, "Acme {{something_else}}", got)
}

func TestExpandTagsNoTokens(t *testing.T) {
	assert.Equal(t, "plain text", ExpandTags("plain text", Tags{Enterprise: "Acme"}))
	assert.Equal(t, "", ExpandTags("", Tags{}))
}

func TestBuildPostPrompt(t *testing.T) {
	p := BuildPostPrompt("write about gardens")

	assert.Equal(t, "write about gardens", p.User)
	assert.True(t, strings.Contains(p.System, `"title"`))
	assert.True(t, strings.Contains(p.System, `"metaDescription"`))
	assert.True(t, strings.Contains(p.System, "155"))
}
