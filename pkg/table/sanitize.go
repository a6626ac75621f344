package table

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

// Sanitizer cleans HTML fragments coming from the dataset. *bluemonday.Policy
// satisfies it.
type Sanitizer interface {
	Sanitize(s string) string
}

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy

	textPolicyOnce sync.Once
	textPolicy     *bluemonday.Policy
)

// DefaultSanitizer returns the policy applied to descriptions and notes: the
// inline elements compat data uses, plus links.
func DefaultSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.NewPolicy()
		policy.AllowElements("code", "em", "strong", "kbd", "var", "sup", "sub", "br", "span", "p")
		policy.AllowAttrs("title").OnElements("abbr")
		policy.AllowAttrs("href").OnElements("a")
		policy.RequireParseableURLs(true)
		policy.AllowRelativeURLs(true)
		policy.AllowURLSchemes("mailto", "http", "https")
		markupPolicy = policy
	})
	return markupPolicy
}

func stripPolicy() *bluemonday.Policy {
	textPolicyOnce.Do(func() {
		textPolicy = bluemonday.StrictPolicy()
	})
	return textPolicy
}

func sanitizeMarkup(s Sanitizer, raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if s == nil {
		s = DefaultSanitizer()
	}
	return strings.TrimSpace(s.Sanitize(trimmed))
}

// plainText drops every tag and decodes entities.
func plainText(raw string) string {
	return strings.TrimSpace(html.UnescapeString(stripPolicy().Sanitize(raw)))
}
