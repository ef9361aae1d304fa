package render

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	inlinePolicyOnce sync.Once
	inlinePolicy     *bluemonday.Policy

	plainPolicyOnce sync.Once
	plainPolicy     *bluemonday.Policy
)

// InlinePolicy allows the inline formatting elements a validation message
// may reasonably carry and strips everything else.
func InlinePolicy() *bluemonday.Policy {
	inlinePolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "strong", "i", "em", "u", "small", "code", "br", "span", "abbr")
		policy.AllowAttrs("class").OnElements("span", "code")
		policy.AllowAttrs("title").OnElements("abbr")
		inlinePolicy = policy
	})
	return inlinePolicy
}

// SanitizeHTML cleans markup with policy, InlinePolicy when nil.
func SanitizeHTML(raw string, policy *bluemonday.Policy) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	if policy == nil {
		policy = InlinePolicy()
	}
	return strings.TrimSpace(policy.Sanitize(trimmed))
}

// PlainText strips all markup and decodes entities, for terminals and logs.
func PlainText(raw string) string {
	plainPolicyOnce.Do(func() {
		plainPolicy = bluemonday.StrictPolicy()
	})
	cleaned := SanitizeHTML(raw, plainPolicy)
	return strings.TrimSpace(html.UnescapeString(cleaned))
}
