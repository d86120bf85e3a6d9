// Package htmlsanitize cleans admin-entered text before it reaches a response.
// It uses bluemonday to strip markup from labels stored in settings.
package htmlsanitize

import (
	"html"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	// policy strips every element and attribute.
	policy     *bluemonday.Policy
	policyOnce sync.Once
)

func getPolicy() *bluemonday.Policy {
	policyOnce.Do(func() {
		policy = bluemonday.StrictPolicy()
	})
	return policy
}

// StripTags removes all markup from s and returns plain text with entities
// decoded and surrounding whitespace trimmed.
//
//	StripTags("<b>Monthly</b> &amp; yearly")  // "Monthly & yearly"
func StripTags(s string) string {
	if IsPlainText(s) {
		return strings.TrimSpace(html.UnescapeString(s))
	}
	return strings.TrimSpace(html.UnescapeString(getPolicy().Sanitize(s)))
}

// IsPlainText checks if content appears to be plain text (no HTML tags).
func IsPlainText(content string) bool {
	if content == "" {
		return true
	}
	// Valid HTML tags require both characters, so if either is missing, treat as plain text
	return !strings.Contains(content, "<") || !strings.Contains(content, ">")
}
