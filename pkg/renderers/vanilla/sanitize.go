package vanilla

import (
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	markupPolicyOnce sync.Once
	markupPolicy     *bluemonday.Policy
)

// sanitizeMarkup cleans caller-provided label and help markup before it is
// interpolated unescaped into the form chrome.
func sanitizeMarkup(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return ""
	}
	return strings.TrimSpace(markupSanitizer().Sanitize(trimmed))
}

func markupSanitizer() *bluemonday.Policy {
	markupPolicyOnce.Do(func() {
		policy := bluemonday.StrictPolicy()
		policy.AllowElements("b", "i", "em", "strong", "small", "code", "br", "abbr", "span")
		policy.AllowAttrs("class").OnElements("span", "code")
		policy.AllowAttrs("title").OnElements("abbr")
		policy.AllowAttrs("href", "rel", "target").OnElements("a")
		policy.AllowElements("a")
		policy.RequireNoFollowOnLinks(true)
		markupPolicy = policy
	})
	return markupPolicy
}
