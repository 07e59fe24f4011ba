package sanitizer

import (
	"sync"

	"github.com/microcosm-cc/bluemonday"
)

var (
	strictPolicy *bluemonday.Policy
	safePolicy   *bluemonday.Policy
	initOnce     sync.Once
)

func initPolicies() {
	initOnce.Do(func() {
		strictPolicy = bluemonday.StrictPolicy()

		// The safe policy covers the elements a Markdown renderer emits:
		// headings, emphasis, lists, code blocks, links and images.
		safePolicy = bluemonday.NewPolicy()
		safePolicy.AllowStandardURLs()
		safePolicy.AllowElements(
			"h1", "h2", "h3", "h4", "h5", "h6",
			"p", "br", "hr",
			"strong", "b", "em", "i", "del",
			"ul", "ol", "li",
			"code", "pre", "blockquote",
			"table", "thead", "tbody", "tr", "th", "td",
		)
		safePolicy.AllowAttrs("href").OnElements("a")
		safePolicy.AllowAttrs("src", "alt", "title").OnElements("img")
		safePolicy.RequireNoFollowOnLinks(true)
	})
}

// SanitizeHTML keeps the formatting tags produced by Markdown rendering
// and strips everything dangerous: scripts, event handlers, javascript:
// URLs, inline styles.
func SanitizeHTML(s string) string {
	initPolicies()
	return safePolicy.Sanitize(s)
}

// SanitizeStrict strips all HTML, returning plain text.
func SanitizeStrict(s string) string {
	initPolicies()
	return strictPolicy.Sanitize(s)
}

// SanitizeWith applies a custom bluemonday policy. Returns the input
// unchanged if the policy is nil.
func SanitizeWith(s string, policy *bluemonday.Policy) string {
	if policy == nil {
		return s
	}
	return policy.Sanitize(s)
}
