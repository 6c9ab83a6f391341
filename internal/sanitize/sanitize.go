// Package sanitize provides deterministic cleanup of user-supplied task text.
// Both functions are pure: identical input always yields identical output,
// and each is idempotent over its own output.
package sanitize

import (
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/taskdeck/taskdeck-api/internal/domain"
)

var (
	// titlePolicy strips every element and attribute.
	titlePolicy = bluemonday.StrictPolicy()

	// descriptionPolicy allows a small set of inline and structural markup;
	// everything outside the allow-list is stripped.
	descriptionPolicy = newDescriptionPolicy()
)

func newDescriptionPolicy() *bluemonday.Policy {
	p := bluemonday.NewPolicy()
	p.AllowAttrs("href", "title", "target", "rel").OnElements("a")
	p.AllowElements("br", "em", "strong", "p", "ul", "ol", "li", "code", "pre")
	return p
}

// Title strips all markup, trims surrounding whitespace and truncates to
// domain.TitleMaxRunes. Truncation is rune-aware and silent.
func Title(raw string) string {
	return truncateRunes(strings.TrimSpace(titlePolicy.Sanitize(raw)), domain.TitleMaxRunes)
}

// Description strips markup outside the allow-list and truncates to
// domain.DescriptionMaxRunes. Truncation is rune-aware and silent.
func Description(raw string) string {
	return truncateRunes(descriptionPolicy.Sanitize(raw), domain.DescriptionMaxRunes)
}

// truncateRunes cuts s to at most max runes. Cutting on rune boundaries
// keeps multi-byte text intact; truncating mid-codepoint is a defect.
func truncateRunes(s string, max int) string {
	runes := []rune(s)
	if len(runes) <= max {
		return s
	}
	return string(runes[:max])
}
