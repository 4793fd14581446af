package search

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"
)

var stripPolicy = bluemonday.StrictPolicy()

// StripMarkup reduces rich-text markup to plain text: tags removed, entities
// decoded, whitespace runs collapsed to single spaces. Snippet offsets are
// computed against this normalized form.
func StripMarkup(s string) string {
	plain := html.UnescapeString(stripPolicy.Sanitize(s))
	return strings.Join(strings.Fields(plain), " ")
}
