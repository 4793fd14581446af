package search

import (
	"strings"

	"github.com/jotkit/jot/internal/domain/entry"
)

// Field identifies which entry field a free-text term matched.
type Field string

const (
	FieldTitle   Field = "title"
	FieldContent Field = "content"
	FieldTags    Field = "tags"
)

// SnippetWindow is the maximum snippet length in bytes.
const SnippetWindow = 150

// Snippet is a bounded excerpt of matched text. Highlight offsets are
// relative to Text, not the full source field.
type Snippet struct {
	Text           string `json:"text"`
	HighlightStart int    `json:"highlight_start"`
	HighlightEnd   int    `json:"highlight_end"`
}

// MatchRecord is an entry that satisfied a query, with an optional snippet
// marking where the free-text term was found.
type MatchRecord struct {
	Entry        entry.Entry `json:"entry"`
	MatchedField Field       `json:"matched_field,omitempty"`
	Snippet      *Snippet    `json:"snippet,omitempty"`
}

// Match evaluates a structured query against a collection of entries.
// Entries are first narrowed by filters (every present filter must hold),
// then the free text term is searched case-insensitively with field priority
// title > content > tags. Input order is preserved so callers control
// ranking; with no free text every filtered entry matches without a snippet.
func Match(q StructuredQuery, entries []entry.Entry) []MatchRecord {
	term := strings.ToLower(strings.TrimSpace(q.FreeText))
	results := make([]MatchRecord, 0, len(entries))
	for _, e := range entries {
		if !matchesFilters(q.Filters, e) {
			continue
		}
		if term == "" {
			results = append(results, MatchRecord{Entry: e})
			continue
		}
		if rec, ok := matchText(e, term); ok {
			results = append(results, rec)
		}
	}
	return results
}

func matchesFilters(f FilterSet, e entry.Entry) bool {
	if len(f.Tags) > 0 && !e.HasTags(f.Tags) {
		return false
	}
	if f.Mood != nil && (e.Mood == nil || *e.Mood != *f.Mood) {
		return false
	}
	if f.DateFrom != nil && e.CreatedAt.Before(*f.DateFrom) {
		return false
	}
	if f.DateTo != nil && e.CreatedAt.After(*f.DateTo) {
		return false
	}
	if f.Favorite != nil && e.IsFavorite != *f.Favorite {
		return false
	}
	if f.Archived != nil && e.IsArchived != *f.Archived {
		return false
	}
	return true
}

func matchText(e entry.Entry, term string) (MatchRecord, bool) {
	if idx := indexFold(e.Title, term); idx >= 0 {
		return MatchRecord{
			Entry:        e,
			MatchedField: FieldTitle,
			Snippet: &Snippet{
				Text:           e.Title,
				HighlightStart: idx,
				HighlightEnd:   idx + len(term),
			},
		}, true
	}

	plain := StripMarkup(e.Content)
	if idx := indexFold(plain, term); idx >= 0 {
		return MatchRecord{
			Entry:        e,
			MatchedField: FieldContent,
			Snippet:      buildSnippet(plain, idx, len(term)),
		}, true
	}

	for _, tag := range e.Tags {
		if idx := indexFold(tag, term); idx >= 0 {
			return MatchRecord{
				Entry:        e,
				MatchedField: FieldTags,
				Snippet: &Snippet{
					Text:           tag,
					HighlightStart: idx,
					HighlightEnd:   idx + len(term),
				},
			}, true
		}
	}

	return MatchRecord{}, false
}

// indexFold returns the byte offset of the first case-insensitive occurrence
// of term (already lowercased) in s, or -1.
func indexFold(s, term string) int {
	return strings.Index(strings.ToLower(s), term)
}

// buildSnippet extracts a window of up to SnippetWindow bytes centered on the
// match at idx, clipped to the text boundaries. Highlight offsets are
// relative to the returned window.
func buildSnippet(text string, idx, termLen int) *Snippet {
	if len(text) <= SnippetWindow {
		return &Snippet{
			Text:           text,
			HighlightStart: idx,
			HighlightEnd:   idx + termLen,
		}
	}

	// A term at least as long as the window fills it entirely. Anchor the
	// window at the match so the highlight spans the whole snippet.
	if termLen >= SnippetWindow {
		end := idx + SnippetWindow
		if end > len(text) {
			end = len(text)
		}
		snip := text[idx:end]
		return &Snippet{
			Text:           snip,
			HighlightStart: 0,
			HighlightEnd:   len(snip),
		}
	}

	start := idx - (SnippetWindow-termLen)/2
	if start < 0 {
		start = 0
	}
	end := start + SnippetWindow
	if end > len(text) {
		end = len(text)
		start = end - SnippetWindow
		if start < 0 {
			start = 0
		}
	}

	snip := text[start:end]
	hs := idx - start
	if hs < 0 {
		hs = 0
	}
	he := hs + termLen
	if he > len(snip) {
		he = len(snip)
	}
	return &Snippet{
		Text:           snip,
		HighlightStart: hs,
		HighlightEnd:   he,
	}
}
