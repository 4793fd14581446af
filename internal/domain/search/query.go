package search

import (
	"strings"
	"time"
)

// StructuredQuery is the parsed form of a raw search string: residual free
// text plus the typed filters extracted from it.
type StructuredQuery struct {
	FreeText string    `json:"free_text"`
	Filters  FilterSet `json:"filters"`
}

// FilterSet holds typed constraints narrowing the entry set before text
// matching. A nil/empty field means "no constraint", not "false".
type FilterSet struct {
	Tags     []string   `json:"tags,omitempty"`
	Mood     *int       `json:"mood,omitempty"`
	DateFrom *time.Time `json:"date_from,omitempty"`
	DateTo   *time.Time `json:"date_to,omitempty"`
	Favorite *bool      `json:"favorite,omitempty"`
	Archived *bool      `json:"archived,omitempty"`
}

// moodWords maps mood filter words to their 1..5 scale values.
var moodWords = map[string]int{
	"happy":   5,
	"good":    4,
	"neutral": 3,
	"bad":     2,
	"sad":     1,
}

// Parse turns a raw user-typed search string into a StructuredQuery. It is a
// total function: tokens that don't match a known filter pattern stay in the
// free text verbatim, so malformed filters degrade gracefully instead of
// failing. Tokens are scanned left to right; multiple filters of the same
// kind compose (tags union, last mood/date wins, booleans stick once seen).
func Parse(raw string) StructuredQuery {
	var q StructuredQuery
	var free []string
	for _, tok := range strings.Fields(raw) {
		if q.Filters.consume(tok) {
			continue
		}
		free = append(free, tok)
	}
	q.FreeText = strings.Join(free, " ")
	return q
}

// consume attempts to interpret tok as a filter, recording it on success.
// Returns false when the token should remain in the free text.
func (f *FilterSet) consume(tok string) bool {
	switch {
	case strings.HasPrefix(tok, "tag:"):
		return f.consumeTags(strings.TrimPrefix(tok, "tag:"))
	case strings.HasPrefix(tok, "mood:"):
		mood, ok := moodWords[strings.TrimPrefix(tok, "mood:")]
		if !ok {
			return false
		}
		f.Mood = &mood
		return true
	case strings.HasPrefix(tok, "date:"):
		return f.consumeDate(strings.TrimPrefix(tok, "date:"))
	case tok == "is:favorite":
		t := true
		f.Favorite = &t
		return true
	case tok == "is:archived":
		t := true
		f.Archived = &t
		return true
	}
	return false
}

func (f *FilterSet) consumeTags(list string) bool {
	consumed := false
	for _, v := range strings.Split(list, ",") {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		f.AddTag(v)
		consumed = true
	}
	return consumed
}

func (f *FilterSet) consumeDate(value string) bool {
	if month, err := time.Parse("2006-01", value); err == nil {
		from := time.Date(month.Year(), month.Month(), 1, 0, 0, 0, 0, time.UTC)
		// Day 0 of the next month normalizes to the last calendar day of
		// this month, which handles 28/29/30/31 and leap years.
		last := time.Date(month.Year(), month.Month()+1, 0, 0, 0, 0, 0, time.UTC)
		to := endOfDay(last)
		f.DateFrom = &from
		f.DateTo = &to
		return true
	}
	if day, err := time.Parse("2006-01-02", value); err == nil {
		from := time.Date(day.Year(), day.Month(), day.Day(), 0, 0, 0, 0, time.UTC)
		to := endOfDay(from)
		f.DateFrom = &from
		f.DateTo = &to
		return true
	}
	return false
}

// endOfDay returns the last representable millisecond of t's calendar day.
func endOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(999*time.Millisecond), time.UTC)
}

// AddTag appends a tag unless already present, preserving first-seen order.
func (f *FilterSet) AddTag(tag string) {
	for _, existing := range f.Tags {
		if existing == tag {
			return
		}
	}
	f.Tags = append(f.Tags, tag)
}

// IsZero reports whether no constraint is set.
func (f FilterSet) IsZero() bool {
	return len(f.Tags) == 0 &&
		f.Mood == nil &&
		f.DateFrom == nil &&
		f.DateTo == nil &&
		f.Favorite == nil &&
		f.Archived == nil
}

// Merge returns f with other's constraints applied on top, using the same
// composition rules as repeated filter tokens: tags union, other's scalars
// win when set, set booleans replace unset ones.
func (f FilterSet) Merge(other FilterSet) FilterSet {
	out := FilterSet{
		Tags:     append([]string(nil), f.Tags...),
		Mood:     f.Mood,
		DateFrom: f.DateFrom,
		DateTo:   f.DateTo,
		Favorite: f.Favorite,
		Archived: f.Archived,
	}
	for _, tag := range other.Tags {
		out.AddTag(tag)
	}
	if other.Mood != nil {
		out.Mood = other.Mood
	}
	if other.DateFrom != nil {
		out.DateFrom = other.DateFrom
	}
	if other.DateTo != nil {
		out.DateTo = other.DateTo
	}
	if other.Favorite != nil {
		out.Favorite = other.Favorite
	}
	if other.Archived != nil {
		out.Archived = other.Archived
	}
	return out
}
