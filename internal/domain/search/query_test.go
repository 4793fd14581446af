package search

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestParse_Empty(t *testing.T) {
	q := Parse("")
	require.Empty(t, q.FreeText)
	require.True(t, q.Filters.IsZero())

	q = Parse("   \t  ")
	require.Empty(t, q.FreeText)
	require.True(t, q.Filters.IsZero())
}

func TestParse_FreeTextOnly(t *testing.T) {
	q := Parse("  coffee   with   milk ")
	require.Equal(t, "coffee with milk", q.FreeText)
	require.True(t, q.Filters.IsZero())
}

func TestParse_TagUnion(t *testing.T) {
	repeated := Parse("tag:work tag:personal")
	listed := Parse("tag:work,personal")
	require.Equal(t, []string{"work", "personal"}, repeated.Filters.Tags)
	require.Equal(t, repeated.Filters.Tags, listed.Filters.Tags)
	require.Empty(t, repeated.FreeText)
}

func TestParse_TagDeduplication(t *testing.T) {
	q := Parse("tag:work tag:work,personal tag:personal")
	require.Equal(t, []string{"work", "personal"}, q.Filters.Tags)
}

func TestParse_TagValueTrimming(t *testing.T) {
	q := Parse("tag:work,,personal")
	require.Equal(t, []string{"work", "personal"}, q.Filters.Tags)
}

func TestParse_EmptyTagListNotConsumed(t *testing.T) {
	q := Parse("tag: hello")
	require.Nil(t, q.Filters.Tags)
	require.Equal(t, "tag: hello", q.FreeText)
}

func TestParse_MoodWords(t *testing.T) {
	for word, want := range map[string]int{
		"happy":   5,
		"good":    4,
		"neutral": 3,
		"bad":     2,
		"sad":     1,
	} {
		q := Parse("mood:" + word)
		require.NotNil(t, q.Filters.Mood, "mood:%s", word)
		require.Equal(t, want, *q.Filters.Mood, "mood:%s", word)
		require.Empty(t, q.FreeText)
	}
}

func TestParse_MoodFallback(t *testing.T) {
	q := Parse("mood:invalid")
	require.Nil(t, q.Filters.Mood)
	require.Equal(t, "mood:invalid", q.FreeText)
}

func TestParse_MoodLastWins(t *testing.T) {
	q := Parse("mood:sad mood:happy")
	require.NotNil(t, q.Filters.Mood)
	require.Equal(t, 5, *q.Filters.Mood)
}

func TestParse_DateMonth(t *testing.T) {
	q := Parse("date:2024-03")
	require.NotNil(t, q.Filters.DateFrom)
	require.NotNil(t, q.Filters.DateTo)
	require.Equal(t, time.Date(2024, 3, 1, 0, 0, 0, 0, time.UTC), *q.Filters.DateFrom)
	require.Equal(t, time.Date(2024, 3, 31, 23, 59, 59, 999000000, time.UTC), *q.Filters.DateTo)
}

func TestParse_DateMonthLeapYear(t *testing.T) {
	leap := Parse("date:2024-02")
	require.Equal(t, time.Date(2024, 2, 29, 23, 59, 59, 999000000, time.UTC), *leap.Filters.DateTo)

	common := Parse("date:2023-02")
	require.Equal(t, time.Date(2023, 2, 28, 23, 59, 59, 999000000, time.UTC), *common.Filters.DateTo)

	// Century years are leap only when divisible by 400.
	century := Parse("date:1900-02")
	require.Equal(t, time.Date(1900, 2, 28, 23, 59, 59, 999000000, time.UTC), *century.Filters.DateTo)

	fourHundred := Parse("date:2000-02")
	require.Equal(t, time.Date(2000, 2, 29, 23, 59, 59, 999000000, time.UTC), *fourHundred.Filters.DateTo)
}

func TestParse_DateDay(t *testing.T) {
	q := Parse("date:2024-06-15")
	require.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *q.Filters.DateFrom)
	require.Equal(t, time.Date(2024, 6, 15, 23, 59, 59, 999000000, time.UTC), *q.Filters.DateTo)
}

func TestParse_DateMalformed(t *testing.T) {
	for _, raw := range []string{"date:2024", "date:2024-13", "date:2024-02-30", "date:notadate"} {
		q := Parse(raw)
		require.Nil(t, q.Filters.DateFrom, "%s", raw)
		require.Equal(t, raw, q.FreeText, "%s", raw)
	}
}

func TestParse_DateLastWins(t *testing.T) {
	q := Parse("date:2024-01 date:2024-06-15")
	require.Equal(t, time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC), *q.Filters.DateFrom)
}

func TestParse_IsFlags(t *testing.T) {
	q := Parse("is:favorite is:archived")
	require.NotNil(t, q.Filters.Favorite)
	require.True(t, *q.Filters.Favorite)
	require.NotNil(t, q.Filters.Archived)
	require.True(t, *q.Filters.Archived)
	require.Empty(t, q.FreeText)
}

func TestParse_UnknownIsValueNotConsumed(t *testing.T) {
	q := Parse("is:pinned")
	require.Nil(t, q.Filters.Favorite)
	require.Nil(t, q.Filters.Archived)
	require.Equal(t, "is:pinned", q.FreeText)
}

func TestParse_InterleavedOrderIndependence(t *testing.T) {
	a := Parse("coffee tag:work mood:happy date:2024-02 is:favorite notes")
	b := Parse("tag:work coffee notes is:favorite date:2024-02 mood:happy")
	require.Equal(t, a.Filters, b.Filters)
	require.Equal(t, "coffee notes", a.FreeText)
	require.Equal(t, a.FreeText, b.FreeText)
}

func TestParse_Idempotence(t *testing.T) {
	// Parsing the residual free text again must not extract anything new.
	q := Parse("morning pages tag:journal mood:good date:2024-05")
	again := Parse(q.FreeText)
	require.Equal(t, q.FreeText, again.FreeText)
	require.True(t, again.Filters.IsZero())
}

func TestFilterSet_Merge(t *testing.T) {
	mood3 := 3
	mood5 := 5
	yes := true
	from := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	base := FilterSet{Tags: []string{"work"}, Mood: &mood3}
	over := FilterSet{Tags: []string{"personal", "work"}, Mood: &mood5, Favorite: &yes, DateFrom: &from}

	merged := base.Merge(over)
	require.Equal(t, []string{"work", "personal"}, merged.Tags)
	require.Equal(t, 5, *merged.Mood)
	require.True(t, *merged.Favorite)
	require.Equal(t, from, *merged.DateFrom)
	require.Nil(t, merged.Archived)

	// The receiver is not mutated.
	require.Equal(t, []string{"work"}, base.Tags)
	require.Equal(t, 3, *base.Mood)
}

func TestFilterSet_MergeEmpty(t *testing.T) {
	q := Parse("tag:work is:favorite")
	merged := q.Filters.Merge(FilterSet{})
	require.Equal(t, q.Filters, merged)
}
