package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/jotkit/jot/internal/domain/entry"
	"github.com/jotkit/jot/internal/domain/search"
)

// Define styles using lipgloss
var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("86"))

	snippetStyle = lipgloss.NewStyle().
			Margin(0, 0, 0, 2)

	highlightStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("214"))

	metaStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true)

	tagStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("33"))

	noDataStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("240")).
			Italic(true).
			Margin(1, 0)
)

var moodGlyphs = map[int]string{
	1: "sad",
	2: "bad",
	3: "neutral",
	4: "good",
	5: "happy",
}

func printEntrySummary(e entry.Entry) {
	title := e.Title
	if title == "" {
		title = firstLine(search.StripMarkup(e.Content))
	}
	fmt.Println(titleStyle.Render(title))
	fmt.Println(snippetStyle.Render(metaStyle.Render(entryMeta(e))))
}

func printEntryDetail(e entry.Entry) {
	if e.Title != "" {
		fmt.Println(titleStyle.Render(e.Title))
	}
	fmt.Println(search.StripMarkup(e.Content))
	fmt.Println(metaStyle.Render(entryMeta(e)))
}

func printSearchResults(records []search.MatchRecord) {
	if len(records) == 0 {
		fmt.Println(noDataStyle.Render("No results found"))
		return
	}
	for i, rec := range records {
		title := rec.Entry.Title
		if title == "" {
			title = firstLine(search.StripMarkup(rec.Entry.Content))
		}
		fmt.Println(titleStyle.Render(title))
		if rec.Snippet != nil {
			fmt.Println(snippetStyle.Render(renderSnippet(*rec.Snippet)))
		}
		fmt.Println(snippetStyle.Render(metaStyle.Render(entryMeta(rec.Entry))))
		if i < len(records)-1 {
			fmt.Println()
		}
	}
	fmt.Printf("\n%s\n", metaStyle.Render(fmt.Sprintf("%d results", len(records))))
}

// renderSnippet bolds the matched span inside the excerpt.
func renderSnippet(s search.Snippet) string {
	start, end := s.HighlightStart, s.HighlightEnd
	if start < 0 || end > len(s.Text) || start > end {
		return s.Text
	}
	return s.Text[:start] + highlightStyle.Render(s.Text[start:end]) + s.Text[end:]
}

func entryMeta(e entry.Entry) string {
	parts := []string{e.ID[:shortIDLen(e.ID)], e.CreatedAt.Local().Format("2006-01-02 15:04")}
	if len(e.Tags) > 0 {
		parts = append(parts, tagStyle.Render("#"+strings.Join(e.Tags, " #")))
	}
	if e.Mood != nil {
		if word, ok := moodGlyphs[*e.Mood]; ok {
			parts = append(parts, word)
		}
	}
	if e.IsFavorite {
		parts = append(parts, "favorite")
	}
	if e.IsArchived {
		parts = append(parts, "archived")
	}
	return strings.Join(parts, "  ")
}

func shortIDLen(id string) int {
	if len(id) < 8 {
		return len(id)
	}
	return 8
}

func firstLine(s string) string {
	if i := strings.IndexByte(s, '\n'); i >= 0 {
		s = s[:i]
	}
	if len(s) > 60 {
		s = s[:60] + "…"
	}
	return s
}
