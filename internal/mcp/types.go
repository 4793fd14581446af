package mcp

import (
	"fmt"
	"time"

	"github.com/jotkit/jot/internal/domain/entry"
	"github.com/jotkit/jot/internal/domain/search"
)

// FilterParams mirrors search.FilterSet on the wire. Dates are RFC 3339
// strings; absent fields mean "no constraint".
type FilterParams struct {
	Tags     []string `json:"tags,omitempty" jsonschema:"entries must carry every listed tag"`
	Mood     *int     `json:"mood,omitempty" jsonschema:"exact mood value, 1 (sad) to 5 (happy)"`
	DateFrom *string  `json:"date_from,omitempty" jsonschema:"RFC 3339 lower bound on creation time, inclusive"`
	DateTo   *string  `json:"date_to,omitempty" jsonschema:"RFC 3339 upper bound on creation time, inclusive"`
	Favorite *bool    `json:"favorite,omitempty" jsonschema:"require the favorite flag to equal this value"`
	Archived *bool    `json:"archived,omitempty" jsonschema:"require the archived flag to equal this value"`
}

func (p *FilterParams) toFilterSet() (search.FilterSet, error) {
	var fs search.FilterSet
	if p == nil {
		return fs, nil
	}
	for _, tag := range p.Tags {
		fs.AddTag(tag)
	}
	fs.Mood = p.Mood
	fs.Favorite = p.Favorite
	fs.Archived = p.Archived
	if p.DateFrom != nil {
		t, err := time.Parse(time.RFC3339, *p.DateFrom)
		if err != nil {
			return fs, fmt.Errorf("invalid date_from: %w", err)
		}
		fs.DateFrom = &t
	}
	if p.DateTo != nil {
		t, err := time.Parse(time.RFC3339, *p.DateTo)
		if err != nil {
			return fs, fmt.Errorf("invalid date_to: %w", err)
		}
		fs.DateTo = &t
	}
	return fs, nil
}

// SearchEntriesParams is the search_entries request payload.
type SearchEntriesParams struct {
	FreeText string        `json:"free_text,omitempty" jsonschema:"search text; tag:/mood:/date:/is: tokens are parsed as filters"`
	Filters  *FilterParams `json:"filters,omitempty"`
	ScopeID  string        `json:"scope_id,omitempty" jsonschema:"restrict search to one journal scope"`
	Limit    int           `json:"limit,omitempty" jsonschema:"maximum number of results"`
	Offset   int           `json:"offset,omitempty" jsonschema:"offset for pagination"`
}

// SnippetResponse is a bounded excerpt with the matched span marked.
type SnippetResponse struct {
	Text           string `json:"text"`
	HighlightStart int    `json:"highlight_start"`
	HighlightEnd   int    `json:"highlight_end"`
}

// EntryResponse is the wire form of an entry.
type EntryResponse struct {
	ID         string   `json:"id"`
	ScopeID    string   `json:"scope_id,omitempty"`
	Title      string   `json:"title,omitempty"`
	Content    string   `json:"content"`
	Tags       []string `json:"tags,omitempty"`
	Mood       *int     `json:"mood,omitempty"`
	IsFavorite bool     `json:"is_favorite"`
	IsArchived bool     `json:"is_archived"`
	CreatedAt  string   `json:"created_at"`
	ModifiedAt string   `json:"modified_at"`
}

// MatchRecordResponse is one search hit.
type MatchRecordResponse struct {
	Entry        EntryResponse    `json:"entry"`
	MatchedField string           `json:"matched_field,omitempty"`
	Snippet      *SnippetResponse `json:"snippet,omitempty"`
}

// SearchEntriesResult is the search_entries response payload.
type SearchEntriesResult struct {
	Results []MatchRecordResponse `json:"results"`
}

// CreateEntryParams is the create_entry request payload.
type CreateEntryParams struct {
	ScopeID  string   `json:"scope_id,omitempty"`
	Title    string   `json:"title,omitempty"`
	Content  string   `json:"content" jsonschema:"entry body, rich-text markup allowed"`
	Tags     []string `json:"tags,omitempty"`
	Mood     *int     `json:"mood,omitempty" jsonschema:"1 (sad) to 5 (happy)"`
	Favorite bool     `json:"favorite,omitempty"`
}

// GetEntryParams is the get_entry request payload.
type GetEntryParams struct {
	ID string `json:"id"`
}

// UpdateEntryParams is the update_entry request payload. Omitted fields are
// left unchanged.
type UpdateEntryParams struct {
	ID      string   `json:"id"`
	Title   *string  `json:"title,omitempty"`
	Content *string  `json:"content,omitempty"`
	Tags    []string `json:"tags,omitempty" jsonschema:"replaces the full tag list when present"`
	Mood    *int     `json:"mood,omitempty"`
}

// DeleteEntryParams is the delete_entry request payload.
type DeleteEntryParams struct {
	ID string `json:"id"`
}

// DeleteEntryResult acknowledges a deletion.
type DeleteEntryResult struct {
	Deleted bool `json:"deleted"`
}

// ListEntriesParams is the list_entries request payload.
type ListEntriesParams struct {
	ScopeID         string `json:"scope_id,omitempty"`
	IncludeArchived bool   `json:"include_archived,omitempty"`
	Limit           int    `json:"limit,omitempty"`
	Offset          int    `json:"offset,omitempty"`
}

// ListEntriesResult is the list_entries response payload.
type ListEntriesResult struct {
	Entries []EntryResponse `json:"entries"`
}

// SetFlagParams toggles the favorite or archived flag on an entry.
type SetFlagParams struct {
	ID    string `json:"id"`
	Value bool   `json:"value"`
}

func toEntryResponse(e entry.Entry) EntryResponse {
	return EntryResponse{
		ID:         e.ID,
		ScopeID:    e.ScopeID,
		Title:      e.Title,
		Content:    e.Content,
		Tags:       e.Tags,
		Mood:       e.Mood,
		IsFavorite: e.IsFavorite,
		IsArchived: e.IsArchived,
		CreatedAt:  e.CreatedAt.Format(time.RFC3339Nano),
		ModifiedAt: e.ModifiedAt.Format(time.RFC3339Nano),
	}
}

func toMatchRecordResponse(rec search.MatchRecord) MatchRecordResponse {
	resp := MatchRecordResponse{
		Entry:        toEntryResponse(rec.Entry),
		MatchedField: string(rec.MatchedField),
	}
	if rec.Snippet != nil {
		resp.Snippet = &SnippetResponse{
			Text:           rec.Snippet.Text,
			HighlightStart: rec.Snippet.HighlightStart,
			HighlightEnd:   rec.Snippet.HighlightEnd,
		}
	}
	return resp
}
