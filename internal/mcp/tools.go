package mcp

import (
	"context"
	"strings"

	"github.com/jotkit/jot/internal/domain/entry"
	"github.com/jotkit/jot/internal/domain/search"
	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
)

func registerTools(server *sdkmcp.Server, svc Services, defaultLimit int) {
	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "search_entries",
		Description: "Search journal entries. Free text may embed tag:, mood:, date: and is: tokens; explicit filters are merged on top.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SearchEntriesParams) (*sdkmcp.CallToolResult, SearchEntriesResult, error) {
		q := search.Parse(params.FreeText)
		widget, err := params.Filters.toFilterSet()
		if err != nil {
			return nil, SearchEntriesResult{}, &APIError{Code: "INVALID_INPUT", Message: err.Error()}
		}
		q.Filters = q.Filters.Merge(widget)

		limit := params.Limit
		if limit <= 0 {
			limit = defaultLimit
		}
		scopeID := params.ScopeID
		if scopeID == "" {
			scopeID = getScopeID(ctx)
		}

		records, err := svc.Search.Search(ctx, q, scopeID, limit, params.Offset)
		if err != nil {
			return nil, SearchEntriesResult{}, mapError(err)
		}
		result := SearchEntriesResult{Results: make([]MatchRecordResponse, 0, len(records))}
		for _, rec := range records {
			result.Results = append(result.Results, toMatchRecordResponse(rec))
		}
		return nil, result, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "create_entry",
		Description: "Create a new journal entry.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params CreateEntryParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
		scopeID := params.ScopeID
		if scopeID == "" {
			scopeID = getScopeID(ctx)
		}
		e, err := svc.Entries.Create(ctx, entry.CreateRequest{
			ScopeID:  scopeID,
			Title:    params.Title,
			Content:  params.Content,
			Tags:     params.Tags,
			Mood:     params.Mood,
			Favorite: params.Favorite,
		})
		if err != nil {
			return nil, EntryResponse{}, mapError(err)
		}
		return nil, toEntryResponse(*e), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "get_entry",
		Description: "Fetch a single entry by ID.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params GetEntryParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
		e, err := svc.Entries.Get(ctx, strings.TrimSpace(params.ID))
		if err != nil {
			return nil, EntryResponse{}, mapError(err)
		}
		return nil, toEntryResponse(*e), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "update_entry",
		Description: "Update an entry. Omitted fields are left unchanged; a present tags list replaces all tags.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params UpdateEntryParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
		e, err := svc.Entries.Update(ctx, entry.UpdateRequest{
			ID:      strings.TrimSpace(params.ID),
			Title:   params.Title,
			Content: params.Content,
			Tags:    params.Tags,
			Mood:    params.Mood,
		})
		if err != nil {
			return nil, EntryResponse{}, mapError(err)
		}
		return nil, toEntryResponse(*e), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "delete_entry",
		Description: "Delete an entry by ID.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params DeleteEntryParams) (*sdkmcp.CallToolResult, DeleteEntryResult, error) {
		if err := svc.Entries.Delete(ctx, strings.TrimSpace(params.ID)); err != nil {
			return nil, DeleteEntryResult{}, mapError(err)
		}
		return nil, DeleteEntryResult{Deleted: true}, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "list_entries",
		Description: "List entries newest first. Archived entries are excluded unless include_archived is set.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params ListEntriesParams) (*sdkmcp.CallToolResult, ListEntriesResult, error) {
		scopeID := params.ScopeID
		if scopeID == "" {
			scopeID = getScopeID(ctx)
		}
		limit := params.Limit
		if limit <= 0 {
			limit = defaultLimit
		}
		entries, err := svc.Entries.List(ctx, entry.ListOptions{
			ScopeID:         scopeID,
			IncludeArchived: params.IncludeArchived,
			Limit:           limit,
			Offset:          params.Offset,
		})
		if err != nil {
			return nil, ListEntriesResult{}, mapError(err)
		}
		result := ListEntriesResult{Entries: make([]EntryResponse, 0, len(entries))}
		for _, e := range entries {
			result.Entries = append(result.Entries, toEntryResponse(e))
		}
		return nil, result, nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_favorite",
		Description: "Mark or unmark an entry as a favorite.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SetFlagParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
		e, err := svc.Entries.SetFavorite(ctx, strings.TrimSpace(params.ID), params.Value)
		if err != nil {
			return nil, EntryResponse{}, mapError(err)
		}
		return nil, toEntryResponse(*e), nil
	})

	sdkmcp.AddTool(server, &sdkmcp.Tool{
		Name:        "set_archived",
		Description: "Archive or unarchive an entry. Archived entries are hidden from listings but remain searchable.",
	}, func(ctx context.Context, req *sdkmcp.CallToolRequest, params SetFlagParams) (*sdkmcp.CallToolResult, EntryResponse, error) {
		e, err := svc.Entries.SetArchived(ctx, strings.TrimSpace(params.ID), params.Value)
		if err != nil {
			return nil, EntryResponse{}, mapError(err)
		}
		return nil, toEntryResponse(*e), nil
	})
}
