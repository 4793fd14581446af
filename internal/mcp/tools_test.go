package mcp

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"testing"
	"time"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/require"

	"github.com/jotkit/jot/internal/domain/entry"
	"github.com/jotkit/jot/internal/sqlite"
)

// newTestSession wires a full server (real in-memory database) to an MCP
// client over in-memory transports.
func newTestSession(t *testing.T) *sdkmcp.ClientSession {
	t.Helper()

	db, err := sqlite.New(":memory:")
	require.NoError(t, err)
	require.NoError(t, db.RunMigrations())
	t.Cleanup(func() { db.Close() })

	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	entries := sqlite.NewEntryRepository(db)

	server := NewServer(Config{
		Services: Services{
			Entries: entry.NewService(entries, logger),
			Search:  sqlite.NewSearchRepository(db),
		},
		DefaultLimit: 50,
		Logger:       logger,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)

	serverTransport, clientTransport := sdkmcp.NewInMemoryTransports()
	serverSession, err := server.Connect(ctx, serverTransport, nil)
	require.NoError(t, err)

	client := sdkmcp.NewClient(&sdkmcp.Implementation{
		Name:    "test-client",
		Version: "1.0.0",
	}, nil)
	clientSession, err := client.Connect(ctx, clientTransport, nil)
	require.NoError(t, err)

	t.Cleanup(func() {
		clientSession.Close()
		serverSession.Wait()
		cancel()
	})

	return clientSession
}

func callTool(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any, out any) {
	t.Helper()
	raw := callToolRaw(t, session, name, args)
	require.False(t, raw.IsError, "tool %s returned error: %s", name, toolText(raw))
	require.NoError(t, json.Unmarshal([]byte(toolText(raw)), out))
}

func callToolRaw(t *testing.T, session *sdkmcp.ClientSession, name string, args map[string]any) *sdkmcp.CallToolResult {
	t.Helper()
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	result, err := session.CallTool(ctx, &sdkmcp.CallToolParams{
		Name:      name,
		Arguments: args,
	})
	require.NoError(t, err, "CallTool %s failed", name)
	return result
}

func toolText(result *sdkmcp.CallToolResult) string {
	for _, content := range result.Content {
		if text, ok := content.(*sdkmcp.TextContent); ok {
			return text.Text
		}
	}
	return ""
}

func createTestEntry(t *testing.T, session *sdkmcp.ClientSession, args map[string]any) EntryResponse {
	t.Helper()
	var resp EntryResponse
	callTool(t, session, "create_entry", args, &resp)
	return resp
}

func TestCreateAndGetEntry(t *testing.T) {
	session := newTestSession(t)

	created := createTestEntry(t, session, map[string]any{
		"title":   "Morning pages",
		"content": "Slept well, feeling rested.",
		"tags":    []string{"health", "sleep"},
		"mood":    4,
	})
	require.NotEmpty(t, created.ID)
	require.Equal(t, "Morning pages", created.Title)
	require.Equal(t, []string{"health", "sleep"}, created.Tags)
	require.NotNil(t, created.Mood)
	require.Equal(t, 4, *created.Mood)

	var fetched EntryResponse
	callTool(t, session, "get_entry", map[string]any{"id": created.ID}, &fetched)
	require.Equal(t, created.ID, fetched.ID)
	require.Equal(t, "Slept well, feeling rested.", fetched.Content)
}

func TestGetEntry_NotFound(t *testing.T) {
	session := newTestSession(t)

	result := callToolRaw(t, session, "get_entry", map[string]any{"id": "no-such-id"})
	require.True(t, result.IsError)
	require.Contains(t, toolText(result), "ENTRY_NOT_FOUND")
}

func TestCreateEntry_RejectsEmptyContent(t *testing.T) {
	session := newTestSession(t)

	result := callToolRaw(t, session, "create_entry", map[string]any{"title": "no body"})
	require.True(t, result.IsError)
	require.Contains(t, toolText(result), "INVALID_INPUT")
}

func TestUpdateEntry_PartialUpdate(t *testing.T) {
	session := newTestSession(t)
	created := createTestEntry(t, session, map[string]any{
		"title":   "Draft",
		"content": "first version",
		"tags":    []string{"draft"},
	})

	var updated EntryResponse
	callTool(t, session, "update_entry", map[string]any{
		"id":    created.ID,
		"title": "Final",
	}, &updated)
	require.Equal(t, "Final", updated.Title)
	require.Equal(t, "first version", updated.Content)
	require.Equal(t, []string{"draft"}, updated.Tags)
}

func TestDeleteEntry(t *testing.T) {
	session := newTestSession(t)
	created := createTestEntry(t, session, map[string]any{"content": "to be removed"})

	var del DeleteEntryResult
	callTool(t, session, "delete_entry", map[string]any{"id": created.ID}, &del)
	require.True(t, del.Deleted)

	result := callToolRaw(t, session, "get_entry", map[string]any{"id": created.ID})
	require.True(t, result.IsError)
}

func TestListEntries_ExcludesArchivedByDefault(t *testing.T) {
	session := newTestSession(t)
	kept := createTestEntry(t, session, map[string]any{"content": "kept"})
	archived := createTestEntry(t, session, map[string]any{"content": "hidden"})

	var resp EntryResponse
	callTool(t, session, "set_archived", map[string]any{"id": archived.ID, "value": true}, &resp)
	require.True(t, resp.IsArchived)

	var list ListEntriesResult
	callTool(t, session, "list_entries", map[string]any{}, &list)
	require.Len(t, list.Entries, 1)
	require.Equal(t, kept.ID, list.Entries[0].ID)

	callTool(t, session, "list_entries", map[string]any{"include_archived": true}, &list)
	require.Len(t, list.Entries, 2)
}

func TestSetFavorite_RoundTrip(t *testing.T) {
	session := newTestSession(t)
	created := createTestEntry(t, session, map[string]any{"content": "star me"})

	var resp EntryResponse
	callTool(t, session, "set_favorite", map[string]any{"id": created.ID, "value": true}, &resp)
	require.True(t, resp.IsFavorite)

	callTool(t, session, "set_favorite", map[string]any{"id": created.ID, "value": false}, &resp)
	require.False(t, resp.IsFavorite)
}

func TestSearchEntries_FreeTextWithEmbeddedFilters(t *testing.T) {
	session := newTestSession(t)
	createTestEntry(t, session, map[string]any{
		"content": "Long run along the river",
		"tags":    []string{"exercise"},
		"mood":    5,
	})
	createTestEntry(t, session, map[string]any{
		"content": "Long meeting about budgets",
		"tags":    []string{"work"},
		"mood":    2,
	})

	var result SearchEntriesResult
	callTool(t, session, "search_entries", map[string]any{
		"free_text": "tag:exercise mood:happy long",
	}, &result)
	require.Len(t, result.Results, 1)
	require.Equal(t, "Long run along the river", result.Results[0].Entry.Content)
	require.Equal(t, "content", result.Results[0].MatchedField)
	require.NotNil(t, result.Results[0].Snippet)
	require.Equal(t, "Long", result.Results[0].Snippet.Text[result.Results[0].Snippet.HighlightStart:result.Results[0].Snippet.HighlightEnd])
}

func TestSearchEntries_StructuredFiltersOverrideText(t *testing.T) {
	session := newTestSession(t)
	createTestEntry(t, session, map[string]any{"content": "coffee notes", "mood": 5})
	createTestEntry(t, session, map[string]any{"content": "coffee experiments", "mood": 2})

	var result SearchEntriesResult
	callTool(t, session, "search_entries", map[string]any{
		"free_text": "coffee mood:happy",
		"filters":   map[string]any{"mood": 2},
	}, &result)
	require.Len(t, result.Results, 1)
	require.Equal(t, "coffee experiments", result.Results[0].Entry.Content)
}

func TestSearchEntries_IncludesArchived(t *testing.T) {
	session := newTestSession(t)
	archived := createTestEntry(t, session, map[string]any{"content": "old thoughts"})

	var resp EntryResponse
	callTool(t, session, "set_archived", map[string]any{"id": archived.ID, "value": true}, &resp)

	var result SearchEntriesResult
	callTool(t, session, "search_entries", map[string]any{"free_text": "thoughts"}, &result)
	require.Len(t, result.Results, 1)
	require.True(t, result.Results[0].Entry.IsArchived)
}

func TestSearchEntries_InvalidDateFilter(t *testing.T) {
	session := newTestSession(t)

	result := callToolRaw(t, session, "search_entries", map[string]any{
		"filters": map[string]any{"date_from": "not-a-date"},
	})
	require.True(t, result.IsError)
	require.Contains(t, toolText(result), "INVALID_INPUT")
}

func TestSearchEntries_ScopeIsolation(t *testing.T) {
	session := newTestSession(t)
	createTestEntry(t, session, map[string]any{"content": "work plans", "scope_id": "work"})
	createTestEntry(t, session, map[string]any{"content": "travel plans", "scope_id": "personal"})

	var result SearchEntriesResult
	callTool(t, session, "search_entries", map[string]any{
		"free_text": "plans",
		"scope_id":  "work",
	}, &result)
	require.Len(t, result.Results, 1)
	require.Equal(t, "work plans", result.Results[0].Entry.Content)
}

func TestReadQuerySyntaxResource(t *testing.T) {
	session := newTestSession(t)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	res, err := session.ReadResource(ctx, &sdkmcp.ReadResourceParams{URI: "jot://docs/query-syntax"})
	require.NoError(t, err)
	require.Len(t, res.Contents, 1)
	require.Contains(t, res.Contents[0].Text, "tag:")
}
