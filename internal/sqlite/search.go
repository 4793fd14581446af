package sqlite

import (
	"context"
	"fmt"
	"strings"

	"github.com/jotkit/jot/internal/domain/search"
)

// SearchRepository implements search.Executor over the SQLite store. Scope,
// mood, flag and tag-subset constraints are pushed into SQL; text matching,
// field priority and snippet building run through search.Match.
type SearchRepository struct {
	db *DB
}

// NewSearchRepository creates a new SearchRepository
func NewSearchRepository(db *DB) *SearchRepository {
	return &SearchRepository{db: db}
}

// SearchEntries satisfies search.Executor.
func (r *SearchRepository) SearchEntries(ctx context.Context, q search.StructuredQuery, scopeID string) ([]search.MatchRecord, error) {
	return r.Search(ctx, q, scopeID, 0, 0)
}

// Search evaluates a structured query against persisted entries, newest
// first. Limit/offset apply after matching so pagination windows are stable.
func (r *SearchRepository) Search(ctx context.Context, q search.StructuredQuery, scopeID string, limit, offset int) ([]search.MatchRecord, error) {
	query := `
		SELECT e.id, e.scope_id, e.title, e.content, e.mood,
			e.is_favorite, e.is_archived, e.created_at, e.modified_at
		FROM entries e
	`
	var conditions []string
	var args []interface{}

	if scopeID != "" {
		conditions = append(conditions, "e.scope_id = ?")
		args = append(args, scopeID)
	}
	if q.Filters.Mood != nil {
		conditions = append(conditions, "e.mood = ?")
		args = append(args, *q.Filters.Mood)
	}
	if q.Filters.Favorite != nil {
		conditions = append(conditions, "e.is_favorite = ?")
		args = append(args, *q.Filters.Favorite)
	}
	if q.Filters.Archived != nil {
		conditions = append(conditions, "e.is_archived = ?")
		args = append(args, *q.Filters.Archived)
	}
	if len(q.Filters.Tags) > 0 {
		placeholders := make([]string, len(q.Filters.Tags))
		for i, tag := range q.Filters.Tags {
			placeholders[i] = "?"
			args = append(args, tag)
		}
		conditions = append(conditions, fmt.Sprintf(`e.id IN (
			SELECT entry_id FROM entry_tags
			WHERE tag IN (%s)
			GROUP BY entry_id
			HAVING COUNT(DISTINCT tag) = ?
		)`, strings.Join(placeholders, ",")))
		args = append(args, len(q.Filters.Tags))
	}

	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY e.created_at DESC, e.id"

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to search entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}

	entryRepo := EntryRepository{db: r.db}
	if err := entryRepo.attachTags(ctx, entries); err != nil {
		return nil, err
	}

	// Date bounds are applied by the matcher; timestamps round-trip through
	// the driver as formatted strings.
	results := search.Match(q, entries)

	if offset > 0 {
		if offset >= len(results) {
			return []search.MatchRecord{}, nil
		}
		results = results[offset:]
	}
	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}
