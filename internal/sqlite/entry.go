package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/jotkit/jot/internal/domain/entry"
)

// EntryRepository implements entry.EntryRepository for SQLite
type EntryRepository struct {
	db *DB
}

// NewEntryRepository creates a new EntryRepository
func NewEntryRepository(db *DB) *EntryRepository {
	return &EntryRepository{db: db}
}

// Create inserts a new entry with its tags.
func (r *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx, `
		INSERT INTO entries (
			id, scope_id, title, content, mood,
			is_favorite, is_archived, created_at, modified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		e.ID,
		e.ScopeID,
		e.Title,
		e.Content,
		e.Mood,
		e.IsFavorite,
		e.IsArchived,
		e.CreatedAt,
		e.ModifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create entry: %w", err)
	}

	if err := insertTags(ctx, tx, e.ID, e.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// Get retrieves an entry by ID
func (r *EntryRepository) Get(ctx context.Context, id string) (*entry.Entry, error) {
	var e entry.Entry
	var mood sql.NullInt64
	err := r.db.QueryRowContext(ctx, `
		SELECT id, scope_id, title, content, mood,
			is_favorite, is_archived, created_at, modified_at
		FROM entries WHERE id = ?
	`, id).Scan(
		&e.ID,
		&e.ScopeID,
		&e.Title,
		&e.Content,
		&mood,
		&e.IsFavorite,
		&e.IsArchived,
		&e.CreatedAt,
		&e.ModifiedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, entry.ErrEntryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get entry: %w", err)
	}
	if mood.Valid {
		v := int(mood.Int64)
		e.Mood = &v
	}

	tags, err := r.loadTags(ctx, []string{e.ID})
	if err != nil {
		return nil, err
	}
	e.Tags = tags[e.ID]

	return &e, nil
}

// Update rewrites an entry and replaces its tag set.
func (r *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx, `
		UPDATE entries SET
			scope_id = ?, title = ?, content = ?, mood = ?,
			is_favorite = ?, is_archived = ?, modified_at = ?
		WHERE id = ?
	`,
		e.ScopeID,
		e.Title,
		e.Content,
		e.Mood,
		e.IsFavorite,
		e.IsArchived,
		e.ModifiedAt,
		e.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if affected == 0 {
		return entry.ErrEntryNotFound
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM entry_tags WHERE entry_id = ?`, e.ID); err != nil {
		return fmt.Errorf("failed to clear entry tags: %w", err)
	}
	if err := insertTags(ctx, tx, e.ID, e.Tags); err != nil {
		return err
	}

	return tx.Commit()
}

// Delete removes an entry; tags cascade.
func (r *EntryRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM entries WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete entry: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if affected == 0 {
		return entry.ErrEntryNotFound
	}
	return nil
}

// List returns entries newest-first.
func (r *EntryRepository) List(ctx context.Context, opts entry.ListOptions) ([]entry.Entry, error) {
	query := `
		SELECT id, scope_id, title, content, mood,
			is_favorite, is_archived, created_at, modified_at
		FROM entries
	`
	var conditions []string
	var args []interface{}

	if opts.ScopeID != "" {
		conditions = append(conditions, "scope_id = ?")
		args = append(args, opts.ScopeID)
	}
	if !opts.IncludeArchived {
		conditions = append(conditions, "is_archived = 0")
	}
	if len(conditions) > 0 {
		query += " WHERE " + strings.Join(conditions, " AND ")
	}
	query += " ORDER BY created_at DESC, id"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
	} else if opts.Offset > 0 {
		// SQLite requires a LIMIT clause before OFFSET.
		query += " LIMIT -1"
	}
	if opts.Offset > 0 {
		query += " OFFSET ?"
		args = append(args, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list entries: %w", err)
	}
	defer rows.Close()

	entries, err := scanEntries(rows)
	if err != nil {
		return nil, err
	}
	if err := r.attachTags(ctx, entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func scanEntries(rows *sql.Rows) ([]entry.Entry, error) {
	var entries []entry.Entry
	for rows.Next() {
		var e entry.Entry
		var mood sql.NullInt64
		err := rows.Scan(
			&e.ID,
			&e.ScopeID,
			&e.Title,
			&e.Content,
			&mood,
			&e.IsFavorite,
			&e.IsArchived,
			&e.CreatedAt,
			&e.ModifiedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan entry: %w", err)
		}
		if mood.Valid {
			v := int(mood.Int64)
			e.Mood = &v
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entries: %w", err)
	}
	return entries, nil
}

func (r *EntryRepository) attachTags(ctx context.Context, entries []entry.Entry) error {
	if len(entries) == 0 {
		return nil
	}
	ids := make([]string, len(entries))
	for i, e := range entries {
		ids[i] = e.ID
	}
	tags, err := r.loadTags(ctx, ids)
	if err != nil {
		return err
	}
	for i := range entries {
		entries[i].Tags = tags[entries[i].ID]
	}
	return nil
}

func (r *EntryRepository) loadTags(ctx context.Context, entryIDs []string) (map[string][]string, error) {
	placeholders := make([]string, len(entryIDs))
	args := make([]interface{}, len(entryIDs))
	for i, id := range entryIDs {
		placeholders[i] = "?"
		args[i] = id
	}

	rows, err := r.db.QueryContext(ctx, fmt.Sprintf(`
		SELECT entry_id, tag FROM entry_tags
		WHERE entry_id IN (%s)
		ORDER BY entry_id, position
	`, strings.Join(placeholders, ",")), args...)
	if err != nil {
		return nil, fmt.Errorf("failed to load entry tags: %w", err)
	}
	defer rows.Close()

	tags := make(map[string][]string)
	for rows.Next() {
		var entryID, tag string
		if err := rows.Scan(&entryID, &tag); err != nil {
			return nil, fmt.Errorf("failed to scan entry tag: %w", err)
		}
		tags[entryID] = append(tags[entryID], tag)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating entry tags: %w", err)
	}
	return tags, nil
}

func insertTags(ctx context.Context, tx *sql.Tx, entryID string, tags []string) error {
	for i, tag := range tags {
		_, err := tx.ExecContext(ctx,
			`INSERT INTO entry_tags (entry_id, position, tag) VALUES (?, ?, ?)`,
			entryID, i, tag,
		)
		if err != nil {
			return fmt.Errorf("failed to insert entry tag: %w", err)
		}
	}
	return nil
}
