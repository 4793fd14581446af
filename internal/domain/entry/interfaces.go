package entry

import "context"

// EntryRepository provides persistence for entries.
type EntryRepository interface {
	Create(ctx context.Context, e *Entry) error
	Get(ctx context.Context, id string) (*Entry, error)
	Update(ctx context.Context, e *Entry) error
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, opts ListOptions) ([]Entry, error)
}
