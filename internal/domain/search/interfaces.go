package search

import "context"

// Executor runs a structured query against persisted entries, wherever they
// live, and returns results with Match semantics. The coordinator treats it
// as opaque; it may be an in-process store or a cross-process call.
type Executor interface {
	SearchEntries(ctx context.Context, q StructuredQuery, scopeID string) ([]MatchRecord, error)
}

// ExecutorFunc adapts a function to the Executor interface.
type ExecutorFunc func(ctx context.Context, q StructuredQuery, scopeID string) ([]MatchRecord, error)

func (fn ExecutorFunc) SearchEntries(ctx context.Context, q StructuredQuery, scopeID string) ([]MatchRecord, error) {
	return fn(ctx, q, scopeID)
}
