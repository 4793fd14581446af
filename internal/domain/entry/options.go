package entry

// ListOptions provides filtering options for listing entries. Results are
// always newest-first by creation time.
type ListOptions struct {
	ScopeID         string
	IncludeArchived bool
	Limit           int
	Offset          int
}
