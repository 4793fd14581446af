package entry

import "time"

// Entry is a single journal entry. Content carries rich-text markup as
// produced by the editor; Tags preserve the order the user assigned them.
type Entry struct {
	ID         string    `json:"id"`
	ScopeID    string    `json:"scope_id,omitempty"`
	Title      string    `json:"title,omitempty"`
	Content    string    `json:"content"`
	Tags       []string  `json:"tags,omitempty"`
	Mood       *int      `json:"mood,omitempty"`
	IsFavorite bool      `json:"is_favorite"`
	IsArchived bool      `json:"is_archived"`
	CreatedAt  time.Time `json:"created_at"`
	ModifiedAt time.Time `json:"modified_at"`
}

// HasTags reports whether every tag in want is present on the entry.
func (e Entry) HasTags(want []string) bool {
	for _, w := range want {
		found := false
		for _, t := range e.Tags {
			if t == w {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
