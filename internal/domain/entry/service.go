package entry

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// Service handles entry business logic.
type Service struct {
	entries EntryRepository
	logger  *slog.Logger
}

// NewService creates a new entry service.
func NewService(entries EntryRepository, logger *slog.Logger) *Service {
	if logger == nil {
		logger = slog.Default()
	}
	return &Service{
		entries: entries,
		logger:  logger,
	}
}

// CreateRequest describes an entry creation request.
type CreateRequest struct {
	ScopeID  string
	Title    string
	Content  string
	Tags     []string
	Mood     *int
	Favorite bool
}

// UpdateRequest describes an entry update request. Nil pointer fields are
// left unchanged; a nil Tags slice leaves tags unchanged while an empty
// non-nil slice clears them.
type UpdateRequest struct {
	ID      string
	Title   *string
	Content *string
	Tags    []string
	Mood    *int
}

// Create validates and persists a new entry.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Entry, error) {
	if err := ValidateCreateInput(req); err != nil {
		return nil, err
	}

	now := time.Now().UTC()
	e := &Entry{
		ID:         uuid.NewString(),
		ScopeID:    req.ScopeID,
		Title:      req.Title,
		Content:    req.Content,
		Tags:       normalizeTags(req.Tags),
		Mood:       req.Mood,
		IsFavorite: req.Favorite,
		CreatedAt:  now,
		ModifiedAt: now,
	}

	if err := s.entries.Create(ctx, e); err != nil {
		return nil, fmt.Errorf("creating entry: %w", err)
	}

	s.logger.Info("entry created", "id", e.ID, "scope_id", e.ScopeID, "tags", len(e.Tags))
	return e, nil
}

// Get retrieves an entry by ID.
func (s *Service) Get(ctx context.Context, id string) (*Entry, error) {
	return s.entries.Get(ctx, id)
}

// Update applies a partial update to an existing entry.
func (s *Service) Update(ctx context.Context, req UpdateRequest) (*Entry, error) {
	e, err := s.entries.Get(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Title != nil {
		if len(*req.Title) > maxTitleLen {
			return nil, fmt.Errorf("%w: title exceeds %d characters", ErrInvalidInput, maxTitleLen)
		}
		e.Title = *req.Title
	}
	if req.Content != nil {
		if len(*req.Content) > maxContentLen {
			return nil, fmt.Errorf("%w: content exceeds %d bytes", ErrInvalidInput, maxContentLen)
		}
		e.Content = *req.Content
	}
	if req.Tags != nil {
		e.Tags = normalizeTags(req.Tags)
	}
	if req.Mood != nil {
		if err := validateMood(req.Mood); err != nil {
			return nil, err
		}
		e.Mood = req.Mood
	}
	e.ModifiedAt = time.Now().UTC()

	if err := s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("updating entry: %w", err)
	}

	s.logger.Info("entry updated", "id", e.ID)
	return e, nil
}

// Delete removes an entry.
func (s *Service) Delete(ctx context.Context, id string) error {
	if err := s.entries.Delete(ctx, id); err != nil {
		return err
	}
	s.logger.Info("entry deleted", "id", id)
	return nil
}

// List returns entries newest-first.
func (s *Service) List(ctx context.Context, opts ListOptions) ([]Entry, error) {
	return s.entries.List(ctx, opts)
}

// SetFavorite toggles the favorite flag.
func (s *Service) SetFavorite(ctx context.Context, id string, favorite bool) (*Entry, error) {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.IsFavorite == favorite {
		return e, nil
	}
	e.IsFavorite = favorite
	e.ModifiedAt = time.Now().UTC()
	if err := s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("updating entry: %w", err)
	}
	return e, nil
}

// SetArchived toggles the archived flag.
func (s *Service) SetArchived(ctx context.Context, id string, archived bool) (*Entry, error) {
	e, err := s.entries.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if e.IsArchived == archived {
		return e, nil
	}
	e.IsArchived = archived
	e.ModifiedAt = time.Now().UTC()
	if err := s.entries.Update(ctx, e); err != nil {
		return nil, fmt.Errorf("updating entry: %w", err)
	}
	return e, nil
}
