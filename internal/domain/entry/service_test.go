package entry_test

import (
	"context"
	"testing"

	"github.com/jotkit/jot/internal/domain/entry"
	"github.com/jotkit/jot/internal/repository/mocks"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestEntryService_Create(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EntryRepository{}

	var created *entry.Entry
	repo.On("Create", ctx, mock.Anything).Run(func(args mock.Arguments) {
		created = args.Get(1).(*entry.Entry)
	}).Return(nil)

	svc := entry.NewService(repo, nil)
	mood := 4
	e, err := svc.Create(ctx, entry.CreateRequest{
		ScopeID: "journal-1",
		Title:   "Morning",
		Content: "<p>Slept well.</p>",
		Tags:    []string{" sleep ", "health", "sleep"},
		Mood:    &mood,
	})
	require.NoError(t, err)
	require.NotEmpty(t, e.ID)
	require.Equal(t, "journal-1", e.ScopeID)
	require.Equal(t, []string{"sleep", "health"}, e.Tags)
	require.Equal(t, 4, *e.Mood)
	require.False(t, e.CreatedAt.IsZero())
	require.Equal(t, e.CreatedAt, e.ModifiedAt)
	require.Same(t, e, created)
}

func TestEntryService_Create_EmptyContent(t *testing.T) {
	svc := entry.NewService(&mocks.EntryRepository{}, nil)
	_, err := svc.Create(context.Background(), entry.CreateRequest{Content: "   "})
	require.ErrorIs(t, err, entry.ErrInvalidInput)
}

func TestEntryService_Create_MoodOutOfRange(t *testing.T) {
	svc := entry.NewService(&mocks.EntryRepository{}, nil)
	for _, mood := range []int{0, 6, -1} {
		m := mood
		_, err := svc.Create(context.Background(), entry.CreateRequest{Content: "hi", Mood: &m})
		require.ErrorIs(t, err, entry.ErrInvalidInput, "mood %d", mood)
	}
}

func TestEntryService_Update_Partial(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EntryRepository{}

	existing := &entry.Entry{
		ID:      "e1",
		Title:   "Old title",
		Content: "old content",
		Tags:    []string{"keep"},
	}
	repo.On("Get", ctx, "e1").Return(existing, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := entry.NewService(repo, nil)
	newTitle := "New title"
	updated, err := svc.Update(ctx, entry.UpdateRequest{ID: "e1", Title: &newTitle})
	require.NoError(t, err)
	require.Equal(t, "New title", updated.Title)
	require.Equal(t, "old content", updated.Content)
	require.Equal(t, []string{"keep"}, updated.Tags)
	require.False(t, updated.ModifiedAt.IsZero())
}

func TestEntryService_Update_NotFound(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EntryRepository{}
	repo.On("Get", ctx, "missing").Return(nil, entry.ErrEntryNotFound)

	svc := entry.NewService(repo, nil)
	_, err := svc.Update(ctx, entry.UpdateRequest{ID: "missing"})
	require.ErrorIs(t, err, entry.ErrEntryNotFound)
}

func TestEntryService_SetFavorite(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EntryRepository{}
	existing := &entry.Entry{ID: "e1", Content: "hi"}
	repo.On("Get", ctx, "e1").Return(existing, nil)
	repo.On("Update", ctx, mock.Anything).Return(nil)

	svc := entry.NewService(repo, nil)
	e, err := svc.SetFavorite(ctx, "e1", true)
	require.NoError(t, err)
	require.True(t, e.IsFavorite)

	// Setting the same value again skips the write.
	e, err = svc.SetFavorite(ctx, "e1", true)
	require.NoError(t, err)
	require.True(t, e.IsFavorite)
	repo.AssertNumberOfCalls(t, "Update", 1)
}

func TestEntryService_Delete(t *testing.T) {
	ctx := context.Background()
	repo := &mocks.EntryRepository{}
	repo.On("Delete", ctx, "e1").Return(nil)

	svc := entry.NewService(repo, nil)
	require.NoError(t, svc.Delete(ctx, "e1"))
	repo.AssertExpectations(t)
}

func TestEntry_HasTags(t *testing.T) {
	e := entry.Entry{Tags: []string{"work", "urgent"}}
	require.True(t, e.HasTags(nil))
	require.True(t, e.HasTags([]string{"work"}))
	require.True(t, e.HasTags([]string{"urgent", "work"}))
	require.False(t, e.HasTags([]string{"work", "personal"}))
}
