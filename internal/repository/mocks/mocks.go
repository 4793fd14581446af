package mocks

import (
	"context"

	"github.com/jotkit/jot/internal/domain/entry"
	"github.com/stretchr/testify/mock"
)

// EntryRepository is a mock for entry.EntryRepository.
type EntryRepository struct {
	mock.Mock
}

func (m *EntryRepository) Create(ctx context.Context, e *entry.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EntryRepository) Get(ctx context.Context, id string) (*entry.Entry, error) {
	args := m.Called(ctx, id)
	if e, ok := args.Get(0).(*entry.Entry); ok {
		return e, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *EntryRepository) Update(ctx context.Context, e *entry.Entry) error {
	args := m.Called(ctx, e)
	return args.Error(0)
}

func (m *EntryRepository) Delete(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

func (m *EntryRepository) List(ctx context.Context, opts entry.ListOptions) ([]entry.Entry, error) {
	args := m.Called(ctx, opts)
	if list, ok := args.Get(0).([]entry.Entry); ok {
		return list, args.Error(1)
	}
	return nil, args.Error(1)
}
