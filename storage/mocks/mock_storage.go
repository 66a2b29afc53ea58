package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"minibitly/types"
)

// MockStorage is a mock Storage interface
type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) CreateShortLink(ctx context.Context, link types.ShortLink) (types.ShortLink, error) {
	args := m.Called(ctx, link)
	return args.Get(0).(types.ShortLink), args.Error(1)
}

func (m *MockStorage) GetByShortCode(ctx context.Context, shortCode string) (types.ShortLink, error) {
	args := m.Called(ctx, shortCode)
	return args.Get(0).(types.ShortLink), args.Error(1)
}

func (m *MockStorage) GetByOriginalURL(ctx context.Context, originalURL string) (types.ShortLink, error) {
	args := m.Called(ctx, originalURL)
	return args.Get(0).(types.ShortLink), args.Error(1)
}

func (m *MockStorage) CreateVisit(ctx context.Context, visit types.VisitRecord) error {
	args := m.Called(ctx, visit)
	return args.Error(0)
}

func (m *MockStorage) CountVisits(ctx context.Context, shortCode string) (int64, error) {
	args := m.Called(ctx, shortCode)
	return args.Get(0).(int64), args.Error(1)
}
