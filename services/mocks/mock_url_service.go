package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"minibitly/types"
)

// MockURLService is a mock URLService interface
type MockURLService struct {
	mock.Mock
}

func (m *MockURLService) CreateShortURL(ctx context.Context, originalURL string) (types.ShortLink, error) {
	args := m.Called(ctx, originalURL)
	return args.Get(0).(types.ShortLink), args.Error(1)
}

func (m *MockURLService) ResolveURL(ctx context.Context, shortCode string) (string, error) {
	args := m.Called(ctx, shortCode)
	return args.String(0), args.Error(1)
}

func (m *MockURLService) RecordVisit(ctx context.Context, shortCode, visitorAddr string) error {
	args := m.Called(ctx, shortCode, visitorAddr)
	return args.Error(0)
}

func (m *MockURLService) GetStats(ctx context.Context, shortCode string) (types.URLStats, error) {
	args := m.Called(ctx, shortCode)
	return args.Get(0).(types.URLStats), args.Error(1)
}
