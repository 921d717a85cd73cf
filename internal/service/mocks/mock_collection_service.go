package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

var _ service.CollectionService = (*MockCollectionService)(nil)

type MockCollectionService struct {
	mock.Mock
}

func (m *MockCollectionService) SaveReview(ctx context.Context, actor *model.Principal, consumerAuthID string, reviewID string) (*model.Collection, error) {
	args := m.Called(ctx, actor, consumerAuthID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Collection), args.Error(1)
}

func (m *MockCollectionService) UnsaveReview(ctx context.Context, actor *model.Principal, consumerAuthID string, reviewID string) (*model.Collection, error) {
	args := m.Called(ctx, actor, consumerAuthID, reviewID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Collection), args.Error(1)
}

func (m *MockCollectionService) SaveProduct(ctx context.Context, actor *model.Principal, consumerAuthID string, productID string) (*model.Collection, error) {
	args := m.Called(ctx, actor, consumerAuthID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Collection), args.Error(1)
}

func (m *MockCollectionService) UnsaveProduct(ctx context.Context, actor *model.Principal, consumerAuthID string, productID string) (*model.Collection, error) {
	args := m.Called(ctx, actor, consumerAuthID, productID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Collection), args.Error(1)
}

func (m *MockCollectionService) SavedReviews(ctx context.Context, actor *model.Principal, consumerAuthID string, page int, size int) (*service.Page[model.Review], error) {
	args := m.Called(ctx, actor, consumerAuthID, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Review]), args.Error(1)
}

func (m *MockCollectionService) SavedProducts(ctx context.Context, actor *model.Principal, consumerAuthID string, page int, size int) (*service.Page[model.Product], error) {
	args := m.Called(ctx, actor, consumerAuthID, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Product]), args.Error(1)
}
