package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/model"
)

type MockCollectionRepository struct {
	mock.Mock
}

func (m *MockCollectionRepository) collection(args mock.Arguments) (*model.Collection, error) {
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Collection), args.Error(1)
}

func (m *MockCollectionRepository) FindByConsumer(ctx context.Context, consumerAuthID string) (*model.Collection, error) {
	return m.collection(m.Called(ctx, consumerAuthID))
}

func (m *MockCollectionRepository) AddReview(ctx context.Context, consumerAuthID, reviewID string) (*model.Collection, error) {
	return m.collection(m.Called(ctx, consumerAuthID, reviewID))
}

func (m *MockCollectionRepository) RemoveReview(ctx context.Context, consumerAuthID, reviewID string) (*model.Collection, error) {
	return m.collection(m.Called(ctx, consumerAuthID, reviewID))
}

func (m *MockCollectionRepository) AddProduct(ctx context.Context, consumerAuthID, productID string) (*model.Collection, error) {
	return m.collection(m.Called(ctx, consumerAuthID, productID))
}

func (m *MockCollectionRepository) RemoveProduct(ctx context.Context, consumerAuthID, productID string) (*model.Collection, error) {
	return m.collection(m.Called(ctx, consumerAuthID, productID))
}
