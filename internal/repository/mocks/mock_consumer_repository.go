package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

type MockConsumerRepository struct {
	mock.Mock
}

func (m *MockConsumerRepository) Create(ctx context.Context, c *model.Consumer) (*model.Consumer, error) {
	args := m.Called(ctx, c)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerRepository) FindAll(ctx context.Context) ([]model.Consumer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Consumer), args.Error(1)
}

func (m *MockConsumerRepository) List(ctx context.Context, q repository.ConsumerQuery) (*repository.PageResult[model.Consumer], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Consumer]), args.Error(1)
}

func (m *MockConsumerRepository) FindByID(ctx context.Context, id string) (*model.Consumer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerRepository) FindByAuthID(ctx context.Context, authID string) (*model.Consumer, error) {
	args := m.Called(ctx, authID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerRepository) FindByUsername(ctx context.Context, username string) (*model.Consumer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerRepository) Update(ctx context.Context, id string, u model.ConsumerUpdate) (*model.Consumer, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerRepository) UpdateProfilePicture(ctx context.Context, authID, path string) (*model.Consumer, error) {
	args := m.Called(ctx, authID, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}
