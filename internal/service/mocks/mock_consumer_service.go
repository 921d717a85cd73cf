package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

var _ service.ConsumerService = (*MockConsumerService)(nil)

type MockConsumerService struct {
	mock.Mock
}

func (m *MockConsumerService) Create(ctx context.Context, actor *model.Principal, in service.CreateConsumerInput) (*model.Consumer, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerService) FindAll(ctx context.Context) ([]model.Consumer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Consumer), args.Error(1)
}

func (m *MockConsumerService) List(ctx context.Context, page int, size int, search string) (*service.Page[model.Consumer], error) {
	args := m.Called(ctx, page, size, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Consumer]), args.Error(1)
}

func (m *MockConsumerService) GetByID(ctx context.Context, id string) (*model.Consumer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerService) GetByAuthID(ctx context.Context, authID string) (*model.Consumer, error) {
	args := m.Called(ctx, authID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerService) GetByUsername(ctx context.Context, username string) (*model.Consumer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerService) Update(ctx context.Context, actor *model.Principal, id string, u model.ConsumerUpdate) (*model.Consumer, error) {
	args := m.Called(ctx, actor, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerService) UpdateProfilePicture(ctx context.Context, actor *model.Principal, authID string, up service.Upload) (*model.Consumer, error) {
	args := m.Called(ctx, actor, authID, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Consumer), args.Error(1)
}

func (m *MockConsumerService) Delete(ctx context.Context, actor *model.Principal, authID string) error {
	args := m.Called(ctx, actor, authID)
	return args.Error(0)
}
