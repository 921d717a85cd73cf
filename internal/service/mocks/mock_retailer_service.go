package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

var _ service.RetailerService = (*MockRetailerService)(nil)

type MockRetailerService struct {
	mock.Mock
}

func (m *MockRetailerService) Create(ctx context.Context, actor *model.Principal, in service.CreateRetailerInput) (*model.Retailer, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerService) FindAll(ctx context.Context) ([]model.Retailer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Retailer), args.Error(1)
}

func (m *MockRetailerService) List(ctx context.Context, page int, size int, search string) (*service.Page[model.Retailer], error) {
	args := m.Called(ctx, page, size, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Retailer]), args.Error(1)
}

func (m *MockRetailerService) GetByID(ctx context.Context, id string) (*model.Retailer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerService) GetByAuthID(ctx context.Context, authID string) (*model.Retailer, error) {
	args := m.Called(ctx, authID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerService) GetByUsername(ctx context.Context, username string) (*model.Retailer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerService) Update(ctx context.Context, actor *model.Principal, id string, u model.RetailerUpdate) (*model.Retailer, error) {
	args := m.Called(ctx, actor, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerService) UpdateProfilePicture(ctx context.Context, actor *model.Principal, authID string, up service.Upload) (*model.Retailer, error) {
	args := m.Called(ctx, actor, authID, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerService) Delete(ctx context.Context, actor *model.Principal, authID string) error {
	args := m.Called(ctx, actor, authID)
	return args.Error(0)
}
