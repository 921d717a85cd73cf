package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

type MockRetailerRepository struct {
	mock.Mock
}

func (m *MockRetailerRepository) Create(ctx context.Context, r *model.Retailer) (*model.Retailer, error) {
	args := m.Called(ctx, r)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerRepository) FindAll(ctx context.Context) ([]model.Retailer, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Retailer), args.Error(1)
}

func (m *MockRetailerRepository) List(ctx context.Context, q repository.RetailerQuery) (*repository.PageResult[model.Retailer], error) {
	args := m.Called(ctx, q)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*repository.PageResult[model.Retailer]), args.Error(1)
}

func (m *MockRetailerRepository) FindByID(ctx context.Context, id string) (*model.Retailer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerRepository) FindByAuthID(ctx context.Context, authID string) (*model.Retailer, error) {
	args := m.Called(ctx, authID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerRepository) FindByUsername(ctx context.Context, username string) (*model.Retailer, error) {
	args := m.Called(ctx, username)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerRepository) Update(ctx context.Context, id string, u model.RetailerUpdate) (*model.Retailer, error) {
	args := m.Called(ctx, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}

func (m *MockRetailerRepository) UpdateProfilePicture(ctx context.Context, authID, path string) (*model.Retailer, error) {
	args := m.Called(ctx, authID, path)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Retailer), args.Error(1)
}
