package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

var _ service.ProductService = (*MockProductService)(nil)

type MockProductService struct {
	mock.Mock
}

func (m *MockProductService) Create(ctx context.Context, actor *model.Principal, in service.CreateProductInput) (*model.Product, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) List(ctx context.Context, page int, size int, search string) (*service.Page[model.Product], error) {
	args := m.Called(ctx, page, size, search)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Product]), args.Error(1)
}

func (m *MockProductService) ListByRetailer(ctx context.Context, retailerAuthID string, page int, size int) (*service.Page[model.Product], error) {
	args := m.Called(ctx, retailerAuthID, page, size)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Product]), args.Error(1)
}

func (m *MockProductService) Get(ctx context.Context, id string) (*model.Product, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Update(ctx context.Context, actor *model.Principal, id string, u model.ProductUpdate) (*model.Product, error) {
	args := m.Called(ctx, actor, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Delete(ctx context.Context, actor *model.Principal, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockProductService) UploadImage(ctx context.Context, actor *model.Principal, id string, up service.Upload) (*model.Product, error) {
	args := m.Called(ctx, actor, id, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Product), args.Error(1)
}

func (m *MockProductService) Like(ctx context.Context, actor *model.Principal, productID string, userID string) (*service.ProductLike, error) {
	args := m.Called(ctx, actor, productID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductLike), args.Error(1)
}

func (m *MockProductService) Unlike(ctx context.Context, actor *model.Principal, productID string, userID string) (*service.ProductLike, error) {
	args := m.Called(ctx, actor, productID, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.ProductLike), args.Error(1)
}

func (m *MockProductService) IsLiked(ctx context.Context, productID string, userID string) (bool, error) {
	args := m.Called(ctx, productID, userID)
	return args.Bool(0), args.Error(1)
}
