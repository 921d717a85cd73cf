package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"reviewapi/internal/model"
	"reviewapi/internal/service"
)

var _ service.ReviewService = (*MockReviewService)(nil)

type MockReviewService struct {
	mock.Mock
}

func (m *MockReviewService) Create(ctx context.Context, actor *model.Principal, in service.CreateReviewInput) (*model.Review, error) {
	args := m.Called(ctx, actor, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Get(ctx context.Context, id string) (*model.Review, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) ListByAuthor(ctx context.Context, authorID string) ([]model.Review, error) {
	args := m.Called(ctx, authorID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]model.Review), args.Error(1)
}

func (m *MockReviewService) List(ctx context.Context, page int, size int, f service.ReviewFilter) (*service.Page[model.Review], error) {
	args := m.Called(ctx, page, size, f)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*service.Page[model.Review]), args.Error(1)
}

func (m *MockReviewService) Update(ctx context.Context, actor *model.Principal, id string, u model.ReviewUpdate) (*model.Review, error) {
	args := m.Called(ctx, actor, id, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Delete(ctx context.Context, actor *model.Principal, id string) error {
	args := m.Called(ctx, actor, id)
	return args.Error(0)
}

func (m *MockReviewService) UploadImage(ctx context.Context, actor *model.Principal, id string, up service.Upload) (*model.Review, error) {
	args := m.Called(ctx, actor, id, up)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Like(ctx context.Context, actor *model.Principal, id string, userID string) (*model.Review, error) {
	args := m.Called(ctx, actor, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) Unlike(ctx context.Context, actor *model.Principal, id string, userID string) (*model.Review, error) {
	args := m.Called(ctx, actor, id, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*model.Review), args.Error(1)
}

func (m *MockReviewService) IsLikedBy(ctx context.Context, id string, userID string) (bool, error) {
	args := m.Called(ctx, id, userID)
	return args.Bool(0), args.Error(1)
}
