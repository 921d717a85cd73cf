package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
	repoMocks "reviewapi/internal/repository/mocks"
)

type collectionFixture struct {
	svc         CollectionService
	collections *repoMocks.MockCollectionRepository
	users       *repoMocks.MockUserRepository
	reviews     *repoMocks.MockReviewRepository
	products    *repoMocks.MockProductRepository
}

func newCollectionFixture() *collectionFixture {
	f := &collectionFixture{
		collections: new(repoMocks.MockCollectionRepository),
		users:       new(repoMocks.MockUserRepository),
		reviews:     new(repoMocks.MockReviewRepository),
		products:    new(repoMocks.MockProductRepository),
	}
	f.svc = NewCollectionService(f.collections, f.users, f.reviews, f.products)
	return f
}

func TestCollectionService_Save(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actor      *model.Principal
		consumer   string
		setupMocks func(f *collectionFixture)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:  "caller saves into own collection",
			actor: consumerActor,
			setupMocks: func(f *collectionFixture) {
				f.reviews.On("FindByID", ctx, "r-1").Return(&model.Review{ID: "r-1"}, nil)
				f.collections.On("AddReview", ctx, "con-1", "r-1").
					Return(&model.Collection{ConsumerAuthID: "con-1", SavedReviews: []string{"r-1"}}, nil)
			},
		},
		{
			name:     "admin saves for a consumer",
			actor:    adminActor,
			consumer: "con-7",
			setupMocks: func(f *collectionFixture) {
				f.users.On("FindByID", ctx, "con-7").Return(&model.User{ID: "con-7", Role: model.RoleConsumer}, nil)
				f.reviews.On("FindByID", ctx, "r-1").Return(&model.Review{ID: "r-1"}, nil)
				f.collections.On("AddReview", ctx, "con-7", "r-1").Return(&model.Collection{ConsumerAuthID: "con-7"}, nil)
			},
		},
		{
			name:     "admin targets a retailer",
			actor:    adminActor,
			consumer: "ret-1",
			setupMocks: func(f *collectionFixture) {
				f.users.On("FindByID", ctx, "ret-1").Return(&model.User{ID: "ret-1", Role: model.RoleRetailer}, nil)
			},
			wantErr:    ErrValidation,
			wantErrMsg: "user is not a consumer",
		},
		{
			name:  "admin without a target saves into no collection of its own",
			actor: adminActor,
			setupMocks: func(f *collectionFixture) {
				f.users.On("FindByID", ctx, "admin-1").Return(&model.User{ID: "admin-1", Role: model.RoleAdmin}, nil)
			},
			wantErr: ErrValidation,
		},
		{
			name:     "admin targets an unknown user",
			actor:    adminActor,
			consumer: "con-gone",
			setupMocks: func(f *collectionFixture) {
				f.users.On("FindByID", ctx, "con-gone").Return(nil, sql.ErrNoRows)
			},
			wantErr:    ErrNotFound,
			wantErrMsg: "consumer not found",
		},
		{
			name:  "consumer row deleted between lookup and insert",
			actor: consumerActor,
			setupMocks: func(f *collectionFixture) {
				f.reviews.On("FindByID", ctx, "r-1").Return(&model.Review{ID: "r-1"}, nil)
				f.collections.On("AddReview", ctx, "con-1", "r-1").
					Return(nil, fmt.Errorf("%w: collections_consumer_auth_id_fkey", repository.ErrReferenced))
			},
			wantErr:    ErrNotFound,
			wantErrMsg: "consumer not found",
		},
		{
			name:     "another consumer's collection",
			actor:    consumerActor,
			consumer: "con-2",
			wantErr:  ErrForbidden,
		},
		{
			name:  "missing review",
			actor: consumerActor,
			setupMocks: func(f *collectionFixture) {
				f.reviews.On("FindByID", ctx, "r-1").Return(nil, sql.ErrNoRows)
			},
			wantErr:    ErrNotFound,
			wantErrMsg: "review not found",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCollectionFixture()
			if tt.setupMocks != nil {
				tt.setupMocks(f)
			}
			c, err := f.svc.SaveReview(ctx, tt.actor, tt.consumer, "r-1")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErrMsg != "" {
					assert.EqualError(t, err, tt.wantErrMsg)
				}
				assert.Nil(t, c)
			} else {
				require.NoError(t, err)
			}
			f.collections.AssertExpectations(t)
			f.users.AssertExpectations(t)
			f.reviews.AssertExpectations(t)
		})
	}
}

func TestCollectionService_SaveUnsaveProduct(t *testing.T) {
	ctx := context.Background()
	f := newCollectionFixture()

	f.products.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1"}, nil)
	f.collections.On("AddProduct", ctx, "con-1", "p-1").Return(&model.Collection{SavedProducts: []string{"p-1"}}, nil)
	f.collections.On("RemoveProduct", ctx, "con-1", "p-1").Return(&model.Collection{SavedProducts: []string{}}, nil)
	f.collections.On("RemoveReview", ctx, "con-1", "r-1").Return(nil, sql.ErrNoRows)

	c, err := f.svc.SaveProduct(ctx, consumerActor, "", "p-1")
	require.NoError(t, err)
	assert.Equal(t, []string{"p-1"}, c.SavedProducts)

	c, err = f.svc.UnsaveProduct(ctx, consumerActor, "con-1", "p-1")
	require.NoError(t, err)
	assert.Empty(t, c.SavedProducts)

	_, err = f.svc.UnsaveReview(ctx, consumerActor, "", "r-1")
	assert.ErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "collection not found")
}

func TestCollectionService_SavedReviews(t *testing.T) {
	ctx := context.Background()
	f := newCollectionFixture()

	f.collections.On("FindByConsumer", ctx, "con-1").Return(&model.Collection{
		ConsumerAuthID: "con-1",
		SavedReviews:   []string{"r-1", "r-2", "r-3", "r-4"},
	}, nil)
	f.reviews.On("FindByID", mock.Anything, "r-1").Return(&model.Review{ID: "r-1"}, nil)
	f.reviews.On("FindByID", mock.Anything, "r-2").Return(nil, sql.ErrNoRows)
	f.reviews.On("FindByID", mock.Anything, "r-3").Return(&model.Review{ID: "r-3"}, nil)
	f.reviews.On("FindByID", mock.Anything, "r-4").Return(&model.Review{ID: "r-4"}, nil)

	page, err := f.svc.SavedReviews(ctx, consumerActor, "", 1, 3)
	require.NoError(t, err)

	want := &Page[model.Review]{
		Items:      []model.Review{{ID: "r-1"}, {ID: "r-3"}},
		Pagination: Pagination{Page: 1, Size: 3, TotalItems: 4, TotalPages: 2},
	}
	if diff := cmp.Diff(want, page); diff != "" {
		t.Errorf("SavedReviews mismatch (-want +got):\n%s", diff)
	}

	page, err = f.svc.SavedReviews(ctx, consumerActor, "", 2, 3)
	require.NoError(t, err)
	assert.Equal(t, []model.Review{{ID: "r-4"}}, page.Items)

	page, err = f.svc.SavedReviews(ctx, consumerActor, "", 9, 3)
	require.NoError(t, err)
	assert.Empty(t, page.Items)
}

func TestCollectionService_SavedProducts(t *testing.T) {
	ctx := context.Background()

	t.Run("no collection yet", func(t *testing.T) {
		f := newCollectionFixture()
		f.collections.On("FindByConsumer", ctx, "con-1").Return(nil, sql.ErrNoRows)

		page, err := f.svc.SavedProducts(ctx, consumerActor, "con-1", 1, 10)
		require.NoError(t, err)
		assert.Empty(t, page.Items)
		assert.Equal(t, Pagination{Page: 1, Size: 10, TotalItems: 0, TotalPages: 1}, page.Pagination)
	})

	t.Run("lookup failure aborts the page", func(t *testing.T) {
		f := newCollectionFixture()
		f.collections.On("FindByConsumer", ctx, "con-1").Return(&model.Collection{SavedProducts: []string{"p-1", "p-2"}}, nil)
		f.products.On("FindByID", mock.Anything, "p-1").Return(&model.Product{ID: "p-1"}, nil).Maybe()
		f.products.On("FindByID", mock.Anything, "p-2").Return(nil, errors.New("db down"))

		_, err := f.svc.SavedProducts(ctx, consumerActor, "con-1", 1, 10)
		assert.EqualError(t, err, "db down")
	})

	t.Run("forbidden", func(t *testing.T) {
		f := newCollectionFixture()
		_, err := f.svc.SavedProducts(ctx, retailerActor, "con-1", 1, 10)
		assert.ErrorIs(t, err, ErrForbidden)
	})
}
