package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
	repoMocks "reviewapi/internal/repository/mocks"
	storeMocks "reviewapi/internal/storage/mocks"
)

var (
	adminActor    = &model.Principal{ID: "admin-1", Role: model.RoleAdmin}
	retailerActor = &model.Principal{ID: "ret-1", Role: model.RoleRetailer}
	consumerActor = &model.Principal{ID: "con-1", Role: model.RoleConsumer}
)

func newProductFixture() (ProductService, *repoMocks.MockProductRepository, *repoMocks.MockRetailerRepository, *storeMocks.MockStorage) {
	products := new(repoMocks.MockProductRepository)
	retailers := new(repoMocks.MockRetailerRepository)
	store := new(storeMocks.MockStorage)
	return NewProductService(products, retailers, store, 0), products, retailers, store
}

func TestProductService_Create(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		actor      *model.Principal
		in         CreateProductInput
		setupMocks func(p *repoMocks.MockProductRepository, r *repoMocks.MockRetailerRepository)
		wantErr    error
		wantErrMsg string
	}{
		{
			name:  "retailer creates under own id with profile defaults",
			actor: retailerActor,
			in:    CreateProductInput{Title: " Phone ", RetailerAuthID: "someone-else", TargetSentiment: []string{" happy ", ""}},
			setupMocks: func(p *repoMocks.MockProductRepository, r *repoMocks.MockRetailerRepository) {
				r.On("FindByAuthID", ctx, "ret-1").Return(&model.Retailer{OrganizationName: "Acme", ProfilePicture: "/uploads/profile-pictures/ret-1.png"}, nil)
				p.On("Create", ctx, mock.MatchedBy(func(pr *model.Product) bool {
					return pr.Title == "Phone" && pr.RetailerAuthID == "ret-1" && pr.RetailerName == "Acme" &&
						pr.RetailerIcon == "/uploads/profile-pictures/ret-1.png" &&
						len(pr.TargetSentiment) == 1 && pr.TargetSentiment[0] == "happy" &&
						freshRecord(pr.ID, pr.CreatedAt, pr.UpdatedAt)
				})).Return(&model.Product{ID: "p-1"}, nil)
			},
		},
		{
			name:  "admin may create for a retailer",
			actor: adminActor,
			in:    CreateProductInput{Title: "Phone", RetailerAuthID: "ret-2", RetailerName: "Shop", RetailerIcon: "icon"},
			setupMocks: func(p *repoMocks.MockProductRepository, r *repoMocks.MockRetailerRepository) {
				p.On("Create", ctx, mock.MatchedBy(func(pr *model.Product) bool {
					return pr.RetailerAuthID == "ret-2" && freshRecord(pr.ID, pr.CreatedAt, pr.UpdatedAt)
				})).Return(&model.Product{ID: "p-2"}, nil)
			},
		},
		{
			name:  "admin names an unknown retailer",
			actor: adminActor,
			in:    CreateProductInput{Title: "Phone", RetailerAuthID: "ret-gone", RetailerName: "Shop", RetailerIcon: "icon"},
			setupMocks: func(p *repoMocks.MockProductRepository, r *repoMocks.MockRetailerRepository) {
				p.On("Create", ctx, mock.Anything).
					Return(nil, fmt.Errorf("%w: products_retailer_auth_id_fkey", repository.ErrReferenced))
			},
			wantErr:    ErrNotFound,
			wantErrMsg: "retailer not found",
		},
		{
			name:  "retailer without profile",
			actor: retailerActor,
			in:    CreateProductInput{Title: "Phone"},
			setupMocks: func(p *repoMocks.MockProductRepository, r *repoMocks.MockRetailerRepository) {
				r.On("FindByAuthID", ctx, "ret-1").Return(nil, sql.ErrNoRows)
				p.On("Create", ctx, mock.Anything).Return(&model.Product{ID: "p-3"}, nil)
			},
		},
		{
			name:    "missing title",
			actor:   retailerActor,
			in:      CreateProductInput{Title: "  "},
			wantErr: ErrValidation,
		},
		{
			name:    "anonymous",
			in:      CreateProductInput{Title: "Phone"},
			wantErr: ErrUnauthorized,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, products, retailers, _ := newProductFixture()
			if tt.setupMocks != nil {
				tt.setupMocks(products, retailers)
			}

			p, err := svc.Create(ctx, tt.actor, tt.in)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				if tt.wantErrMsg != "" {
					assert.EqualError(t, err, tt.wantErrMsg)
				}
				assert.Nil(t, p)
			} else {
				require.NoError(t, err)
				assert.NotNil(t, p)
			}
			products.AssertExpectations(t)
			retailers.AssertExpectations(t)
		})
	}
}

func TestProductService_List(t *testing.T) {
	ctx := context.Background()
	svc, products, _, _ := newProductFixture()

	products.On("List", ctx, repository.ProductQuery{
		PageQuery: repository.PageQuery{Limit: 10, Offset: 10},
		Search:    "phone",
	}).Return(&repository.PageResult[model.Product]{Items: []model.Product{{ID: "p-1"}}, Total: 11}, nil)
	products.On("List", ctx, repository.ProductQuery{
		PageQuery:      repository.PageQuery{Limit: 100, Offset: 0},
		RetailerAuthID: "ret-1",
	}).Return(&repository.PageResult[model.Product]{}, nil)

	page, err := svc.List(ctx, 2, 0, " phone ")
	require.NoError(t, err)
	assert.Len(t, page.Items, 1)
	assert.Equal(t, Pagination{Page: 2, Size: 10, TotalItems: 11, TotalPages: 2}, page.Pagination)

	page, err = svc.ListByRetailer(ctx, "ret-1", 0, 1000)
	require.NoError(t, err)
	assert.NotNil(t, page.Items)
	assert.Empty(t, page.Items)
}

func TestProductService_UpdateDelete(t *testing.T) {
	ctx := context.Background()
	title := "New"

	t.Run("owner updates", func(t *testing.T) {
		svc, products, _, _ := newProductFixture()
		products.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", RetailerAuthID: "ret-1"}, nil)
		products.On("Update", ctx, "p-1", model.ProductUpdate{Title: &title}).Return(&model.Product{ID: "p-1", Title: title}, nil)

		p, err := svc.Update(ctx, retailerActor, "p-1", model.ProductUpdate{Title: &title})
		require.NoError(t, err)
		assert.Equal(t, title, p.Title)
	})

	t.Run("other retailer is forbidden", func(t *testing.T) {
		svc, products, _, _ := newProductFixture()
		products.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", RetailerAuthID: "ret-9"}, nil)

		_, err := svc.Update(ctx, retailerActor, "p-1", model.ProductUpdate{Title: &title})
		assert.ErrorIs(t, err, ErrForbidden)
		products.AssertNotCalled(t, "Update", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("missing product", func(t *testing.T) {
		svc, products, _, _ := newProductFixture()
		products.On("FindByID", ctx, "nope").Return(nil, sql.ErrNoRows)

		err := svc.Delete(ctx, adminActor, "nope")
		assert.ErrorIs(t, err, ErrNotFound)
		assert.EqualError(t, err, "product not found")
	})

	t.Run("delete removes image first", func(t *testing.T) {
		svc, products, _, store := newProductFixture()
		products.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", RetailerAuthID: "ret-1", Image: "/uploads/products/p-1.png"}, nil)
		store.On("Delete", ctx, "products/p-1.png").Return(nil)
		products.On("Delete", ctx, "p-1").Return(nil)

		require.NoError(t, svc.Delete(ctx, adminActor, "p-1"))
		store.AssertExpectations(t)
		products.AssertExpectations(t)
	})

	t.Run("storage failure keeps the row", func(t *testing.T) {
		svc, products, _, store := newProductFixture()
		products.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", RetailerAuthID: "ret-1", Image: "/uploads/products/p-1.png"}, nil)
		store.On("Delete", ctx, "products/p-1.png").Return(errors.New("boom"))

		err := svc.Delete(ctx, retailerActor, "p-1")
		assert.EqualError(t, err, "delete storage: boom")
		products.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})
}

func TestProductService_UploadImage(t *testing.T) {
	ctx := context.Background()
	svc, products, _, store := newProductFixture()

	products.On("FindByID", ctx, "p-1").Return(&model.Product{ID: "p-1", RetailerAuthID: "ret-1"}, nil)
	store.On("Put", ctx, "products/p-1.png", mock.Anything, mock.Anything).Return(storageInfo("products/p-1.png"), nil)
	products.On("UpdateImage", ctx, "p-1", "/uploads/products/p-1.png").Return(&model.Product{ID: "p-1", Image: "/uploads/products/p-1.png"}, nil)

	p, err := svc.UploadImage(ctx, retailerActor, "p-1", pngUpload())
	require.NoError(t, err)
	assert.Equal(t, "/uploads/products/p-1.png", p.Image)
}

func TestProductService_Like(t *testing.T) {
	ctx := context.Background()

	t.Run("defaults to caller", func(t *testing.T) {
		svc, products, _, _ := newProductFixture()
		products.On("Like", ctx, "p-1", "con-1").Return(&model.Product{ID: "p-1", NoOfLikes: 3}, true, nil)

		res, err := svc.Like(ctx, consumerActor, "p-1", "")
		require.NoError(t, err)
		assert.Equal(t, &ProductLike{ProductID: "p-1", UserID: "con-1", Liked: true, NoOfLikes: 3}, res)
	})

	t.Run("repeat like is a no-op", func(t *testing.T) {
		svc, products, _, _ := newProductFixture()
		products.On("Like", ctx, "p-1", "con-1").Return(&model.Product{ID: "p-1", NoOfLikes: 3}, false, nil)

		res, err := svc.Like(ctx, consumerActor, "p-1", "con-1")
		require.NoError(t, err)
		assert.Equal(t, 3, res.NoOfLikes)
	})

	t.Run("cannot like for someone else", func(t *testing.T) {
		svc, _, _, _ := newProductFixture()
		_, err := svc.Like(ctx, consumerActor, "p-1", "con-2")
		assert.ErrorIs(t, err, ErrForbidden)
	})

	t.Run("admin may act for a user", func(t *testing.T) {
		svc, products, _, _ := newProductFixture()
		products.On("Unlike", ctx, "p-1", "con-2").Return(&model.Product{ID: "p-1"}, true, nil)

		res, err := svc.Unlike(ctx, adminActor, "p-1", "con-2")
		require.NoError(t, err)
		assert.False(t, res.Liked)
		assert.Equal(t, "con-2", res.UserID)
	})

	t.Run("missing product", func(t *testing.T) {
		svc, products, _, _ := newProductFixture()
		products.On("Like", ctx, "nope", "con-1").Return(nil, false, sql.ErrNoRows)

		_, err := svc.Like(ctx, consumerActor, "nope", "")
		assert.ErrorIs(t, err, ErrNotFound)
	})

	t.Run("is liked", func(t *testing.T) {
		svc, products, _, _ := newProductFixture()
		products.On("IsLikedBy", ctx, "p-1", "con-1").Return(true, nil)
		products.On("IsLikedBy", ctx, "nope", "con-1").Return(false, sql.ErrNoRows)

		liked, err := svc.IsLiked(ctx, "p-1", "con-1")
		require.NoError(t, err)
		assert.True(t, liked)

		_, err = svc.IsLiked(ctx, "nope", "con-1")
		assert.ErrorIs(t, err, ErrNotFound)

		_, err = svc.IsLiked(ctx, "p-1", "")
		assert.ErrorIs(t, err, ErrValidation)
	})
}
