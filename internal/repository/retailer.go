package repository

import (
	"context"

	"reviewapi/internal/model"
)

// RetailerQuery filters a retailer page. Search matches username or organization name.
type RetailerQuery struct {
	PageQuery
	Search string
}

// RetailerRepository persists retailer profiles.
type RetailerRepository interface {
	Create(ctx context.Context, r *model.Retailer) (*model.Retailer, error)
	FindAll(ctx context.Context) ([]model.Retailer, error)
	List(ctx context.Context, q RetailerQuery) (*PageResult[model.Retailer], error)
	FindByID(ctx context.Context, id string) (*model.Retailer, error)
	FindByAuthID(ctx context.Context, authID string) (*model.Retailer, error)
	FindByUsername(ctx context.Context, username string) (*model.Retailer, error)
	Update(ctx context.Context, id string, u model.RetailerUpdate) (*model.Retailer, error)
	UpdateProfilePicture(ctx context.Context, authID, path string) (*model.Retailer, error)
}
