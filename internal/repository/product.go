package repository

import (
	"context"

	"reviewapi/internal/model"
)

// ProductQuery filters a product page. Empty fields are ignored.
type ProductQuery struct {
	PageQuery
	Search         string
	RetailerAuthID string
}

// ProductRepository persists products and their like sets.
type ProductRepository interface {
	Create(ctx context.Context, p *model.Product) (*model.Product, error)
	FindByID(ctx context.Context, id string) (*model.Product, error)
	List(ctx context.Context, q ProductQuery) (*PageResult[model.Product], error)
	Update(ctx context.Context, id string, u model.ProductUpdate) (*model.Product, error)
	UpdateImage(ctx context.Context, id, path string) (*model.Product, error)
	// Delete returns sql.ErrNoRows when the product does not exist.
	Delete(ctx context.Context, id string) error

	// Like adds userID to the like set in a single statement. changed is false when
	// the user had already liked the product.
	Like(ctx context.Context, id, userID string) (p *model.Product, changed bool, err error)
	// Unlike removes userID from the like set; changed is false when it was absent.
	Unlike(ctx context.Context, id, userID string) (p *model.Product, changed bool, err error)
	IsLikedBy(ctx context.Context, id, userID string) (bool, error)
}
