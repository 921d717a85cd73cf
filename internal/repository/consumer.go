package repository

import (
	"context"

	"reviewapi/internal/model"
)

// ConsumerQuery filters a consumer page. Search matches username or full name, case-insensitively.
type ConsumerQuery struct {
	PageQuery
	Search string
}

// ConsumerRepository persists consumer profiles.
type ConsumerRepository interface {
	Create(ctx context.Context, c *model.Consumer) (*model.Consumer, error)
	FindAll(ctx context.Context) ([]model.Consumer, error)
	List(ctx context.Context, q ConsumerQuery) (*PageResult[model.Consumer], error)
	FindByID(ctx context.Context, id string) (*model.Consumer, error)
	FindByAuthID(ctx context.Context, authID string) (*model.Consumer, error)
	FindByUsername(ctx context.Context, username string) (*model.Consumer, error)
	Update(ctx context.Context, id string, u model.ConsumerUpdate) (*model.Consumer, error)
	UpdateProfilePicture(ctx context.Context, authID, path string) (*model.Consumer, error)
}
