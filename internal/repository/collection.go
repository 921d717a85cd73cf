package repository

import (
	"context"

	"reviewapi/internal/model"
)

// CollectionRepository persists the saved-item lists of consumers.
// Add operations create the collection row on first use and never duplicate ids.
type CollectionRepository interface {
	FindByConsumer(ctx context.Context, consumerAuthID string) (*model.Collection, error)
	AddReview(ctx context.Context, consumerAuthID, reviewID string) (*model.Collection, error)
	RemoveReview(ctx context.Context, consumerAuthID, reviewID string) (*model.Collection, error)
	AddProduct(ctx context.Context, consumerAuthID, productID string) (*model.Collection, error)
	RemoveProduct(ctx context.Context, consumerAuthID, productID string) (*model.Collection, error)
}
