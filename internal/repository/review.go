package repository

import (
	"context"

	"reviewapi/internal/model"
)

// ReviewQuery filters a review page. Search matches title, description or product name;
// Sentiment must equal one of the review's sentiments; ProductName is a substring match.
type ReviewQuery struct {
	PageQuery
	Search      string
	Sentiment   string
	ProductName string
}

// ReviewRepository persists reviews and their like sets.
type ReviewRepository interface {
	Create(ctx context.Context, r *model.Review) (*model.Review, error)
	FindByID(ctx context.Context, id string) (*model.Review, error)
	FindByAuthor(ctx context.Context, authorID string) ([]model.Review, error)
	List(ctx context.Context, q ReviewQuery) (*PageResult[model.Review], error)
	Update(ctx context.Context, id string, u model.ReviewUpdate) (*model.Review, error)
	UpdateImage(ctx context.Context, id, path string) (*model.Review, error)
	// Delete returns sql.ErrNoRows when the review does not exist.
	Delete(ctx context.Context, id string) error

	Like(ctx context.Context, id, userID string) (r *model.Review, changed bool, err error)
	Unlike(ctx context.Context, id, userID string) (r *model.Review, changed bool, err error)
	IsLikedBy(ctx context.Context, id, userID string) (bool, error)
}
