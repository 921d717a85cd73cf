package repository

import (
	"context"

	"reviewapi/internal/model"
)

// UserRepository persists credential records.
type UserRepository interface {
	// Create inserts a user; a taken email yields ErrDuplicate.
	Create(ctx context.Context, u *model.User) (*model.User, error)
	FindByID(ctx context.Context, id string) (*model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	// Delete removes the user and, through foreign keys, its profile, products, reviews and collection.
	// It returns sql.ErrNoRows when nothing was deleted.
	Delete(ctx context.Context, id string) error
}
