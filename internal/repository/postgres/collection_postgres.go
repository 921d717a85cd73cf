package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

const collectionColumns = `consumer_auth_id, saved_reviews, saved_products, created_at, updated_at`

const (
	savedReviewsColumn  = "saved_reviews"
	savedProductsColumn = "saved_products"
)

// CollectionPostgres is a PostgreSQL implementation of repository.CollectionRepository.
type CollectionPostgres struct {
	db *sql.DB
}

// NewCollectionPostgres creates a new CollectionPostgres repository.
func NewCollectionPostgres(db *sql.DB) *CollectionPostgres {
	return &CollectionPostgres{db: db}
}

var _ repository.CollectionRepository = (*CollectionPostgres)(nil)

func scanCollection(rs rowScanner) (*model.Collection, error) {
	var c model.Collection
	if err := rs.Scan(
		&c.ConsumerAuthID,
		textArray{&c.SavedReviews},
		textArray{&c.SavedProducts},
		&c.CreatedAt,
		&c.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &c, nil
}

// FindByConsumer fetches the collection of a consumer.
func (r *CollectionPostgres) FindByConsumer(ctx context.Context, consumerAuthID string) (*model.Collection, error) {
	const q = `SELECT ` + collectionColumns + ` FROM collections WHERE consumer_auth_id = $1`
	return scanCollection(r.db.QueryRowContext(ctx, q, consumerAuthID))
}

func (r *CollectionPostgres) AddReview(ctx context.Context, consumerAuthID, reviewID string) (*model.Collection, error) {
	return r.add(ctx, savedReviewsColumn, consumerAuthID, reviewID)
}

func (r *CollectionPostgres) RemoveReview(ctx context.Context, consumerAuthID, reviewID string) (*model.Collection, error) {
	return r.remove(ctx, savedReviewsColumn, consumerAuthID, reviewID)
}

func (r *CollectionPostgres) AddProduct(ctx context.Context, consumerAuthID, productID string) (*model.Collection, error) {
	return r.add(ctx, savedProductsColumn, consumerAuthID, productID)
}

func (r *CollectionPostgres) RemoveProduct(ctx context.Context, consumerAuthID, productID string) (*model.Collection, error) {
	return r.remove(ctx, savedProductsColumn, consumerAuthID, productID)
}

// add upserts the collection row and appends itemID unless already present.
// column is one of the package constants, never caller input.
func (r *CollectionPostgres) add(ctx context.Context, column, consumerAuthID, itemID string) (*model.Collection, error) {
	q := fmt.Sprintf(`
		INSERT INTO collections (consumer_auth_id, %[1]s)
		VALUES ($1, ARRAY[$2::text])
		ON CONFLICT (consumer_auth_id) DO UPDATE SET
			%[1]s = CASE
				WHEN $2::text = ANY(collections.%[1]s) THEN collections.%[1]s
				ELSE array_append(collections.%[1]s, $2::text)
			END,
			updated_at = now()
		RETURNING %[2]s`, column, collectionColumns)
	out, err := scanCollection(r.db.QueryRowContext(ctx, q, consumerAuthID, itemID))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// remove drops itemID from the list; sql.ErrNoRows means the consumer has no collection yet.
func (r *CollectionPostgres) remove(ctx context.Context, column, consumerAuthID, itemID string) (*model.Collection, error) {
	q := fmt.Sprintf(`
		UPDATE collections SET
			%[1]s = array_remove(%[1]s, $2::text),
			updated_at = now()
		WHERE consumer_auth_id = $1
		RETURNING %[2]s`, column, collectionColumns)
	return scanCollection(r.db.QueryRowContext(ctx, q, consumerAuthID, itemID))
}
