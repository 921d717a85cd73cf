package postgres

import (
	"context"
	"database/sql"
	"errors"

	"reviewapi/internal/model"
	"reviewapi/internal/repository"
)

const reviewColumns = `id, title, description, image, sentiments, product_name, product_image, likes, liked_by, author_id, author_location, created_at, updated_at`

const reviewFilter = `
		WHERE ($1::text = '' OR title ILIKE $1 OR description ILIKE $1 OR product_name ILIKE $1)
		  AND ($2::text = '' OR $2::text = ANY(sentiments))
		  AND ($3::text = '' OR product_name ILIKE $3)`

// ReviewPostgres is a PostgreSQL implementation of repository.ReviewRepository.
type ReviewPostgres struct {
	db *sql.DB
}

// NewReviewPostgres creates a new ReviewPostgres repository.
func NewReviewPostgres(db *sql.DB) *ReviewPostgres {
	return &ReviewPostgres{db: db}
}

var _ repository.ReviewRepository = (*ReviewPostgres)(nil)

func scanReview(rs rowScanner) (*model.Review, error) {
	var rv model.Review
	if err := rs.Scan(
		&rv.ID,
		&rv.Title,
		&rv.Description,
		&rv.Image,
		textArray{&rv.Sentiments},
		&rv.ProductName,
		&rv.ProductImage,
		&rv.Likes,
		textArray{&rv.LikedBy},
		&rv.AuthorID,
		&rv.AuthorLocation,
		&rv.CreatedAt,
		&rv.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &rv, nil
}

// Create inserts a review with an empty like set.
func (r *ReviewPostgres) Create(ctx context.Context, rv *model.Review) (*model.Review, error) {
	const q = `
		INSERT INTO reviews (id, title, description, image, sentiments, product_name, product_image, author_id, author_location, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING ` + reviewColumns
	out, err := scanReview(r.db.QueryRowContext(ctx, q,
		rv.ID,
		rv.Title,
		rv.Description,
		rv.Image,
		arrayArg(rv.Sentiments),
		rv.ProductName,
		rv.ProductImage,
		rv.AuthorID,
		rv.AuthorLocation,
		rv.CreatedAt,
		rv.UpdatedAt,
	))
	if err != nil {
		return nil, mapError(err)
	}
	return out, nil
}

// FindByID fetches a single review by its ID.
func (r *ReviewPostgres) FindByID(ctx context.Context, id string) (*model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE id = $1`
	return scanReview(r.db.QueryRowContext(ctx, q, id))
}

// FindByAuthor returns all reviews written by authorID, newest first.
func (r *ReviewPostgres) FindByAuthor(ctx context.Context, authorID string) ([]model.Review, error) {
	const q = `SELECT ` + reviewColumns + ` FROM reviews WHERE author_id = $1 ORDER BY created_at DESC, id DESC`
	rows, err := r.db.QueryContext(ctx, q, authorID)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanReview)
}

// List returns reviews newest first using LIMIT/OFFSET and the filtered total.
func (r *ReviewPostgres) List(ctx context.Context, rq repository.ReviewQuery) (*repository.PageResult[model.Review], error) {
	search := containsPattern(rq.Search)
	productName := containsPattern(rq.ProductName)

	const qCount = `SELECT COUNT(*) FROM reviews` + reviewFilter
	var total int
	if err := r.db.QueryRowContext(ctx, qCount, search, rq.Sentiment, productName).Scan(&total); err != nil {
		return nil, err
	}

	const qList = `
		SELECT ` + reviewColumns + `
		FROM reviews` + reviewFilter + `
		ORDER BY created_at DESC, id DESC
		LIMIT $4 OFFSET $5`
	rows, err := r.db.QueryContext(ctx, qList, search, rq.Sentiment, productName, rq.Limit, rq.Offset)
	if err != nil {
		return nil, err
	}
	items, err := collect(rows, scanReview)
	if err != nil {
		return nil, err
	}
	return &repository.PageResult[model.Review]{Items: items, Total: total}, nil
}

// Update applies the non-nil fields of u.
func (r *ReviewPostgres) Update(ctx context.Context, id string, u model.ReviewUpdate) (*model.Review, error) {
	const q = `
		UPDATE reviews SET
			title           = COALESCE($2, title),
			description     = COALESCE($3, description),
			sentiments      = COALESCE($4::text[], sentiments),
			product_name    = COALESCE($5, product_name),
			product_image   = COALESCE($6, product_image),
			author_location = COALESCE($7, author_location),
			updated_at      = now()
		WHERE id = $1
		RETURNING ` + reviewColumns
	return scanReview(r.db.QueryRowContext(ctx, q,
		id,
		u.Title,
		u.Description,
		optionalArrayArg(u.Sentiments),
		u.ProductName,
		u.ProductImage,
		u.AuthorLocation,
	))
}

// UpdateImage stores the public image path of a review.
func (r *ReviewPostgres) UpdateImage(ctx context.Context, id, path string) (*model.Review, error) {
	const q = `
		UPDATE reviews SET image = $2, updated_at = now()
		WHERE id = $1
		RETURNING ` + reviewColumns
	return scanReview(r.db.QueryRowContext(ctx, q, id, path))
}

// Delete removes a review by ID.
func (r *ReviewPostgres) Delete(ctx context.Context, id string) error {
	const q = `DELETE FROM reviews WHERE id = $1`
	res, err := r.db.ExecContext(ctx, q, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// Like appends userID to liked_by and recounts in one statement.
func (r *ReviewPostgres) Like(ctx context.Context, id, userID string) (*model.Review, bool, error) {
	const q = `
		UPDATE reviews SET
			liked_by   = array_append(liked_by, $2::text),
			likes      = cardinality(liked_by) + 1,
			updated_at = now()
		WHERE id = $1 AND NOT ($2::text = ANY(liked_by))
		RETURNING ` + reviewColumns
	return r.applyLike(ctx, q, id, userID)
}

// Unlike removes userID from liked_by and recounts in one statement.
func (r *ReviewPostgres) Unlike(ctx context.Context, id, userID string) (*model.Review, bool, error) {
	const q = `
		UPDATE reviews SET
			liked_by   = array_remove(liked_by, $2::text),
			likes      = cardinality(array_remove(liked_by, $2::text)),
			updated_at = now()
		WHERE id = $1 AND $2::text = ANY(liked_by)
		RETURNING ` + reviewColumns
	return r.applyLike(ctx, q, id, userID)
}

func (r *ReviewPostgres) applyLike(ctx context.Context, q, id, userID string) (*model.Review, bool, error) {
	rv, err := scanReview(r.db.QueryRowContext(ctx, q, id, userID))
	if err == nil {
		return rv, true, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, false, err
	}
	rv, err = r.FindByID(ctx, id)
	if err != nil {
		return nil, false, err
	}
	return rv, false, nil
}

// IsLikedBy reports whether userID is in the review's like set.
func (r *ReviewPostgres) IsLikedBy(ctx context.Context, id, userID string) (bool, error) {
	const q = `SELECT $2::text = ANY(liked_by) FROM reviews WHERE id = $1`
	var liked bool
	if err := r.db.QueryRowContext(ctx, q, id, userID).Scan(&liked); err != nil {
		return false, err
	}
	return liked, nil
}
